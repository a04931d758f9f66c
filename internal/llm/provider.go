// Package llm generates an optional natural-language overview of a parse
// report. The summary is separate output: it never feeds back into parsing
// and hallucinated quarters cause the summary to be rejected.
package llm

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ppiankov/actsum/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates an overview of the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for report summarization
type SummarizeRequest struct {
	// Report is the parse report to summarize
	Report model.Report

	// Prompt is an optional custom prompt (if empty, the default is built)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's output
type SummarizeResponse struct {
	// Summary is the generated overview text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond and Burst throttle calls per endpoint host
	RequestsPerSecond float64
	Burst             int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		RequestsPerSecond: mc.RequestsPerSecond,
		Burst:             mc.Burst,
	}
}

// BuildPrompt constructs the default summarization prompt. The prompt pins
// the model to the parsed acts so the overview cannot drift into invented
// legislation or quarters.
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing a parse report for a fiscal act-by-act summary document. The parser extracts quarterly revenue-change records and evidentiary quotations; it does not judge their correctness.

CRITICAL RULES:
1. You MUST ONLY reference acts from this list:
%s

2. DO NOT invent acts, quarters, or amounts not present in the report.
3. If coverage is poor, say so explicitly.
4. Describe parse quality, not fiscal policy merit.

Report Summary:
- Document: %s
- Acts parsed: %d
- Labels extracted: %d
- Quality index: %d/100 (%s)

Key signals:
`, joinActNames(report.Acts), report.Subject, len(report.Acts), len(report.Labels), report.Quality.Index, report.Quality.Confidence)

	// Add top 3 signals
	for i, signal := range report.Quality.Signals {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
	}

	prompt += "\nProvide a 3-4 sentence overview of what was parsed and how complete it is."

	return prompt
}

func joinActNames(acts []model.Act) string {
	if len(acts) == 0 {
		return "(No acts parsed)"
	}
	result := ""
	for i, act := range acts {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more acts", len(acts)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", act.ActName)
	}
	return result
}

var reQuarterToken = regexp.MustCompile(`\d{4}-0[1-4]`)

// extractQuarters returns every YYYY-QQ token mentioned in text, deduplicated
func extractQuarters(text string) []string {
	matches := reQuarterToken.FindAllString(text, -1)
	seen := make(map[string]bool)
	var unique []string
	for _, q := range matches {
		if !seen[q] {
			seen[q] = true
			unique = append(unique, q)
		}
	}
	return unique
}
