package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/actsum/internal/model"
)

// Summarizer wraps a Provider with availability checks, per-host rate
// limiting and hallucination screening of the generated overview.
type Summarizer struct {
	provider Provider
	limiter  *HostLimiter
	config   Config
}

// NewSummarizer creates a summarizer from configuration. A summarizer with
// no provider configured is valid and simply disabled.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		limiter:  NewHostLimiter(config.RequestsPerSecond, config.Burst),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the optional LLM overview of a report. Returns
// (nil, nil) when disabled. Provider unavailability and hallucinated
// quarters are reported as warnings on the summary, never as parse failures.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s not available; summary skipped", s.provider.Name())},
		}, nil
	}

	if err := s.limiter.Wait(ctx, s.endpoint()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	// Reject summaries that mention quarters the parse never produced
	known := report.QuarterSet()
	for _, q := range extractQuarters(resp.Summary) {
		if !known[q] {
			return &model.LLMSummary{
				Enabled:    false,
				Provider:   s.provider.Name(),
				Model:      resp.Model,
				TokensUsed: resp.TokensUsed,
				Warnings:   []string{fmt.Sprintf("summary rejected: quarter %s not present in report", q)},
			}, nil
		}
	}

	return &model.LLMSummary{
		Enabled:    true,
		Provider:   s.provider.Name(),
		Model:      resp.Model,
		SummaryMD:  resp.Summary,
		TokensUsed: resp.TokensUsed,
	}, nil
}

// endpoint is the rate-limit key for the configured provider
func (s *Summarizer) endpoint() string {
	if s.config.BaseURL != "" {
		return s.config.BaseURL
	}
	switch s.config.Provider {
	case "openai":
		return "https://api.openai.com"
	case "ollama":
		return "http://localhost:11434"
	default:
		return s.config.Provider
	}
}

// RenderSeparateMarkdown renders the LLM overview as a standalone Markdown
// document, clearly labeled so it is never confused with parsed data.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	md := "# LLM Overview\n\n"
	md += fmt.Sprintf("_Generated by %s/%s. This text is model output, not parsed data._\n\n", summary.Provider, summary.Model)
	md += summary.SummaryMD + "\n"
	if len(summary.Warnings) > 0 {
		md += "\n## Warnings\n\n"
		for _, w := range summary.Warnings {
			md += fmt.Sprintf("- %s\n", w)
		}
	}
	return md
}
