package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/actsum/internal/llm"
	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outActs     string
	outLabels   string
	outReport   string
	outMD       string
	parseWait   time.Duration
	noCache     bool
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one extracted-text document into act and label records",
	Long: `Parse reads one linearized document and writes:
- structured act records (quarterly entries in three series, narratives)
- label records (quotations with source/date attribution)
- an optional Markdown overview with diagnostics and a quality score

Example:
  actsum parse companion.txt
  actsum parse companion.txt --acts-json acts.json --labels-json labels.json
  actsum parse companion.txt --md report.md --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Output flags
	parseCmd.Flags().StringVar(&outActs, "acts-json", "parsed_acts.json", "output path for act records")
	parseCmd.Flags().StringVar(&outLabels, "labels-json", "parsed_labels.json", "output path for label records")
	parseCmd.Flags().StringVar(&outReport, "report-json", "", "output path for the full report with diagnostics (optional)")
	parseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	parseCmd.Flags().DurationVar(&parseWait, "timeout", 2*time.Minute, "overall timeout (only the LLM overview can block)")
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse-result cache")
	parseCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	parseCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM overview generation")
	parseCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	parseCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), parseWait)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	report := result.Report

	if verbose {
		if result.Cached {
			fmt.Fprintf(os.Stderr, "✓ Result served from cache\n")
		}
		fmt.Fprintf(os.Stderr, "✓ Parsed %d acts\n", len(report.Acts))
		fmt.Fprintf(os.Stderr, "✓ Extracted %d labels\n", len(report.Labels))
		fmt.Fprintf(os.Stderr, "✓ Quality index: %d/100\n", report.Quality.Index)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM overview using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if outActs != "" {
		if err := renderer.RenderActsJSON(report, outActs); err != nil {
			return fmt.Errorf("render acts: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote acts: %s\n", outActs)
		}
	}
	if outLabels != "" {
		if err := renderer.RenderLabelsJSON(report, outLabels); err != nil {
			return fmt.Errorf("render labels: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote labels: %s\n", outLabels)
		}
	}
	if outReport != "" {
		if err := renderer.RenderReportJSON(report, outReport); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if report.LLM != nil && report.LLM.Enabled {
			llmPath := outMD + ".llm.md"
			if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to write LLM overview: %v\n", err)
			}
		}
	}

	renderer.RenderSummary(report)

	return nil
}

// buildConfig assembles the effective configuration: defaults, config-file
// threshold overrides, then flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	applyThresholdOverrides(&cfg.Thresholds)

	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// applyThresholdOverrides lets the config file retune the corpus-specific
// heuristics without a rebuild.
func applyThresholdOverrides(t *model.ThresholdConfig) {
	set := func(key string, dst *int) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}
	set("thresholds.max_structural_line_len", &t.MaxStructuralLineLen)
	set("thresholds.token_prefix_window", &t.TokenPrefixWindow)
	set("thresholds.lookahead_lines", &t.LookaheadLines)
	set("thresholds.page_number_min", &t.PageNumberMin)
	set("thresholds.page_number_max", &t.PageNumberMax)
	set("thresholds.footnote_marker_max", &t.FootnoteMarkerMax)
	set("thresholds.min_quote_len", &t.MinQuoteLen)
	set("thresholds.attribution_window", &t.AttributionWindow)
	set("thresholds.source_window", &t.SourceWindow)
	set("thresholds.date_window", &t.DateWindow)
}
