package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/actsum/internal/pipeline"
	"github.com/ppiankov/actsum/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchWait        time.Duration
	batchMD          bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-manifest>",
	Short: "Parse many documents concurrently",
	Long: `Batch parses a set of documents with a worker pool. The input is either
a directory (its *.txt files are taken, sorted) or a manifest file listing
one document path per line (# comments and blank lines are skipped).

Per document it writes <name>.acts.json, <name>.labels.json and <name>.md
into the output directory.

Example:
  actsum batch ./corpus --concurrency 8 --output-dir ./out
  actsum batch manifest.txt --output-dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent parsers")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", ".", "directory for per-document outputs")
	batchCmd.Flags().DurationVar(&batchWait, "timeout", 10*time.Minute, "overall timeout for the batch")
	batchCmd.Flags().BoolVar(&batchMD, "md", true, "also write a per-document Markdown overview")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse-result cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchWait)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = batchConcurrency

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	paths, err := worker.ResolveInputPaths(input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents found in %s", input)
	}

	fmt.Printf("Parsing %d documents with %d workers...\n\n", len(paths), batchConcurrency)

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, batchConcurrency)
	outcomes := processor.ProcessPaths(ctx, paths)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	var parsed, failed int
	for _, outcome := range outcomes {
		name := strings.TrimSuffix(filepath.Base(outcome.Path), filepath.Ext(outcome.Path))

		if outcome.Error != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", name, outcome.Error)
			continue
		}
		parsed++

		report := outcome.Report
		if err := renderer.RenderActsJSON(report, filepath.Join(batchOutputDir, name+".acts.json")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", name, err)
		}
		if err := renderer.RenderLabelsJSON(report, filepath.Join(batchOutputDir, name+".labels.json")); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", name, err)
		}
		if batchMD {
			if err := renderer.RenderMarkdown(report, filepath.Join(batchOutputDir, name+".md")); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", name, err)
			}
		}

		fmt.Printf("✓ %s: %d acts, %d labels, quality %d/100\n",
			name, len(report.Acts), len(report.Labels), report.Quality.Index)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Batch complete: %d parsed, %d failed\n", parsed, failed)
	fmt.Printf("Outputs written to %s\n", batchOutputDir)
	fmt.Println("═══════════════════════════════════════")

	if failed > 0 && parsed == 0 {
		return fmt.Errorf("all %d documents failed to parse", failed)
	}
	return nil
}
