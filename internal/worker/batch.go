package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/pipeline"
)

// Parser defines the interface for parsing one document file
type Parser interface {
	ParseFile(ctx context.Context, path string) (*pipeline.ParseResult, error)
}

// ParseJob represents one document parse job
type ParseJob struct {
	Path   string
	Parser Parser
}

// Execute runs the parse job
func (j *ParseJob) Execute(ctx context.Context) Result {
	result, err := j.Parser.ParseFile(ctx, j.Path)
	if err != nil {
		return &ParseOutcome{Path: j.Path, Error: err}
	}
	return &ParseOutcome{Path: j.Path, Report: result.Report}
}

// ParseOutcome represents the result of one document parse
type ParseOutcome struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the outcome
func (o *ParseOutcome) GetError() error {
	return o.Error
}

// BatchProcessor parses multiple document files concurrently
type BatchProcessor struct {
	parser      Parser
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(parser Parser, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		parser:      parser,
		concurrency: concurrency,
	}
}

// ProcessPaths parses the given files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ParseOutcome {
	if len(paths) == 0 {
		return []*ParseOutcome{}
	}

	pool := NewPoolWithCapacity(b.concurrency, len(paths))
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ParseJob{Path: path, Parser: b.parser})
	}

	results := pool.Wait()

	outcomes := make([]*ParseOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*ParseOutcome)
	}

	return outcomes
}

// ProcessInput resolves the input to a list of document files and parses
// them. A directory yields its *.txt files; anything else is read as a
// manifest of paths, one per line.
func (b *BatchProcessor) ProcessInput(ctx context.Context, input string) ([]*ParseOutcome, error) {
	paths, err := ResolveInputPaths(input)
	if err != nil {
		return nil, fmt.Errorf("resolve input: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ResolveInputPaths lists the document files named by input: the *.txt files
// of a directory, or the lines of a manifest file (skipping blanks and
// # comments, deduplicated).
func ResolveInputPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("read dir: %w", err)
		}
		var paths []string
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			paths = append(paths, filepath.Join(input, entry.Name()))
		}
		sort.Strings(paths)
		return paths, nil
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return paths, nil
}
