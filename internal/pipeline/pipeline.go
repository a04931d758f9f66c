// Package pipeline wires the parser stages together: segmentation, header
// classification, field assembly, narrative and label extraction, quality
// scoring and the optional LLM overview.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/actsum/internal/cache"
	"github.com/ppiankov/actsum/internal/extract"
	"github.com/ppiankov/actsum/internal/header"
	"github.com/ppiankov/actsum/internal/llm"
	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/scan"
	"github.com/ppiankov/actsum/internal/score"
	"github.com/ppiankov/actsum/internal/segment"
)

// Pipeline orchestrates the complete parse of one document
type Pipeline struct {
	segmenter  *segment.Segmenter
	classifier *header.Classifier
	fields     *header.FieldParser
	narrative  *extract.NarrativeExtractor
	labels     *extract.LabelExtractor
	scorer     *score.Scorer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	cache      cache.Cache     // Parse-result cache (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		segmenter:  segment.NewSegmenter(),
		classifier: header.NewClassifier(cfg.Thresholds),
		fields:     header.NewFieldParser(),
		narrative:  extract.NewNarrativeExtractor(cfg.Thresholds),
		labels:     extract.NewLabelExtractor(cfg.Thresholds),
		scorer:     score.NewScorer(),
		summarizer: summarizer,
		cache:      resultCache,
		config:     cfg,
	}
}

// ParseResult contains the complete parse result
type ParseResult struct {
	Report *model.Report
	Cached bool // Whether the report came from the result cache
}

// ParseText parses one linearized document into a Report. The parse itself
// is pure and synchronous; ctx only bounds the optional LLM summary.
func (p *Pipeline) ParseText(ctx context.Context, subject, text string) (*ParseResult, error) {
	blocks, diags := p.segmenter.Segment(text)

	report := &model.Report{
		Subject:     subject,
		ParsedAt:    time.Now().UTC(),
		Acts:        make([]model.Act, 0, len(blocks)),
		Labels:      []model.Label{},
		Diagnostics: diags,
	}

	for _, block := range blocks {
		act, actDiags := p.parseBlock(block)
		report.Acts = append(report.Acts, act)
		report.Diagnostics = append(report.Diagnostics, actDiags...)

		category, exogeneity := act.PrimaryClassification()
		for _, attr := range p.labels.Extract(act.Narrative) {
			label := model.Label{
				ActName:    act.ActName,
				Exogeneity: exogeneity,
				Category:   category,
				Motivation: attr.Motivation,
				Source:     attr.Source,
				Date:       attr.Date,
			}
			if !label.Attributed() {
				report.Diagnostics = append(report.Diagnostics, model.Diagnostic{
					Type:        model.DiagUnattributedLabel,
					Severity:    model.SeverityInfo,
					Act:         act.ActName,
					Description: "quotation has neither source nor date",
				})
			}
			report.Labels = append(report.Labels, label)
		}
	}

	report.Quality = p.scorer.Calculate(report.Acts, report.Labels, report.Diagnostics)

	// The LLM overview runs last and never affects parsed records
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return &ParseResult{Report: report}, nil
}

// ParseFile reads and parses one document file, consulting the result cache
// keyed by the file's content hash.
func (p *Pipeline) ParseFile(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	text := string(data)
	subject := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var key string
	if p.cache != nil {
		key = cache.ContentKey(text)
		if cached, found := p.cache.Get(key); found {
			var report model.Report
			if err := json.Unmarshal(cached, &report); err == nil {
				return &ParseResult{Report: &report, Cached: true}, nil
			}
			// Corrupt entry: fall through and re-parse
			_ = p.cache.Delete(key)
		}
	}

	result, err := p.ParseText(ctx, subject, text)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if data, err := json.Marshal(result.Report); err == nil {
			if err := p.cache.Set(key, data, 0); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
			}
		}
	}

	return result, nil
}

// parseBlock turns one act block into an Act record plus its diagnostics
func (p *Pipeline) parseBlock(block segment.Block) (model.Act, []model.Diagnostic) {
	headerLines, narrativeStart := p.classifier.Classify(block.RawLines)
	fields, diags := p.fields.Parse(headerLines)

	for i := range diags {
		diags[i].Act = block.ActName
	}

	act := model.Act{
		ActName:             block.ActName,
		DateSigned:          block.DateSigned,
		SignedRaw:           block.SignedRaw,
		StandardEntries:     orEmpty(fields.Standard),
		RetroactiveEntries:  orEmpty(fields.Retroactive),
		PresentValueEntries: orEmpty(fields.PresentValue),
		Narrative:           p.narrative.Extract(block.RawLines, narrativeStart),
	}

	if _, ok := scan.FindDate(block.SignedRaw); !ok {
		diags = append(diags, model.Diagnostic{
			Type:        model.DiagUnparsedSignedDate,
			Severity:    model.SeverityInfo,
			Act:         block.ActName,
			Description: "no M/D/Y token in signing text; raw value kept",
			Data:        map[string]interface{}{"signed_raw": block.SignedRaw},
		})
	}

	if act.EntryCount() == 0 {
		diags = append(diags, model.Diagnostic{
			Type:        model.DiagEmptyHeader,
			Severity:    model.SeverityWarning,
			Act:         block.ActName,
			Description: "act block yielded no fiscal entries",
		})
	} else if n := uncategorized(act); n > 0 {
		diags = append(diags, model.Diagnostic{
			Type:        model.DiagUncategorizedEntries,
			Severity:    model.SeverityInfo,
			Act:         block.ActName,
			Description: fmt.Sprintf("%d entries left without category", n),
			Data:        map[string]interface{}{"count": n},
		})
	}

	return act, diags
}

func uncategorized(act model.Act) int {
	n := 0
	for _, list := range [][]model.Entry{act.StandardEntries, act.RetroactiveEntries, act.PresentValueEntries} {
		for _, e := range list {
			if !e.Classified() {
				n++
			}
		}
	}
	return n
}

// orEmpty keeps entry lists non-nil so the JSON output always carries arrays
func orEmpty(entries []model.Entry) []model.Entry {
	if entries == nil {
		return []model.Entry{}
	}
	return entries
}
