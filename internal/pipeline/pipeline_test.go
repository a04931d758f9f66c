package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/actsum/internal/model"
)

const companionDoc = `I. INTRODUCTION

Prose about methodology that must never yield records.

II. ACT-BY-ACT SUMMARY

Revenue Act of 1948
Signed: 4/2/48
Change in Liabilities:
1948Q2 -$1.0 billion (Exogenous; Long-run)
1948Q3 -$0.5 billion

In his message, the president stated that "the reduction in individual
income tax rates would strengthen incentives to work and invest" across
the economy.

Social Security Amendments of 1950
Signed: 8/28/50
Change in Liabilities (excluding retroactive effects):
1950Q1 +$0.5 billion (Endogenous; Spending-driven)
Change in Liabilities (including retroactive effects):
1950Q1 +$0.7 billion
The amendments raised payroll tax rates to fund expanded coverage.

REFERENCES

Romer, Christina D., and David H. Romer. 2009.
`

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestParseTextEndToEnd(t *testing.T) {
	p := NewPipeline(testConfig())

	result, err := p.ParseText(context.Background(), "companion", companionDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report := result.Report

	if len(report.Acts) != 2 {
		t.Fatalf("acts = %d, want 2", len(report.Acts))
	}

	first := report.Acts[0]
	if first.ActName != "Revenue Act of 1948" {
		t.Errorf("act name = %q", first.ActName)
	}
	if first.DateSigned != "1948-04-02" {
		t.Errorf("date signed = %q", first.DateSigned)
	}
	if len(first.StandardEntries) != 2 {
		t.Fatalf("standard entries = %d, want 2", len(first.StandardEntries))
	}
	if first.StandardEntries[0].Quarter != "1948-02" || first.StandardEntries[0].Amount != -1.0 {
		t.Errorf("first entry = %+v", first.StandardEntries[0])
	}
	if first.StandardEntries[0].Category != model.CategoryLongRun {
		t.Errorf("first entry category = %q", first.StandardEntries[0].Category)
	}
	if !strings.Contains(first.Narrative, "strengthen incentives") {
		t.Errorf("narrative = %q", first.Narrative)
	}

	second := report.Acts[1]
	if len(second.StandardEntries) != 1 || second.StandardEntries[0].Amount != 0.5 {
		t.Errorf("second act standard = %+v", second.StandardEntries)
	}
	if len(second.RetroactiveEntries) != 1 || second.RetroactiveEntries[0].Amount != 0.7 {
		t.Errorf("second act retroactive = %+v", second.RetroactiveEntries)
	}

	if len(report.Labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(report.Labels))
	}
	label := report.Labels[0]
	if label.ActName != "Revenue Act of 1948" {
		t.Errorf("label act = %q", label.ActName)
	}
	if label.Source != "the president" {
		t.Errorf("label source = %q", label.Source)
	}
	// The label inherits the act's primary classification
	if label.Category != model.CategoryLongRun || label.Exogeneity != model.ExogeneityExogenous {
		t.Errorf("label classification = %q/%q", label.Exogeneity, label.Category)
	}

	if report.Quality.Index == 0 {
		t.Error("quality index not computed")
	}
	if report.LLM != nil {
		t.Error("LLM summary present although no provider configured")
	}
}

func TestParseTextNeverErrors(t *testing.T) {
	p := NewPipeline(testConfig())

	inputs := []string{
		"",
		"no structure at all",
		"Signed: 4/2/48",
		"II. ACT-BY-ACT SUMMARY\n\nREFERENCES",
	}
	for _, input := range inputs {
		if _, err := p.ParseText(context.Background(), "degraded", input); err != nil {
			t.Errorf("ParseText(%q) returned error: %v", input, err)
		}
	}
}

func TestParseTextEmptyActDiagnostic(t *testing.T) {
	doc := `II. ACT-BY-ACT SUMMARY

Some Minor Act
Signed: 1/1/50
Nothing quantitative was recorded for this act in the appendix.

REFERENCES
`
	p := NewPipeline(testConfig())
	result, err := p.ParseText(context.Background(), "doc", doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	found := false
	for _, d := range result.Report.Diagnostics {
		if d.Type == model.DiagEmptyHeader && d.Act == "Some Minor Act" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want empty-header for the act", result.Report.Diagnostics)
	}

	// Entry lists must still be arrays, not null
	if result.Report.Acts[0].StandardEntries == nil {
		t.Error("standard entries nil, want empty slice")
	}
}

func TestParseFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "companion.txt")
	if err := os.WriteFile(docPath, []byte(companionDoc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(dir, "cache")
	p := NewPipeline(cfg)

	first, err := p.ParseFile(context.Background(), docPath)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	if first.Cached {
		t.Error("first parse reported as cached")
	}
	if first.Report.Subject != "companion" {
		t.Errorf("subject = %q", first.Report.Subject)
	}

	second, err := p.ParseFile(context.Background(), docPath)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !second.Cached {
		t.Error("second parse missed the cache")
	}
	if len(second.Report.Acts) != len(first.Report.Acts) {
		t.Error("cached report differs from the original")
	}
}

func TestParseFileMissing(t *testing.T) {
	p := NewPipeline(testConfig())
	if _, err := p.ParseFile(context.Background(), "/nonexistent.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRendererWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(testConfig())
	result, err := p.ParseText(context.Background(), "companion", companionDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := NewRenderer(true)
	actsPath := filepath.Join(dir, "acts.json")
	mdPath := filepath.Join(dir, "report.md")

	if err := r.RenderActsJSON(result.Report, actsPath); err != nil {
		t.Fatalf("render acts: %v", err)
	}
	if err := r.RenderMarkdown(result.Report, mdPath); err != nil {
		t.Fatalf("render markdown: %v", err)
	}

	acts, err := os.ReadFile(actsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(acts), `"act_name": "Revenue Act of 1948"`) {
		t.Errorf("acts JSON missing act record: %s", acts)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "| Revenue Act of 1948 |") {
		t.Error("markdown missing acts table row")
	}
	if !strings.Contains(string(md), "_Generated by actsum._") {
		t.Error("markdown missing footer")
	}
}
