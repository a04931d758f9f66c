package model

import "time"

// Report represents the complete result of parsing one companion document
type Report struct {
	Subject  string    `json:"subject"`   // Document name (usually the input file stem)
	ParsedAt time.Time `json:"parsed_at"` // When the parse occurred

	Acts   []Act   `json:"acts"`   // Structured act records, in document order
	Labels []Label `json:"labels"` // Evidentiary quotations across all acts

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"` // Degraded-mode observations (never fatal)

	Quality Quality `json:"quality"` // Parse-quality index and scoring breakdown

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM overview (separate, never affects parsing)
}

// QuarterSet returns every quarter appearing in any entry of any act.
// Used to verify that generated summaries do not invent quarters.
func (r *Report) QuarterSet() map[string]bool {
	quarters := make(map[string]bool)
	for _, act := range r.Acts {
		for _, list := range [][]Entry{act.StandardEntries, act.RetroactiveEntries, act.PresentValueEntries} {
			for _, e := range list {
				quarters[e.Quarter] = true
			}
		}
	}
	return quarters
}

// Diagnostic records one degraded-mode condition encountered during parsing.
// Per-record irregularities never abort the parse; they surface here instead.
type Diagnostic struct {
	Type        DiagnosticType         `json:"type"`
	Severity    Severity               `json:"severity"`
	Act         string                 `json:"act,omitempty"`  // Act the condition occurred in (empty for document-level)
	Description string                 `json:"description"`    // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Transparent supporting data
}

// DiagnosticType classifies a degraded-mode condition
type DiagnosticType string

const (
	DiagMissingPartMarker    DiagnosticType = "missing_part_marker"   // Part-II marker absent, scan started at document begin
	DiagUnparsedSignedDate   DiagnosticType = "unparsed_signed_date"  // No M/D/Y token in signing text, raw value kept
	DiagDanglingAmount       DiagnosticType = "dangling_amount"       // Amount with no resolvable quarter, entry dropped
	DiagEmptyHeader          DiagnosticType = "empty_header"          // Act block yielded zero entries
	DiagUnattributedLabel    DiagnosticType = "unattributed_label"    // Quotation with neither source nor date
	DiagUncategorizedEntries DiagnosticType = "uncategorized_entries" // Entries left without category/exogeneity
)

// Severity indicates the importance of a diagnostic
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Quality represents the transparent parse-quality breakdown
type Quality struct {
	Index      int      `json:"index"`      // Overall quality index (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`    // Diagnostic signals with transparent data
}

// Signal represents one parse-quality signal with its scoring inputs
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    Severity               `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Formulas and inputs behind the score
}

// SignalType classifies a parse-quality signal
type SignalType string

const (
	SignalEntryCoverage          SignalType = "entry_coverage"          // Acts that yielded at least one entry
	SignalClassificationCoverage SignalType = "classification_coverage" // Entries carrying category/exogeneity
	SignalAttributionCoverage    SignalType = "attribution_coverage"    // Labels with a non-empty source
	SignalDateCoverage           SignalType = "date_coverage"           // Signing dates recovered as ISO
	SignalDiagnosticLoad         SignalType = "diagnostic_load"         // Warning/critical diagnostics emitted
)

// LLMSummary contains the optional LLM-generated overview.
// It never affects parsed records and is clearly separated in output.
type LLMSummary struct {
	Enabled    bool     `json:"enabled"`
	Provider   string   `json:"provider,omitempty"`
	Model      string   `json:"model,omitempty"`
	SummaryMD  string   `json:"summary_md,omitempty"`
	Warnings   []string `json:"warnings,omitempty"` // Issues such as rejected hallucinated quarters
	TokensUsed int      `json:"tokens_used,omitempty"`
}
