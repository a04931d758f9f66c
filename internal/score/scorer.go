// Package score computes a transparent parse-quality index over a parsed
// report. The score observes data quality only; it never alters records.
package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/actsum/internal/model"
)

// Scorer calculates the quality index and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores the parsed acts and labels and generates quality signals
func (s *Scorer) Calculate(acts []model.Act, labels []model.Label, diags []model.Diagnostic) model.Quality {
	var signals []model.Signal

	// 1. Entry coverage (0-35 points)
	entryScore, entrySignal := s.entryCoverage(acts)
	signals = append(signals, entrySignal)

	// 2. Classification coverage (0-25 points)
	classScore, classSignal := s.classificationCoverage(acts)
	signals = append(signals, classSignal)

	// 3. Attribution coverage (0-20 points)
	attrScore, attrSignal := s.attributionCoverage(labels)
	signals = append(signals, attrSignal)

	// 4. Date coverage (0-20 points)
	dateScore, dateSignal := s.dateCoverage(acts)
	signals = append(signals, dateSignal)

	// 5. Diagnostic load (penalty)
	penalty, loadSignal := s.diagnosticLoad(diags)
	if loadSignal.Type != "" {
		signals = append(signals, loadSignal)
	}

	total := entryScore + classScore + attrScore + dateScore - penalty
	if total < 0 {
		total = 0
	}

	return model.Quality{
		Index:      total,
		Confidence: s.confidence(total, len(acts)),
		Signals:    signals,
	}
}

// entryCoverage scores the share of acts that yielded at least one entry
func (s *Scorer) entryCoverage(acts []model.Act) (int, model.Signal) {
	if len(acts) == 0 {
		return 0, model.Signal{
			Type:        model.SignalEntryCoverage,
			Severity:    model.SeverityCritical,
			Description: "No acts parsed",
			Data:        map[string]interface{}{"acts": 0},
		}
	}

	withEntries := 0
	for _, a := range acts {
		if a.EntryCount() > 0 {
			withEntries++
		}
	}

	ratio := float64(withEntries) / float64(len(acts))
	points := int(math.Round(ratio * 35))

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 0.9 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalEntryCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d acts have fiscal entries", withEntries, len(acts)),
		Data: map[string]interface{}{
			"acts":         len(acts),
			"with_entries": withEntries,
			"ratio":        ratio,
			"score":        points,
			"formula":      "round(with_entries / acts * 35)",
		},
	}
}

// classificationCoverage scores the share of entries carrying a category
func (s *Scorer) classificationCoverage(acts []model.Act) (int, model.Signal) {
	total, classified := 0, 0
	for _, a := range acts {
		for _, list := range [][]model.Entry{a.StandardEntries, a.RetroactiveEntries, a.PresentValueEntries} {
			for _, e := range list {
				total++
				if e.Classified() {
					classified++
				}
			}
		}
	}
	if total == 0 {
		return 0, model.Signal{
			Type:        model.SignalClassificationCoverage,
			Severity:    model.SeverityWarning,
			Description: "No entries to classify",
			Data:        map[string]interface{}{"entries": 0},
		}
	}

	ratio := float64(classified) / float64(total)
	points := int(math.Round(ratio * 25))

	severity := model.SeverityInfo
	if ratio < 0.3 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalClassificationCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d entries classified", classified, total),
		Data: map[string]interface{}{
			"entries":    total,
			"classified": classified,
			"ratio":      ratio,
			"score":      points,
			"formula":    "round(classified / entries * 25)",
		},
	}
}

// attributionCoverage scores the share of labels with a non-empty source
func (s *Scorer) attributionCoverage(labels []model.Label) (int, model.Signal) {
	if len(labels) == 0 {
		return 0, model.Signal{
			Type:        model.SignalAttributionCoverage,
			Severity:    model.SeverityWarning,
			Description: "No labels extracted",
			Data:        map[string]interface{}{"labels": 0},
		}
	}

	sourced := 0
	for _, l := range labels {
		if l.Source != "" {
			sourced++
		}
	}

	ratio := float64(sourced) / float64(len(labels))
	points := int(math.Round(ratio * 20))

	severity := model.SeverityInfo
	if ratio < 0.4 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalAttributionCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d labels carry a source", sourced, len(labels)),
		Data: map[string]interface{}{
			"labels":  len(labels),
			"sourced": sourced,
			"ratio":   ratio,
			"score":   points,
			"formula": "round(sourced / labels * 20)",
		},
	}
}

// dateCoverage scores the share of acts whose signing date parsed as ISO
func (s *Scorer) dateCoverage(acts []model.Act) (int, model.Signal) {
	if len(acts) == 0 {
		return 0, model.Signal{
			Type:        model.SignalDateCoverage,
			Severity:    model.SeverityWarning,
			Description: "No acts parsed",
			Data:        map[string]interface{}{"acts": 0},
		}
	}

	iso := 0
	for _, a := range acts {
		if a.DateSigned != a.SignedRaw {
			iso++
		}
	}

	ratio := float64(iso) / float64(len(acts))
	points := int(math.Round(ratio * 20))

	severity := model.SeverityInfo
	if ratio < 0.8 {
		severity = model.SeverityWarning
	}

	return points, model.Signal{
		Type:        model.SignalDateCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d signing dates in ISO form", iso, len(acts)),
		Data: map[string]interface{}{
			"acts":    len(acts),
			"iso":     iso,
			"ratio":   ratio,
			"score":   points,
			"formula": "round(iso / acts * 20)",
		},
	}
}

// diagnosticLoad converts warning/critical diagnostics into a penalty
func (s *Scorer) diagnosticLoad(diags []model.Diagnostic) (int, model.Signal) {
	warnings, criticals := 0, 0
	for _, d := range diags {
		switch d.Severity {
		case model.SeverityWarning:
			warnings++
		case model.SeverityCritical:
			criticals++
		}
	}
	if warnings == 0 && criticals == 0 {
		return 0, model.Signal{}
	}

	penalty := warnings*2 + criticals*5
	if penalty > 20 {
		penalty = 20
	}

	severity := model.SeverityWarning
	if criticals > 0 {
		severity = model.SeverityCritical
	}

	return penalty, model.Signal{
		Type:        model.SignalDiagnosticLoad,
		Severity:    severity,
		Description: fmt.Sprintf("%d warning and %d critical diagnostics", warnings, criticals),
		Data: map[string]interface{}{
			"warnings":  warnings,
			"criticals": criticals,
			"penalty":   penalty,
			"formula":   "min(warnings*2 + criticals*5, 20)",
		},
	}
}

// confidence maps the index to a coarse confidence level
func (s *Scorer) confidence(index, actCount int) string {
	if actCount == 0 {
		return "low"
	}
	switch {
	case index >= 75:
		return "high"
	case index >= 45:
		return "medium"
	default:
		return "low"
	}
}
