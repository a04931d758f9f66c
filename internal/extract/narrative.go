// Package extract turns the free-form remainder of an act block into a
// normalized narrative paragraph and mines it for evidentiary quotations.
package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/scan"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// NarrativeExtractor joins an act's narrative lines into one string
type NarrativeExtractor struct {
	t model.ThresholdConfig
}

// NewNarrativeExtractor creates a narrative extractor
func NewNarrativeExtractor(thresholds model.ThresholdConfig) *NarrativeExtractor {
	return &NarrativeExtractor{t: thresholds}
}

// Extract concatenates rawLines[start:] into one normalized paragraph,
// dropping blank lines and page-break artifacts and collapsing whitespace.
func (e *NarrativeExtractor) Extract(rawLines []string, start int) string {
	if start < 0 {
		start = 0
	}
	var parts []string
	for i := start; i < len(rawLines); i++ {
		line := strings.TrimSpace(rawLines[i])
		if line == "" {
			continue
		}
		if n, ok := scan.PageNumberValue(line); ok && n >= e.t.PageNumberMin && n <= e.t.PageNumberMax {
			continue
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(reWhitespace.ReplaceAllString(strings.Join(parts, " "), " "))
}
