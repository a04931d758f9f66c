// Package header recovers the structured quarter/amount/category data of an
// act block: the classifier separates structural header lines from footnotes
// and narrative prose, and the field parser assembles the three entry lists.
package header

import (
	"strings"

	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/scan"
)

// Classifier walks an act's raw body lines and extracts the structural
// header area. The companion paper interleaves footnotes and page breaks
// with the header, so narrative onset is recognizable only by the absence
// of structural tokens within a bounded lookahead window.
type Classifier struct {
	t model.ThresholdConfig
}

// NewClassifier creates a classifier with the given thresholds
func NewClassifier(thresholds model.ThresholdConfig) *Classifier {
	return &Classifier{t: thresholds}
}

// Classify returns the structural header lines (trimmed, in order) and the
// index into rawLines where narrative prose begins. Pure function of its
// input; running it twice on the same block yields identical results.
func (c *Classifier) Classify(rawLines []string) ([]string, int) {
	var header []string
	i := 0

	for i < len(rawLines) {
		line := strings.TrimSpace(rawLines[i])

		if line == "" {
			i++
			continue
		}

		// Page-break artifacts and footnote markers are standalone numbers
		if n, ok := scan.PageNumberValue(line); ok {
			if n >= c.t.PageNumberMin && n <= c.t.PageNumberMax {
				i++
				continue
			}
			if n <= c.t.FootnoteMarkerMax {
				i++
				continue
			}
		}

		if c.isStructural(line) {
			header = append(header, line)
			i++
			continue
		}

		// Neither structural nor neutral: footnote text if structural data
		// still lies ahead within the lookahead window, narrative otherwise.
		if c.hasStructuralAhead(rawLines, i) {
			i++
			continue
		}
		return header, i
	}

	return header, len(rawLines)
}

// isStructural applies the header-line rules to one trimmed line
func (c *Classifier) isStructural(line string) bool {
	if line == "" || scan.IsPageNumber(line) {
		return true // neutral: consumed without ending the header area
	}
	if strings.Contains(line, "Change in Liabilities") {
		return true
	}
	if strings.HasPrefix(line, "Present Value") {
		return true
	}
	if q, ok := scan.FindQuarter(line); ok && c.nearStart(line, q.Start) {
		return true
	}
	if a, ok := scan.FindAmount(line); ok && c.nearStart(line, a.Start) {
		return true
	}
	if cat, ok := scan.FindCategory(line); ok && cat.Start == 0 {
		return true
	}
	return scan.StartsWithSign(line)
}

// nearStart applies the length/position rule: a token marks a structural
// line when the line is short or the token begins near the line start.
func (c *Classifier) nearStart(line string, tokenStart int) bool {
	return len(line) < c.t.MaxStructuralLineLen || tokenStart < c.t.TokenPrefixWindow
}

// hasStructuralAhead scans the lines strictly between from and
// from+LookaheadLines for any remaining structural data. Footnotes run 1-3
// lines, so a bounded window keeps them out of the narrative without
// swallowing long narrative runs.
func (c *Classifier) hasStructuralAhead(rawLines []string, from int) bool {
	limit := from + c.t.LookaheadLines
	if limit > len(rawLines) {
		limit = len(rawLines)
	}
	for j := from + 1; j < limit; j++ {
		line := strings.TrimSpace(rawLines[j])
		if line == "" || scan.IsPageNumber(line) {
			continue
		}
		if strings.Contains(line, "Change in Liabilities") || strings.Contains(line, "Present Value") {
			return true
		}
		if _, ok := scan.FindQuarter(line); ok {
			return true
		}
		if _, ok := scan.FindAmount(line); ok {
			return true
		}
		if cat, ok := scan.FindCategory(line); ok && cat.Start == 0 {
			return true
		}
	}
	return false
}
