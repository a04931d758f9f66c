package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/scan"
)

var (
	// Quoted spans open and close with either straight or curly double
	// quotes; the two families are not required to match in kind.
	reQuote = regexp.MustCompile(`["\x{201C}]([^"\x{201D}]+)["\x{201D}]`)

	// A source is either a name phrase followed by an enunciation verb or a
	// year-stamped government citation.
	reSource = regexp.MustCompile(`(?:in (?:his|her|the|a) )?([\w\s]+?)\s*(?:stated|said|reported|announced|noted|wrote)` +
		`|(\d{4}\s+(?:Economic Report|Budget|Treasury))`)
)

// Attribution is one quotation with its pattern-matched source and date
type Attribution struct {
	Motivation string // The quoted text
	Source     string // Name phrase or citation (empty when no match)
	Date       string // Raw M/D/Y text (empty when no match)
}

// LabelExtractor scans a narrative for quoted spans and attributes each to
// a source and date found in the text preceding the quote. Attribution is
// purely pattern-based.
type LabelExtractor struct {
	t model.ThresholdConfig
}

// NewLabelExtractor creates a label extractor
func NewLabelExtractor(thresholds model.ThresholdConfig) *LabelExtractor {
	return &LabelExtractor{t: thresholds}
}

// Extract returns every quotation of at least MinQuoteLen characters, with
// source and date resolved from bounded windows before the quote.
func (e *LabelExtractor) Extract(narrative string) []Attribution {
	var out []Attribution
	for _, m := range reQuote.FindAllStringSubmatchIndex(narrative, -1) {
		quote := strings.TrimSpace(narrative[m[2]:m[3]])
		if utf8.RuneCountInString(quote) < e.t.MinQuoteLen {
			continue
		}

		preceding := windowBefore(narrative, m[0], e.t.AttributionWindow)

		source := ""
		if sm := reSource.FindStringSubmatch(tail(preceding, e.t.SourceWindow)); sm != nil {
			if sm[1] != "" {
				source = strings.TrimSpace(sm[1])
			} else {
				source = strings.TrimSpace(sm[2])
			}
		}

		date := ""
		if d, ok := scan.FindDate(tail(preceding, e.t.DateWindow)); ok {
			date = d
		}

		out = append(out, Attribution{Motivation: quote, Source: source, Date: date})
	}
	return out
}

// windowBefore returns up to n characters of text ending at pos. The windows
// are measured in characters, so curly quotes and dashes do not shrink them.
func windowBefore(text string, pos, n int) string {
	start := pos
	for n > 0 && start > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
		n--
	}
	return text[start:pos]
}

// tail returns the last n characters of s
func tail(s string, n int) string {
	return windowBefore(s, len(s), n)
}
