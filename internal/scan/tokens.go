// Package scan recognizes the structural tokens of a linearized companion
// document: fiscal quarters, signed dollar amounts, motivation parentheticals,
// signing markers, page numbers and M/D/Y dates. All functions are pure; the
// parser layers above own every bit of state.
package scan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/actsum/internal/model"
)

var (
	reQuarter = regexp.MustCompile(`(\d{4})Q(\d)`)
	// Sign glyphs: plus, en dash, em dash, Unicode minus, ASCII hyphen.
	// The original columnar layout renders negatives with any of the dashes.
	reAmount   = regexp.MustCompile(`([+\x{2013}\x{2014}\x{2212}-])\$?([\d,.]+)\s+billion`)
	reCategory = regexp.MustCompile(`\((Endogenous|Exogenous)[;:,]\s*(Spending-driven|Countercyclical|Deficit-driven|Long-run)\)`)
	rePageNum  = regexp.MustCompile(`^\d{1,3}$`)
	reSigned   = regexp.MustCompile(`^(Signed|Date|Effective):\s+(.+)$`)
	reDate     = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)
)

// QuarterToken is a YYYYQn marker found in a line
type QuarterToken struct {
	Quarter string // Normalized YYYY-0n form
	Start   int    // Byte offset of the token in the line
}

// AmountToken is a signed dollar amount found in a line
type AmountToken struct {
	Value float64 // Signed magnitude in billions
	Start int     // Byte offset of the token in the line
}

// CategoryToken is a parenthetical motivation classification found in a line
type CategoryToken struct {
	Exogeneity model.Exogeneity
	Category   model.Category
	Start      int // Byte offset of the token in the line
}

// FindQuarter returns the first quarter token in the line
func FindQuarter(line string) (QuarterToken, bool) {
	m := reQuarter.FindStringSubmatchIndex(line)
	if m == nil {
		return QuarterToken{}, false
	}
	year := line[m[2]:m[3]]
	q := line[m[4]:m[5]]
	return QuarterToken{
		Quarter: fmt.Sprintf("%s-0%s", year, q),
		Start:   m[0],
	}, true
}

// FindAmount returns the first signed-amount token in the line
func FindAmount(line string) (AmountToken, bool) {
	m := reAmount.FindStringSubmatchIndex(line)
	if m == nil {
		return AmountToken{}, false
	}
	sign := line[m[2]:m[3]]
	digits := strings.ReplaceAll(line[m[4]:m[5]], ",", "")
	mag, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		// Comma-and-dot runs that survive the pattern but not ParseFloat
		// (e.g. "1.2.3") are treated as no amount at all.
		return AmountToken{}, false
	}
	return AmountToken{
		Value: SignValue(sign) * mag,
		Start: m[0],
	}, true
}

// FindCategory returns the first motivation parenthetical in the line
func FindCategory(line string) (CategoryToken, bool) {
	m := reCategory.FindStringSubmatchIndex(line)
	if m == nil {
		return CategoryToken{}, false
	}
	return CategoryToken{
		Exogeneity: model.Exogeneity(line[m[2]:m[3]]),
		Category:   model.Category(line[m[4]:m[5]]),
		Start:      m[0],
	}, true
}

// SignValue maps a sign glyph to ±1. Hyphen and every dash/minus variant are
// negative; anything else (in practice "+") is positive.
func SignValue(glyph string) float64 {
	switch glyph {
	case "-", "–", "—", "−":
		return -1.0
	}
	return 1.0
}

// StartsWithSign reports whether the line begins with a sign glyph
func StartsWithSign(line string) bool {
	if line == "" {
		return false
	}
	for _, prefix := range []string{"+", "-", "–", "—", "−"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// IsPageNumber reports whether the line is purely a 1-3 digit number
func IsPageNumber(line string) bool {
	return rePageNum.MatchString(line)
}

// PageNumberValue parses a page-number-only line; ok is false otherwise
func PageNumberValue(line string) (int, bool) {
	if !rePageNum.MatchString(line) {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseSigned matches a signing-line marker ("Signed:", "Date:" or
// "Effective:" followed by a value) and returns the value text.
func ParseSigned(line string) (string, bool) {
	m := reSigned.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]), true
}

// ParseDateSigned converts raw signing text to ISO YYYY-MM-DD when it holds
// an M/D/Y token, applying the two-digit-year pivot (45..99 are 19xx, 00..44
// are 20xx). Text without a date token is returned verbatim, trimmed.
func ParseDateSigned(raw string) string {
	m := reDate.FindStringSubmatch(raw)
	if m == nil {
		return strings.TrimSpace(raw)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year >= 45 {
			year += 1900
		} else {
			year += 2000
		}
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// FindDate returns the first raw M/D/Y token in the text
func FindDate(text string) (string, bool) {
	m := reDate.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}
