// Package segment splits a linearized companion document into one raw block
// per legislative act, keyed on signing-line markers.
package segment

import (
	"strings"

	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/scan"
)

// PartTwoMarker opens the act-by-act summary section of the document
const PartTwoMarker = "II. ACT-BY-ACT SUMMARY"

// ReferencesMarker terminates the final act block
const ReferencesMarker = "REFERENCES"

// Block is the raw text of one act: its name, signing text and body lines
type Block struct {
	ActName    string
	SignedRaw  string
	DateSigned string
	RawLines   []string
}

// Segmenter locates act blocks in the full document text
type Segmenter struct{}

// NewSegmenter creates a new segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment splits the document into act blocks, in document order. A missing
// part-II marker degrades to scanning from the document start and is reported
// as a diagnostic rather than an error.
func (s *Segmenter) Segment(text string) ([]Block, []model.Diagnostic) {
	lines := strings.Split(text, "\n")
	var diags []model.Diagnostic

	start, found := findPartTwo(lines)
	if !found {
		diags = append(diags, model.Diagnostic{
			Type:        model.DiagMissingPartMarker,
			Severity:    model.SeverityWarning,
			Description: "part-II marker not found; scanning from document start",
			Data:        map[string]interface{}{"marker": PartTwoMarker},
		})
	}

	var signedIdx []int
	for i := start; i < len(lines); i++ {
		if _, ok := scan.ParseSigned(strings.TrimSpace(lines[i])); ok {
			signedIdx = append(signedIdx, i)
		}
	}

	blocks := make([]Block, 0, len(signedIdx))
	for n, si := range signedIdx {
		name, _ := actName(lines, si)

		raw := strings.TrimSpace(lines[si])
		signedRaw, _ := scan.ParseSigned(raw)

		end := len(lines)
		if n+1 < len(signedIdx) {
			// The block runs up to the next act's name line, which sits
			// above the next signing line past blanks and a page number.
			// Adjacent signing lines make that walk land on or before the
			// current signing line; the block body is then empty.
			_, nameIdx := actName(lines, signedIdx[n+1])
			end = nameIdx
			if end < si+1 {
				end = si + 1
			}
		} else {
			for i := si; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == ReferencesMarker {
					end = i
					break
				}
			}
		}

		blocks = append(blocks, Block{
			ActName:    name,
			SignedRaw:  signedRaw,
			DateSigned: scan.ParseDateSigned(signedRaw),
			RawLines:   lines[si+1 : end],
		})
	}

	return blocks, diags
}

func findPartTwo(lines []string) (int, bool) {
	for i, line := range lines {
		if strings.Contains(line, PartTwoMarker) {
			return i, true
		}
	}
	return 0, false
}

// actName walks upward from a signing line to the nearest non-blank line,
// skipping exactly one page-number-only line when the page break fell between
// the act name and its signing line. Returns the name and its line index.
func actName(lines []string, signedIdx int) (string, int) {
	i := signedIdx - 1
	if i < 0 {
		return "", 0
	}
	for i > 0 && strings.TrimSpace(lines[i]) == "" {
		i--
	}
	if scan.IsPageNumber(strings.TrimSpace(lines[i])) {
		i--
		for i > 0 && strings.TrimSpace(lines[i]) == "" {
			i--
		}
	}
	return strings.TrimSpace(lines[i]), i
}
