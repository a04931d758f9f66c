package header

import (
	"regexp"
	"strings"

	"github.com/ppiankov/actsum/internal/model"
	"github.com/ppiankov/actsum/internal/scan"
)

// section identifies which entry list a content line feeds
type section int

const (
	sectionNone section = iota
	sectionStandard
	sectionRetroactive
	sectionPresentValue
)

const presentValueMarker = "Present Value:"

var reBareLiabilities = regexp.MustCompile(`^Change in Liabilities:?\s*$`)

// Result holds the three entry lists assembled from one act's header
type Result struct {
	Standard     []model.Entry
	Retroactive  []model.Entry
	PresentValue []model.Entry
}

// state is the field parser's explicit fold state. The deferredStandard
// queue exists for one documented layout: an act whose standard quarters are
// listed before the "Present Value:" marker while their amounts appear after
// it, interleaved with present-value figures. The queue stays empty for
// normally laid-out acts.
type state struct {
	section          section
	pending          []string // quarters awaiting an amount in the current section
	lastQuarter      string   // fallback when no quarter is queued
	deferredStandard []string // standard quarters whose amounts follow the PV marker
}

// FieldParser assembles entry lists from classified header lines
type FieldParser struct{}

// NewFieldParser creates a new field parser
func NewFieldParser() *FieldParser {
	return &FieldParser{}
}

// Parse folds the header lines through the section state machine and returns
// the three entry lists in document order, plus diagnostics for amounts that
// could not be attached to any quarter.
func (p *FieldParser) Parse(headerLines []string) (Result, []model.Diagnostic) {
	var res Result
	var diags []model.Diagnostic
	st := state{}

	for _, line := range headerLines {
		line, skip := p.applySectionHeader(&st, line)
		if skip {
			continue
		}
		if d := p.applyContent(&st, &res, line); d != nil {
			diags = append(diags, *d)
		}
	}

	return res, diags
}

// applySectionHeader handles section-switching lines. It returns the content
// remainder of the line (trailing text after "Present Value:" is reprocessed
// as the first content line of the new section) and whether the line was
// consumed entirely.
func (p *FieldParser) applySectionHeader(st *state, line string) (string, bool) {
	switch {
	case strings.Contains(line, "Change in Liabilities (excluding retroactive"):
		st.section = sectionStandard
		st.pending = nil
		return "", true

	case strings.Contains(line, "Change in Liabilities (including retroactive"):
		st.section = sectionRetroactive
		st.pending = nil
		return "", true

	case reBareLiabilities.MatchString(line):
		st.section = sectionStandard
		st.pending = nil
		return "", true

	case strings.HasPrefix(line, presentValueMarker):
		// Standard quarters still awaiting amounts at this point will have
		// their amounts appear after the marker; defer them so the amounts
		// land in the standard list, not the present-value one.
		if st.section == sectionStandard && len(st.pending) > 0 {
			st.deferredStandard = append([]string(nil), st.pending...)
		} else {
			st.deferredStandard = nil
		}
		st.section = sectionPresentValue
		st.pending = nil

		rest := strings.TrimSpace(line[len(presentValueMarker):])
		if rest == "" {
			return "", true
		}
		return rest, false
	}
	return line, false
}

// applyContent matches one content line against the quarter/amount/category
// tokens and emits at most one entry. Returns a diagnostic when an amount
// has no resolvable quarter and must be dropped.
func (p *FieldParser) applyContent(st *state, res *Result, line string) *model.Diagnostic {
	q, hasQ := scan.FindQuarter(line)
	a, hasA := scan.FindAmount(line)
	cat, hasCat := scan.FindCategory(line)

	switch {
	case hasQ && hasA:
		st.lastQuarter = q.Quarter
		st.pending = nil
		*p.target(st, res) = append(*p.target(st, res), newEntry(q.Quarter, a.Value, cat, hasCat))

	case hasQ:
		st.pending = append(st.pending, q.Quarter)
		st.lastQuarter = q.Quarter

	case hasA:
		// Deferred standard quarters take priority over the current
		// section's queue, and force the entry into the standard list.
		if len(st.deferredStandard) > 0 {
			quarter := st.deferredStandard[0]
			st.deferredStandard = st.deferredStandard[1:]
			res.Standard = append(res.Standard, newEntry(quarter, a.Value, cat, hasCat))
			return nil
		}
		quarter := st.lastQuarter
		if len(st.pending) > 0 {
			quarter = st.pending[0]
			st.pending = st.pending[1:]
		}
		if quarter == "" {
			return &model.Diagnostic{
				Type:        model.DiagDanglingAmount,
				Severity:    model.SeverityWarning,
				Description: "amount with no resolvable quarter dropped",
				Data:        map[string]interface{}{"line": line, "amount": a.Value},
			}
		}
		*p.target(st, res) = append(*p.target(st, res), newEntry(quarter, a.Value, cat, hasCat))

	case hasCat:
		// A standalone parenthetical classifies the first entry still
		// lacking a category, scanning standard, retroactive, then
		// present-value.
		for _, list := range []*[]model.Entry{&res.Standard, &res.Retroactive, &res.PresentValue} {
			for i := range *list {
				if (*list)[i].Category == "" {
					(*list)[i].Category = cat.Category
					(*list)[i].Exogeneity = cat.Exogeneity
					return nil
				}
			}
		}
	}
	return nil
}

// target returns the entry list for the current section. Content seen before
// any section header is attributed to the standard section.
func (p *FieldParser) target(st *state, res *Result) *[]model.Entry {
	switch st.section {
	case sectionRetroactive:
		return &res.Retroactive
	case sectionPresentValue:
		return &res.PresentValue
	default:
		return &res.Standard
	}
}

func newEntry(quarter string, amount float64, cat scan.CategoryToken, hasCat bool) model.Entry {
	e := model.Entry{Quarter: quarter, Amount: amount}
	if hasCat {
		e.Category = cat.Category
		e.Exogeneity = cat.Exogeneity
	}
	return e
}
