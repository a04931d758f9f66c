package header

import (
	"testing"

	"github.com/ppiankov/actsum/internal/model"
)

func TestFieldsInlineEntryWithCategory(t *testing.T) {
	p := NewFieldParser()
	res, diags := p.Parse([]string{
		"Change in Liabilities:",
		"1948Q2 -$1.0 billion (Exogenous; Long-run)",
	})

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(res.Standard) != 1 {
		t.Fatalf("standard entries = %d, want 1", len(res.Standard))
	}
	e := res.Standard[0]
	if e.Quarter != "1948-02" || e.Amount != -1.0 {
		t.Errorf("entry = %+v", e)
	}
	if e.Exogeneity != model.ExogeneityExogenous || e.Category != model.CategoryLongRun {
		t.Errorf("classification = %q/%q", e.Exogeneity, e.Category)
	}
}

func TestFieldsDefaultSectionIsStandard(t *testing.T) {
	// Entries seen before any section header land in the standard list.
	p := NewFieldParser()
	res, _ := p.Parse([]string{
		"1948Q2 -$1.0 billion",
	})

	if len(res.Standard) != 1 {
		t.Fatalf("standard entries = %d, want 1", len(res.Standard))
	}
	if len(res.Retroactive) != 0 || len(res.PresentValue) != 0 {
		t.Error("entry leaked out of the standard list")
	}
}

func TestFieldsSectionSwitching(t *testing.T) {
	p := NewFieldParser()
	res, _ := p.Parse([]string{
		"Change in Liabilities (excluding retroactive effects):",
		"1950Q1 +$0.5 billion",
		"Change in Liabilities (including retroactive effects):",
		"1950Q1 +$0.7 billion",
		"Present Value:",
		"1950Q1 +$0.6 billion",
	})

	if len(res.Standard) != 1 || res.Standard[0].Amount != 0.5 {
		t.Errorf("standard = %+v", res.Standard)
	}
	if len(res.Retroactive) != 1 || res.Retroactive[0].Amount != 0.7 {
		t.Errorf("retroactive = %+v", res.Retroactive)
	}
	if len(res.PresentValue) != 1 || res.PresentValue[0].Amount != 0.6 {
		t.Errorf("present value = %+v", res.PresentValue)
	}
}

func TestFieldsPendingQuartersFIFO(t *testing.T) {
	// Quarters listed before their amounts pair up in order.
	p := NewFieldParser()
	res, _ := p.Parse([]string{
		"1948Q2",
		"1948Q3",
		"-$1.0 billion",
		"-$0.5 billion",
	})

	if len(res.Standard) != 2 {
		t.Fatalf("standard entries = %d, want 2", len(res.Standard))
	}
	if res.Standard[0].Quarter != "1948-02" || res.Standard[0].Amount != -1.0 {
		t.Errorf("first entry = %+v", res.Standard[0])
	}
	if res.Standard[1].Quarter != "1948-03" || res.Standard[1].Amount != -0.5 {
		t.Errorf("second entry = %+v", res.Standard[1])
	}
}

func TestFieldsLastQuarterFallback(t *testing.T) {
	// With no pending quarters, a bare amount reuses the last quarter seen.
	p := NewFieldParser()
	res, diags := p.Parse([]string{
		"1950Q1 +$0.5 billion",
		"+$0.2 billion",
	})

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(res.Standard) != 2 {
		t.Fatalf("standard entries = %d, want 2", len(res.Standard))
	}
	if res.Standard[1].Quarter != "1950-01" || res.Standard[1].Amount != 0.2 {
		t.Errorf("fallback entry = %+v", res.Standard[1])
	}
}

func TestFieldsDanglingAmountDropped(t *testing.T) {
	p := NewFieldParser()
	res, diags := p.Parse([]string{
		"-$1.0 billion",
	})

	if len(res.Standard) != 0 {
		t.Errorf("standard = %+v, want empty", res.Standard)
	}
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if diags[0].Type != model.DiagDanglingAmount {
		t.Errorf("diagnostic type = %q", diags[0].Type)
	}
	if diags[0].Severity != model.SeverityWarning {
		t.Errorf("diagnostic severity = %q", diags[0].Severity)
	}
}

func TestFieldsDeferredStandardAcrossPresentValueMarker(t *testing.T) {
	// Linearization interleaving: two standard quarters are listed, then the
	// present-value marker arrives with a trailing amount, then one more bare
	// amount. Both amounts belong to the deferred standard quarters; the
	// present-value figures follow afterwards with their own quarter.
	p := NewFieldParser()
	res, diags := p.Parse([]string{
		"Change in Liabilities:",
		"2010Q1",
		"2010Q2",
		"Present Value: +$4.0 billion",
		"+$3.5 billion",
		"2010Q1 +$6.2 billion",
	})

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(res.Standard) != 2 {
		t.Fatalf("standard entries = %d, want 2: %+v", len(res.Standard), res.Standard)
	}
	if res.Standard[0].Quarter != "2010-01" || res.Standard[0].Amount != 4.0 {
		t.Errorf("first deferred entry = %+v", res.Standard[0])
	}
	if res.Standard[1].Quarter != "2010-02" || res.Standard[1].Amount != 3.5 {
		t.Errorf("second deferred entry = %+v", res.Standard[1])
	}
	if len(res.PresentValue) != 1 {
		t.Fatalf("present value entries = %d, want 1: %+v", len(res.PresentValue), res.PresentValue)
	}
	if res.PresentValue[0].Quarter != "2010-01" || res.PresentValue[0].Amount != 6.2 {
		t.Errorf("present value entry = %+v", res.PresentValue[0])
	}
}

func TestFieldsPresentValueMarkerWithoutDeferrals(t *testing.T) {
	// With nothing pending, a trailing amount after the marker has no quarter
	// and is reported as dangling.
	p := NewFieldParser()
	res, diags := p.Parse([]string{
		"Present Value: +$4.0 billion",
	})

	if len(res.PresentValue) != 0 {
		t.Errorf("present value = %+v, want empty", res.PresentValue)
	}
	if len(diags) != 1 || diags[0].Type != model.DiagDanglingAmount {
		t.Errorf("diagnostics = %+v, want one dangling amount", diags)
	}
}

func TestFieldsStandaloneCategoryBackfill(t *testing.T) {
	// A parenthetical on its own line classifies the first uncategorized
	// entry, scanning standard before retroactive.
	p := NewFieldParser()
	res, _ := p.Parse([]string{
		"1948Q2 -$1.0 billion",
		"Change in Liabilities (including retroactive effects):",
		"1948Q2 -$1.2 billion",
		"(Exogenous; Long-run)",
		"(Endogenous; Countercyclical)",
	})

	if res.Standard[0].Category != model.CategoryLongRun {
		t.Errorf("standard category = %q, want first backfill", res.Standard[0].Category)
	}
	if res.Retroactive[0].Category != model.CategoryCountercyclical {
		t.Errorf("retroactive category = %q, want second backfill", res.Retroactive[0].Category)
	}
}

func TestFieldsBareLiabilitiesHeaderResetsToStandard(t *testing.T) {
	p := NewFieldParser()
	res, _ := p.Parse([]string{
		"Present Value:",
		"2010Q1 +$6.2 billion",
		"Change in Liabilities",
		"2010Q2 +$1.0 billion",
	})

	if len(res.PresentValue) != 1 {
		t.Errorf("present value = %+v", res.PresentValue)
	}
	if len(res.Standard) != 1 || res.Standard[0].Quarter != "2010-02" {
		t.Errorf("standard = %+v, want entry after the bare header", res.Standard)
	}
}
