package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/actsum/internal/model"
)

func testThresholds() model.ThresholdConfig {
	return model.DefaultConfig().Thresholds
}

func TestNarrativeJoinsAndNormalizes(t *testing.T) {
	raw := []string{
		"1948Q2 -$1.0 billion",
		"",
		"The Revenue Act of 1948  reduced individual",
		"income tax rates across all brackets.",
		"",
		"42",
		"It also increased the personal exemption.",
	}

	e := NewNarrativeExtractor(testThresholds())
	got := e.Extract(raw, 2)

	want := "The Revenue Act of 1948 reduced individual income tax rates across all brackets. It also increased the personal exemption."
	if got != want {
		t.Errorf("narrative = %q, want %q", got, want)
	}
}

func TestNarrativeKeepsNumbersOutsidePageRange(t *testing.T) {
	raw := []string{
		"Outlays rose by",
		"12",
		"percent that year.",
	}

	e := NewNarrativeExtractor(testThresholds())
	got := e.Extract(raw, 0)

	if !strings.Contains(got, "12") {
		t.Errorf("narrative = %q, want small standalone number kept", got)
	}
}

func TestNarrativeEmptyTail(t *testing.T) {
	e := NewNarrativeExtractor(testThresholds())
	if got := e.Extract([]string{"1948Q2 -$1.0 billion"}, 1); got != "" {
		t.Errorf("narrative = %q, want empty", got)
	}
}
