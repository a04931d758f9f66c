package extract

import (
	"strings"
	"testing"
)

func TestLabelsQuoteWithSourceAndDate(t *testing.T) {
	narrative := `In his message of 01/02/2003, the Secretary stated that "the reduction in rates is a response to the recession and the need to restore growth" before the committee.`

	e := NewLabelExtractor(testThresholds())
	labels := e.Extract(narrative)

	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	if labels[0].Motivation != "the reduction in rates is a response to the recession and the need to restore growth" {
		t.Errorf("motivation = %q", labels[0].Motivation)
	}
	if labels[0].Source != "the Secretary" {
		t.Errorf("source = %q, want \"the Secretary\"", labels[0].Source)
	}
	if labels[0].Date != "01/02/2003" {
		t.Errorf("date = %q, want 01/02/2003", labels[0].Date)
	}
}

func TestLabelsShortQuoteDropped(t *testing.T) {
	narrative := `The president called it "a good bill" when he announced that "revenues would decline substantially over the following fiscal year."`

	e := NewLabelExtractor(testThresholds())
	labels := e.Extract(narrative)

	if len(labels) != 1 {
		t.Fatalf("labels = %d, want only the long quote", len(labels))
	}
	if labels[0].Motivation != "revenues would decline substantially over the following fiscal year." {
		t.Errorf("motivation = %q", labels[0].Motivation)
	}
}

func TestLabelsCitationSource(t *testing.T) {
	narrative := `The 1994 Economic Report argued that "deficit reduction was essential to lower long-term interest rates".`

	e := NewLabelExtractor(testThresholds())
	labels := e.Extract(narrative)

	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	if labels[0].Source != "1994 Economic Report" {
		t.Errorf("source = %q, want citation form", labels[0].Source)
	}
	if labels[0].Date != "" {
		t.Errorf("date = %q, want empty", labels[0].Date)
	}
}

func TestLabelsCurlyQuotes(t *testing.T) {
	narrative := "In his message, the president noted that “the bill would restore fiscal balance within three years” and urged passage."

	e := NewLabelExtractor(testThresholds())
	labels := e.Extract(narrative)

	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	if labels[0].Motivation != "the bill would restore fiscal balance within three years" {
		t.Errorf("motivation = %q", labels[0].Motivation)
	}
	if labels[0].Source != "the president" {
		t.Errorf("source = %q, want \"the president\"", labels[0].Source)
	}
}

func TestLabelsUnattributedQuote(t *testing.T) {
	narrative := `"the measure was required to finance the war effort without inflation"`

	e := NewLabelExtractor(testThresholds())
	labels := e.Extract(narrative)

	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	if labels[0].Source != "" || labels[0].Date != "" {
		t.Errorf("attribution = (%q, %q), want empty", labels[0].Source, labels[0].Date)
	}
}

func TestLabelsAttributionWindowCountsCharacters(t *testing.T) {
	// 150 em dashes are 450 bytes but 150 characters; the source phrase in
	// front of them must still sit inside the 200-character source window.
	filler := strings.Repeat("—", 150)
	narrative := "the president stated that " + filler + " “the act was needed to restore budget balance promptly”."

	e := NewLabelExtractor(testThresholds())
	labels := e.Extract(narrative)

	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	if labels[0].Source != "the president" {
		t.Errorf("source = %q, want window measured in characters", labels[0].Source)
	}
	if labels[0].Date != "" {
		t.Errorf("date = %q, want empty", labels[0].Date)
	}
}

func TestLabelsNoQuotes(t *testing.T) {
	e := NewLabelExtractor(testThresholds())
	if labels := e.Extract("No quotations appear in this narrative at all."); len(labels) != 0 {
		t.Errorf("labels = %d, want 0", len(labels))
	}
}
