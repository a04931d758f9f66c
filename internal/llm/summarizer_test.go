package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/ppiankov/actsum/internal/model"
)

type mockProvider struct {
	name      string
	available bool
	summary   string
	err       error
	calls     int
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return m.available }

func (m *mockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &SummarizeResponse{Summary: m.summary, Model: "mock-model", TokensUsed: 42}, nil
}

func testReport() model.Report {
	return model.Report{
		Subject: "companion",
		Acts: []model.Act{
			{
				ActName: "Revenue Act of 1948",
				StandardEntries: []model.Entry{
					{Quarter: "1948-02", Amount: -1.0},
				},
			},
		},
		Quality: model.Quality{Index: 90, Confidence: "high"},
	}
}

func mockSummarizer(p Provider) *Summarizer {
	return &Summarizer{
		provider: p,
		limiter:  NewHostLimiter(100, 10),
		config:   Config{Provider: "mock", Model: "mock-model"},
	}
}

func TestGenerateSummaryDisabled(t *testing.T) {
	s := mockSummarizer(nil)
	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != nil {
		t.Errorf("summary = %+v, want nil when disabled", summary)
	}
}

func TestGenerateSummaryUnavailableProvider(t *testing.T) {
	mock := &mockProvider{name: "mock", available: false}
	s := mockSummarizer(mock)

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil || summary.Enabled {
		t.Fatalf("summary = %+v, want disabled with warning", summary)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("warnings = %v", summary.Warnings)
	}
	if mock.calls != 0 {
		t.Errorf("provider called %d times despite being unavailable", mock.calls)
	}
}

func TestGenerateSummarySuccess(t *testing.T) {
	mock := &mockProvider{
		name:      "mock",
		available: true,
		summary:   "Parsed one act with complete coverage in 1948-02.",
	}
	s := mockSummarizer(mock)

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatalf("summary = %+v, want enabled", summary)
	}
	if summary.SummaryMD != mock.summary {
		t.Errorf("summary text = %q", summary.SummaryMD)
	}
	if summary.TokensUsed != 42 {
		t.Errorf("tokens = %d", summary.TokensUsed)
	}
}

func TestGenerateSummaryRejectsHallucinatedQuarter(t *testing.T) {
	mock := &mockProvider{
		name:      "mock",
		available: true,
		summary:   "The parse covers 1948-02 and also 1953-03 with large cuts.",
	}
	s := mockSummarizer(mock)

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary == nil || summary.Enabled {
		t.Fatalf("summary = %+v, want rejected", summary)
	}
	if summary.SummaryMD != "" {
		t.Errorf("rejected summary kept its text: %q", summary.SummaryMD)
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "1953-03") {
		t.Errorf("warnings = %v, want hallucinated quarter named", summary.Warnings)
	}
}

func TestBuildPromptPinsActNames(t *testing.T) {
	prompt := BuildPrompt(testReport())
	if !strings.Contains(prompt, "Revenue Act of 1948") {
		t.Error("prompt missing act name allowlist")
	}
	if !strings.Contains(prompt, "DO NOT invent") {
		t.Error("prompt missing anti-hallucination rule")
	}
}

func TestExtractQuarters(t *testing.T) {
	got := extractQuarters("growth in 1948-02, again 1948-02, then 1950-01")
	if len(got) != 2 || got[0] != "1948-02" || got[1] != "1950-01" {
		t.Errorf("extractQuarters = %v", got)
	}
}

func TestHostLimiterAllow(t *testing.T) {
	l := NewHostLimiter(1, 1)

	if !l.Allow("http://localhost:11434") {
		t.Error("first request must pass")
	}
	if l.Allow("http://localhost:11434") {
		t.Error("burst of 1 must throttle the second request")
	}
	// A different host has its own bucket
	if !l.Allow("https://api.openai.com") {
		t.Error("second host must not share the first host's bucket")
	}
}
