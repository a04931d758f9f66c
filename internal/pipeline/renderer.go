package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/actsum/internal/model"
)

// Renderer writes parse reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderActsJSON writes the structured act records to a JSON file
func (r *Renderer) RenderActsJSON(report *model.Report, path string) error {
	return writeJSON(path, report.Acts)
}

// RenderLabelsJSON writes the label records to a JSON file
func (r *Renderer) RenderLabelsJSON(report *model.Report, path string) error {
	return writeJSON(path, report.Labels)
}

// RenderReportJSON writes the complete report, diagnostics included
func (r *Renderer) RenderReportJSON(report *model.Report, path string) error {
	return writeJSON(path, report)
}

// RenderMarkdown writes a human-readable overview of the parse
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Subject)
	fmt.Fprintf(&b, "Parsed %s — %d acts, %d labels, quality %d/100 (%s)\n\n",
		report.ParsedAt.Format("2006-01-02 15:04 UTC"),
		len(report.Acts), len(report.Labels), report.Quality.Index, report.Quality.Confidence)

	fmt.Fprintf(&b, "## Acts\n\n")
	fmt.Fprintf(&b, "| Act | Signed | Std | Retro | PV | Classification |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")
	for _, act := range report.Acts {
		category, exogeneity := act.PrimaryClassification()
		classification := "—"
		if category != "" {
			classification = fmt.Sprintf("%s; %s", exogeneity, category)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %s |\n",
			act.ActName, act.DateSigned,
			len(act.StandardEntries), len(act.RetroactiveEntries), len(act.PresentValueEntries),
			classification)
	}
	b.WriteString("\n")

	if len(report.Labels) > 0 {
		fmt.Fprintf(&b, "## Labels\n\n")
		for _, label := range report.Labels {
			attribution := label.Source
			if label.Date != "" {
				if attribution != "" {
					attribution += ", "
				}
				attribution += label.Date
			}
			if attribution == "" {
				attribution = "unattributed"
			}
			fmt.Fprintf(&b, "- **%s** (%s): \"%s\"\n", label.ActName, attribution, label.Motivation)
		}
		b.WriteString("\n")
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintf(&b, "## Diagnostics\n\n")
		for _, d := range report.Diagnostics {
			where := ""
			if d.Act != "" {
				where = fmt.Sprintf(" [%s]", d.Act)
			}
			fmt.Fprintf(&b, "- %s (%s)%s: %s\n", d.Type, d.Severity, where, d.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Quality\n\n")
	for _, signal := range report.Quality.Signals {
		fmt.Fprintf(&b, "- %s (%s): %s\n", signal.Type, signal.Severity, signal.Description)
	}

	if r.includeFooter {
		b.WriteString("\n---\n_Generated by actsum._\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// RenderLLMMarkdown writes the standalone LLM overview document
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	return os.WriteFile(path, []byte(markdown), 0644)
}

// RenderSummary prints the per-act run summary to stdout, mirroring the
// counts a researcher checks after each corpus run.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("Found %d acts\n", len(report.Acts))
	for _, act := range report.Acts {
		fmt.Printf("  %s: std=%d, retro=%d, pv=%d\n",
			act.ActName, len(act.StandardEntries), len(act.RetroactiveEntries), len(act.PresentValueEntries))
	}
	fmt.Printf("Extracted %d labels, quality %d/100\n", len(report.Labels), report.Quality.Index)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
