package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/review"
)

// Renderer writes reports as JSON, Markdown and a terminal summary.
type Renderer struct {
	out     io.Writer
	colored bool
}

// NewRenderer creates a renderer whose summary goes to out.
func NewRenderer(out io.Writer, colored bool) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out, colored: colored}
}

// RenderReport writes the JSON and Markdown reports when their paths are
// set, the reviewer note next to the Markdown report, then the summary.
func (r *Renderer) RenderReport(report *model.PipelineReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := r.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := r.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if report.Review != nil && report.Review.Enabled && mdPath != "" {
		reviewPath := ReviewPath(mdPath)
		if err := writeFile(reviewPath, []byte(review.RenderSeparateMarkdown(report.Review))); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write reviewer note: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Reviewer Note: %s\n", reviewPath)
		}
	}

	r.RenderSummary(report)
	return nil
}

// ReviewPath derives the reviewer note path from the Markdown report path.
func ReviewPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".review.md"
}

// RenderJSON writes the indented JSON report.
func (r *Renderer) RenderJSON(report *model.PipelineReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the Markdown report.
func (r *Renderer) RenderMarkdown(report *model.PipelineReport, path string) error {
	return writeFile(path, []byte(MarkdownReport(report)))
}

// MarkdownReport formats report as Markdown.
func MarkdownReport(report *model.PipelineReport) string {
	var b strings.Builder

	title := report.Subject
	if title == "" {
		title = "(no subject)"
	}
	fmt.Fprintf(&b, "# Validation Report: %s\n\n", title)
	fmt.Fprintf(&b, "- **Profile:** %s\n", report.Profile)
	fmt.Fprintf(&b, "- **Overall:** %s\n", strings.ToUpper(report.Overall.String()))
	fmt.Fprintf(&b, "- **State:** %s\n", report.State)
	if report.HaltedAt != "" {
		fmt.Fprintf(&b, "- **Halted at:** %s\n", report.HaltedAt)
	}
	fmt.Fprintf(&b, "- **Run:** %s (%s)\n\n", report.RunID, report.StartedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("| Checkpoint | Severity | Score |\n")
	b.WriteString("|---|---|---|\n")
	for _, v := range report.Verdicts {
		scoreText := "-"
		if v.Score != nil {
			scoreText = fmt.Sprintf("%.2f", *v.Score)
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", v.Checkpoint, v.Severity, scoreText)
	}
	b.WriteString("\n")

	for _, v := range report.Verdicts {
		fmt.Fprintf(&b, "## %s\n\n", v.Checkpoint)
		if v.InternalError {
			b.WriteString("_Internal error: the checkpoint could not judge its inputs._\n\n")
		}
		if len(v.Messages) == 0 {
			b.WriteString("No findings.\n\n")
		}
		for _, msg := range v.Messages {
			fmt.Fprintf(&b, "- %s\n", msg)
		}
		if len(v.Messages) > 0 {
			b.WriteString("\n")
		}

		if len(v.Signals) > 0 {
			b.WriteString("| Signal | Value | Weight |\n|---|---|---|\n")
			for _, s := range v.Signals {
				fmt.Fprintf(&b, "| %s | %.2f | %.2f |\n", s.Name, s.Value, s.Weight)
			}
			b.WriteString("\n")
		}

		if len(v.Claims) > 0 {
			b.WriteString("| Claim | Section | Result | Similarity |\n|---|---|---|---|\n")
			for _, c := range v.Claims {
				fmt.Fprintf(&b, "| %s | %s | %s | %.2f |\n",
					escapeCell(c.Claim.Value), escapeCell(c.Claim.Section), c.Severity, c.Similarity)
			}
			b.WriteString("\n")
		}
	}

	skipped := skippedCheckpoints(report)
	if len(skipped) > 0 {
		fmt.Fprintf(&b, "_Not run after halt: %s_\n", strings.Join(skipped, ", "))
	}
	return b.String()
}

// RenderSummary prints a short colored summary.
func (r *Renderer) RenderSummary(report *model.PipelineReport) {
	header := color.New(color.FgCyan, color.Bold)
	if !r.colored {
		header.DisableColor()
	}

	fmt.Fprintln(r.out)
	header.Fprintln(r.out, "═══════════════════════════════════════════════════")
	header.Fprintf(r.out, "  %s (%s)\n", report.Subject, report.Profile)
	header.Fprintln(r.out, "═══════════════════════════════════════════════════")

	for _, v := range report.Verdicts {
		line := fmt.Sprintf("  %-26s %s", v.Checkpoint, strings.ToUpper(v.Severity.String()))
		if v.Score != nil {
			line += fmt.Sprintf("  (%.2f)", *v.Score)
		}
		r.severityColor(v.Severity).Fprintln(r.out, line)
	}

	fmt.Fprintln(r.out)
	result := fmt.Sprintf("  Result: %s", strings.ToUpper(report.Overall.String()))
	if report.HaltedAt != "" {
		result += fmt.Sprintf(" (halted at %s)", report.HaltedAt)
	}
	r.severityColor(report.Overall).Add(color.Bold).Fprintln(r.out, result)
}

func (r *Renderer) severityColor(sev model.Severity) *color.Color {
	var c *color.Color
	switch sev {
	case model.SeverityCritical:
		c = color.New(color.FgRed)
	case model.SeverityWarning:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgGreen)
	}
	if !r.colored {
		c.DisableColor()
	}
	return c
}

// skippedCheckpoints lists the default checkpoints that never ran.
func skippedCheckpoints(report *model.PipelineReport) []string {
	if report.HaltedAt == "" {
		return nil
	}
	var skipped []string
	for _, name := range defaultOrder() {
		if _, ok := report.Verdict(name); !ok {
			skipped = append(skipped, name)
		}
	}
	return skipped
}

func defaultOrder() []string {
	return NewRunner(nil, nil).Checkpoints()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
