package review

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/worker"
)

// Reviewer attaches reviewer notes to reports.
type Reviewer struct {
	provider Provider
	limiter  *worker.Limiter
	config   Config
}

// NewReviewer builds a reviewer from config. A nil limiter disables
// throttling.
func NewReviewer(config Config, limiter *worker.Limiter) (*Reviewer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Reviewer{provider: provider, limiter: limiter, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (r *Reviewer) IsEnabled() bool {
	return r != nil && r.provider != nil
}

// ProviderName returns the configured provider name or "".
func (r *Reviewer) ProviderName() string {
	if !r.IsEnabled() {
		return ""
	}
	return r.provider.Name()
}

// Review writes a note for report. It returns nil when review is disabled.
// Provider failures are returned as errors; callers log them and keep the
// report unchanged.
func (r *Reviewer) Review(ctx context.Context, report model.PipelineReport) (*model.ReviewNote, error) {
	if !r.IsEnabled() {
		return nil, nil
	}

	if !r.provider.IsAvailable(ctx) {
		return &model.ReviewNote{
			Enabled:  false,
			Provider: r.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available", r.provider.Name())},
		}, nil
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.provider.Name()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	resp, err := r.provider.Review(ctx, Request{
		Report:    report,
		Model:     r.config.Model,
		MaxTokens: r.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}

	note := &model.ReviewNote{
		Enabled:  true,
		Provider: r.provider.Name(),
		Model:    resp.Model,
		NoteMD:   resp.Note,
	}
	if resp.TokensUsed > 0 {
		note.Warnings = append(note.Warnings, fmt.Sprintf("tokens used: %d", resp.TokensUsed))
	}
	for _, n := range UngroundedNumbers(resp.Note, report) {
		note.Warnings = append(note.Warnings, fmt.Sprintf("note mentions %q, which does not appear in the report", n))
	}
	return note, nil
}

var noteNumberRe = regexp.MustCompile(`\d+(?:[.,]\d+)*%?`)

// UngroundedNumbers lists numbers in note that occur nowhere in the
// report's messages or sub-scores.
func UngroundedNumbers(note string, report model.PipelineReport) []string {
	var corpus strings.Builder
	corpus.WriteString(report.Subject)
	for _, v := range report.Verdicts {
		for _, m := range v.Messages {
			corpus.WriteString(" ")
			corpus.WriteString(m)
		}
		for _, s := range v.Signals {
			fmt.Fprintf(&corpus, " %s %.2f %.2f", s.Name, s.Value, s.Weight)
		}
	}
	known := corpus.String()

	var out []string
	seen := make(map[string]bool)
	for _, n := range noteNumberRe.FindAllString(note, -1) {
		bare := strings.TrimSuffix(n, "%")
		if seen[n] || strings.Contains(known, bare) {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// RenderSeparateMarkdown renders a note for the standalone .review.md file.
func RenderSeparateMarkdown(note *model.ReviewNote) string {
	if note == nil || !note.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Reviewer Note\n\n")
	b.WriteString("> **GENERATED CONTENT.** This note was written by a language model from the validation report. ")
	b.WriteString("Verdicts and severities were determined independently and are not affected by it.\n\n")
	fmt.Fprintf(&b, "- **Provider:** %s\n", note.Provider)
	if note.Model != "" {
		fmt.Fprintf(&b, "- **Model:** %s\n", note.Model)
	}
	b.WriteString("\n")

	if strings.TrimSpace(note.NoteMD) == "" {
		b.WriteString("_No note generated._\n")
	} else {
		b.WriteString(note.NoteMD)
		b.WriteString("\n")
	}

	if len(note.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range note.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
