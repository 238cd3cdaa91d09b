// Package review produces an optional reviewer note for a finished
// pipeline report. The note is advisory: it is rendered on its own and
// never changes a verdict.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/draftcheck/internal/model"
)

// Provider writes reviewer notes through a chat-completion backend.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Review generates a note for the report
	Review(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks that the backend is reachable and configured
	IsAvailable(ctx context.Context) bool
}

// Request is the input for one reviewer note.
type Request struct {
	Report model.PipelineReport

	// Prompt overrides the default prompt when set
	Prompt string

	Model     string
	MaxTokens int
}

// Response is the provider output.
type Response struct {
	Note       string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama" or "" (disabled)
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	Timeout   time.Duration
	MaxTokens int

	// Throttle for provider calls across a batch
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns a disabled configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		MaxTokens: 600,
	}
}

// ConfigFromModel converts the process configuration. A disabled review
// section yields an empty provider.
func ConfigFromModel(c model.ReviewConfig) Config {
	cfg := Config{
		Model:             c.Model,
		APIKey:            c.APIKey,
		BaseURL:           c.BaseURL,
		Timeout:           time.Duration(c.Timeout) * time.Second,
		MaxTokens:         c.MaxTokens,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.Burst,
	}
	if c.Enabled {
		cfg.Provider = c.Provider
	}
	return cfg
}

// BuildPrompt renders the default reviewer prompt. The reviewer may only
// restate what the checkpoints found.
func BuildPrompt(report model.PipelineReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are reviewing the validation report of a machine-generated technical document. The checkpoints below already decided the outcome; you cannot change it.

RULES:
1. Only restate findings listed in the report. Do not add facts, numbers or sources.
2. Do not quote any number that does not appear in the report.
3. Suggest concrete fixes for Warning and Critical findings.
4. Keep it under 150 words.

Report:
- Subject: %s
- Profile: %s
- Overall: %s
- State: %s
`, report.Subject, report.Profile, report.Overall, report.State)
	if report.HaltedAt != "" {
		fmt.Fprintf(&b, "- Halted at: %s\n", report.HaltedAt)
	}

	b.WriteString("\nFindings:\n")
	for _, v := range report.Verdicts {
		fmt.Fprintf(&b, "- %s [%s]\n", v.Checkpoint, v.Severity)
		for i, msg := range v.Messages {
			if i >= 5 {
				fmt.Fprintf(&b, "  ... and %d more\n", len(v.Messages)-5)
				break
			}
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}

	b.WriteString("\nWrite a short note for the author.")
	return b.String()
}
