package model

import (
	"fmt"
	"time"
)

// InternalErrorTag marks verdicts produced from contract violations or panics.
const InternalErrorTag = "internal error"

// Verdict is the output of a single checkpoint.
type Verdict struct {
	Checkpoint    string         `json:"checkpoint"`
	Severity      Severity       `json:"severity"`
	Messages      []string       `json:"messages"`
	Score         *float64       `json:"score,omitempty"`
	Signals       []Signal       `json:"signals,omitempty"`
	Claims        []ClaimOutcome `json:"claims,omitempty"`
	InternalError bool           `json:"internal_error,omitempty"`
	Elapsed       time.Duration  `json:"elapsed_ns,omitempty"`
}

// Signal is one transparent scoring input, e.g. a depth sub-score.
type Signal struct {
	Name        string                 `json:"name"`
	Value       float64                `json:"value"`
	Weight      float64                `json:"weight,omitempty"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// ClaimOutcome records how a single quantitative claim fared against the source.
type ClaimOutcome struct {
	Claim          QuantitativeClaim `json:"claim"`
	Severity       Severity          `json:"severity"`
	Reason         string            `json:"reason,omitempty"`
	Similarity     float64           `json:"similarity"`
	MatchedSegment string            `json:"matched_segment,omitempty"`
	Comparative    bool              `json:"comparative"`
}

// Clean reports whether the claim was confirmed without any diagnostic.
func (o ClaimOutcome) Clean() bool {
	return o.Severity == SeverityPass
}

// NewVerdict returns a passing verdict for the named checkpoint.
func NewVerdict(checkpoint string) Verdict {
	return Verdict{
		Checkpoint: checkpoint,
		Severity:   SeverityPass,
		Messages:   []string{},
	}
}

// Add records a diagnostic and raises the verdict severity to at least sev.
func (v *Verdict) Add(sev Severity, format string, args ...interface{}) {
	v.Severity = MaxSeverity(v.Severity, sev)
	v.Messages = append(v.Messages, fmt.Sprintf(format, args...))
}

// Note appends an informational message without changing severity.
func (v *Verdict) Note(format string, args ...interface{}) {
	v.Messages = append(v.Messages, fmt.Sprintf(format, args...))
}

// SetScore attaches a numeric score.
func (v *Verdict) SetScore(score float64) {
	v.Score = &score
}

// InternalFailure builds the Critical verdict reported when a checkpoint
// breaks its contract instead of judging content.
func InternalFailure(checkpoint string, cause error) Verdict {
	v := NewVerdict(checkpoint)
	v.InternalError = true
	v.Add(SeverityCritical, "%s: %v", InternalErrorTag, cause)
	return v
}
