package model

import "time"

// RunState is a Pipeline Runner lifecycle state.
type RunState string

const (
	StateNotStarted RunState = "not_started"
	StateRunning    RunState = "running"
	StateHalted     RunState = "halted"
	StateCompleted  RunState = "completed"
)

// PipelineReport is the ordered outcome of one pipeline run.
type PipelineReport struct {
	RunID     string    `json:"run_id"`
	Profile   string    `json:"profile"`
	Subject   string    `json:"subject"`
	StartedAt time.Time `json:"started_at"`
	Verdicts  []Verdict `json:"verdicts"`
	Overall   Severity  `json:"overall"`
	State     RunState  `json:"state"`
	HaltedAt  string    `json:"halted_at,omitempty"`

	Review *ReviewNote `json:"review,omitempty"` // Optional reviewer note (separate, never affects severity)
}

// Record appends a verdict and folds its severity into the overall result.
func (r *PipelineReport) Record(v Verdict) {
	r.Verdicts = append(r.Verdicts, v)
	r.Overall = MaxSeverity(r.Overall, v.Severity)
}

// Verdict returns the verdict recorded for the named checkpoint.
func (r *PipelineReport) Verdict(checkpoint string) (Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.Checkpoint == checkpoint {
			return v, true
		}
	}
	return Verdict{}, false
}

// ReviewNote is an optional model-written commentary on a finished report.
// It is rendered separately and never changes any verdict.
type ReviewNote struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	NoteMD   string   `json:"note_md,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
