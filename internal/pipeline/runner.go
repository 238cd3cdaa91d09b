// Package pipeline sequences the validation checkpoints for one submission.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/statekit"
	"github.com/google/uuid"
	"github.com/ppiankov/draftcheck/internal/corpus"
	"github.com/ppiankov/draftcheck/internal/extract"
	"github.com/ppiankov/draftcheck/internal/logging"
	"github.com/ppiankov/draftcheck/internal/metrics"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/validate"
)

const (
	eventStart    = "start"
	eventHalt     = "halt"
	eventComplete = "complete"
)

// runContext is the state machine context of one run.
type runContext struct {
	RunID string
}

// Runner executes checkpoints in order and stops at the first Critical
// verdict. A Runner holds no per-run state and may be shared.
type Runner struct {
	checkpoints []validate.Checkpoint
	references  *extract.ReferenceExtractor
	logger      *logging.Logger
	metrics     *metrics.Recorder
}

// NewRunner creates a runner. With no checkpoints the default order
// transcript, entity, structure, format, claims, depth is used. logger and
// recorder may be nil.
func NewRunner(logger *logging.Logger, recorder *metrics.Recorder, checkpoints ...validate.Checkpoint) *Runner {
	if len(checkpoints) == 0 {
		checkpoints = validate.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{
		checkpoints: checkpoints,
		references:  extract.NewReferenceExtractor(),
		logger:      logger,
		metrics:     recorder,
	}
}

// Checkpoints returns the checkpoint names in run order.
func (r *Runner) Checkpoints() []string {
	names := make([]string, len(r.checkpoints))
	for i, cp := range r.checkpoints {
		names[i] = cp.Name()
	}
	return names
}

// Run validates sub against p. Content defects and broken inputs end up in
// the report; only configuration errors are returned.
func (r *Runner) Run(sub *model.Submission, p *model.ContentProfile) (*model.PipelineReport, error) {
	if p == nil {
		return nil, model.NewConfigurationError("profile", "no content profile")
	}
	if sub == nil {
		sub = &model.Submission{}
	}

	report := &model.PipelineReport{
		RunID:     uuid.NewString(),
		Profile:   p.ID,
		Subject:   sub.Subject,
		StartedAt: time.Now().UTC(),
		Verdicts:  []model.Verdict{},
		Overall:   model.SeverityPass,
		State:     model.StateNotStarted,
	}

	lc, err := newLifecycle(report.RunID)
	if err != nil {
		return nil, err
	}
	log := r.logger.With("run_id", report.RunID, "profile", p.ID)

	in := r.prepare(sub, p)
	lc.send(eventStart)
	report.State = lc.state()

	for i, cp := range r.checkpoints {
		start := time.Now()
		v, err := runCheckpoint(cp, in)
		elapsed := time.Since(start)

		if err != nil {
			if model.IsConfigurationError(err) {
				log.Error("checkpoint configuration error", "checkpoint", cp.Name(), "error", err)
				return nil, fmt.Errorf("%s: %w", cp.Name(), err)
			}
			log.Warn("checkpoint failed", "checkpoint", cp.Name(), "error", err)
			v = model.InternalFailure(cp.Name(), err)
		}
		v.Checkpoint = cp.Name()
		v.Elapsed = elapsed
		report.Record(v)

		log.Info("checkpoint finished",
			"index", i,
			"checkpoint", cp.Name(),
			"severity", v.Severity.String(),
			"duration", elapsed)
		r.metrics.ObserveVerdict(cp.Name(), v.Severity.String(), elapsed, v.Score)

		if cp.Name() == validate.NameClaims {
			in.ClaimOutcomes = v.Claims
		}

		if v.Severity == model.SeverityCritical {
			report.HaltedAt = cp.Name()
			lc.send(eventHalt)
			break
		}
	}

	if report.HaltedAt == "" {
		lc.send(eventComplete)
	}
	report.State = lc.state()

	log.Info("pipeline finished",
		"state", string(report.State),
		"overall", report.Overall.String(),
		"halted_at", report.HaltedAt)
	r.metrics.ObserveRun(p.ID, string(report.State), report.Overall.String())

	return report, nil
}

// prepare derives the shared per-run inputs.
func (r *Runner) prepare(sub *model.Submission, p *model.ContentProfile) *validate.Input {
	in := &validate.Input{
		Profile:    p,
		Transcript: sub.Transcript,
		Document:   sub.Document,
		Subject:    sub.Subject,
		Confidence: sub.Confidence,
	}
	if sub.Transcript != nil {
		in.Corpus = corpus.BuildTranscript(sub.Transcript)
	}
	if sub.Document != nil {
		in.Claims = extract.NewClaimExtractor(p.Fabrication.ContextWords).Extract(sub.Document)
		in.References = r.references.Extract(sub.Document)
	}
	return in
}

// errPanic marks a recovered checkpoint panic.
var errPanic = errors.New("checkpoint panicked")

func runCheckpoint(cp validate.Checkpoint, in *validate.Input) (v model.Verdict, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = model.Verdict{}
			err = fmt.Errorf("%w: %v", errPanic, rec)
		}
	}()
	return cp.Check(in)
}

// lifecycle tracks not_started -> running -> halted | completed.
type lifecycle struct {
	interp *statekit.Interpreter[runContext]
}

func newLifecycle(runID string) (*lifecycle, error) {
	builder := statekit.NewMachine[runContext]("pipeline-run").
		WithInitial(statekit.StateID(model.StateNotStarted)).
		WithContext(runContext{RunID: runID})

	builder.State(statekit.StateID(model.StateNotStarted)).
		On(eventStart).Target(statekit.StateID(model.StateRunning)).
		Done()

	builder.State(statekit.StateID(model.StateRunning)).
		On(eventHalt).Target(statekit.StateID(model.StateHalted)).
		On(eventComplete).Target(statekit.StateID(model.StateCompleted)).
		Done()

	builder.State(statekit.StateID(model.StateHalted)).Done()
	builder.State(statekit.StateID(model.StateCompleted)).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build run state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &lifecycle{interp: interp}, nil
}

func (l *lifecycle) send(event string) {
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

func (l *lifecycle) state() model.RunState {
	return model.RunState(l.interp.State().Value)
}
