// Package validate implements the checkpoints of the validation pipeline.
//
// Every checkpoint is a pure function of its Input: it reads artifacts and
// the active profile and returns a Verdict. Content problems are reported
// as Warning or Critical verdicts. Errors are reserved for broken inputs
// (*model.ContractViolation) and broken configuration
// (*model.ConfigurationError).
package validate

import (
	"github.com/ppiankov/draftcheck/internal/corpus"
	"github.com/ppiankov/draftcheck/internal/model"
)

// Checkpoint names, in pipeline order.
const (
	NameTranscript = "transcript_quality"
	NameEntity     = "entity_consistency"
	NameStructure  = "structural_completeness"
	NameFormat     = "format_compliance"
	NameClaims     = "fabrication"
	NameDepth      = "technical_depth"
)

// Input carries everything a checkpoint may read. Checkpoints never
// modify it.
type Input struct {
	Profile    *model.ContentProfile
	Transcript *model.SourceTranscript
	Document   *model.CandidateDocument
	Subject    string
	Confidence float64

	// Derived per run.
	Corpus        *corpus.Index
	Claims        []model.QuantitativeClaim
	References    []model.DomainReference
	ClaimOutcomes []model.ClaimOutcome
}

// Checkpoint is one independently testable validation step.
type Checkpoint interface {
	Name() string
	Check(in *Input) (model.Verdict, error)
}

// Default returns the checkpoints in their dependency order.
func Default() []Checkpoint {
	return []Checkpoint{
		NewTranscriptQuality(),
		NewEntityConsistency(nil),
		NewStructuralCompleteness(),
		NewFormatCompliance(),
		NewFabrication(),
		NewTechnicalDepth(),
	}
}

func requireProfile(name string, in *Input) error {
	if in == nil {
		return model.NewContractViolation(name, "nil input")
	}
	if in.Profile == nil {
		return model.NewContractViolation(name, "no content profile")
	}
	return nil
}

func requireDocument(name string, in *Input) error {
	if in.Document == nil {
		return model.NewContractViolation(name, "candidate document is required")
	}
	return model.CheckContract(name, in.Document)
}

func requireTranscript(name string, in *Input) error {
	if in.Transcript == nil {
		return model.NewContractViolation(name, "source transcript is required")
	}
	return model.CheckContract(name, in.Transcript)
}

// corpusFor returns the prebuilt corpus or indexes the transcript.
func corpusFor(in *Input) *corpus.Index {
	if in.Corpus != nil {
		return in.Corpus
	}
	return corpus.BuildTranscript(in.Transcript)
}
