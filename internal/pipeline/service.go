package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/draftcheck/internal/artifact"
	"github.com/ppiankov/draftcheck/internal/cache"
	"github.com/ppiankov/draftcheck/internal/logging"
	"github.com/ppiankov/draftcheck/internal/metrics"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/profile"
	"github.com/ppiankov/draftcheck/internal/review"
	"github.com/ppiankov/draftcheck/internal/validate"
	"github.com/ppiankov/draftcheck/internal/worker"
)

// Service is the library entry point: single checkpoints, whole runs and
// bundle files.
type Service struct {
	profiles       *profile.Registry
	runner         *Runner
	documents      *artifact.Registry
	reports        *cache.ReportCache // nil when caching is disabled
	reviewer       *review.Reviewer   // nil when no reviewer is configured
	logger         *logging.Logger
	defaultProfile string
}

// DepthInputs are the derived inputs of the depth score. Nil references
// are extracted from the document.
type DepthInputs struct {
	References    []model.DomainReference
	ClaimOutcomes []model.ClaimOutcome
}

// NewService wires a service from configuration. logger and recorder may
// be nil.
func NewService(cfg *model.Config, logger *logging.Logger, recorder *metrics.Recorder) (*Service, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	profiles := profile.NewRegistry()
	if cfg.Profiles.File != "" {
		if err := profiles.LoadFile(cfg.Profiles.File); err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
	}

	s := &Service{
		profiles:       profiles,
		runner:         NewRunner(logger, recorder),
		documents:      artifact.NewRegistry(),
		logger:         logger,
		defaultProfile: cfg.Profiles.Default,
	}

	if cfg.Cache.Enabled {
		store := cache.NewDefault(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		s.reports = cache.NewReportCache(store, cfg.Cache.DiskTTL)
	}

	reviewCfg := review.ConfigFromModel(cfg.Review)
	if reviewCfg.Provider != "" {
		limiter := worker.NewLimiter(reviewCfg.RequestsPerSecond, reviewCfg.Burst)
		r, err := review.NewReviewer(reviewCfg, limiter)
		if err != nil {
			logger.Warn("reviewer disabled", "provider", reviewCfg.Provider, "error", err)
		} else {
			s.reviewer = r
		}
	}

	return s, nil
}

// Profiles returns the profile registry.
func (s *Service) Profiles() *profile.Registry {
	return s.profiles
}

// Documents returns the document loader registry.
func (s *Service) Documents() *artifact.Registry {
	return s.documents
}

// Profile resolves id, falling back to the configured default.
func (s *Service) Profile(id string) (*model.ContentProfile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = s.defaultProfile
	}
	return s.profiles.Get(id)
}

// ValidateTranscriptQuality runs the transcript checkpoint alone.
func (s *Service) ValidateTranscriptQuality(t *model.SourceTranscript, profileID string) (model.Verdict, error) {
	return s.checkOne(validate.NewTranscriptQuality(), profileID, &validate.Input{Transcript: t})
}

// ValidateEntityConsistency runs the entity checkpoint alone. The profile
// is the one the document declares.
func (s *Service) ValidateEntityConsistency(subject string, confidence float64, t *model.SourceTranscript, doc *model.CandidateDocument) (model.Verdict, error) {
	profileID := ""
	if doc != nil {
		profileID = doc.Profile
	}
	return s.checkOne(validate.NewEntityConsistency(nil), profileID, &validate.Input{
		Transcript: t,
		Document:   doc,
		Subject:    subject,
		Confidence: confidence,
	})
}

// ValidateStructure runs the structural checkpoint alone.
func (s *Service) ValidateStructure(doc *model.CandidateDocument, profileID string) (model.Verdict, error) {
	return s.checkOne(validate.NewStructuralCompleteness(), profileID, &validate.Input{Document: doc})
}

// ValidateClaims traces claims against the transcript.
func (s *Service) ValidateClaims(claims []model.QuantitativeClaim, t *model.SourceTranscript, profileID string) (model.Verdict, error) {
	return s.checkOne(validate.NewFabrication(), profileID, &validate.Input{Transcript: t, Claims: claims})
}

// ValidateTechnicalDepth computes the depth score alone.
func (s *Service) ValidateTechnicalDepth(doc *model.CandidateDocument, depth DepthInputs, profileID string) (model.Verdict, error) {
	refs := depth.References
	if refs == nil && doc != nil {
		refs = s.runner.references.Extract(doc)
	}
	return s.checkOne(validate.NewTechnicalDepth(), profileID, &validate.Input{
		Document:      doc,
		References:    refs,
		ClaimOutcomes: depth.ClaimOutcomes,
	})
}

// checkOne applies the runner's error policy to a single checkpoint.
func (s *Service) checkOne(cp validate.Checkpoint, profileID string, in *validate.Input) (model.Verdict, error) {
	p, err := s.Profile(profileID)
	if err != nil {
		return model.Verdict{}, err
	}
	in.Profile = p

	v, err := runCheckpoint(cp, in)
	if err != nil {
		if model.IsConfigurationError(err) {
			return model.Verdict{}, err
		}
		return model.InternalFailure(cp.Name(), err), nil
	}
	return v, nil
}

// RunPipeline validates a loaded submission.
func (s *Service) RunPipeline(sub *model.Submission) (*model.PipelineReport, error) {
	profileID := ""
	if sub != nil {
		profileID = sub.Profile
	}
	p, err := s.Profile(profileID)
	if err != nil {
		return nil, err
	}
	return s.runner.Run(sub, p)
}

// ValidateBundle loads a bundle file, validates it and attaches the
// optional reviewer note. Cached reports are reused when caching is on.
func (s *Service) ValidateBundle(ctx context.Context, bundlePath string) (*model.PipelineReport, error) {
	b, err := artifact.LoadBundle(bundlePath)
	if err != nil {
		return nil, err
	}
	return s.ValidateLoaded(ctx, b)
}

// ValidateLoaded validates a bundle whose paths are already resolved.
func (s *Service) ValidateLoaded(ctx context.Context, b *artifact.Bundle) (*model.PipelineReport, error) {
	sub, err := b.Load(s.documents)
	if err != nil {
		return nil, err
	}
	p, err := s.Profile(sub.Profile)
	if err != nil {
		return nil, err
	}

	key := cache.SubmissionKey(p, sub.Subject, sub.Confidence, sub.TranscriptBytes, sub.DocumentBytes)
	report, hit := s.cached(key)
	if !hit {
		report, err = s.runner.Run(sub, p)
		if err != nil {
			return nil, err
		}
		s.store(key, report)
	}

	s.attachReview(ctx, report)
	return report, nil
}

func (s *Service) cached(key string) (*model.PipelineReport, bool) {
	if s.reports == nil {
		return nil, false
	}
	report, ok := s.reports.Get(key)
	if ok {
		s.logger.Debug("report cache hit", "key", key)
	}
	return report, ok
}

func (s *Service) store(key string, report *model.PipelineReport) {
	if s.reports == nil {
		return
	}
	if err := s.reports.Put(key, report); err != nil {
		s.logger.Warn("report cache write failed", "key", key, "error", err)
	}
}

// attachReview adds the reviewer note after all verdicts are final.
func (s *Service) attachReview(ctx context.Context, report *model.PipelineReport) {
	if s.reviewer == nil || !s.reviewer.IsEnabled() {
		return
	}
	note, err := s.reviewer.Review(ctx, *report)
	if err != nil {
		s.logger.Warn("reviewer note failed", "provider", s.reviewer.ProviderName(), "error", err)
		return
	}
	report.Review = note
}
