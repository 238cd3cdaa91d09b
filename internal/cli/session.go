package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/draftcheck/internal/logging"
	"github.com/ppiankov/draftcheck/internal/metrics"
	"github.com/ppiankov/draftcheck/internal/model"
	"github.com/ppiankov/draftcheck/internal/pipeline"
)

// session holds what one command invocation needs.
type session struct {
	cfg      *model.Config
	log      *logging.Logger
	recorder *metrics.Recorder
	svc      *pipeline.Service
	renderer *pipeline.Renderer
}

// newSession applies mutate to the loaded configuration before wiring the
// service.
func newSession(mutate func(*model.Config)) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}

	log, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Textfile != "" {
		recorder = metrics.NewRecorder()
	}

	svc, err := pipeline.NewService(cfg, log, recorder)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		log:      log,
		recorder: recorder,
		svc:      svc,
		renderer: pipeline.NewRenderer(os.Stdout, cfg.Output.Color),
	}, nil
}

// close exports metrics and flushes the logger.
func (s *session) close() {
	if s.recorder != nil {
		if err := s.recorder.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write metrics: %v\n", err)
		}
	}
	s.log.Sync()
}
