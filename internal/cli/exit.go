package cli

import (
	"fmt"

	"github.com/ppiankov/draftcheck/internal/model"
)

// Process exit codes.
const (
	ExitPass     = 0
	ExitWarning  = 1
	ExitCritical = 2
)

// ExitCode maps a severity to the process exit code.
func ExitCode(sev model.Severity) int {
	switch sev {
	case model.SeverityPass:
		return ExitPass
	case model.SeverityWarning:
		return ExitWarning
	default:
		return ExitCritical
	}
}

// exitStatus carries a non-zero exit code out of a command without
// printing an error.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// exitFor returns nil for Pass and an exitStatus otherwise.
func exitFor(sev model.Severity) error {
	if code := ExitCode(sev); code != ExitPass {
		return &exitStatus{code: code}
	}
	return nil
}
