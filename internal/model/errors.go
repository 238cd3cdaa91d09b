package model

import (
	"errors"
	"fmt"
)

// ErrUnknownProfile is returned when a profile id is not registered.
var ErrUnknownProfile = errors.New("unknown content profile")

// ConfigurationError reports a malformed profile or an out-of-range score.
// It is never turned into a verdict.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError formats a ConfigurationError for field.
func NewConfigurationError(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ContractViolation reports structurally invalid input handed to a checkpoint.
type ContractViolation struct {
	Checkpoint string
	Reason     string
	Err        error
}

func (e *ContractViolation) Error() string {
	msg := "contract violation"
	if e.Checkpoint != "" {
		msg += " in " + e.Checkpoint
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ContractViolation) Unwrap() error { return e.Err }

// NewContractViolation formats a ContractViolation for checkpoint.
func NewContractViolation(checkpoint, format string, args ...interface{}) *ContractViolation {
	return &ContractViolation{Checkpoint: checkpoint, Reason: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsContractViolation reports whether err wraps a ContractViolation.
func IsContractViolation(err error) bool {
	var cv *ContractViolation
	return errors.As(err, &cv)
}
