package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var contract *validator.Validate

func init() {
	contract = validator.New()
	_ = contract.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// CheckContract validates the struct tags of v and reports failures as a
// ContractViolation attributed to checkpoint.
func CheckContract(checkpoint string, v interface{}) error {
	if v == nil {
		return NewContractViolation(checkpoint, "nil input")
	}
	err := contract.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ContractViolation{Checkpoint: checkpoint, Reason: "invalid input", Err: err}
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return NewContractViolation(checkpoint, "%s", strings.Join(parts, "; "))
}

// CheckConfidence enforces that caller confidence lies in [0,1].
func CheckConfidence(checkpoint string, confidence float64) error {
	if confidence != confidence || confidence < 0 || confidence > 1 {
		return NewContractViolation(checkpoint, "confidence %v outside [0,1]", confidence)
	}
	return nil
}
