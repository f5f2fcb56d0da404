package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValidation is matched by every input validation failure via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a caller input that violates a constraint.
// The calculation that produced it is aborted with no partial result.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Constraint
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Constraint)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidRateError is raised when a rate cannot be converted, i.e. it is
// below -100%. It unwraps to a *ValidationError.
type InvalidRateError struct {
	Field string
	Rate  decimal.Decimal
}

func (e *InvalidRateError) Error() string {
	return e.validation().Error()
}

// Unwrap exposes the underlying validation error so errors.As works with
// *ValidationError as well.
func (e *InvalidRateError) Unwrap() error {
	return e.validation()
}

func (e *InvalidRateError) validation() *ValidationError {
	field := e.Field
	if field == "" {
		field = "rate"
	}
	return &ValidationError{
		Field:      field,
		Constraint: fmt.Sprintf("rate %s%% is below -100%%", e.Rate.Mul(decimal.NewFromInt(100)).String()),
	}
}

// AsValidationError extracts the validation error from err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
