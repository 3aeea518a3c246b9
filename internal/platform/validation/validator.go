// Package validation runs struct-tag validation on usecase inputs.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"gallery_backend/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// Struct validates s. Failures are wrapped in domain.ErrValidation.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fields := Fields(err)
	if len(fields) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+" "+f.Tag)
	}
	return &Error{Fields: fields, msg: strings.Join(parts, ", ")}
}

// Fields extracts the failed rules from a validator error.
func Fields(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: strings.ToLower(e.Field()), Tag: e.Tag()})
	}
	return out
}

// Error is a validation failure with per-field details.
type Error struct {
	Fields []FieldError
	msg    string
}

func (e *Error) Error() string {
	return domain.ErrValidation.Error() + ": " + e.msg
}

func (e *Error) Unwrap() error {
	return domain.ErrValidation
}
