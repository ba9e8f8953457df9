package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("no encontrado")
	ErrValidation = errors.New("validación")
)

// ValidationError describe un dato de entrada inválido. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
