package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidPayload = errors.New("payload inválido")
)

// FieldViolation describe un campo del payload que no pasó la validación.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones de un payload, no solo la primera.
// errors.Is(err, ErrInvalidPayload) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return ErrInvalidPayload.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPayload }

// NewValidationError devuelve nil si no hay violaciones.
func NewValidationError(violations []FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
