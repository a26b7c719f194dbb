// Package errs define la taxonomía de fallas compartida por todos los módulos.
// Los servicios devuelven estos errores envueltos con %w; los handlers los
// traducen a status HTTP con errors.Is.
package errs

import (
	"errors"
	"strings"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrDuplicateApplication = errors.New("duplicate application")
	ErrConflict             = errors.New("conflict")
	ErrStaleWrite           = errors.New("stale write")
	ErrNotFound             = errors.New("not found")
)

// ValidationError lista los campos inválidos de un comando.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Fields acumula campos inválidos en orden de detección.
type Fields []string

func (f *Fields) Add(name string) {
	*f = append(*f, name)
}

// Err devuelve nil si no hubo campos inválidos.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: append([]string(nil), f...)}
}

// Kind devuelve el nombre estable del error para respuestas de API.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrDuplicateApplication):
		return "duplicate_application"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrStaleWrite):
		return "stale_write"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
