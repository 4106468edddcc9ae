package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/repository"
)

var (
	// ErrProRequired is returned when a feature needs an active Pro plan.
	ErrProRequired = errors.New("pro subscription required")
	// ErrAlreadyPro is returned when upgrading a user who is already Pro.
	ErrAlreadyPro = errors.New("already on an active pro plan")
	// ErrInvalidCredentials covers unknown emails, wrong passwords and
	// disabled accounts alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefresh is returned for unknown, expired or revoked refresh
	// tokens.
	ErrInvalidRefresh = errors.New("invalid refresh token")

	ErrInvalidTransition = model.ErrInvalidTransition

	ErrNotFound  = repository.ErrNotFound
	ErrForbidden = repository.ErrForbidden
	ErrConflict  = repository.ErrConflict
)

// ValidationError carries field level messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects messages and turns into a *ValidationError only when
// something was added.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// absorb records the fields of a *ValidationError and returns any other
// error unchanged.
func (f fieldErrors) absorb(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		for k, v := range ve.Fields {
			f.add(k, v)
		}
		return nil
	}
	return err
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ExistingError reports a duplicate submission together with the record
// that already exists, so callers can send the client to it.
type ExistingError struct {
	Kind string // application or enrollment
	ID   uint64
}

func (e *ExistingError) Error() string { return e.Kind + " already exists" }

func (e *ExistingError) Unwrap() error { return ErrConflict }
