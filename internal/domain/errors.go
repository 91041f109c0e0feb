package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation signals a rejected input field. Surfaced to callers with field context.
	ErrValidation = errors.New("validation failed")
	// ErrArtifactNotFound signals that no candidate storage location yields a model.
	ErrArtifactNotFound = errors.New("model artifact not found")
	// ErrArtifactLoad signals that every loading strategy failed for a candidate.
	ErrArtifactLoad = errors.New("model artifact load failed")
	// ErrModelInvocation signals a model that failed its smoke test or raised during inference.
	ErrModelInvocation = errors.New("model invocation failed")
	// ErrNotFound signals a missing registry record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a registry record that would be overwritten.
	ErrAlreadyExists = errors.New("already exists")
)

// FieldError wraps ErrValidation with the offending field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// ArtifactNotFoundError wraps ErrArtifactNotFound with every location tried.
type ArtifactNotFoundError struct {
	Tried []string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrArtifactNotFound.Error(), strings.Join(e.Tried, ", "))
}

func (e *ArtifactNotFoundError) Unwrap() error { return ErrArtifactNotFound }

// StrategyFailure records one loading strategy's failure reason.
type StrategyFailure struct {
	Strategy string
	Err      error
}

// ArtifactLoadError wraps ErrArtifactLoad with the failure reason of every
// strategy attempted against the candidate path. Diagnosability over silent
// fallback: nothing is dropped from the aggregate.
type ArtifactLoadError struct {
	Path     string
	Attempts []StrategyFailure
}

func (e *ArtifactLoadError) Error() string {
	reasons := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		reasons[i] = fmt.Sprintf("%s: %v", a.Strategy, a.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrArtifactLoad.Error(), e.Path, strings.Join(reasons, " | "))
}

func (e *ArtifactLoadError) Unwrap() error { return ErrArtifactLoad }
