package scorix

import "github.com/veridian-ai/scorix/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation      = domain.ErrValidation
	ErrModelNotFound   = domain.ErrArtifactNotFound
	ErrModelLoad       = domain.ErrArtifactLoad
	ErrModelInvocation = domain.ErrModelInvocation
)
