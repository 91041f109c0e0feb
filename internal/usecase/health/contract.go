package health

import (
	"context"

	"github.com/veridian-ai/scorix/internal/artifact"
)

// ModelProvider supplies the active resolved model.
type ModelProvider interface {
	Get(ctx context.Context) (*artifact.Loaded, error)
}
