package train

import (
	"context"

	"github.com/veridian-ai/scorix/internal/domain"
)

// Registry records published model versions. Optional: training without a
// registry produces a local, unversioned artifact.
type Registry interface {
	NextVersion(ctx context.Context, name string) (int, error)
	Save(ctx context.Context, mv domain.ModelVersion) error
	Promote(ctx context.Context, name string, version int) error
}
