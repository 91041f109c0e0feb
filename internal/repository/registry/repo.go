package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/veridian-ai/scorix/internal/domain"
)

// store is the consumer interface for model version records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores model version records as Redis hashes.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a model registry repository.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = "scorix:"
	}
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Save stores a new model version record. The (name, version) pair must be unused.
func (r *Repo) Save(ctx context.Context, mv domain.ModelVersion) error {
	key := r.versionKey(mv.Name, mv.Version)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, key, versionToHash(mv)); err != nil {
		return fmt.Errorf("hset model version %s v%d: %w", mv.Name, mv.Version, err)
	}
	return nil
}

// Get retrieves one model version record.
func (r *Repo) Get(ctx context.Context, name string, version int) (domain.ModelVersion, error) {
	m, err := r.store.HGetAll(ctx, r.versionKey(name, version))
	if err != nil {
		return domain.ModelVersion{}, fmt.Errorf("hgetall model version %s v%d: %w", name, version, err)
	}
	if len(m) == 0 {
		return domain.ModelVersion{}, domain.ErrNotFound
	}
	return versionFromHash(m)
}

// List returns every version record for a model, sorted by version ascending.
func (r *Repo) List(ctx context.Context, name string) ([]domain.ModelVersion, error) {
	keys, err := r.store.Scan(ctx, r.versionKey(name, -1))
	if err != nil {
		return nil, fmt.Errorf("scan model versions: %w", err)
	}
	if len(keys) == 0 {
		return []domain.ModelVersion{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi model versions: %w", err)
	}

	versions := make([]domain.ModelVersion, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		mv, err := versionFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse model version %s: %w", keys[i], err)
		}
		versions = append(versions, mv)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})

	return versions, nil
}

// NextVersion returns the next unused version number for a model, starting at 1.
func (r *Repo) NextVersion(ctx context.Context, name string) (int, error) {
	versions, err := r.List(ctx, name)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, mv := range versions {
		if mv.Version >= next {
			next = mv.Version + 1
		}
	}
	return next, nil
}

// Promote moves a version to Production, archiving any version currently there.
func (r *Repo) Promote(ctx context.Context, name string, version int) error {
	target, err := r.Get(ctx, name, version)
	if err != nil {
		return err
	}

	versions, err := r.List(ctx, name)
	if err != nil {
		return err
	}

	for _, mv := range versions {
		if mv.Stage != domain.StageProduction || mv.Version == version {
			continue
		}
		mv.Stage = domain.StageArchived
		if err := r.store.HSet(ctx, r.versionKey(mv.Name, mv.Version), versionToHash(mv)); err != nil {
			return fmt.Errorf("archive model version %s v%d: %w", mv.Name, mv.Version, err)
		}
	}

	target.Stage = domain.StageProduction
	if err := r.store.HSet(ctx, r.versionKey(target.Name, target.Version), versionToHash(target)); err != nil {
		return fmt.Errorf("promote model version %s v%d: %w", target.Name, target.Version, err)
	}
	return nil
}

// Production returns the version currently in the Production stage.
func (r *Repo) Production(ctx context.Context, name string) (domain.ModelVersion, error) {
	versions, err := r.List(ctx, name)
	if err != nil {
		return domain.ModelVersion{}, err
	}
	for _, mv := range versions {
		if mv.Stage == domain.StageProduction {
			return mv, nil
		}
	}
	return domain.ModelVersion{}, domain.ErrNotFound
}

// Delete removes one version record.
func (r *Repo) Delete(ctx context.Context, name string, version int) error {
	key := r.versionKey(name, version)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del model version %s v%d: %w", name, version, err)
	}
	return nil
}

// Redis key pattern: scorix:model:{name}:{version}

func (r *Repo) versionKey(name string, version int) string {
	if version < 0 {
		return fmt.Sprintf("%smodel:%s:*", r.keyPrefix, name)
	}
	return fmt.Sprintf("%smodel:%s:%d", r.keyPrefix, name, version)
}
