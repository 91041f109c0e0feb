package artifact

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/domain"
)

// PackagedModelFile is the single-file model name looked up inside candidate
// directories before falling back to the directory layout.
const PackagedModelFile = "model.gob"

// ManifestFile marks a self-describing model directory.
const ManifestFile = "manifest.yaml"

// Resolver locates a trained artifact across an ordered list of candidate
// storage locations and loads it through a fixed strategy priority.
type Resolver struct {
	candidates []string
	logger     *zap.Logger
}

// NewResolver creates a resolver over candidate paths in priority order.
func NewResolver(candidates []string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{candidates: candidates, logger: logger}
}

// Candidates returns the configured search locations.
func (r *Resolver) Candidates() []string { return r.candidates }

// Resolve finds a candidate, loads it, and smoke-tests the result. A model
// that cannot serve is never returned.
func (r *Resolver) Resolve(ctx context.Context) (*Loaded, error) {
	path, err := r.FindCandidate()
	if err != nil {
		return nil, err
	}
	return r.LoadPath(ctx, path)
}

// LoadPath loads and smoke-tests the artifact at a known candidate path.
func (r *Resolver) LoadPath(_ context.Context, path string) (*Loaded, error) {
	loaded, err := r.load(path)
	if err != nil {
		return nil, err
	}

	if err := r.smokeTest(loaded); err != nil {
		return nil, err
	}

	r.logger.Info("model resolved",
		zap.String("path", loaded.Path),
		zap.String("strategy", string(loaded.Strategy)),
		zap.String("version", loaded.Version()),
		zap.Int("features", loaded.Bundle.Metadata.FeatureCount),
	)
	return loaded, nil
}

// FindCandidate walks the candidate locations in priority order and returns
// the first usable path: a regular file, a packaged model file inside a
// directory, or a self-describing model directory.
func (r *Resolver) FindCandidate() (string, error) {
	for _, p := range r.candidates {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}

		if info.Mode().IsRegular() {
			r.logger.Info("model file found", zap.String("path", p))
			return p, nil
		}

		if info.IsDir() {
			packaged := filepath.Join(p, PackagedModelFile)
			if fi, err := os.Stat(packaged); err == nil && fi.Mode().IsRegular() {
				r.logger.Info("packaged model found", zap.String("path", packaged))
				return packaged, nil
			}

			manifest := filepath.Join(p, ManifestFile)
			if _, err := os.Stat(manifest); err == nil {
				r.logger.Info("model directory found", zap.String("path", p))
				return p, nil
			}

			if entries, err := os.ReadDir(p); err == nil {
				names := make([]string, len(entries))
				for i, e := range entries {
					names[i] = e.Name()
				}
				r.logger.Debug("candidate directory has no model",
					zap.String("path", p),
					zap.Strings("contents", names),
				)
			}
		}
	}

	return "", &domain.ArtifactNotFoundError{Tried: append([]string(nil), r.candidates...)}
}

// loadStrategy is one "attempt load" capability; strategies run in fixed
// priority order and their failures are accumulated.
type loadStrategy struct {
	name Strategy
	load func(path string) (Bundle, error)
}

func (r *Resolver) strategies() []loadStrategy {
	return []loadStrategy{
		{StrategyDirectory, loadDirectory},
		{StrategyGob, loadGobFile},
		{StrategyJSON, loadJSONFile},
	}
}

func (r *Resolver) load(path string) (*Loaded, error) {
	var failures []domain.StrategyFailure

	for _, s := range r.strategies() {
		bundle, err := s.load(path)
		if err == nil {
			r.logger.Info("model loaded", zap.String("strategy", string(s.name)), zap.String("path", path))
			return &Loaded{Bundle: bundle, Path: path, Strategy: s.name}, nil
		}
		r.logger.Warn("loading strategy failed",
			zap.String("strategy", string(s.name)),
			zap.String("path", path),
			zap.Error(err),
		)
		failures = append(failures, domain.StrategyFailure{Strategy: string(s.name), Err: err})
	}

	return nil, &domain.ArtifactLoadError{Path: path, Attempts: failures}
}
