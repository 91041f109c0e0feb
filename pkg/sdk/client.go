package scorix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/artifact"
	"github.com/veridian-ai/scorix/internal/domain"
	healthuc "github.com/veridian-ai/scorix/internal/usecase/health"
	predictuc "github.com/veridian-ai/scorix/internal/usecase/predict"
)

// Internal interfaces for test substitution.
type predictUseCase interface {
	Score(ctx context.Context, app domain.Application) (predictuc.Result, error)
	ScoreBatch(ctx context.Context, apps []domain.Application) ([]predictuc.Result, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the scorix SDK entry point.
type Client struct {
	models     *artifact.Cache
	predictSvc predictUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a scoring Client. The provided context is used for the
// optional preload.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.paths) == 0 {
		return nil, errors.New("scorix: model path required (use WithModelPaths)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	// Internal services log through zap; the SDK observer handles
	// caller-facing logging.
	zl := zap.NewNop()
	models := artifact.NewCache(artifact.NewResolver(cfg.paths, zl), zl)

	c := &Client{
		models:     models,
		predictSvc: predictuc.New(models, zl),
		healthSvc:  healthuc.New(models),
		obs:        obs,
	}

	if cfg.preload {
		if _, err := models.Get(ctx); err != nil {
			return nil, fmt.Errorf("scorix: preload model: %w", err)
		}
	}

	return c, nil
}

// Predict scores one application.
func (c *Client) Predict(ctx context.Context, app Application) (pred Prediction, err error) {
	start := time.Now()
	defer func() { c.obs.observe("predict", start, err) }()

	res, err := c.predictSvc.Score(ctx, app)
	if err != nil {
		return Prediction{}, err
	}
	return toPrediction(res), nil
}

// PredictBatch scores a set of applications. The batch is all-or-nothing:
// the first invalid application fails the whole call.
func (c *Client) PredictBatch(ctx context.Context, apps []Application) (preds []Prediction, err error) {
	start := time.Now()
	defer func() { c.obs.observe("predict_batch", start, err) }()

	results, err := c.predictSvc.ScoreBatch(ctx, apps)
	if err != nil {
		return nil, err
	}
	preds = make([]Prediction, len(results))
	for i, r := range results {
		preds[i] = toPrediction(r)
	}
	return preds, nil
}

// Health reports whether a model is loaded and servable.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	return HealthStatus{
		Status:      string(report.Status),
		ModelLoaded: report.ModelLoaded,
		ModelPath:   report.ModelPath,
	}
}

// ModelInfo describes the active model artifact.
func (c *Client) ModelInfo(ctx context.Context) (info ModelInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("model_info", start, err) }()

	loaded, err := c.models.Get(ctx)
	if err != nil {
		return ModelInfo{}, err
	}
	return toModelInfo(loaded), nil
}

// Reload forces a full re-read of the model from its candidate locations.
func (c *Client) Reload(ctx context.Context) (info ModelInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	loaded, err := c.models.Reload(ctx)
	if err != nil {
		return ModelInfo{}, err
	}
	return toModelInfo(loaded), nil
}

func toPrediction(res predictuc.Result) Prediction {
	return Prediction{
		Label:           res.Prediction.Label,
		ProbabilityGood: res.Prediction.ProbabilityGood,
		ProbabilityBad:  res.Prediction.ProbabilityBad,
		RiskLevel:       string(res.Prediction.Risk),
		ModelVersion:    res.ModelVersion,
	}
}

func toModelInfo(l *artifact.Loaded) ModelInfo {
	return ModelInfo{
		Name:         l.Bundle.Metadata.Name,
		Version:      l.Version(),
		Path:         l.Path,
		LoadMethod:   string(l.Strategy),
		Accuracy:     l.Bundle.Metadata.Accuracy,
		FeatureCount: l.Bundle.Metadata.FeatureCount,
		Features:     l.Bundle.Metadata.Features,
	}
}
