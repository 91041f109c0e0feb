package predict

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/domain"
	"github.com/veridian-ai/scorix/internal/encoder"
	"github.com/veridian-ai/scorix/internal/metrics"
)

// Result is one scored application plus the model version that produced it.
type Result struct {
	Prediction   domain.Prediction
	ModelVersion string
}

// Service scores credit applications with the active model.
type Service struct {
	models ModelProvider
	logger *zap.Logger
}

// New creates a prediction service.
func New(models ModelProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{models: models, logger: logger}
}

// Score validates and scores a single application.
func (s *Service) Score(ctx context.Context, app domain.Application) (Result, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	if err := app.Validate(); err != nil {
		metrics.PredictionsTotal.WithLabelValues("single", "validation_error").Inc()
		return Result{}, err
	}

	res, err := s.score(ctx, app)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("single", "error").Inc()
		return Result{}, err
	}

	metrics.PredictionsTotal.WithLabelValues("single", "success").Inc()
	s.countLabel(res.Prediction.Label)

	s.logger.Info("application scored",
		zap.Int("label", res.Prediction.Label),
		zap.Float64("probability_good", res.Prediction.ProbabilityGood),
		zap.String("risk_level", string(res.Prediction.Risk)),
		zap.String("model_version", res.ModelVersion),
	)
	return res, nil
}

// ScoreBatch scores applications in order, aborting on the first invalid or
// failing row. No partial results are returned.
func (s *Service) ScoreBatch(ctx context.Context, apps []domain.Application) ([]Result, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	results := make([]Result, 0, len(apps))
	for i, app := range apps {
		if err := app.Validate(); err != nil {
			metrics.PredictionsTotal.WithLabelValues("batch", "validation_error").Inc()
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
		res, err := s.score(ctx, app)
		if err != nil {
			metrics.PredictionsTotal.WithLabelValues("batch", "error").Inc()
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
		results = append(results, res)
	}

	metrics.PredictionsTotal.WithLabelValues("batch", "success").Inc()
	for _, r := range results {
		s.countLabel(r.Prediction.Label)
	}

	s.logger.Info("batch scored", zap.Int("count", len(results)))
	return results, nil
}

func (s *Service) score(ctx context.Context, app domain.Application) (Result, error) {
	loaded, err := s.models.Get(ctx)
	if err != nil {
		return Result{}, err
	}

	enc := encoder.New(loaded.Bundle.Encoder, s.logger)
	features := enc.Transform(encoder.RowFromApplication(app))

	probs, err := loaded.Bundle.Forest.PredictProba(features)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrModelInvocation, err)
	}

	label := domain.LabelBadCredit
	if probs[1] >= 0.5 {
		label = domain.LabelGoodCredit
	}

	return Result{
		Prediction: domain.Prediction{
			Label:           label,
			ProbabilityGood: probs[1],
			ProbabilityBad:  probs[0],
			Risk:            domain.RiskLevelFor(probs[1]),
		},
		ModelVersion: loaded.Version(),
	}, nil
}

func (s *Service) countLabel(label int) {
	if label == domain.LabelGoodCredit {
		metrics.PredictionsGoodTotal.Inc()
	} else {
		metrics.PredictionsBadTotal.Inc()
	}
}
