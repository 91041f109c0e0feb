package train

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/artifact"
	"github.com/veridian-ai/scorix/internal/domain"
	"github.com/veridian-ai/scorix/internal/encoder"
	"github.com/veridian-ai/scorix/internal/model"
)

// Config drives one training run.
type Config struct {
	DataPath        string
	ModelName       string
	Root            string // publish destination; empty skips publishing
	TestFraction    float64
	Hyperparameters domain.Hyperparameters
	Promote         bool
}

// Summary reports the outcome of a training run.
type Summary struct {
	Version      int
	RunID        string
	Accuracy     float64
	Confusion    [2][2]int // [actual][predicted]
	TrainSamples int
	TestSamples  int
	FeatureCount int
	Path         string
}

// Service runs the training pipeline: load, split, fit, evaluate, publish.
type Service struct {
	registry Registry
	logger   *zap.Logger
}

// New creates a training service. registry can be nil for local-only runs.
func New(registry Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: registry, logger: logger}
}

// Run trains and evaluates a model, then publishes it if a destination is set.
func (s *Service) Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.ModelName == "" {
		cfg.ModelName = "credit-risk"
	}
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		cfg.TestFraction = 0.3
	}
	if cfg.Hyperparameters.Trees == 0 {
		cfg.Hyperparameters = domain.DefaultHyperparameters()
	}

	apps, labels, err := LoadCSV(cfg.DataPath)
	if err != nil {
		return Summary{}, err
	}
	s.logger.Info("dataset loaded",
		zap.String("path", cfg.DataPath),
		zap.Int("rows", len(apps)),
	)

	trainIdx, testIdx := stratifiedSplit(labels, cfg.TestFraction, cfg.Hyperparameters.Seed)

	trainRows := make([]encoder.Row, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, j := range trainIdx {
		trainRows[i] = encoder.RowFromApplication(apps[j])
		trainLabels[i] = labels[j]
	}

	state, err := encoder.Fit(trainRows)
	if err != nil {
		return Summary{}, fmt.Errorf("fit encoder: %w", err)
	}
	enc := encoder.New(state, s.logger)

	forest, err := model.Train(enc.TransformAll(trainRows), trainLabels, cfg.Hyperparameters)
	if err != nil {
		return Summary{}, fmt.Errorf("train forest: %w", err)
	}

	summary := Summary{
		RunID:        uuid.NewString(),
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
		FeatureCount: len(state.FeatureNames),
	}

	correct := 0
	for _, j := range testIdx {
		features := enc.Transform(encoder.RowFromApplication(apps[j]))
		pred, err := forest.Predict(features)
		if err != nil {
			return Summary{}, fmt.Errorf("evaluate: %w", err)
		}
		summary.Confusion[labels[j]][pred]++
		if pred == labels[j] {
			correct++
		}
	}
	if len(testIdx) > 0 {
		summary.Accuracy = float64(correct) / float64(len(testIdx))
	}

	s.logger.Info("model evaluated",
		zap.Float64("accuracy", summary.Accuracy),
		zap.Int("train_samples", summary.TrainSamples),
		zap.Int("test_samples", summary.TestSamples),
		zap.Int("feature_count", summary.FeatureCount),
	)

	if cfg.Root == "" {
		return summary, nil
	}

	version := 0
	if s.registry != nil {
		version, err = s.registry.NextVersion(ctx, cfg.ModelName)
		if err != nil {
			return Summary{}, fmt.Errorf("next version: %w", err)
		}
	}
	summary.Version = version

	bundle := artifact.Bundle{
		Metadata: domain.Metadata{
			Name:            cfg.ModelName,
			Version:         version,
			RunID:           summary.RunID,
			Accuracy:        summary.Accuracy,
			TrainSamples:    summary.TrainSamples,
			TestSamples:     summary.TestSamples,
			FeatureCount:    summary.FeatureCount,
			Features:        state.FeatureNames,
			Hyperparameters: cfg.Hyperparameters,
			CreatedAt:       time.Now().UnixMilli(),
		},
		Encoder: state,
		Forest:  forest,
	}

	dir := filepath.Join(cfg.Root, cfg.ModelName, versionDir(version))
	if err := artifact.WriteDirectory(dir, bundle); err != nil {
		return Summary{}, fmt.Errorf("publish artifact: %w", err)
	}
	summary.Path = dir

	if s.registry != nil {
		mv := domain.ModelVersion{
			Name:      cfg.ModelName,
			Version:   version,
			Stage:     domain.StageNone,
			RunID:     summary.RunID,
			Accuracy:  summary.Accuracy,
			Path:      dir,
			CreatedAt: bundle.Metadata.CreatedAt,
		}
		if err := s.registry.Save(ctx, mv); err != nil {
			return Summary{}, fmt.Errorf("register version: %w", err)
		}
		if cfg.Promote {
			if err := s.registry.Promote(ctx, cfg.ModelName, version); err != nil {
				return Summary{}, fmt.Errorf("promote version: %w", err)
			}
		}
	}

	s.logger.Info("model published",
		zap.String("path", dir),
		zap.Int("version", version),
		zap.Bool("promoted", cfg.Promote && s.registry != nil),
	)
	return summary, nil
}

// stratifiedSplit partitions indices per class so train and test keep the
// label distribution. Deterministic for a given seed.
func stratifiedSplit(labels []int, testFraction float64, seed int64) (trainIdx, testIdx []int) {
	byClass := make(map[int][]int)
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, class := range []int{domain.LabelBadCredit, domain.LabelGoodCredit} {
		members := byClass[class]
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		nTest := int(float64(len(members)) * testFraction)
		testIdx = append(testIdx, members[:nTest]...)
		trainIdx = append(trainIdx, members[nTest:]...)
	}
	return trainIdx, testIdx
}

func versionDir(version int) string {
	if version == 0 {
		return "local"
	}
	return strconv.Itoa(version)
}
