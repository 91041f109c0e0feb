package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/config"
	dbRedis "github.com/veridian-ai/scorix/internal/db/redis"
	"github.com/veridian-ai/scorix/internal/domain"
	logpkg "github.com/veridian-ai/scorix/internal/logger"
	registryrepo "github.com/veridian-ai/scorix/internal/repository/registry"
	trainuc "github.com/veridian-ai/scorix/internal/usecase/train"
)

func main() {
	var (
		dataPath     = flag.String("data", "", "path to the training CSV (required)")
		modelName    = flag.String("name", "credit-risk", "registered model name")
		root         = flag.String("root", "", "artifact root directory; overrides config, empty uses config")
		testFraction = flag.Float64("test-fraction", 0.3, "holdout fraction for evaluation")
		trees        = flag.Int("trees", 0, "forest size; 0 uses the default hyperparameters")
		promote      = flag.Bool("promote", false, "promote the new version to Production")
		evalOnly     = flag.Bool("eval-only", false, "train and evaluate without publishing")
	)
	flag.Parse()

	if *dataPath == "" {
		fmt.Fprintln(os.Stderr, "usage: scorix-train -data <csv> [-name credit-risk] [-root dir] [-promote]")
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Registry is optional: without redis addresses the run stays local.
	var registry trainuc.Registry
	if len(cfg.Registry.Addrs) > 0 && !*evalOnly {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Registry.Addrs,
			Password: cfg.Registry.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create registry store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Registry.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Registry not ready", zap.Error(err))
		}
		registry = registryrepo.New(store, cfg.Registry.KeyPrefix)
		logger.Info("Connected to model registry", zap.Strings("addrs", cfg.Registry.Addrs))
	}

	publishRoot := cfg.Registry.Root
	if *root != "" {
		publishRoot = *root
	}
	if *evalOnly {
		publishRoot = ""
	}

	hp := domain.Hyperparameters{}
	if *trees > 0 {
		hp = domain.DefaultHyperparameters()
		hp.Trees = *trees
	}

	summary, err := trainuc.New(registry, logger).Run(ctx, trainuc.Config{
		DataPath:        *dataPath,
		ModelName:       *modelName,
		Root:            publishRoot,
		TestFraction:    *testFraction,
		Hyperparameters: hp,
		Promote:         *promote,
	})
	if err != nil {
		logger.Fatal("Training run failed", zap.Error(err))
	}

	fmt.Printf("run %s: accuracy %.4f on %d test samples (%d train, %d features)\n",
		summary.RunID, summary.Accuracy, summary.TestSamples, summary.TrainSamples, summary.FeatureCount)
	fmt.Printf("confusion [actual][predicted]: bad=[%d %d] good=[%d %d]\n",
		summary.Confusion[0][0], summary.Confusion[0][1],
		summary.Confusion[1][0], summary.Confusion[1][1])
	if summary.Path != "" {
		fmt.Printf("published version %d to %s\n", summary.Version, summary.Path)
	}
}
