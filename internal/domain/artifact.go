package domain

// Hyperparameters are the forest training settings, persisted with the artifact.
type Hyperparameters struct {
	Trees           int   `json:"trees" yaml:"trees"`
	MaxDepth        int   `json:"max_depth" yaml:"max_depth"`
	MinSamplesSplit int   `json:"min_samples_split" yaml:"min_samples_split"`
	MinSamplesLeaf  int   `json:"min_samples_leaf" yaml:"min_samples_leaf"`
	Seed            int64 `json:"seed" yaml:"seed"`
}

// DefaultHyperparameters returns the production training settings.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Trees:           100,
		MaxDepth:        10,
		MinSamplesSplit: 20,
		MinSamplesLeaf:  10,
		Seed:            42,
	}
}

// Metadata describes a trained artifact: identity, feature contract, and
// evaluation results. Immutable after the training run that produced it.
type Metadata struct {
	Name            string          `json:"name"`
	Version         int             `json:"version"`
	RunID           string          `json:"run_id"`
	Accuracy        float64         `json:"accuracy"`
	TrainSamples    int             `json:"train_samples"`
	TestSamples     int             `json:"test_samples"`
	FeatureCount    int             `json:"feature_count"`
	Features        []string        `json:"feature_names"`
	Hyperparameters Hyperparameters `json:"hyperparameters"`
	CreatedAt       int64           `json:"created_at"`
}

// Stage is a registry lifecycle stage for a model version.
type Stage string

const (
	// StageNone is a published but not yet promoted version.
	StageNone Stage = "None"
	// StageProduction is the single actively served version.
	StageProduction Stage = "Production"
	// StageArchived is a version superseded by a newer promotion.
	StageArchived Stage = "Archived"
)

// ModelVersion is a registry record for one published artifact.
type ModelVersion struct {
	Name      string
	Version   int
	Stage     Stage
	RunID     string
	Accuracy  float64
	Path      string
	CreatedAt int64
}
