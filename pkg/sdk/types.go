package scorix

import "github.com/veridian-ai/scorix/internal/domain"

// Application is a credit application to score. Categorical fields use the
// dataset attribute codes (A11..A410 etc).
type Application = domain.Application

// Label constants for Prediction.Label.
const (
	LabelBadCredit  = domain.LabelBadCredit
	LabelGoodCredit = domain.LabelGoodCredit
)

// Risk level constants for Prediction.RiskLevel.
const (
	RiskLow    = string(domain.RiskLow)
	RiskMedium = string(domain.RiskMedium)
	RiskHigh   = string(domain.RiskHigh)
)

// Prediction is the outcome of scoring one application.
type Prediction struct {
	Label           int
	ProbabilityGood float64
	ProbabilityBad  float64
	RiskLevel       string
	ModelVersion    string
}

// ModelInfo describes the currently loaded model artifact.
type ModelInfo struct {
	Name         string
	Version      string
	Path         string
	LoadMethod   string
	Accuracy     float64
	FeatureCount int
	Features     []string
}

// HealthStatus represents the engine health.
type HealthStatus struct {
	Status      string // "healthy" or "degraded"
	ModelLoaded bool
	ModelPath   string
}
