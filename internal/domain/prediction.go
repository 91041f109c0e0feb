package domain

// Classifier hard decisions.
const (
	LabelBadCredit  = 0
	LabelGoodCredit = 1
)

// RiskLevel is the coarse bucketing of predicted good-credit probability.
type RiskLevel string

const (
	// RiskLow means probability of good credit >= 0.70.
	RiskLow RiskLevel = "LOW"
	// RiskMedium means 0.40 <= probability < 0.70.
	RiskMedium RiskLevel = "MEDIUM"
	// RiskHigh means probability < 0.40.
	RiskHigh RiskLevel = "HIGH"
)

// Band thresholds, inclusive on the lower bound of each band.
const (
	riskLowMin    = 0.70
	riskMediumMin = 0.40
)

// RiskLevelFor buckets a good-credit probability into a risk level.
func RiskLevelFor(probabilityGood float64) RiskLevel {
	switch {
	case probabilityGood >= riskLowMin:
		return RiskLow
	case probabilityGood >= riskMediumMin:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Prediction is the outcome of scoring one application.
type Prediction struct {
	Label           int
	ProbabilityGood float64
	ProbabilityBad  float64
	Risk            RiskLevel
}
