package artifact

import (
	"fmt"
	"math"

	"github.com/veridian-ai/scorix/internal/domain"
	"github.com/veridian-ai/scorix/internal/encoder"
)

// SampleApplication returns the fixed known-valid application used to smoke
// test every freshly loaded model before it is accepted.
func SampleApplication() domain.Application {
	return domain.Application{
		DurationMonths:   12,
		CreditAmount:     5000,
		InstallmentRate:  2,
		Age:              35,
		ExistingCredits:  1,
		Dependents:       1,
		CheckingStatus:   "A12",
		CreditHistory:    "A32",
		Savings:          "A61",
		Employment:       "A73",
		Job:              "A173",
		Purpose:          "A43",
		PersonalStatus:   "A93",
		OtherDebtors:     "A101",
		Property:         "A121",
		InstallmentPlans: "A143",
		Housing:          "A152",
		Telephone:        "A192",
		ForeignWorker:    "A201",
	}
}

// smokeTest invokes predict and predict-probability on the sample row. Any
// error or a shape inconsistent with a binary classifier fails the whole
// resolution: a model that cannot serve is never cached.
func (r *Resolver) smokeTest(l *Loaded) error {
	enc := encoder.New(l.Bundle.Encoder, r.logger)
	vec := enc.Transform(encoder.RowFromApplication(SampleApplication()))

	label, err := l.Bundle.Forest.Predict(vec)
	if err != nil {
		return fmt.Errorf("%w: smoke predict: %w", domain.ErrModelInvocation, err)
	}
	if label != domain.LabelBadCredit && label != domain.LabelGoodCredit {
		return fmt.Errorf("%w: smoke predict returned label %d", domain.ErrModelInvocation, label)
	}

	probs, err := l.Bundle.Forest.PredictProba(vec)
	if err != nil {
		return fmt.Errorf("%w: smoke predict-proba: %w", domain.ErrModelInvocation, err)
	}
	if sum := probs[0] + probs[1]; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("%w: smoke probabilities sum to %v", domain.ErrModelInvocation, sum)
	}

	return nil
}
