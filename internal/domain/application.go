package domain

import "fmt"

// Application is one raw credit application, field values as submitted.
// Numeric ranges and categorical presence are checked by Validate; encoding
// never sees an application that has not passed validation.
type Application struct {
	DurationMonths   int     `json:"duration_in_month"`
	CreditAmount     float64 `json:"credit_amount"`
	InstallmentRate  int     `json:"installment_rate"`
	Age              int     `json:"age_in_years"`
	ExistingCredits  int     `json:"num_existing_credits"`
	Dependents       int     `json:"num_dependents"`
	CheckingStatus   string  `json:"status_checking_account"`
	CreditHistory    string  `json:"credit_history"`
	Savings          string  `json:"savings_account"`
	Employment       string  `json:"employment_since"`
	Job              string  `json:"job"`
	Purpose          string  `json:"purpose"`
	PersonalStatus   string  `json:"personal_status_sex"`
	OtherDebtors     string  `json:"other_debtors"`
	Property         string  `json:"property"`
	InstallmentPlans string  `json:"other_installment_plans"`
	Housing          string  `json:"housing"`
	Telephone        string  `json:"telephone"`
	ForeignWorker    string  `json:"foreign_worker"`
}

// intRange is an inclusive valid range for a numeric field.
type intRange struct {
	min, max int
}

func (r intRange) check(field string, v int) error {
	if v < r.min || v > r.max {
		return NewFieldError(field, fmt.Sprintf("must be between %d and %d, got %d", r.min, r.max, v))
	}
	return nil
}

// Validate checks all numeric ranges and categorical field presence.
// The first violation is returned as a FieldError wrapping ErrValidation.
func (a Application) Validate() error {
	numeric := []struct {
		field string
		value int
		valid intRange
	}{
		{"duration_in_month", a.DurationMonths, intRange{1, 120}},
		{"installment_rate", a.InstallmentRate, intRange{1, 4}},
		{"age_in_years", a.Age, intRange{18, 100}},
		{"num_existing_credits", a.ExistingCredits, intRange{1, 4}},
		{"num_dependents", a.Dependents, intRange{1, 2}},
	}
	for _, n := range numeric {
		if err := n.valid.check(n.field, n.value); err != nil {
			return err
		}
	}

	if a.CreditAmount <= 0 {
		return NewFieldError("credit_amount", fmt.Sprintf("must be positive, got %g", a.CreditAmount))
	}

	categorical := []struct {
		field string
		value string
	}{
		{"status_checking_account", a.CheckingStatus},
		{"credit_history", a.CreditHistory},
		{"savings_account", a.Savings},
		{"employment_since", a.Employment},
		{"job", a.Job},
		{"purpose", a.Purpose},
		{"personal_status_sex", a.PersonalStatus},
		{"other_debtors", a.OtherDebtors},
		{"property", a.Property},
		{"other_installment_plans", a.InstallmentPlans},
		{"housing", a.Housing},
		{"telephone", a.Telephone},
		{"foreign_worker", a.ForeignWorker},
	}
	for _, c := range categorical {
		if c.value == "" {
			return NewFieldError(c.field, "is required")
		}
	}

	return nil
}

// NumericValues returns the numeric fields keyed by canonical column name.
func (a Application) NumericValues() map[string]float64 {
	return map[string]float64{
		ColDuration:        float64(a.DurationMonths),
		ColCreditAmount:    a.CreditAmount,
		ColInstallmentRate: float64(a.InstallmentRate),
		ColAge:             float64(a.Age),
		ColExistingCredits: float64(a.ExistingCredits),
		ColDependents:      float64(a.Dependents),
	}
}

// CategoricalValues returns the categorical fields keyed by canonical column name.
func (a Application) CategoricalValues() map[string]string {
	return map[string]string{
		ColCheckingStatus:   a.CheckingStatus,
		ColCreditHistory:    a.CreditHistory,
		ColSavings:          a.Savings,
		ColEmployment:       a.Employment,
		ColJob:              a.Job,
		ColPurpose:          a.Purpose,
		ColPersonalStatus:   a.PersonalStatus,
		ColOtherDebtors:     a.OtherDebtors,
		ColProperty:         a.Property,
		ColInstallmentPlans: a.InstallmentPlans,
		ColHousing:          a.Housing,
		ColTelephone:        a.Telephone,
		ColForeignWorker:    a.ForeignWorker,
	}
}
