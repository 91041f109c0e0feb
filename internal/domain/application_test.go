package domain

import (
	"errors"
	"testing"
)

func validApplication() Application {
	return Application{
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

func TestValidate_OK(t *testing.T) {
	if err := validApplication().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Application)
		field  string
	}{
		{"duration too low", func(a *Application) { a.DurationMonths = 0 }, "duration_in_month"},
		{"duration too high", func(a *Application) { a.DurationMonths = 121 }, "duration_in_month"},
		{"amount zero", func(a *Application) { a.CreditAmount = 0 }, "credit_amount"},
		{"amount negative", func(a *Application) { a.CreditAmount = -1 }, "credit_amount"},
		{"installment rate", func(a *Application) { a.InstallmentRate = 5 }, "installment_rate"},
		{"age too low", func(a *Application) { a.Age = 17 }, "age_in_years"},
		{"age too high", func(a *Application) { a.Age = 101 }, "age_in_years"},
		{"existing credits", func(a *Application) { a.ExistingCredits = 0 }, "num_existing_credits"},
		{"dependents", func(a *Application) { a.Dependents = 3 }, "num_dependents"},
		{"missing purpose", func(a *Application) { a.Purpose = "" }, "purpose"},
		{"missing housing", func(a *Application) { a.Housing = "" }, "housing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := validApplication()
			tt.mutate(&app)

			err := app.Validate()
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %T", err)
			}
			if fe.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, fe.Field)
			}
		})
	}
}

func TestValidate_BoundaryValues(t *testing.T) {
	app := validApplication()
	app.DurationMonths = 1
	app.Age = 18
	app.InstallmentRate = 4
	app.Dependents = 2
	if err := app.Validate(); err != nil {
		t.Fatalf("boundary values should be valid: %v", err)
	}

	app.DurationMonths = 120
	app.Age = 100
	if err := app.Validate(); err != nil {
		t.Fatalf("upper boundary values should be valid: %v", err)
	}
}

func TestNumericValues_AllColumns(t *testing.T) {
	vals := validApplication().NumericValues()
	for _, col := range NumericColumns() {
		if _, ok := vals[col]; !ok {
			t.Errorf("missing numeric column %q", col)
		}
	}
	if len(vals) != len(NumericColumns()) {
		t.Errorf("expected %d numeric values, got %d", len(NumericColumns()), len(vals))
	}
}

func TestCategoricalValues_AllColumns(t *testing.T) {
	vals := validApplication().CategoricalValues()
	want := len(OrdinalColumns()) + len(NominalColumns())
	if len(vals) != want {
		t.Errorf("expected %d categorical values, got %d", want, len(vals))
	}
}
