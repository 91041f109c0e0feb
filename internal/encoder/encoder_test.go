package encoder

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/domain"
)

func trainingRows() []Row {
	apps := []domain.Application{
		{
			DurationMonths: 12, CreditAmount: 5000, InstallmentRate: 2, Age: 35,
			ExistingCredits: 1, Dependents: 1,
			CheckingStatus: "A12", CreditHistory: "A32", Savings: "A61",
			Employment: "A73", Job: "A173",
			Purpose: "A43", PersonalStatus: "A93", OtherDebtors: "A101",
			Property: "A121", InstallmentPlans: "A143", Housing: "A152",
			Telephone: "A192", ForeignWorker: "A201",
		},
		{
			DurationMonths: 24, CreditAmount: 1000, InstallmentRate: 4, Age: 55,
			ExistingCredits: 2, Dependents: 2,
			CheckingStatus: "A11", CreditHistory: "A34", Savings: "A65",
			Employment: "A71", Job: "A171",
			Purpose: "A40", PersonalStatus: "A91", OtherDebtors: "A103",
			Property: "A124", InstallmentPlans: "A141", Housing: "A151",
			Telephone: "A191", ForeignWorker: "A202",
		},
		{
			DurationMonths: 36, CreditAmount: 9000, InstallmentRate: 1, Age: 28,
			ExistingCredits: 1, Dependents: 1,
			CheckingStatus: "A14", CreditHistory: "A30", Savings: "A62",
			Employment: "A75", Job: "A174",
			Purpose: "A46", PersonalStatus: "A92", OtherDebtors: "A102",
			Property: "A122", InstallmentPlans: "A142", Housing: "A153",
			Telephone: "A192", ForeignWorker: "A201",
		},
	}
	rows := make([]Row, len(apps))
	for i, a := range apps {
		rows[i] = RowFromApplication(a)
	}
	return rows
}

func fittedEncoder(t *testing.T) *Encoder {
	t.Helper()
	state, err := Fit(trainingRows())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return New(state, zap.NewNop())
}

func TestFit_FeatureOrder(t *testing.T) {
	enc := fittedEncoder(t)
	names := enc.State().FeatureNames

	want := len(domain.NumericColumns()) + len(domain.OrdinalColumns())
	for _, col := range domain.NominalColumns() {
		want += len(enc.State().NominalLevels[col]) - 1
	}
	if len(names) != want {
		t.Fatalf("expected %d features, got %d", want, len(names))
	}

	// Numeric and ordinal columns first, in canonical order.
	for i, col := range domain.NumericColumns() {
		if names[i] != col {
			t.Errorf("feature %d: expected %q, got %q", i, col, names[i])
		}
	}
	for i, col := range domain.OrdinalColumns() {
		idx := len(domain.NumericColumns()) + i
		if names[idx] != col {
			t.Errorf("feature %d: expected %q, got %q", idx, col, names[idx])
		}
	}
}

func TestFit_DropsFirstLevel(t *testing.T) {
	enc := fittedEncoder(t)

	// Purpose levels observed: A40, A43, A46 -> reference level A40 dropped.
	for _, name := range enc.State().FeatureNames {
		if name == domain.ColPurpose+"_A40" {
			t.Fatalf("reference level A40 must not appear as an indicator column")
		}
	}

	vec := enc.Transform(trainingRows()[1]) // Purpose=A40
	for i, name := range enc.State().FeatureNames {
		if name == domain.ColPurpose+"_A43" || name == domain.ColPurpose+"_A46" {
			if vec[i] != 0 {
				t.Errorf("indicator %q should be 0 for reference-level row, got %v", name, vec[i])
			}
		}
	}
}

func TestTransform_Width(t *testing.T) {
	enc := fittedEncoder(t)
	for i, row := range trainingRows() {
		vec := enc.Transform(row)
		if len(vec) != len(enc.State().FeatureNames) {
			t.Errorf("row %d: expected width %d, got %d", i, len(enc.State().FeatureNames), len(vec))
		}
	}
}

func TestTransform_Idempotent(t *testing.T) {
	enc := fittedEncoder(t)
	row := trainingRows()[0]

	a := enc.Transform(row)
	b := enc.Transform(row)
	if len(a) != len(b) {
		t.Fatalf("widths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("feature %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTransform_Standardization(t *testing.T) {
	enc := fittedEncoder(t)
	rows := trainingRows()
	vecs := enc.TransformAll(rows)

	// Standardized training columns have mean ~0 and population stddev ~1.
	for j, col := range domain.NumericColumns() {
		var sum float64
		for _, v := range vecs {
			sum += v[j]
		}
		mean := sum / float64(len(vecs))
		if math.Abs(mean) > 1e-9 {
			t.Errorf("column %q: standardized mean = %v, want ~0", col, mean)
		}

		var sq float64
		for _, v := range vecs {
			sq += (v[j] - mean) * (v[j] - mean)
		}
		std := math.Sqrt(sq / float64(len(vecs)))
		if math.Abs(std-1) > 1e-9 {
			t.Errorf("column %q: standardized stddev = %v, want ~1", col, std)
		}
	}
}

func TestTransform_UnknownOrdinalSentinel(t *testing.T) {
	enc := fittedEncoder(t)
	row := trainingRows()[0]
	row.Categorical[domain.ColSavings] = "A99"

	vec := enc.Transform(row)
	idx := -1
	for i, name := range enc.State().FeatureNames {
		if name == domain.ColSavings {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("savings column not in feature order")
	}
	if vec[idx] != float64(domain.UnknownOrdinalRank) {
		t.Errorf("unknown ordinal code should encode to %d, got %v", domain.UnknownOrdinalRank, vec[idx])
	}
}

func TestTransform_UnknownNominalAllZero(t *testing.T) {
	enc := fittedEncoder(t)
	row := trainingRows()[0]
	row.Categorical[domain.ColHousing] = "A999"

	vec := enc.Transform(row)
	prefix := domain.ColHousing + "_"
	for i, name := range enc.State().FeatureNames {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			if vec[i] != 0 {
				t.Errorf("indicator %q should be 0 for unknown level, got %v", name, vec[i])
			}
		}
	}
}

func TestTransform_OneHotSingleIndicator(t *testing.T) {
	enc := fittedEncoder(t)
	vec := enc.Transform(trainingRows()[0]) // Purpose=A43

	var set []string
	prefix := domain.ColPurpose + "_"
	for i, name := range enc.State().FeatureNames {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix && vec[i] == 1 {
			set = append(set, name)
		}
	}
	if len(set) != 1 || set[0] != domain.ColPurpose+"_A43" {
		t.Errorf("expected exactly [%s_A43] set, got %v", domain.ColPurpose, set)
	}
}

func TestFit_EmptyInput(t *testing.T) {
	if _, err := Fit(nil); err == nil {
		t.Fatal("expected error for empty training set")
	}
}
