package domain

// Canonical dataset column names. These are the raw German credit data headers
// and double as the feature keys the encoder and trained artifacts agree on.
const (
	ColDuration         = "Duration in month"
	ColCreditAmount     = "Credit amount"
	ColInstallmentRate  = "Installment rate in percentage of disposable income"
	ColAge              = "Age in years"
	ColExistingCredits  = "Number of existing credits at this bank"
	ColDependents       = "Number of people being liable to provide maintenance for"
	ColCheckingStatus   = "Status of existing checking account"
	ColCreditHistory    = "Credit history"
	ColSavings          = "Savings account/bonds"
	ColEmployment       = "Present employment since"
	ColJob              = "Job"
	ColPurpose          = "Purpose"
	ColPersonalStatus   = "Personal status and sex"
	ColOtherDebtors     = "Other debtors / guarantors"
	ColProperty         = "Property"
	ColInstallmentPlans = "Other installment plans"
	ColHousing          = "Housing"
	ColTelephone        = "Telephone"
	ColForeignWorker    = "foreign worker"
)

// NumericColumns returns the numeric feature columns in canonical order.
func NumericColumns() []string {
	return []string{
		ColDuration,
		ColCreditAmount,
		ColInstallmentRate,
		ColAge,
		ColExistingCredits,
		ColDependents,
	}
}

// OrdinalColumns returns the ordinal categorical columns in canonical order.
// Each has a closed code vocabulary mapped to integer ranks (see OrdinalMappings).
func OrdinalColumns() []string {
	return []string{
		ColCheckingStatus,
		ColCreditHistory,
		ColSavings,
		ColEmployment,
		ColJob,
	}
}

// NominalColumns returns the nominal categorical columns in canonical order.
// These are one-hot expanded with the first level dropped.
func NominalColumns() []string {
	return []string{
		ColPurpose,
		ColPersonalStatus,
		ColOtherDebtors,
		ColProperty,
		ColInstallmentPlans,
		ColHousing,
		ColTelephone,
		ColForeignWorker,
	}
}

// UnknownOrdinalRank is the sentinel rank for codes outside an ordinal vocabulary.
// Unknown codes are tolerated and logged, never rejected.
const UnknownOrdinalRank = -1

// OrdinalMappings returns the fixed code-to-rank tables for every ordinal column.
// Ranks follow the attribute order of the source dataset: lower rank means
// lower standing (e.g. A11 "< 0 DM" checking balance ranks below A14 "none").
func OrdinalMappings() map[string]map[string]int {
	return map[string]map[string]int{
		ColCheckingStatus: {
			"A11": 0, // ... < 0 DM
			"A12": 1, // 0 <= ... < 200 DM
			"A13": 2, // >= 200 DM / salary assignment
			"A14": 3, // no checking account
		},
		ColCreditHistory: {
			"A30": 0, // no credits taken / all paid back duly
			"A31": 1, // all credits at this bank paid back duly
			"A32": 2, // existing credits paid back duly till now
			"A33": 3, // delay in paying off in the past
			"A34": 4, // critical account / credits elsewhere
		},
		ColSavings: {
			"A61": 0, // ... < 100 DM
			"A62": 1, // 100 <= ... < 500 DM
			"A63": 2, // 500 <= ... < 1000 DM
			"A64": 3, // >= 1000 DM
			"A65": 4, // unknown / no savings account
		},
		ColEmployment: {
			"A71": 0, // unemployed
			"A72": 1, // ... < 1 year
			"A73": 2, // 1 <= ... < 4 years
			"A74": 3, // 4 <= ... < 7 years
			"A75": 4, // >= 7 years
		},
		ColJob: {
			"A171": 0, // unemployed / unskilled non-resident
			"A172": 1, // unskilled resident
			"A173": 2, // skilled employee / official
			"A174": 3, // management / self-employed / highly qualified
		},
	}
}
