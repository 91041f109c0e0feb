package train

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/veridian-ai/scorix/internal/domain"
)

// TargetColumn is the label column of the source dataset. Raw values: 1 good
// credit, 2 bad credit.
const TargetColumn = "Receive/ Not receive credit"

// LoadCSV reads the labeled dataset. Headers are matched after whitespace
// trimming; the target is remapped to 1 (good) / 0 (bad).
func LoadCSV(path string) ([]domain.Application, []int, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	required := append(append(append([]string{TargetColumn},
		domain.NumericColumns()...),
		domain.OrdinalColumns()...),
		domain.NominalColumns()...)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("dataset missing column %q", col)
		}
	}

	var apps []domain.Application
	var labels []int

	for line := 2; ; line++ {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", line, err)
		}

		app, err := rowToApplication(record, idx)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", line, err)
		}

		label, err := parseLabel(record[idx[TargetColumn]])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", line, err)
		}

		apps = append(apps, app)
		labels = append(labels, label)
	}

	if len(apps) == 0 {
		return nil, nil, fmt.Errorf("dataset %s has no rows", path)
	}
	return apps, labels, nil
}

func rowToApplication(record []string, idx map[string]int) (domain.Application, error) {
	cell := func(col string) string {
		return strings.TrimSpace(record[idx[col]])
	}
	intCell := func(col string) (int, error) {
		v, err := strconv.Atoi(cell(col))
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", col, err)
		}
		return v, nil
	}

	var app domain.Application
	var err error

	if app.DurationMonths, err = intCell(domain.ColDuration); err != nil {
		return app, err
	}
	if app.CreditAmount, err = strconv.ParseFloat(cell(domain.ColCreditAmount), 64); err != nil {
		return app, fmt.Errorf("column %q: %w", domain.ColCreditAmount, err)
	}
	if app.InstallmentRate, err = intCell(domain.ColInstallmentRate); err != nil {
		return app, err
	}
	if app.Age, err = intCell(domain.ColAge); err != nil {
		return app, err
	}
	if app.ExistingCredits, err = intCell(domain.ColExistingCredits); err != nil {
		return app, err
	}
	if app.Dependents, err = intCell(domain.ColDependents); err != nil {
		return app, err
	}

	app.CheckingStatus = cell(domain.ColCheckingStatus)
	app.CreditHistory = cell(domain.ColCreditHistory)
	app.Savings = cell(domain.ColSavings)
	app.Employment = cell(domain.ColEmployment)
	app.Job = cell(domain.ColJob)
	app.Purpose = cell(domain.ColPurpose)
	app.PersonalStatus = cell(domain.ColPersonalStatus)
	app.OtherDebtors = cell(domain.ColOtherDebtors)
	app.Property = cell(domain.ColProperty)
	app.InstallmentPlans = cell(domain.ColInstallmentPlans)
	app.Housing = cell(domain.ColHousing)
	app.Telephone = cell(domain.ColTelephone)
	app.ForeignWorker = cell(domain.ColForeignWorker)

	return app, nil
}

func parseLabel(raw string) (int, error) {
	switch strings.TrimSpace(raw) {
	case "1":
		return domain.LabelGoodCredit, nil
	case "2":
		return domain.LabelBadCredit, nil
	default:
		return 0, fmt.Errorf("column %q: unexpected label %q", TargetColumn, raw)
	}
}
