package train

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/domain"
)

// --- Mocks ---

type mockRegistry struct {
	nextVersion int
	saved       []domain.ModelVersion
	promoted    []int
	saveErr     error
}

func (m *mockRegistry) NextVersion(_ context.Context, _ string) (int, error) {
	return m.nextVersion, nil
}

func (m *mockRegistry) Save(_ context.Context, mv domain.ModelVersion) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, mv)
	return nil
}

func (m *mockRegistry) Promote(_ context.Context, _ string, version int) error {
	m.promoted = append(m.promoted, version)
	return nil
}

// --- Fixtures ---

func datasetHeader() []string {
	header := []string{TargetColumn}
	header = append(header, domain.NumericColumns()...)
	header = append(header, domain.OrdinalColumns()...)
	header = append(header, domain.NominalColumns()...)
	return header
}

// datasetRow builds one CSV row. Good applicants get short cheap credits,
// bad ones long expensive ones, so a small forest can separate them.
func datasetRow(label int, i int) []string {
	duration, amount := 12+i%6, 1500+100*i
	checking, savings := "A13", "A63"
	if label == 2 {
		duration, amount = 48+i%12, 12000+500*i
		checking, savings = "A11", "A61"
	}
	return []string{
		fmt.Sprintf("%d", label),
		fmt.Sprintf("%d", duration),
		fmt.Sprintf("%d", amount),
		fmt.Sprintf("%d", 1+i%4),
		fmt.Sprintf("%d", 25+i%40),
		"1",
		"1",
		checking,
		"A32",
		savings,
		"A73",
		"A173",
		"A43",
		"A93",
		"A101",
		"A121",
		"A143",
		"A152",
		"A192",
		"A201",
	}
}

func writeDataset(t *testing.T, goodRows, badRows int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credit.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(datasetHeader()); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i := 0; i < goodRows; i++ {
		if err := w.Write(datasetRow(1, i)); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	for i := 0; i < badRows; i++ {
		if err := w.Write(datasetRow(2, i)); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return path
}

func testHyperparameters() domain.Hyperparameters {
	return domain.Hyperparameters{Trees: 10, MaxDepth: 4, MinSamplesSplit: 2, MinSamplesLeaf: 1, Seed: 42}
}

// --- LoadCSV ---

func TestLoadCSV_HappyPath(t *testing.T) {
	path := writeDataset(t, 5, 3)

	apps, labels, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 8 || len(labels) != 8 {
		t.Fatalf("expected 8 rows, got %d apps / %d labels", len(apps), len(labels))
	}

	good := 0
	for _, l := range labels {
		if l == domain.LabelGoodCredit {
			good++
		}
	}
	if good != 5 {
		t.Errorf("expected 5 good labels, got %d", good)
	}
	if apps[0].CheckingStatus != "A13" {
		t.Errorf("unexpected checking status: %s", apps[0].CheckingStatus)
	}
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadCSV(path)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoadCSV_BadLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credit.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(datasetHeader())
	row := datasetRow(1, 0)
	row[0] = "7"
	_ = w.Write(row)
	w.Flush()
	f.Close()

	_, _, err = LoadCSV(path)
	if err == nil {
		t.Fatal("expected error for unexpected label value")
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(datasetHeader())
	w.Flush()
	f.Close()

	_, _, err = LoadCSV(path)
	if err == nil {
		t.Fatal("expected error for empty dataset")
	}
}

// --- stratifiedSplit ---

func TestStratifiedSplit_KeepsDistribution(t *testing.T) {
	labels := make([]int, 100)
	for i := 70; i < 100; i++ {
		labels[i] = 1
	}

	trainIdx, testIdx := stratifiedSplit(labels, 0.3, 42)

	if len(trainIdx)+len(testIdx) != 100 {
		t.Fatalf("split loses rows: %d + %d", len(trainIdx), len(testIdx))
	}

	testGood := 0
	for _, i := range testIdx {
		if labels[i] == 1 {
			testGood++
		}
	}
	if testGood != 9 { // 30% of the 30 good rows
		t.Errorf("expected 9 good rows in test split, got %d", testGood)
	}
}

func TestStratifiedSplit_Deterministic(t *testing.T) {
	labels := []int{0, 1, 0, 1, 1, 0, 1, 0, 1, 1}

	train1, test1 := stratifiedSplit(labels, 0.3, 42)
	train2, test2 := stratifiedSplit(labels, 0.3, 42)

	if len(train1) != len(train2) || len(test1) != len(test2) {
		t.Fatal("split sizes differ between runs")
	}
	for i := range train1 {
		if train1[i] != train2[i] {
			t.Fatal("train split differs between runs with same seed")
		}
	}
}

// --- Run ---

func TestRun_TrainsAndPublishes(t *testing.T) {
	dataPath := writeDataset(t, 30, 20)
	root := t.TempDir()
	reg := &mockRegistry{nextVersion: 4}

	svc := New(reg, zap.NewNop())
	summary, err := svc.Run(context.Background(), Config{
		DataPath:        dataPath,
		ModelName:       "credit-risk",
		Root:            root,
		Hyperparameters: testHyperparameters(),
		Promote:         true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Version != 4 {
		t.Errorf("expected version 4, got %d", summary.Version)
	}
	if summary.RunID == "" {
		t.Error("expected a run id")
	}
	if summary.Accuracy < 0.5 {
		t.Errorf("expected separable dataset accuracy above 0.5, got %f", summary.Accuracy)
	}
	if summary.TrainSamples+summary.TestSamples != 50 {
		t.Errorf("split loses rows: %d + %d", summary.TrainSamples, summary.TestSamples)
	}

	total := 0
	for _, row := range summary.Confusion {
		for _, n := range row {
			total += n
		}
	}
	if total != summary.TestSamples {
		t.Errorf("confusion matrix total %d != test samples %d", total, summary.TestSamples)
	}

	wantDir := filepath.Join(root, "credit-risk", "4")
	if summary.Path != wantDir {
		t.Errorf("expected publish path %s, got %s", wantDir, summary.Path)
	}
	for _, name := range []string{"model.gob", "manifest.yaml", "metadata.json"} {
		if _, err := os.Stat(filepath.Join(wantDir, name)); err != nil {
			t.Errorf("expected published file %s: %v", name, err)
		}
	}

	if len(reg.saved) != 1 {
		t.Fatalf("expected 1 registry record, got %d", len(reg.saved))
	}
	if reg.saved[0].Version != 4 || reg.saved[0].Stage != domain.StageNone {
		t.Errorf("unexpected record: %+v", reg.saved[0])
	}
	if len(reg.promoted) != 1 || reg.promoted[0] != 4 {
		t.Errorf("expected promotion of version 4, got %v", reg.promoted)
	}
}

func TestRun_NoPromotion(t *testing.T) {
	dataPath := writeDataset(t, 20, 15)
	reg := &mockRegistry{nextVersion: 1}

	svc := New(reg, zap.NewNop())
	_, err := svc.Run(context.Background(), Config{
		DataPath:        dataPath,
		Root:            t.TempDir(),
		Hyperparameters: testHyperparameters(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg.promoted) != 0 {
		t.Errorf("expected no promotion, got %v", reg.promoted)
	}
}

func TestRun_LocalWithoutRegistry(t *testing.T) {
	dataPath := writeDataset(t, 20, 15)
	root := t.TempDir()

	svc := New(nil, zap.NewNop())
	summary, err := svc.Run(context.Background(), Config{
		DataPath:        dataPath,
		Root:            root,
		Hyperparameters: testHyperparameters(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Version != 0 {
		t.Errorf("expected unversioned run, got version %d", summary.Version)
	}
	if summary.Path != filepath.Join(root, "credit-risk", "local") {
		t.Errorf("unexpected publish path: %s", summary.Path)
	}
}

func TestRun_EvaluateOnly(t *testing.T) {
	dataPath := writeDataset(t, 20, 15)

	svc := New(nil, zap.NewNop())
	summary, err := svc.Run(context.Background(), Config{
		DataPath:        dataPath,
		Hyperparameters: testHyperparameters(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Path != "" {
		t.Errorf("expected no publish path, got %s", summary.Path)
	}
}
