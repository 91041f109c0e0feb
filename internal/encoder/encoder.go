// Package encoder maps raw tabular applications to the fixed-width numeric
// feature vectors a trained classifier expects. The column set and order are
// pinned at fit time and reconciled against at every transform, so a single
// serving-time row reproduces the exact schema the model was fitted on.
package encoder

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/domain"
)

// Row is one raw observation: numeric fields plus categorical codes, keyed by
// canonical column name.
type Row struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// RowFromApplication converts a validated application into an encoder row.
func RowFromApplication(app domain.Application) Row {
	return Row{
		Numeric:     app.NumericValues(),
		Categorical: app.CategoricalValues(),
	}
}

// Stats holds the standardization parameters of one numeric column.
type Stats struct {
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
}

// State is the fitted encoder state. It is serialized as part of the trained
// artifact; FeatureNames is the reference column order every transform must
// reproduce.
type State struct {
	FeatureNames  []string                  `json:"feature_names"`
	NumericStats  map[string]Stats          `json:"numeric_stats"`
	NominalLevels map[string][]string       `json:"nominal_levels"`
	Mappings      map[string]map[string]int `json:"ordinal_mappings"`
}

// Fit learns standardization parameters and nominal level vocabularies from
// training rows, and pins the output feature order.
func Fit(rows []Row) (State, error) {
	if len(rows) == 0 {
		return State{}, fmt.Errorf("fit requires at least one row")
	}

	s := State{
		NumericStats:  make(map[string]Stats),
		NominalLevels: make(map[string][]string),
		Mappings:      domain.OrdinalMappings(),
	}

	for _, col := range domain.NumericColumns() {
		var sum float64
		for _, r := range rows {
			sum += r.Numeric[col]
		}
		mean := sum / float64(len(rows))

		var sq float64
		for _, r := range rows {
			d := r.Numeric[col] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(len(rows)))
		if std == 0 {
			// Constant column: pass through unscaled, matching standard scalers.
			std = 1
		}
		s.NumericStats[col] = Stats{Mean: mean, Stddev: std}
	}

	// Pin nominal levels lexicographically. The first level per column is the
	// dropped reference level of the one-hot expansion.
	for _, col := range domain.NominalColumns() {
		seen := make(map[string]bool)
		for _, r := range rows {
			if v := r.Categorical[col]; v != "" {
				seen[v] = true
			}
		}
		levels := make([]string, 0, len(seen))
		for v := range seen {
			levels = append(levels, v)
		}
		sort.Strings(levels)
		if len(levels) == 0 {
			return State{}, fmt.Errorf("nominal column %q has no observed levels", col)
		}
		s.NominalLevels[col] = levels
	}

	s.FeatureNames = s.featureOrder()
	return s, nil
}

// featureOrder builds the reference column list: numeric and ordinal columns
// in canonical order, then one-hot indicator columns appended per nominal
// column, first level dropped.
func (s State) featureOrder() []string {
	names := make([]string, 0, 64)
	names = append(names, domain.NumericColumns()...)
	names = append(names, domain.OrdinalColumns()...)
	for _, col := range domain.NominalColumns() {
		for _, level := range s.NominalLevels[col][1:] {
			names = append(names, oneHotName(col, level))
		}
	}
	return names
}

func oneHotName(col, level string) string {
	return col + "_" + level
}

// Encoder applies a fitted State to rows. Unknown categorical codes are
// logged, never rejected.
type Encoder struct {
	state  State
	logger *zap.Logger
}

// New creates an Encoder over fitted state.
func New(state State, logger *zap.Logger) *Encoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encoder{state: state, logger: logger}
}

// State returns the fitted state.
func (e *Encoder) State() State { return e.state }

// Transform encodes one row into the reference feature order. Missing columns
// are zero-filled and columns outside the reference list are dropped, so the
// output width always equals len(State.FeatureNames).
func (e *Encoder) Transform(row Row) []float64 {
	encoded := e.encode(row)

	// Schema reconciliation: align to the pinned reference order. A one-hot
	// expansion of a single row cannot produce columns for levels absent from
	// that row, so absent indicators default to zero here.
	vec := make([]float64, len(e.state.FeatureNames))
	for i, name := range e.state.FeatureNames {
		vec[i] = encoded[name]
	}
	return vec
}

// TransformAll encodes rows in input order.
func (e *Encoder) TransformAll(rows []Row) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = e.Transform(r)
	}
	return out
}

// encode produces the sparse column->value map before reconciliation.
func (e *Encoder) encode(row Row) map[string]float64 {
	out := make(map[string]float64, len(e.state.FeatureNames))

	for _, col := range domain.NumericColumns() {
		st := e.state.NumericStats[col]
		out[col] = (row.Numeric[col] - st.Mean) / st.Stddev
	}

	for _, col := range domain.OrdinalColumns() {
		code := row.Categorical[col]
		rank, ok := e.state.Mappings[col][code]
		if !ok {
			rank = domain.UnknownOrdinalRank
			e.logger.Warn("unknown ordinal code, using sentinel rank",
				zap.String("column", col),
				zap.String("code", code),
				zap.Int("rank", rank),
			)
		}
		out[col] = float64(rank)
	}

	for _, col := range domain.NominalColumns() {
		level := row.Categorical[col]
		levels := e.state.NominalLevels[col]
		if !containsLevel(levels, level) {
			// An unseen level encodes as all-zero indicators, collapsing onto
			// the dropped reference level after reconciliation.
			e.logger.Warn("unknown nominal level, encoding as reference level",
				zap.String("column", col),
				zap.String("level", level),
			)
			continue
		}
		if level != levels[0] {
			out[oneHotName(col, level)] = 1
		}
	}

	return out
}

func containsLevel(levels []string, level string) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
