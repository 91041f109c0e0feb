// Package artifact resolves trained model bundles from disk, validates them,
// and caches the active one for concurrent serving.
package artifact

import (
	"strconv"

	"github.com/veridian-ai/scorix/internal/domain"
	"github.com/veridian-ai/scorix/internal/encoder"
	"github.com/veridian-ai/scorix/internal/model"
)

// Strategy identifies which loading strategy produced a model. Surfaced to
// operators via model-info; never affects serving behavior.
type Strategy string

const (
	// StrategyDirectory is the self-describing model-directory loader.
	StrategyDirectory Strategy = "directory"
	// StrategyGob is the gob single-file decoder.
	StrategyGob Strategy = "gob"
	// StrategyJSON is the JSON single-file decoder.
	StrategyJSON Strategy = "json"
)

// Bundle is the serialized artifact shared by every storage layout: the
// fitted encoder state, the forest, and run metadata.
type Bundle struct {
	Metadata domain.Metadata `json:"metadata"`
	Encoder  encoder.State   `json:"encoder"`
	Forest   *model.Forest   `json:"forest"`
}

// Loaded is a resolved, smoke-tested model ready to serve. Immutable once
// returned; a reload replaces it wholesale.
type Loaded struct {
	Bundle   Bundle
	Path     string
	Strategy Strategy
}

// Version returns the artifact version string surfaced in responses.
func (l *Loaded) Version() string {
	if l.Bundle.Metadata.Version == 0 {
		return "local"
	}
	return "v" + strconv.Itoa(l.Bundle.Metadata.Version)
}
