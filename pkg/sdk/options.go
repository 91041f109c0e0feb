package scorix

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	paths   []string
	preload bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithModelPaths sets the candidate artifact locations, checked in order.
// A path may be a gob/JSON file or a self-describing model directory.
func WithModelPaths(paths ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.paths = paths
	})
}

// WithPreload loads and smoke-tests the model during New instead of on the
// first Predict call.
func WithPreload() Option {
	return optionFunc(func(c *clientConfig) {
		c.preload = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
