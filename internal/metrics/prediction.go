package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prediction Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorix",
			Name:      "predictions_total",
			Help:      "Total number of predictions",
		},
		[]string{"type", "status"}, // type: "single" / "batch", status: "success" / "error"
	)

	PredictionsGoodTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scorix",
			Name:      "predictions_good_total",
			Help:      "Predictions with a good-credit outcome",
		},
	)

	PredictionsBadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scorix",
			Name:      "predictions_bad_total",
			Help:      "Predictions with a bad-credit outcome",
		},
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scorix",
			Name:      "prediction_duration_seconds",
			Help:      "Prediction latency in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	ModelLoadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorix",
			Name:      "model_load_attempts_total",
			Help:      "Model load attempts by outcome",
		},
		[]string{"status"}, // "success" / "error"
	)

	ActiveModels = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "scorix",
			Name:      "active_models_total",
			Help:      "Models currently loaded in the process",
		},
	)

	APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scorix",
			Name:      "api_request_errors_total",
			Help:      "API errors by endpoint and error type",
		},
		[]string{"endpoint", "error_type"},
	)
)

var predMetricsRegistered bool

// RegisterPredictionMetrics registers Prometheus prediction metrics. Must be called once from main.
func RegisterPredictionMetrics() {
	if predMetricsRegistered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionsGoodTotal)
	prometheus.MustRegister(PredictionsBadTotal)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(ModelLoadTotal)
	prometheus.MustRegister(ActiveModels)
	prometheus.MustRegister(APIErrorsTotal)
	predMetricsRegistered = true
}
