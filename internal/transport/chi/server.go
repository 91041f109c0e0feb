package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/veridian-ai/scorix/internal/artifact"
	"github.com/veridian-ai/scorix/internal/domain"
	"github.com/veridian-ai/scorix/internal/metrics"
	healthuc "github.com/veridian-ai/scorix/internal/usecase/health"
	predictuc "github.com/veridian-ai/scorix/internal/usecase/predict"
	"github.com/veridian-ai/scorix/internal/version"
)

const maxBatchSize = 100

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the scoring API over chi.
type Server struct {
	predictions   *predictuc.Service
	health        *healthuc.Service
	models        *artifact.Cache
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	predictions *predictuc.Service,
	health *healthuc.Service,
	models *artifact.Cache,
	logger *zap.Logger,
) *Server {
	s := &Server{
		predictions: predictions,
		health:      health,
		models:      models,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		fieldErrorHandler,
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrArtifactNotFound, http.StatusServiceUnavailable, ErrorCodeModelUnavailable),
		sentinelHandler(domain.ErrArtifactLoad, http.StatusServiceUnavailable, ErrorCodeModelUnavailable),
		sentinelHandler(domain.ErrModelInvocation, http.StatusInternalServerError, ErrorCodePredictionFailed),
	}
	return s
}

// Mount registers all routes. adminAuth guards the reload endpoint; nil
// disables the guard.
func (s *Server) Mount(r chi.Router, adminAuth func(http.Handler) http.Handler) {
	if adminAuth == nil {
		adminAuth = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/", s.Index)
	r.Get("/api/health", s.Health)
	r.Get("/api/model-info", s.ModelInfo)
	r.Post("/api/predict", s.Predict)
	r.Post("/api/predict-batch", s.PredictBatch)
	r.With(adminAuth).Post("/api/reload-model", s.ReloadModel)
	r.Get("/metrics", s.Metrics)
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Message: "scorix credit scoring API",
		Version: version.Version,
		Endpoints: map[string]string{
			"health":        "/api/health",
			"predict":       "/api/predict",
			"predict_batch": "/api/predict-batch",
			"model_info":    "/api/model-info",
			"metrics":       "/metrics",
		},
	})
}

// Health handles GET /api/health. Always 200; orchestrators read the status field.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	path := report.ModelPath
	if path == "" {
		path = "N/A"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      string(report.Status),
		ModelPath:   path,
		ModelLoaded: report.ModelLoaded,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

// ModelInfo handles GET /api/model-info.
func (s *Server) ModelInfo(w http.ResponseWriter, r *http.Request) {
	loaded, err := s.models.Get(r.Context())
	if err != nil {
		s.handleDomainError(w, "model-info", err)
		return
	}
	writeJSON(w, http.StatusOK, modelInfoToResponse(loaded, time.Now()))
}

// Predict handles POST /api/predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	var app domain.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.predictions.Score(r.Context(), app)
	if err != nil {
		s.handleDomainError(w, "predict", err)
		return
	}

	writeJSON(w, http.StatusOK, predictionToResponse(res, time.Now()))
}

// PredictBatch handles POST /api/predict-batch. The batch is all-or-nothing:
// the first invalid application rejects the whole request.
func (s *Server) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Applications) == 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "applications is required")
		return
	}
	if len(req.Applications) > maxBatchSize {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			fmt.Sprintf("batch size %d exceeds maximum %d", len(req.Applications), maxBatchSize))
		return
	}

	results, err := s.predictions.ScoreBatch(r.Context(), req.Applications)
	if err != nil {
		s.handleDomainError(w, "predict-batch", err)
		return
	}

	now := time.Now()
	predictions := make([]PredictionResponse, len(results))
	for i, res := range results {
		predictions[i] = predictionToResponse(res, now)
	}

	writeJSON(w, http.StatusOK, BatchPredictionResponse{
		Predictions:    predictions,
		TotalProcessed: len(predictions),
		ModelVersion:   results[0].ModelVersion,
		Timestamp:      now.Format(time.RFC3339),
	})
}

// ReloadModel handles POST /api/reload-model. Forces a full re-read from disk.
func (s *Server) ReloadModel(w http.ResponseWriter, r *http.Request) {
	loaded, err := s.models.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, "reload-model", err)
		return
	}

	s.logger.Info("model reloaded",
		zap.String("path", loaded.Path),
		zap.String("version", loaded.Version()),
	)

	writeJSON(w, http.StatusOK, ReloadResponse{
		Message:      "model reloaded",
		ModelPath:    loaded.Path,
		ModelVersion: loaded.Version(),
		LoadMethod:   string(loaded.Strategy),
		Timestamp:    time.Now().Format(time.RFC3339),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrArtifactNotFound,
		domain.ErrArtifactLoad,
		domain.ErrModelInvocation,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// fieldErrorHandler surfaces the offending field on validation errors.
func fieldErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:      ErrorCodeValidationFailed,
		Message:   err.Error(),
		Field:     fe.Field,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, endpoint string, err error) {
	s.logger.Warn("domain error", zap.String("endpoint", endpoint), zap.Error(err))
	metrics.APIErrorsTotal.WithLabelValues(endpoint, errorType(err)).Inc()

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.String("endpoint", endpoint), zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrArtifactNotFound), errors.Is(err, domain.ErrArtifactLoad):
		return "model_unavailable"
	case errors.Is(err, domain.ErrModelInvocation):
		return "prediction"
	default:
		return "internal"
	}
}
