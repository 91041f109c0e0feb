package chi

import (
	"time"

	"github.com/veridian-ai/scorix/internal/artifact"
	"github.com/veridian-ai/scorix/internal/domain"
	"github.com/veridian-ai/scorix/internal/usecase/predict"
)

// ErrorCode identifies an error category in responses.
type ErrorCode string

const (
	// ErrorCodeBadRequest is a malformed request body.
	ErrorCodeBadRequest ErrorCode = "bad_request"
	// ErrorCodeValidationFailed is an input that fails field validation.
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	// ErrorCodeModelUnavailable means no model artifact could be resolved or loaded.
	ErrorCodeModelUnavailable ErrorCode = "model_unavailable"
	// ErrorCodePredictionFailed is a model that raised during inference.
	ErrorCodePredictionFailed ErrorCode = "prediction_failed"
	// ErrorCodeInternalError is an unclassified server error.
	ErrorCodeInternalError ErrorCode = "internal_error"
)

// ErrorResponse is the error payload for every non-2xx response.
type ErrorResponse struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// BatchPredictionRequest holds applications scored in one call.
type BatchPredictionRequest struct {
	Applications []domain.Application `json:"applications"`
}

// PredictionResponse is the outcome of scoring one application.
type PredictionResponse struct {
	Prediction            int     `json:"prediction"`
	ProbabilityGoodCredit float64 `json:"probability_good_credit"`
	ProbabilityBadCredit  float64 `json:"probability_bad_credit"`
	RiskLevel             string  `json:"risk_level"`
	ModelVersion          string  `json:"model_version"`
	Timestamp             string  `json:"timestamp"`
}

// BatchPredictionResponse is the outcome of a batch call.
type BatchPredictionResponse struct {
	Predictions    []PredictionResponse `json:"predictions"`
	TotalProcessed int                  `json:"total_processed"`
	ModelVersion   string               `json:"model_version"`
	Timestamp      string               `json:"timestamp"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelPath   string `json:"model_path"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

// ModelInfoResponse describes the active model.
type ModelInfoResponse struct {
	Name         string   `json:"name"`
	ModelVersion string   `json:"model_version"`
	ModelPath    string   `json:"model_path"`
	LoadMethod   string   `json:"load_method"`
	Accuracy     float64  `json:"accuracy"`
	FeatureCount int      `json:"feature_count"`
	Features     []string `json:"features"`
	Timestamp    string   `json:"timestamp"`
}

// ReloadResponse confirms a forced model reload.
type ReloadResponse struct {
	Message      string `json:"message"`
	ModelPath    string `json:"model_path"`
	ModelVersion string `json:"model_version"`
	LoadMethod   string `json:"load_method"`
	Timestamp    string `json:"timestamp"`
}

// IndexResponse is the service banner on GET /.
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func predictionToResponse(res predict.Result, now time.Time) PredictionResponse {
	return PredictionResponse{
		Prediction:            res.Prediction.Label,
		ProbabilityGoodCredit: res.Prediction.ProbabilityGood,
		ProbabilityBadCredit:  res.Prediction.ProbabilityBad,
		RiskLevel:             string(res.Prediction.Risk),
		ModelVersion:          res.ModelVersion,
		Timestamp:             now.Format(time.RFC3339),
	}
}

func modelInfoToResponse(l *artifact.Loaded, now time.Time) ModelInfoResponse {
	return ModelInfoResponse{
		Name:         l.Bundle.Metadata.Name,
		ModelVersion: l.Version(),
		ModelPath:    l.Path,
		LoadMethod:   string(l.Strategy),
		Accuracy:     l.Bundle.Metadata.Accuracy,
		FeatureCount: l.Bundle.Metadata.FeatureCount,
		Features:     l.Bundle.Metadata.Features,
		Timestamp:    now.Format(time.RFC3339),
	}
}
