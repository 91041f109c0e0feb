package registry

import (
	"fmt"
	"strconv"

	"github.com/veridian-ai/scorix/internal/domain"
)

// versionToHash converts a model version record to a map for HSET.
func versionToHash(mv domain.ModelVersion) map[string]string {
	return map[string]string{
		"name":       mv.Name,
		"version":    strconv.Itoa(mv.Version),
		"stage":      string(mv.Stage),
		"run_id":     mv.RunID,
		"accuracy":   strconv.FormatFloat(mv.Accuracy, 'f', -1, 64),
		"path":       mv.Path,
		"created_at": strconv.FormatInt(mv.CreatedAt, 10),
	}
}

// versionFromHash hydrates a model version record from an HGETALL result map.
func versionFromHash(m map[string]string) (domain.ModelVersion, error) {
	version, err := strconv.Atoi(m["version"])
	if err != nil {
		return domain.ModelVersion{}, fmt.Errorf("invalid version: %w", err)
	}

	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domain.ModelVersion{}, fmt.Errorf("invalid created_at: %w", err)
	}

	accuracy := 0.0
	if s, ok := m["accuracy"]; ok && s != "" {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			accuracy = parsed
		}
	}

	stage := domain.Stage(m["stage"])
	if stage == "" {
		stage = domain.StageNone
	}

	return domain.ModelVersion{
		Name:      m["name"],
		Version:   version,
		Stage:     stage,
		RunID:     m["run_id"],
		Accuracy:  accuracy,
		Path:      m["path"],
		CreatedAt: createdAt,
	}, nil
}
