package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the service can score requests.
	Healthy Status = "healthy"
	// Degraded indicates the service is up but no model could be resolved.
	Degraded Status = "degraded"
)

// Report describes service health for the health endpoint. A degraded report
// is still served with HTTP 200; orchestrators read the status field.
type Report struct {
	Status      Status
	ModelLoaded bool
	ModelPath   string
}

// Service coordinates health checks.
type Service struct {
	models ModelProvider
}

// New creates a Service.
func New(models ModelProvider) *Service {
	return &Service{models: models}
}

// Check probes model availability. Never returns an error: an unresolvable
// model degrades the report instead of failing the endpoint.
func (s *Service) Check(ctx context.Context) Report {
	loaded, err := s.models.Get(ctx)
	if err != nil {
		return Report{Status: Degraded}
	}
	return Report{
		Status:      Healthy,
		ModelLoaded: true,
		ModelPath:   loaded.Path,
	}
}
