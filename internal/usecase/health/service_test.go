package health

import (
	"context"
	"testing"

	"github.com/veridian-ai/scorix/internal/artifact"
	"github.com/veridian-ai/scorix/internal/domain"
)

// --- Mocks ---

type mockProvider struct {
	loaded *artifact.Loaded
	err    error
}

func (m *mockProvider) Get(_ context.Context) (*artifact.Loaded, error) {
	return m.loaded, m.err
}

// --- Tests ---

func TestCheck_ModelLoaded(t *testing.T) {
	svc := New(&mockProvider{loaded: &artifact.Loaded{Path: "/var/lib/scorix/model.gob"}})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if !r.ModelLoaded {
		t.Error("expected ModelLoaded")
	}
	if r.ModelPath != "/var/lib/scorix/model.gob" {
		t.Errorf("unexpected model path: %q", r.ModelPath)
	}
}

func TestCheck_ModelUnavailable(t *testing.T) {
	svc := New(&mockProvider{err: domain.ErrArtifactNotFound})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.ModelLoaded {
		t.Error("expected ModelLoaded=false")
	}
	if r.ModelPath != "" {
		t.Errorf("expected empty model path, got %q", r.ModelPath)
	}
}
