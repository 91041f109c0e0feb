package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Model: ModelConfig{
			Paths: []string{"model"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_EmptyModelPath(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Model: ModelConfig{
			Paths: []string{"/var/lib/scorix/model.gob", ""},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty model path")
	}

	expected := "model.paths[1] must not be empty"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Model.Name != "credit-risk" {
		t.Errorf("expected Name='credit-risk', got %q", cfg.Model.Name)
	}
	if len(cfg.Model.Paths) != 3 {
		t.Fatalf("expected 3 default model paths, got %d", len(cfg.Model.Paths))
	}
	if cfg.Model.Paths[0] != "/var/lib/scorix/model.gob" {
		t.Errorf("expected first model path '/var/lib/scorix/model.gob', got %q", cfg.Model.Paths[0])
	}
	if cfg.Registry.KeyPrefix != "scorix:" {
		t.Errorf("expected KeyPrefix='scorix:', got %q", cfg.Registry.KeyPrefix)
	}
	if cfg.Registry.Root != "registry" {
		t.Errorf("expected Root='registry', got %q", cfg.Registry.Root)
	}
	if cfg.Registry.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Registry.ReadinessTimeout)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Model: ModelConfig{
			Name:  "custom-model",
			Paths: []string{"./custom"},
		},
		Registry: RegistryConfig{KeyPrefix: "custom:", Root: "/srv/models", ReadinessTimeout: 15},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Model.Name != "custom-model" {
		t.Errorf("expected Name='custom-model', got %q", cfg.Model.Name)
	}
	if len(cfg.Model.Paths) != 1 || cfg.Model.Paths[0] != "./custom" {
		t.Errorf("expected model paths ['./custom'], got %v", cfg.Model.Paths)
	}
	if cfg.Registry.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Registry.KeyPrefix)
	}
	if cfg.Registry.Root != "/srv/models" {
		t.Errorf("expected Root='/srv/models', got %q", cfg.Registry.Root)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SCORIX_TEST_PASSWORD", "s3cret")

	in := []byte("password: ${SCORIX_TEST_PASSWORD}\nroot: ${SCORIX_TEST_MISSING:-/var/lib/scorix}\n")
	out := string(expandEnvVars(in))

	expected := "password: s3cret\nroot: /var/lib/scorix\n"
	if out != expected {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, expected)
	}
}
