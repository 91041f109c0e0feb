package artifact

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteDirectory publishes a bundle as a self-describing model directory:
// manifest.yaml, the gob model file, and an operator-readable metadata.json.
func WriteDirectory(dir string, b Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	if err := WriteGobFile(filepath.Join(dir, PackagedModelFile), b); err != nil {
		return err
	}

	manifest := Manifest{
		Format:    "gob",
		ModelFile: PackagedModelFile,
		Name:      b.Metadata.Name,
		Version:   b.Metadata.Version,
		CreatedAt: b.Metadata.CreatedAt,
	}
	raw, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	meta, err := json.MarshalIndent(b.Metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), meta, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	return nil
}

// WriteGobFile stores a bundle as a single gob file.
func WriteGobFile(path string, b Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(b); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

// WriteJSONFile stores a bundle as a single JSON file.
func WriteJSONFile(path string, b Bundle) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
