package artifact

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the self-describing header of a model directory.
type Manifest struct {
	Format    string `yaml:"format"` // gob or json
	ModelFile string `yaml:"model_file"`
	Name      string `yaml:"name"`
	Version   int    `yaml:"version"`
	CreatedAt int64  `yaml:"created_at"`
}

// MetadataFile is the operator-readable metadata copy written next to the
// model file in the directory layout.
const MetadataFile = "metadata.json"

// loadDirectory reads a model directory: manifest.yaml names the model file
// and its format; metadata.json, when present, overrides bundle metadata.
// A file path whose parent carries a manifest is treated as that directory.
func loadDirectory(path string) (Bundle, error) {
	dir := path
	if info, err := os.Stat(path); err != nil {
		return Bundle{}, fmt.Errorf("stat %s: %w", path, err)
	} else if !info.IsDir() {
		parent := filepath.Dir(path)
		if _, err := os.Stat(filepath.Join(parent, ManifestFile)); err != nil {
			return Bundle{}, fmt.Errorf("%s is not a model directory", path)
		}
		dir = parent
	}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return Bundle{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Bundle{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.ModelFile == "" {
		m.ModelFile = PackagedModelFile
	}

	modelPath := filepath.Join(dir, m.ModelFile)
	var bundle Bundle
	switch m.Format {
	case "", "gob":
		bundle, err = loadGobFile(modelPath)
	case "json":
		bundle, err = loadJSONFile(modelPath)
	default:
		return Bundle{}, fmt.Errorf("manifest format %q not supported", m.Format)
	}
	if err != nil {
		return Bundle{}, err
	}

	if raw, err := os.ReadFile(filepath.Join(dir, MetadataFile)); err == nil {
		if err := json.Unmarshal(raw, &bundle.Metadata); err != nil {
			return Bundle{}, fmt.Errorf("parse %s: %w", MetadataFile, err)
		}
	}

	return bundle, nil
}

// loadGobFile decodes a gob-encoded bundle from a single file.
func loadGobFile(path string) (Bundle, error) {
	f, err := openRegular(path)
	if err != nil {
		return Bundle{}, err
	}
	defer f.Close()

	var bundle Bundle
	if err := gob.NewDecoder(f).Decode(&bundle); err != nil {
		return Bundle{}, fmt.Errorf("gob decode %s: %w", path, err)
	}
	return bundle, validateBundle(bundle)
}

// loadJSONFile decodes a JSON-encoded bundle from a single file.
func loadJSONFile(path string) (Bundle, error) {
	f, err := openRegular(path)
	if err != nil {
		return Bundle{}, err
	}
	defer f.Close()

	var bundle Bundle
	if err := json.NewDecoder(f).Decode(&bundle); err != nil {
		return Bundle{}, fmt.Errorf("json decode %s: %w", path, err)
	}
	return bundle, validateBundle(bundle)
}

func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func validateBundle(b Bundle) error {
	if b.Forest == nil {
		return fmt.Errorf("bundle has no forest")
	}
	if len(b.Encoder.FeatureNames) == 0 {
		return fmt.Errorf("bundle has no encoder feature names")
	}
	return nil
}
