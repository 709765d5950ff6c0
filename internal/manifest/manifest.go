// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads and writes batch manifest files: the YAML
// description of an audit batch an analyst can re-run reproducibly.
package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/compliance-engine/internal/ingest"
)

// Manifest is the on-disk description of one batch: the documents in
// submission order plus optional overrides for detection and export.
type Manifest struct {
	// Name labels the batch; it prefixes default output file names.
	Name string `yaml:"name,omitempty"`

	// Documents lists the sources in submission order, which is the
	// order the matrix preserves.
	Documents []ingest.Entry `yaml:"documents"`

	// Keywords overrides the detector keyword set when non-empty.
	Keywords []string `yaml:"keywords,omitempty"`

	// OutputDir overrides the export directory when non-empty.
	OutputDir string `yaml:"output_dir,omitempty"`
}

// Read loads a manifest from a YAML file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Documents) == 0 {
		return nil, fmt.Errorf("manifest %s lists no documents", path)
	}
	for i, d := range m.Documents {
		if d.Path == "" {
			return nil, fmt.Errorf("manifest %s: document %d has no path", path, i)
		}
	}
	return &m, nil
}

// Write saves the manifest to a YAML file.
func Write(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
