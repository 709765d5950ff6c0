package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/compliance-engine/internal/ingest"
)

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")

	in := &Manifest{
		Name: "q3-audit",
		Documents: []ingest.Entry{
			{ID: "security-policy", Path: "docs/security-policy.pdf"},
			{Path: "docs/vendor-agreement.docx"},
		},
		Keywords:  []string{"must", "shall", "obligated"},
		OutputDir: "audits/q3",
	}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if out.Name != in.Name {
		t.Errorf("Name = %q, want %q", out.Name, in.Name)
	}
	if len(out.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(out.Documents))
	}
	if out.Documents[0] != in.Documents[0] {
		t.Errorf("Documents[0] = %+v, want %+v", out.Documents[0], in.Documents[0])
	}
	if out.Documents[1].ID != "" {
		t.Errorf("Documents[1].ID = %q, want empty (derived later)", out.Documents[1].ID)
	}
	if len(out.Keywords) != 3 || out.Keywords[2] != "obligated" {
		t.Errorf("Keywords = %q", out.Keywords)
	}
	if out.OutputDir != "audits/q3" {
		t.Errorf("OutputDir = %q", out.OutputDir)
	}
}

func TestReadValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"no documents", "name: empty\n"},
		{"document without path", "documents:\n  - id: orphan\n"},
		{"malformed yaml", "documents: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Read(path); err == nil {
				t.Error("invalid manifest accepted")
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing manifest accepted")
	}
}
