package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want any
	}{
		{"policy.pdf", &PDFExtractor{}},
		{"policy.PDF", &PDFExtractor{}},
		{"policy.docx", &OfficeExtractor{}},
		{"policy.odt", &OfficeExtractor{}},
		{"policy.rtf", &OfficeExtractor{}},
		{"policy.txt", &TextExtractor{}},
		{"policy.md", &TextExtractor{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ex, err := ForPath(tt.path, types.IngestConfig{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, ex)
		})
	}
}

func TestForPathUnsupported(t *testing.T) {
	_, err := ForPath("slides.pptx", types.IngestConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	content := "Vendors must encrypt data at rest. This is informational."
	path := writeFile(t, dir, "security-policy.txt", content)

	doc, err := Load(Entry{Path: path}, types.IngestConfig{})
	require.NoError(t, err)

	assert.Equal(t, "security-policy", doc.ID)
	assert.Equal(t, content, doc.Text)
	assert.Empty(t, doc.PageBreaks)
	assert.Equal(t, path, doc.SourcePath)
}

func TestLoadExplicitID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "v2-final-draft.txt", "Backups must be verified.")

	doc, err := Load(Entry{ID: "backup-policy", Path: path}, types.IngestConfig{})
	require.NoError(t, err)
	assert.Equal(t, "backup-policy", doc.ID)
}

func TestLoadEmptyExtraction(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "blank.txt", "   \n\t ")

	_, err := Load(Entry{Path: path}, types.IngestConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty extraction")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Entry{Path: filepath.Join(t.TempDir(), "nope.txt")}, types.IngestConfig{})
	require.Error(t, err)
}

func TestLoadAllCarriesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "Patching is required monthly.")

	sources := LoadAll([]Entry{
		{Path: good},
		{Path: filepath.Join(dir, "missing.pdf")},
		{Path: filepath.Join(dir, "slides.pptx")},
	}, types.IngestConfig{})

	require.Len(t, sources, 3)

	assert.NoError(t, sources[0].Err)
	assert.Equal(t, "good", sources[0].Doc.ID)

	require.Error(t, sources[1].Err)
	assert.Equal(t, "missing", sources[1].Doc.ID, "failed sources still carry a document id for the report")

	require.Error(t, sources[2].Err)
	assert.Contains(t, sources[2].Err.Error(), "unsupported")
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/docs/security policy.pdf", "security policy"},
		{"notes.txt", "notes"},
		{"archive.tar.gz", "archive.tar"},
		{"no-extension", "no-extension"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocumentID(tt.path), tt.path)
	}
}
