// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns source files into Documents: plain text plus
// best-effort page breaks. Per-format extractors sit behind the
// Extractor interface and are selected by file extension. Extraction
// failures are per-document ingestion failures, never a batch abort.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lu4p/cat"

	"github.com/pdiddy/compliance-engine/internal/pipeline"
	"github.com/pdiddy/compliance-engine/pkg/types"
)

// Extractor pulls plain text and page-start offsets from one source
// file. PageBreaks is empty when the format carries no page structure.
type Extractor interface {
	Extract(path string) (text string, pageBreaks []int, err error)
}

// Entry names one document to ingest. ID is optional; when empty it is
// derived from the file base name.
type Entry struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Path string `json:"path" yaml:"path"`
}

// ForPath returns the extractor for the file's extension, or an error
// for unsupported formats.
func ForPath(path string, cfg types.IngestConfig) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFExtractor(cfg), nil
	case ".docx", ".odt", ".rtf":
		return &OfficeExtractor{}, nil
	case ".txt", ".md", ".text":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", filepath.Ext(path))
	}
}

// Load ingests one file into a Document. An empty id selects the file
// base name.
func Load(entry Entry, cfg types.IngestConfig) (types.Document, error) {
	id := entry.ID
	if id == "" {
		id = DocumentID(entry.Path)
	}

	ex, err := ForPath(entry.Path, cfg)
	if err != nil {
		return types.Document{}, err
	}

	text, breaks, err := ex.Extract(entry.Path)
	if err != nil {
		return types.Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return types.Document{}, fmt.Errorf("empty extraction from %s", entry.Path)
	}

	return types.Document{
		ID:         id,
		Text:       text,
		PageBreaks: breaks,
		SourcePath: entry.Path,
	}, nil
}

// LoadAll ingests every entry, mapping each to a pipeline source. A
// failed entry becomes a source carrying its ingestion error so the
// orchestrator can record it and continue.
func LoadAll(entries []Entry, cfg types.IngestConfig) []pipeline.Source {
	sources := make([]pipeline.Source, 0, len(entries))
	for _, e := range entries {
		doc, err := Load(e, cfg)
		if err != nil {
			id := e.ID
			if id == "" {
				id = DocumentID(e.Path)
			}
			sources = append(sources, pipeline.Source{
				Doc: types.Document{ID: id, SourcePath: e.Path},
				Err: err,
			})
			continue
		}
		sources = append(sources, pipeline.Source{Doc: doc})
	}
	return sources
}

// DocumentID derives a document id from the file base name, without
// the extension.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OfficeExtractor reads DOCX, ODT, and RTF files. These formats carry
// no page structure, so no page breaks are recorded.
type OfficeExtractor struct{}

// Extract returns the document's text content.
func (e *OfficeExtractor) Extract(path string) (string, []int, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	return text, nil, nil
}

// TextExtractor reads plain text and Markdown files as-is.
type TextExtractor struct{}

// Extract returns the file contents.
func (e *TextExtractor) Extract(path string) (string, []int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil, nil
}
