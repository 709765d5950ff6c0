// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across the pipeline stages.
package types

import "fmt"

// Document is one ingested source, immutable for the duration of a run.
type Document struct {
	// ID uniquely identifies the document within a batch. Derived from
	// the file base name unless the manifest assigns one explicitly.
	ID string `json:"id" yaml:"id"`

	// Text is the full extracted plain text.
	Text string `json:"text" yaml:"text"`

	// PageBreaks holds the character offsets at which pages start, in
	// ascending order. Empty when the source format carries no page
	// structure (DOCX, plain text).
	PageBreaks []int `json:"page_breaks,omitempty" yaml:"page_breaks,omitempty"`

	// SourcePath is the local filesystem path the document was read from.
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// SentenceSpan is one segmented sentence, addressed by half-open
// character offsets into the owning document's Text.
type SentenceSpan struct {
	DocumentID  string `json:"document_id" yaml:"document_id"`
	StartOffset int    `json:"start_offset" yaml:"start_offset"`
	EndOffset   int    `json:"end_offset" yaml:"end_offset"`
	RawText     string `json:"raw_text" yaml:"raw_text"`
}

// Citation points an obligation back to its exact source location.
type Citation struct {
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Page is the 1-based page number, or 0 when the document carries
	// no page structure and the offset range is the location instead.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`

	StartOffset int `json:"start_offset" yaml:"start_offset"`
	EndOffset   int `json:"end_offset" yaml:"end_offset"`

	// Excerpt is a bounded-length snippet of the cited sentence for
	// human verification.
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}

// Location renders the citation position for display: the page number
// when one was resolved, the character offset range otherwise.
func (c Citation) Location() string {
	if c.Page > 0 {
		return fmt.Sprintf("page %d", c.Page)
	}
	return fmt.Sprintf("chars %d-%d", c.StartOffset, c.EndOffset)
}

// ObligationCandidate is a detected obligation sentence before
// deduplication: the span, the keywords that matched it, and its
// resolved citation.
type ObligationCandidate struct {
	Span     SentenceSpan `json:"span" yaml:"span"`
	Keywords []string     `json:"keywords" yaml:"keywords"`
	Citation Citation     `json:"citation" yaml:"citation"`
}

// ObligationRecord is one row of the final obligation matrix.
type ObligationRecord struct {
	// ID is the matrix identifier, formatted OBL-NNN, unique and
	// contiguous within one export run.
	ID string `json:"id" yaml:"id"`

	// Text is the canonical obligation sentence, taken from the
	// first-seen candidate in the duplicate group.
	Text string `json:"text" yaml:"text"`

	// Keywords lists the detector labels that matched any candidate in
	// the group, in first-match order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Citations holds one entry per contributing occurrence, in the
	// order the occurrences were encountered across the batch. Never
	// empty.
	Citations []Citation `json:"citations" yaml:"citations"`

	Owner       string `json:"owner" yaml:"owner"`
	NextDueDate string `json:"next_due_date" yaml:"next_due_date"`
	Status      string `json:"status" yaml:"status"`
}

// PrimaryCitation returns the first citation, the one shown in the
// main spreadsheet row.
func (r ObligationRecord) PrimaryCitation() Citation {
	return r.Citations[0]
}
