// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite resolves sentence spans to audit citations: document,
// page or offset range, and a bounded excerpt for human verification.
package cite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// DefaultExcerptLen bounds excerpts when the config leaves it unset.
const DefaultExcerptLen = 200

// ellipsis marks a truncated excerpt.
const ellipsis = "..."

// ResolutionError reports a span whose offsets fall outside its
// document's text. This is an upstream wiring fault, not a data fault,
// and is fatal for that document's processing.
type ResolutionError struct {
	DocumentID  string
	StartOffset int
	EndOffset   int
	TextLen     int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("document %s: span [%d,%d) outside text bounds [0,%d)",
		e.DocumentID, e.StartOffset, e.EndOffset, e.TextLen)
}

// Resolve maps a span back to a citation in its document. The page is
// the count of page-break offsets at or before the span start; when
// the document has no page breaks, the offset range stands in as the
// location.
func Resolve(doc types.Document, span types.SentenceSpan, cfg types.CitationConfig) (types.Citation, error) {
	if span.StartOffset < 0 || span.EndOffset > len(doc.Text) || span.StartOffset >= span.EndOffset {
		return types.Citation{}, &ResolutionError{
			DocumentID:  doc.ID,
			StartOffset: span.StartOffset,
			EndOffset:   span.EndOffset,
			TextLen:     len(doc.Text),
		}
	}

	excerptLen := cfg.ExcerptLen
	if excerptLen <= 0 {
		excerptLen = DefaultExcerptLen
	}

	return types.Citation{
		DocumentID:  doc.ID,
		Page:        pageOf(doc.PageBreaks, span.StartOffset),
		StartOffset: span.StartOffset,
		EndOffset:   span.EndOffset,
		Excerpt:     truncate(span.RawText, excerptLen),
	}, nil
}

// pageOf returns the number of break offsets at or before offset, which
// is the 1-based page number when breaks mark page starts. Returns 0
// when no breaks are recorded.
func pageOf(breaks []int, offset int) int {
	return sort.SearchInts(breaks, offset+1)
}

// truncate bounds text to max characters, cutting at the last word
// boundary before the limit where one exists and appending an ellipsis
// marker.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max - len(ellipsis)
	if cut < 1 {
		cut = 1
	}
	head := text[:cut]
	if i := strings.LastIndexByte(head, ' '); i > 0 {
		head = head[:i]
	}
	return strings.TrimRight(head, " ") + ellipsis
}
