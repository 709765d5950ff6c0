// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// DefaultPageTimeout bounds extraction of a single PDF page when the
// config leaves it unset. Some malformed PDFs hang the content parser.
const DefaultPageTimeout = 10 * time.Second

var errPageTimeout = errors.New("page extraction timed out")

// PDFExtractor reads PDF files page by page, recording the start offset
// of each page as a page break so citations can resolve page numbers.
type PDFExtractor struct {
	pageTimeout time.Duration
}

// NewPDFExtractor applies the configured per-page timeout.
func NewPDFExtractor(cfg types.IngestConfig) *PDFExtractor {
	timeout := time.Duration(cfg.PageTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultPageTimeout
	}
	return &PDFExtractor{pageTimeout: timeout}
}

// Extract returns the concatenated page texts and their start offsets.
// Every page gets a break entry, including empty ones, so page numbers
// stay aligned with the source document.
func (e *PDFExtractor) Extract(path string) (string, []int, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}

	var b strings.Builder
	var breaks []int

	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		breaks = append(breaks, b.Len())

		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := e.extractPage(page)
		if err != nil {
			return "", nil, fmt.Errorf("pdf %s page %d: %w", path, i, err)
		}
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteByte('\n')
		}
	}

	return b.String(), breaks, nil
}

// extractPage pulls one page's plain text under the timeout guard. The
// pdf library can spin on malformed content streams, so the extraction
// runs in its own goroutine.
func (e *PDFExtractor) extractPage(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	ch := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		ch <- result{content, err}
	}()

	select {
	case r := <-ch:
		return r.content, r.err
	case <-time.After(e.pageTimeout):
		return "", errPageTimeout
	}
}
