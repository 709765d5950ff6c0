// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a batch run: segmentation, detection,
// and citation resolution per document, then batch-wide deduplication
// and matrix assembly. A failure in one document never aborts the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/compliance-engine/internal/cite"
	"github.com/pdiddy/compliance-engine/internal/dedupe"
	"github.com/pdiddy/compliance-engine/internal/detect"
	"github.com/pdiddy/compliance-engine/internal/matrix"
	"github.com/pdiddy/compliance-engine/internal/segment"
	"github.com/pdiddy/compliance-engine/pkg/types"
)

// MaxBatchSize is the batch capacity. Larger batches are rejected
// before any document is processed.
const MaxBatchSize = 100

// ErrAllDocumentsFailed signals a run in which no document survived;
// no export is produced.
var ErrAllDocumentsFailed = errors.New("all documents in the batch failed")

// BatchSizeError reports a batch above the capacity limit.
type BatchSizeError struct {
	Size int
}

func (e *BatchSizeError) Error() string {
	return fmt.Sprintf("batch of %d documents exceeds the %d-document limit", e.Size, MaxBatchSize)
}

// Source is one batch entry as handed over by the ingestion
// collaborator: either a document or the failure that prevented its
// extraction.
type Source struct {
	Doc types.Document

	// Err is the ingestion failure reported by the collaborator. A
	// source with a non-nil Err is recorded in the outcome report and
	// excluded from processing.
	Err error
}

// Result is the pipeline's output: the assembled matrix and the
// per-document outcome report.
type Result struct {
	Records []types.ObligationRecord
	Report  types.BatchReport
}

// docResult accumulates one document's candidates, or the error that
// excluded it.
type docResult struct {
	candidates []types.ObligationCandidate
	err        error
}

// Run processes the batch in submission order and returns the final
// record collection plus the outcome report. Documents are processed by
// a fixed-size worker pool when cfg.Workers > 1; results are merged
// back in submission order, so the output is identical for any worker
// count. Progress lines are written to w.
func Run(ctx context.Context, sources []Source, det detect.Detector, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	if len(sources) == 0 {
		return Result{}, fmt.Errorf("batch is empty")
	}
	if len(sources) > MaxBatchSize {
		return Result{}, &BatchSizeError{Size: len(sources)}
	}
	if err := checkDuplicateIDs(sources); err != nil {
		return Result{}, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	// Single-writer reduction: each worker fills its own slot, the
	// merge below reads sequentially.
	results := make([]docResult, len(sources))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processDocument(ctx, sources[i], det, cfg)
			}
		}()
	}
	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var all []types.ObligationCandidate
	report := types.BatchReport{Outcomes: make([]types.DocumentOutcome, 0, len(sources))}

	for i, r := range results {
		id := sources[i].Doc.ID
		if r.err != nil {
			fmt.Fprintf(w, "failed    %s: %v\n", id, r.err)
			report.Outcomes = append(report.Outcomes, types.DocumentOutcome{
				DocumentID: id,
				Status:     types.OutcomeFailed,
				Reason:     r.err.Error(),
			})
			continue
		}
		fmt.Fprintf(w, "processed %s (%d candidates)\n", id, len(r.candidates))
		report.Outcomes = append(report.Outcomes, types.DocumentOutcome{
			DocumentID: id,
			Status:     types.OutcomeSucceeded,
			Candidates: len(r.candidates),
		})
		all = append(all, r.candidates...)
	}

	if report.AllFailed() {
		return Result{Report: report}, ErrAllDocumentsFailed
	}

	groups := dedupe.Collapse(all)
	records := matrix.Assemble(groups, cfg.Matrix)

	return Result{Records: records, Report: report}, nil
}

// processDocument runs segmentation, detection, and citation resolution
// for one document. Span order is preserved, so candidates come out in
// document order.
func processDocument(ctx context.Context, src Source, det detect.Detector, cfg types.PipelineConfig) docResult {
	if err := ctx.Err(); err != nil {
		return docResult{err: err}
	}
	if src.Err != nil {
		return docResult{err: fmt.Errorf("IngestionFailure: %w", src.Err)}
	}

	var candidates []types.ObligationCandidate
	sc := segment.NewScanner(src.Doc, cfg.Segmenter)
	for sc.Scan() {
		span := sc.Span()
		if !det.Classify(span) {
			continue
		}
		citation, err := cite.Resolve(src.Doc, span, cfg.Citation)
		if err != nil {
			return docResult{err: fmt.Errorf("ResolutionError: %w", err)}
		}
		candidates = append(candidates, types.ObligationCandidate{
			Span:     span,
			Keywords: det.Matches(span),
			Citation: citation,
		})
	}
	return docResult{candidates: candidates}
}

// checkDuplicateIDs enforces document id uniqueness within the batch.
func checkDuplicateIDs(sources []Source) error {
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if seen[s.Doc.ID] {
			return fmt.Errorf("duplicate document id %q in batch", s.Doc.ID)
		}
		seen[s.Doc.ID] = true
	}
	return nil
}
