// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// OutcomeStatus indicates whether a document made it through the pipeline.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeFailed    OutcomeStatus = "failed"
)

// DocumentOutcome records how one document in a batch fared.
type DocumentOutcome struct {
	DocumentID string        `json:"document_id" yaml:"document_id"`
	Status     OutcomeStatus `json:"status" yaml:"status"`

	// Reason explains a failure (empty for succeeded documents).
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Candidates counts the obligation candidates the document
	// contributed before deduplication. A succeeded document may
	// legitimately contribute zero.
	Candidates int `json:"candidates" yaml:"candidates"`
}

// String renders the outcome in report form: "succeeded" or
// "failed: <reason>".
func (o DocumentOutcome) String() string {
	if o.Status == OutcomeFailed {
		return fmt.Sprintf("failed: %s", o.Reason)
	}
	return string(OutcomeSucceeded)
}

// BatchReport summarizes a whole pipeline run.
type BatchReport struct {
	Outcomes []DocumentOutcome `json:"outcomes" yaml:"outcomes"`
}

// Succeeded counts documents that completed processing.
func (r BatchReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeSucceeded {
			n++
		}
	}
	return n
}

// Failed counts documents that were excluded from the matrix.
func (r BatchReport) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Total returns the number of documents in the batch.
func (r BatchReport) Total() int {
	return len(r.Outcomes)
}

// AllFailed reports whether no document survived, in which case the
// run produces no export.
func (r BatchReport) AllFailed() bool {
	return len(r.Outcomes) > 0 && r.Succeeded() == 0
}
