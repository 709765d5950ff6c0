// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// Summary is the machine-readable run report written alongside the
// export artifact.
type Summary struct {
	RunID        string    `yaml:"run_id"`
	Timestamp    time.Time `yaml:"timestamp"`
	BatchName    string    `yaml:"batch_name,omitempty"`
	ArtifactPath string    `yaml:"artifact_path"`

	Documents struct {
		Total     int `yaml:"total"`
		Succeeded int `yaml:"succeeded"`
		Failed    int `yaml:"failed"`
	} `yaml:"documents"`

	Obligations int `yaml:"obligations"`

	// KeywordDistribution counts, per keyword, the records it matched.
	// Each record counts a keyword at most once.
	KeywordDistribution map[string]int `yaml:"keyword_distribution,omitempty"`

	Outcomes []types.DocumentOutcome `yaml:"outcomes"`
}

// NewSummary builds the run summary from the pipeline output.
func NewSummary(records []types.ObligationRecord, report types.BatchReport, batchName, artifactPath string) Summary {
	s := Summary{
		RunID:        uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		BatchName:    batchName,
		ArtifactPath: artifactPath,
		Obligations:  len(records),
		Outcomes:     report.Outcomes,
	}
	s.Documents.Total = report.Total()
	s.Documents.Succeeded = report.Succeeded()
	s.Documents.Failed = report.Failed()

	dist := make(map[string]int)
	for _, r := range records {
		for _, kw := range r.Keywords {
			dist[kw]++
		}
	}
	if len(dist) > 0 {
		s.KeywordDistribution = dist
	}
	return s
}

// WriteSummary saves the summary as YAML.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PrintReport writes the human-readable outcome report to w: one line
// per document, then totals.
func PrintReport(w io.Writer, records []types.ObligationRecord, report types.BatchReport) {
	fmt.Fprintf(w, "\n%-30s  %s\n", "Document", "Outcome")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, o := range report.Outcomes {
		fmt.Fprintf(w, "%-30s  %s\n", o.DocumentID, o.String())
	}
	fmt.Fprintf(w, "\n%d obligations from %d of %d documents\n",
		len(records), report.Succeeded(), report.Total())
}
