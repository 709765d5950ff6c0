// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders the assembled obligation matrix into the
// deliverable artifact: an XLSX workbook, a CSV file, or a SQLite
// database, plus a YAML run summary.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// Columns is the spreadsheet header, in contract order. The primary
// citation's document fills Source Document; remaining citations go to
// the audit trail.
var Columns = []string{"ID", "Obligation Text", "Source Document", "Owner", "Next Due Date", "Status"}

// DefaultOutputDir receives artifacts when the config leaves it unset.
const DefaultOutputDir = "output"

// Write renders the records in the configured format and returns the
// artifact path.
func Write(records []types.ObligationRecord, report types.BatchReport, batchName string, cfg types.ExportConfig) (string, error) {
	format := cfg.Format
	if format == "" {
		format = types.FormatXLSX
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outDir, OutputFileName(batchName, format, time.Now()))

	switch format {
	case types.FormatXLSX:
		return path, WriteXLSX(path, records)
	case types.FormatCSV:
		return path, WriteCSV(path, records)
	case types.FormatSQLite:
		return path, WriteSQLite(path, records, report)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// OutputFileName builds a timestamped artifact name like
// "q3-audit_obligations_20260828_153000.xlsx".
func OutputFileName(batchName string, format types.ExportFormat, now time.Time) string {
	name := strings.TrimSpace(batchName)
	if name == "" {
		name = "batch"
	}

	ext := string(format)
	if format == types.FormatSQLite {
		ext = "db"
	}

	return fmt.Sprintf("%s_obligations_%s.%s", name, now.Format("20060102_150405"), ext)
}

// WriteCSV writes the matrix as CSV with the contract columns, one row
// per record.
func WriteCSV(path string, records []types.ObligationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return fmt.Errorf("writing csv row %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// recordRow renders one record into the contract columns.
func recordRow(r types.ObligationRecord) []string {
	return []string{
		r.ID,
		r.Text,
		r.PrimaryCitation().DocumentID,
		r.Owner,
		r.NextDueDate,
		r.Status,
	}
}
