// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

const (
	obligationsSheet = "Obligations"
	auditSheet       = "Audit Trail"

	// maxColWidth caps fitted column widths so long obligation text
	// does not blow the sheet out.
	maxColWidth = 50
)

// auditColumns is the audit-trail sheet header: one row per citation so
// an auditor can verify every occurrence, not just the primary one.
var auditColumns = []string{"ID", "Source Document", "Location", "Excerpt", "Keywords"}

// WriteXLSX writes the matrix as an XLSX workbook: the Obligations
// sheet with the contract columns, and an Audit Trail sheet with every
// citation.
func WriteXLSX(path string, records []types.ObligationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", obligationsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(auditSheet); err != nil {
		return fmt.Errorf("creating audit sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeObligations(f, records, header); err != nil {
		return err
	}
	if err := writeAuditTrail(f, records, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeObligations(f *excelize.File, records []types.ObligationRecord, headerStyle int) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Columns)
	for _, r := range records {
		rows = append(rows, recordRow(r))
	}
	return writeSheet(f, obligationsSheet, rows, headerStyle)
}

func writeAuditTrail(f *excelize.File, records []types.ObligationRecord, headerStyle int) error {
	rows := [][]string{auditColumns}
	for _, r := range records {
		for _, c := range r.Citations {
			rows = append(rows, []string{
				r.ID,
				c.DocumentID,
				c.Location(),
				c.Excerpt,
				joinKeywords(r.Keywords),
			})
		}
	}
	return writeSheet(f, auditSheet, rows, headerStyle)
}

// writeSheet fills one sheet from string rows, bolds the header row,
// and fits column widths to content.
func writeSheet(f *excelize.File, sheet string, rows [][]string, headerStyle int) error {
	widths := make([]int, len(rows[0]))

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing cell %s!%s: %w", sheet, cell, err)
			}
			if len(v) > widths[j] {
				widths[j] = len(v)
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("addressing header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for j, w := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("naming column: %w", err)
		}
		width := float64(w + 2)
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}
	return nil
}

func joinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}
