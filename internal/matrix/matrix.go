// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matrix assembles deduplicated obligation groups into the
// final record collection with stable identifiers.
package matrix

import (
	"fmt"

	"github.com/pdiddy/compliance-engine/internal/dedupe"
	"github.com/pdiddy/compliance-engine/pkg/types"
)

// DefaultFieldValue fills Owner, Next Due Date, and Status when the
// config leaves them unset.
const DefaultFieldValue = "Not Started"

// idPrefix and idWidth define the record identifier format: OBL-001,
// OBL-002, and so on. Identifiers beyond 999 widen naturally.
const (
	idPrefix = "OBL"
	idWidth  = 3
)

// Assemble turns ordered groups into ObligationRecords, assigning ids
// strictly in group order. Insertion order is the only ordering
// guarantee, chosen so repeated runs on unchanged input diff cleanly.
func Assemble(groups []dedupe.Group, cfg types.MatrixConfig) []types.ObligationRecord {
	owner := fieldDefault(cfg.DefaultOwner)
	dueDate := fieldDefault(cfg.DefaultDueDate)
	status := fieldDefault(cfg.DefaultStatus)

	records := make([]types.ObligationRecord, 0, len(groups))
	for i, g := range groups {
		records = append(records, types.ObligationRecord{
			ID:          FormatID(i + 1),
			Text:        g.Text,
			Keywords:    g.Keywords,
			Citations:   g.Citations,
			Owner:       owner,
			NextDueDate: dueDate,
			Status:      status,
		})
	}
	return records
}

// FormatID renders a 1-based record number as a matrix identifier.
func FormatID(n int) string {
	return fmt.Sprintf("%s-%0*d", idPrefix, idWidth, n)
}

func fieldDefault(v string) string {
	if v == "" {
		return DefaultFieldValue
	}
	return v
}
