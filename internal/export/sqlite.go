// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/compliance-engine/pkg/types"
)

// WriteSQLite writes the matrix as a queryable SQLite database. The
// database is the export artifact itself, created fresh each run; the
// pipeline holds no state between runs.
func WriteSQLite(path string, records []types.ObligationRecord, report types.BatchReport) error {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, o := range report.Outcomes {
		if _, err := tx.Exec(
			`INSERT INTO documents (id, status, reason, candidates) VALUES (?, ?, ?, ?)`,
			o.DocumentID, string(o.Status), o.Reason, o.Candidates,
		); err != nil {
			return fmt.Errorf("inserting document %s: %w", o.DocumentID, err)
		}
	}

	for _, r := range records {
		if _, err := tx.Exec(
			`INSERT INTO obligations (id, text, keywords, owner, next_due_date, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Text, strings.Join(r.Keywords, ","), r.Owner, r.NextDueDate, r.Status,
		); err != nil {
			return fmt.Errorf("inserting obligation %s: %w", r.ID, err)
		}
		for i, c := range r.Citations {
			if _, err := tx.Exec(
				`INSERT INTO citations (obligation_id, position, document_id, page, start_offset, end_offset, excerpt)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.ID, i, c.DocumentID, c.Page, c.StartOffset, c.EndOffset, c.Excerpt,
			); err != nil {
				return fmt.Errorf("inserting citation %s/%d: %w", r.ID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE documents (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			reason TEXT,
			candidates INTEGER NOT NULL
		)`,
		`CREATE TABLE obligations (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			keywords TEXT,
			owner TEXT NOT NULL,
			next_due_date TEXT NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE citations (
			obligation_id TEXT NOT NULL REFERENCES obligations(id),
			position INTEGER NOT NULL,
			document_id TEXT NOT NULL,
			page INTEGER,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			excerpt TEXT,
			PRIMARY KEY (obligation_id, position)
		)`,
		`CREATE INDEX idx_citations_document ON citations(document_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
