// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collate

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/unitbook/pkg/types"
)

// WriteYAML writes rows as a YAML list to path.
func WriteYAML(path string, rows []types.ExtractedFields) error {
	if rows == nil {
		rows = []types.ExtractedFields{}
	}
	data, err := yaml.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteSQLite writes rows to the units table of the SQLite database at
// path. The table is recreated on every call so the database mirrors the
// latest run.
func WriteSQLite(path string, rows []types.ExtractedFields) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DROP TABLE IF EXISTS units`,
		`CREATE TABLE units (
			unit_id TEXT NOT NULL,
			bua TEXT NOT NULL,
			bedrooms TEXT NOT NULL,
			covered_terrace TEXT NOT NULL,
			uncovered_terrace TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	stmt, err := tx.Prepare(`INSERT INTO units (unit_id, bua, bedrooms, covered_terrace, uncovered_terrace) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.UnitID, r.BUA, r.Bedrooms, r.CoveredTerrace, r.UncoveredTerrace); err != nil {
			return fmt.Errorf("inserting %s: %w", r.UnitID, err)
		}
	}
	return tx.Commit()
}
