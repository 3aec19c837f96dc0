// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collate

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/unitbook/internal/fields"
	"github.com/pdiddy/unitbook/internal/pdftest"
	"github.com/pdiddy/unitbook/internal/workspace"
	"github.com/pdiddy/unitbook/pkg/types"
)

// mapText returns canned text keyed by file base name.
type mapText map[string]string

func (m mapText) ExtractText(path string) (string, error) {
	text, ok := m[filepath.Base(path)]
	if !ok {
		return "", errors.New("unexpected path: " + path)
	}
	return text, nil
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("pdf"), 0o644))
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "C-3.pdf", "A-1.PDF", "B-2.Pdf", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	te := mapText{
		"C-3.pdf": "Bedrooms: 3",
		"A-1.PDF": "BUA: 95 sqm",
		"B-2.Pdf": "Uncovered Terrace: 7",
	}
	rows, err := Collect(dir, te)
	require.NoError(t, err)

	assert.Equal(t, []types.ExtractedFields{
		{UnitID: "A-1", BUA: "95"},
		{UnitID: "B-2", CoveredTerrace: "7", UncoveredTerrace: "7"},
		{UnitID: "C-3", Bedrooms: "3"},
	}, rows)
}

func TestCollectRowCountMatchesDocuments(t *testing.T) {
	dir := t.TempDir()
	te := mapText{}
	names := []string{"z.pdf", "m.pdf", "a.pdf", "10.pdf", "9.pdf"}
	for _, n := range names {
		touch(t, dir, n)
		te[n] = ""
	}
	rows, err := Collect(dir, te)
	require.NoError(t, err)
	require.Len(t, rows, len(names))

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.UnitID
	}
	// Lexical order: "10" sorts before "9".
	assert.Equal(t, []string{"10", "9", "a", "m", "z"}, ids)
}

func TestCollectErrors(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "PDFs"), mapText{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	touch(t, dir, "bad.pdf")
	_, err = Collect(dir, mapText{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.pdf")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Extracted Data.xlsx")
	rows := []types.ExtractedFields{
		{UnitID: "A-1", BUA: "1,250.5", Bedrooms: "3", CoveredTerrace: "12", UncoveredTerrace: ""},
		{UnitID: "A-2", Bedrooms: "1"},
	}
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, WriteXLSX(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Extracted Data"}, f.GetSheetList())
	got, err := f.GetRows("Extracted Data")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Columns, got[0])
	assert.Equal(t, []string{"A-1", "1,250.5", "3", "12"}, trimTrailing(got[1]))
	assert.Equal(t, []string{"A-2", "", "1"}, trimTrailing(got[2]))
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	rows := []types.ExtractedFields{{UnitID: "A-1", Bedrooms: "2"}}
	require.NoError(t, WriteYAML(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back []types.ExtractedFields
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, rows, back)
	assert.Contains(t, string(data), "unit_id: A-1")
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, WriteSQLite(path, []types.ExtractedFields{{UnitID: "old"}}))

	rows := []types.ExtractedFields{
		{UnitID: "A-1", BUA: "100", Bedrooms: "2"},
		{UnitID: "A-2", CoveredTerrace: "8"},
	}
	require.NoError(t, WriteSQLite(path, rows))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM units`).Scan(&count))
	assert.Equal(t, 2, count, "table is recreated on each write")

	var bua, bedrooms string
	require.NoError(t, db.QueryRow(`SELECT bua, bedrooms FROM units WHERE unit_id = ?`, "A-1").Scan(&bua, &bedrooms))
	assert.Equal(t, "100", bua)
	assert.Equal(t, "2", bedrooms)
}

func TestRun(t *testing.T) {
	layout := workspace.New(t.TempDir())
	require.NoError(t, layout.EnsureOutputDirs())
	touch(t, layout.PDFs(), "B.pdf", "A.pdf")

	var log bytes.Buffer
	rows, err := Run(layout, mapText{"A.pdf": "Bedrooms: 1", "B.pdf": "Bedrooms: 2"},
		[]types.ExportFormat{types.ExportYAML, types.ExportSQLite}, &log)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].UnitID)

	for _, p := range []string{layout.Results(), layout.ResultsYAML(), layout.ResultsDB()} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
		assert.Contains(t, log.String(), p)
	}
}

func TestRunUnknownExport(t *testing.T) {
	layout := workspace.New(t.TempDir())
	require.NoError(t, layout.EnsureOutputDirs())

	_, err := Run(layout, mapText{}, []types.ExportFormat{"csv"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestRunOnRealPDFs(t *testing.T) {
	layout := workspace.New(t.TempDir())
	pdftest.Write(t, layout.SubDocument("V-2"), [][]string{{"Bedrooms: 4", "BUA: 310 sqm"}})
	pdftest.Write(t, layout.SubDocument("V-1"), [][]string{{"Covered Terrace - 22.5 m2"}, {"Bedrooms - 2"}})

	rows, err := Run(layout, fields.PlainText{}, nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []types.ExtractedFields{
		{UnitID: "V-1", Bedrooms: "2", CoveredTerrace: "22.5"},
		{UnitID: "V-2", Bedrooms: "4", BUA: "310"},
	}, rows)
}

// trimTrailing drops trailing empty cells, which excelize may or may not
// report for blank string values.
func trimTrailing(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}
