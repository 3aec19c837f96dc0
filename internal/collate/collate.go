// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collate gathers one field record per sub-document in the PDF
// output folder and writes them as a results table sorted by unit ID.
package collate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/unitbook/internal/fields"
	"github.com/pdiddy/unitbook/internal/workspace"
	"github.com/pdiddy/unitbook/pkg/types"
)

const sheetName = "Extracted Data"

// Columns is the header row of the results table.
var Columns = []string{"Unit ID", "BUA", "Bedrooms", "Covered Terrace", "Uncovered Terrace"}

// Collect extracts fields from every PDF in dir (extension matched
// case-insensitively) and returns the records sorted by unit ID.
func Collect(dir string, te fields.TextExtractor) ([]types.ExtractedFields, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var rows []types.ExtractedFields
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		rec, err := fields.ExtractFile(te, filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("extracting fields from %s: %w", e.Name(), err)
		}
		rows = append(rows, rec)
	}
	SortByUnitID(rows)
	return rows, nil
}

// SortByUnitID orders rows by unit ID in byte-wise ascending order.
func SortByUnitID(rows []types.ExtractedFields) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].UnitID < rows[j].UnitID })
}

// record returns r as table cells in Columns order.
func record(r types.ExtractedFields) []string {
	return []string{r.UnitID, r.BUA, r.Bedrooms, r.CoveredTerrace, r.UncoveredTerrace}
}

// WriteXLSX writes rows to a new workbook at path, replacing any existing
// file.
func WriteXLSX(path string, rows []types.ExtractedFields) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	write := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return f.SetSheetRow(sheetName, cell, &cells)
	}

	if err := write(1, Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := write(i+2, record(r)); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.UnitID, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 18)
	_ = f.SetColWidth(sheetName, "B", "E", 16)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Run collects the sub-documents of layout, writes the results spreadsheet
// and any extra exports, and reports progress on w.
func Run(layout workspace.Layout, te fields.TextExtractor, exports []types.ExportFormat, w io.Writer) ([]types.ExtractedFields, error) {
	rows, err := Collect(layout.PDFs(), te)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Extracted fields from %d sub-documents\n", len(rows))

	if err := WriteXLSX(layout.Results(), rows); err != nil {
		return rows, err
	}
	fmt.Fprintf(w, "Extracted data has been saved to %s\n", layout.Results())

	for _, format := range exports {
		switch format {
		case types.ExportYAML:
			if err := WriteYAML(layout.ResultsYAML(), rows); err != nil {
				return rows, err
			}
			fmt.Fprintf(w, "Extracted data has been saved to %s\n", layout.ResultsYAML())
		case types.ExportSQLite:
			if err := WriteSQLite(layout.ResultsDB(), rows); err != nil {
				return rows, err
			}
			fmt.Fprintf(w, "Extracted data has been saved to %s\n", layout.ResultsDB())
		default:
			return rows, fmt.Errorf("unsupported export format %q: use yaml or sqlite", format)
		}
	}
	return rows, nil
}
