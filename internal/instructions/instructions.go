// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package instructions reads instruction lists into typed entries. Two
// sources are supported: a spreadsheet with unit_id and page_list columns,
// and a plain-text file of "<page_spec> <filename>" lines.
//
// Rows and lines that cannot form a valid entry are reported on the
// progress writer and skipped; an unreadable file is an error.
package instructions

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/unitbook/pkg/types"
)

// ReadSpreadsheet reads entries from the first sheet of the workbook at
// path. The first row is a header and is not returned.
func ReadSpreadsheet(path string, w io.Writer) ([]types.InstructionEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening instructions %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("instructions %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheets[0], path, err)
	}

	source := filepath.Base(path)
	var entries []types.InstructionEntry
	for i, row := range rows {
		if i == 0 {
			continue
		}
		lineNo := i + 1
		cells := trimCells(row)
		if len(cells) == 0 {
			continue
		}
		if len(cells) > 2 {
			fmt.Fprintf(w, "warning: %s row %d: expected 2 columns, found %d; skipping\n", source, lineNo, len(cells))
			continue
		}
		id := cells[0]
		spec := ""
		if len(cells) == 2 {
			spec = cells[1]
		}
		entry, err := newEntry(id, spec, source, lineNo)
		if err != nil {
			fmt.Fprintf(w, "warning: %s row %d: %v; skipping\n", source, lineNo, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadText reads entries from a text file where every line holds exactly
// two whitespace-separated tokens: a page-spec and an output filename. A
// ".pdf" suffix on the filename is dropped to form the identifier.
func ReadText(path string, w io.Writer) ([]types.InstructionEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening instructions %s: %w", path, err)
	}
	defer f.Close()
	return parseText(f, filepath.Base(path), w)
}

func parseText(r io.Reader, source string, w io.Writer) ([]types.InstructionEntry, error) {
	var entries []types.InstructionEntry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) != 2 {
			fmt.Fprintf(w, "warning: %s line %d: expected \"<pages> <filename>\", found %d tokens; skipping\n", source, lineNo, len(tokens))
			continue
		}
		entry, err := newEntry(stripPDFExt(tokens[1]), tokens[0], source, lineNo)
		if err != nil {
			fmt.Fprintf(w, "warning: %s line %d: %v; skipping\n", source, lineNo, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return entries, nil
}

func newEntry(id, spec, source string, line int) (types.InstructionEntry, error) {
	if err := ValidateIdentifier(id); err != nil {
		return types.InstructionEntry{}, err
	}
	return types.InstructionEntry{
		Identifier: id,
		PageSpec:   strings.TrimSpace(spec),
		Source:     source,
		Line:       line,
	}, nil
}

// ValidateIdentifier reports whether id can name a single file.
func ValidateIdentifier(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("missing unit identifier")
	case id == "." || id == "..":
		return fmt.Errorf("identifier %q is not a file name", id)
	case strings.ContainsAny(id, `/\`+"\x00"):
		return fmt.Errorf("identifier %q contains a path separator", id)
	}
	return nil
}

// trimCells trims every cell and drops trailing blank cells.
func trimCells(row []string) []string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = strings.TrimSpace(c)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func stripPDFExt(name string) string {
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".pdf") {
		return strings.TrimSuffix(name, ext)
	}
	return name
}
