// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small PDF fixtures for tests with go-pdf/fpdf.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
)

// fixedDate keeps fixture bytes stable across runs.
var fixedDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Write creates a PDF at path with one page per element of pages; each
// string becomes one line of text on its page.
func Write(t testing.TB, path string, pages [][]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetCreationDate(fixedDate)
	doc.SetModificationDate(fixedDate)
	doc.SetFont("Helvetica", "", 12)
	for _, lines := range pages {
		doc.AddPage()
		for _, line := range lines {
			doc.Cell(0, 8, line)
			doc.Ln(8)
		}
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// Numbered creates a PDF at path with n pages reading "Page 1" .. "Page n".
func Numbered(t testing.TB, path string, n int) {
	t.Helper()
	pages := make([][]string, n)
	for i := range pages {
		pages[i] = []string{fmt.Sprintf("Page %d", i+1)}
	}
	Write(t, path, pages)
}
