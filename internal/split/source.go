// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/unitbook/pkg/types"
)

// Source is a read-only handle on the source document. It is opened once
// per run and passed to every per-unit extraction.
type Source struct {
	path string
	ctx  *model.Context
}

// OpenSource reads and parses the PDF at path.
func OpenSource(path string) (*Source, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening source PDF %s: %w", path, err)
	}
	return &Source{path: path, ctx: ctx}, nil
}

// Path returns the file the source was read from.
func (s *Source) Path() string { return s.path }

// PageCount returns the number of pages in the source document.
func (s *Source) PageCount() int { return s.ctx.PageCount }

// Extract writes a new PDF at outPath holding the requested pages in
// ascending order. Pages beyond the page count are left out, reported on w,
// and listed in the returned SubDocument. When no page remains an empty
// document is written. An existing file at outPath is replaced.
func (s *Source) Extract(identifier string, pages []int, outPath string, w io.Writer) (types.SubDocument, error) {
	doc := types.SubDocument{Identifier: identifier, Path: outPath}
	count := s.PageCount()
	for _, p := range pages {
		if p > count {
			fmt.Fprintf(w, "warning: %s: page %d is out of range (source has %d pages)\n", identifier, p, count)
			doc.Omitted = append(doc.Omitted, p)
			continue
		}
		doc.Pages = append(doc.Pages, p)
	}

	var buf bytes.Buffer
	if len(doc.Pages) == 0 {
		writeEmptyPDF(&buf)
	} else {
		sub, err := pdfcpu.ExtractPages(s.ctx, doc.Pages, false)
		if err != nil {
			return doc, fmt.Errorf("extracting pages %v for %s: %w", doc.Pages, identifier, err)
		}
		if err := api.WriteContext(sub, &buf); err != nil {
			return doc, fmt.Errorf("writing %s: %w", identifier, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return doc, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return doc, fmt.Errorf("writing %s: %w", outPath, err)
	}
	return doc, nil
}

// writeEmptyPDF writes a minimal valid PDF whose page tree has no kids.
func writeEmptyPDF(buf *bytes.Buffer) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
}
