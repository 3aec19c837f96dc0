// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split partitions the source document into per-unit sub-documents
// and renders each one to PNG and JPEG images.
//
// Entries are processed one at a time, in instruction order. A blank
// page-spec skips the entry; a malformed page-spec or any PDF or rendering
// failure aborts the batch. Files written for earlier entries remain.
package split

import (
	"fmt"
	"io"

	"github.com/pdiddy/unitbook/internal/pagespec"
	"github.com/pdiddy/unitbook/internal/workspace"
	"github.com/pdiddy/unitbook/pkg/types"
)

// Renderer turns a sub-document into one image per page in two formats.
type Renderer interface {
	Rasterize(doc types.SubDocument, pngDir, jpegDir string) (types.RasterSet, error)
}

// BatchResult holds the outcome of a split run.
type BatchResult struct {
	Written   int
	Skipped   int
	Warnings  int
	Documents []types.SubDocument
}

// Total returns the number of entries processed.
func (r BatchResult) Total() int {
	return r.Written + r.Skipped
}

// SplitUnit resolves the entry's page-spec, writes its sub-document under
// layout's PDF folder and renders it. The skipped return value reports a
// blank page-spec, in which case nothing is written.
func SplitUnit(src *Source, entry types.InstructionEntry, layout workspace.Layout, r Renderer, w io.Writer) (doc types.SubDocument, skipped bool, err error) {
	if pagespec.IsBlank(entry.PageSpec) {
		fmt.Fprintf(w, "skipped: %s (no pages listed)\n", entry.Identifier)
		return types.SubDocument{Identifier: entry.Identifier}, true, nil
	}

	pages, err := pagespec.Resolve(entry.PageSpec)
	if err != nil {
		return types.SubDocument{Identifier: entry.Identifier}, false, fmt.Errorf("%s (%s line %d): %w", entry.Identifier, entry.Source, entry.Line, err)
	}

	doc, err = src.Extract(entry.Identifier, pages, layout.SubDocument(entry.Identifier), w)
	if err != nil {
		return doc, false, err
	}

	raster, err := r.Rasterize(doc, layout.PNGs(), layout.JPEGs())
	if err != nil {
		return doc, false, fmt.Errorf("rendering %s: %w", entry.Identifier, err)
	}

	fmt.Fprintf(w, "written: %s (%d pages, %d images)\n", entry.Identifier, len(doc.Pages), len(raster.PNGs)+len(raster.JPEGs))
	return doc, false, nil
}

// Run splits every entry in order, printing per-entry status to w. It
// stops at the first fatal error and returns the partial result with it.
func Run(src *Source, entries []types.InstructionEntry, layout workspace.Layout, r Renderer, w io.Writer) (BatchResult, error) {
	var result BatchResult
	if err := layout.EnsureOutputDirs(); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "Processing %d instructions...\n", len(entries))
	for _, e := range entries {
		doc, skipped, err := SplitUnit(src, e, layout, r, w)
		if err != nil {
			return result, err
		}
		if skipped {
			result.Skipped++
			continue
		}
		result.Written++
		result.Warnings += len(doc.Omitted)
		result.Documents = append(result.Documents, doc)
	}

	fmt.Fprintf(w, "\nBatch summary: %d written, %d skipped, %d warnings (total: %d)\n",
		result.Written, result.Skipped, result.Warnings, result.Total())
	return result, nil
}
