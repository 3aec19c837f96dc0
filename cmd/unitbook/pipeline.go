// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/pdiddy/unitbook/internal/collate"
	"github.com/pdiddy/unitbook/internal/fields"
	"github.com/pdiddy/unitbook/internal/instructions"
	"github.com/pdiddy/unitbook/internal/raster"
	"github.com/pdiddy/unitbook/internal/split"
	"github.com/pdiddy/unitbook/internal/workspace"
	"github.com/pdiddy/unitbook/pkg/types"
)

// runSplit reads the instruction file for mode and splits Material.pdf.
func runSplit(cfg types.RunConfig, mode workspace.Mode, w io.Writer) error {
	layout := workspace.New(cfg.Folder)
	if err := layout.RequireSource(); err != nil {
		return err
	}
	if err := layout.RequireInstructions(mode); err != nil {
		return err
	}

	r := raster.New(cfg.RasterConfig)
	if err := r.Available(); err != nil {
		return err
	}

	var (
		entries []types.InstructionEntry
		err     error
	)
	switch mode {
	case workspace.ModeText:
		entries, err = instructions.ReadText(layout.Instructions(mode), w)
	default:
		entries, err = instructions.ReadSpreadsheet(layout.Instructions(mode), w)
	}
	if err != nil {
		return err
	}

	src, err := split.OpenSource(layout.Source())
	if err != nil {
		return err
	}

	if _, err := split.Run(src, entries, layout, r, w); err != nil {
		return err
	}
	fmt.Fprintln(w, "PDFs, PNGs, and JPEGs have been successfully split and saved.")
	return nil
}

// runExtract collates fields from the sub-documents already in PDFs/.
func runExtract(cfg types.RunConfig, w io.Writer) error {
	layout := workspace.New(cfg.Folder)
	_, err := collate.Run(layout, fields.PlainText{}, cfg.Exports, w)
	return err
}

// runSheet performs the spreadsheet-driven pipelines selected by cfg.Action.
func runSheet(cfg types.RunConfig, w io.Writer) error {
	if cfg.Action.Splits() {
		if err := runSplit(cfg, workspace.ModeSheet, w); err != nil {
			return err
		}
	}
	if cfg.Action.Extracts() {
		if err := runExtract(cfg, w); err != nil {
			return err
		}
	}
	return nil
}
