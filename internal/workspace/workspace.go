// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace describes the on-disk layout of a working folder: the
// required inputs (Material.pdf plus an instruction file) and the output
// folders and files the pipelines produce.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	SourceFile      = "Material.pdf"
	SheetFile       = "Instructions.xlsx"
	TextFile        = "Instructions.txt"
	PDFDir          = "PDFs"
	PNGDir          = "PNGs"
	JPEGDir         = "JPEGs"
	ResultsFile     = "Extracted Data.xlsx"
	ResultsYAMLFile = "Extracted Data.yaml"
	ResultsDBFile   = "Extracted Data.db"
)

// Mode selects the instruction file a run reads.
type Mode string

const (
	ModeSheet Mode = "sheet"
	ModeText  Mode = "text"
)

// MissingInputError reports a required input file that does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %s not found", e.Path)
}

// Layout resolves every path of a working folder.
type Layout struct {
	Root string
}

// New returns the layout rooted at root.
func New(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) Source() string      { return filepath.Join(l.Root, SourceFile) }
func (l Layout) PDFs() string        { return filepath.Join(l.Root, PDFDir) }
func (l Layout) PNGs() string        { return filepath.Join(l.Root, PNGDir) }
func (l Layout) JPEGs() string       { return filepath.Join(l.Root, JPEGDir) }
func (l Layout) Results() string     { return filepath.Join(l.Root, ResultsFile) }
func (l Layout) ResultsYAML() string { return filepath.Join(l.Root, ResultsYAMLFile) }
func (l Layout) ResultsDB() string   { return filepath.Join(l.Root, ResultsDBFile) }

// Instructions returns the instruction file path for mode.
func (l Layout) Instructions(mode Mode) string {
	if mode == ModeText {
		return filepath.Join(l.Root, TextFile)
	}
	return filepath.Join(l.Root, SheetFile)
}

// SubDocument returns the PDF path for identifier.
func (l Layout) SubDocument(identifier string) string {
	return filepath.Join(l.PDFs(), identifier+".pdf")
}

// RequireSource returns a *MissingInputError when Material.pdf is absent.
func (l Layout) RequireSource() error {
	return requireFile(l.Source())
}

// RequireInstructions returns a *MissingInputError when the instruction
// file for mode is absent.
func (l Layout) RequireInstructions(mode Mode) error {
	return requireFile(l.Instructions(mode))
}

// EnsureOutputDirs creates PDFs/, PNGs/ and JPEGs/ if they do not exist.
func (l Layout) EnsureOutputDirs() error {
	for _, dir := range []string{l.PDFs(), l.PNGs(), l.JPEGs()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingInputError{Path: path}
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return &MissingInputError{Path: path}
	}
	return nil
}
