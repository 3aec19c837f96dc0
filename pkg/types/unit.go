// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the unitbook pipeline:
// instruction entries read from Instructions.xlsx or Instructions.txt, the
// sub-documents and images the splitter produces, and the field records the
// extractor collates.
package types

// InstructionEntry is one validated instruction: a unit identifier and the
// page-spec selecting its pages from the source document.
type InstructionEntry struct {
	// Identifier names every output produced for the unit (e.g. "A-101").
	// It is always usable as a single filename component.
	Identifier string `json:"identifier" yaml:"identifier"`

	// PageSpec is the raw comma-separated list of pages and ranges
	// (e.g. "1,3-5"). It may be blank, in which case the entry is skipped.
	PageSpec string `json:"page_spec" yaml:"page_spec"`

	// Source is the instruction file the entry was read from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Line is the 1-based row or line number within Source.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// SubDocument describes a PDF written for one unit.
type SubDocument struct {
	Identifier string `json:"identifier" yaml:"identifier"`

	// Path is the written PDF file.
	Path string `json:"path" yaml:"path"`

	// Pages lists the source pages copied, ascending.
	Pages []int `json:"pages" yaml:"pages"`

	// Omitted lists requested pages beyond the source page count.
	Omitted []int `json:"omitted,omitempty" yaml:"omitted,omitempty"`
}

// RasterSet lists the images rendered for a sub-document, one per page in
// sub-document order.
type RasterSet struct {
	Identifier string   `json:"identifier" yaml:"identifier"`
	PNGs       []string `json:"pngs" yaml:"pngs"`
	JPEGs      []string `json:"jpegs" yaml:"jpegs"`
}

// ExtractedFields holds the values matched in a sub-document's text. Each
// value has its whitespace removed and is empty when nothing matched.
type ExtractedFields struct {
	UnitID           string `json:"unit_id" yaml:"unit_id"`
	BUA              string `json:"bua" yaml:"bua"`
	Bedrooms         string `json:"bedrooms" yaml:"bedrooms"`
	CoveredTerrace   string `json:"covered_terrace" yaml:"covered_terrace"`
	UncoveredTerrace string `json:"uncovered_terrace" yaml:"uncovered_terrace"`
}
