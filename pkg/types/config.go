// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Action selects which pipelines a spreadsheet-driven run performs.
type Action string

const (
	ActionSplit   Action = "split"
	ActionExtract Action = "extract"
	ActionBoth    Action = "both"
)

// Splits reports whether the action runs the splitter.
func (a Action) Splits() bool { return a == ActionSplit || a == ActionBoth }

// Extracts reports whether the action runs the field extractor.
func (a Action) Extracts() bool { return a == ActionExtract || a == ActionBoth }

// ExportFormat names an additional output for collated field records.
// The spreadsheet is always written.
type ExportFormat string

const (
	ExportYAML   ExportFormat = "yaml"
	ExportSQLite ExportFormat = "sqlite"
)

// Defaults applied when neither flags nor the config file set a value.
const (
	DefaultDPI         = 100
	DefaultJPEGQuality = 90
	DefaultPdftoppm    = "pdftoppm"
)

// RasterConfig holds settings for rendering sub-documents to images.
type RasterConfig struct {
	// DPI is the rendering resolution (default 100).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi" validate:"gt=0"`

	// JPEGQuality is the JPEG encoder quality, 1-100 (default 90).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality" mapstructure:"jpeg_quality" validate:"min=1,max=100"`

	// Pdftoppm is the poppler rasterizer binary name or absolute path.
	Pdftoppm string `json:"pdftoppm" yaml:"pdftoppm" mapstructure:"pdftoppm" validate:"required"`
}

// RunConfig groups the settings for one invocation.
type RunConfig struct {
	RasterConfig `yaml:",inline" mapstructure:",squash"`

	// Folder is the working folder holding Material.pdf and the instructions.
	Folder string `json:"folder" yaml:"folder" mapstructure:"folder" validate:"required"`

	// Action selects split, extract, or both.
	Action Action `json:"action" yaml:"action" mapstructure:"action" validate:"oneof=split extract both"`

	// Exports lists extra collation outputs written next to the spreadsheet.
	Exports []ExportFormat `json:"exports,omitempty" yaml:"exports,omitempty" mapstructure:"exports" validate:"dive,oneof=yaml sqlite"`
}

// DefaultRunConfig returns a RunConfig with every default filled in.
func DefaultRunConfig(folder string) RunConfig {
	return RunConfig{
		RasterConfig: RasterConfig{
			DPI:         DefaultDPI,
			JPEGQuality: DefaultJPEGQuality,
			Pdftoppm:    DefaultPdftoppm,
		},
		Folder: folder,
		Action: ActionBoth,
	}
}

// Validate checks the configuration with go-playground/validator tags.
func (c RunConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// HasExport reports whether format is among the requested exports.
func (c RunConfig) HasExport(format ExportFormat) bool {
	for _, f := range c.Exports {
		if f == format {
			return true
		}
	}
	return false
}
