// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fields pulls unit attributes (bedroom count, built-up area and
// terrace areas) out of a sub-document's text with a table of
// case-insensitive patterns. The first match of each pattern wins; a field
// without a match is left empty.
package fields

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/unitbook/pkg/types"
)

// Field names a column of the results table.
type Field string

const (
	FieldBUA              Field = "BUA"
	FieldBedrooms         Field = "Bedrooms"
	FieldCoveredTerrace   Field = "Covered Terrace"
	FieldUncoveredTerrace Field = "Uncovered Terrace"
)

// Rule extracts one field: Group is the capture group of Pattern holding
// the value.
type Rule struct {
	Field   Field
	Pattern *regexp.Regexp
	Group   int
}

// Rules is the extraction table applied by Extract. Area values may carry
// thousands separators and a decimal part; a trailing unit is not captured.
// Whitespace classes include Unicode space separators such as NBSP, which
// PDF text layers often emit between a label and its value.
var Rules = []Rule{
	{
		Field:   FieldBedrooms,
		Pattern: regexp.MustCompile(`(?i)Bedrooms[\s\p{Zs}]*[:\-]?[\s\p{Zs}]*(\d+)`),
		Group:   1,
	},
	{
		Field:   FieldBUA,
		Pattern: regexp.MustCompile(`(?i)BUA[\s\p{Zs}]*[:\-]?[\s\p{Zs}]*([\d\s\p{Zs},]+(?:\.\d+)?)[\s\p{Zs}]*(?:sqm|m²|square[\s\p{Zs}]*meters)?`),
		Group:   1,
	},
	{
		Field:   FieldCoveredTerrace,
		Pattern: regexp.MustCompile(`(?i)Covered[\s\p{Zs}]*Terrace[\s\p{Zs}]*[:\-]?[\s\p{Zs}]*([\d\s\p{Zs},]+(?:\.\d+)?)[\s\p{Zs}]*(?:sqm|m²)?`),
		Group:   1,
	},
	{
		Field:   FieldUncoveredTerrace,
		Pattern: regexp.MustCompile(`(?i)Uncovered[\s\p{Zs}]*Terrace[\s\p{Zs}]*[:\-]?[\s\p{Zs}]*([\d\s\p{Zs},]+(?:\.\d+)?)[\s\p{Zs}]*(?:sqm|m²)?`),
		Group:   1,
	},
}

// TextExtractor returns the full text of a PDF.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Match applies rules to text and returns the cleaned value of every field
// that matched.
func Match(rules []Rule, text string) map[Field]string {
	values := make(map[Field]string, len(rules))
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil || r.Group >= len(m) {
			continue
		}
		values[r.Field] = Clean(m[r.Group])
	}
	return values
}

// Extract applies Rules to text and returns the record for unitID.
func Extract(unitID, text string) types.ExtractedFields {
	v := Match(Rules, text)
	return types.ExtractedFields{
		UnitID:           unitID,
		BUA:              v[FieldBUA],
		Bedrooms:         v[FieldBedrooms],
		CoveredTerrace:   v[FieldCoveredTerrace],
		UncoveredTerrace: v[FieldUncoveredTerrace],
	}
}

// ExtractFile reads the text of the PDF at path and extracts its fields.
// The unit ID is the file name without its extension.
func ExtractFile(te TextExtractor, path string) (types.ExtractedFields, error) {
	text, err := te.ExtractText(path)
	if err != nil {
		return types.ExtractedFields{}, err
	}
	return Extract(UnitID(path), text), nil
}

// UnitID derives a unit identifier from a sub-document path.
func UnitID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Clean removes every whitespace character from s. Commas are kept.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
