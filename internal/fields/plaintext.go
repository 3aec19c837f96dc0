// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PlainText extracts the text layer of a PDF with ledongthuc/pdf. Page
// texts are joined without a separator, so a label and its value split
// across a page break only match if the text layer already joins them.
type PlainText struct{}

// ExtractText returns the concatenated plain text of every page at path.
func (PlainText) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading text of page %d of %s: %w", i, path, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
