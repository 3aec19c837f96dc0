// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders sub-documents to images with poppler's pdftoppm.
// Every page is written twice, as {id}_page_{n}.png and {id}_page_{n}.jpeg,
// where n is the 1-based position of the page within the sub-document.
package raster

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/unitbook/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (stderr []byte, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) ([]byte, error) {
	var errb bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &errb
	err := cmd.Run()
	return errb.Bytes(), err
}

// Rasterizer renders PDFs at a fixed resolution.
type Rasterizer struct {
	cfg  types.RasterConfig
	exec executor
}

// New returns a Rasterizer using cfg. Zero values fall back to the
// package defaults.
func New(cfg types.RasterConfig) *Rasterizer {
	return newRasterizer(cfg, &osExecutor{})
}

func newRasterizer(cfg types.RasterConfig, exec executor) *Rasterizer {
	if cfg.DPI <= 0 {
		cfg.DPI = types.DefaultDPI
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = types.DefaultJPEGQuality
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = types.DefaultPdftoppm
	}
	return &Rasterizer{cfg: cfg, exec: exec}
}

// Available returns an error when the pdftoppm binary cannot be found.
func (r *Rasterizer) Available() error {
	if _, err := r.exec.LookPath(r.cfg.Pdftoppm); err != nil {
		return fmt.Errorf("%s not found (install poppler-utils): %w", r.cfg.Pdftoppm, err)
	}
	return nil
}

// Rasterize renders every page of doc into pngDir and jpegDir. A document
// without pages produces no images.
func (r *Rasterizer) Rasterize(doc types.SubDocument, pngDir, jpegDir string) (types.RasterSet, error) {
	set := types.RasterSet{Identifier: doc.Identifier}
	if len(doc.Pages) == 0 {
		return set, nil
	}

	tmpDir, err := os.MkdirTemp("", "unitbook-raster-*")
	if err != nil {
		return set, err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(r.cfg.DPI), "-png", doc.Path, prefix}
	if stderr, err := r.exec.Run(r.cfg.Pdftoppm, args...); err != nil {
		return set, fmt.Errorf("%s %s: %w: %s", r.cfg.Pdftoppm, doc.Path, err, strings.TrimSpace(string(stderr)))
	}

	rendered, err := renderedPages(prefix)
	if err != nil {
		return set, err
	}
	if len(rendered) != len(doc.Pages) {
		return set, fmt.Errorf("%s rendered %d pages for %s, want %d", r.cfg.Pdftoppm, len(rendered), doc.Path, len(doc.Pages))
	}

	for i, src := range rendered {
		name := fmt.Sprintf("%s_page_%d", doc.Identifier, i+1)
		pngPath := filepath.Join(pngDir, name+".png")
		jpegPath := filepath.Join(jpegDir, name+".jpeg")
		if err := r.writePage(src, pngPath, jpegPath); err != nil {
			return set, fmt.Errorf("page %d of %s: %w", i+1, doc.Identifier, err)
		}
		set.PNGs = append(set.PNGs, pngPath)
		set.JPEGs = append(set.JPEGs, jpegPath)
	}
	return set, nil
}

// writePage copies the rendered PNG to pngPath and re-encodes it as JPEG.
func (r *Rasterizer) writePage(src, pngPath, jpegPath string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(src), err)
	}
	if err := os.WriteFile(pngPath, data, 0o644); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.cfg.JPEGQuality}); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(jpegPath), err)
	}
	return os.WriteFile(jpegPath, buf.Bytes(), 0o644)
}

// renderedPages returns the files pdftoppm wrote for prefix, ordered by page
// number. pdftoppm names them prefix-N.png with N zero-padded to the width
// of the page count.
func renderedPages(prefix string) ([]string, error) {
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	type page struct {
		n    int
		path string
	}
	pages := make([]page, 0, len(matches))
	for _, m := range matches {
		num := strings.TrimSuffix(strings.TrimPrefix(m, prefix+"-"), ".png")
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		pages = append(pages, page{n: n, path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}
