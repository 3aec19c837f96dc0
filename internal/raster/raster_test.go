// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/unitbook/pkg/types"
)

// fakeExecutor pretends to be pdftoppm. It writes pages PNGs at the output
// prefix, each page n being n pixels wide so tests can check ordering.
type fakeExecutor struct {
	pages   int
	pad     int
	runErr  error
	garbage bool
	calls   [][]string
	onPath  map[string]bool
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) Run(name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.runErr != nil {
		return []byte("Syntax Error: broken page"), f.runErr
	}
	prefix := args[len(args)-1]
	for n := 1; n <= f.pages; n++ {
		path := fmt.Sprintf("%s-%0*d.png", prefix, f.pad, n)
		if f.garbage {
			if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
				return nil, err
			}
			continue
		}
		if err := writePNG(path, n, 4); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func writePNG(path string, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func outDirs(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	pngDir := filepath.Join(root, "PNGs")
	jpegDir := filepath.Join(root, "JPEGs")
	require.NoError(t, os.MkdirAll(pngDir, 0o755))
	require.NoError(t, os.MkdirAll(jpegDir, 0o755))
	return pngDir, jpegDir
}

func TestRasterize(t *testing.T) {
	pngDir, jpegDir := outDirs(t)
	exec := &fakeExecutor{pages: 3, pad: 1}
	r := newRasterizer(types.RasterConfig{DPI: 150}, exec)

	doc := types.SubDocument{Identifier: "A-101", Path: "/work/PDFs/A-101.pdf", Pages: []int{4, 7, 9}}
	set, err := r.Rasterize(doc, pngDir, jpegDir)
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	call := exec.calls[0]
	assert.Equal(t, []string{"pdftoppm", "-r", "150", "-png", "/work/PDFs/A-101.pdf"}, call[:5])

	assert.Equal(t, "A-101", set.Identifier)
	require.Len(t, set.PNGs, 3)
	require.Len(t, set.JPEGs, 3)
	for i := range set.PNGs {
		n := i + 1
		assert.Equal(t, filepath.Join(pngDir, fmt.Sprintf("A-101_page_%d.png", n)), set.PNGs[i])
		assert.Equal(t, filepath.Join(jpegDir, fmt.Sprintf("A-101_page_%d.jpeg", n)), set.JPEGs[i])

		cfg := decodeConfig(t, set.PNGs[i], png.DecodeConfig)
		assert.Equal(t, n, cfg.Width, "png page %d out of order", n)
		cfg = decodeConfig(t, set.JPEGs[i], jpeg.DecodeConfig)
		assert.Equal(t, n, cfg.Width, "jpeg page %d out of order", n)
	}
}

func TestRasterizeOrdersPaddedNames(t *testing.T) {
	pngDir, jpegDir := outDirs(t)
	exec := &fakeExecutor{pages: 12, pad: 2}
	r := newRasterizer(types.RasterConfig{}, exec)

	pages := make([]int, 12)
	for i := range pages {
		pages[i] = i + 1
	}
	set, err := r.Rasterize(types.SubDocument{Identifier: "B", Path: "b.pdf", Pages: pages}, pngDir, jpegDir)
	require.NoError(t, err)
	require.Len(t, set.PNGs, 12)

	assert.Equal(t, "100", exec.calls[0][2], "default DPI")
	cfg := decodeConfig(t, filepath.Join(pngDir, "B_page_10.png"), png.DecodeConfig)
	assert.Equal(t, 10, cfg.Width)
}

func TestRasterizeEmptyDocument(t *testing.T) {
	pngDir, jpegDir := outDirs(t)
	exec := &fakeExecutor{}
	r := newRasterizer(types.RasterConfig{}, exec)

	set, err := r.Rasterize(types.SubDocument{Identifier: "C", Path: "c.pdf"}, pngDir, jpegDir)
	require.NoError(t, err)
	assert.Empty(t, set.PNGs)
	assert.Empty(t, set.JPEGs)
	assert.Empty(t, exec.calls, "pdftoppm should not run for an empty document")
}

func TestRasterizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		exec    *fakeExecutor
		pages   []int
		wantErr string
	}{
		{
			name:    "pdftoppm fails",
			exec:    &fakeExecutor{runErr: errors.New("exit status 1")},
			pages:   []int{1},
			wantErr: "broken page",
		},
		{
			name:    "page count mismatch",
			exec:    &fakeExecutor{pages: 1, pad: 1},
			pages:   []int{1, 2},
			wantErr: "rendered 1 pages",
		},
		{
			name:    "undecodable output",
			exec:    &fakeExecutor{pages: 1, pad: 1, garbage: true},
			pages:   []int{1},
			wantErr: "decoding",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pngDir, jpegDir := outDirs(t)
			r := newRasterizer(types.RasterConfig{}, tt.exec)
			_, err := r.Rasterize(types.SubDocument{Identifier: "D", Path: "d.pdf", Pages: tt.pages}, pngDir, jpegDir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAvailable(t *testing.T) {
	r := newRasterizer(types.RasterConfig{}, &fakeExecutor{onPath: map[string]bool{"pdftoppm": true}})
	assert.NoError(t, r.Available())

	r = newRasterizer(types.RasterConfig{Pdftoppm: "/opt/poppler/pdftoppm"}, &fakeExecutor{})
	err := r.Available()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "/opt/poppler/pdftoppm"))
}

func decodeConfig(t *testing.T, path string, decode func(r io.Reader) (image.Config, error)) image.Config {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := decode(f)
	require.NoError(t, err)
	return cfg
}
