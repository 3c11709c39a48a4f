package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePdftoppm writes a shell script that records its argv and stdin, then
// prints a 4x3 PNG the way pdftoppm does with -singlefile and no output root.
func fakePdftoppm(t *testing.T) (binary, argsFile, stdinFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	stdinFile = filepath.Join(dir, "stdin")
	pngFile := filepath.Join(dir, "page.png")

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(pngFile, buf.Bytes(), 0o600))

	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\ncat > %q\ncat %q\n", argsFile, stdinFile, pngFile)
	binary = filepath.Join(dir, "pdftoppm")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))

	return binary, argsFile, stdinFile
}

func TestPdftoppmRasterizerRequestsOnlyPageOne(t *testing.T) {
	binary, argsFile, stdinFile := fakePdftoppm(t)
	pdfBytes := buildTestPDF([]string{"Jane Doe"}, []string{"Page two"}, []string{"Page three"})

	r := NewPdftoppmRasterizer(binary, 150, 80, 5*time.Second)
	out, err := r.FirstPageJPEG(context.Background(), pdfBytes)
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"-f", "1", "-l", "1", "-r", "150", "-png", "-singlefile", "-"},
		strings.Split(strings.TrimSpace(string(args)), "\n"),
	)

	stdin, err := os.ReadFile(stdinFile)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, stdin)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestPdftoppmRasterizerReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	binary := filepath.Join(t.TempDir(), "pdftoppm")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\necho 'Syntax Error: broken xref' >&2\nexit 1\n"), 0o755))

	_, err := NewPdftoppmRasterizer(binary, 0, 0, time.Second).FirstPageJPEG(context.Background(), []byte("%PDF-1.4"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken xref")
}

func TestPdfiumRasterizerRendersOnlyPageOne(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the pdfium runtime")
	}

	r, err := NewPdfiumRasterizer(72, 85, 1, 30*time.Second)
	require.NoError(t, err)
	defer r.Close()

	// Distinct page sizes tell the rendered page apart.
	pdfBytes := buildSizedTestPDF([][2]int{{300, 400}, {612, 792}}, []string{"Jane Doe"}, []string{"Page two"})

	out, err := r.FirstPageJPEG(context.Background(), pdfBytes)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestPdfiumRasterizerRejectsGarbage(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the pdfium runtime")
	}

	r, err := NewPdfiumRasterizer(72, 85, 1, 30*time.Second)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.FirstPageJPEG(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}

func TestNewRasterizerSelectsBackend(t *testing.T) {
	r, closeFn, err := NewRasterizer(RasterOptions{Backend: RasterBackendPdftoppm, PdftoppmPath: "/opt/poppler/pdftoppm"})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.NoError(t, closeFn())

	p, ok := r.(*pdftoppmRasterizer)
	require.True(t, ok)
	assert.Equal(t, "/opt/poppler/pdftoppm", p.binary)
	assert.Equal(t, 150, p.dpi)

	_, _, err = NewRasterizer(RasterOptions{Backend: "ghostscript"})
	assert.ErrorContains(t, err, "unknown raster backend")
}
