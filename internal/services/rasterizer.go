package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Rasterizer renders page one of a PDF to JPEG bytes.
type Rasterizer interface {
	FirstPageJPEG(ctx context.Context, pdfBytes []byte) ([]byte, error)
}

const (
	RasterBackendPdfium   = "pdfium"
	RasterBackendPdftoppm = "pdftoppm"
)

type RasterOptions struct {
	Backend      string
	PdftoppmPath string
	DPI          int
	JPEGQuality  int
	Workers      int
	Timeout      time.Duration
}

// NewRasterizer builds the configured backend. The returned close func
// releases whatever the backend holds and is never nil.
func NewRasterizer(opts RasterOptions) (Rasterizer, func() error, error) {
	switch opts.Backend {
	case "", RasterBackendPdfium:
		r, err := NewPdfiumRasterizer(opts.DPI, opts.JPEGQuality, opts.Workers, opts.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case RasterBackendPdftoppm:
		r := NewPdftoppmRasterizer(opts.PdftoppmPath, opts.DPI, opts.JPEGQuality, opts.Timeout)
		return r, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown raster backend %q", opts.Backend)
	}
}

type pdftoppmRasterizer struct {
	binary      string
	dpi         int
	jpegQuality int
	timeout     time.Duration
}

// NewPdftoppmRasterizer drives poppler's pdftoppm over stdin/stdout (no
// output root given), so the upload never touches the filesystem.
func NewPdftoppmRasterizer(binary string, dpi, jpegQuality int, timeout time.Duration) Rasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 150
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = jpeg.DefaultQuality
	}

	return &pdftoppmRasterizer{
		binary:      binary,
		dpi:         dpi,
		jpegQuality: jpegQuality,
		timeout:     timeout,
	}
}

func (r *pdftoppmRasterizer) FirstPageJPEG(ctx context.Context, pdfBytes []byte) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binary,
		"-f", "1", "-l", "1",
		"-r", strconv.Itoa(r.dpi),
		"-png", "-singlefile",
		"-",
	)
	cmd.Stdin = bytes.NewReader(pdfBytes)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}

	return EncodeJPEG(stdout.Bytes(), r.jpegQuality)
}

// EncodeJPEG decodes any registered image format and re-encodes it as JPEG.
func EncodeJPEG(imageBytes []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}

	return encodeImageJPEG(img, quality)
}

func encodeImageJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return buf.Bytes(), nil
}
