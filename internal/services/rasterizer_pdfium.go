package services

import (
	"context"
	"fmt"
	"image/jpeg"
	"log"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// PooledRasterizer holds pdfium runtimes that must be released with Close.
type PooledRasterizer interface {
	Rasterizer
	Close() error
}

type pdfiumRasterizer struct {
	pool        pdfium.Pool
	dpi         int
	jpegQuality int
	timeout     time.Duration
}

// NewPdfiumRasterizer renders with pdfium compiled to WebAssembly, so it needs
// neither cgo nor an external binary. workers caps concurrent renders.
func NewPdfiumRasterizer(dpi, jpegQuality, workers int, timeout time.Duration) (PooledRasterizer, error) {
	if dpi <= 0 {
		dpi = 150
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = jpeg.DefaultQuality
	}
	if workers < 1 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  workers,
		MaxTotal: workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start pdfium runtime: %w", err)
	}

	log.Printf("🖼️  pdfium rasterizer ready (%d workers, %d dpi)\n", workers, dpi)
	return &pdfiumRasterizer{
		pool:        pool,
		dpi:         dpi,
		jpegQuality: jpegQuality,
		timeout:     timeout,
	}, nil
}

func (r *pdfiumRasterizer) FirstPageJPEG(ctx context.Context, pdfBytes []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instance, err := r.pool.GetInstance(r.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to get pdfium instance: %w", err)
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("pdfium failed to open document: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	rendered, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: r.dpi,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: doc.Document,
				Index:    0,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pdfium failed to render page 1: %w", err)
	}
	defer rendered.Cleanup()

	return encodeImageJPEG(rendered.Result.Image, r.jpegQuality)
}

func (r *pdfiumRasterizer) Close() error {
	return r.pool.Close()
}
