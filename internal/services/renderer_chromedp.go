package services

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"
)

type chromedpRenderer struct {
	chromePath string
	timeout    time.Duration
	slots      *semaphore.Weighted
}

// NewChromedpRenderer prints HTML with a headless Chrome started per call,
// at most maxConcurrent browsers at a time. An empty chromePath lets chromedp
// find the browser.
func NewChromedpRenderer(chromePath string, timeout time.Duration, maxConcurrent int) PDFRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &chromedpRenderer{
		chromePath: chromePath,
		timeout:    timeout,
		slots:      semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

func (r *chromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if err := r.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to wait for a browser slot: %w", err)
	}
	defer r.slots.Release(1)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.timeout)
	defer cancelRun()

	var pdfBuf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = printParams().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF with chrome: %w", err)
	}

	return pdfBuf, nil
}

// printParams prints one US letter page. Content past the page edge is
// clipped rather than spilling onto a second page.
func printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().WithPrintBackground(true).
		WithPaperWidth(8.5).
		WithPaperHeight(11).
		WithPreferCSSPageSize(true).
		WithPageRanges("1")
}
