package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/ats-resume-checker/internal/models"
)

// DocumentPreprocessor turns an uploaded resume into the inline image the
// model receives. Only the first page is ever read.
type DocumentPreprocessor interface {
	RenderFirstPage(ctx context.Context, fileBytes []byte) (*models.InlineImagePayload, error)
	ExtractFirstPageText(fileBytes []byte) string
}

type documentPreprocessor struct {
	rasterizer Rasterizer
}

func NewDocumentPreprocessor(rasterizer Rasterizer) DocumentPreprocessor {
	return &documentPreprocessor{
		rasterizer: rasterizer,
	}
}

func (p *documentPreprocessor) RenderFirstPage(ctx context.Context, fileBytes []byte) (*models.InlineImagePayload, error) {
	if len(fileBytes) == 0 {
		return nil, &MissingInputError{Input: "resume"}
	}

	if _, err := openFirstPage(fileBytes); err != nil {
		return nil, &DocumentDecodeError{Cause: err}
	}

	jpegBytes, err := p.rasterizer.FirstPageJPEG(ctx, fileBytes)
	if err != nil {
		return nil, &DocumentDecodeError{Cause: fmt.Errorf("failed to rasterize first page: %w", err)}
	}
	if len(jpegBytes) == 0 {
		return nil, &DocumentDecodeError{Cause: errors.New("rasterizer produced an empty image")}
	}

	log.Printf("🖼️  Rendered first page (%d bytes JPEG)\n", len(jpegBytes))
	return models.NewJPEGPayload(jpegBytes), nil
}

func (p *documentPreprocessor) ExtractFirstPageText(fileBytes []byte) string {
	page, err := openFirstPage(fileBytes)
	if err != nil {
		return ""
	}

	text, err := plainText(page)
	if err != nil {
		log.Printf("⚠️  Failed to extract first page text: %v\n", err)
		return ""
	}

	return CleanText(text)
}

// openFirstPage parses the document and returns page one. The parser panics
// on some malformed inputs, so those are turned into errors here.
func openFirstPage(fileBytes []byte) (page pdf.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	if len(fileBytes) == 0 {
		return pdf.Page{}, errors.New("empty document")
	}

	r, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return pdf.Page{}, fmt.Errorf("failed to open PDF: %w", err)
	}

	if r.NumPage() < 1 {
		return pdf.Page{}, errors.New("document has no pages")
	}

	page = r.Page(1)
	if page.V.IsNull() {
		return pdf.Page{}, errors.New("first page is missing")
	}

	return page, nil
}

func plainText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
