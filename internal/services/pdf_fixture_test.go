package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
)

// buildTestPDF writes a minimal uncompressed PDF with one text line per
// page, with a correct xref table so ledongthuc/pdf can parse it.
func buildTestPDF(pages ...[]string) []byte {
	return buildSizedTestPDF(nil, pages...)
}

// buildSizedTestPDF is buildTestPDF with a MediaBox per page, in points.
// Pages without an entry in sizes are US letter.
func buildSizedTestPDF(sizes [][2]int, pages ...[]string) []byte {
	const fontID = 3
	var objects []string

	pageIDs := make([]int, len(pages))
	for i := range pages {
		pageIDs[i] = 4 + i*2
	}

	kids := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		kids[i] = fmt.Sprintf("%d 0 R", id)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, lines := range pages {
		var content strings.Builder
		y := 720
		for _, line := range lines {
			fmt.Fprintf(&content, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", y, line)
			y -= 16
		}
		stream := content.String()

		width, height := 612, 792
		if i < len(sizes) {
			width, height = sizes[i][0], sizes[i][1]
		}

		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", width, height, fontID, pageIDs[i]+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

type fakeRasterizer struct {
	mu    sync.Mutex
	calls int
	out   []byte
	err   error
}

func (f *fakeRasterizer) FirstPageJPEG(ctx context.Context, pdfBytes []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.out, f.err
}

func (f *fakeRasterizer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
