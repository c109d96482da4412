package pdfio

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/pagelens/pagelens/internal/geom"
)

// LedongthucExtractor is the pure-Go fallback text backend. It cannot
// rasterize pages, so pipelines running on it skip raster analysis.
type LedongthucExtractor struct{}

// NewLedongthucExtractor returns the fallback extractor.
func NewLedongthucExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

// Backend returns the backend type.
func (l *LedongthucExtractor) Backend() BackendType {
	return BackendLedongthuc
}

// Close is a no-op; the backend holds no resources between calls.
func (l *LedongthucExtractor) Close() error {
	return nil
}

// PageCount returns the number of pages in the document at path.
func (l *LedongthucExtractor) PageCount(ctx context.Context, path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, &BackendError{Backend: BackendLedongthuc, Op: "page_count",
			Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()
	return reader.NumPage(), nil
}

// ExtractPage extracts the text spans of one page (1-indexed). The library
// reports positions with origin bottom-left and no glyph height, so the
// height is approximated by the font size and y is flipped against the
// media box height.
func (l *LedongthucExtractor) ExtractPage(ctx context.Context, path string, pageNum int) (*Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &BackendError{Backend: BackendLedongthuc, Op: "extract_page",
			Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()

	if pageNum < 1 || pageNum > reader.NumPage() {
		return nil, &BackendError{Backend: BackendLedongthuc, Op: "extract_page",
			Err: fmt.Errorf("invalid page number %d (document has %d pages)", pageNum, reader.NumPage())}
	}

	p := reader.Page(pageNum)
	width, height := mediaBoxSize(p)

	page := &Page{
		Number: pageNum,
		Width:  geom.Round2(width),
		Height: geom.Round2(height),
	}

	for _, text := range p.Content().Text {
		if text.S == "" {
			continue
		}
		fontSize := text.FontSize
		if fontSize == 0 {
			fontSize = 12
		}
		// text.Y is the baseline from the bottom of the page.
		y1 := height - text.Y
		page.Spans = append(page.Spans, Span{
			Text:     text.S,
			X0:       geom.Round2(text.X),
			Y0:       geom.Round2(y1 - fontSize),
			X1:       geom.Round2(text.X + text.W),
			Y1:       geom.Round2(y1),
			FontName: text.Font,
			FontSize: geom.Round2(fontSize),
		})
	}

	sort.SliceStable(page.Spans, func(i, j int) bool {
		if page.Spans[i].Y0 != page.Spans[j].Y0 {
			return page.Spans[i].Y0 < page.Spans[j].Y0
		}
		return page.Spans[i].X0 < page.Spans[j].X0
	})

	return page, nil
}

// mediaBoxSize reads the page dimensions from the MediaBox, defaulting to
// US Letter when absent.
func mediaBoxSize(p pdf.Page) (width, height float64) {
	width, height = 612, 792
	mediaBox := p.V.Key("MediaBox")
	if mediaBox.Len() == 4 {
		x0 := mediaBox.Index(0).Float64()
		y0 := mediaBox.Index(1).Float64()
		x1 := mediaBox.Index(2).Float64()
		y1 := mediaBox.Index(3).Float64()
		if x1 > x0 && y1 > y0 {
			width = x1 - x0
			height = y1 - y0
		}
	}
	return width, height
}
