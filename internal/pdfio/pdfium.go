package pdfio

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/pkg/errors"

	"github.com/pagelens/pagelens/internal/geom"
)

// PdfiumConfig controls the WebAssembly worker pool behind the pdfium
// backend.
type PdfiumConfig struct {
	MinIdle         int
	MaxIdle         int
	MaxTotal        int
	InstanceTimeout time.Duration
}

// DefaultPdfiumConfig returns a single-worker pool, enough for the one page
// at a time pipeline.
func DefaultPdfiumConfig() PdfiumConfig {
	return PdfiumConfig{
		MinIdle:         1,
		MaxIdle:         1,
		MaxTotal:        1,
		InstanceTimeout: 30 * time.Second,
	}
}

// PdfiumEngine is the pdfium backend. It implements TextExtractor,
// Rasterizer and PageCounter on one shared worker pool.
type PdfiumEngine struct {
	pool   pdfium.Pool
	config PdfiumConfig
}

// NewPdfiumEngine initializes the pdfium WebAssembly runtime.
func NewPdfiumEngine() (*PdfiumEngine, error) {
	return NewPdfiumEngineWithConfig(DefaultPdfiumConfig())
}

// NewPdfiumEngineWithConfig initializes the runtime with explicit pool
// limits.
func NewPdfiumEngineWithConfig(config PdfiumConfig) (*PdfiumEngine, error) {
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  config.MinIdle,
		MaxIdle:  config.MaxIdle,
		MaxTotal: config.MaxTotal,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize pdfium runtime")
	}
	return &PdfiumEngine{pool: pool, config: config}, nil
}

// Backend returns the backend type.
func (e *PdfiumEngine) Backend() BackendType {
	return BackendPdfium
}

// Close shuts down the worker pool.
func (e *PdfiumEngine) Close() error {
	return e.pool.Close()
}

// PageCount returns the number of pages in the document at path.
func (e *PdfiumEngine) PageCount(ctx context.Context, path string) (int, error) {
	instance, err := e.pool.GetInstance(e.config.InstanceTimeout)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pdfium instance")
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{FilePath: &path})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open document %s", path)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	count, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get page count")
	}
	return count.PageCount, nil
}

// ExtractPage extracts the positioned text spans of one page (1-indexed).
// Characters come back in PDF coordinates with origin bottom-left; they are
// flipped to top-left and grouped into word-level spans.
func (e *PdfiumEngine) ExtractPage(ctx context.Context, path string, pageNum int) (*Page, error) {
	instance, err := e.pool.GetInstance(e.config.InstanceTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pdfium instance")
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{FilePath: &path})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open document %s", path)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	pageResp, err := instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: doc.Document,
		Index:    pageNum - 1,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load page %d", pageNum)
	}
	defer instance.FPDF_ClosePage(&requests.FPDF_ClosePage{Page: pageResp.Page})

	pageRef := pageResp.Page

	widthResp, err := instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{ByReference: &pageRef},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}
	heightResp, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{ByReference: &pageRef},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}
	pageHeight := float64(heightResp.PageHeight)

	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &pageRef},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{TextPage: textPage.TextPage})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	page := &Page{
		Number: pageNum,
		Width:  geom.Round2(float64(widthResp.PageWidth)),
		Height: geom.Round2(pageHeight),
	}
	if charCount.Count == 0 {
		return page, nil
	}

	chars := make([]pageChar, 0, charCount.Count)
	for i := 0; i < charCount.Count; i++ {
		unicodeResp, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeResp.Unicode == 0 {
			continue
		}
		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		c := pageChar{
			r: rune(unicodeResp.Unicode),
			box: geom.BBox{
				X0: charBox.Left,
				Y0: pageHeight - charBox.Top,
				X1: charBox.Right,
				Y1: pageHeight - charBox.Bottom,
			},
			fontSize: 12,
		}

		if fontSize, err := instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			c.fontSize = fontSize.FontSize
		}
		if fontInfo, err := instance.FPDFText_GetFontInfo(&requests.FPDFText_GetFontInfo{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			c.fontName = fontInfo.FontName
		}
		if fontWeight, err := instance.FPDFText_GetFontWeight(&requests.FPDFText_GetFontWeight{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil && fontWeight.FontWeight >= 700 {
			if !strings.Contains(strings.ToLower(c.fontName), "bold") {
				c.fontName += "-Bold"
			}
		}

		chars = append(chars, c)
	}

	page.Spans = groupCharsIntoSpans(chars)
	return page, nil
}

// RenderPage renders one page (1-indexed) at the given DPI.
func (e *PdfiumEngine) RenderPage(ctx context.Context, path string, pageNum int, dpi int) (*RenderedPage, error) {
	instance, err := e.pool.GetInstance(e.config.InstanceTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pdfium instance")
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{FilePath: &path})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open document %s", path)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	render, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: dpi,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: doc.Document,
				Index:    pageNum - 1,
			},
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render page %d", pageNum)
	}

	img := render.Result.Image
	bounds := img.Bounds()
	return &RenderedPage{
		Image:       img,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ScaleFactor: render.Result.PointToPixelRatio,
	}, nil
}

type pageChar struct {
	r        rune
	box      geom.BBox
	fontName string
	fontSize float64
}

// groupCharsIntoSpans merges consecutive characters into word-level spans,
// breaking on whitespace, font changes and line changes. Spans come back
// sorted by (y0, x0).
func groupCharsIntoSpans(chars []pageChar) []Span {
	var spans []Span
	var current []pageChar

	flush := func() {
		if len(current) == 0 {
			return
		}
		box := current[0].box
		var text strings.Builder
		for _, c := range current {
			text.WriteRune(c.r)
			box = box.Union(c.box)
		}
		spans = append(spans, Span{
			Text:     text.String(),
			X0:       geom.Round2(box.X0),
			Y0:       geom.Round2(box.Y0),
			X1:       geom.Round2(box.X1),
			Y1:       geom.Round2(box.Y1),
			FontName: current[0].fontName,
			FontSize: geom.Round2(current[0].fontSize),
		})
		current = nil
	}

	for _, c := range chars {
		if c.r == ' ' || c.r == '\t' || c.r == '\n' || c.r == '\r' {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			sameLine := math.Abs(c.box.Y0-prev.box.Y0) <= 2
			sameFont := c.fontName == prev.fontName && c.fontSize == prev.fontSize
			if !sameLine || !sameFont {
				flush()
			}
		}
		current = append(current, c)
	}
	flush()

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y0 != spans[j].Y0 {
			return spans[i].Y0 < spans[j].Y0
		}
		return spans[i].X0 < spans[j].X0
	})
	return spans
}
