// Package pdfio provides the PDF access layer: text span extraction, page
// rasterization and document validation, behind backend-neutral interfaces.
//
// Two backends exist. The pdfium backend (WebAssembly build of PDFium) does
// both text and rendering and is the default. The ledongthuc backend is a
// pure-Go fallback for text only, used when the pdfium runtime cannot be
// initialized.
package pdfio

import (
	"context"
	"fmt"
	"image"
	"os"
)

// BackendType identifies the underlying PDF library.
type BackendType string

const (
	BackendPdfium     BackendType = "pdfium"
	BackendLedongthuc BackendType = "ledongthuc"
	// BackendAuto selects pdfium and falls back to ledongthuc.
	BackendAuto BackendType = "auto"
)

// Page holds the raw text spans of one page in document space (points,
// origin top-left), before any layout analysis.
type Page struct {
	Number int
	Width  float64
	Height float64
	Spans  []Span
}

// Span is one extracted run of text with uniform font attributes.
type Span struct {
	Text     string
	X0, Y0   float64
	X1, Y1   float64
	FontName string
	FontSize float64
}

// RenderedPage is a page raster plus the factor converting document points
// to raster pixels. TempPath, when set, is a PNG written for external
// consumers and is deleted by Close.
type RenderedPage struct {
	Image       image.Image
	Width       int
	Height      int
	ScaleFactor float64
	TempPath    string
}

// Close removes the temp file backing the render, if any.
func (r *RenderedPage) Close() error {
	if r.TempPath == "" {
		return nil
	}
	err := os.Remove(r.TempPath)
	r.TempPath = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// TextExtractor extracts positioned text spans from one page of a document.
type TextExtractor interface {
	ExtractPage(ctx context.Context, path string, pageNum int) (*Page, error)
	Backend() BackendType
	Close() error
}

// Rasterizer renders one page of a document to an image at the given DPI.
type Rasterizer interface {
	RenderPage(ctx context.Context, path string, pageNum int, dpi int) (*RenderedPage, error)
}

// PageCounter reports the number of pages in a document.
type PageCounter interface {
	PageCount(ctx context.Context, path string) (int, error)
}

// BackendError wraps a backend failure with the backend and operation that
// produced it.
type BackendError struct {
	Backend BackendType
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("pdf %s backend error in %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
