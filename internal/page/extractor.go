package page

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/layout"
	"github.com/pagelens/pagelens/internal/pdfio"
	"github.com/pagelens/pagelens/internal/raster"
	"github.com/pagelens/pagelens/internal/table"
)

// ExtractorConfig controls one extraction run.
type ExtractorConfig struct {
	// DPI for the control detection render.
	DPI int
	// Debug writes an annotated PNG next to the source file; its path lands
	// in the result.
	Debug bool
	// MinVisualBands is how many bands the raster must yield before they
	// replace text-proximity rows.
	MinVisualBands int
	// GridTolerancePt is the clustering tolerance for table cell grids, in
	// document points.
	GridTolerancePt float64
}

// DefaultExtractorConfig returns the standard pipeline parameters.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		DPI:             200,
		MinVisualBands:  3,
		GridTolerancePt: 10,
	}
}

// Extractor runs the full page pipeline: text extraction, raster scanning,
// classification and fusion into one Result.
type Extractor struct {
	text       pdfio.TextExtractor
	rasterizer pdfio.Rasterizer
	logger     *log.Logger
	config     ExtractorConfig
}

// NewExtractor builds an extractor. rasterizer may be nil, in which case all
// raster-derived analysis (controls, bands, tables) is skipped and rows come
// from text proximity only.
func NewExtractor(text pdfio.TextExtractor, rasterizer pdfio.Rasterizer, logger *log.Logger) *Extractor {
	return NewExtractorWithConfig(text, rasterizer, logger, DefaultExtractorConfig())
}

// NewExtractorWithConfig builds an extractor with explicit parameters.
func NewExtractorWithConfig(text pdfio.TextExtractor, rasterizer pdfio.Rasterizer, logger *log.Logger, config ExtractorConfig) *Extractor {
	if config.DPI <= 0 {
		config.DPI = 200
	}
	if config.MinVisualBands <= 0 {
		config.MinVisualBands = 3
	}
	if config.GridTolerancePt <= 0 {
		config.GridTolerancePt = 10
	}
	return &Extractor{
		text:       text,
		rasterizer: rasterizer,
		logger:     logger,
		config:     config,
	}
}

// ExtractPage produces the unified structural record for one page
// (1-indexed). A page that cannot be extracted yields a Result with Error
// set rather than a Go error; only programming errors surface as errors.
func (e *Extractor) ExtractPage(ctx context.Context, path string, pageNum int) (*Result, error) {
	result := &Result{Source: path, PageNumber: pageNum}

	pdfPage, err := e.text.ExtractPage(ctx, path, pageNum)
	if err != nil || pdfPage == nil {
		if err != nil {
			e.logger.Printf("text extraction failed for %s page %d: %v", path, pageNum, err)
		}
		result.Error = "No pages extracted"
		return result, nil
	}

	pageWidth := pdfPage.Width
	pageHeight := pdfPage.Height

	spans := make([]layout.Span, 0, len(pdfPage.Spans))
	for _, s := range pdfPage.Spans {
		spans = append(spans, layout.Span{
			Text:     s.Text,
			BBox:     geom.BBox{X0: s.X0, Y0: s.Y0, X1: s.X1, Y1: s.Y1},
			LineY:    s.Y0,
			FontName: s.FontName,
			FontSize: s.FontSize,
		})
	}

	blocks := layout.NewAssembler().AssembleBlocks(spans)
	stats := layout.ComputeStats(blocks)

	rowGrouper := layout.NewRowGrouper()
	rows := rowGrouper.GroupIntoRows(blocks)
	rows = rowGrouper.ClassifyRows(rows, pageWidth, stats)
	columns := layout.DetectColumns(rows, 10)

	var scan *raster.ScanResult
	var rendered *pdfio.RenderedPage
	if e.rasterizer != nil {
		rendered, err = e.rasterizer.RenderPage(ctx, path, pageNum, e.config.DPI)
		if err != nil {
			e.logger.Printf("render failed for %s page %d, continuing without raster analysis: %v", path, pageNum, err)
		} else {
			defer rendered.Close()
			scan = raster.Scan(rendered.Image, raster.DefaultScanConfig(rendered.ScaleFactor))
		}
	}

	scaleFactor := 1.0
	var validControls []raster.Control
	if scan != nil {
		scaleFactor = scan.ScaleFactor
		validControls = FilterValidControls(scan.Controls(), blocks, scaleFactor, pageWidth)
	}

	classification := Classify(blocks, columns, pageWidth, pageHeight, len(validControls))

	result.PageType = classification.PageType
	result.Classification = &classification
	result.Dimensions = &Dimensions{Width: pageWidth, Height: pageHeight}

	if classification.PageType == PageTypeForm {
		e.buildFormResult(result, blocks, rows, columns, stats, scan, validControls, scaleFactor)
	} else {
		e.buildTextResult(result, blocks, columns, stats, scaleFactor)
	}

	if e.config.Debug && scan != nil && rendered != nil {
		if debugPath, err := e.writeDebugImage(path, pageNum, rendered, validControls, scan); err != nil {
			e.logger.Printf("failed to write debug image: %v", err)
		} else {
			result.DebugImage = debugPath
		}
	}

	return result, nil
}

// ExtractDocument runs ExtractPage over every page of the document, in order.
// The text backend must be able to count pages.
func (e *Extractor) ExtractDocument(ctx context.Context, path string) ([]*Result, error) {
	counter, ok := e.text.(pdfio.PageCounter)
	if !ok {
		return nil, fmt.Errorf("%s backend cannot count pages", e.text.Backend())
	}

	count, err := counter.PageCount(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages in %s: %w", path, err)
	}

	results := make([]*Result, 0, count)
	for pageNum := 1; pageNum <= count; pageNum++ {
		result, err := e.ExtractPage(ctx, path, pageNum)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// buildFormResult runs the full form pipeline: visual-band row grouping with
// text fallback, row group and grid inference, control mapping and table
// reconstruction.
func (e *Extractor) buildFormResult(result *Result, blocks []layout.Block, textRows []layout.Row, columns []float64, stats layout.Stats, scan *raster.ScanResult, validControls []raster.Control, scaleFactor float64) {
	rows := textRows
	rowSource := layout.RowSourceTextProximity

	if scan != nil {
		visualRows := AssignBlocksToBands(blocks, scan.RowBands, scaleFactor)
		if len(visualRows) >= e.config.MinVisualBands {
			rowGrouper := layout.NewRowGrouper()
			rows = rowGrouper.ClassifyRows(visualRows, result.Dimensions.Width, stats)
			rowSource = layout.RowSourceVisualBand
		}
	}

	rowGroups := layout.NewGrouper().GroupConsecutiveRows(rows)
	for i := range rowGroups {
		rowGroups[i].Grid = layout.BuildGrid(rows, rowGroups[i].RowIndices)
	}

	for i := range validControls {
		validControls[i].Features = ComputeControlFeatures(validControls[i], scaleFactor)
	}
	mapped := MapControlsToBlocks(validControls, blocks, scaleFactor)

	result.Text = &TextSection{
		Blocks:    blocks,
		Rows:      rows,
		RowSource: rowSource,
		RowGroups: rowGroups,
		Columns:   columns,
		Stats:     stats,
	}
	result.Controls = &ControlSection{Items: mapped, ScaleFactor: scaleFactor}

	visualTables := 0
	if scan != nil {
		result.TableBorders = &scan.Borders

		blockPtrs := make([]*layout.Block, len(blocks))
		for i := range blocks {
			blockPtrs[i] = &blocks[i]
		}
		tolerance := int(e.config.GridTolerancePt * scaleFactor)
		for _, grid := range table.BuildTableGrids(scan.Borders.Horizontal, scan.Borders.Vertical, tolerance) {
			table.AssignBlocks(grid, blockPtrs, scaleFactor)
			result.Tables = append(result.Tables, TableStructure{
				Grid:  grid,
				Spans: table.DetectSpans(grid),
			})
		}

		result.VisualSections = table.DetectVisualSections(
			scan.Borders.Horizontal, scan.Borders.Vertical, scan.Width, scan.Height)
		if result.VisualSections != nil {
			visualTables = result.VisualSections.TotalTables
		}
	}

	rowTypes := make(map[layout.RowType]int)
	for _, row := range rows {
		rowTypes[row.Type]++
	}

	result.Summary = &Summary{
		TotalBlocks:    len(blocks),
		TotalRows:      len(rows),
		TotalRowGroups: len(rowGroups),
		TotalControls:  len(mapped),
		VisualTables:   visualTables,
		RowTypes:       rowTypes,
	}
}

// buildTextResult skips row-level analysis and reports blocks only.
func (e *Extractor) buildTextResult(result *Result, blocks []layout.Block, columns []float64, stats layout.Stats, scaleFactor float64) {
	result.Text = &TextSection{
		Blocks:  blocks,
		Columns: columns,
		Stats:   stats,
	}
	result.Controls = &ControlSection{Items: []raster.Control{}, ScaleFactor: scaleFactor}
	result.Summary = &Summary{
		TotalBlocks: len(blocks),
		Note:        "Row grouping skipped for text page",
	}
}

func (e *Extractor) writeDebugImage(path string, pageNum int, rendered *pdfio.RenderedPage, controls []raster.Control, scan *raster.ScanResult) (string, error) {
	annotated := raster.Annotate(rendered.Image, controls, scan.Borders, scan.RowBands)

	debugPath := fmt.Sprintf("%s_page%d_debug.png", path, pageNum)
	f, err := os.Create(debugPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, annotated); err != nil {
		return "", err
	}
	return debugPath, nil
}
