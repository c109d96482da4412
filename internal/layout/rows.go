package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pagelens/pagelens/internal/geom"
)

// RowConfig tunes row grouping and classification thresholds.
type RowConfig struct {
	YCenterTolerance float64 // max distance from a row's running average center
	FullWidthRatio   float64 // x-span ratio above which a row is full width
	HeaderSizeRatio  float64 // font size ratio over median marking a header
	ShortBlockChars  int     // blocks under this many chars count as short
	ParagraphChars   int     // single blocks over this many chars are paragraphs
}

// DefaultRowConfig returns the row thresholds used in production.
func DefaultRowConfig() RowConfig {
	return RowConfig{
		YCenterTolerance: 3.0,
		FullWidthRatio:   0.7,
		HeaderSizeRatio:  1.1,
		ShortBlockChars:  20,
		ParagraphChars:   100,
	}
}

// RowGrouper groups y-sorted blocks into rows and classifies each row's
// semantic type.
type RowGrouper struct {
	config RowConfig
}

// NewRowGrouper creates a row grouper with default configuration.
func NewRowGrouper() *RowGrouper {
	return &RowGrouper{config: DefaultRowConfig()}
}

// NewRowGrouperWithConfig creates a row grouper with custom configuration.
func NewRowGrouperWithConfig(config RowConfig) *RowGrouper {
	return &RowGrouper{config: config}
}

// GroupIntoRows buckets successive blocks into rows by vertical proximity.
// A block joins the current row when its y-center is within tolerance of the
// running average center of the row so far; the average rather than the first
// block keeps long rows stable against slowly drifting baselines.
func (rg *RowGrouper) GroupIntoRows(blocks []Block) []Row {
	if len(blocks) == 0 {
		return []Row{}
	}

	var rows []Row
	currentRow := []Block{blocks[0]}
	currentCenter := blocks[0].BBox.CenterY()

	flush := func() {
		sort.SliceStable(currentRow, func(i, j int) bool {
			return currentRow[i].BBox.X0 < currentRow[j].BBox.X0
		})
		rows = append(rows, makeRow(currentRow))
	}

	for _, block := range blocks[1:] {
		center := block.BBox.CenterY()
		if absFloat(center-currentCenter) <= rg.config.YCenterTolerance {
			currentRow = append(currentRow, block)
			sum := 0.0
			for _, b := range currentRow {
				sum += b.BBox.CenterY()
			}
			currentCenter = sum / float64(len(currentRow))
			continue
		}

		flush()
		currentRow = []Block{block}
		currentCenter = center
	}
	flush()

	return rows
}

func makeRow(blocks []Block) Row {
	yMin := blocks[0].BBox.Y0
	yMax := blocks[0].BBox.Y1
	for _, b := range blocks[1:] {
		if b.BBox.Y0 < yMin {
			yMin = b.BBox.Y0
		}
		if b.BBox.Y1 > yMax {
			yMax = b.BBox.Y1
		}
	}
	return Row{
		Blocks: blocks,
		YMin:   geom.Round2(yMin),
		YMax:   geom.Round2(yMax),
	}
}

const bulletChars = "•●○◦‣⁃-–—"

var numberedPattern = regexp.MustCompile(`^\d+[\)\.\:]`)

// ClassifyRows assigns a semantic type to every row.
func (rg *RowGrouper) ClassifyRows(rows []Row, pageWidth float64, stats Stats) []Row {
	medianFontSize := stats.MedianFontSize
	if medianFontSize == 0 {
		medianFontSize = 10
	}
	for i := range rows {
		rows[i].Type = rg.classifyRow(rows[i], pageWidth, medianFontSize)
	}
	return rows
}

// classifyRow is a priority-ordered decision tree over block count, list
// markers, boldness and size relative to the page median, horizontal span,
// and the ratio of short blocks. Ties fall through to mixed.
func (rg *RowGrouper) classifyRow(row Row, pageWidth, medianFontSize float64) RowType {
	blocks := row.Blocks
	if len(blocks) == 0 {
		return RowTypeEmpty
	}

	xMin := blocks[0].BBox.X0
	xMax := blocks[0].BBox.X1
	for _, b := range blocks[1:] {
		if b.BBox.X0 < xMin {
			xMin = b.BBox.X0
		}
		if b.BBox.X1 > xMax {
			xMax = b.BBox.X1
		}
	}
	rowXSpan := xMax - xMin
	numBlocks := len(blocks)

	hasBullet := false
	hasNumber := false
	for _, b := range blocks {
		trimmed := strings.TrimLeft(b.Text, " \t")
		if trimmed != "" && strings.ContainsRune(bulletChars, []rune(trimmed)[0]) {
			hasBullet = true
		}
		if numberedPattern.MatchString(trimmed) {
			hasNumber = true
		}
	}

	first := blocks[0]
	isBold := first.IsBold
	isLarge := first.FontSize > medianFontSize*rg.config.HeaderSizeRatio
	isFullWidth := pageWidth > 0 && rowXSpan > pageWidth*rg.config.FullWidthRatio

	shortCount := 0
	for _, b := range blocks {
		if len(b.Text) < rg.config.ShortBlockChars {
			shortCount++
		}
	}
	shortRatio := float64(shortCount) / float64(numBlocks)

	if numBlocks == 1 {
		switch {
		case hasBullet:
			return RowTypeBulletItem
		case hasNumber:
			return RowTypeNumberedItem
		case isBold || isLarge:
			return RowTypeHeader
		case len(first.Text) > rg.config.ParagraphChars:
			return RowTypeParagraph
		default:
			return RowTypeLabel
		}
	}

	if hasBullet {
		return RowTypeBulletList
	}

	// A numbered label followed by mostly short siblings reads as a question
	// with options.
	if hasNumber && shortRatio > 0.5 {
		return RowTypeOptionRow
	}

	if numBlocks >= 3 && shortRatio > 0.6 {
		return RowTypeOptionRow
	}

	if numBlocks == 2 {
		firstLen := len(blocks[0].Text)
		secondLen := len(blocks[1].Text)
		if firstLen > secondLen*2 {
			return RowTypeLabelValue
		}
		return RowTypeLabelPair
	}

	if isFullWidth && numBlocks <= 2 {
		return RowTypeParagraph
	}

	return RowTypeMixed
}
