package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pagelens/pagelens/internal/geom"
)

// AssemblerConfig tunes span merging and paragraph continuation.
type AssemblerConfig struct {
	LineYTolerance   float64 // max line-y delta for two spans to share a line
	MaxSpanGap       float64 // max horizontal gap between merged spans
	ContinuationYGap float64 // max vertical gap for a paragraph continuation
	LeftXTolerance   float64 // left edge alignment tolerance for continuations
}

// DefaultAssemblerConfig returns the merge thresholds used in production.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		LineYTolerance:   2.0,
		MaxSpanGap:       3.0,
		ContinuationYGap: 15.0,
		LeftXTolerance:   5.0,
	}
}

// Assembler merges raw spans into blocks and continuation blocks into
// paragraphs. It is a pure function of its input spans.
type Assembler struct {
	config AssemblerConfig
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler() *Assembler {
	return &Assembler{config: DefaultAssemblerConfig()}
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	return &Assembler{config: config}
}

var (
	sectionStartPattern = regexp.MustCompile(`^([A-Z]\.|[0-9]+\.|[•●○◦‣⁃\-–—])`)
	sentenceEndPattern  = regexp.MustCompile(`[.!?:]\s*$`)
)

// AssembleBlocks turns raw spans into sorted, id-assigned blocks.
//
// The pipeline is: sort by (line-y, x0), merge touching spans on the same
// line, re-sort by (y0, x0) since extraction order is untrustworthy, merge
// paragraph continuations, then assign sequential ids. Empty input yields an
// empty slice, not an error.
func (a *Assembler) AssembleBlocks(spans []Span) []Block {
	if len(spans) == 0 {
		return []Block{}
	}

	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].LineY != ordered[j].LineY {
			return ordered[i].LineY < ordered[j].LineY
		}
		return ordered[i].BBox.X0 < ordered[j].BBox.X0
	})

	blocks := a.mergeLineSpans(ordered)

	// Extraction order is untrustworthy even after line merging; the final
	// ordering is strictly geometric.
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].BBox.Y0 != blocks[j].BBox.Y0 {
			return blocks[i].BBox.Y0 < blocks[j].BBox.Y0
		}
		return blocks[i].BBox.X0 < blocks[j].BBox.X0
	})

	blocks = a.mergeContinuations(blocks)

	for i := range blocks {
		blocks[i].ID = i
	}

	return blocks
}

// mergeLineSpans merges adjacent spans that sit on the same visual line and
// visually touch. Larger gaps stay separate blocks: they are distinct fields
// on the same line, not one run of text.
func (a *Assembler) mergeLineSpans(spans []Span) []Block {
	var blocks []Block

	current := spanToBlock(spans[0])
	currentLineY := spans[0].LineY

	for _, span := range spans[1:] {
		sameLine := absFloat(span.LineY-currentLineY) < a.config.LineYTolerance
		gap := span.BBox.X0 - current.BBox.X1

		if sameLine && gap < a.config.MaxSpanGap {
			current.Text = current.Text + " " + strings.TrimSpace(span.Text)
			current.BBox = current.BBox.Union(span.BBox)
			continue
		}

		if strings.TrimSpace(current.Text) != "" {
			blocks = append(blocks, current)
		}
		current = spanToBlock(span)
		currentLineY = span.LineY
	}
	if strings.TrimSpace(current.Text) != "" {
		blocks = append(blocks, current)
	}

	return blocks
}

// mergeContinuations merges a block into its predecessor when the block is a
// paragraph continuation: aligned left edges, small vertical gap, no sentence
// terminator ending the predecessor, and no list or section marker starting
// the block.
func (a *Assembler) mergeContinuations(blocks []Block) []Block {
	if len(blocks) < 2 {
		return blocks
	}

	merged := make([]Block, 0, len(blocks))
	current := blocks[0]

	for _, block := range blocks[1:] {
		sameX := absFloat(block.BBox.X0-current.BBox.X0) < a.config.LeftXTolerance
		sequentialY := block.BBox.Y0-current.BBox.Y1 < a.config.ContinuationYGap
		noTerminator := !sentenceEndPattern.MatchString(current.Text)
		noMarker := !sectionStartPattern.MatchString(strings.TrimLeft(block.Text, " \t"))

		if sameX && sequentialY && noTerminator && noMarker {
			current.Text = current.Text + " " + block.Text
			current.BBox.Y1 = block.BBox.Y1
			if block.BBox.X1 > current.BBox.X1 {
				current.BBox.X1 = block.BBox.X1
			}
			continue
		}

		merged = append(merged, current)
		current = block
	}
	merged = append(merged, current)

	return merged
}

func spanToBlock(s Span) Block {
	name := strings.ToLower(s.FontName)
	return Block{
		Text:     strings.TrimSpace(s.Text),
		BBox:     s.BBox,
		FontSize: geom.Round2(s.FontSize),
		FontName: s.FontName,
		IsBold:   strings.Contains(name, "bold") || strings.Contains(name, "heavy"),
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ComputeStats derives the page font statistics used for header detection.
func ComputeStats(blocks []Block) Stats {
	if len(blocks) == 0 {
		return Stats{}
	}

	sizes := make([]float64, len(blocks))
	for i, b := range blocks {
		sizes[i] = b.FontSize
	}
	sort.Float64s(sizes)

	return Stats{
		MedianFontSize: geom.Round2(sizes[len(sizes)/2]),
		MinFontSize:    geom.Round2(sizes[0]),
		MaxFontSize:    geom.Round2(sizes[len(sizes)-1]),
		TotalBlocks:    len(blocks),
	}
}
