package layout

import "fmt"

// GroupConfig tunes row group formation.
type GroupConfig struct {
	XTolerance     float64 // first block left edge alignment tolerance
	WidthTolerance float64 // allowed total width deviation between rows
	NarrowBlockPt  float64 // width under which an extra block is narrow
	MinGridRows    int     // minimum rows for a grid hinted group
	MinGroupRows   int     // minimum rows for any other group
}

// DefaultGroupConfig returns the grouping thresholds used in production.
// Grids require three rows of evidence; two aligned rows are too easy to
// produce by accident.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		XTolerance:     10.0,
		WidthTolerance: 0.15,
		NarrowBlockPt:  20.0,
		MinGridRows:    3,
		MinGroupRows:   2,
	}
}

// compatibleRowTypes lists, per row type, which types a following row may
// have for the two rows to share a group. Headers and paragraphs never
// group. Identical types always group.
var compatibleRowTypes = map[RowType][]RowType{
	RowTypeLabelValue:   {RowTypeLabelValue, RowTypeLabelPair, RowTypeMixed},
	RowTypeLabelPair:    {RowTypeLabelValue, RowTypeLabelPair, RowTypeMixed},
	RowTypeOptionRow:    {RowTypeOptionRow},
	RowTypeHeader:       {},
	RowTypeParagraph:    {},
	RowTypeBulletItem:   {RowTypeBulletItem},
	RowTypeBulletList:   {RowTypeBulletList, RowTypeBulletItem},
	RowTypeNumberedItem: {RowTypeNumberedItem},
	RowTypeLabel:        {RowTypeLabel, RowTypeLabelValue},
	RowTypeMixed:        {RowTypeLabelValue, RowTypeLabelPair, RowTypeMixed},
}

// Grouper forms row groups from classified rows.
type Grouper struct {
	config GroupConfig
}

// NewGrouper creates a grouper with default configuration.
func NewGrouper() *Grouper {
	return &Grouper{config: DefaultGroupConfig()}
}

// NewGrouperWithConfig creates a grouper with custom configuration.
func NewGrouperWithConfig(config GroupConfig) *Grouper {
	return &Grouper{config: config}
}

// canGroup reports whether two consecutive rows belong to the same layout
// unit: compatible block counts (±1 only when the extra block is narrow),
// aligned first blocks, similar total width, and compatible row types.
func (g *Grouper) canGroup(row1, row2 Row) bool {
	blocks1 := row1.Blocks
	blocks2 := row2.Blocks

	countDiff := len(blocks1) - len(blocks2)
	if countDiff < 0 {
		countDiff = -countDiff
	}
	if countDiff > 1 {
		return false
	}
	if countDiff == 1 {
		extra := blocks1
		if len(blocks2) > len(blocks1) {
			extra = blocks2
		}
		narrowFound := false
		for _, b := range extra {
			if b.BBox.Width() < g.config.NarrowBlockPt {
				narrowFound = true
				break
			}
		}
		if !narrowFound {
			return false
		}
	}

	if len(blocks1) > 0 && len(blocks2) > 0 {
		x0Diff := absFloat(blocks1[0].BBox.X0 - blocks2[0].BBox.X0)
		if x0Diff > g.config.XTolerance {
			return false
		}
	}

	width1 := rowWidth(blocks1)
	width2 := rowWidth(blocks2)
	if width1 > 0 && width2 > 0 {
		// Single-block label rows vary naturally in text length; skip the
		// width check for those.
		if !(len(blocks1) == 1 && len(blocks2) == 1) {
			ratio := minFloat(width1, width2) / maxFloat(width1, width2)
			if ratio < 1-g.config.WidthTolerance {
				return false
			}
		}
	}

	if !typesCompatible(row1.Type, row2.Type) {
		return false
	}

	return true
}

func typesCompatible(t1, t2 RowType) bool {
	if t1 == t2 {
		return true
	}
	for _, allowed := range compatibleRowTypes[t1] {
		if t2 == allowed {
			return true
		}
	}
	for _, allowed := range compatibleRowTypes[t2] {
		if t1 == allowed {
			return true
		}
	}
	return false
}

// inferHint derives a group's layout hint from the homogeneity of its rows'
// types.
func inferHint(rows []Row) GroupHint {
	if len(rows) == 0 {
		return GroupHintUnknown
	}

	allOptions := true
	allBullets := true
	allNumbered := true
	allLabelish := true
	for _, r := range rows {
		if r.Type != RowTypeOptionRow {
			allOptions = false
		}
		if r.Type != RowTypeBulletItem && r.Type != RowTypeBulletList {
			allBullets = false
		}
		if r.Type != RowTypeNumberedItem {
			allNumbered = false
		}
		if r.Type != RowTypeLabelValue && r.Type != RowTypeLabelPair && r.Type != RowTypeMixed {
			allLabelish = false
		}
	}

	switch {
	case allOptions:
		return GroupHintOptions
	case allBullets, allNumbered:
		return GroupHintList
	case allLabelish:
		total := 0
		for _, r := range rows {
			total += len(r.Blocks)
		}
		if float64(total)/float64(len(rows)) >= 2 {
			return GroupHintGrid
		}
		return GroupHintStack
	default:
		return GroupHintGrid
	}
}

// GroupConsecutiveRows forms maximal runs of pairwise groupable rows. Grid
// hinted groups need at least MinGridRows rows; all others need MinGroupRows.
// Being conservative here is deliberate: missing a grouping is cheaper than
// inventing one.
func (g *Grouper) GroupConsecutiveRows(rows []Row) []RowGroup {
	if len(rows) < g.config.MinGroupRows {
		return []RowGroup{}
	}

	groups := []RowGroup{}
	groupCounter := 0
	runStart := 0

	finalize := func(start, end int) {
		size := end - start
		if size < g.config.MinGroupRows {
			return
		}
		run := rows[start:end]
		hint := inferHint(run)
		minSize := g.config.MinGroupRows
		if hint == GroupHintGrid {
			minSize = g.config.MinGridRows
		}
		if size < minSize {
			return
		}
		indices := make([]int, size)
		for i := range indices {
			indices[i] = start + i
		}
		groups = append(groups, RowGroup{
			ID:         fmt.Sprintf("g%d", groupCounter),
			RowIndices: indices,
			Hint:       hint,
			RowCount:   size,
		})
		groupCounter++
	}

	for i := 1; i < len(rows); i++ {
		if g.canGroup(rows[i-1], rows[i]) {
			continue
		}
		finalize(runStart, i)
		runStart = i
	}
	finalize(runStart, len(rows))

	return groups
}

func rowWidth(blocks []Block) float64 {
	if len(blocks) == 0 {
		return 0
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
	return xMax - xMin
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
