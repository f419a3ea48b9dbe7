package layout

import (
	"github.com/benoitkugler/folayout/fo/knuth"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	"github.com/benoitkugler/folayout/utils"
)

// rowGroupLayout creates the elements of one row group : one box per
// row, followed by a break element. Breaks are forbidden inside the group.
type rowGroupLayout struct {
	content *TableContentLayoutManager
	rows    []*tree.EffRow
}

// computeRowHeights lays out the cells starting in the group at their final
// width, and returns the height of each row. A row spanning cell higher
// than its rows enlarges the last one.
func (rg rowGroupLayout) computeRowHeights() ([]int, [][]knuth.Footnote) {
	tlm := rg.content.tlm
	heights := make([]int, len(rg.rows))
	footnotes := make([][]knuth.Footnote, len(rg.rows))
	type spanning struct {
		first, last, height int
	}
	var spanningCells []spanning
	for i, row := range rg.rows {
		if !row.Row.Height.IsAuto() {
			heights[i] = row.Row.Height.Resolve(0)
		}
		for _, primary := range row.PrimaryGridUnits() {
			spanWidth := tlm.columns.SpanWidth(primary.ColIndex+1, primary.ColSpan(), tlm.widths)
			measure, height := measureCell(tlm.measurer, primary.Cell, spanWidth)
			primary.Elements = measure.Elements
			primary.ContentHeight = height
			footnotes[i] = append(footnotes[i], tlm.footnotes(primary.Cell)...)

			if primary.RowSpan() == 1 {
				heights[i] = utils.MaxInt(heights[i], height)
			} else {
				last := utils.MinInt(i+primary.RowSpan()-1, len(rg.rows)-1)
				spanningCells = append(spanningCells, spanning{first: i, last: last, height: height})
			}
		}
	}
	for _, cell := range spanningCells {
		total := utils.SumInts(heights[cell.first : cell.last+1]...)
		if total < cell.height {
			heights[cell.last] += cell.height - total
		}
	}
	return heights, footnotes
}

// getNextKnuthElements returns the elements of the group, and publishes
// its keeps and breaks in ctx.
func (rg rowGroupLayout) getNextKnuthElements(ctx *LayoutContext, kind tree.PartKind) []knuth.Element {
	heights, footnotes := rg.computeRowHeights()
	for i, row := range rg.rows {
		rg.content.rowHeights[row] = heights[i]
	}

	table := rg.content.tlm.Table
	var out []knuth.Element
	for i, row := range rg.rows {
		pos := &TableContentPosition{Row: row, FirstInRowGroup: i == 0, LastInRowGroup: i == len(rg.rows)-1}
		box := knuth.NewBox(heights[i], pos, false)
		box.Footnotes = footnotes[i]
		out = append(out, box)

		penalty := knuth.Infinite
		if pos.LastInRowGroup {
			// the actual value is set when the next group is known
			penalty = 0
		}
		var breakPos knuth.Position = pos
		penaltyWidth := 0
		if kind == tree.Body {
			hf := rg.content.penaltyPosition(row)
			if hf != nil {
				breakPos = hf
				penaltyWidth = rg.content.penaltyWidth()
			}
		}
		out = append(out, knuth.NewBreakElement(breakPos, penaltyWidth, penalty, pr.BreakAuto))
		if table.BorderSeparationBPD != 0 {
			out = append(out, knuth.NewGlue(table.BorderSeparationBPD, 0, 0, tablePosition{}))
		}
	}

	first, last := rg.rows[0].Row, rg.rows[len(rg.rows)-1].Row
	ctx.UpdateKeepWithPreviousPending(first.KeepWithPrevious)
	ctx.UpdateKeepWithNextPending(last.KeepWithNext)
	ctx.BreakBefore = first.BreakBefore
	ctx.BreakAfter = last.BreakAfter
	return out
}
