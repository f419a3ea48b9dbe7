package layout

import (
	"fmt"

	"github.com/benoitkugler/folayout/fo/knuth"
	"github.com/benoitkugler/folayout/fo/tree"
)

// Area is the geometry of one cell on a page. Coordinates are
// relative to the top-left corner of the table area, in millipoints.
type Area struct {
	Cell *tree.TableCell
	Part tree.PartKind
	// Row is the index of the first row of the cell in its part.
	Row int
	// Column is the 1-based index of the first column of the cell.
	Column           int
	ColSpan, RowSpan int

	X, Y, Width, Height int

	// Repeated is true for the cells of a header or footer
	// copied after a page break.
	Repeated bool
}

func (a Area) String() string {
	return fmt.Sprintf("%s (%d, %d) : %d x %d at (%d, %d)", a.Part, a.Row, a.Column, a.Width, a.Height, a.X, a.Y)
}

// AddAreas creates the areas of the cells whose elements are in
// positions, which are the positions of the elements of one page
// (including the break ending the page). The header and footer are
// added at the top and at the bottom of the page, as required by the
// positions.
func (tlm *TableLayoutManager) AddAreas(positions []knuth.Position, ctx *LayoutContext) []Area {
	return tlm.content.addAreas(positions, ctx)
}

// UsedBPD returns the height of the areas created by the last call
// to AddAreas.
func (tlm *TableLayoutManager) UsedBPD() int { return tlm.content.usedBPD }

func (c *TableContentLayoutManager) addAreas(positions []knuth.Position, ctx *LayoutContext) []Area {
	c.usedBPD = 0
	var (
		headerElements, footerElements []knuth.Element
		contentPositions               []*TableContentPosition
		lastPos                        knuth.Position
	)
	for _, pos := range positions {
		if pos == nil {
			continue
		}
		lastPos = pos
		switch pos := pos.(type) {
		case *TableHeaderFooterPosition:
			if pos.Header {
				headerElements = pos.Elements
			} else {
				footerElements = pos.Elements
			}
		case *TableContentPosition:
			contentPositions = append(contentPositions, pos)
		}
	}
	// a page ending inside the body repeats the header and the footer
	if penaltyPos, ok := lastPos.(*TableHFPenaltyPosition); ok {
		if penaltyPos.HeaderElements != nil {
			headerElements = penaltyPos.HeaderElements
		}
		if penaltyPos.FooterElements != nil {
			footerElements = penaltyPos.FooterElements
		}
	}

	var out []Area
	if headerElements != nil {
		out = c.addPartAreas(out, headerElements, tree.Header, c.headerIsBeingRepeated)
		if c.headerIsRepeated() {
			c.headerIsBeingRepeated = true
		}
	}
	var rows []*TableContentPosition
	for _, pos := range contentPositions {
		if pos.Row.Part.Kind == tree.Body {
			rows = append(rows, pos)
		}
	}
	out = c.addRowAreas(out, rows, tree.Body, false)
	if footerElements != nil {
		out = c.addPartAreas(out, footerElements, tree.Footer, c.footerIsRepeated() && isPenaltyPos(lastPos))
	}
	if debugMode {
		debugLogger.Line("addAreas: %d areas, used bpd %d", len(out), c.usedBPD)
	}
	return out
}

func isPenaltyPos(pos knuth.Position) bool {
	_, ok := pos.(*TableHFPenaltyPosition)
	return ok
}

func (c *TableContentLayoutManager) addPartAreas(out []Area, elements []knuth.Element, kind tree.PartKind, repeated bool) []Area {
	var rows []*TableContentPosition
	for _, el := range elements {
		if pos, ok := el.Position().(*TableContentPosition); ok && pos.Row.Part.Kind == kind {
			rows = append(rows, pos)
		}
	}
	return c.addRowAreas(out, rows, kind, repeated)
}

// addRowAreas adds the cells starting in rows, then advances the
// current block offset.
func (c *TableContentLayoutManager) addRowAreas(out []Area, rows []*TableContentPosition, kind tree.PartKind, repeated bool) []Area {
	tlm := c.tlm
	for _, pos := range rows {
		row := pos.Row
		grid := tlm.Table.Grid(row.Part)
		for _, primary := range row.PrimaryGridUnits() {
			height := 0
			for i := row.Index; i < row.Index+primary.RowSpan() && i < len(grid); i++ {
				height += c.rowHeights[grid[i]]
			}
			col := primary.ColIndex + 1
			out = append(out, Area{
				Cell:     primary.Cell,
				Part:     kind,
				Row:      row.Index,
				Column:   col,
				ColSpan:  primary.ColSpan(),
				RowSpan:  primary.RowSpan(),
				X:        c.startXOffset + tlm.columns.XOffset(col, primary.ColSpan(), tlm),
				Y:        c.usedBPD,
				Width:    tlm.columns.SpanWidth(col, primary.ColSpan(), tlm),
				Height:   height,
				Repeated: repeated,
			})
		}
		c.usedBPD += c.rowHeights[row] + tlm.Table.BorderSeparationBPD
	}
	return out
}
