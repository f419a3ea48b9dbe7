package tree

import (
	"fmt"

	"github.com/benoitkugler/folayout/fo/knuth"
	"github.com/benoitkugler/folayout/logger"
)

// EffRow is a row of the grid of a table part : it gathers the grid units
// occupying the row, including the ones belonging to cells started in
// a previous row.
type EffRow struct {
	// Index is the index of the row in its part
	Index int
	Part  *TablePart
	Row   *TableRow
	// GridUnits has one entry per column; nil for empty positions.
	GridUnits []*GridUnit
}

// GridUnit returns the unit at the given 0-based column, or nil.
func (r *EffRow) GridUnit(column int) *GridUnit {
	if column < 0 || column >= len(r.GridUnits) {
		return nil
	}
	return r.GridUnits[column]
}

// PrimaryGridUnits returns the cells starting in this row.
func (r *EffRow) PrimaryGridUnits() []*PrimaryGridUnit {
	var out []*PrimaryGridUnit
	for _, gu := range r.GridUnits {
		if gu != nil && gu.IsPrimary() {
			out = append(out, gu.Primary)
		}
	}
	return out
}

// GridUnit is one position of the grid, covered by a cell.
type GridUnit struct {
	Primary      *PrimaryGridUnit
	ColSpanIndex int
	RowSpanIndex int
}

// IsPrimary returns true for the top-left position of the cell.
func (gu *GridUnit) IsPrimary() bool { return gu.ColSpanIndex == 0 && gu.RowSpanIndex == 0 }

// PrimaryGridUnit is the grid unit at the top-left position of a cell;
// it holds the data shared by all the units of the cell.
type PrimaryGridUnit struct {
	Cell *TableCell
	// ColIndex is the 0-based index of the first column of the cell.
	ColIndex int
	// RowIndex is the index of the first row of the cell in its part.
	RowIndex int
	Part     *TablePart

	// Elements are attached while the content of the cell is measured,
	// and must be cleared afterwards.
	Elements []knuth.Element
	// ContentHeight is the block-progression-dimension of the content
	// laid out at the final width.
	ContentHeight int
}

// ColSpan returns the number of columns spanned by the cell.
func (pgu *PrimaryGridUnit) ColSpan() int { return pgu.Cell.NumberColumnsSpanned }

// RowSpan returns the number of rows spanned by the cell.
func (pgu *PrimaryGridUnit) RowSpan() int { return pgu.Cell.NumberRowsSpanned }

func (pgu *PrimaryGridUnit) String() string {
	return fmt.Sprintf("cell(%d,%d span %dx%d)", pgu.RowIndex, pgu.ColIndex, pgu.ColSpan(), pgu.RowSpan())
}

// occupancy tracks the grid positions already taken by cells.
type occupancy [][]*GridUnit

func (o *occupancy) ensureRow(row int) {
	for len(*o) <= row {
		*o = append(*o, nil)
	}
}

func (o occupancy) isFree(row, col int) bool {
	return col >= len(o[row]) || o[row][col] == nil
}

func (o occupancy) set(row, col int, gu *GridUnit) {
	for len(o[row]) <= col {
		o[row] = append(o[row], nil)
	}
	o[row][col] = gu
}

// BuildGrid places the cells of the part on a grid and returns its rows,
// with the number of columns used.
// A cell without column number takes the first free position after the
// previous cell of its row. Row spans are truncated at the end of the part.
func BuildGrid(part *TablePart) ([]*EffRow, int) {
	var grid occupancy
	grid.ensureRow(len(part.Rows) - 1)
	width := 0
	for r, row := range part.Rows {
		pos := 0
		for _, cell := range row.Cells {
			if cell.NumberColumnsSpanned < 1 {
				cell.NumberColumnsSpanned = 1
			}
			if cell.NumberRowsSpanned < 1 {
				cell.NumberRowsSpanned = 1
			}
			if last := r + cell.NumberRowsSpanned - 1; last >= len(part.Rows) {
				logger.WarningLogger.Printf("row span of %d on row %d exceeds the %s, truncated", cell.NumberRowsSpanned, r+1, part.Kind)
				cell.NumberRowsSpanned = len(part.Rows) - r
			}

			col := pos
			if cell.ColumnNumber > 0 {
				col = cell.ColumnNumber - 1
			}
			for !spanIsFree(grid, r, col, cell.NumberColumnsSpanned, cell.NumberRowsSpanned) {
				if cell.ColumnNumber > 0 {
					logger.WarningLogger.Printf("column %d of row %d is already occupied, moving cell", col+1, r+1)
				}
				col++
			}

			pgu := &PrimaryGridUnit{Cell: cell, ColIndex: col, RowIndex: r, Part: part}
			for i := 0; i < cell.NumberRowsSpanned; i++ {
				for j := 0; j < cell.NumberColumnsSpanned; j++ {
					grid.set(r+i, col+j, &GridUnit{Primary: pgu, RowSpanIndex: i, ColSpanIndex: j})
				}
			}
			pos = col + cell.NumberColumnsSpanned
			if pos > width {
				width = pos
			}
		}
	}

	rows := make([]*EffRow, len(part.Rows))
	for r, row := range part.Rows {
		units := make([]*GridUnit, width)
		copy(units, grid[r])
		rows[r] = &EffRow{Index: r, Part: part, Row: row, GridUnits: units}
	}
	return rows, width
}

func spanIsFree(grid occupancy, row, col, colSpan, rowSpan int) bool {
	for i := 0; i < rowSpan; i++ {
		for j := 0; j < colSpan; j++ {
			if !grid.isFree(row+i, col+j) {
				return false
			}
		}
	}
	return true
}
