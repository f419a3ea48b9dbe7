package tree

import (
	"sort"

	"github.com/benoitkugler/folayout/logger"
)

// Finalize numbers the declared columns, fills the column-number gaps
// and builds the grid of each table part, adding implicit columns
// when the table declares none.
// It must be called once the table is complete, before layout.
func (t *Table) Finalize() error {
	if err := t.FinalizeColumns(); err != nil {
		return err
	}

	t.grids = make(map[*TablePart][]*EffRow)
	maxCols := 0
	for _, part := range t.Parts() {
		t.inheritCellProperties(part)
		rows, width := BuildGrid(part)
		t.grids[part] = rows
		if width > maxCols {
			maxCols = width
		}
	}

	nbColumns := t.columnsEnd()
	if !t.hasExplicitColumns {
		for nbColumns < maxCols {
			nbColumns++
			t.Columns = append(t.Columns, t.newImplicitColumn(nbColumns))
		}
	}
	if len(t.Columns) == 0 {
		// an empty table still has one column
		t.Columns = append(t.Columns, t.newImplicitColumn(1))
	}
	return nil
}

// inheritCellProperties applies the font size and the language of
// the table to the cells not specifying them.
func (t *Table) inheritCellProperties(part *TablePart) {
	for _, row := range part.Rows {
		for _, cell := range row.Cells {
			if cell.FontSize == 0 {
				cell.FontSize = t.FontSize
			}
			if cell.Lang == "" {
				cell.Lang = t.Lang
			}
		}
	}
}

func (t *Table) newImplicitColumn(number int) *TableColumn {
	col := NewTableColumn(nil)
	col.ColumnNumber = number
	col.Implicit = true
	col.autoLayout = t.AutoLayout
	return col
}

// columnsEnd returns the number of grid columns covered by the
// (finalized) declared columns.
func (t *Table) columnsEnd() int {
	end := 0
	for _, col := range t.Columns {
		if last := col.ColumnNumber + col.NumberColumnsRepeated - 1; last > end {
			end = last
		}
	}
	return end
}

// FinalizeColumns assigns a column number to the columns which do not
// specify one, sorts the columns and fills the gaps left by explicit
// column numbers with implicit columns, so that the columns cover
// positions 1 to N without holes.
func (t *Table) FinalizeColumns() error {
	next := 1
	for _, col := range t.Columns {
		if col.NumberColumnsRepeated < 1 {
			col.NumberColumnsRepeated = 1
		}
		if col.ColumnNumber <= 0 {
			col.ColumnNumber = next
		}
		next = col.ColumnNumber + col.NumberColumnsRepeated
		col.autoLayout = t.AutoLayout && !col.HasWidth
	}
	sort.SliceStable(t.Columns, func(i, j int) bool { return t.Columns[i].ColumnNumber < t.Columns[j].ColumnNumber })

	var filled []*TableColumn
	expected := 1
	for _, col := range t.Columns {
		if col.ColumnNumber < expected {
			return internalErrorf("column %d overlaps column %d", col.ColumnNumber, expected-1)
		}
		for ; expected < col.ColumnNumber; expected++ {
			logger.ProgressLogger.Printf("adding implicit column %d", expected)
			filled = append(filled, t.newImplicitColumn(expected))
		}
		filled = append(filled, col)
		expected = col.ColumnNumber + col.NumberColumnsRepeated
	}
	t.Columns = filled
	return nil
}

// Grid returns the rows of the given part, as built by [Table.Finalize].
func (t *Table) Grid(part *TablePart) []*EffRow { return t.grids[part] }
