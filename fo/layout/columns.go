package layout

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/folayout/fo/events"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
)

// InternalError is returned when the table model is inconsistent,
// which indicates a bug in an earlier processing step.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal layout error: " + e.Msg }

// ColumnWidthResolver returns the width, in millipoints, used by a column.
type ColumnWidthResolver interface {
	ColumnWidth(col *tree.TableColumn) int
}

// ColumnSetup holds the columns of a table, with the repeated columns
// expanded, and tracks the highest column index requested during layout.
type ColumnSetup struct {
	table *tree.Table
	bc    *events.Broadcaster

	// columns[0] is a nil sentinel, so that the column i
	// is stored at index i.
	columns []*tree.TableColumn

	maxColIndexReferenced int

	// Direction is the column progression direction used by [ColumnSetup.XOffset].
	Direction pr.Direction
}

// NewColumnSetup expands the (finalized) columns of the table.
// A gap in the column numbers is an [InternalError], since gaps are
// filled by [tree.Table.FinalizeColumns].
// Events are sent to bc, which may be nil.
func NewColumnSetup(table *tree.Table, bc *events.Broadcaster) (*ColumnSetup, error) {
	cs := &ColumnSetup{table: table, bc: bc, Direction: table.ColumnProgression()}
	if err := cs.prepareColumns(); err != nil {
		return nil, err
	}
	return cs, nil
}

func (cs *ColumnSetup) prepareColumns() error {
	cs.columns = []*tree.TableColumn{nil}
	for _, col := range cs.table.Columns {
		if col == nil {
			continue
		}
		if col.ColumnNumber != len(cs.columns) {
			return &InternalError{Msg: fmt.Sprintf("found a gap in the table-columns at position %d (next column is %d)",
				len(cs.columns), col.ColumnNumber)}
		}
		if col.NumberColumnsRepeated <= 1 {
			cs.columns = append(cs.columns, col)
			continue
		}
		// each repetition is a distinct column, with its own width
		for i := 0; i < col.NumberColumnsRepeated; i++ {
			c := col.Copy()
			c.ColumnNumber = col.ColumnNumber + i
			c.NumberColumnsRepeated = 1
			cs.columns = append(cs.columns, c)
		}
	}
	if len(cs.columns) == 1 {
		return &InternalError{Msg: "table without columns"}
	}
	return nil
}

// size returns the number of explicit columns.
func (cs *ColumnSetup) size() int { return len(cs.columns) - 1 }

// GetColumn returns the column at index (1 is the first column).
// If index is bigger than the number of explicitly defined columns,
// the last column is returned.
func (cs *ColumnSetup) GetColumn(index int) *tree.TableColumn {
	size := cs.size()
	if index <= size {
		return cs.columns[index]
	}
	if index > cs.maxColIndexReferenced {
		cs.maxColIndexReferenced = index
		if !(size == 1 && cs.columns[1].Implicit) {
			cs.bc.Broadcast(events.TooFewColumnsEvent(index, size, cs.table.AutoLayout))
		}
	}
	return cs.columns[size]
}

// ColumnCount returns the number of columns, including the implicit
// ones referenced beyond the explicit columns.
// It never decreases.
func (cs *ColumnSetup) ColumnCount() int {
	if cs.maxColIndexReferenced > cs.size() {
		return cs.maxColIndexReferenced
	}
	return cs.size()
}

// Columns returns the explicit columns, the first one at index 0.
func (cs *ColumnSetup) Columns() []*tree.TableColumn { return cs.columns[1:] }

func (cs *ColumnSetup) String() string {
	chunks := make([]string, cs.size())
	for i, col := range cs.Columns() {
		chunks[i] = col.String()
	}
	return "[" + strings.Join(chunks, ", ") + "]"
}

// ComputeTableUnit returns the base unit for proportional column widths:
// proportional-column-width(x) = x * unit.
// The space left by the absolute and percentage widths is shared
// between the proportional units. If there is none, the unit is 0 and
// a warning is emitted, except during the auto layout pre-pass.
func (cs *ColumnSetup) ComputeTableUnit(contentIPD int, determinationMode bool) float64 {
	sumCols := 0
	var factors float64
	for _, col := range cs.Columns() {
		switch cw := col.ColumnWidth; cw.Kind {
		case pr.Absolute, pr.Percentage:
			sumCols += cw.Resolve(contentIPD, 0)
		case pr.ProportionalUnits:
			factors += cw.TableUnits()
		}
	}

	if factors <= 0 {
		return 0
	}
	if sumCols < contentIPD {
		return float64(contentIPD-sumCols) / factors
	}
	// expected while measuring, ignored
	if !determinationMode {
		cs.bc.Broadcast(events.NoSpaceForProportionalColumnsEvent(sumCols, contentIPD))
	}
	return 0
}

// widthAt returns the width of the column i, falling back to
// the last explicit column.
func (cs *ColumnSetup) widthAt(i int, widths ColumnWidthResolver) int {
	if i >= len(cs.columns) {
		i = len(cs.columns) - 1
	}
	if cs.columns[i] == nil {
		return 0
	}
	return widths.ColumnWidth(cs.columns[i])
}

// XOffset returns the offset of the left edge of the column col (1 is
// the first column), spanning nrColSpan columns, in the table content box.
// In right-to-left column progression, the first column is the rightmost.
func (cs *ColumnSetup) XOffset(col, nrColSpan int, widths ColumnWidthResolver) int {
	if cs.Direction == pr.RTL {
		return cs.xOffsetRTL(col, nrColSpan, widths)
	}
	return cs.xOffsetLTR(col, widths)
}

// sum of the widths of the columns before col
func (cs *ColumnSetup) xOffsetLTR(col int, widths ColumnWidthResolver) int {
	offset := 0
	for i := 1; i < col; i++ {
		offset += cs.widthAt(i, widths)
	}
	return offset
}

// sum of the widths of the columns after the span
func (cs *ColumnSetup) xOffsetRTL(col, nrColSpan int, widths ColumnWidthResolver) int {
	offset := 0
	for i, nc := col+nrColSpan, cs.ColumnCount(); i <= nc; i++ {
		offset += cs.widthAt(i, widths)
	}
	return offset
}

// SumOfColumnWidths returns the total width of the columns.
func (cs *ColumnSetup) SumOfColumnWidths(widths ColumnWidthResolver) int {
	sum := 0
	for i, c := 1, cs.ColumnCount(); i <= c; i++ {
		sum += cs.widthAt(i, widths)
	}
	return sum
}

// SpanWidth returns the width of nrColSpan columns, starting at col.
func (cs *ColumnSetup) SpanWidth(col, nrColSpan int, widths ColumnWidthResolver) int {
	sum := 0
	for i := col; i < col+nrColSpan; i++ {
		sum += widths.ColumnWidth(cs.GetColumn(i))
	}
	return sum
}
