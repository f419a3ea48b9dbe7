// Package tree defines the formatting objects describing a table
// (columns, header, footer, bodies, rows and cells), as read from
// the source document, and the grid of cells built from them.
package tree

import (
	"fmt"

	"github.com/benoitkugler/textlayout/language"

	pr "github.com/benoitkugler/folayout/fo/properties"
)

// InternalError signals an inconsistency which should have been
// prevented by an earlier processing step. It is not recoverable.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

func internalErrorf(format string, args ...interface{}) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// PartKind distinguishes table headers, footers and bodies.
type PartKind uint8

const (
	Body PartKind = iota
	Header
	Footer
)

func (pk PartKind) String() string {
	switch pk {
	case Header:
		return "header"
	case Footer:
		return "footer"
	default:
		return "body"
	}
}

// Table is a fo:table.
type Table struct {
	// AutoLayout is true for table-layout="auto"
	AutoLayout bool
	// Width is the inline-progression-dimension of the table, which may be auto.
	Width pr.Length

	// Columns are the declared fo:table-column, in document order.
	// After [Table.FinalizeColumns], gaps are filled and implicit
	// columns are added when needed.
	Columns []*TableColumn

	Header *TablePart
	Footer *TablePart
	Bodies []*TablePart

	OmitHeaderAtBreak bool
	OmitFooterAtBreak bool

	KeepTogether     pr.Keep
	KeepWithNext     pr.Keep
	KeepWithPrevious pr.Keep
	BreakBefore      pr.BreakClass
	BreakAfter       pr.BreakClass

	// WidowContentLimit and OrphanContentLimit (in millipoints) protect
	// the end and the start of the body content from a page break.
	WidowContentLimit  int
	OrphanContentLimit int

	WritingMode pr.WritingMode
	Lang        language.Language

	// BorderSeparationBPD is the block-progression component
	// of border-separation, in millipoints (separate border model).
	BorderSeparationBPD int
	StartIndent         int
	EndIndent           int

	// FontSize is the default font size of the cells, in millipoints.
	FontSize int

	hasExplicitColumns bool
	grids              map[*TablePart][]*EffRow
}

// NewTable returns a table with the initial values of its properties.
func NewTable() *Table {
	return &Table{
		AutoLayout:       true,
		Width:            pr.AutoLength,
		KeepTogether:     pr.KeepAuto,
		KeepWithNext:     pr.KeepAuto,
		KeepWithPrevious: pr.KeepAuto,
		WritingMode:      pr.WritingModeLrTb,
		FontSize:         12 * pr.Pt,
	}
}

// AddColumn appends a declared column.
func (t *Table) AddColumn(col *TableColumn) {
	t.Columns = append(t.Columns, col)
	t.hasExplicitColumns = true
}

// HasExplicitColumns returns true if at least one fo:table-column was declared.
func (t *Table) HasExplicitColumns() bool { return t.hasExplicitColumns }

// Parts returns the header, the bodies and the footer, in this order,
// skipping the missing ones.
func (t *Table) Parts() []*TablePart {
	var out []*TablePart
	if t.Header != nil {
		out = append(out, t.Header)
	}
	out = append(out, t.Bodies...)
	if t.Footer != nil {
		out = append(out, t.Footer)
	}
	return out
}

// TableColumn is a fo:table-column.
type TableColumn struct {
	// ColumnNumber is the 1-based index of the (first) column,
	// or 0 to use the next free position.
	ColumnNumber          int
	NumberColumnsRepeated int
	ColumnWidth           pr.ColumnWidth
	// HasWidth is false when column-width is not specified or 'auto'.
	HasWidth bool
	// Implicit is true for columns created by the layout, not declared
	// in the document.
	Implicit bool

	autoLayout bool
}

// NewTableColumn returns a column with the given (optional) width.
func NewTableColumn(width *pr.ColumnWidth) *TableColumn {
	col := &TableColumn{NumberColumnsRepeated: 1, ColumnWidth: pr.DefaultColumnWidth}
	if width != nil {
		col.ColumnWidth = *width
		col.HasWidth = true
	}
	return col
}

// IsAutoLayout returns true if the width of the column depends on the
// content of its cells, that is if the table uses the automatic layout
// and the column has no explicit width.
func (c *TableColumn) IsAutoLayout() bool { return c.autoLayout }

// SetAutoLayout is used when columns are built outside of a [Table].
func (c *TableColumn) SetAutoLayout(auto bool) { c.autoLayout = auto }

// Copy returns a shallow copy of the column.
func (c *TableColumn) Copy() *TableColumn {
	out := *c
	return &out
}

func (c *TableColumn) String() string {
	auto := ""
	if c.autoLayout {
		auto = " auto"
	}
	return fmt.Sprintf("col%d(%s%s)", c.ColumnNumber, c.ColumnWidth, auto)
}

// TablePart is a fo:table-header, fo:table-footer or fo:table-body.
type TablePart struct {
	Kind PartKind
	Rows []*TableRow
}

// TableRow is a fo:table-row.
type TableRow struct {
	Cells []*TableCell
	// Height is the block-progression-dimension of the row (may be auto)
	Height           pr.Length
	KeepWithNext     pr.Keep
	KeepWithPrevious pr.Keep
	BreakBefore      pr.BreakClass
	BreakAfter       pr.BreakClass
}

// NewTableRow returns a row with the initial values of its properties.
func NewTableRow(cells ...*TableCell) *TableRow {
	return &TableRow{
		Cells:            cells,
		Height:           pr.AutoLength,
		KeepWithNext:     pr.KeepAuto,
		KeepWithPrevious: pr.KeepAuto,
	}
}

// Block is a piece of cell content : either a paragraph of text, or
// a fixed size object (image, inline-container).
type Block struct {
	Text string
	// Width and Height are used for fixed size objects (Text is empty)
	Width, Height int
}

// IsFixed returns true for fixed size objects.
func (b Block) IsFixed() bool { return b.Text == "" }

// Footnote is a fo:footnote cited in a cell.
type Footnote struct {
	Content []Block
}

// TableCell is a fo:table-cell.
type TableCell struct {
	// ColumnNumber is the 1-based column of the cell, or 0 for the
	// next free column.
	ColumnNumber         int
	NumberColumnsSpanned int
	NumberRowsSpanned    int

	Content   []Block
	Footnotes []Footnote

	PaddingStart, PaddingEnd    int
	PaddingBefore, PaddingAfter int

	// FontSize and Lang default to the values of the table when zero.
	FontSize int
	Lang     language.Language
}

// NewTableCell returns a cell spanning one column and one row.
func NewTableCell(content ...Block) *TableCell {
	return &TableCell{NumberColumnsSpanned: 1, NumberRowsSpanned: 1, Content: content}
}

// Text returns a cell with one paragraph per given string.
func Text(paragraphs ...string) *TableCell {
	blocks := make([]Block, len(paragraphs))
	for i, p := range paragraphs {
		blocks[i] = Block{Text: p}
	}
	return NewTableCell(blocks...)
}

// ColSpan sets the number of spanned columns and returns the cell.
func (c *TableCell) ColSpan(n int) *TableCell {
	c.NumberColumnsSpanned = n
	return c
}

// RowSpan sets the number of spanned rows and returns the cell.
func (c *TableCell) RowSpan(n int) *TableCell {
	c.NumberRowsSpanned = n
	return c
}
