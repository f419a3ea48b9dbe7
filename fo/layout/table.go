package layout

import (
	"github.com/benoitkugler/folayout/fo/events"
	"github.com/benoitkugler/folayout/fo/knuth"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	"github.com/benoitkugler/folayout/logger"
	"github.com/benoitkugler/folayout/utils/testutils/tracer"
)

// TableLayoutManager lays out a finalized table.
type TableLayoutManager struct {
	Table *tree.Table

	columns  *ColumnSetup
	content  *TableContentLayoutManager
	measurer Measurer
	bc       *events.Broadcaster

	// state of the current layout invocation
	contentIPD int
	tableUnit  float64
	widths     resolvedWidths

	// AutoLayoutWidth is the width required by the content of the table,
	// published when an auto layout ancestor is measuring its own
	// content, and -1 otherwise.
	AutoLayoutWidth int

	// Tracer, if not nil, receives the resolved widths and the elements.
	Tracer *tracer.Tracer

	// set while the cells of an auto table are measured
	determining bool
}

// NewTableLayoutManager returns a layout manager for table, which must
// have been finalized. The content of the cells is laid out by measurer.
// Warnings are sent to bc, which may be nil.
func NewTableLayoutManager(table *tree.Table, measurer Measurer, bc *events.Broadcaster) (*TableLayoutManager, error) {
	columns, err := NewColumnSetup(table, bc)
	if err != nil {
		return nil, err
	}
	tlm := &TableLayoutManager{
		Table:           table,
		columns:         columns,
		measurer:        measurer,
		bc:              bc,
		AutoLayoutWidth: -1,
	}
	tlm.content = newTableContentLayoutManager(tlm)
	return tlm, nil
}

// Columns returns the column setup of the table.
func (tlm *TableLayoutManager) Columns() *ColumnSetup { return tlm.columns }

// ContentIPD returns the width of the content area of the table.
func (tlm *TableLayoutManager) ContentIPD() int { return tlm.contentIPD }

// TableUnit returns the width of one proportional unit.
func (tlm *TableLayoutManager) TableUnit() float64 { return tlm.tableUnit }

// ColumnWidth implements [ColumnWidthResolver], returning the final
// width of col.
func (tlm *TableLayoutManager) ColumnWidth(col *tree.TableColumn) int {
	return tlm.widths.ColumnWidth(col)
}

// PossibleWidths returns the range of widths recorded for an auto column.
func (tlm *TableLayoutManager) PossibleWidths(col *tree.TableColumn) (pr.MinOptMax, bool) {
	m, ok := tlm.widths.base[col]
	return m, ok
}

// ResolvedColumnWidths returns the final width of each column, the
// first column being at index 0.
func (tlm *TableLayoutManager) ResolvedColumnWidths() []int {
	out := make([]int, tlm.columns.ColumnCount())
	for i := range out {
		out[i] = tlm.columns.widthAt(i+1, tlm)
	}
	return out
}

// footnotes measures the footnotes cited in cell.
func (tlm *TableLayoutManager) footnotes(cell *tree.TableCell) []knuth.Footnote {
	var out []knuth.Footnote
	for _, fn := range cell.Footnotes {
		body := tree.NewTableCell(fn.Content...)
		body.FontSize, body.Lang = cell.FontSize, cell.Lang
		measure := tlm.measurer.Measure(body, tlm.contentIPD)
		out = append(out, knuth.Footnote{BPD: knuth.CalcContentLength(measure.Elements)})
	}
	return out
}

// determineAutoLayoutWidths runs the measuring pass of an auto table.
// A measurer laying out the same table again while it runs gets no
// element : see [TableLayoutManager.GetNextKnuthElements].
func (tlm *TableLayoutManager) determineAutoLayoutWidths(al *autoLayout, ctx *LayoutContext) {
	childLC := OffspringOf(ctx)
	childLC.AutoLayoutDeterminationMode = true
	childLC.RefIPD = tlm.contentIPD

	tlm.determining = true
	defer func() { tlm.determining = false }()
	al.DetermineAutoLayoutWidths(tlm.Table, childLC)
}

// GetNextKnuthElements resolves the widths of the columns for the
// available width ctx.RefIPD and returns the elements of the table.
// For auto tables, the content of the cells is first measured in a
// separate pass; this pass is never triggered again while it runs.
func (tlm *TableLayoutManager) GetNextKnuthElements(ctx *LayoutContext) []knuth.Element {
	if tlm.determining {
		logger.WarningLogger.Println("recursive layout of an auto table during its width determination, ignored")
		return nil
	}
	table := tlm.Table

	if !table.Width.IsAuto() {
		ipd := table.Width.Resolve(ctx.RefIPD)
		if ipd > ctx.RefIPD && !ctx.AutoLayoutDeterminationMode {
			tlm.bc.Broadcast(events.IPDExceedsAvailableEvent(ipd, ctx.RefIPD))
		}
		tlm.contentIPD = ipd
	} else {
		tlm.contentIPD = ctx.RefIPD - table.StartIndent - table.EndIndent
	}
	tlm.content.startXOffset = table.StartIndent

	tlm.tableUnit = tlm.columns.ComputeTableUnit(tlm.contentIPD, ctx.AutoLayoutDeterminationMode)
	declared := declaredWidths{contentIPD: tlm.contentIPD, tableUnit: tlm.tableUnit}
	tlm.widths = resolvedWidths{declaredWidths: declared}
	tlm.AutoLayoutWidth = -1

	if table.AutoLayout {
		al := autoLayout{
			setup:    tlm.columns,
			declared: declared,
			base:     make(BaseLengths),
			measurer: tlm.measurer,
			bc:       tlm.bc,
		}
		tlm.determineAutoLayoutWidths(&al, ctx)
		tlm.AutoLayoutWidth = al.ComputeOptimalColumnWidthsForAutoLayout(ctx, table.Width)
		tlm.widths.base = al.base
	}
	logger.ProgressLogger.Printf("table of %d columns: content width %dmpt, unit %.2fmpt", tlm.columns.ColumnCount(), tlm.contentIPD, tlm.tableUnit)
	if traceMode {
		traceLogger.DumpColumns(tlm.ResolvedColumnWidths(), "resolved column widths")
	}
	if tlm.Tracer != nil {
		tlm.Tracer.DumpColumns(tlm.ResolvedColumnWidths(), "resolved column widths")
	}

	elements := tlm.content.GetNextKnuthElements(ctx)

	ctx.UpdateKeepWithPreviousPending(table.KeepWithPrevious)
	ctx.UpdateKeepWithNextPending(table.KeepWithNext)
	ctx.BreakBefore = pr.CompareBreakClasses(table.BreakBefore, ctx.BreakBefore)
	ctx.BreakAfter = pr.CompareBreakClasses(table.BreakAfter, ctx.BreakAfter)
	if ctx.BreakBefore != pr.BreakAuto {
		elements = insertAt(elements, 0, knuth.NewBreakElement(tablePosition{}, 0, -knuth.Infinite, ctx.BreakBefore))
	}
	if ctx.BreakAfter != pr.BreakAuto {
		elements = append(elements, knuth.NewBreakElement(tablePosition{}, 0, -knuth.Infinite, ctx.BreakAfter))
	}

	if tlm.Tracer != nil {
		tlm.Tracer.DumpElements(elements, "table elements")
	}
	return elements
}
