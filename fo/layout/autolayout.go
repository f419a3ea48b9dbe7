package layout

import (
	"github.com/benoitkugler/folayout/fo/events"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	"github.com/benoitkugler/folayout/utils"
)

// BaseLengths stores, for each column of an auto table, the range of
// widths required by its content. Entries only grow while the content
// is measured.
type BaseLengths map[*tree.TableColumn]pr.MinOptMax

// declaredWidths resolves the column widths as specified,
// auto columns counting as one proportional unit.
type declaredWidths struct {
	contentIPD int
	tableUnit  float64
}

func (dw declaredWidths) ColumnWidth(col *tree.TableColumn) int {
	return col.ColumnWidth.Resolve(dw.contentIPD, dw.tableUnit)
}

// resolvedWidths resolves the final widths : the columns of an
// auto table use the optimum of their range (0 for empty columns).
type resolvedWidths struct {
	declaredWidths
	base BaseLengths // nil for fixed tables
}

func (rw resolvedWidths) ColumnWidth(col *tree.TableColumn) int {
	if rw.base != nil && col.IsAutoLayout() {
		return rw.base[col].Opt()
	}
	return rw.declaredWidths.ColumnWidth(col)
}

// autoLayout computes the widths of the columns of a table with
// table-layout="auto". It lives for one layout invocation.
type autoLayout struct {
	setup    *ColumnSetup
	declared declaredWidths
	base     BaseLengths
	measurer Measurer
	bc       *events.Broadcaster
}

// DetermineAutoLayoutWidths measures the content of every cell of the
// header, bodies and footer, and records the requirements in the base
// lengths. Cells spanning several columns are processed last, once
// the widths of the individual columns are known.
// The elements attached to the grid units are cleared afterwards.
func (al *autoLayout) DetermineAutoLayoutWidths(table *tree.Table, ctx *LayoutContext) {
	var spanning []*tree.PrimaryGridUnit
	for _, part := range table.Parts() {
		it := tree.NewRowIterator(table.Grid(part))
		for group := it.NextRowGroup(); group != nil; group = it.NextRowGroup() {
			for _, row := range group {
				for _, primary := range row.PrimaryGridUnits() {
					if primary.ColSpan() > 1 {
						spanning = append(spanning, primary)
					} else {
						al.determineWidthOfPrimary(primary, ctx)
					}
				}
			}
		}
	}
	for _, primary := range spanning {
		al.determineWidthOfPrimary(primary, ctx)
	}

	if debugMode {
		for i, col := range al.setup.Columns() {
			if m, ok := al.base[col]; ok {
				debugLogger.Line("auto column %d: %s", i+1, m)
			}
		}
	}
}

func (al *autoLayout) determineWidthOfPrimary(primary *tree.PrimaryGridUnit, ctx *LayoutContext) {
	spanWidth := al.setup.SpanWidth(primary.ColIndex+1, primary.ColSpan(), al.declared)
	childLC := OffspringOf(ctx)
	childLC.RefIPD = spanWidth

	measure, _ := measureCell(al.measurer, primary.Cell, childLC.RefIPD)
	// temporarily attached to compute the widths
	primary.Elements = measure.Elements
	al.setBaseLength(primary, measure)
	primary.Elements = nil
}

// setBaseLength widens the columns spanned by primary so that they
// accommodate its content.
func (al *autoLayout) setBaseLength(primary *tree.PrimaryGridUnit, measure CellMeasure) {
	index := primary.ColIndex + 1
	n := index + primary.ColSpan()
	key := al.setup.GetColumn(index)

	availableSpanWidth, minSpanWidth := 0, 0
	for i := index; i < n; i++ {
		col := al.setup.GetColumn(i)
		span := al.declared.ColumnWidth(col)
		availableSpanWidth += span
		min := span
		if col.IsAutoLayout() {
			if length, ok := al.base[col]; ok {
				min = length.Min()
			}
		}
		minSpanWidth += min
	}

	ipd, minIPD := measure.IPD, measure.MinIPD
	// for instance for a cell only containing a space
	if minIPD > ipd {
		ipd = minIPD
	}

	length, ok := al.base[key]
	// a spanning cell starting on a static column still has to widen
	// the auto columns it covers
	if !ok && (primary.ColSpan() == 1 || key.IsAutoLayout()) {
		al.base[key] = pr.NewMinOptMax(minIPD, ipd, ipd)
		return
	}

	if n-index == 1 {
		if !length.Accommodates(minIPD, ipd) {
			al.base[key] = length.Widen(minIPD, ipd, ipd)
		}
		return
	}

	// the cell spans several columns, which may have to be widened
	isNotSufficientForMinIPD := minSpanWidth < minIPD
	isNotSufficientForIPD := availableSpanWidth < ipd
	if !(isNotSufficientForMinIPD || isNotSufficientForIPD) {
		return
	}

	// static columns can't be resized : remove their width from the totals
	var columnsToWiden []*tree.TableColumn
	seen := map[*tree.TableColumn]bool{}
	for i := index; i < n; i++ {
		col := al.setup.GetColumn(i)
		if seen[col] {
			continue
		}
		seen[col] = true
		if col.IsAutoLayout() {
			if _, ok := al.base[col]; ok {
				columnsToWiden = append(columnsToWiden, col)
			}
		} else {
			width := al.declared.ColumnWidth(col)
			availableSpanWidth -= width
			minSpanWidth -= width
			ipd -= width
			minIPD -= width
		}
	}

	if len(columnsToWiden) == 0 {
		al.bc.Broadcast(events.NoColumnsToResizeEvent(index, primary.ColSpan()))
		return
	}

	if minSpanWidth < minIPD {
		if debugMode {
			debugLogger.Line("cell %s requires at least %d: widening min/opt/max of %v", primary, minIPD, columnsToWiden)
		}
		totalIncrease := al.increaseMinimumWidthOfSpannedColumns(columnsToWiden, minIPD-minSpanWidth)
		availableSpanWidth += totalIncrease
	}

	if availableSpanWidth < ipd {
		if debugMode {
			debugLogger.Line("cell %s requires up to %d: widening opt/max of %v", primary, ipd, columnsToWiden)
		}
		al.increaseOptimalWidthOfSpannedColumns(columnsToWiden, ipd-availableSpanWidth)
	}
}

// shares returns the weight of each value in their sum,
// splitting evenly when the sum is zero.
func shares(values []int) []float64 {
	total := utils.SumInts(values...)
	out := make([]float64, len(values))
	for i, v := range values {
		if total <= 0 {
			out[i] = 1 / float64(len(values))
		} else {
			out[i] = float64(v) / float64(total)
		}
	}
	return out
}

// increaseMinimumWidthOfSpannedColumns distributes the missing minimum
// width proportionally to the minimum of each column. The increase is
// applied to the three values of the ranges, and its total is returned.
func (al *autoLayout) increaseMinimumWidthOfSpannedColumns(columnsToWiden []*tree.TableColumn, missing int) int {
	mins := make([]int, len(columnsToWiden))
	for i, col := range columnsToWiden {
		mins[i] = al.base[col].Min()
	}
	totalIncrease := 0
	for i, factor := range shares(mins) {
		col := columnsToWiden[i]
		// rounding up ensures the content fits
		increase := utils.CeilInt(factor * float64(missing))
		al.base[col] = al.base[col].Plus(increase)
		totalIncrease += increase
	}
	return totalIncrease
}

// increaseOptimalWidthOfSpannedColumns distributes the missing optimal
// width proportionally to the optimum of each column, increasing
// opt and max.
func (al *autoLayout) increaseOptimalWidthOfSpannedColumns(columnsToWiden []*tree.TableColumn, missing int) {
	opts := make([]int, len(columnsToWiden))
	for i, col := range columnsToWiden {
		opts[i] = al.base[col].Opt()
	}
	for i, factor := range shares(opts) {
		col := columnsToWiden[i]
		length := al.base[col]
		increase := utils.CeilInt(factor * float64(missing))
		al.base[col] = pr.NewMinOptMax(length.Min(), length.Opt()+increase, length.Max()+increase)
	}
}

// ComputeOptimalColumnWidthsForAutoLayout fits the optimal widths of the
// columns in the content width of the table, shrinking them when they
// are too wide, and growing them to the table width when it is specified.
// When ctx indicates that an auto layout ancestor is measuring its own
// content, the sum of the optimal widths is returned without any
// adjustment. Otherwise, -1 is returned.
func (al *autoLayout) ComputeOptimalColumnWidthsForAutoLayout(ctx *LayoutContext, tableWidth pr.Length) int {
	maxSumCols, minSumCols := 0, 0
	contentIPD := al.declared.contentIPD
	for _, col := range al.setup.Columns() {
		if col.IsAutoLayout() {
			// a column without cell does not require any space
			if length, ok := al.base[col]; ok {
				maxSumCols += length.Opt()
				minSumCols += length.Min()
			}
		} else {
			staticWidth := al.declared.ColumnWidth(col)
			maxSumCols += staticWidth
			minSumCols += staticWidth
		}
	}

	if ctx.ChildOfAutoLayoutElement && ctx.AutoLayoutDeterminationMode {
		return maxSumCols
	}

	if maxSumCols > contentIPD {
		if minSumCols < contentIPD {
			if debugMode {
				debugLogger.Line("sum (%d) > available area (%d): redistributing", maxSumCols, contentIPD)
			}
			al.redistribute(contentIPD, maxSumCols)
		} else {
			if minSumCols != contentIPD {
				al.bc.Broadcast(events.ColumnsInAutoTableTooWideEvent(minSumCols, contentIPD))
			}
			computeAuto := false
			for _, col := range al.setup.Columns() {
				// static columns keep their width
				if length, ok := al.base[col]; ok && col.IsAutoLayout() {
					computeAuto = true
					al.base[col] = pr.NewMinOptMax(length.Min(), length.Min(), length.Max())
				}
			}
			if computeAuto {
				al.redistributeAuto(contentIPD, true)
			}
		}
	} else if !tableWidth.IsAuto() {
		al.redistributeAuto(contentIPD, false)
	}
	return -1
}

// redistribute shrinks the optimal widths of the auto columns so that
// they fit in remainingArea, proportionally to their maximum, but never
// below their minimum.
// Static and empty columns are first removed from the work list, then
// each column which would go below its minimum is pinned to it and
// removed, since this changes the factor of the others.
func (al *autoLayout) redistribute(remainingArea, maxSumCols int) {
	columns := al.setup.Columns()
	active := utils.NewIntSet()
	for i := range columns {
		active.Add(i)
	}

	for {
		removed := false
		for i, col := range columns {
			if !active.Has(i) {
				continue
			}
			if !col.IsAutoLayout() {
				staticWidth := al.declared.ColumnWidth(col)
				remainingArea -= staticWidth
				maxSumCols -= staticWidth
				if debugMode {
					debugLogger.Line("| col %d -> STATIC(%d) |", i+1, staticWidth)
				}
				active.Remove(i)
				removed = true
				break
			}
			length, ok := al.base[col]
			if !ok { // no cell in this column
				if debugMode {
					debugLogger.Line("| col %d -> EMPTY (0) |", i+1)
				}
				active.Remove(i)
				removed = true
				break
			}
			// max * factor < min, with factor = remainingArea / maxSumCols ;
			// without positive max sum, no factor applies and the column is pinned
			if maxSumCols <= 0 || int64(length.Max())*int64(remainingArea) < int64(length.Min())*int64(maxSumCols) {
				al.base[col] = pr.NewMinOptMax(length.Min(), length.Min(), length.Max())
				remainingArea -= length.Min()
				maxSumCols -= length.Max()
				if debugMode {
					debugLogger.Line("| col %d -> MIN(%d) |", i+1, length.Min())
				}
				active.Remove(i)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}

	if maxSumCols <= 0 {
		return
	}
	// all the remaining columns may be shrunk by the factor
	for i, col := range columns {
		if !active.Has(i) {
			continue
		}
		length := al.base[col]
		newOpt := int(int64(length.Max()) * int64(remainingArea) / int64(maxSumCols))
		newOpt = utils.MaxInt(length.Min(), utils.MinInt(newOpt, length.Max()))
		if debugMode {
			debugLogger.Line("| col %d -> OPT(%d) |", i+1, newOpt)
		}
		al.base[col] = pr.NewMinOptMax(length.Min(), newOpt, length.Max())
	}
}

// redistributeAuto sets the width of the auto columns so that the table
// fills maxArea : the space left by the static columns is shared
// proportionally to the declared widths of the auto columns.
// If onlyGrow is true, columns whose share is below their minimum keep
// their current range.
func (al *autoLayout) redistributeAuto(maxArea int, onlyGrow bool) {
	autoWidth, fixedWidth := 0, 0
	for _, col := range al.setup.Columns() {
		width := al.declared.ColumnWidth(col)
		if col.IsAutoLayout() {
			autoWidth += width
		} else {
			fixedWidth += width
		}
	}

	remainingArea := maxArea - fixedWidth
	if remainingArea <= 0 || autoWidth <= 0 {
		return
	}
	for _, col := range al.setup.Columns() {
		if !col.IsAutoLayout() {
			continue
		}
		factor := float64(al.declared.ColumnWidth(col)) / float64(autoWidth)
		newWidth := utils.RoundInt(factor * float64(remainingArea))
		if length, ok := al.base[col]; onlyGrow && ok && newWidth <= length.Min() {
			continue
		}
		al.base[col] = pr.Fixed(newWidth)
	}
}
