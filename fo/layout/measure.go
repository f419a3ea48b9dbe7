package layout

import (
	"github.com/benoitkugler/folayout/fo/knuth"
	"github.com/benoitkugler/folayout/fo/tree"
	"github.com/benoitkugler/folayout/utils"
)

// CellMeasure is the result of the layout of the content of a cell
// for a given reference width.
type CellMeasure struct {
	// Elements are the lines (or blocks) of the content, as boxes
	// separated by penalties.
	Elements []knuth.Element
	// IPD is the preferred width of the content, that is, the width
	// it would use without any line break.
	IPD int
	// MinIPD is the width of the widest unbreakable piece of content.
	MinIPD int
}

// Measurer lays out the content of a cell. It is the interface to the
// text and font subsystem.
// Padding is handled by the caller and must not be included.
type Measurer interface {
	Measure(cell *tree.TableCell, refIPD int) CellMeasure
}

// measureCell applies the padding of the cell around its content.
func measureCell(m Measurer, cell *tree.TableCell, refIPD int) (CellMeasure, int) {
	paddingIPD := cell.PaddingStart + cell.PaddingEnd
	out := m.Measure(cell, utils.MaxInt(refIPD-paddingIPD, 0))
	out.IPD += paddingIPD
	out.MinIPD += paddingIPD
	height := knuth.CalcContentLength(out.Elements) + cell.PaddingBefore + cell.PaddingAfter
	return out, height
}
