package layout

import (
	"github.com/benoitkugler/folayout/fo/knuth"
)

// PageBreak delimits the elements of one page.
type PageBreak struct {
	// Start and End delimit the content of the page: [Start, End[
	Start, End int
	// Break is the index of the element ending the page,
	// or -1 for the last page.
	Break int
	// Height is the extent of the content, including the width of the
	// break and the footnotes.
	Height int
}

// FirstFitBreaker fills the pages one after the other, breaking at the
// last legal break fitting in the page. Forced breaks always end the page,
// except at its start. Content which can't be broken overflows the page.
type FirstFitBreaker struct {
	PageHeight int
}

func elementHeight(el knuth.Element) int {
	h := el.Width()
	if box, ok := el.(*knuth.Box); ok {
		h += footnotesBPD(box.Footnotes)
	}
	return h
}

// FindBreaks splits elements into pages.
func (b FirstFitBreaker) FindBreaks(elements []knuth.Element) []PageBreak {
	var pages []PageBreak
	start := 0
	for {
		// discard the breaks and glues at the start of the page
		for start < len(elements) && !elements[start].IsBox() {
			start++
		}
		if start >= len(elements) {
			return pages
		}

		length, end := 0, -1
		lastFeasible, lengthAtFeasible := -1, 0
	scan:
		for i := start; i < len(elements); i++ {
			el := elements[i]
			switch {
			case el.IsBox():
				if length+elementHeight(el) > b.PageHeight && lastFeasible >= 0 {
					end = lastFeasible
					break scan
				}
			case el.IsGlue():
				if elements[i-1].IsBox() && (length <= b.PageHeight || lastFeasible < 0) {
					lastFeasible, lengthAtFeasible = i, length
				}
			default:
				p := knuth.PenaltyValueOf(el)
				if p == -knuth.Infinite {
					end = i
					lengthAtFeasible = length + el.Width()
					break scan
				}
				if p < knuth.Infinite && (length+el.Width() <= b.PageHeight || lastFeasible < 0) {
					lastFeasible, lengthAtFeasible = i, length+el.Width()
				}
				continue
			}
			length += elementHeight(el)
		}

		if end < 0 {
			return append(pages, PageBreak{Start: start, End: len(elements), Break: -1, Height: length})
		}
		pages = append(pages, PageBreak{Start: start, End: end, Break: end, Height: lengthAtFeasible})
		start = end + 1
	}
}

// Positions returns the positions of the elements of the page,
// including the break ending it, if any.
func (pb PageBreak) Positions(elements []knuth.Element) []knuth.Position {
	var out []knuth.Position
	for _, el := range elements[pb.Start:pb.End] {
		if pos := el.Position(); pos != nil {
			out = append(out, pos)
		}
	}
	if pb.Break >= 0 && !elements[pb.Break].IsGlue() {
		if pos := elements[pb.Break].Position(); pos != nil {
			out = append(out, pos)
		}
	}
	return out
}

// Page is the layout of the table on one page.
type Page struct {
	PageBreak
	Areas   []Area
	UsedBPD int
}

// Paginate breaks the elements returned by GetNextKnuthElements into
// pages of the given height, and creates the areas of each page.
func (tlm *TableLayoutManager) Paginate(elements []knuth.Element, pageHeight int, ctx *LayoutContext) []Page {
	breaks := FirstFitBreaker{PageHeight: pageHeight}.FindBreaks(elements)
	out := make([]Page, len(breaks))
	for i, pb := range breaks {
		out[i].PageBreak = pb
		out[i].Areas = tlm.AddAreas(pb.Positions(elements), ctx)
		out[i].UsedBPD = tlm.UsedBPD()
	}
	return out
}
