package layout

import (
	"github.com/benoitkugler/folayout/fo/knuth"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
)

// TableContentLayoutManager builds the elements of the header, the
// bodies and the footer of a table, and adds the corresponding areas
// once the page breaks are known.
type TableContentLayoutManager struct {
	tlm *TableLayoutManager

	// header and footer are laid out once, and repeated on each page
	headerList, footerList           []knuth.Element
	headerNetHeight, footerNetHeight int
	headerFootnotes, footerFootnotes []knuth.Footnote
	cachedIPD                        int

	rowHeights map[*tree.EffRow]int

	usedBPD               int
	startXOffset          int
	headerIsBeingRepeated bool
}

func newTableContentLayoutManager(tlm *TableLayoutManager) *TableContentLayoutManager {
	return &TableContentLayoutManager{tlm: tlm, rowHeights: make(map[*tree.EffRow]int)}
}

func (c *TableContentLayoutManager) headerIsRepeated() bool {
	return c.headerList != nil && !c.tlm.Table.OmitHeaderAtBreak
}

func (c *TableContentLayoutManager) footerIsRepeated() bool {
	return c.footerList != nil && !c.tlm.Table.OmitFooterAtBreak
}

// penaltyWidth returns the height of the content added if the
// body breaks : the repeated footer and header.
func (c *TableContentLayoutManager) penaltyWidth() int {
	width := 0
	if c.headerIsRepeated() {
		width += c.headerNetHeight + footnotesBPD(c.headerFootnotes)
	}
	if c.footerIsRepeated() {
		width += c.footerNetHeight + footnotesBPD(c.footerFootnotes)
	}
	return width
}

// penaltyPosition returns nil if neither the header nor the footer is repeated.
func (c *TableContentLayoutManager) penaltyPosition(row *tree.EffRow) *TableHFPenaltyPosition {
	if !c.headerIsRepeated() && !c.footerIsRepeated() {
		return nil
	}
	pos := &TableHFPenaltyPosition{Row: row}
	if c.headerIsRepeated() {
		pos.HeaderElements = c.headerList
	}
	if c.footerIsRepeated() {
		pos.FooterElements = c.footerList
	}
	return pos
}

func collectFootnotes(elements []knuth.Element) []knuth.Footnote {
	var out []knuth.Footnote
	for _, el := range elements {
		if box, ok := el.(*knuth.Box); ok {
			out = append(out, box.Footnotes...)
		}
	}
	return out
}

func footnotesBPD(footnotes []knuth.Footnote) int {
	bpd := 0
	for _, fn := range footnotes {
		bpd += fn.BPD
	}
	return bpd
}

// GetNextKnuthElements returns the elements of the whole table content.
// The header box is placed first if it is not repeated, and before the
// last element otherwise, the footer box being the last one (in both cases,
// before a trailing forced break).
func (c *TableContentLayoutManager) GetNextKnuthElements(ctx *LayoutContext) []knuth.Element {
	table := c.tlm.Table
	if c.cachedIPD != c.tlm.contentIPD {
		c.headerList, c.footerList = nil, nil
		c.headerFootnotes, c.footerFootnotes = nil, nil
		c.cachedIPD = c.tlm.contentIPD
	}

	var (
		headerAsFirst, headerAsSecondToLast, footerAsLast *knuth.Box
		returnList                                        []knuth.Element
		headerFootnoteBPD                                 int
	)
	if table.Header != nil {
		if c.headerList == nil {
			c.headerList = c.getKnuthElementsForRowIterator(table.Grid(table.Header), ctx, tree.Header)
			c.headerNetHeight = knuth.CalcContentLength(c.headerList)
			if debugMode {
				debugLogger.Line("==> header: %d - %d elements", c.headerNetHeight, len(c.headerList))
			}
		}
		pos := &TableHeaderFooterPosition{Header: true, Elements: c.headerList}
		footnotes := collectFootnotes(c.headerList)
		box := knuth.NewBox(c.headerNetHeight, pos, false)
		if table.OmitHeaderAtBreak {
			// the header is simply added at the start of the whole list
			box.Footnotes = footnotes
			headerAsFirst = box
		} else {
			if len(footnotes) != 0 {
				c.headerFootnotes = footnotes
				headerFootnoteBPD = footnotesBPD(footnotes)
				fnBox := knuth.NewBox(-headerFootnoteBPD, tablePosition{}, true)
				fnBox.Footnotes = footnotes
				returnList = append(returnList, fnBox)
			}
			headerAsSecondToLast = box
		}
	}
	if table.Footer != nil {
		if c.footerList == nil {
			c.footerList = c.getKnuthElementsForRowIterator(table.Grid(table.Footer), ctx, tree.Footer)
			c.footerNetHeight = knuth.CalcContentLength(c.footerList)
			if debugMode {
				debugLogger.Line("==> footer: %d - %d elements", c.footerNetHeight, len(c.footerList))
			}
		}
		pos := &TableHeaderFooterPosition{Header: false, Elements: c.footerList}
		footnotes := collectFootnotes(c.footerList)
		footerAsLast = knuth.NewBox(c.footerNetHeight, pos, false)
		footerAsLast.Footnotes = footnotes
		if !table.OmitFooterAtBreak && len(footnotes) != 0 {
			c.footerFootnotes = footnotes
		}
	}

	var bodyRows []*tree.EffRow
	for _, body := range table.Bodies {
		bodyRows = append(bodyRows, table.Grid(body)...)
	}
	returnList = append(returnList, c.getKnuthElementsForRowIterator(bodyRows, ctx, tree.Body)...)

	if headerAsFirst != nil {
		insertionPoint := 0
		if knuth.StartsWithForcedBreak(returnList) {
			insertionPoint++
		}
		returnList = insertAt(returnList, insertionPoint, headerAsFirst)
	} else if headerAsSecondToLast != nil {
		insertionPoint := len(returnList)
		if knuth.EndsWithForcedBreak(returnList) {
			insertionPoint--
		}
		returnList = insertAt(returnList, insertionPoint, headerAsSecondToLast)
	}
	if footerAsLast != nil {
		insertionPoint := len(returnList)
		if knuth.EndsWithForcedBreak(returnList) {
			insertionPoint--
		}
		returnList = insertAt(returnList, insertionPoint, footerAsLast)
	}
	if headerFootnoteBPD != 0 {
		returnList = append(returnList, knuth.NewBox(headerFootnoteBPD, tablePosition{}, true))
	}
	return returnList
}

func insertAt(list []knuth.Element, index int, el knuth.Element) []knuth.Element {
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = el
	return list
}

// lastBreakElement returns the break element ending list, which may be
// followed by a glue.
func lastBreakElement(list []knuth.Element) (*knuth.BreakElement, bool) {
	last := list[len(list)-1]
	endsWithGlue := last.IsGlue()
	if endsWithGlue {
		last = list[len(list)-2]
	}
	be, ok := last.(*knuth.BreakElement)
	if !ok {
		panic("row group elements must end with a break element")
	}
	return be, endsWithGlue
}

// getKnuthElementsForRowIterator creates the elements of a table part,
// stitching its row groups together with breaks reflecting the keeps
// and breaks between them.
func (c *TableContentLayoutManager) getKnuthElementsForRowIterator(rows []*tree.EffRow, ctx *LayoutContext, kind tree.PartKind) []knuth.Element {
	table := c.tlm.Table
	it := tree.NewRowIterator(rows)
	var returnList []knuth.Element

	ctx.ClearKeepsPending()
	ctx.BreakBefore = pr.BreakAuto
	ctx.BreakAfter = pr.BreakAuto
	keepWithPrevious := pr.KeepAuto
	breakBefore := pr.BreakAuto
	if group := it.NextRowGroup(); group != nil {
		returnList = append(returnList, rowGroupLayout{content: c, rows: group}.getNextKnuthElements(ctx, kind)...)
		keepWithPrevious = keepWithPrevious.Compare(ctx.KeepWithPreviousPending)
		breakBefore = ctx.BreakBefore
		breakBetween := ctx.BreakAfter
		for group = it.NextRowGroup(); group != nil; group = it.NextRowGroup() {
			// the context is reused : note the pending keep-with-next and clear it
			keepWithNextPending := ctx.KeepWithNextPending
			ctx.ClearKeepWithNextPending()

			nextRowGroupElems := rowGroupLayout{content: c, rows: group}.getNextKnuthElements(ctx, kind)

			keep := keepWithNextPending.Compare(ctx.KeepWithPreviousPending)
			ctx.ClearKeepWithPreviousPending()
			keep = keep.Compare(table.KeepTogether)
			penaltyValue := keep.Penalty()
			breakClass := keep.Context()

			// breaks requested by the author override the keeps
			breakBetween = pr.CompareBreakClasses(breakBetween, ctx.BreakBefore)
			if breakBetween != pr.BreakAuto {
				penaltyValue = -knuth.Infinite
				breakClass = breakBetween
			}

			// the last break of the previous group is the break between the two
			breakElement, _ := lastBreakElement(returnList)
			breakElement.PenaltyValue = penaltyValue
			breakElement.BreakClass = breakClass
			returnList = append(returnList, nextRowGroupElems...)
			breakBetween = ctx.BreakAfter
		}
	}

	// the break after the table is handled by the table layout manager,
	// unless the list ends with a glue, which must be kept
	if len(returnList) != 0 {
		breakElement, endsWithGlue := lastBreakElement(returnList)
		if endsWithGlue {
			breakElement.PenaltyValue = knuth.Infinite
		} else {
			returnList = returnList[:len(returnList)-1]
		}
	}
	ctx.UpdateKeepWithPreviousPending(keepWithPrevious)
	ctx.BreakBefore = breakBefore

	if kind == tree.Body {
		// protect the content at the end of the table
		if table.WidowContentLimit != 0 {
			returnList, _ = knuth.RemoveLegalBreaksFromEnd(returnList, table.WidowContentLimit)
		}
		// protect the content at the start of the table
		if table.OrphanContentLimit != 0 {
			returnList, _ = knuth.RemoveLegalBreaks(returnList, table.OrphanContentLimit)
		}
	}

	if traceMode {
		traceLogger.DumpElements(returnList, "getKnuthElementsForRowIterator "+kind.String())
	}
	return returnList
}
