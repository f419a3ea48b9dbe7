package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/folayout/fo/events"
	"github.com/benoitkugler/folayout/fo/knuth"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	tu "github.com/benoitkugler/folayout/utils/testutils"
	"github.com/benoitkugler/folayout/utils/testutils/tracer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func rowOf(heights ...int) *tree.TableRow {
	cells := make([]*tree.TableCell, len(heights))
	for i, h := range heights {
		cells[i] = fixedCell(h)
	}
	return tree.NewTableRow(cells...)
}

// fixedTable returns a table with one column of 100pt.
func fixedTable(rows ...*tree.TableRow) *tree.Table {
	table := tree.NewTable()
	table.AutoLayout = false
	table.AddColumn(absoluteColumn(100 * pr.Pt))
	table.Bodies = []*tree.TablePart{body(rows...)}
	return table
}

func layoutElements(t *testing.T, table *tree.Table) (*TableLayoutManager, []knuth.Element) {
	t.Helper()
	tlm, rec := newLayout(t, table)
	elements := tlm.GetNextKnuthElements(NewLayoutContext(200 * pr.Pt))
	tu.AssertEqual(t, len(rec.Events), 0)
	return tlm, elements
}

func penaltyValues(elements []knuth.Element) []int {
	var out []int
	for _, el := range elements {
		if !el.IsBox() && !el.IsGlue() {
			out = append(out, knuth.PenaltyValueOf(el))
		}
	}
	return out
}

func boxWidths(elements []knuth.Element) []int {
	var out []int
	for _, el := range elements {
		if el.IsBox() {
			out = append(out, el.Width())
		}
	}
	return out
}

func TestBodyElements(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	tlm, elements := layoutElements(t, fixedTable(rowOf(20000), rowOf(20000), rowOf(30000)))
	tu.AssertEqual(t, len(elements), 5)
	tu.AssertEqual(t, boxWidths(elements), []int{20000, 20000, 30000})
	tu.AssertEqual(t, penaltyValues(elements), []int{0, 0})
	for i, el := range elements {
		if el.IsBox() {
			pos := el.Position().(*TableContentPosition)
			tu.AssertEqual(t, pos.Row.Index, i/2)
			tu.AssertEqual(t, pos.FirstInRowGroup && pos.LastInRowGroup, true)
		} else {
			tu.AssertEqual(t, el.Width(), 0)
		}
	}
	tu.AssertEqual(t, tlm.ContentIPD(), 200*pr.Pt)
	tu.AssertEqual(t, tlm.ResolvedColumnWidths(), []int{100 * pr.Pt})
}

func TestBorderSeparation(t *testing.T) {
	table := fixedTable(rowOf(20000), rowOf(20000))
	table.BorderSeparationBPD = 2000
	_, elements := layoutElements(t, table)
	// box, break, glue, box, break (never a break), glue
	tu.AssertEqual(t, len(elements), 6)
	tu.AssertEqual(t, elements[5].IsGlue(), true)
	tu.AssertEqual(t, penaltyValues(elements), []int{0, knuth.Infinite})
	tu.AssertEqual(t, knuth.CalcContentLength(elements), 44000)
}

func TestRowSpanGroup(t *testing.T) {
	table := fixedTable(
		tree.NewTableRow(fixedCell(30000).RowSpan(2), fixedCell(10000)),
		rowOf(10000),
		rowOf(10000),
	)
	table.Columns = nil
	table.AddColumn(absoluteColumn(50 * pr.Pt))
	table.AddColumn(absoluteColumn(50 * pr.Pt))
	_, elements := layoutElements(t, table)
	// the missing height is added to the last row of the span
	tu.AssertEqual(t, boxWidths(elements), []int{10000, 20000, 10000})
	// no break inside the group
	tu.AssertEqual(t, penaltyValues(elements), []int{knuth.Infinite, 0})
}

func TestKeepsAndBreaks(t *testing.T) {
	r1, r2, r3 := rowOf(10000), rowOf(10000), rowOf(10000)
	r2.KeepWithPrevious = pr.KeepAlways
	r3.BreakBefore = pr.BreakPage
	r2.KeepWithNext = pr.KeepAlways // overridden by the break
	_, elements := layoutElements(t, fixedTable(r1, r2, r3))
	tu.AssertEqual(t, penaltyValues(elements), []int{knuth.Infinite, -knuth.Infinite})
	be := elements[3].(*knuth.BreakElement)
	tu.AssertEqual(t, be.BreakClass, pr.BreakPage)
	tu.AssertEqual(t, be.IsForcedBreak(), true)
	tu.AssertEqual(t, elements[1].IsForcedBreak(), false)

	// integer keeps are weaker than always
	r1, r2 = rowOf(10000), rowOf(10000)
	keep, err := pr.ParseKeep("5")
	tu.AssertNoError(t, err)
	r1.KeepWithNext = keep
	_, elements = layoutElements(t, fixedTable(r1, r2))
	tu.AssertEqual(t, penaltyValues(elements), []int{knuth.Infinite - 1})
}

func TestKeepTogether(t *testing.T) {
	table := fixedTable(rowOf(10000), rowOf(10000), rowOf(10000))
	table.KeepTogether = pr.KeepAlways
	_, elements := layoutElements(t, table)
	tu.AssertEqual(t, penaltyValues(elements), []int{knuth.Infinite, knuth.Infinite})
}

func TestTableBreaks(t *testing.T) {
	last := rowOf(10000)
	last.BreakAfter = pr.BreakPage
	table := fixedTable(rowOf(10000), last)
	table.BreakBefore = pr.BreakColumn
	table.KeepWithNext = pr.KeepAlways

	tlm, _ := newLayout(t, table)
	ctx := NewLayoutContext(200 * pr.Pt)
	elements := tlm.GetNextKnuthElements(ctx)
	tu.AssertEqual(t, elements[0].IsForcedBreak(), true)
	tu.AssertEqual(t, elements[0].(*knuth.BreakElement).BreakClass, pr.BreakColumn)
	tu.AssertEqual(t, elements[len(elements)-1].IsForcedBreak(), true)
	tu.AssertEqual(t, ctx.BreakAfter, pr.BreakPage)
	tu.AssertEqual(t, ctx.KeepWithNextPending.IsAlways(), true)
}

func TestWidowOrphanLimits(t *testing.T) {
	rows := func() []*tree.TableRow {
		return []*tree.TableRow{rowOf(10000), rowOf(10000), rowOf(10000), rowOf(10000), rowOf(10000)}
	}
	table := fixedTable(rows()...)
	table.WidowContentLimit = 25000
	_, elements := layoutElements(t, table)
	tu.AssertEqual(t, penaltyValues(elements), []int{0, 0, knuth.Infinite, knuth.Infinite})

	table = fixedTable(rows()...)
	table.OrphanContentLimit = 15000
	_, elements = layoutElements(t, table)
	tu.AssertEqual(t, penaltyValues(elements), []int{knuth.Infinite, 0, 0, 0})

	// forced breaks are kept
	rs := rows()
	rs[1].BreakBefore = pr.BreakPage
	table = fixedTable(rs...)
	table.OrphanContentLimit = 30000
	_, elements = layoutElements(t, table)
	tu.AssertEqual(t, penaltyValues(elements), []int{-knuth.Infinite, knuth.Infinite, 0, 0})
}

func headerFooterTable() *tree.Table {
	table := fixedTable(rowOf(20000), rowOf(20000), rowOf(20000))
	table.Header = &tree.TablePart{Kind: tree.Header, Rows: []*tree.TableRow{rowOf(10000)}}
	table.Footer = &tree.TablePart{Kind: tree.Footer, Rows: []*tree.TableRow{rowOf(5000)}}
	return table
}

func TestHeaderFooterInsertion(t *testing.T) {
	_, elements := layoutElements(t, headerFooterTable())
	tu.AssertEqual(t, boxWidths(elements), []int{20000, 20000, 20000, 10000, 5000})

	header := elements[len(elements)-2].Position().(*TableHeaderFooterPosition)
	tu.AssertEqual(t, header.Header, true)
	footer := elements[len(elements)-1].Position().(*TableHeaderFooterPosition)
	tu.AssertEqual(t, footer.Header, false)

	// breaking the body repeats the header and the footer
	be := elements[1].(*knuth.BreakElement)
	tu.AssertEqual(t, be.PenaltyWidth, 15000)
	penaltyPos := be.Position().(*TableHFPenaltyPosition)
	tu.AssertEqual(t, len(penaltyPos.HeaderElements), 1)
	tu.AssertEqual(t, len(penaltyPos.FooterElements), 1)

	table := headerFooterTable()
	table.OmitHeaderAtBreak = true
	_, elements = layoutElements(t, table)
	tu.AssertEqual(t, boxWidths(elements), []int{10000, 20000, 20000, 20000, 5000})
	tu.AssertEqual(t, elements[0].Position().(*TableHeaderFooterPosition).Header, true)
	tu.AssertEqual(t, elements[2].Width(), 5000)

	table = headerFooterTable()
	table.OmitHeaderAtBreak = true
	table.OmitFooterAtBreak = true
	_, elements = layoutElements(t, table)
	be = elements[2].(*knuth.BreakElement)
	tu.AssertEqual(t, be.PenaltyWidth, 0)
	if _, ok := be.Position().(*TableContentPosition); !ok {
		t.Fatalf("unexpected position %s", be.Position())
	}
}

func TestHeaderBeforeTrailingBreak(t *testing.T) {
	last := rowOf(20000)
	last.BreakAfter = pr.BreakPage
	table := headerFooterTable()
	table.Bodies[0].Rows[2] = last
	_, elements := layoutElements(t, table)
	n := len(elements)
	tu.AssertEqual(t, elements[n-1].IsForcedBreak(), true)
	tu.AssertEqual(t, elements[n-2].Position().(*TableHeaderFooterPosition).Header, false)
	tu.AssertEqual(t, elements[n-3].Position().(*TableHeaderFooterPosition).Header, true)
}

func TestFootnotes(t *testing.T) {
	cell := fixedCell(10000)
	cell.Footnotes = []tree.Footnote{{Content: []tree.Block{{Width: 1000, Height: 3000}}}}
	table := fixedTable(tree.NewTableRow(cell), rowOf(10000))
	_, elements := layoutElements(t, table)
	tu.AssertEqual(t, elements[0].(*knuth.Box).Footnotes, []knuth.Footnote{{BPD: 3000}})

	// footnotes of a repeated header are reserved once
	table = headerFooterTable()
	hcell := fixedCell(10000)
	hcell.Footnotes = []tree.Footnote{{Content: []tree.Block{{Width: 1000, Height: 2000}}}}
	table.Header.Rows[0] = tree.NewTableRow(hcell)
	_, elements = layoutElements(t, table)
	first, last := elements[0].(*knuth.Box), elements[len(elements)-1].(*knuth.Box)
	tu.AssertEqual(t, first.W, -2000)
	tu.AssertEqual(t, first.Footnotes, []knuth.Footnote{{BPD: 2000}})
	tu.AssertEqual(t, last.W, 2000)
	tu.AssertEqual(t, elements[2].(*knuth.BreakElement).PenaltyWidth, 10000+2000+5000)
}

func TestIPDExceedsAvailable(t *testing.T) {
	table := fixedTable(rowOf(10000))
	table.Width = pr.Mpt(300 * pr.Pt)
	tlm, rec := newLayout(t, table)
	tlm.GetNextKnuthElements(NewLayoutContext(200 * pr.Pt))
	tu.AssertEqual(t, rec.Kinds(), []events.Kind{events.IPDExceedsAvailable})
	tu.AssertEqual(t, tlm.ContentIPD(), 300*pr.Pt)

	// no warning while measuring
	tlm, rec = newLayout(t, fixedTable(rowOf(10000)))
	tlm.Table.Width = pr.Mpt(300 * pr.Pt)
	ctx := NewLayoutContext(200 * pr.Pt)
	ctx.AutoLayoutDeterminationMode = true
	tlm.GetNextKnuthElements(ctx)
	tu.AssertEqual(t, len(rec.Events), 0)
}

func TestPaginate(t *testing.T) {
	table := headerFooterTable()
	table.StartIndent = 1000
	tlm, elements := layoutElements(t, table)
	tu.AssertEqual(t, tlm.ContentIPD(), 199*pr.Pt)

	pages := tlm.Paginate(elements, 60000, NewLayoutContext(200*pr.Pt))
	tu.AssertEqual(t, len(pages), 2)

	area := func(part tree.PartKind, row, y, height int, repeated bool) Area {
		return Area{
			Part: part, Row: row, Column: 1, ColSpan: 1, RowSpan: 1,
			X: 1000, Y: y, Width: 100 * pr.Pt, Height: height, Repeated: repeated,
		}
	}
	expected := [][]Area{
		{
			area(tree.Header, 0, 0, 10000, false),
			area(tree.Body, 0, 10000, 20000, false),
			area(tree.Body, 1, 30000, 20000, false),
			area(tree.Footer, 0, 50000, 5000, true),
		},
		{
			area(tree.Header, 0, 0, 10000, true),
			area(tree.Body, 2, 10000, 20000, false),
			area(tree.Footer, 0, 30000, 5000, false),
		},
	}
	for i, page := range pages {
		if diff := cmp.Diff(expected[i], page.Areas, cmpopts.IgnoreFields(Area{}, "Cell")); diff != "" {
			t.Fatalf("page %d: unexpected areas (-want +got):\n%s", i, diff)
		}
		tu.AssertEqual(t, page.UsedBPD, page.Height)
	}
	tu.AssertEqual(t, pages[0].UsedBPD, 55000)
	tu.AssertEqual(t, pages[1].UsedBPD, 35000)
}

func TestRightToLeftAreas(t *testing.T) {
	table := fixedTable(rowOf(10000, 10000))
	table.Columns = nil
	table.AddColumn(absoluteColumn(30 * pr.Pt))
	table.AddColumn(absoluteColumn(70 * pr.Pt))
	table.WritingMode = pr.WritingModeRlTb
	tlm, elements := layoutElements(t, table)
	pages := tlm.Paginate(elements, 100000, NewLayoutContext(200*pr.Pt))
	tu.AssertEqual(t, len(pages), 1)
	areas := pages[0].Areas
	tu.AssertEqual(t, areas[0].X, 70*pr.Pt)
	tu.AssertEqual(t, areas[1].X, 0)
}

func TestFirstFitBreaker(t *testing.T) {
	box := func(h int) knuth.Element { return knuth.NewBox(h, nil, false) }
	br := func(p int) knuth.Element { return knuth.NewBreakElement(nil, 0, p, pr.BreakAuto) }

	// content higher than the page overflows
	pages := FirstFitBreaker{PageHeight: 60000}.FindBreaks([]knuth.Element{box(70000), br(0), box(10)})
	tu.AssertEqual(t, pages, []PageBreak{
		{Start: 0, End: 1, Break: 1, Height: 70000},
		{Start: 2, End: 3, Break: -1, Height: 10},
	})

	// forced breaks end the page, except at its start
	pages = FirstFitBreaker{PageHeight: 60000}.FindBreaks([]knuth.Element{
		br(-knuth.Infinite), box(10), br(-knuth.Infinite), box(20), br(knuth.Infinite), box(30),
	})
	tu.AssertEqual(t, pages, []PageBreak{
		{Start: 1, End: 2, Break: 2, Height: 10},
		{Start: 3, End: 6, Break: -1, Height: 50},
	})

	// inhibited breaks are never used
	pages = FirstFitBreaker{PageHeight: 25}.FindBreaks([]knuth.Element{box(10), br(knuth.Infinite), box(10), br(0), box(10)})
	tu.AssertEqual(t, pages, []PageBreak{
		{Start: 0, End: 3, Break: 3, Height: 20},
		{Start: 4, End: 5, Break: -1, Height: 10},
	})
}

func TestTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := tracer.NewWriterTracer(&buf)
	tlm, _ := newLayout(t, fixedTable(rowOf(10000)))
	tlm.Tracer = &tr
	tlm.GetNextKnuthElements(NewLayoutContext(200 * pr.Pt))
	out := buf.String()
	if !strings.Contains(out, "col 1: 100pt") || !strings.Contains(out, "table elements") {
		t.Fatalf("unexpected trace %s", out)
	}
}
