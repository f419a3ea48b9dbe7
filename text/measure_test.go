package text

import (
	"testing"

	"github.com/benoitkugler/folayout/fo/knuth"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	tu "github.com/benoitkugler/folayout/utils/testutils"
)

func newMeasurer(t *testing.T) *Measurer {
	t.Helper()
	m, err := NewMeasurer(nil)
	tu.AssertNoError(t, err)
	return m
}

func lineCount(elements []knuth.Element) int {
	n := 0
	for _, el := range elements {
		if el.IsBox() {
			n++
		}
	}
	return n
}

// assertClose tolerates the rounding of the advances of each segment
func assertClose(t *testing.T, got, exp int) {
	t.Helper()
	if d := got - exp; d < -50 || d > 50 {
		t.Fatalf("expected %d (±50), got %d", exp, got)
	}
}

func TestAdvance(t *testing.T) {
	m := newMeasurer(t)
	a := m.Advance("a", 12*pr.Pt)
	if a <= 0 {
		t.Fatalf("invalid advance %d", a)
	}
	tu.AssertEqual(t, m.Advance("", 12*pr.Pt), 0)
	// advances are proportional to the font size
	if d := m.Advance("aaaa", 24*pr.Pt) - 2*m.Advance("aaaa", 12*pr.Pt); d < -20 || d > 20 {
		t.Fatalf("unexpected scaling (%d)", d)
	}
}

func TestMeasureText(t *testing.T) {
	m := newMeasurer(t)
	cell := tree.Text("a short extraordinary text")
	cell.FontSize = 10 * pr.Pt

	wide := m.Measure(cell, 1000*pr.Pt)
	tu.AssertEqual(t, wide.MinIPD, m.Advance("extraordinary", 10*pr.Pt))
	assertClose(t, wide.IPD, m.Advance("a short extraordinary text", 10*pr.Pt))
	tu.AssertEqual(t, lineCount(wide.Elements), 1)
	tu.AssertEqual(t, knuth.CalcContentLength(wide.Elements), 12*pr.Pt)

	// the widths do not depend on the available width
	narrow := m.Measure(cell, wide.MinIPD)
	tu.AssertEqual(t, narrow.MinIPD, wide.MinIPD)
	tu.AssertEqual(t, narrow.IPD, wide.IPD)
	if lineCount(narrow.Elements) < 3 {
		t.Fatalf("expected several lines, got %d", lineCount(narrow.Elements))
	}
}

func TestMeasureMandatoryBreak(t *testing.T) {
	m := newMeasurer(t)
	out := m.Measure(tree.Text("first line\nsecond"), 1000*pr.Pt)
	tu.AssertEqual(t, lineCount(out.Elements), 2)
	assertClose(t, out.IPD, m.Advance("first line", DefaultFontSize))
}

func TestMeasureBlocks(t *testing.T) {
	m := newMeasurer(t)
	cell := tree.NewTableCell(tree.Block{Width: 50 * pr.Pt, Height: 20 * pr.Pt}, tree.Block{Text: "ok"})
	out := m.Measure(cell, 100*pr.Pt)
	tu.AssertEqual(t, out.IPD, 50*pr.Pt)
	tu.AssertEqual(t, out.MinIPD, 50*pr.Pt)
	tu.AssertEqual(t, knuth.CalcContentLength(out.Elements), 20*pr.Pt+DefaultFontSize*6/5)
	tu.AssertEqual(t, len(out.Elements), 3)
}

func TestInvalidFont(t *testing.T) {
	_, err := NewMeasurer([]byte("not a font"))
	if err == nil {
		t.Fatal("expected an error for invalid font data")
	}
	_, err = LoadMeasurer("/does/not/exist.ttf")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
