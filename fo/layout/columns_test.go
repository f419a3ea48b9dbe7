package layout

import (
	"testing"

	"github.com/benoitkugler/folayout/fo/events"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	tu "github.com/benoitkugler/folayout/utils/testutils"
)

func newColumnSetup(t *testing.T, columns ...*tree.TableColumn) (*ColumnSetup, *events.Recorder) {
	t.Helper()
	table := tree.NewTable()
	for _, col := range columns {
		table.AddColumn(col)
	}
	tu.AssertNoError(t, table.Finalize())
	var rec events.Recorder
	cs, err := NewColumnSetup(table, events.NewBroadcaster(&rec))
	tu.AssertNoError(t, err)
	return cs, &rec
}

func TestGetColumn(t *testing.T) {
	c1, c2 := absoluteColumn(1000), absoluteColumn(2000)
	cs, rec := newColumnSetup(t, c1, c2)

	tu.AssertEqual(t, cs.GetColumn(1), c1)
	tu.AssertEqual(t, cs.GetColumn(2), c2)
	tu.AssertEqual(t, cs.ColumnCount(), 2)
	tu.AssertEqual(t, len(rec.Events), 0)

	tu.AssertEqual(t, cs.GetColumn(5), c2)
	tu.AssertEqual(t, rec.Kinds(), []events.Kind{events.TooFewColumns})
	tu.AssertEqual(t, rec.Events[0].Params["accessed"], 5)

	// idempotent, and only warns for new maxima
	tu.AssertEqual(t, cs.GetColumn(5), c2)
	tu.AssertEqual(t, cs.GetColumn(4), c2)
	tu.AssertEqual(t, len(rec.Events), 1)
	tu.AssertEqual(t, cs.ColumnCount(), 5)

	cs.GetColumn(6)
	tu.AssertEqual(t, len(rec.Events), 2)
	tu.AssertEqual(t, cs.ColumnCount(), 6)
}

func TestGetColumnImplicit(t *testing.T) {
	cs, rec := newColumnSetup(t)
	tu.AssertEqual(t, len(cs.Columns()), 1)
	tu.AssertEqual(t, cs.GetColumn(3).Implicit, true)
	tu.AssertEqual(t, len(rec.Events), 0)
	tu.AssertEqual(t, cs.ColumnCount(), 3)
}

func TestRepeatedColumns(t *testing.T) {
	col := absoluteColumn(1000)
	col.NumberColumnsRepeated = 3
	cs, _ := newColumnSetup(t, col, absoluteColumn(2000))
	tu.AssertEqual(t, cs.ColumnCount(), 4)
	for i := 1; i <= 3; i++ {
		tu.AssertEqual(t, cs.GetColumn(i).ColumnNumber, i)
		tu.AssertEqual(t, cs.GetColumn(i).ColumnWidth, pr.AbsoluteWidth(1000))
	}
	if cs.GetColumn(1) == cs.GetColumn(2) {
		t.Fatal("repeated columns must be distinct")
	}
}

func TestColumnGap(t *testing.T) {
	table := tree.NewTable()
	col := absoluteColumn(1000)
	col.ColumnNumber = 2
	table.Columns = []*tree.TableColumn{col} // not finalized
	_, err := NewColumnSetup(table, nil)
	if _, ok := err.(*InternalError); !ok {
		t.Fatalf("expected an internal error, got %v", err)
	}
}

func TestComputeTableUnit(t *testing.T) {
	cs, rec := newColumnSetup(t, proportionalColumn(2), proportionalColumn(3))
	tu.AssertEqual(t, cs.ComputeTableUnit(500000, false), 100000.)
	tu.AssertEqual(t, cs.ComputeTableUnit(500000, false)*5, 500000.)

	cs, rec = newColumnSetup(t, absoluteColumn(100000), proportionalColumn(1))
	tu.AssertEqual(t, cs.ComputeTableUnit(300000, false), 200000.)

	// percentages are resolved against the content width
	pc := pr.PercentageWidth(25)
	cs, rec = newColumnSetup(t, tree.NewTableColumn(&pc), proportionalColumn(3))
	tu.AssertEqual(t, cs.ComputeTableUnit(400000, false), 100000.)

	cs, rec = newColumnSetup(t, absoluteColumn(400000), proportionalColumn(1))
	tu.AssertEqual(t, cs.ComputeTableUnit(300000, true), 0.)
	tu.AssertEqual(t, len(rec.Events), 0) // silent while measuring
	tu.AssertEqual(t, cs.ComputeTableUnit(300000, false), 0.)
	tu.AssertEqual(t, rec.Kinds(), []events.Kind{events.NoSpaceForProportionalColumns})

	// no proportional column : nothing to share
	cs, rec = newColumnSetup(t, absoluteColumn(400000))
	tu.AssertEqual(t, cs.ComputeTableUnit(300000, false), 0.)
	tu.AssertEqual(t, len(rec.Events), 0)
}

func TestXOffset(t *testing.T) {
	cs, _ := newColumnSetup(t, absoluteColumn(100), absoluteColumn(200), absoluteColumn(300))
	widths := declaredWidths{contentIPD: 1000}
	tu.AssertEqual(t, cs.SumOfColumnWidths(widths), 600)

	for _, test := range []struct {
		col, span, ltr, rtl int
	}{
		{1, 1, 0, 500},
		{2, 1, 100, 300},
		{3, 1, 300, 0},
		{1, 2, 0, 300},
		{2, 2, 100, 0},
		{1, 3, 0, 0},
	} {
		cs.Direction = pr.LTR
		tu.AssertEqual(t, cs.XOffset(test.col, test.span, widths), test.ltr)
		cs.Direction = pr.RTL
		tu.AssertEqual(t, cs.XOffset(test.col, test.span, widths), test.rtl)

		// the two progressions are mirrored
		spanWidth := cs.SpanWidth(test.col, test.span, widths)
		tu.AssertEqual(t, test.rtl, cs.SumOfColumnWidths(widths)-test.ltr-spanWidth)
	}
}

func TestDirectionFromWritingMode(t *testing.T) {
	table := tree.NewTable()
	table.WritingMode = pr.WritingModeRlTb
	tu.AssertNoError(t, table.Finalize())
	cs, err := NewColumnSetup(table, nil)
	tu.AssertNoError(t, err)
	tu.AssertEqual(t, cs.Direction, pr.RTL)
}
