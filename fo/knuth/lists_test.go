package knuth

import (
	"testing"

	pr "github.com/benoitkugler/folayout/fo/properties"
	tu "github.com/benoitkugler/folayout/utils/testutils"
)

func rowList(heights ...int) []Element {
	var out []Element
	for i, h := range heights {
		out = append(out, NewBox(h, nil, false))
		if i < len(heights)-1 {
			out = append(out, NewBreakElement(nil, 0, 0, pr.BreakAuto))
		}
	}
	return out
}

func countLegalBreaks(list []Element) int {
	n := 0
	for _, el := range list {
		if p := PenaltyValueOf(el); (el.IsPenalty() || el.IsUnresolved()) && p < Infinite {
			n++
		}
	}
	return n
}

func TestCalcContentLength(t *testing.T) {
	list := []Element{
		NewBox(10, nil, false),
		NewPenalty(100, 0, false, pr.BreakAuto, nil),
		NewGlue(5, 0, 0, nil),
		NewBreakElement(nil, 30, 0, pr.BreakAuto),
		NewBox(7, nil, false),
	}
	tu.AssertEqual(t, CalcContentLength(list), 22)
	tu.AssertEqual(t, CalcContentLength(nil), 0)
}

func TestForcedBreaks(t *testing.T) {
	forced := NewPenalty(0, -Infinite, false, pr.BreakPage, nil)
	list := []Element{NewBox(10, nil, false), forced}
	tu.AssertEqual(t, StartsWithForcedBreak(list), false)
	tu.AssertEqual(t, EndsWithForcedBreak(list), true)
	tu.AssertEqual(t, StartsWithForcedBreak(nil), false)
	tu.AssertEqual(t, EndsWithForcedBreak(nil), false)
}

func TestRemoveLegalBreaks(t *testing.T) {
	list := rowList(10, 10, 10, 10)
	tu.AssertEqual(t, countLegalBreaks(list), 3)

	// the first two boxes reach the limit : the break between them is removed
	out, complete := RemoveLegalBreaks(list, 20)
	tu.AssertEqual(t, complete, false)
	tu.AssertEqual(t, countLegalBreaks(out), 2)
	tu.AssertEqual(t, PenaltyValueOf(out[1]), Infinite)
	tu.AssertEqual(t, PenaltyValueOf(out[3]), 0)

	// the input is not modified
	tu.AssertEqual(t, countLegalBreaks(list), 3)

	out, complete = RemoveLegalBreaks(list, 1000)
	tu.AssertEqual(t, complete, true)
	tu.AssertEqual(t, countLegalBreaks(out), 0)
}

func TestRemoveLegalBreaksFromEnd(t *testing.T) {
	list := rowList(10, 10, 10, 10)
	out, complete := RemoveLegalBreaksFromEnd(list, 20)
	tu.AssertEqual(t, complete, false)
	tu.AssertEqual(t, PenaltyValueOf(out[1]), 0)
	tu.AssertEqual(t, PenaltyValueOf(out[3]), 0)
	tu.AssertEqual(t, PenaltyValueOf(out[5]), Infinite)
}

func TestRemoveLegalBreaksKeepsForced(t *testing.T) {
	list := []Element{
		NewBox(10, nil, false),
		NewBreakElement(nil, 0, -Infinite, pr.BreakPage),
		NewBox(10, nil, false),
	}
	out, _ := RemoveLegalBreaks(list, 100)
	tu.AssertEqual(t, out[1].IsForcedBreak(), true)
}

func TestRemoveLegalBreaksGlue(t *testing.T) {
	list := []Element{
		NewBox(10, nil, false),
		NewGlue(5, 0, 0, nil),
		NewBox(10, nil, false),
	}
	out, complete := RemoveLegalBreaks(list, 100)
	tu.AssertEqual(t, complete, true)
	tu.AssertEqual(t, len(out), 4)
	tu.AssertEqual(t, out[1].IsPenalty(), true)
	tu.AssertEqual(t, PenaltyValueOf(out[1]), Infinite)
	tu.AssertEqual(t, out[2].IsGlue(), true)
}
