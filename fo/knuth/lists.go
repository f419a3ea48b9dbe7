package knuth

import pr "github.com/benoitkugler/folayout/fo/properties"

// CalcContentLength returns the sum of the widths of the boxes
// and glues of the list. Penalties are ignored.
func CalcContentLength(elems []Element) int {
	length := 0
	for _, el := range elems {
		if el.IsBox() || el.IsGlue() {
			length += el.Width()
		}
	}
	return length
}

// StartsWithForcedBreak returns true if the first element is a forced break.
func StartsWithForcedBreak(elems []Element) bool {
	return len(elems) != 0 && elems[0].IsForcedBreak()
}

// EndsWithForcedBreak returns true if the last element is a forced break.
func EndsWithForcedBreak(elems []Element) bool {
	return len(elems) != 0 && elems[len(elems)-1].IsForcedBreak()
}

// inhibit returns an element equivalent to el, except that
// no break may happen at it. Forced breaks are left untouched:
// breaks requested by the author always win.
func inhibit(el Element) Element {
	switch el := el.(type) {
	case *Penalty:
		if el.P < Infinite && el.P != -Infinite {
			return NewPenalty(el.W, Infinite, el.Flagged, el.BreakClass, el.Pos)
		}
	case *BreakElement:
		if el.PenaltyValue < Infinite && el.PenaltyValue != -Infinite {
			return NewBreakElement(el.Pos, el.PenaltyWidth, Infinite, el.BreakClass)
		}
	}
	return el
}

// removeLegalBreaks walks the list in the given order (indices), turning
// each break opportunity into a break inhibitor, until the content
// walked through reaches constraint.
func removeLegalBreaks(elems []Element, constraint int, indices []int) ([]Element, bool) {
	out := append([]Element(nil), elems...)
	guardedGlues := map[int]bool{} // glues preceded by a box, needing an inhibitor
	length, complete := 0, true
	for _, i := range indices {
		el := out[i]
		switch {
		case el.IsGlue():
			length += el.Width()
			if i > 0 && out[i-1].IsBox() {
				guardedGlues[i] = true
			}
		case el.IsPenalty() || el.IsUnresolved():
			out[i] = inhibit(el)
		default:
			length += el.Width()
		}
		if length >= constraint {
			complete = false
			break
		}
	}
	if len(guardedGlues) == 0 {
		return out, complete
	}
	withInhibitors := make([]Element, 0, len(out)+len(guardedGlues))
	for i, el := range out {
		if guardedGlues[i] {
			withInhibitors = append(withInhibitors, NewPenalty(0, Infinite, false, pr.BreakAuto, nil))
		}
		withInhibitors = append(withInhibitors, el)
	}
	return withInhibitors, complete
}

// RemoveLegalBreaks removes the break possibilities at the start of
// the list, until the content length reaches constraint.
// The returned boolean is true if the whole list has been processed.
func RemoveLegalBreaks(elems []Element, constraint int) ([]Element, bool) {
	indices := make([]int, len(elems))
	for i := range indices {
		indices[i] = i
	}
	return removeLegalBreaks(elems, constraint, indices)
}

// RemoveLegalBreaksFromEnd is the same as [RemoveLegalBreaks], but
// starting from the end of the list.
func RemoveLegalBreaksFromEnd(elems []Element, constraint int) ([]Element, bool) {
	indices := make([]int, len(elems))
	for i := range indices {
		indices[i] = len(elems) - 1 - i
	}
	return removeLegalBreaks(elems, constraint, indices)
}
