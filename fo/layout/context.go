package layout

import (
	"fmt"

	pr "github.com/benoitkugler/folayout/fo/properties"
)

// LayoutContext carries the constraints given by a parent layout manager
// to its children, and the pending keeps and breaks they publish back.
type LayoutContext struct {
	// RefIPD is the reference inline-progression-dimension (available width).
	RefIPD int
	// StackLimitBP is the available block-progression-dimension.
	StackLimitBP int

	// AutoLayoutDeterminationMode is set during the pre-pass measuring
	// the content of auto tables. Nothing must be committed in this mode.
	AutoLayoutDeterminationMode bool
	// ChildOfAutoLayoutElement is set when an ancestor uses the automatic
	// table layout, and thus needs the authentic width requirements.
	ChildOfAutoLayoutElement bool

	KeepWithNextPending     pr.Keep
	KeepWithPreviousPending pr.Keep
	BreakBefore             pr.BreakClass
	BreakAfter              pr.BreakClass
}

// NewLayoutContext returns a context with the given available width.
func NewLayoutContext(refIPD int) *LayoutContext {
	return &LayoutContext{
		RefIPD:                  refIPD,
		KeepWithNextPending:     pr.KeepAuto,
		KeepWithPreviousPending: pr.KeepAuto,
	}
}

// OffspringOf returns a new context for a child, inheriting the
// dimensions and the auto layout flags, but not the pending keeps.
func OffspringOf(parent *LayoutContext) *LayoutContext {
	out := NewLayoutContext(parent.RefIPD)
	out.StackLimitBP = parent.StackLimitBP
	out.AutoLayoutDeterminationMode = parent.AutoLayoutDeterminationMode
	out.ChildOfAutoLayoutElement = parent.ChildOfAutoLayoutElement
	return out
}

func (lc *LayoutContext) UpdateKeepWithNextPending(k pr.Keep) {
	lc.KeepWithNextPending = lc.KeepWithNextPending.Compare(k)
}

func (lc *LayoutContext) UpdateKeepWithPreviousPending(k pr.Keep) {
	lc.KeepWithPreviousPending = lc.KeepWithPreviousPending.Compare(k)
}

func (lc *LayoutContext) ClearKeepWithNextPending() { lc.KeepWithNextPending = pr.KeepAuto }

func (lc *LayoutContext) ClearKeepWithPreviousPending() { lc.KeepWithPreviousPending = pr.KeepAuto }

func (lc *LayoutContext) ClearKeepsPending() {
	lc.ClearKeepWithNextPending()
	lc.ClearKeepWithPreviousPending()
}

func (lc *LayoutContext) String() string {
	return fmt.Sprintf("LayoutContext{refIPD=%d, stackLimit=%d, determination=%v, childOfAuto=%v, keepNext=%s, keepPrev=%s, breakBefore=%s, breakAfter=%s}",
		lc.RefIPD, lc.StackLimitBP, lc.AutoLayoutDeterminationMode, lc.ChildOfAutoLayoutElement,
		lc.KeepWithNextPending, lc.KeepWithPreviousPending, lc.BreakBefore, lc.BreakAfter)
}
