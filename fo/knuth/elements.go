// Package knuth defines the box/glue/penalty element model consumed by
// the line and page breaking algorithms, and a few utilities working on
// element lists.
package knuth

import (
	"fmt"
	"strings"

	pr "github.com/benoitkugler/folayout/fo/properties"
)

// Infinite is the penalty value forbidding a break; -Infinite forces one.
const Infinite = pr.Infinite

// Position links an element back to the layout object which created it,
// so that areas may be generated once the breaks are known.
type Position interface {
	// Index is non negative for positions of actual content,
	// and -1 for auxiliary positions.
	Index() int
}

// Element is a box, a glue, a penalty or a break element.
type Element interface {
	// Width is the natural extent of the element, in millipoints.
	// It is the width of the content added if the break occurs
	// for penalties.
	Width() int
	Position() Position

	IsBox() bool
	IsGlue() bool
	// IsPenalty is false for [BreakElement]s, which are not resolved yet.
	IsPenalty() bool
	// IsForcedBreak is true for penalties with a value of -Infinite.
	IsForcedBreak() bool
	// IsUnresolved is true for elements whose meaning depends on
	// whether a break occurs nearby (space resolution).
	IsUnresolved() bool

	String() string
}

// Footnote is a footnote body whose citation lies in an element;
// its extent is reserved on the page holding the citation.
type Footnote struct {
	BPD int
}

// Box is a piece of content which can't be broken.
type Box struct {
	W         int
	Pos       Position
	Auxiliary bool
	// Footnotes cited in the box (block box)
	Footnotes []Footnote
}

func NewBox(width int, pos Position, auxiliary bool) *Box {
	return &Box{W: width, Pos: pos, Auxiliary: auxiliary}
}

func (b *Box) Width() int { return b.W }
func (b *Box) Position() Position { return b.Pos }
func (*Box) IsBox() bool { return true }
func (*Box) IsGlue() bool { return false }
func (*Box) IsPenalty() bool { return false }
func (*Box) IsForcedBreak() bool { return false }
func (*Box) IsUnresolved() bool { return false }
func (b *Box) String() string {
	if len(b.Footnotes) != 0 {
		return fmt.Sprintf("box w=%d footnotes=%d", b.W, len(b.Footnotes))
	}
	if b.Auxiliary {
		return fmt.Sprintf("box w=%d aux", b.W)
	}
	return fmt.Sprintf("box w=%d", b.W)
}

// Glue is a (possibly stretchable) space; a break may occur at a glue
// preceded by a box.
type Glue struct {
	W, Stretch, Shrink int
	Pos                Position
}

func NewGlue(width, stretch, shrink int, pos Position) *Glue {
	return &Glue{W: width, Stretch: stretch, Shrink: shrink, Pos: pos}
}

func (g *Glue) Width() int { return g.W }
func (g *Glue) Position() Position { return g.Pos }
func (*Glue) IsBox() bool { return false }
func (*Glue) IsGlue() bool { return true }
func (*Glue) IsPenalty() bool { return false }
func (*Glue) IsForcedBreak() bool { return false }
func (*Glue) IsUnresolved() bool { return false }
func (g *Glue) String() string {
	return fmt.Sprintf("glue w=%d +%d -%d", g.W, g.Stretch, g.Shrink)
}

// Penalty is a possible break, with a cost.
type Penalty struct {
	W          int
	P          int
	Flagged    bool
	BreakClass pr.BreakClass
	Pos        Position
}

func NewPenalty(width, penalty int, flagged bool, breakClass pr.BreakClass, pos Position) *Penalty {
	return &Penalty{W: width, P: penalty, Flagged: flagged, BreakClass: breakClass, Pos: pos}
}

func (p *Penalty) Width() int { return p.W }
func (p *Penalty) Position() Position { return p.Pos }
func (*Penalty) IsBox() bool { return false }
func (*Penalty) IsGlue() bool { return false }
func (*Penalty) IsPenalty() bool { return true }
func (p *Penalty) IsForcedBreak() bool { return p.P == -Infinite }
func (*Penalty) IsUnresolved() bool { return false }
func (p *Penalty) String() string {
	return fmt.Sprintf("penalty w=%d p=%s %s", p.W, penaltyString(p.P), p.BreakClass)
}

// BreakElement is a break possibility whose penalty is not yet final:
// it is adjusted once the keeps and breaks on both sides are known, and
// it is converted to a [Penalty] during space resolution.
type BreakElement struct {
	PenaltyValue int
	PenaltyWidth int
	BreakClass   pr.BreakClass
	Pos          Position
}

func NewBreakElement(pos Position, penaltyWidth, penaltyValue int, breakClass pr.BreakClass) *BreakElement {
	return &BreakElement{Pos: pos, PenaltyWidth: penaltyWidth, PenaltyValue: penaltyValue, BreakClass: breakClass}
}

func (b *BreakElement) Width() int { return b.PenaltyWidth }
func (b *BreakElement) Position() Position { return b.Pos }
func (*BreakElement) IsBox() bool { return false }
func (*BreakElement) IsGlue() bool { return false }
func (*BreakElement) IsPenalty() bool { return false }
func (b *BreakElement) IsForcedBreak() bool { return b.PenaltyValue == -Infinite }
func (*BreakElement) IsUnresolved() bool { return true }
func (b *BreakElement) String() string {
	return fmt.Sprintf("break w=%d p=%s %s", b.PenaltyWidth, penaltyString(b.PenaltyValue), b.BreakClass)
}

// PenaltyValueOf returns the penalty value of a penalty or break element,
// and 0 for the other elements.
func PenaltyValueOf(el Element) int {
	switch el := el.(type) {
	case *Penalty:
		return el.P
	case *BreakElement:
		return el.PenaltyValue
	default:
		return 0
	}
}

func penaltyString(p int) string {
	switch p {
	case Infinite:
		return "INF"
	case -Infinite:
		return "-INF"
	default:
		return fmt.Sprint(p)
	}
}

// Dump returns a readable representation of the list, one element per line.
func Dump(list []Element) string {
	var b strings.Builder
	for i, el := range list {
		fmt.Fprintf(&b, "%d: %s\n", i, el)
	}
	return b.String()
}
