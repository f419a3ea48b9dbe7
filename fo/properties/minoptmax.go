package properties

import "fmt"

// MinOptMax is a range of acceptable lengths, with a preferred
// (optimum) value. It is a value type : all the updates return a new
// instance, and min <= opt <= max always holds.
type MinOptMax struct {
	min, opt, max int
}

// NewMinOptMax panics if the invariant min <= opt <= max is violated,
// which is a programming error.
func NewMinOptMax(min, opt, max int) MinOptMax {
	if min > opt || opt > max {
		panic(fmt.Sprintf("invalid MinOptMax: min=%d opt=%d max=%d", min, opt, max))
	}
	return MinOptMax{min: min, opt: opt, max: max}
}

// Fixed returns the range [v, v, v].
func Fixed(v int) MinOptMax { return MinOptMax{min: v, opt: v, max: v} }

func (m MinOptMax) Min() int { return m.min }
func (m MinOptMax) Opt() int { return m.opt }
func (m MinOptMax) Max() int { return m.max }

// IsStiff returns true if min == opt == max.
func (m MinOptMax) IsStiff() bool { return m.min == m.max }

// Plus shifts all the three values by delta.
func (m MinOptMax) Plus(delta int) MinOptMax {
	return MinOptMax{min: m.min + delta, opt: m.opt + delta, max: m.max + delta}
}

// Widen returns the componentwise maximum of m and the given values,
// so that the result is never narrower than m.
func (m MinOptMax) Widen(min, opt, max int) MinOptMax {
	return NewMinOptMax(maxInt(m.min, min), maxInt(m.opt, opt), maxInt(m.max, max))
}

// Accommodates returns true if the range already covers a content
// requiring at least min and preferring opt.
func (m MinOptMax) Accommodates(min, opt int) bool {
	return m.min >= min && m.opt >= opt && m.max >= opt
}

func (m MinOptMax) String() string {
	return fmt.Sprintf("MinOptMax[min=%d; opt=%d; max=%d]", m.min, m.opt, m.max)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
