package properties

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Infinite is the penalty value meaning "never break here";
// its opposite means "always break here".
const Infinite = 1000

// BreakClass is the context of a break: it is used both for forced
// breaks (break-before, break-after) and for the context of keeps.
type BreakClass uint8

const (
	BreakAuto BreakClass = iota
	BreakLine
	BreakColumn
	BreakPage
	BreakEvenPage
	BreakOddPage
)

func (bc BreakClass) String() string {
	switch bc {
	case BreakAuto:
		return "auto"
	case BreakLine:
		return "line"
	case BreakColumn:
		return "column"
	case BreakPage:
		return "page"
	case BreakEvenPage:
		return "even-page"
	case BreakOddPage:
		return "odd-page"
	default:
		return fmt.Sprintf("<break class %d>", uint8(bc))
	}
}

func (bc BreakClass) priority() int {
	switch bc {
	case BreakColumn:
		return 1
	case BreakPage:
		return 2
	case BreakEvenPage, BreakOddPage:
		return 3
	default:
		return 0
	}
}

// CompareBreakClasses returns the break class with the highest
// priority : auto < column < page < even-page = odd-page.
// For equal priorities, the first one wins.
func CompareBreakClasses(break1, break2 BreakClass) BreakClass {
	if break1.priority() < break2.priority() {
		return break2
	}
	return break1
}

// ParseBreak parses a break-before or break-after value.
// CSS "page-break-*" values are also accepted.
func ParseBreak(s string) (BreakClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "avoid":
		return BreakAuto, nil
	case "column":
		return BreakColumn, nil
	case "page", "always", "left", "right":
		return BreakPage, nil
	case "even-page":
		return BreakEvenPage, nil
	case "odd-page":
		return BreakOddPage, nil
	}
	return BreakAuto, fmt.Errorf("invalid break value %q", s)
}

const (
	strengthAuto   = math.MinInt32
	strengthAlways = math.MaxInt32
)

// Keep is the strength and context of a keep-together,
// keep-with-next or keep-with-previous constraint.
type Keep struct {
	strength int
	context  BreakClass // BreakAuto, BreakLine, BreakColumn or BreakPage
}

var (
	KeepAuto   = Keep{strength: strengthAuto, context: BreakAuto}
	KeepAlways = Keep{strength: strengthAlways, context: BreakLine}
)

// NewKeep returns an integer keep with the given strength,
// applying within the given context (line, column or page).
func NewKeep(strength int, context BreakClass) Keep {
	return Keep{strength: strength, context: context}
}

func (k Keep) IsAuto() bool { return k.strength == strengthAuto }
func (k Keep) IsAlways() bool { return k.strength == strengthAlways }

func keepContextPriority(context BreakClass) int {
	switch context {
	case BreakLine:
		return 0
	case BreakColumn:
		return 1
	case BreakPage:
		return 2
	case BreakAuto:
		return 3
	default:
		panic(fmt.Sprintf("invalid keep context %s", context))
	}
}

// Compare returns the more restrictive of k and other :
// "always" wins first, then the keep with the narrowest context,
// then the strongest.
func (k Keep) Compare(other Keep) Keep {
	if k.strength == strengthAlways && k.strength > other.strength {
		return k
	} else if other.strength == strengthAlways && other.strength > k.strength {
		return other
	}
	pThis, pOther := keepContextPriority(k.context), keepContextPriority(other.context)
	if pThis == pOther {
		if k.strength >= other.strength {
			return k
		}
		return other
	}
	if pThis < pOther {
		return k
	}
	return other
}

// Penalty returns the Knuth penalty value representing the keep.
func (k Keep) Penalty() int {
	if k.IsAuto() {
		return 0
	} else if k.IsAlways() {
		return Infinite
	}
	return Infinite - 1
}

// Context returns the break class the keep applies to.
func (k Keep) Context() BreakClass { return k.context }

func (k Keep) String() string {
	var s string
	switch {
	case k.IsAuto():
		s = "auto"
	case k.IsAlways():
		s = "always"
	default:
		s = strconv.Itoa(k.strength)
	}
	return fmt.Sprintf("Keep[%s, %s]", s, k.context)
}

// ParseKeep parses a keep value, either a single component ("always",
// "auto", an integer) or a compound value of the form
// "within-line: always; within-page: 5".
// As for the shorthand, a single component sets every context, so that
// the narrowest non auto context (line, then column, then page) is kept.
func ParseKeep(s string) (Keep, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		return parseKeepComponent(s, BreakLine)
	}
	var components [3]string // page, column, line
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		name, value, _ := strings.Cut(part, ":")
		switch strings.TrimSpace(name) {
		case "within-page":
			components[0] = value
		case "within-column":
			components[1] = value
		case "within-line":
			components[2] = value
		default:
			return KeepAuto, fmt.Errorf("invalid keep component %q", name)
		}
	}
	out := KeepAuto
	for i, context := range [3]BreakClass{BreakPage, BreakColumn, BreakLine} {
		k, err := parseKeepComponent(components[i], context)
		if err != nil {
			return KeepAuto, err
		}
		if !k.IsAuto() {
			out = k
		}
	}
	return out, nil
}

func parseKeepComponent(s string, context BreakClass) (Keep, error) {
	switch s = strings.TrimSpace(s); s {
	case "", "auto":
		return KeepAuto, nil
	case "always", "avoid":
		return Keep{strength: strengthAlways, context: context}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return KeepAuto, fmt.Errorf("invalid keep value %q", s)
	}
	return Keep{strength: v, context: context}, nil
}
