// Package properties defines the value types of the formatting objects
// properties used by table layout: lengths, column widths, keeps, breaks
// and writing modes.
//
// All lengths are expressed in millipoints (1/1000 pt).
package properties

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Units, in millipoints.
const (
	Pt = 1000
	Pc = 12 * Pt
	In = 72 * Pt
	Px = 750 // CSS reference pixel: 1px = 0.75pt
)

const (
	Cm = In / 2.54
	Mm = Cm / 10
)

// LengthKind tags the variants of a [Length].
type LengthKind uint8

const (
	LengthAuto LengthKind = iota
	LengthAbsolute
	LengthPercent
)

// Length is a computed length : either 'auto', an absolute
// value in millipoints, or a percentage of a reference length.
type Length struct {
	Kind LengthKind
	// millipoints for LengthAbsolute, percentage (0-100) for LengthPercent
	Value float64
}

var (
	AutoLength = Length{Kind: LengthAuto}
	ZeroLength = Length{Kind: LengthAbsolute}
)

// Mpt returns an absolute length of v millipoints.
func Mpt(v int) Length { return Length{Kind: LengthAbsolute, Value: float64(v)} }

// Percent returns the length v% of its reference.
func Percent(v float64) Length { return Length{Kind: LengthPercent, Value: v} }

func (l Length) IsAuto() bool { return l.Kind == LengthAuto }

// Resolve returns the used value of l in millipoints, using
// base to resolve percentages. 'auto' resolves to 0.
func (l Length) Resolve(base int) int {
	switch l.Kind {
	case LengthAbsolute:
		return int(l.Value)
	case LengthPercent:
		return int(l.Value * float64(base) / 100)
	default:
		return 0
	}
}

func (l Length) String() string {
	switch l.Kind {
	case LengthAbsolute:
		return fmt.Sprintf("%gmpt", l.Value)
	case LengthPercent:
		return fmt.Sprintf("%g%%", l.Value)
	default:
		return "auto"
	}
}

var unitFactors = map[string]float64{
	"mpt": 1,
	"pt":  Pt,
	"pc":  Pc,
	"in":  In,
	"cm":  Cm,
	"mm":  Mm,
	"px":  Px,
}

// ParseLength parses a length such as "12pt", "2.5cm", "30%" or "auto".
// Unitless numbers are read as pixels, as HTML attributes do.
// Relative font units (em) are resolved against fontSize (in millipoints).
func ParseLength(s string, fontSize int) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "auto":
		return AutoLength, nil
	case strings.HasSuffix(s, "%"):
		v, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid percentage %q", s)
		}
		return Percent(v), nil
	case strings.HasSuffix(s, "em"):
		v, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-2]), 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid length %q", s)
		}
		return Length{Kind: LengthAbsolute, Value: math.Round(v * float64(fontSize))}, nil
	}
	i := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' })
	number, unit := s, "px"
	if i != -1 {
		number, unit = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i:])
	}
	factor, ok := unitFactors[unit]
	if !ok {
		return Length{}, fmt.Errorf("unknown unit %q in length %q", unit, s)
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	return Length{Kind: LengthAbsolute, Value: math.Round(v * factor)}, nil
}
