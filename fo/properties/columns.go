package properties

import (
	"fmt"
	"strconv"
	"strings"
)

// WidthKind tags the variants of a [ColumnWidth].
type WidthKind uint8

const (
	// Absolute is a fixed length, in millipoints.
	Absolute WidthKind = iota
	// Percentage is a percentage of the table content width.
	Percentage
	// ProportionalUnits is a share of the width left after
	// absolute and percentage columns, as set by proportional-column-width().
	ProportionalUnits
)

// ColumnWidth is the specified width of a table column.
type ColumnWidth struct {
	Kind WidthKind
	// millipoints, percentage (0-100) or number of units,
	// depending on Kind
	Value float64
}

// DefaultColumnWidth is used by columns without explicit width,
// which is proportional-column-width(1).
var DefaultColumnWidth = ColumnWidth{Kind: ProportionalUnits, Value: 1}

func AbsoluteWidth(mpt int) ColumnWidth { return ColumnWidth{Kind: Absolute, Value: float64(mpt)} }

func PercentageWidth(p float64) ColumnWidth { return ColumnWidth{Kind: Percentage, Value: p} }

func ProportionalWidth(units float64) ColumnWidth {
	return ColumnWidth{Kind: ProportionalUnits, Value: units}
}

// TableUnits returns the number of proportional units of the width,
// which is zero for absolute and percentage widths.
func (cw ColumnWidth) TableUnits() float64 {
	if cw.Kind == ProportionalUnits {
		return cw.Value
	}
	return 0
}

// Resolve returns the width in millipoints, given the table content
// width (for percentages) and the current value of a proportional unit.
func (cw ColumnWidth) Resolve(contentIPD int, tableUnit float64) int {
	switch cw.Kind {
	case Absolute:
		return int(cw.Value)
	case Percentage:
		return int(cw.Value * float64(contentIPD) / 100)
	case ProportionalUnits:
		return int(cw.Value * tableUnit)
	default:
		panic(fmt.Sprintf("invalid column width kind %d", cw.Kind))
	}
}

func (cw ColumnWidth) String() string {
	switch cw.Kind {
	case Absolute:
		return fmt.Sprintf("%gmpt", cw.Value)
	case Percentage:
		return fmt.Sprintf("%g%%", cw.Value)
	default:
		return fmt.Sprintf("proportional-column-width(%g)", cw.Value)
	}
}

// ParseColumnWidth parses the value of a column-width property (or of
// an HTML width attribute on <col>). It returns ok = false for 'auto'
// and empty values.
// Besides plain lengths, "proportional-column-width(n)" and the
// HTML relative form "n*" are accepted.
func ParseColumnWidth(s string, fontSize int) (cw ColumnWidth, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return ColumnWidth{}, false, nil
	}
	if strings.HasPrefix(s, "proportional-column-width(") && strings.HasSuffix(s, ")") {
		arg := strings.TrimSuffix(strings.TrimPrefix(s, "proportional-column-width("), ")")
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil || v < 0 {
			return ColumnWidth{}, false, fmt.Errorf("invalid proportional-column-width argument %q", arg)
		}
		return ProportionalWidth(v), true, nil
	}
	if strings.HasSuffix(s, "*") {
		arg := strings.TrimSpace(strings.TrimSuffix(s, "*"))
		v := 1.
		if arg != "" {
			v, err = strconv.ParseFloat(arg, 64)
			if err != nil || v < 0 {
				return ColumnWidth{}, false, fmt.Errorf("invalid relative width %q", s)
			}
		}
		return ProportionalWidth(v), true, nil
	}
	l, err := ParseLength(s, fontSize)
	if err != nil {
		return ColumnWidth{}, false, err
	}
	switch l.Kind {
	case LengthPercent:
		return PercentageWidth(l.Value), true, nil
	case LengthAbsolute:
		if l.Value < 0 {
			return ColumnWidth{}, false, fmt.Errorf("negative column width %q", s)
		}
		return AbsoluteWidth(int(l.Value)), true, nil
	}
	return ColumnWidth{}, false, nil
}
