package properties

import (
	"fmt"
	"strings"
)

// Direction is the progression direction of the columns of a table.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// WritingMode is the value of the writing-mode property.
type WritingMode string

const (
	WritingModeLrTb WritingMode = "lr-tb"
	WritingModeRlTb WritingMode = "rl-tb"
	WritingModeTbRl WritingMode = "tb-rl"
	WritingModeTbLr WritingMode = "tb-lr"
	// WritingModeAuto means the direction is deduced from the content.
	WritingModeAuto WritingMode = "auto"
)

// ParseWritingMode accepts the XSL values and their short aliases
// ("lr", "rl", "tb"), as well as the HTML dir values "ltr", "rtl" and "auto".
func ParseWritingMode(s string) (WritingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lr-tb", "lr", "ltr", "horizontal-tb":
		return WritingModeLrTb, nil
	case "rl-tb", "rl", "rtl":
		return WritingModeRlTb, nil
	case "tb-rl", "tb", "vertical-rl":
		return WritingModeTbRl, nil
	case "tb-lr", "vertical-lr":
		return WritingModeTbLr, nil
	case "auto":
		return WritingModeAuto, nil
	}
	return WritingModeLrTb, fmt.Errorf("invalid writing-mode %q", s)
}

// ColumnProgression returns the direction in which the columns
// of a table are stacked.
// Vertical writing modes are not supported and laid out as lr-tb.
func (wm WritingMode) ColumnProgression() Direction {
	if wm == WritingModeRlTb {
		return RTL
	}
	return LTR
}
