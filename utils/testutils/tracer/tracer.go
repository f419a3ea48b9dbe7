// Package tracer provides functions to dump the element lists and
// column widths computed by the table layout, which may be used in
// debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benoitkugler/folayout/fo/knuth"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/utils"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewWriterTracer writes to the given output.
func NewWriterTracer(out io.Writer) Tracer { return Tracer{out: out} }

// FormatMpt formats a length in millipoints as points.
func FormatMpt(v int) string {
	return strconv.FormatFloat(utils.RoundPrec(float64(v)/pr.Pt, 3), 'g', -1, 64) + "pt"
}

func FormatMinOptMax(m pr.MinOptMax) string {
	return fmt.Sprintf("%s/%s/%s", FormatMpt(m.Min()), FormatMpt(m.Opt()), FormatMpt(m.Max()))
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

func (t Tracer) DumpElements(elements []knuth.Element, context string) {
	fmt.Fprintln(t.out, context)
	fmt.Fprint(t.out, knuth.Dump(elements))
	fmt.Fprintln(t.out)
}

// DumpColumns prints the width of each column, the first one having index 1.
func (t Tracer) DumpColumns(widths []int, context string) {
	fmt.Fprintln(t.out, context)
	for i, w := range widths {
		fmt.Fprintf(t.out, " col %d: %s\n", i+1, FormatMpt(w))
	}
	fmt.Fprintln(t.out)
}
