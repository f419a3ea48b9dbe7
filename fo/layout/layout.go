// Package layout implements the layout of tables : the resolution of the
// column widths (fixed, percentage, proportional or automatic), the
// creation of the breakable element lists of the rows, and the
// generation of the cell areas once the page breaks are known.
//
// The entry point is [NewTableLayoutManager], whose GetNextKnuthElements
// method returns the elements to give to a page breaker, and AddAreas
// the geometry of the cells of one page.
package layout

import (
	"os"
	"path/filepath"

	"github.com/benoitkugler/folayout/utils/testutils"
	"github.com/benoitkugler/folayout/utils/testutils/tracer"
)

const (
	// if true, print debug information into Stdout
	debugMode = false
	traceMode = false
)

var (
	debugLogger testutils.IndentLogger // used only when debugMode is true
	traceLogger tracer.Tracer          // used only when traceMode is true
)

func init() {
	if traceMode {
		traceLogger = tracer.NewTracer(filepath.Join(os.TempDir(), "trace_go.txt"))
	}
}
