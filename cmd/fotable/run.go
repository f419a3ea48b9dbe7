package main

import (
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/folayout/config"
	"github.com/benoitkugler/folayout/fo/events"
	"github.com/benoitkugler/folayout/fo/knuth"
	"github.com/benoitkugler/folayout/fo/layout"
	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	"github.com/benoitkugler/folayout/text"
	"github.com/benoitkugler/folayout/utils/testutils/tracer"
)

// job is one layout run
type job struct {
	out      io.Writer
	settings config.Settings
	refIPD   int
	tlm      *layout.TableLayoutManager
}

func prepare(p params, file string, out io.Writer) (*job, error) {
	cfg := config.Default()
	if p.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(p.configFile); err != nil {
			return nil, err
		}
	}
	settings, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	settings.Trace = settings.Trace || p.trace

	j := &job{out: out, settings: settings, refIPD: settings.PageWidth}
	if p.width != "" {
		l, err := pr.ParseLength(p.width, settings.FontSize)
		if err != nil {
			return nil, fmt.Errorf("invalid width: %w", err)
		}
		if l.IsAuto() {
			return nil, fmt.Errorf("invalid width %q", p.width)
		}
		j.refIPD = l.Resolve(settings.PageWidth)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bc := events.NewBroadcaster(events.LogListener)
	table, err := tree.ParseWithFontSize(f, settings.FontSize, bc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	settings.Apply(table)

	measurer, err := text.LoadMeasurer(settings.FontFile)
	if err != nil {
		return nil, err
	}
	j.tlm, err = layout.NewTableLayoutManager(table, measurer, bc)
	if err != nil {
		return nil, err
	}
	if settings.Trace {
		tr := tracer.NewWriterTracer(out)
		j.tlm.Tracer = &tr
	}
	return j, nil
}

func (j *job) run(withPages bool) {
	ctx := layout.NewLayoutContext(j.refIPD)
	ctx.StackLimitBP = j.settings.PageHeight
	elements := j.tlm.GetNextKnuthElements(ctx)

	j.printColumns()
	if !withPages {
		return
	}
	pages := j.tlm.Paginate(elements, j.settings.PageHeight, ctx)
	for i, page := range pages {
		fmt.Fprintf(j.out, "\npage %d: elements [%d, %d[, height %s\n", i+1, page.Start, page.End, tracer.FormatMpt(page.UsedBPD))
		if page.Break >= 0 {
			fmt.Fprintf(j.out, "  break at %s\n", describeBreak(elements[page.Break]))
		}
		for _, area := range page.Areas {
			fmt.Fprintf(j.out, "  %s row %d col %d (%dx%d): x=%s y=%s w=%s h=%s",
				area.Part, area.Row, area.Column, area.ColSpan, area.RowSpan,
				tracer.FormatMpt(area.X), tracer.FormatMpt(area.Y), tracer.FormatMpt(area.Width), tracer.FormatMpt(area.Height))
			if area.Repeated {
				fmt.Fprint(j.out, " (repeated)")
			}
			fmt.Fprintln(j.out)
		}
	}
}

func describeBreak(el knuth.Element) string {
	switch el := el.(type) {
	case *knuth.BreakElement:
		return fmt.Sprintf("penalty %d (%s)", el.PenaltyValue, el.BreakClass)
	case *knuth.Penalty:
		return fmt.Sprintf("penalty %d", el.P)
	default:
		return "glue"
	}
}

func (j *job) printColumns() {
	tlm := j.tlm
	fmt.Fprintf(j.out, "table content width: %s\n", tracer.FormatMpt(tlm.ContentIPD()))
	columns := tlm.Columns().Columns()
	for i, width := range tlm.ResolvedColumnWidths() {
		fmt.Fprintf(j.out, "column %d: %s (%d mpt)", i+1, tracer.FormatMpt(width), width)
		if i < len(columns) {
			fmt.Fprintf(j.out, " %s", columns[i].ColumnWidth)
			if m, ok := tlm.PossibleWidths(columns[i]); ok && columns[i].IsAutoLayout() {
				fmt.Fprintf(j.out, " auto: %s", tracer.FormatMinOptMax(m))
			}
		}
		fmt.Fprintln(j.out)
	}
}
