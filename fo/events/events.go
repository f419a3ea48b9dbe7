// Package events implements the diagnostics channel of the layout:
// non fatal conditions are reported as typed events instead of errors,
// and the layout always proceeds with a best-effort fallback.
package events

import (
	"fmt"

	"github.com/benoitkugler/folayout/logger"
)

// Kind identifies the condition reported by an [Event].
type Kind uint8

const (
	// TooFewColumns : a cell references a column beyond the declared ones;
	// the last declared column is reused.
	TooFewColumns Kind = iota + 1
	// NoSpaceForProportionalColumns : the absolute widths already fill
	// the table, proportional columns get a zero width.
	NoSpaceForProportionalColumns
	// ColumnsInAutoTableTooWide : even the minimal widths of the columns of
	// an auto table overflow the available width.
	ColumnsInAutoTableTooWide
	// NoColumnsToResize : a spanning cell needs more space but only spans
	// static columns.
	NoColumnsToResize
	// IPDExceedsAvailable : the specified table width is larger than
	// the available reference width.
	IPDExceedsAvailable
	// InvalidProperty : a property value could not be parsed; its
	// initial value is used instead.
	InvalidProperty
)

func (k Kind) String() string {
	switch k {
	case TooFewColumns:
		return "too-few-columns"
	case NoSpaceForProportionalColumns:
		return "no-space-for-proportional-columns"
	case ColumnsInAutoTableTooWide:
		return "columns-in-auto-table-too-wide"
	case NoColumnsToResize:
		return "no-columns-to-resize"
	case IPDExceedsAvailable:
		return "ipd-exceeds-available"
	case InvalidProperty:
		return "invalid-property"
	default:
		return fmt.Sprintf("<event %d>", uint8(k))
	}
}

// Event is one diagnostic. Numeric parameters (widths in millipoints,
// column indexes) are kept in Params so that listeners may inspect
// them without parsing the message.
type Event struct {
	Kind    Kind
	Message string
	Params  map[string]int
}

func (e Event) String() string { return fmt.Sprintf("[%s] %s", e.Kind, e.Message) }

// Listener receives the events emitted during layout.
type Listener interface {
	Process(Event)
}

// ListenerFunc adapts a function to the [Listener] interface.
type ListenerFunc func(Event)

func (f ListenerFunc) Process(e Event) { f(e) }

// LogListener writes the events to [logger.WarningLogger].
var LogListener = ListenerFunc(func(e Event) { logger.WarningLogger.Println(e) })

// Broadcaster dispatches events to its listeners.
// Its zero value logs the events with [LogListener].
type Broadcaster struct {
	listeners []Listener
}

// NewBroadcaster returns a broadcaster sending events to the given listeners.
// Passing no listener is valid : the events are then logged.
func NewBroadcaster(listeners ...Listener) *Broadcaster {
	return &Broadcaster{listeners: listeners}
}

// Subscribe adds a listener.
func (b *Broadcaster) Subscribe(l Listener) { b.listeners = append(b.listeners, l) }

// Broadcast sends e to the listeners. A nil broadcaster logs the event.
func (b *Broadcaster) Broadcast(e Event) {
	if b == nil || len(b.listeners) == 0 {
		LogListener.Process(e)
		return
	}
	for _, l := range b.listeners {
		l.Process(e)
	}
}

// Recorder is a listener storing all the events, useful for tests
// and for reporting.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Process(e Event) { r.Events = append(r.Events, e) }

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Kind
	}
	return out
}

// -------------------------- event constructors --------------------------

func TooFewColumnsEvent(accessed, defined int, autoLayout bool) Event {
	msg := fmt.Sprintf("There are fewer table-columns than are needed. Column %d was accessed, but only %d columns have been defined. The last defined column will be reused.",
		accessed, defined)
	if !autoLayout {
		msg += " Please note that the 'column-width' property must be specified for every column, unless the automatic table layout is used."
	}
	return Event{
		Kind: TooFewColumns, Message: msg,
		Params: map[string]int{"accessed": accessed, "defined": defined},
	}
}

func NoSpaceForProportionalColumnsEvent(sumCols, available int) Event {
	return Event{
		Kind:    NoSpaceForProportionalColumns,
		Message: "No space remaining to distribute over columns.",
		Params:  map[string]int{"sum": sumCols, "available": available},
	}
}

func ColumnsInAutoTableTooWideEvent(minSum, available int) Event {
	return Event{
		Kind: ColumnsInAutoTableTooWide,
		Message: fmt.Sprintf("The minimal width required for the auto-layout of a table's columns is bigger than the available space (%dmpt > %dmpt). Part of the table may not be visible (shortfall: %dmpt).",
			minSum, available, minSum-available),
		Params: map[string]int{"min": minSum, "available": available, "shortfall": minSum - available},
	}
}

func NoColumnsToResizeEvent(column, span int) Event {
	return Event{
		Kind: NoColumnsToResize,
		Message: fmt.Sprintf("No columns to resize to fit a table-cell (column %d) spanning %d columns, expect overflows",
			column, span),
		Params: map[string]int{"column": column, "span": span},
	}
}

func IPDExceedsAvailableEvent(ipd, available int) Event {
	return Event{
		Kind:    IPDExceedsAvailable,
		Message: fmt.Sprintf("Allocated IPD (%dmpt) exceeds available reference IPD (%dmpt)", ipd, available),
		Params:  map[string]int{"ipd": ipd, "available": available},
	}
}

func InvalidPropertyEvent(property, value string, err error) Event {
	return Event{
		Kind:    InvalidProperty,
		Message: fmt.Sprintf("Ignored %s: %s (%s)", property, value, err),
	}
}
