package events

import (
	"strings"
	"testing"

	tu "github.com/benoitkugler/folayout/utils/testutils"
)

func TestBroadcaster(t *testing.T) {
	var rec1, rec2 Recorder
	b := NewBroadcaster(&rec1)
	b.Subscribe(&rec2)
	b.Broadcast(NoColumnsToResizeEvent(2, 3))
	b.Broadcast(ColumnsInAutoTableTooWideEvent(5000, 4000))

	tu.AssertEqual(t, rec1.Kinds(), []Kind{NoColumnsToResize, ColumnsInAutoTableTooWide})
	tu.AssertEqual(t, rec2.Kinds(), rec1.Kinds())
	tu.AssertEqual(t, rec1.Events[1].Params["shortfall"], 1000)
}

func TestDefaultLogging(t *testing.T) {
	capture := tu.CaptureLogs()
	var b *Broadcaster
	b.Broadcast(TooFewColumnsEvent(4, 2, false))
	NewBroadcaster().Broadcast(NoSpaceForProportionalColumnsEvent(10, 5))
	logs := capture.Logs()
	tu.AssertEqual(t, len(logs), 2)
	if !strings.Contains(logs[0], "too-few-columns") || !strings.Contains(logs[0], "column-width") {
		t.Fatalf("unexpected log %s", logs[0])
	}
	if !strings.Contains(logs[1], "No space remaining") {
		t.Fatalf("unexpected log %s", logs[1])
	}
}
