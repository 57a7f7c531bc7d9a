package tvtextviewer

import (
	"strconv"
	"strings"
	"testing"
)

// cellGeometry maps cols x rows onto the geometry type the way the
// terminal frontend does: layout units are cells, font size 1.
func cellGeometry(cols, rows int) Geometry {
	return Geometry{WidthPixels: cols, HeightPixels: rows, FontSizePixels: 1}
}

func newTestView(t *testing.T, opts Options) *View {
	t.Helper()
	v, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestViewTwoLinesUnwrapped(t *testing.T) {
	v := newTestView(t, Options{Text: "hello\nworld"})
	v.SetGeometry(cellGeometry(80, 2))

	rows := v.VisibleRows()
	if len(rows) != 2 {
		t.Fatalf("visible rows: got %d, want 2", len(rows))
	}
	if rows[0].Text != "hello" || rows[1].Text != "world" {
		t.Errorf("rows: got %q, %q", rows[0].Text, rows[1].Text)
	}
	if top, total := v.ScrollPosition(); top != 0 || total != 2 {
		t.Errorf("position: got (%d,%d), want (0,2)", top, total)
	}
}

func TestViewEmptyBuffer(t *testing.T) {
	v := newTestView(t, Options{Text: "", WrapLines: true})
	v.SetGeometry(cellGeometry(40, 10))

	if _, total := v.ScrollPosition(); total != 1 {
		t.Fatalf("total rows: got %d, want 1", total)
	}
	rows := v.VisibleRows()
	if len(rows) != 1 || rows[0].Text != "" {
		t.Fatalf("visible rows: got %v", rows)
	}

	for _, e := range []Event{ScrollDown, PageDown, End, ScrollUp, Home} {
		v.HandleEvent(e)
		if top, _ := v.ScrollPosition(); top != 0 {
			t.Fatalf("after %v: top %d, want 0", e, top)
		}
	}
}

func TestViewCancelDiscardsQueuedEvents(t *testing.T) {
	v := newTestView(t, Options{Text: manyLines(50)})
	v.SetGeometry(cellGeometry(80, 10))

	v.HandleEvents([]Event{ScrollDown, Cancel, ScrollDown, PageDown, End})

	d := v.ExitDecision()
	if d.Kind != ExitCancel || d.Code != 0 {
		t.Fatalf("decision: got %+v, want Cancel(0)", d)
	}
	// Only the one ScrollDown before Cancel moved the viewport.
	if top, _ := v.ScrollPosition(); top != 1 {
		t.Errorf("top: got %d, want 1", top)
	}

	// Once exited, nothing else is accepted.
	v.HandleEvents([]Event{ScrollDown, Confirm})
	if top, _ := v.ScrollPosition(); top != 1 {
		t.Errorf("top after exit: got %d, want 1", top)
	}
	if d := v.ExitDecision(); d.Kind != ExitCancel {
		t.Errorf("decision changed after exit: %+v", d)
	}
}

func TestViewConfirmOnlyWhenAvailable(t *testing.T) {
	v := newTestView(t, Options{Text: "x"})
	v.SetGeometry(cellGeometry(80, 5))

	v.HandleEvent(Confirm)
	if d := v.ExitDecision(); d.Kind != ExitNone {
		t.Fatalf("confirm without accept action: got %+v, want none", d)
	}

	v2 := newTestView(t, Options{
		Text:                   "x",
		ConfirmActionAvailable: true,
		ConfirmExitCode:        7,
	})
	v2.SetGeometry(cellGeometry(80, 5))
	v2.HandleEvent(Confirm)
	if d := v2.ExitDecision(); d.Kind != ExitConfirm || d.Code != 7 {
		t.Fatalf("confirm: got %+v, want Confirm(7)", d)
	}
}

func TestViewRebuildOnlyOnGeometryChange(t *testing.T) {
	v := newTestView(t, Options{Text: "aaaaaaaaaa", WrapLines: true})

	rebuilds := 0
	v.SetDirtyCallback(func() { rebuilds++ })

	g := cellGeometry(4, 5)
	v.SetGeometry(g)
	if rebuilds != 1 {
		t.Fatalf("first geometry: %d dirty calls, want 1", rebuilds)
	}

	// Same geometry every frame is free.
	for i := 0; i < 10; i++ {
		v.SetGeometry(g)
	}
	if rebuilds != 1 {
		t.Fatalf("unchanged geometry: %d dirty calls, want 1", rebuilds)
	}

	v.SetGeometry(cellGeometry(5, 5))
	if rebuilds != 2 {
		t.Fatalf("changed geometry: %d dirty calls, want 2", rebuilds)
	}
}

func TestViewWrapTenCharsWidthFour(t *testing.T) {
	v := newTestView(t, Options{Text: "aaaaaaaaaa", WrapLines: true, WrapPolicy: WrapRunes})
	v.SetGeometry(cellGeometry(4, 10))

	rows := v.VisibleRows()
	want := []string{"aaaa", "aaaa", "aa"}
	if len(rows) != len(want) {
		t.Fatalf("rows: got %d, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i].Text != want[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i].Text, want[i])
		}
		if rows[i].Line != 0 {
			t.Errorf("row %d line: got %d, want 0", i, rows[i].Line)
		}
	}
}

func TestViewInvalidGeometryFallsBackUnwrapped(t *testing.T) {
	v := newTestView(t, Options{Text: "aaaaaaaaaa\nbb", WrapLines: true})
	v.SetGeometry(Geometry{WidthPixels: 0, HeightPixels: 100, FontSizePixels: 16})

	// Refuses to wrap, one row per logical line, still navigable.
	if _, total := v.ScrollPosition(); total != 2 {
		t.Fatalf("total rows: got %d, want 2", total)
	}
	v.HandleEvent(Cancel)
	if d := v.ExitDecision(); d.Kind != ExitCancel {
		t.Fatalf("still exitable: got %+v", d)
	}
}

func TestViewResizePreservesPlace(t *testing.T) {
	v := newTestView(t, Options{Text: manyLines(100)})
	v.SetGeometry(cellGeometry(80, 10))
	v.HandleEvents([]Event{PageDown, PageDown}) // top = 18

	v.SetGeometry(cellGeometry(80, 20))
	if top, _ := v.ScrollPosition(); top != 18 {
		t.Fatalf("top after resize: got %d, want 18", top)
	}
	if v.VisibleRowCount() != 20 {
		t.Fatalf("visible: got %d, want 20", v.VisibleRowCount())
	}
}

func TestViewEndThenVisibleRows(t *testing.T) {
	v := newTestView(t, Options{Text: manyLines(30)})
	v.SetGeometry(cellGeometry(80, 8))
	v.HandleEvent(End)

	top, total := v.ScrollPosition()
	if top != 22 || total != 30 {
		t.Fatalf("position: got (%d,%d), want (22,30)", top, total)
	}
	rows := v.VisibleRows()
	if len(rows) != 8 {
		t.Fatalf("visible rows: got %d, want 8", len(rows))
	}
	if rows[7].Text != "line 29" {
		t.Errorf("last row: got %q, want %q", rows[7].Text, "line 29")
	}
}

func TestViewDirtyOnScrollNotOnIgnored(t *testing.T) {
	v := newTestView(t, Options{Text: manyLines(40)})
	v.SetGeometry(cellGeometry(80, 10))

	calls := 0
	v.SetDirtyCallback(func() { calls++ })

	v.HandleEvent(ScrollDown)
	if calls != 1 {
		t.Fatalf("after scroll: %d dirty calls, want 1", calls)
	}

	// Confirm without an accept action is ignored and changes nothing.
	v.HandleEvent(Confirm)
	if calls != 1 {
		t.Fatalf("after ignored confirm: %d dirty calls, want 1", calls)
	}

	// Scrolling up at the very top moves nothing.
	v.HandleEvent(Home)
	v.HandleEvent(ScrollUp)
	if calls != 2 {
		t.Fatalf("after home+noop scroll: %d dirty calls, want 2", calls)
	}
}

func TestViewSetTopRowClamps(t *testing.T) {
	v := newTestView(t, Options{Text: manyLines(50)})
	v.SetGeometry(cellGeometry(80, 10))

	v.SetTopRow(1000)
	if top, _ := v.ScrollPosition(); top != 40 {
		t.Fatalf("top: got %d, want 40", top)
	}
	v.SetTopRow(-5)
	if top, _ := v.ScrollPosition(); top != 0 {
		t.Fatalf("top: got %d, want 0", top)
	}
}

func manyLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line " + strconv.Itoa(i)
	}
	return strings.Join(lines, "\n")
}
