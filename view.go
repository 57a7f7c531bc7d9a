package tvtextviewer

import "sync"

// Geometry is the display geometry a frontend reports: usable drawing
// area and font size, all in the frontend's layout units (pixels for the
// GUI widgets, cells with FontSizePixels=1 for the terminal).
type Geometry struct {
	WidthPixels    int
	HeightPixels   int
	FontSizePixels int
}

// valid reports whether the geometry can drive a wrap. Non-positive
// dimensions are InvalidGeometry: the view falls back to the unwrapped
// layout rather than failing.
func (g Geometry) valid() bool {
	return g.WidthPixels > 0 && g.HeightPixels > 0 && g.FontSizePixels > 0
}

// Options configures a View. The zero value of every field is usable;
// New fills in defaults.
type Options struct {
	// Text is the decoded source text. Escape decoding for inline
	// messages (DecodeEscapes) happens before this point.
	Text string

	// WrapLines enables reflowing long lines to the display width.
	WrapLines bool

	// WrapPolicy selects word or character boundaries. Default WrapWords.
	WrapPolicy WrapPolicy

	// ConfirmActionAvailable offers the explicit accept action. When
	// false, Confirm events are ignored entirely.
	ConfirmActionAvailable bool

	// CancelExitCode is reported when the session ends with Cancel.
	// Default 0.
	CancelExitCode int

	// ConfirmExitCode is reported when the session ends with Confirm.
	// Default 1.
	ConfirmExitCode int

	// Measure resolves glyph advance widths. Nil means every rune is one
	// unit wide (monospace cells).
	Measure MeasureFunc

	// FallbackGlyphWidth substitutes for glyphs Measure cannot resolve.
	// Default 1.
	FallbackGlyphWidth int
}

// VisibleRow is one row of the current frame, ready to draw.
type VisibleRow struct {
	Text         string
	Line         int  // logical line number, for diagnostics
	Continuation bool // true for wrapped continuation rows
}

// View ties the buffer, wrapper, viewport and navigation controller into
// the per-frame API a frontend drives: report geometry, hand over the
// frame's drained events, read back the visible rows.
//
// A View is designed for a single frame loop. All methods are safe for
// concurrent use anyway, since GUI frontends receive input on toolkit
// threads.
type View struct {
	mu sync.RWMutex

	buf       *Buffer
	wrapLines bool
	policy    WrapPolicy
	measure   MeasureFunc
	fallback  int

	geom     Geometry
	haveGeom bool
	rows     RowIndex
	vp       Viewport
	nav      navigationController

	onDirty func()
}

// New creates a View over opts.Text. The initial layout is unwrapped
// with a single visible row; the first SetGeometry call establishes the
// real layout.
func New(opts Options) (*View, error) {
	if opts.ConfirmExitCode == 0 {
		opts.ConfirmExitCode = 1
	}
	if opts.FallbackGlyphWidth < 1 {
		opts.FallbackGlyphWidth = 1
	}
	measure := opts.Measure
	if measure == nil {
		measure = func(rune) int { return 1 }
	}

	v := &View{
		buf:       NewBuffer(opts.Text),
		wrapLines: opts.WrapLines,
		policy:    opts.WrapPolicy,
		measure:   measure,
		fallback:  opts.FallbackGlyphWidth,
	}
	v.rows = UnwrappedRows(v.buf)
	v.vp = Viewport{VisibleRowCount: 1}.clamp(len(v.rows))
	v.nav = navigationController{
		confirmAvailable: opts.ConfirmActionAvailable,
		cancelCode:       opts.CancelExitCode,
		confirmCode:      opts.ConfirmExitCode,
	}
	return v, nil
}

// SetDirtyCallback registers a function invoked whenever the visible
// output may have changed (scroll movement or a layout rebuild).
// Frontends use it to schedule a redraw; it is called without the view's
// lock held, so the callback may call back into the View.
func (v *View) SetDirtyCallback(fn func()) {
	v.mu.Lock()
	v.onDirty = fn
	v.mu.Unlock()
}

// SetGeometry reports the current display geometry. The row index is
// rebuilt only when the geometry actually differs from the previous one;
// calling this every frame with an unchanged geometry is free. An
// invalid geometry (any non-positive dimension) degrades to the
// unwrapped layout with one visible row instead of failing, so the
// viewer always stays navigable and exitable.
func (v *View) SetGeometry(g Geometry) {
	v.mu.Lock()
	if v.haveGeom && g == v.geom {
		v.mu.Unlock()
		return
	}
	v.geom = g
	v.haveGeom = true

	if v.wrapLines && g.valid() {
		v.rows = WrapRows(v.buf, g.WidthPixels, v.measure, v.policy, v.fallback)
	} else {
		v.rows = UnwrappedRows(v.buf)
	}

	visible := 1
	if g.valid() {
		visible = g.HeightPixels / g.FontSizePixels
		if visible < 1 {
			visible = 1
		}
	}
	v.vp = v.vp.Resize(visible, len(v.rows))
	dirty := v.onDirty
	v.mu.Unlock()

	if dirty != nil {
		dirty()
	}
}

// HandleEvent processes a single navigation event.
func (v *View) HandleEvent(e Event) {
	v.HandleEvents([]Event{e})
}

// HandleEvents processes one frame's drained events in arrival order.
// Scroll-family events move the viewport immediately. The first Confirm
// or Cancel sets the exit decision and discards the remaining events of
// the frame; after that, the view accepts no further input.
func (v *View) HandleEvents(events []Event) {
	v.mu.Lock()
	changed := false
	for _, e := range events {
		vp, moved := v.nav.apply(e, v.vp, len(v.rows))
		if moved && vp != v.vp {
			v.vp = vp
			changed = true
		}
		if v.nav.exited() {
			changed = true
			break
		}
	}
	dirty := v.onDirty
	v.mu.Unlock()

	if changed && dirty != nil {
		dirty()
	}
}

// VisibleRows returns the rows of the current frame, exactly
// min(visibleRowCount, totalRows-topRow) of them, in order.
func (v *View) VisibleRows() []VisibleRow {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n := v.vp.VisibleCount(len(v.rows))
	out := make([]VisibleRow, n)
	for i := 0; i < n; i++ {
		r := v.rows[v.vp.TopRow+i]
		out[i] = VisibleRow{
			Text:         v.buf.RowText(r),
			Line:         r.Line,
			Continuation: r.Continuation,
		}
	}
	return out
}

// ScrollPosition returns the top row and total row count, for scrollbar
// indicators.
func (v *View) ScrollPosition() (topRow, totalRows int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vp.TopRow, len(v.rows)
}

// VisibleRowCount returns how many rows fit the current geometry.
func (v *View) VisibleRowCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vp.VisibleRowCount
}

// SetTopRow scrolls directly to a row, clamped. Used by scrollbar
// frontends where the user drags an absolute position.
func (v *View) SetTopRow(row int) {
	v.mu.Lock()
	old := v.vp.TopRow
	v.vp.TopRow = row
	v.vp = v.vp.clamp(len(v.rows))
	changed := v.vp.TopRow != old
	dirty := v.onDirty
	v.mu.Unlock()

	if changed && dirty != nil {
		dirty()
	}
}

// ExitDecision returns the session outcome; Kind is ExitNone while the
// session is still viewing. Host loops poll this once per frame.
func (v *View) ExitDecision() ExitDecision {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.nav.decision
}

// Buffer returns the underlying line-indexed buffer.
func (v *View) Buffer() *Buffer {
	return v.buf
}
