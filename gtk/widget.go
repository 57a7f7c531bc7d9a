// Package tvtextviewergtk provides a GTK3 widget frontend for
// TvTextViewer, rendering the viewer with cairo inside a DrawingArea and
// translating GTK input events into the core's navigation events.
package tvtextviewergtk

import (
	"fmt"
	"sync"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	tvtextviewer "github.com/zcl226403/TvTextViewer"
)

// textPadding is the pixel inset around the text area.
const textPadding = 4

// barPadding is the vertical padding inside the title and status bars.
const barPadding = 4

// Widget is the viewer widget: a DrawingArea for the content plus a
// vertical scrollbar, packed in a Box.
type Widget struct {
	mu sync.Mutex

	view    *tvtextviewer.View
	options Options

	box         *gtk.Box
	drawingArea *gtk.DrawingArea
	scrollbar   *gtk.Scrollbar

	// Font metrics, refreshed on configure
	fontFamily string
	fontSize   int
	charWidth  int
	charHeight int
	charAscent int

	// Glyph advance cache for the wrap measure function; wrapping a
	// large buffer must not pay one cairo round trip per rune.
	widthCache  map[rune]int
	measureCtx  *cairo.Context
	measureSurf *cairo.Surface

	// Scrollbar feedback guard: updating the adjustment from the view
	// fires value-changed, which must not scroll the view again.
	syncingScrollbar bool

	onExit    func(tvtextviewer.ExitDecision)
	exitFired bool
}

// NewWidget creates the viewer widget over opts.Text.
func NewWidget(opts Options) (*Widget, error) {
	w := &Widget{
		options:    opts,
		fontFamily: opts.FontFamily,
		fontSize:   opts.FontSize,
		widthCache: make(map[rune]int, 256),
	}

	// Offscreen surface for glyph measurement; the widget's own cairo
	// context only exists inside draw handlers.
	w.measureSurf = cairo.CreateImageSurface(cairo.FORMAT_ARGB32, 64, 64)
	w.measureCtx = cairo.Create(w.measureSurf)
	w.updateFontMetrics()

	view, err := tvtextviewer.New(tvtextviewer.Options{
		Text:                   opts.Text,
		WrapLines:              opts.WrapLines,
		WrapPolicy:             opts.WrapPolicy,
		ConfirmActionAvailable: opts.YesButtonLabel != "",
		CancelExitCode:         opts.CancelExitCode,
		ConfirmExitCode:        opts.ConfirmExitCode,
		Measure:                w.measureRune,
		FallbackGlyphWidth:     w.charWidth,
	})
	if err != nil {
		return nil, err
	}
	w.view = view

	view.SetDirtyCallback(func() {
		glib.IdleAdd(func() {
			if w.drawingArea != nil {
				w.drawingArea.QueueDraw()
				w.updateScrollbar()
			}
		})
	})

	// Container (horizontal: drawing area + vertical scrollbar)
	w.box, err = gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	if err != nil {
		return nil, err
	}

	w.drawingArea, err = gtk.DrawingAreaNew()
	if err != nil {
		return nil, err
	}

	w.drawingArea.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.SCROLL_MASK | gdk.KEY_PRESS_MASK))
	w.drawingArea.SetCanFocus(true)

	w.drawingArea.Connect("draw", w.onDraw)
	w.drawingArea.Connect("key-press-event", w.onKeyPress)
	w.drawingArea.Connect("scroll-event", w.onScroll)
	w.drawingArea.Connect("configure-event", w.onConfigure)
	w.drawingArea.Connect("button-press-event", w.onButtonPress)

	adjustment, _ := gtk.AdjustmentNew(0, 0, 1, 1, 10, 1)
	w.scrollbar, err = gtk.ScrollbarNew(gtk.ORIENTATION_VERTICAL, adjustment)
	if err != nil {
		return nil, err
	}
	w.scrollbar.Connect("value-changed", w.onScrollbarChanged)

	w.box.PackStart(w.drawingArea, true, true, 0)
	w.box.PackStart(w.scrollbar, false, false, 0)

	w.drawingArea.SetSizeRequest(100, 50)

	return w, nil
}

// Box returns the container widget.
func (w *Widget) Box() *gtk.Box {
	return w.box
}

// DrawingArea returns the drawing area widget.
func (w *Widget) DrawingArea() *gtk.DrawingArea {
	return w.drawingArea
}

// View returns the core view.
func (w *Widget) View() *tvtextviewer.View {
	return w.view
}

// SetOnExit registers a callback fired once when the user confirms or
// dismisses the viewer.
func (w *Widget) SetOnExit(fn func(tvtextviewer.ExitDecision)) {
	w.mu.Lock()
	w.onExit = fn
	w.mu.Unlock()
}

// SetTitle changes the title bar text.
func (w *Widget) SetTitle(title string) {
	w.mu.Lock()
	w.options.Title = title
	w.mu.Unlock()
	w.drawingArea.QueueDraw()
}

// updateFontMetrics measures the font on the offscreen context.
func (w *Widget) updateFontMetrics() {
	cr := w.measureCtx
	cr.SelectFontFace(w.fontFamily, cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	cr.SetFontSize(float64(w.fontSize))

	ext := cr.TextExtents("M")
	w.charWidth = int(ext.XAdvance + 0.5)
	w.charAscent = int(-ext.YBearing + 0.5)
	w.charHeight = w.fontSize * 12 / 10

	// Ensure minimum values
	if w.charWidth < 1 {
		w.charWidth = w.fontSize * 6 / 10
		if w.charWidth < 1 {
			w.charWidth = 10
		}
	}
	if w.charAscent < 1 {
		w.charAscent = w.fontSize * 8 / 10
	}
	if w.charHeight < 1 {
		w.charHeight = 20
	}

	// Metrics changed, cached advances are stale.
	w.widthCache = make(map[rune]int, 256)
}

// measureRune reports the pixel advance of one glyph, cached. A zero
// advance (unresolvable glyph) is reported as-is so the core applies
// its fallback width.
func (w *Widget) measureRune(r rune) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if adv, ok := w.widthCache[r]; ok {
		return adv
	}
	ext := w.measureCtx.TextExtents(string(r))
	adv := int(ext.XAdvance + 0.5)
	w.widthCache[r] = adv
	return adv
}

// barHeight returns the pixel height of the title and status bars.
func (w *Widget) barHeight() int {
	return w.charHeight + 2*barPadding
}

func (w *Widget) onConfigure(da *gtk.DrawingArea, ev *gdk.Event) bool {
	alloc := da.GetAllocation()
	textH := alloc.GetHeight() - 2*w.barHeight()
	if textH < 1 {
		textH = 1
	}
	w.view.SetGeometry(tvtextviewer.Geometry{
		WidthPixels:    alloc.GetWidth() - 2*textPadding,
		HeightPixels:   textH,
		FontSizePixels: w.charHeight,
	})
	return false
}

func (w *Widget) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	w.mu.Lock()
	opts := w.options
	style := opts.Style
	charHeight := w.charHeight
	charAscent := w.charAscent
	w.mu.Unlock()

	alloc := da.GetAllocation()
	width := float64(alloc.GetWidth())
	height := float64(alloc.GetHeight())
	barH := float64(w.barHeight())

	cr.SelectFontFace(w.fontFamily, cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	cr.SetFontSize(float64(w.fontSize))

	// Background
	setSourceColor(cr, style.Background)
	cr.Paint()

	// Title bar
	setSourceColor(cr, style.TitleBar)
	cr.Rectangle(0, 0, width, barH)
	cr.Fill()
	setSourceColor(cr, style.TitleText)
	cr.MoveTo(textPadding, barPadding+float64(charAscent))
	cr.ShowText(opts.Title)

	// Text rows
	visible := w.view.VisibleRows()
	for i, row := range visible {
		rowTop := barH + float64(i*charHeight)
		if row.Continuation {
			// Continuation gutter tick
			setSourceColor(cr, style.ContinuationFg)
			cr.Rectangle(0, rowTop, 2, float64(charHeight))
			cr.Fill()
		}
		setSourceColor(cr, style.Text)
		cr.MoveTo(textPadding, rowTop+float64(charAscent))
		cr.ShowText(row.Text)
	}

	// Status bar
	top, total := w.view.ScrollPosition()
	bottom := top + len(visible)
	percent := 100
	if total > 0 {
		percent = bottom * 100 / total
	}
	actions := "Esc: Dismiss"
	if opts.YesButtonLabel != "" {
		actions = "Enter: " + opts.YesButtonLabel + "   " + actions
	}
	status := fmt.Sprintf("%d-%d/%d  %d%%   %s", top+1, bottom, total, percent, actions)

	setSourceColor(cr, style.StatusBar)
	cr.Rectangle(0, height-barH, width, barH)
	cr.Fill()
	setSourceColor(cr, style.StatusText)
	cr.MoveTo(textPadding, height-barH+barPadding+float64(charAscent))
	cr.ShowText(status)

	return false
}

func setSourceColor(cr *cairo.Context, c tvtextviewer.Color) {
	cr.SetSourceRGB(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0)
}

func (w *Widget) onKeyPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(ev)
	keyval := key.KeyVal()

	switch keyval {
	case gdk.KEY_Up, gdk.KEY_KP_Up:
		w.view.HandleEvent(tvtextviewer.ScrollUp)
	case gdk.KEY_Down, gdk.KEY_KP_Down:
		w.view.HandleEvent(tvtextviewer.ScrollDown)
	case gdk.KEY_Page_Up, gdk.KEY_KP_Page_Up:
		w.view.HandleEvent(tvtextviewer.PageUp)
	case gdk.KEY_Page_Down, gdk.KEY_KP_Page_Down:
		w.view.HandleEvent(tvtextviewer.PageDown)
	case gdk.KEY_Home, gdk.KEY_KP_Home:
		w.view.HandleEvent(tvtextviewer.Home)
	case gdk.KEY_End, gdk.KEY_KP_End:
		w.view.HandleEvent(tvtextviewer.End)
	case gdk.KEY_Return, gdk.KEY_KP_Enter:
		w.view.HandleEvent(tvtextviewer.Confirm)
	case gdk.KEY_Escape, gdk.KEY_q:
		w.view.HandleEvent(tvtextviewer.Cancel)
	default:
		return false
	}

	w.checkExit()
	return true
}

func (w *Widget) onScroll(da *gtk.DrawingArea, ev *gdk.Event) bool {
	scroll := gdk.EventScrollNewFromEvent(ev)

	// Three rows per wheel notch
	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		w.view.HandleEvents([]tvtextviewer.Event{
			tvtextviewer.ScrollUp, tvtextviewer.ScrollUp, tvtextviewer.ScrollUp,
		})
	case gdk.SCROLL_DOWN:
		w.view.HandleEvents([]tvtextviewer.Event{
			tvtextviewer.ScrollDown, tvtextviewer.ScrollDown, tvtextviewer.ScrollDown,
		})
	}
	return true
}

func (w *Widget) onButtonPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	w.drawingArea.GrabFocus()
	return false
}

func (w *Widget) onScrollbarChanged(sb *gtk.Scrollbar) {
	w.mu.Lock()
	syncing := w.syncingScrollbar
	w.mu.Unlock()
	if syncing {
		return
	}
	adj := sb.GetAdjustment()
	w.view.SetTopRow(int(adj.GetValue()))
}

func (w *Widget) updateScrollbar() {
	top, total := w.view.ScrollPosition()
	visible := w.view.VisibleRowCount()

	w.mu.Lock()
	w.syncingScrollbar = true
	w.mu.Unlock()

	adj := w.scrollbar.GetAdjustment()
	adj.SetLower(0)
	adj.SetUpper(float64(total))
	adj.SetPageSize(float64(visible))
	adj.SetValue(float64(top))

	w.mu.Lock()
	w.syncingScrollbar = false
	w.mu.Unlock()
}

// checkExit fires the exit callback once the session has a decision.
func (w *Widget) checkExit() {
	d := w.view.ExitDecision()
	if d.Kind == tvtextviewer.ExitNone {
		return
	}
	w.mu.Lock()
	fired := w.exitFired
	w.exitFired = true
	fn := w.onExit
	w.mu.Unlock()
	if fired || fn == nil {
		return
	}
	glib.IdleAdd(func() {
		fn(d)
	})
}
