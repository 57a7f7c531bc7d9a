// Package tvtextviewerqt provides a Qt widget frontend for TvTextViewer
// using the miqt bindings. The widget paints the viewer chrome and text
// with QPainter and translates Qt input events into the core's
// navigation events.
package tvtextviewerqt

import (
	"fmt"
	"sync"

	qt "github.com/mappu/miqt/qt"
	tvtextviewer "github.com/zcl226403/TvTextViewer"
)

// textPadding is the pixel inset around the text area.
const textPadding = 4

// barPadding is the vertical padding inside the title and status bars.
const barPadding = 4

// scrollbarWidth is the width reserved for the vertical scrollbar.
const scrollbarWidth = 12

// Widget is the viewer widget.
type Widget struct {
	mu sync.Mutex

	view    *tvtextviewer.View
	options Options

	widget    *qt.QWidget
	scrollbar *qt.QScrollBar

	font       *qt.QFont
	metrics    *qt.QFontMetrics
	charWidth  int
	charHeight int
	charAscent int

	// Update coalescing: the dirty callback may fire off the Qt main
	// thread, so it only sets a flag; the timer calls Update.
	updateTimer   *qt.QTimer
	updatePending bool

	scrollbarUpdating bool

	onExit    func(tvtextviewer.ExitDecision)
	exitFired bool
}

// NewWidget creates the viewer widget over opts.Text. Must be called
// after the QApplication exists.
func NewWidget(opts Options) (*Widget, error) {
	w := &Widget{
		widget:  qt.NewQWidget2(),
		options: opts,
	}

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

	// Coalesce redraws onto the Qt main thread (16ms ~ 60fps)
	w.updateTimer = qt.NewQTimer2(w.widget.QObject)
	w.updateTimer.OnTimeout(func() {
		if w.updatePending {
			w.updatePending = false
			w.widget.Update()
			w.updateScrollbar()
		}
	})
	w.updateTimer.Start(16)

	view.SetDirtyCallback(func() {
		w.updatePending = true
	})

	w.widget.SetFocusPolicy(qt.StrongFocus)
	w.widget.SetMinimumSize2(100, 50)

	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paintEvent(event)
	})
	w.widget.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		w.keyPressEvent(event)
	})
	w.widget.OnWheelEvent(func(super func(event *qt.QWheelEvent), event *qt.QWheelEvent) {
		w.wheelEvent(event)
	})
	w.widget.OnResizeEvent(func(super func(event *qt.QResizeEvent), event *qt.QResizeEvent) {
		w.resizeEvent(event)
	})

	return w, nil
}

// QWidget returns the underlying Qt widget.
func (w *Widget) QWidget() *qt.QWidget {
	return w.widget
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
	w.widget.Update()
}

func (w *Widget) updateFontMetrics() {
	w.font = qt.NewQFont6(w.options.FontFamily, w.options.FontSize)
	w.font.SetFixedPitch(true)
	w.metrics = qt.NewQFontMetrics(w.font)
	w.charWidth = w.metrics.AverageCharWidth()
	w.charHeight = w.metrics.Height()
	w.charAscent = w.metrics.Ascent()
	if w.charWidth < 1 {
		w.charWidth = w.options.FontSize * 6 / 10
	}
	if w.charHeight < 1 {
		w.charHeight = w.options.FontSize * 12 / 10
	}
}

// measureRune reports the pixel advance of one glyph. QFontMetrics
// caches glyph widths internally.
func (w *Widget) measureRune(r rune) int {
	return w.metrics.HorizontalAdvance(string(r))
}

// barHeight returns the pixel height of the title and status bars.
func (w *Widget) barHeight() int {
	return w.charHeight + 2*barPadding
}

// initScrollbar creates the scrollbar lazily (called on first resize,
// when Qt is fully initialized).
func (w *Widget) initScrollbar() {
	if w.scrollbar != nil {
		return
	}
	w.scrollbar = qt.NewQScrollBar(w.widget)
	w.scrollbar.SetOrientation(qt.Vertical)
	w.scrollbar.SetMinimum(0)
	w.scrollbar.SetMaximum(0)
	w.scrollbar.OnValueChanged(func(value int) {
		if !w.scrollbarUpdating {
			w.view.SetTopRow(value)
		}
	})
}

func (w *Widget) updateScrollbar() {
	if w.scrollbar == nil {
		return
	}
	w.scrollbarUpdating = true
	defer func() { w.scrollbarUpdating = false }()

	top, total := w.view.ScrollPosition()
	visible := w.view.VisibleRowCount()

	max := total - visible
	if max < 0 {
		max = 0
	}
	w.scrollbar.SetMaximum(max)
	w.scrollbar.SetValue(top)
	w.scrollbar.SetPageStep(visible)
}

func (w *Widget) resizeEvent(event *qt.QResizeEvent) {
	w.initScrollbar()

	widgetWidth := w.widget.Width()
	widgetHeight := w.widget.Height()

	w.scrollbar.SetGeometry(widgetWidth-scrollbarWidth, 0, scrollbarWidth, widgetHeight)
	w.scrollbar.Show()

	textH := widgetHeight - 2*w.barHeight()
	if textH < 1 {
		textH = 1
	}
	w.view.SetGeometry(tvtextviewer.Geometry{
		WidthPixels:    widgetWidth - scrollbarWidth - 2*textPadding,
		HeightPixels:   textH,
		FontSizePixels: w.charHeight,
	})
	w.updateScrollbar()
}

func (w *Widget) paintEvent(event *qt.QPaintEvent) {
	w.mu.Lock()
	opts := w.options
	style := opts.Style
	charHeight := w.charHeight
	charAscent := w.charAscent
	w.mu.Unlock()

	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()

	width := w.widget.Width()
	height := w.widget.Height()
	barH := w.barHeight()

	painter.SetFont(w.font)

	// Background
	painter.FillRect5(0, 0, width, height, qColor(style.Background))

	// Title bar
	painter.FillRect5(0, 0, width, barH, qColor(style.TitleBar))
	painter.SetPen(qColor(style.TitleText))
	painter.DrawText3(textPadding, barPadding+charAscent, opts.Title)

	// Text rows
	visible := w.view.VisibleRows()
	for i, row := range visible {
		rowTop := barH + i*charHeight
		if row.Continuation {
			// Continuation gutter tick
			painter.FillRect5(0, rowTop, 2, charHeight, qColor(style.ContinuationFg))
		}
		painter.SetPen(qColor(style.Text))
		painter.DrawText3(textPadding, rowTop+charAscent, row.Text)
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

	painter.FillRect5(0, height-barH, width, barH, qColor(style.StatusBar))
	painter.SetPen(qColor(style.StatusText))
	painter.DrawText3(textPadding, height-barH+barPadding+charAscent, status)
}

func qColor(c tvtextviewer.Color) *qt.QColor {
	return qt.NewQColor3(int(c.R), int(c.G), int(c.B))
}

func (w *Widget) keyPressEvent(event *qt.QKeyEvent) {
	event.Accept()

	switch qt.Key(event.Key()) {
	case qt.Key_Up:
		w.view.HandleEvent(tvtextviewer.ScrollUp)
	case qt.Key_Down:
		w.view.HandleEvent(tvtextviewer.ScrollDown)
	case qt.Key_PageUp:
		w.view.HandleEvent(tvtextviewer.PageUp)
	case qt.Key_PageDown:
		w.view.HandleEvent(tvtextviewer.PageDown)
	case qt.Key_Home:
		w.view.HandleEvent(tvtextviewer.Home)
	case qt.Key_End:
		w.view.HandleEvent(tvtextviewer.End)
	case qt.Key_Return, qt.Key_Enter:
		w.view.HandleEvent(tvtextviewer.Confirm)
	case qt.Key_Escape, qt.Key_Q:
		w.view.HandleEvent(tvtextviewer.Cancel)
	default:
		return
	}

	w.checkExit()
}

func (w *Widget) wheelEvent(event *qt.QWheelEvent) {
	deltaY := event.AngleDelta().Y()

	// Three rows per wheel notch
	if deltaY > 0 {
		w.view.HandleEvents([]tvtextviewer.Event{
			tvtextviewer.ScrollUp, tvtextviewer.ScrollUp, tvtextviewer.ScrollUp,
		})
	} else if deltaY < 0 {
		w.view.HandleEvents([]tvtextviewer.Event{
			tvtextviewer.ScrollDown, tvtextviewer.ScrollDown, tvtextviewer.ScrollDown,
		})
	}
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
	fn(d)
}
