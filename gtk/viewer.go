package tvtextviewergtk

import (
	"github.com/gotk3/gotk3/gtk"
	tvtextviewer "github.com/zcl226403/TvTextViewer"
)

// Options configures viewer creation.
type Options struct {
	Text           string                  // Decoded content to display
	Title          string                  // Title bar text
	YesButtonLabel string                  // Accept action label; empty = dismiss-only
	ErrorDisplay   bool                    // Red title bar styling
	WrapLines      bool                    // Reflow long lines to the widget width
	WrapPolicy     tvtextviewer.WrapPolicy // Word or character wrapping
	FontFamily     string                  // Font family (default: "Monospace")
	FontSize       int                     // Font size in pixels (default: 14)
	Style          tvtextviewer.Style      // Color style (default depends on ErrorDisplay)

	CancelExitCode  int // Reported on dismiss (default 0)
	ConfirmExitCode int // Reported on accept (default 1)
}

// Viewer is a complete text viewer widget for embedding in a GTK window.
type Viewer struct {
	widget  *Widget
	options Options
}

// New creates a viewer over opts.Text. Must be called on the GTK main
// thread after gtk.Init.
func New(opts Options) (*Viewer, error) {
	// Apply defaults
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	if opts.Style == (tvtextviewer.Style{}) {
		if opts.ErrorDisplay {
			opts.Style = tvtextviewer.ErrorStyle()
		} else {
			opts.Style = tvtextviewer.DefaultStyle()
		}
	}

	widget, err := NewWidget(opts)
	if err != nil {
		return nil, err
	}

	return &Viewer{widget: widget, options: opts}, nil
}

// Widget returns the GTK box containing the viewer, for packing into a
// window.
func (v *Viewer) Widget() *gtk.Box {
	return v.widget.Box()
}

// GrabFocus directs keyboard input to the viewer.
func (v *Viewer) GrabFocus() {
	v.widget.DrawingArea().GrabFocus()
}

// View returns the underlying core view.
func (v *Viewer) View() *tvtextviewer.View {
	return v.widget.View()
}

// SetOnExit registers a callback fired once on the GTK main loop when
// the user confirms or dismisses the viewer. Typical callbacks close
// the window and record the exit code.
func (v *Viewer) SetOnExit(fn func(tvtextviewer.ExitDecision)) {
	v.widget.SetOnExit(fn)
}

// SetTitle changes the title bar text.
func (v *Viewer) SetTitle(title string) {
	v.widget.SetTitle(title)
}
