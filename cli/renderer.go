package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	tvtextviewer "github.com/zcl226403/TvTextViewer"
)

// frameInterval caps rendering at ~60fps; frames without queued events
// or pending damage are skipped entirely.
const frameInterval = 16 * time.Millisecond

// Renderer draws the viewer chrome and visible rows to the host
// terminal with batched ANSI output.
type Renderer struct {
	viewer *Viewer
	mu     sync.Mutex

	renderNeeded bool
	fullRedraw   bool

	// Output buffer for batching writes
	output strings.Builder
}

// NewRenderer creates a renderer for the viewer.
func NewRenderer(viewer *Viewer) *Renderer {
	return &Renderer{
		viewer:       viewer,
		renderNeeded: true,
		fullRedraw:   true,
	}
}

// RequestRender marks that a render is needed.
func (r *Renderer) RequestRender() {
	r.mu.Lock()
	r.renderNeeded = true
	r.mu.Unlock()
}

// ForceFullRedraw schedules a render that clears the screen first, used
// after a resize leaves stale cells outside the new layout.
func (r *Renderer) ForceFullRedraw() {
	r.mu.Lock()
	r.renderNeeded = true
	r.fullRedraw = true
	r.mu.Unlock()
}

// FrameLoop runs the per-frame cycle until the session exits: drain the
// queued navigation events, apply them to the view, draw if anything
// changed. Returns the exit decision that ended the session.
func (r *Renderer) FrameLoop() tvtextviewer.ExitDecision {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	view := r.viewer.view
	for range ticker.C {
		if batch := r.viewer.drainEvents(); len(batch) > 0 {
			view.HandleEvents(batch)
		}

		if d := view.ExitDecision(); d.Kind != tvtextviewer.ExitNone {
			return d
		}

		r.mu.Lock()
		needsRender := r.renderNeeded
		full := r.fullRedraw
		r.renderNeeded = false
		r.fullRedraw = false
		r.mu.Unlock()

		if needsRender {
			r.Render(full)
		}
	}
	return tvtextviewer.ExitDecision{}
}

// Render draws one complete frame.
func (r *Renderer) Render(full bool) {
	r.viewer.mu.Lock()
	opts := r.viewer.options
	style := r.viewer.style
	cols := r.viewer.hostCols
	rows := r.viewer.hostRows
	r.viewer.mu.Unlock()

	view := r.viewer.view
	visible := view.VisibleRows()
	topRow, totalRows := view.ScrollPosition()

	r.output.Reset()
	r.output.WriteString("\033[?25l")
	if full {
		r.output.WriteString("\033[2J")
	}

	r.renderTitleBar(opts.Title, style, cols)

	textRows := rows - chromeRows
	for y := 0; y < textRows; y++ {
		r.output.WriteString(fmt.Sprintf("\033[%d;1H", y+2))
		r.output.WriteString(sgrColors(style.Text, style.Background))
		if y < len(visible) {
			r.output.WriteString(fitToWidth(visible[y].Text, cols))
		} else {
			r.output.WriteString(strings.Repeat(" ", cols))
		}
	}

	r.renderStatusBar(opts, style, cols, rows, topRow, totalRows, len(visible))

	r.output.WriteString("\033[0m")
	os.Stdout.WriteString(r.output.String())
}

// renderTitleBar draws the top bar.
func (r *Renderer) renderTitleBar(title string, style tvtextviewer.Style, cols int) {
	r.output.WriteString("\033[1;1H")
	r.output.WriteString(sgrColors(style.TitleText, style.TitleBar))
	r.output.WriteString(fitToWidth(" "+title, cols))
}

// renderStatusBar draws the bottom bar: scroll position, percent, and
// the available actions.
func (r *Renderer) renderStatusBar(opts Options, style tvtextviewer.Style, cols, rows, topRow, totalRows, visibleCount int) {
	r.output.WriteString(fmt.Sprintf("\033[%d;1H", rows))
	r.output.WriteString(sgrColors(style.StatusText, style.StatusBar))

	bottom := topRow + visibleCount
	percent := 100
	if totalRows > 0 {
		percent = bottom * 100 / totalRows
	}

	actions := "Esc/q:Dismiss"
	if opts.YesButtonLabel != "" {
		actions = "Enter:" + opts.YesButtonLabel + "  " + actions
	}

	status := fmt.Sprintf(" %d-%d/%d  %d%%  %s ",
		topRow+1, bottom, totalRows, percent, actions)
	r.output.WriteString(fitToWidth(status, cols))
}

// sgrColors returns the SGR sequence selecting truecolor foreground and
// background.
func sgrColors(fg, bg tvtextviewer.Color) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%d;48;2;%d;%d;%dm",
		fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
}

// fitToWidth truncates or pads s to exactly width display cells,
// measuring with go-runewidth so wide glyphs count double.
func fitToWidth(s string, width int) string {
	var b strings.Builder
	used := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w <= 0 {
			w = 1
		}
		if used+w > width {
			break
		}
		b.WriteRune(ch)
		used += w
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}
