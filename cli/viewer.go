package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-runewidth"
	tvtextviewer "github.com/zcl226403/TvTextViewer"
	"golang.org/x/term"
)

// Options configures viewer creation.
type Options struct {
	// Text is the decoded content to display.
	Text string

	// Title is shown in the title bar. Empty means no title text.
	Title string

	// YesButtonLabel enables the accept action and names it in the
	// status bar (e.g. "Yes"). Empty means the viewer is dismiss-only.
	YesButtonLabel string

	// ErrorDisplay styles the title bar for error output.
	ErrorDisplay bool

	// WrapLines reflows long lines to the terminal width.
	WrapLines bool

	// WrapPolicy selects word or character wrapping. Default word.
	WrapPolicy tvtextviewer.WrapPolicy

	// Style overrides the color style. Zero value picks DefaultStyle
	// or ErrorStyle depending on ErrorDisplay.
	Style tvtextviewer.Style

	// CancelExitCode and ConfirmExitCode are returned from Run.
	// Defaults: 0 for cancel, 1 for confirm.
	CancelExitCode  int
	ConfirmExitCode int
}

// Viewer is a full-screen text viewer running inside the host terminal.
type Viewer struct {
	mu sync.Mutex

	view    *tvtextviewer.View
	options Options
	style   tvtextviewer.Style

	renderer *Renderer
	input    *InputHandler

	// One frame's worth of queued navigation events. Buffered so the
	// input goroutine never blocks on a slow frame.
	events chan tvtextviewer.Event

	done chan struct{}

	// Original terminal state for restoration
	oldState *term.State

	hostCols int
	hostRows int
}

// chromeRows is the number of rows the title and status bars occupy.
const chromeRows = 2

// New creates a viewer over opts.Text. Nothing touches the terminal
// until Run.
func New(opts Options) (*Viewer, error) {
	if opts.Style == (tvtextviewer.Style{}) {
		if opts.ErrorDisplay {
			opts.Style = tvtextviewer.ErrorStyle()
		} else {
			opts.Style = tvtextviewer.DefaultStyle()
		}
	}

	view, err := tvtextviewer.New(tvtextviewer.Options{
		Text:                   opts.Text,
		WrapLines:              opts.WrapLines,
		WrapPolicy:             opts.WrapPolicy,
		ConfirmActionAvailable: opts.YesButtonLabel != "",
		CancelExitCode:         opts.CancelExitCode,
		ConfirmExitCode:        opts.ConfirmExitCode,
		Measure:                runewidth.RuneWidth,
		FallbackGlyphWidth:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create view: %w", err)
	}

	v := &Viewer{
		view:    view,
		options: opts,
		style:   opts.Style,
		events:  make(chan tvtextviewer.Event, 64),
		done:    make(chan struct{}),
	}

	v.renderer = NewRenderer(v)
	v.input = NewInputHandler(v)

	view.SetDirtyCallback(func() {
		v.renderer.RequestRender()
	})

	return v, nil
}

// getHostTerminalSize returns the current size of the host terminal.
func getHostTerminalSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return cols, rows
}

// Run enters raw mode, runs the frame loop until the user exits, and
// restores the terminal. It returns the exit code of the session
// (cancel or confirm code).
func (v *Viewer) Run() (int, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	v.mu.Lock()
	v.oldState = oldState
	v.mu.Unlock()
	defer v.restore()

	// Alternate screen, hidden cursor, clear
	fmt.Print("\033[?1049h")
	fmt.Print("\033[?25l")
	fmt.Print("\033[2J\033[H")

	v.applyGeometry()

	go v.handleSIGWINCH()
	go v.input.InputLoop()

	v.renderer.RequestRender()
	decision := v.renderer.FrameLoop()

	return decision.Code, nil
}

// restore leaves the alternate screen and returns the terminal to its
// original mode.
func (v *Viewer) restore() {
	close(v.done)

	v.mu.Lock()
	oldState := v.oldState
	v.mu.Unlock()

	if oldState != nil {
		fmt.Print("\033[?1049l")
		fmt.Print("\033[?25h")
		fmt.Print("\033[0m")
		term.Restore(int(os.Stdin.Fd()), oldState)
	}
}

// applyGeometry reports the terminal size to the core. Layout units are
// cells: width in columns, height in text-area rows, font size 1.
func (v *Viewer) applyGeometry() {
	cols, rows := getHostTerminalSize()

	v.mu.Lock()
	v.hostCols = cols
	v.hostRows = rows
	v.mu.Unlock()

	textRows := rows - chromeRows
	if textRows < 1 {
		textRows = 1
	}
	v.view.SetGeometry(tvtextviewer.Geometry{
		WidthPixels:    cols,
		HeightPixels:   textRows,
		FontSizePixels: 1,
	})
}

// handleSIGWINCH listens for terminal resize signals.
func (v *Viewer) handleSIGWINCH() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	defer signal.Stop(sigChan)

	for {
		select {
		case <-sigChan:
			v.handleResize()
		case <-v.done:
			return
		}
	}
}

// handleResize re-applies geometry when the host terminal changes size.
// Re-wrapping happens inside SetGeometry, once per actual change.
func (v *Viewer) handleResize() {
	newCols, newRows := getHostTerminalSize()

	v.mu.Lock()
	unchanged := newCols == v.hostCols && newRows == v.hostRows
	v.mu.Unlock()
	if unchanged {
		return
	}

	v.applyGeometry()
	v.renderer.ForceFullRedraw()
}

// queueEvent adds a navigation event to the next frame's batch.
func (v *Viewer) queueEvent(e tvtextviewer.Event) {
	select {
	case v.events <- e:
	default:
		// Frame is far behind; dropping is better than blocking input.
	}
}

// drainEvents collects everything queued since the last frame.
func (v *Viewer) drainEvents() []tvtextviewer.Event {
	var batch []tvtextviewer.Event
	for {
		select {
		case e := <-v.events:
			batch = append(batch, e)
		default:
			return batch
		}
	}
}

// View returns the underlying core view.
func (v *Viewer) View() *tvtextviewer.View {
	return v.view
}

// SetTitle changes the title bar text.
func (v *Viewer) SetTitle(title string) {
	v.mu.Lock()
	v.options.Title = title
	v.mu.Unlock()
	v.renderer.RequestRender()
}
