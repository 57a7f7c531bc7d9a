// Package cli provides a terminal frontend for TvTextViewer.
//
// It renders the viewer full-screen inside the host terminal: a title bar,
// the text area, and a reverse-video status bar showing the scroll position.
// The host terminal is switched to raw mode and the alternate screen buffer
// for the duration of the session and restored on exit.
//
// # Basic Usage
//
//	import "github.com/zcl226403/TvTextViewer/cli"
//
//	opts := cli.Options{
//	    Text:      content,
//	    Title:     "README",
//	    WrapLines: true,
//	}
//
//	viewer, err := cli.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := viewer.Run() // blocks until the user exits
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Exit(code)
//
// # Keys
//
//   - Up/Down (or j/k): scroll one row
//   - PageUp/PageDown (or Space): scroll one page
//   - Home/End (or g/G): jump to start/end
//   - Enter: accept (only when Options.YesButtonLabel is set)
//   - Esc or q: dismiss
//
// # Architecture
//
// The package consists of three components:
//
//   - Viewer: owns the core view, terminal state, and the frame loop
//   - Renderer: draws the chrome and visible rows with batched ANSI output
//   - InputHandler: reads raw input, parses escape sequences, and queues
//     abstract navigation events for the next frame
//
// Input events are queued and drained once per frame tick, so a burst of
// keys arriving together is applied in order before the next draw. Glyph
// widths come from go-runewidth, so double-width CJK text wraps at the
// correct column. Resizes (SIGWINCH) re-wrap the text once per geometry
// change; the reader's scroll position is preserved.
package cli
