package cli

import (
	"os"

	tvtextviewer "github.com/zcl226403/TvTextViewer"
)

// InputHandler reads keyboard input from the host terminal and queues
// abstract navigation events for the frame loop.
type InputHandler struct {
	viewer       *Viewer
	escapeBuffer []byte
}

// Special key constants for internal handling
const (
	keyNone = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyPageUp
	keyPageDown
)

// NewInputHandler creates a new input handler.
func NewInputHandler(viewer *Viewer) *InputHandler {
	return &InputHandler{
		viewer:       viewer,
		escapeBuffer: make([]byte, 0, 32),
	}
}

// InputLoop reads and processes input from stdin until the session ends.
func (h *InputHandler) InputLoop() {
	buf := make([]byte, 256)

	for {
		select {
		case <-h.viewer.done:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		h.processInput(buf[:n])
	}
}

// processInput handles raw input bytes.
func (h *InputHandler) processInput(data []byte) {
	for i := 0; i < len(data); {
		b := data[i]

		if b == 0x1b { // ESC
			h.escapeBuffer = append(h.escapeBuffer[:0], b)
			i++

			for i < len(data) && len(h.escapeBuffer) < 32 {
				h.escapeBuffer = append(h.escapeBuffer, data[i])
				i++

				key, consumed := h.parseEscapeSequence(h.escapeBuffer)
				if consumed > 0 {
					if key != keyNone {
						h.handleSpecialKey(key)
					}
					h.escapeBuffer = h.escapeBuffer[:0]
					break
				}
			}

			// A lone ESC with nothing following is the dismiss key.
			if len(h.escapeBuffer) > 0 {
				if len(h.escapeBuffer) == 1 {
					h.viewer.queueEvent(tvtextviewer.Cancel)
				}
				h.escapeBuffer = h.escapeBuffer[:0]
			}
		} else {
			h.handleRegularInput(b)
			i++
		}
	}
}

// parseEscapeSequence attempts to parse an escape sequence.
// Returns the key code and bytes consumed; consumed 0 means incomplete.
func (h *InputHandler) parseEscapeSequence(seq []byte) (key int, consumed int) {
	if len(seq) < 2 {
		return keyNone, 0
	}

	// CSI sequences: ESC [
	if seq[1] == '[' {
		return h.parseCSISequence(seq)
	}

	// SS3 sequences: ESC O (arrow keys in application mode)
	if seq[1] == 'O' {
		return h.parseSS3Sequence(seq)
	}

	// ESC followed by anything else: consume and ignore.
	return keyNone, len(seq)
}

// parseCSISequence parses CSI (ESC [) sequences.
func (h *InputHandler) parseCSISequence(seq []byte) (key int, consumed int) {
	if len(seq) < 3 {
		return keyNone, 0
	}

	lastByte := seq[len(seq)-1]

	if lastByte >= 'A' && lastByte <= 'Z' || lastByte == '~' {
		switch lastByte {
		case 'A':
			key = keyUp
		case 'B':
			key = keyDown
		case 'C':
			key = keyRight
		case 'D':
			key = keyLeft
		case 'H':
			key = keyHome
		case 'F':
			key = keyEnd
		case '~':
			switch seq[2] {
			case '1': // Home (some terminals)
				key = keyHome
			case '4': // End (some terminals)
				key = keyEnd
			case '5':
				key = keyPageUp
			case '6':
				key = keyPageDown
			}
		}
		return key, len(seq)
	}

	// Parameter bytes so far; need more data.
	if lastByte >= '0' && lastByte <= '9' || lastByte == ';' {
		return keyNone, 0
	}

	// Unknown terminator; consume and ignore.
	return keyNone, len(seq)
}

// parseSS3Sequence parses SS3 (ESC O) sequences.
func (h *InputHandler) parseSS3Sequence(seq []byte) (key int, consumed int) {
	if len(seq) < 3 {
		return keyNone, 0
	}

	switch seq[2] {
	case 'A':
		key = keyUp
	case 'B':
		key = keyDown
	case 'H':
		key = keyHome
	case 'F':
		key = keyEnd
	}
	return key, 3
}

// handleSpecialKey translates a parsed key into a navigation event.
func (h *InputHandler) handleSpecialKey(key int) {
	switch key {
	case keyUp:
		h.viewer.queueEvent(tvtextviewer.ScrollUp)
	case keyDown:
		h.viewer.queueEvent(tvtextviewer.ScrollDown)
	case keyPageUp, keyLeft:
		h.viewer.queueEvent(tvtextviewer.PageUp)
	case keyPageDown, keyRight:
		h.viewer.queueEvent(tvtextviewer.PageDown)
	case keyHome:
		h.viewer.queueEvent(tvtextviewer.Home)
	case keyEnd:
		h.viewer.queueEvent(tvtextviewer.End)
	}
}

// handleRegularInput handles regular (non-escape) input.
func (h *InputHandler) handleRegularInput(b byte) {
	switch b {
	case 'k':
		h.viewer.queueEvent(tvtextviewer.ScrollUp)
	case 'j':
		h.viewer.queueEvent(tvtextviewer.ScrollDown)
	case 'b':
		h.viewer.queueEvent(tvtextviewer.PageUp)
	case ' ', 'f':
		h.viewer.queueEvent(tvtextviewer.PageDown)
	case 'g':
		h.viewer.queueEvent(tvtextviewer.Home)
	case 'G':
		h.viewer.queueEvent(tvtextviewer.End)
	case '\r', '\n':
		h.viewer.queueEvent(tvtextviewer.Confirm)
	case 'q', 0x03: // q or Ctrl+C
		h.viewer.queueEvent(tvtextviewer.Cancel)
	}
}
