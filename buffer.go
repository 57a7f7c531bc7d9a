// Package tvtextviewer provides the text layout and viewport engine behind
// a full-screen, controller/keyboard-navigable text viewer.
//
// This package contains:
//   - Line index over an immutable source buffer
//   - Greedy line wrapper producing a visual row index
//   - Viewport scroll state with clamping
//   - Navigation state machine (scroll events, confirm/cancel exit)
//   - View facade tying the above into a per-frame API
//
// Frontend packages (cli, gtk, qt) provide the render adapters that feed
// device input into this core and draw the visible rows it produces.
package tvtextviewer

// Line is a half-open rune range [Start, End) into the source buffer,
// excluding the delimiting newline. Index in the buffer's line slice is
// the line number.
type Line struct {
	Start int
	End   int
}

// Buffer owns one immutable source text and its logical line index.
// It is constructed once per view session and never mutated.
type Buffer struct {
	text  []rune
	lines []Line
}

// NewBuffer builds a line index over text. CRLF sequences are normalized
// to LF before indexing. Lines split strictly on '\n'; a trailing
// unterminated segment is still a line, and an empty text yields exactly
// one empty line.
func NewBuffer(text string) *Buffer {
	b := &Buffer{text: normalizeNewlines(text)}
	b.indexLines()
	return b
}

func normalizeNewlines(s string) []rune {
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		runes = append(runes, r)
	}
	out := runes[:0]
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			continue
		}
		out = append(out, runes[i])
	}
	return out
}

func (b *Buffer) indexLines() {
	start := 0
	for i, r := range b.text {
		if r == '\n' {
			b.lines = append(b.lines, Line{Start: start, End: i})
			start = i + 1
		}
	}
	// Trailing segment, even if empty. This also gives an empty buffer
	// its single empty line.
	b.lines = append(b.lines, Line{Start: start, End: len(b.text)})
}

// LineCount returns the number of logical lines. Always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the rune range of line i.
func (b *Buffer) Line(i int) Line {
	return b.lines[i]
}

// LineText returns the text of line i without its newline delimiter.
func (b *Buffer) LineText(i int) string {
	l := b.lines[i]
	return string(b.text[l.Start:l.End])
}

// LineRunes returns the runes of line i. The returned slice aliases the
// buffer's storage and must not be modified.
func (b *Buffer) LineRunes(i int) []rune {
	l := b.lines[i]
	return b.text[l.Start:l.End]
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Text returns the normalized buffer contents.
func (b *Buffer) Text() string {
	return string(b.text)
}
