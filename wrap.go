package tvtextviewer

// MeasureFunc reports the advance width of a single glyph in layout
// units (pixels for GUI frontends, cells for the terminal frontend).
// A non-positive result means the width could not be resolved; the
// wrapper substitutes its configured fallback width instead of failing.
type MeasureFunc func(r rune) int

// WrapPolicy selects where the wrapper may break a long line.
type WrapPolicy int

const (
	// WrapWords breaks after the last whitespace run that fits,
	// falling back to a character break when a single word exceeds
	// the full row width.
	WrapWords WrapPolicy = iota
	// WrapRunes breaks strictly at character boundaries.
	WrapRunes
)

// Row is one on-screen line of text: a half-open rune range [Start, End)
// into logical line Line. Continuation is true for every row of a
// wrapped line except the first.
type Row struct {
	Line         int
	Start        int
	End          int
	Continuation bool
}

// RowIndex is the ordered sequence of visual rows for a buffer under one
// display geometry. It is rebuilt whole on geometry changes, never
// mutated in place.
type RowIndex []Row

// UnwrappedRows returns the one-row-per-line index. Used when wrapping
// is disabled and as the fallback layout for invalid geometry.
func UnwrappedRows(buf *Buffer) RowIndex {
	rows := make(RowIndex, buf.LineCount())
	for i := 0; i < buf.LineCount(); i++ {
		l := buf.Line(i)
		rows[i] = Row{Line: i, Start: l.Start, End: l.End}
	}
	return rows
}

// WrapRows wraps every logical line of buf to maxWidth and returns the
// resulting row index. Each line is scanned once, so a rebuild costs
// O(total runes) regardless of how many rows it produces. Wrapping a
// multi-megabyte buffer is the most expensive operation in this package;
// callers trigger it only on explicit geometry changes, never per frame.
//
// measure resolves glyph widths; a non-positive answer for a rune is
// replaced by fallbackWidth (itself forced to at least 1). A single rune
// wider than maxWidth is emitted alone on its own row so layout always
// terminates. An empty line produces exactly one empty row, preserving
// blank-line spacing. Concatenating a line's rows reproduces the line
// exactly; trailing whitespace is kept on the row it followed.
//
// maxWidth must be positive; callers detect invalid geometry beforehand
// and use UnwrappedRows instead.
func WrapRows(buf *Buffer, maxWidth int, measure MeasureFunc, policy WrapPolicy, fallbackWidth int) RowIndex {
	if fallbackWidth < 1 {
		fallbackWidth = 1
	}
	rows := make(RowIndex, 0, buf.LineCount())
	for i := 0; i < buf.LineCount(); i++ {
		rows = wrapLine(rows, buf, i, maxWidth, measure, policy, fallbackWidth)
	}
	return rows
}

func wrapLine(rows RowIndex, buf *Buffer, line int, maxWidth int, measure MeasureFunc, policy WrapPolicy, fallbackWidth int) RowIndex {
	l := buf.Line(line)
	runes := buf.LineRunes(line)

	if len(runes) == 0 {
		return append(rows, Row{Line: line, Start: l.Start, End: l.End})
	}

	rowStart := 0   // rune offset within the line
	rowWidth := 0   // accumulated width of the open row
	lastBreak := -1 // offset just past the last whitespace run, -1 if none
	cont := false

	for pos := 0; pos < len(runes); pos++ {
		r := runes[pos]
		w := measure(r)
		if w <= 0 {
			w = fallbackWidth
		}

		// Close rows until the rune fits. One pass suffices for a
		// character break; a word break can carry a tail that itself
		// overflows, in which case the second pass breaks it at a
		// character boundary (the tail contains no whitespace).
		for rowWidth > 0 && rowWidth+w > maxWidth {
			breakAt := pos
			if policy == WrapWords && lastBreak > rowStart {
				breakAt = lastBreak
			}
			rows = append(rows, Row{
				Line:         line,
				Start:        l.Start + rowStart,
				End:          l.Start + breakAt,
				Continuation: cont,
			})
			cont = true
			rowStart = breakAt
			lastBreak = -1
			rowWidth = 0
			for _, t := range runes[rowStart:pos] {
				tw := measure(t)
				if tw <= 0 {
					tw = fallbackWidth
				}
				rowWidth += tw
			}
		}

		rowWidth += w
		if isWrapSpace(r) && (pos+1 >= len(runes) || !isWrapSpace(runes[pos+1])) {
			lastBreak = pos + 1
		}
	}

	return append(rows, Row{
		Line:         line,
		Start:        l.Start + rowStart,
		End:          l.End,
		Continuation: cont,
	})
}

// isWrapSpace reports whether r is whitespace the word-wrap policy may
// break after. Newlines never reach the wrapper (the line index splits
// on them first).
func isWrapSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// RowText returns the text of row r.
func (b *Buffer) RowText(r Row) string {
	return string(b.text[r.Start:r.End])
}
