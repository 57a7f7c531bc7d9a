package tvtextviewer

import (
	"strings"
	"testing"
)

func cellMeasure(r rune) int { return 1 }

func rowTexts(buf *Buffer, rows RowIndex) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = buf.RowText(r)
	}
	return out
}

func TestWrapFixedWidth(t *testing.T) {
	// 10 chars at width 4 -> rows of 4, 4, 2.
	buf := NewBuffer("aaaaaaaaaa")
	rows := WrapRows(buf, 4, cellMeasure, WrapRunes, 1)
	want := []string{"aaaa", "aaaa", "aa"}
	got := rowTexts(buf, rows)
	if len(got) != len(want) {
		t.Fatalf("rows: got %d, want %d (%q)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if rows[0].Continuation || !rows[1].Continuation || !rows[2].Continuation {
		t.Errorf("continuation flags: got %v %v %v, want false true true",
			rows[0].Continuation, rows[1].Continuation, rows[2].Continuation)
	}
}

func TestWrapWordBoundaries(t *testing.T) {
	buf := NewBuffer("the quick brown fox")
	rows := rowTexts(buf, WrapRows(buf, 10, cellMeasure, WrapWords, 1))
	want := []string{"the quick ", "brown fox"}
	if len(rows) != len(want) {
		t.Fatalf("rows: got %q, want %q", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestWrapLongWordCharFallback(t *testing.T) {
	// A word longer than the row width breaks at character boundaries.
	buf := NewBuffer("ab supercalifragilistic cd")
	rows := rowTexts(buf, WrapRows(buf, 8, cellMeasure, WrapWords, 1))
	for i, row := range rows {
		if n := len([]rune(row)); n > 8 {
			t.Errorf("row %d %q: width %d exceeds 8", i, row, n)
		}
	}
	if got := strings.Join(rows, ""); got != "ab supercalifragilistic cd" {
		t.Errorf("lossless: got %q", got)
	}
}

func TestWrapLossless(t *testing.T) {
	// Concatenating a line's rows reproduces the line exactly, trailing
	// spaces included, for both policies.
	texts := []string{
		"hello world this is a longer line with  double  spaces",
		"trailing spaces go on the row   and then more",
		"短い日本語のテスト行ですが長くなります",
	}
	for _, policy := range []WrapPolicy{WrapWords, WrapRunes} {
		for _, text := range texts {
			buf := NewBuffer(text)
			for _, width := range []int{3, 7, 12, 100} {
				rows := rowTexts(buf, WrapRows(buf, width, cellMeasure, policy, 1))
				if got := strings.Join(rows, ""); got != text {
					t.Errorf("policy %d width %d: got %q, want %q", policy, width, got, text)
				}
			}
		}
	}
}

func TestWrapOversizedRuneStandsAlone(t *testing.T) {
	// A single glyph wider than the row is emitted alone rather than
	// looping forever.
	wide := func(r rune) int {
		if r == 'W' {
			return 10
		}
		return 1
	}
	buf := NewBuffer("aaWaa")
	rows := rowTexts(buf, WrapRows(buf, 4, wide, WrapWords, 1))
	want := []string{"aa", "W", "aa"}
	if len(rows) != len(want) {
		t.Fatalf("rows: got %q, want %q", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestWrapEmptyLineProducesOneRow(t *testing.T) {
	buf := NewBuffer("a\n\nb")
	rows := WrapRows(buf, 10, cellMeasure, WrapWords, 1)
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if got := buf.RowText(rows[1]); got != "" {
		t.Errorf("middle row: got %q, want empty", got)
	}
}

func TestWrapDoubleWidthRunes(t *testing.T) {
	// CJK glyphs measured at 2 cells wrap earlier than their rune count.
	cjk := func(r rune) int {
		if r >= 0x3000 {
			return 2
		}
		return 1
	}
	buf := NewBuffer("日本語テスト")
	rows := rowTexts(buf, WrapRows(buf, 4, cjk, WrapRunes, 1))
	want := []string{"日本", "語テ", "スト"}
	if len(rows) != len(want) {
		t.Fatalf("rows: got %q, want %q", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestWrapMeasurementFailureFallback(t *testing.T) {
	// A measure function that cannot resolve a glyph returns 0; the
	// wrapper substitutes the fallback width instead of aborting.
	broken := func(r rune) int {
		if r == '?' {
			return 0
		}
		return 1
	}
	buf := NewBuffer("ab?cd?ef")
	rows := rowTexts(buf, WrapRows(buf, 4, broken, WrapRunes, 1))
	want := []string{"ab?c", "d?ef"}
	if len(rows) != len(want) {
		t.Fatalf("rows: got %q, want %q", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestWrapCarriedTailRebreaks(t *testing.T) {
	// After a word break the carried word can itself overflow the next
	// row; it must break again at a character boundary, still lossless.
	buf := NewBuffer("a bcdefghijk")
	rows := rowTexts(buf, WrapRows(buf, 4, cellMeasure, WrapWords, 1))
	if got := strings.Join(rows, ""); got != "a bcdefghijk" {
		t.Fatalf("lossless: got %q", got)
	}
	for i, row := range rows {
		if n := len([]rune(row)); n > 4 {
			t.Errorf("row %d %q: width %d exceeds 4", i, row, n)
		}
	}
}

func TestUnwrappedRowsOnePerLine(t *testing.T) {
	buf := NewBuffer("one\ntwo that is quite long\nthree")
	rows := UnwrappedRows(buf)
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	for i, r := range rows {
		if r.Line != i {
			t.Errorf("row %d line: got %d, want %d", i, r.Line, i)
		}
		if r.Continuation {
			t.Errorf("row %d: unexpected continuation flag", i)
		}
		if got := buf.RowText(r); got != buf.LineText(i) {
			t.Errorf("row %d: got %q, want %q", i, got, buf.LineText(i))
		}
	}
}
