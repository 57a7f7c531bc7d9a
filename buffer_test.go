package tvtextviewer

import (
	"strings"
	"testing"
)

func TestBufferPartition(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		lines []string
	}{
		{"two lines", "hello\nworld", []string{"hello", "world"}},
		{"trailing newline", "hello\nworld\n", []string{"hello", "world", ""}},
		{"empty", "", []string{""}},
		{"only newline", "\n", []string{"", ""}},
		{"blank middle", "a\n\nb", []string{"a", "", "b"}},
		{"unterminated", "abc", []string{"abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(tc.text)
			if got := b.LineCount(); got != len(tc.lines) {
				t.Fatalf("LineCount: got %d, want %d", got, len(tc.lines))
			}
			for i, want := range tc.lines {
				if got := b.LineText(i); got != want {
					t.Errorf("line %d: got %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestBufferReconstruction(t *testing.T) {
	// Concatenating all line ranges with \n reinserted between them must
	// reproduce the buffer exactly: no gaps, no overlaps, no truncation.
	texts := []string{
		"",
		"x",
		"hello\nworld",
		"a\n\n\nb\n",
		"trailing spaces  \n  leading",
		"unicode: héllo wörld\n日本語テキスト\n",
	}
	for _, text := range texts {
		b := NewBuffer(text)
		parts := make([]string, b.LineCount())
		for i := range parts {
			parts[i] = b.LineText(i)
		}
		if got := strings.Join(parts, "\n"); got != text {
			t.Errorf("reconstruction of %q: got %q", text, got)
		}
	}
}

func TestBufferCRLFNormalization(t *testing.T) {
	b := NewBuffer("one\r\ntwo\r\nthree")
	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount: got %d, want 3", got)
	}
	if got := b.LineText(0); got != "one" {
		t.Errorf("line 0: got %q, want %q", got, "one")
	}
	if got := b.Text(); got != "one\ntwo\nthree" {
		t.Errorf("Text: got %q", got)
	}
}

func TestBufferLoneCarriageReturnKept(t *testing.T) {
	// A \r not followed by \n is not a line break and is preserved.
	b := NewBuffer("a\rb")
	if got := b.LineCount(); got != 1 {
		t.Fatalf("LineCount: got %d, want 1", got)
	}
	if got := b.LineText(0); got != "a\rb" {
		t.Errorf("line 0: got %q, want %q", got, "a\rb")
	}
}

func TestBufferRuneRanges(t *testing.T) {
	// Ranges are rune offsets, never mid-codepoint.
	b := NewBuffer("héllo\nwörld")
	l := b.Line(1)
	if l.Start != 6 || l.End != 11 {
		t.Fatalf("line 1 range: got [%d,%d), want [6,11)", l.Start, l.End)
	}
}
