package tvtextviewer

import "testing"

func TestDecodeEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`line one\nline two`, "line one\nline two"},
		{`tab\there`, "tab\there"},
		{`cr\rvt\v`, "cr\rvt\v"},
		{`page\fbreak`, "page\nbreak"},
		{`literal \\n backslash`, `literal \n backslash`},
		{`unknown \q passes through`, `unknown \q passes through`},
		{`trailing backslash \`, `trailing backslash \`},
		{"no escapes", "no escapes"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DecodeEscapes(tc.in); got != tc.want {
			t.Errorf("DecodeEscapes(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeEscapesThenBuffer(t *testing.T) {
	// The decoded message splits into lines like any other source.
	b := NewBuffer(DecodeEscapes(`first\nsecond\nthird`))
	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount: got %d, want 3", got)
	}
	if got := b.LineText(1); got != "second" {
		t.Errorf("line 1: got %q, want %q", got, "second")
	}
}
