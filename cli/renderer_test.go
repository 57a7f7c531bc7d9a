package cli

import "testing"

func TestFitToWidth(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 8, "hello   "},
		{"hello", 3, "hel"},
		{"", 4, "    "},
		{"日本語", 4, "日本"},
		{"日本語", 5, "日本 "}, // third glyph would not fit in the last cell
		{"a日b", 4, "a日b"},
	}
	for _, tc := range cases {
		if got := fitToWidth(tc.in, tc.width); got != tc.want {
			t.Errorf("fitToWidth(%q, %d): got %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
