package tvtextviewer

// DecodeEscapes converts textual escape sequences in an inline message
// into their literal control characters. Shells make it awkward to pass
// real newlines in a command-line argument, so messages arrive with
// two-character sequences like `\n` instead.
//
// Recognized: \f (treated as a line break), \n, \r, \t, \v, \\.
// Unrecognized sequences are passed through unchanged. Decoding happens
// before the text reaches NewBuffer, which only sees literal characters.
func DecodeEscapes(s string) string {
	out := make([]rune, 0, len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			out = append(out, runes[i])
			continue
		}
		switch runes[i+1] {
		case 'f':
			out = append(out, '\n')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'v':
			out = append(out, '\v')
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, runes[i], runes[i+1])
		}
		i++
	}
	return string(out)
}
