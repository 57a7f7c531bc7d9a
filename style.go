package tvtextviewer

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ToHex returns the color as a hex string like "#RRGGBB".
func (c Color) ToHex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}

// ParseHexColor parses a hex color string in "#RRGGBB" or "#RGB" format.
func ParseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	s = s[1:]
	var r, g, b uint8
	switch len(s) {
	case 3:
		r = parseHexNibble(s[0]) * 17
		g = parseHexNibble(s[1]) * 17
		b = parseHexNibble(s[2]) * 17
	case 6:
		r = parseHexNibble(s[0])<<4 | parseHexNibble(s[1])
		g = parseHexNibble(s[2])<<4 | parseHexNibble(s[3])
		b = parseHexNibble(s[4])<<4 | parseHexNibble(s[5])
	default:
		return Color{}, false
	}
	return RGB(r, g, b), true
}

func parseHexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// Style defines the colors frontends use to draw the viewer chrome and
// text area.
type Style struct {
	Background     Color
	Text           Color
	TitleBar       Color
	TitleText      Color
	StatusBar      Color
	StatusText     Color
	ContinuationFg Color // dimmer shade for the wrap-continuation marker
}

// DefaultStyle returns the normal dark viewer style.
func DefaultStyle() Style {
	return Style{
		Background:     RGB(30, 30, 30),
		Text:           RGB(212, 212, 212),
		TitleBar:       RGB(60, 60, 100),
		TitleText:      RGB(255, 255, 255),
		StatusBar:      RGB(50, 50, 50),
		StatusText:     RGB(180, 180, 180),
		ContinuationFg: RGB(120, 120, 120),
	}
}

// ErrorStyle returns the error-display style with a red title bar.
func ErrorStyle() Style {
	s := DefaultStyle()
	s.TitleBar = RGB(150, 30, 30)
	return s
}
