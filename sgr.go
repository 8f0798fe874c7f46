package vtcore

import "image/color"

// applySGR updates the current pen from an SGR (CSI ... m) parameter list.
// An empty list means a single implicit 0 (full reset), per the grammar's
// rule that an empty param list means all defaults.
func (t *Terminal) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		if p < 0 {
			p = 0
		}
		switch p {
		case 38:
			next, col, ok := parseExtendedColor(params, i)
			if ok {
				t.pen.Fg = &col
			}
			i = next
		case 48:
			next, col, ok := parseExtendedColor(params, i)
			if ok {
				t.pen.Bg = &col
			}
			i = next
		default:
			t.applySGRParam(p)
			i++
		}
	}
}

func (t *Terminal) applySGRParam(p int) {
	switch {
	case p == 0:
		t.pen = Style{}
	case p == 1:
		t.pen.Bold = true
	case p == 2:
		t.pen.Dim = true
	case p == 3:
		t.pen.Italic = true
	case p == 4:
		t.pen.Underline = true
	case p == 5 || p == 6:
		t.pen.Blink = true
	case p == 7:
		t.pen.Reverse = true
	case p == 8:
		t.pen.Hidden = true
	case p == 9:
		t.pen.Strikethrough = true
	case p == 22:
		t.pen.Bold = false
		t.pen.Dim = false
	case p == 23:
		t.pen.Italic = false
	case p == 24:
		t.pen.Underline = false
	case p == 25:
		t.pen.Blink = false
	case p == 27:
		t.pen.Reverse = false
	case p == 28:
		t.pen.Hidden = false
	case p == 29:
		t.pen.Strikethrough = false
	case p >= 30 && p <= 37:
		c := StandardPalette[p-30]
		t.pen.Fg = &c
	case p == 39:
		t.pen.Fg = nil
	case p >= 40 && p <= 47:
		c := StandardPalette[p-40]
		t.pen.Bg = &c
	case p == 49:
		t.pen.Bg = nil
	case p >= 90 && p <= 97:
		c := BrightPalette[p-90]
		t.pen.Fg = &c
	case p >= 100 && p <= 107:
		c := BrightPalette[p-100]
		t.pen.Bg = &c
	}
}

// parseExtendedColor parses the 38/48 extended color forms starting at
// params[i] (which holds 38 or 48): either "...;5;n" (palette index) or
// "...;2;r;g;b" (truecolor). Returns the index to resume scanning from.
func parseExtendedColor(params []int, i int) (next int, col color.RGBA, ok bool) {
	if i+1 >= len(params) {
		return i + 1, color.RGBA{}, false
	}
	mode := params[i+1]
	switch mode {
	case 5:
		if i+2 >= len(params) {
			return i + 2, color.RGBA{}, false
		}
		n := params[i+2]
		if n < 0 {
			n = 0
		}
		return i + 3, PaletteColor(n), true
	case 2:
		if i+4 >= len(params) {
			return len(params), color.RGBA{}, false
		}
		r, g, b := params[i+2], params[i+3], params[i+4]
		if r < 0 {
			r = 0
		}
		if g < 0 {
			g = 0
		}
		if b < 0 {
			b = 0
		}
		return i + 5, TrueColor(r, g, b), true
	default:
		return i + 2, color.RGBA{}, false
	}
}
