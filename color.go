package vtcore

import "image/color"

// StandardPalette holds the eight ANSI standard colors (SGR 30-37 / 40-47).
var StandardPalette = [8]color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 170, G: 0, B: 0, A: 255},
	{R: 0, G: 170, B: 0, A: 255},
	{R: 170, G: 170, B: 0, A: 255},
	{R: 0, G: 0, B: 170, A: 255},
	{R: 170, G: 0, B: 170, A: 255},
	{R: 0, G: 170, B: 170, A: 255},
	{R: 170, G: 170, B: 170, A: 255},
}

// BrightPalette holds the eight ANSI bright colors (SGR 90-97 / 100-107).
var BrightPalette = [8]color.RGBA{
	{R: 85, G: 85, B: 85, A: 255},
	{R: 255, G: 85, B: 85, A: 255},
	{R: 85, G: 255, B: 85, A: 255},
	{R: 255, G: 255, B: 85, A: 255},
	{R: 85, G: 85, B: 255, A: 255},
	{R: 255, G: 85, B: 255, A: 255},
	{R: 85, G: 255, B: 255, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// cubeComponent converts a 0-5 color-cube coordinate to an 8-bit channel value,
// per the xterm 256-color cube: 0 -> 0, i>0 -> 55+40*i.
func cubeComponent(i int) uint8 {
	if i <= 0 {
		return 0
	}
	return uint8(55 + 40*i)
}

// PaletteColor resolves an indexed SGR color (38;5;n / 48;5;n) to RGB.
//
//   - 0-7:   standard palette
//   - 8-15:  bright palette
//   - 16-231: 6x6x6 color cube
//   - 232-255: grayscale ramp
//
// Indices outside 0-255 resolve to black.
func PaletteColor(n int) color.RGBA {
	switch {
	case n >= 0 && n < 8:
		return StandardPalette[n]
	case n >= 8 && n < 16:
		return BrightPalette[n-8]
	case n >= 16 && n < 232:
		n -= 16
		r := n / 36
		g := (n / 6) % 6
		b := n % 6
		return color.RGBA{R: cubeComponent(r), G: cubeComponent(g), B: cubeComponent(b), A: 255}
	case n >= 232 && n < 256:
		gray := uint8(8 + 10*(n-232))
		return color.RGBA{R: gray, G: gray, B: gray, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}

// TrueColor builds a direct 24-bit RGB color (38;2;r;g;b / 48;2;r;g;b).
// Components arrive as the CSI parser's saturating 16-bit parameters and are
// narrowed modulo 256, matching the source's `u16 -> u8` truncation.
func TrueColor(r, g, b int) color.RGBA {
	return color.RGBA{R: uint8(r % 256), G: uint8(g % 256), B: uint8(b % 256), A: 255}
}
