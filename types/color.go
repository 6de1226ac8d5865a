package types

import (
	"image/color"

	"github.com/chewxy/math32"
)

// A linear RGB color with components nominally in the [0, 1] range.
type Color [3]float32

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// Define a color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// Add a color.
func (c Color) Add(c2 Color) Color {
	return Color{c[0] + c2[0], c[1] + c2[1], c[2] + c2[2]}
}

// Scale color by a scalar.
func (c Color) Mul(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Multiply two colors component-wise.
func (c Color) MulColor(c2 Color) Color {
	return Color{c[0] * c2[0], c[1] * c2[1], c[2] * c2[2]}
}

// Clamp color components to the [0, 1] range.
func (c Color) Clamp() Color {
	for i := range c {
		c[i] = math32.Max(0, math32.Min(1, c[i]))
	}
	return c
}

// Convert to an 8-bit RGBA color.
func (c Color) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c[0]*255.0 + 0.5),
		G: uint8(c[1]*255.0 + 0.5),
		B: uint8(c[2]*255.0 + 0.5),
		A: 255,
	}
}

// Build a color from an 8-bit color value.
func ColorFromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff}
}
