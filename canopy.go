package canopy

import (
	"image/color"
	"math"
)

// Epsilon is the threshold below which transform setters treat a new value
// as unchanged.
const Epsilon = 1e-6

// OwnerID identifies the owner of private style tables and animation
// channels. The zero OwnerID means "shared" and is never handed out.
type OwnerID uint32

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorHex builds an opaque color from a 0xRRGGBB value.
func ColorHex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xFF) / 255,
		G: float64((rgb>>8)&0xFF) / 255,
		B: float64(rgb&0xFF) / 255,
		A: 1,
	}
}

// ColorHexAlpha builds a color from a 0xRRGGBBAA value.
func ColorHexAlpha(rgba uint32) Color {
	c := ColorHex(rgba >> 8)
	c.A = float64(rgba&0xFF) / 255
	return c
}

// Hex returns the color as 0xRRGGBB, dropping alpha.
func (c Color) Hex() uint32 {
	return uint32(to8(c.R))<<16 | uint32(to8(c.G))<<8 | uint32(to8(c.B))
}

// RGBA returns the color as a premultiplied color.RGBA for the renderer.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: to8(c.R * c.A),
		G: to8(c.G * c.A),
		B: to8(c.B * c.A),
		A: to8(c.A),
	}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Insets holds per-edge distances, used for padding and margins.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}
