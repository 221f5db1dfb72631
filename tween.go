package canopy

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Interpolator computes and applies the value of an animated property at
// progress t in [0, 1]. It returns the value it applied.
type Interpolator[T any] func(t float64, from, to T) T

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec2 linearly interpolates between two 2D vectors.
func LerpVec2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return mgl64.Vec2{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

// LerpVec3 linearly interpolates between two 3D vectors.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// LerpColor interpolates each channel of two colors.
func LerpColor(a, b Color, t float64) Color {
	return Color{Lerp(a.R, b.R, t), Lerp(a.G, b.G, t), Lerp(a.B, b.B, t), Lerp(a.A, b.A, t)}
}

// easeProgress remaps linear progress through a gween easing function.
// A nil function is linear.
func easeProgress(fn ease.TweenFunc, t float64) float64 {
	if fn == nil || t <= 0 || t >= 1 {
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}

// Eased returns an interpolator that eases t with fn, lerps and hands the
// result to apply.
func Eased(fn ease.TweenFunc, apply func(float64)) Interpolator[float64] {
	return func(t float64, from, to float64) float64 {
		v := Lerp(from, to, easeProgress(fn, t))
		apply(v)
		return v
	}
}

// EasedVec2 is Eased for 2D vectors.
func EasedVec2(fn ease.TweenFunc, apply func(mgl64.Vec2)) Interpolator[mgl64.Vec2] {
	return func(t float64, from, to mgl64.Vec2) mgl64.Vec2 {
		v := LerpVec2(from, to, easeProgress(fn, t))
		apply(v)
		return v
	}
}

// EasedVec3 is Eased for 3D vectors.
func EasedVec3(fn ease.TweenFunc, apply func(mgl64.Vec3)) Interpolator[mgl64.Vec3] {
	return func(t float64, from, to mgl64.Vec3) mgl64.Vec3 {
		v := LerpVec3(from, to, easeProgress(fn, t))
		apply(v)
		return v
	}
}

// EasedColor is Eased for colors.
func EasedColor(fn ease.TweenFunc, apply func(Color)) Interpolator[Color] {
	return func(t float64, from, to Color) Color {
		v := LerpColor(from, to, easeProgress(fn, t))
		apply(v)
		return v
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
