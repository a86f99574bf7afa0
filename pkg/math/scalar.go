package math

import "github.com/chewxy/math32"

// Pi as float32.
const Pi = math32.Pi

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap maps v into [0, period).
func Wrap(v, period float32) float32 {
	r := math32.Mod(v, period)
	if r < 0 {
		r += period
	}
	if r >= period {
		r = 0
	}
	return r
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
