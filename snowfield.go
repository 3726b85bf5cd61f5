package snowfield

import (
	"errors"
	"math/rand/v2"
)

// ErrInvalidID is returned when a patch, cluster, or body id is outside the
// current bounds. Lookups with bad ids are caller errors, not recoverable
// runtime conditions, so every operation receiving one aborts and wraps
// this sentinel. Check with errors.Is.
var ErrInvalidID = errors.New("snowfield: invalid id")

// Color represents an RGB color with components in [0, 1].
// Alpha is not modeled; the render collaborator owns compositing.
type Color struct {
	R, G, B float64
}

// Lerp returns the color linearly interpolated from c toward to by t.
// t is clamped to [0, 1].
func (c Color) Lerp(to Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: lerp(c.R, to.R, t),
		G: lerp(c.G, to.G, t),
		B: lerp(c.B, to.B, t),
	}
}

// Range is a general-purpose min/max range used wherever a construction-time
// value is drawn with bounded randomness (placement roll, fall jitter).
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
// All randomness in the package flows through an explicit *rand.Rand so a
// fixed seed reproduces the exact same field.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
