package ring

import "math"

// BlendCurve selects the interior shape of a radius-key interpolation.
// All curves are monotone on [0, 1] and exact at the endpoints; they differ
// only in how quickly they depart the first key's radius.
type BlendCurve uint8

const (
	// BlendLinear interpolates the bracket linearly.
	BlendLinear BlendCurve = iota
	// BlendCosine eases with (1 - cos(pi*t)) / 2 before interpolating.
	BlendCosine
	// BlendSmoothstep eases with t*t*(3 - 2*t) before interpolating.
	BlendSmoothstep
)

// RadiusKey is one keyframe of a radius profile: the radius the body takes
// at a given height along it. A key sequence must be sorted ascending by
// Height; that invariant is maintained by the caller, not enforced here.
type RadiusKey struct {
	Height float32
	Radius float32
}

// defaultRadius is returned when no keys are supplied.
const defaultRadius = float32(0.5)

// RadiusFromKeys interpolates a radius from sorted keyframes at the given
// height. Heights at or outside the key range extrapolate flat to the
// nearest key's radius. An unsorted key sequence degrades to the last key's
// radius for heights the bracket scan cannot place; it never fails.
//
// Parameters:
//   - keys: the keyframes, sorted ascending by Height
//   - curve: the blend curve applied inside each bracket
//   - height: the height to sample
//
// Returns:
//   - float32: the interpolated radius
func RadiusFromKeys(keys []RadiusKey, curve BlendCurve, height float32) float32 {
	if len(keys) == 0 {
		return defaultRadius
	}
	if height <= keys[0].Height {
		return keys[0].Radius
	}
	last := keys[len(keys)-1]
	if height >= last.Height {
		return last.Radius
	}
	for i := 0; i < len(keys)-1; i++ {
		a, b := keys[i], keys[i+1]
		if height >= a.Height && height <= b.Height && b.Height > a.Height {
			t := (height - a.Height) / (b.Height - a.Height)
			return blend(a.Radius, b.Radius, t, curve)
		}
	}
	return last.Radius
}

// blend interpolates between a and b at parameter t after reshaping t
// according to the curve.
func blend(a, b, t float32, curve BlendCurve) float32 {
	switch curve {
	case BlendCosine:
		t = float32(1-math.Cos(float64(t)*math.Pi)) / 2
	case BlendSmoothstep:
		t = t * t * (3 - 2*t)
	}
	return a + (b-a)*t
}

// Pulse is the multiplicative radius modulator: a fast traveling wave over
// the body's spatial phase plus a slow whole-body breathing term.
//
// Parameters:
//   - spatialPhase: position along the body, typically progress in [0, 1]
//   - t: running wall clock in seconds
//
// Returns:
//   - float64: the radius multiplier, oscillating around 1
func Pulse(spatialPhase, t float64) float64 {
	return 1 + 0.15*math.Sin(8*spatialPhase-2*t) + 0.08*math.Sin(0.7*t)
}
