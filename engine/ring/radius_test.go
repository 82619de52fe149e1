package ring

import (
	"math"
	"testing"
)

func TestRadiusFromKeysEmptyDefaults(t *testing.T) {
	if got := RadiusFromKeys(nil, BlendLinear, 3); got != 0.5 {
		t.Fatalf("empty keys radius = %f, want 0.5", got)
	}
}

func TestRadiusFromKeysFlatExtrapolation(t *testing.T) {
	keys := []RadiusKey{{Height: 2, Radius: 0.3}, {Height: 8, Radius: 0.9}}

	if got := RadiusFromKeys(keys, BlendLinear, -5); got != 0.3 {
		t.Fatalf("below-range radius = %f, want 0.3", got)
	}
	if got := RadiusFromKeys(keys, BlendLinear, 100); got != 0.9 {
		t.Fatalf("above-range radius = %f, want 0.9", got)
	}
}

func TestRadiusFromKeysFlatProfile(t *testing.T) {
	keys := []RadiusKey{{Height: 0, Radius: 0.05}, {Height: 12, Radius: 0.05}}
	for _, h := range []float32{-1, 0, 3, 6, 12, 20} {
		if got := RadiusFromKeys(keys, BlendSmoothstep, h); got != 0.05 {
			t.Fatalf("flat profile at h=%f = %f, want 0.05", h, got)
		}
	}
}

func TestRadiusFromKeysLinearMidpoint(t *testing.T) {
	keys := []RadiusKey{{Height: 0, Radius: 0}, {Height: 10, Radius: 1}}
	got := RadiusFromKeys(keys, BlendLinear, 5)
	if math.Abs(float64(got-0.5)) > 1e-6 {
		t.Fatalf("linear midpoint = %f, want 0.5", got)
	}
}

func TestRadiusCurvesAgreeAtMidpointDifferElsewhere(t *testing.T) {
	keys := []RadiusKey{{Height: 0, Radius: 0}, {Height: 10, Radius: 1}}

	// All curves are symmetric around t=0.5, so they coincide there.
	lin := RadiusFromKeys(keys, BlendLinear, 5)
	cos := RadiusFromKeys(keys, BlendCosine, 5)
	smooth := RadiusFromKeys(keys, BlendSmoothstep, 5)
	if math.Abs(float64(lin-cos)) > 1e-5 || math.Abs(float64(lin-smooth)) > 1e-5 {
		t.Fatalf("curves disagree at midpoint: linear=%f cosine=%f smoothstep=%f", lin, cos, smooth)
	}

	// At t=0.25 the eased curves sit below the linear ramp.
	lin = RadiusFromKeys(keys, BlendLinear, 2.5)
	cos = RadiusFromKeys(keys, BlendCosine, 2.5)
	smooth = RadiusFromKeys(keys, BlendSmoothstep, 2.5)
	if cos >= lin {
		t.Fatalf("cosine at t=0.25 not below linear: %f >= %f", cos, lin)
	}
	if smooth >= lin {
		t.Fatalf("smoothstep at t=0.25 not below linear: %f >= %f", smooth, lin)
	}
}

func TestRadiusFromKeysMultiBracket(t *testing.T) {
	keys := []RadiusKey{
		{Height: 0, Radius: 0.2},
		{Height: 4, Radius: 1.0},
		{Height: 12, Radius: 0.4},
	}
	got := RadiusFromKeys(keys, BlendLinear, 2)
	if math.Abs(float64(got-0.6)) > 1e-6 {
		t.Fatalf("first bracket midpoint = %f, want 0.6", got)
	}
	got = RadiusFromKeys(keys, BlendLinear, 8)
	if math.Abs(float64(got-0.7)) > 1e-6 {
		t.Fatalf("second bracket midpoint = %f, want 0.7", got)
	}
}

func TestPulseOscillatesAroundOne(t *testing.T) {
	min, max := math.Inf(1), math.Inf(-1)
	for i := 0; i < 1000; i++ {
		v := Pulse(float64(i)/1000, float64(i)*0.01)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min < 1-0.24 || max > 1+0.24 {
		t.Fatalf("pulse exceeds amplitude bounds: min=%f max=%f", min, max)
	}
	if max <= 1 || min >= 1 {
		t.Fatalf("pulse does not oscillate around 1: min=%f max=%f", min, max)
	}
}
