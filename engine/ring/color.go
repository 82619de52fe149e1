package ring

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorFunc derives the RGB color of a ring from its normalized position
// along the body and the running wall clock.
type ColorFunc func(progress float32, t float64) [3]float32

// DefaultColorFunc returns the built-in traveling color wave: the hue drifts
// along the body and forward in time while saturation and value breathe
// inside bounded sinusoids.
//
// Returns:
//   - ColorFunc: the default color function
func DefaultColorFunc() ColorFunc {
	return func(progress float32, t float64) [3]float32 {
		p := float64(progress)
		hue := math.Mod(p*0.6+t*0.05, 1)
		if hue < 0 {
			hue++
		}
		sat := 0.62 + 0.2*math.Sin(2*math.Pi*p+t*0.3)
		val := 0.72 + 0.18*math.Sin(math.Pi*p-t*0.45)

		c := colorful.Hsv(hue*360, clamp01(sat), clamp01(val))
		return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	}
}

// lerpRGB blends two colors component-wise; t in [0, 1] weights toward b.
func lerpRGB(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
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
