package spine

import (
	"math"

	"github.com/hans-linger/wormses/common"
)

// Segment is one positioned, oriented point on the worm's centerline.
// Tangent is always unit length; Normal and Binormal complete a right-handed
// orthonormal frame and are recomputed whenever the tangent changes.
type Segment struct {
	Position [3]float32
	Tangent  [3]float32
	Normal   [3]float32
	Binormal [3]float32
}

// RecomputeFrame rebuilds Normal and Binormal from the current Tangent.
// The reference up axis is world +Y, falling back to +X when the tangent is
// near vertical so the cross product stays well conditioned.
func (s *Segment) RecomputeFrame() {
	ref := [3]float32{0, 1, 0}
	if math.Abs(float64(s.Tangent[1])) > 0.999 {
		ref = [3]float32{1, 0, 0}
	}
	s.Normal = common.Normalize3(common.Cross3(ref, s.Tangent))
	s.Binormal = common.Cross3(s.Tangent, s.Normal)
}
