package common

import (
	"math"
	"unsafe"
)

// Epsilon is the tolerance below which a vector is treated as degenerate.
// Normalizing a vector shorter than this would amplify floating point noise
// into an effectively random direction, so callers skip the operation instead.
const Epsilon float32 = 1e-6

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Add3 returns the component-wise sum of two 3D vectors.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns the component-wise difference a - b of two 3D vectors.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns the vector v scaled by s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of two 3D vectors.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of a 3D vector.
func Length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Normalize3 returns v scaled to unit length. If v is shorter than Epsilon
// the zero vector is returned; callers must check for that case rather than
// propagate an undefined direction.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: the unit vector, or the zero vector if v is degenerate
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l < Epsilon {
		return [3]float32{}
	}
	inv := 1.0 / l
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Lerp3 returns the linear interpolation between a and b at parameter t.
// t is not clamped.
func Lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// QuatIdentity returns the identity rotation quaternion (x, y, z, w).
func QuatIdentity() [4]float32 {
	return [4]float32{0, 0, 0, 1}
}

// QuatBetween computes the shortest-arc rotation taking the unit vector from
// onto the unit vector to, as an (x, y, z, w) quaternion.
//
// The antiparallel case (from ~= -to) has no unique shortest arc. The
// tie-break here is fixed: rotate pi around an arbitrary axis perpendicular
// to from, derived by crossing with +X (or +Z when from is parallel to +X).
//
// Parameters:
//   - from: the unit reference vector
//   - to: the unit target vector
//
// Returns:
//   - [4]float32: the rotation quaternion (x, y, z, w)
func QuatBetween(from, to [3]float32) [4]float32 {
	d := Dot3(from, to)
	if d < -1+Epsilon {
		axis := Cross3([3]float32{1, 0, 0}, from)
		if Length3(axis) < Epsilon {
			axis = Cross3([3]float32{0, 0, 1}, from)
		}
		axis = Normalize3(axis)
		return [4]float32{axis[0], axis[1], axis[2], 0}
	}
	axis := Cross3(from, to)
	return QuatNormalize([4]float32{axis[0], axis[1], axis[2], 1 + d})
}

// QuatNormalize returns q scaled to unit length, or the identity quaternion
// if q is degenerate.
func QuatNormalize(q [4]float32) [4]float32 {
	l := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if l < Epsilon {
		return QuatIdentity()
	}
	inv := 1.0 / l
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// RotateByQuat rotates the vector v by the unit quaternion q (x, y, z, w).
func RotateByQuat(v [3]float32, q [4]float32) [3]float32 {
	// t = 2 * cross(q.xyz, v); v' = v + q.w * t + cross(q.xyz, t)
	qv := [3]float32{q[0], q[1], q[2]}
	t := Scale3(Cross3(qv, v), 2)
	return Add3(Add3(v, Scale3(t, q[3])), Cross3(qv, t))
}

// BuildTRSMatrix constructs a 4x4 model matrix from a position, a unit
// rotation quaternion, and a uniform scale. The matrix is stored in
// column-major order (WebGPU convention), matching the instance buffer
// transform layout.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - q: rotation quaternion (x, y, z, w), assumed unit length
//   - scale: uniform scale factor
func BuildTRSMatrix(out []float32, pos [3]float32, q [4]float32, scale float32) {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	out[0] = (1 - 2*(yy+zz)) * scale
	out[1] = 2 * (xy + wz) * scale
	out[2] = 2 * (xz - wy) * scale
	out[3] = 0

	out[4] = 2 * (xy - wz) * scale
	out[5] = (1 - 2*(xx+zz)) * scale
	out[6] = 2 * (yz + wx) * scale
	out[7] = 0

	out[8] = 2 * (xz + wy) * scale
	out[9] = 2 * (yz - wx) * scale
	out[10] = (1 - 2*(xx+yy)) * scale
	out[11] = 0

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
}

// Clamp returns v limited to the inclusive range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
