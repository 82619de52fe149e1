package common

import (
	"math"
	"testing"
)

const tol = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < tol
}

func approxVec(a, b [3]float32) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}

func TestNormalize3(t *testing.T) {
	v := Normalize3([3]float32{3, 0, 4})
	if !approxVec(v, [3]float32{0.6, 0, 0.8}) {
		t.Fatalf("Normalize3(3,0,4) = %v, want (0.6,0,0.8)", v)
	}

	zero := Normalize3([3]float32{0, 0, 0})
	if zero != ([3]float32{}) {
		t.Fatalf("Normalize3 of zero vector = %v, want zero", zero)
	}

	tiny := Normalize3([3]float32{Epsilon / 10, 0, 0})
	if tiny != ([3]float32{}) {
		t.Fatalf("Normalize3 of sub-epsilon vector = %v, want zero", tiny)
	}
}

func TestCross3RightHanded(t *testing.T) {
	z := Cross3([3]float32{1, 0, 0}, [3]float32{0, 1, 0})
	if !approxVec(z, [3]float32{0, 0, 1}) {
		t.Fatalf("x cross y = %v, want +z", z)
	}
}

func TestQuatBetweenRotatesFromOntoTo(t *testing.T) {
	cases := [][2][3]float32{
		{{0, 1, 0}, {0, 0, 1}},
		{{0, 1, 0}, {1, 0, 0}},
		{{0, 1, 0}, Normalize3([3]float32{1, 1, 1})},
		{{0, 1, 0}, Normalize3([3]float32{-0.2, 0.9, 0.4})},
	}
	for _, c := range cases {
		q := QuatBetween(c[0], c[1])
		got := RotateByQuat(c[0], q)
		if !approxVec(got, c[1]) {
			t.Errorf("QuatBetween(%v, %v): rotated = %v, want %v", c[0], c[1], got, c[1])
		}
	}
}

func TestQuatBetweenIdenticalVectors(t *testing.T) {
	q := QuatBetween([3]float32{0, 1, 0}, [3]float32{0, 1, 0})
	if !approx(q[3], 1) || !approx(q[0], 0) || !approx(q[1], 0) || !approx(q[2], 0) {
		t.Fatalf("QuatBetween of identical vectors = %v, want identity", q)
	}
}

func TestQuatBetweenAntiparallel(t *testing.T) {
	from := [3]float32{0, 1, 0}
	to := [3]float32{0, -1, 0}
	q := QuatBetween(from, to)

	l := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if !approx(l, 1) {
		t.Fatalf("antiparallel quaternion not unit length: %v", q)
	}
	got := RotateByQuat(from, q)
	if !approxVec(got, to) {
		t.Fatalf("antiparallel rotation maps %v to %v, want %v", from, got, to)
	}

	// The tie-break is deterministic: the same inputs must yield the same axis.
	q2 := QuatBetween(from, to)
	if q != q2 {
		t.Fatalf("antiparallel tie-break not deterministic: %v vs %v", q, q2)
	}
}

func TestBuildTRSMatrixTranslationAndScale(t *testing.T) {
	out := make([]float32, 16)
	BuildTRSMatrix(out, [3]float32{1, 2, 3}, QuatIdentity(), 2)

	if out[12] != 1 || out[13] != 2 || out[14] != 3 {
		t.Fatalf("translation column = (%f,%f,%f), want (1,2,3)", out[12], out[13], out[14])
	}
	if !approx(out[0], 2) || !approx(out[5], 2) || !approx(out[10], 2) {
		t.Fatalf("diagonal = (%f,%f,%f), want uniform scale 2", out[0], out[5], out[10])
	}
	if out[15] != 1 {
		t.Fatalf("out[15] = %f, want 1", out[15])
	}
}

func TestBuildTRSMatrixRotationMatchesQuaternion(t *testing.T) {
	q := QuatBetween([3]float32{0, 1, 0}, [3]float32{0, 0, 1})
	out := make([]float32, 16)
	BuildTRSMatrix(out, [3]float32{0, 0, 0}, q, 1)

	// Column 1 of the matrix is the image of the +Y basis vector.
	col1 := [3]float32{out[4], out[5], out[6]}
	want := RotateByQuat([3]float32{0, 1, 0}, q)
	if !approxVec(col1, want) {
		t.Fatalf("matrix column 1 = %v, quaternion rotation = %v", col1, want)
	}
}

func TestIdentityResetsMatrix(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}
	Identity(m)
	for i, v := range m {
		want := float32(0)
		if i == 0 || i == 5 || i == 10 || i == 15 {
			want = 1
		}
		if v != want {
			t.Fatalf("m[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("Clamp(5,0,1) = %f, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("Clamp(-5,0,1) = %f, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("Clamp(0.5,0,1) = %f, want 0.5", got)
	}
}
