package spine

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/hans-linger/wormses/common"
)

func newTestChain(opts ...ChainBuilderOption) Chain {
	base := []ChainBuilderOption{
		WithTotalLength(12),
		WithSegmentSpacing(1),
		WithDirectionChangeInterval(0),
	}
	return NewChain(append(base, opts...)...)
}

func TestNewChainLayout(t *testing.T) {
	c := newTestChain()
	if c.Count() != 12 {
		t.Fatalf("segment count = %d, want 12", c.Count())
	}
	if c.RestLength() != 1 {
		t.Fatalf("rest length = %f, want 1", c.RestLength())
	}
	for i := 0; i < c.Count(); i++ {
		s := c.Segment(i)
		want := [3]float32{0, 0, -float32(i)}
		if s.Position != want {
			t.Fatalf("segment %d position = %v, want %v", i, s.Position, want)
		}
		if s.Tangent != ([3]float32{0, 0, 1}) {
			t.Fatalf("segment %d tangent = %v, want +z", i, s.Tangent)
		}
	}
}

func TestNewChainMinimumOneSegment(t *testing.T) {
	c := NewChain(WithTotalLength(0.1), WithSegmentSpacing(1))
	if c.Count() != 1 {
		t.Fatalf("segment count = %d, want 1", c.Count())
	}
}

func TestAdvanceEulerStepMovesHeadExactly(t *testing.T) {
	c := newTestChain(WithHeadSpeed(2), WithTurnInertia(1))
	c.Advance(1, 0)

	head := c.HeadPosition()
	want := [3]float32{0, 0, 2}
	if head != want {
		t.Fatalf("head after 1s at speed 2 = %v, want %v", head, want)
	}
}

func TestAdvanceZeroDeltaAtRestIsIdempotent(t *testing.T) {
	c := newTestChain(WithTurnInertia(1))

	before := make([]Segment, c.Count())
	for i := range before {
		before[i] = c.Segment(i)
	}

	c.Advance(0, 0)

	for i := range before {
		after := c.Segment(i)
		if after.Position != before[i].Position {
			t.Fatalf("segment %d moved with zero delta at rest: %v -> %v",
				i, before[i].Position, after.Position)
		}
		if after.Tangent != before[i].Tangent {
			t.Fatalf("segment %d tangent changed with zero delta at rest: %v -> %v",
				i, before[i].Tangent, after.Tangent)
		}
	}
}

func TestAdvanceReducesStretch(t *testing.T) {
	c := newTestChain(WithHeadSpeed(3), WithTurnInertia(1))

	// One big step stretches the head-to-neck link well past the rest length.
	c.Advance(1, 0)
	d0 := common.Length3(common.Sub3(c.Segment(0).Position, c.Segment(1).Position))
	if d0 <= c.RestLength() {
		t.Fatalf("expected stretched link after large step, got %f", d0)
	}

	// Subsequent zero-motion steps must monotonically relax the excess.
	prev := d0
	for i := 0; i < 10; i++ {
		hold := c.HeadPosition()
		c.Advance(0, 0)
		if c.HeadPosition() != hold {
			t.Fatalf("head moved during relaxation-only step")
		}
		d := common.Length3(common.Sub3(c.Segment(0).Position, c.Segment(1).Position))
		if d >= prev {
			t.Fatalf("stretch did not decrease: step %d, %f -> %f", i, prev, d)
		}
		prev = d
	}
	if prev > c.RestLength()+0.01 {
		t.Fatalf("stretch did not converge toward rest length: %f", prev)
	}
}

func TestAdvanceKeepsTangentsUnit(t *testing.T) {
	c := NewChain(
		WithTotalLength(8),
		WithSegmentSpacing(0.5),
		WithDirectionChangeInterval(200*time.Millisecond),
		WithRand(rand.New(rand.NewSource(42))),
	)

	now := 0.0
	for i := 0; i < 300; i++ {
		now += 1.0 / 60.0
		c.Advance(1.0/60.0, now)
	}

	for i := 0; i < c.Count(); i++ {
		s := c.Segment(i)
		l := common.Length3(s.Tangent)
		if math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("segment %d tangent length = %f, want 1", i, l)
		}
		if math.Abs(float64(common.Dot3(s.Tangent, s.Normal))) > 1e-4 {
			t.Fatalf("segment %d normal not perpendicular to tangent", i)
		}
		if math.Abs(float64(common.Dot3(s.Tangent, s.Binormal))) > 1e-4 {
			t.Fatalf("segment %d binormal not perpendicular to tangent", i)
		}
	}
}

func TestSetHeadPositionTranslatesRigidly(t *testing.T) {
	c := newTestChain()

	rel := make([][3]float32, c.Count())
	head := c.HeadPosition()
	for i := range rel {
		rel[i] = common.Sub3(c.Segment(i).Position, head)
	}

	target := [3]float32{5, -2, 7}
	c.SetHeadPosition(target)

	if c.HeadPosition() != target {
		t.Fatalf("head position = %v, want %v", c.HeadPosition(), target)
	}
	for i := range rel {
		want := common.Add3(target, rel[i])
		if got := c.Segment(i).Position; got != want {
			t.Fatalf("segment %d position = %v, want %v", i, got, want)
		}
	}
}

func TestRetargetIsSeedReproducible(t *testing.T) {
	run := func() [][3]float32 {
		var dirs [][3]float32
		c := NewChain(
			WithTotalLength(6),
			WithSegmentSpacing(0.5),
			WithDirectionChangeInterval(100*time.Millisecond),
			WithRand(rand.New(rand.NewSource(99))),
			WithRetargetHook(func(d [3]float32) {
				dirs = append(dirs, d)
			}),
		)
		now := 0.0
		for i := 0; i < 120; i++ {
			now += 1.0 / 60.0
			c.Advance(1.0/60.0, now)
		}
		return dirs
	}

	a := run()
	b := run()
	if len(a) == 0 {
		t.Fatalf("expected at least one retarget")
	}
	if len(a) != len(b) {
		t.Fatalf("retarget counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("retarget %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRetargetDirectionsAreUnitAndClampedFromPoles(t *testing.T) {
	var dirs [][3]float32
	c := NewChain(
		WithTotalLength(6),
		WithSegmentSpacing(0.5),
		WithDirectionChangeInterval(50*time.Millisecond),
		WithRand(rand.New(rand.NewSource(7))),
		WithRetargetHook(func(d [3]float32) {
			dirs = append(dirs, d)
		}),
	)
	now := 0.0
	for i := 0; i < 600; i++ {
		now += 1.0 / 60.0
		c.Advance(1.0/60.0, now)
	}

	if len(dirs) < 5 {
		t.Fatalf("expected several retargets, got %d", len(dirs))
	}
	maxY := float32(math.Sin(0.45 * math.Pi))
	for i, d := range dirs {
		if math.Abs(float64(common.Length3(d)-1)) > 1e-4 {
			t.Errorf("retarget %d direction not unit: %v", i, d)
		}
		if d[1] > maxY+1e-4 || d[1] < -maxY-1e-4 {
			t.Errorf("retarget %d pitch exceeds clamp: y = %f", i, d[1])
		}
	}
}

func TestDirectionChangeIntervalZeroDisablesRetargets(t *testing.T) {
	retargets := 0
	c := NewChain(
		WithTotalLength(6),
		WithSegmentSpacing(0.5),
		WithDirectionChangeInterval(0),
		WithRetargetHook(func([3]float32) { retargets++ }),
	)
	now := 0.0
	for i := 0; i < 600; i++ {
		now += 1.0 / 60.0
		c.Advance(1.0/60.0, now)
	}
	if retargets != 0 {
		t.Fatalf("expected no retargets with interval 0, got %d", retargets)
	}
}

func TestHeadDirectionStaysUnit(t *testing.T) {
	c := NewChain(
		WithTotalLength(6),
		WithSegmentSpacing(0.5),
		WithDirectionChangeInterval(100*time.Millisecond),
		WithRand(rand.New(rand.NewSource(3))),
		WithHeading([3]float32{1, 0, 0}),
	)
	now := 0.0
	for i := 0; i < 240; i++ {
		now += 1.0 / 60.0
		c.Advance(1.0/60.0, now)
		l := common.Length3(c.HeadDirection())
		if math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("heading length = %f at step %d, want 1", l, i)
		}
	}
}
