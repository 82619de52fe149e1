package spine

import (
	"math"
	"math/rand"
	"time"

	"github.com/hans-linger/wormses/common"
)

// chain implements the Chain interface.
type chain struct {
	segments []Segment

	spacing     float32
	totalLength float32
	headSpeed   float32
	turnInertia float32
	stiffness   float32

	retargetInterval time.Duration
	lastRetarget     float64

	heading [3]float32
	target  [3]float32

	rng        *rand.Rand
	onRetarget func(direction [3]float32)
}

// Chain owns the ordered sequence of spine segments that defines the worm's
// centerline. Index 0 is the head; steering propagates toward increasing
// index. Advance performs head steering followed by a single follow-the-leader
// relaxation sweep over the trailing body.
//
// A Chain is singly-owned and not safe for concurrent use.
type Chain interface {
	// Advance runs one simulation step: steers and integrates the head, then
	// relaxes the trailing segments toward their rest-length spacing.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous step in seconds
	//   - now: running wall clock in seconds, used for retarget scheduling
	Advance(deltaTime float32, now float64)

	// Count returns the number of segments in the chain. Fixed for the
	// lifetime of the chain.
	Count() int

	// Segment returns a copy of the segment at index i.
	//
	// Parameters:
	//   - i: the segment index (0 = head)
	//
	// Returns:
	//   - Segment: the segment's current position and frame
	Segment(i int) Segment

	// HeadPosition returns the current head position.
	HeadPosition() [3]float32

	// HeadDirection returns the current unit heading direction.
	HeadDirection() [3]float32

	// SetHeadPosition translates the whole chain by the offset that lands the
	// head at p, preserving all relative spacing and tangents.
	//
	// Parameters:
	//   - p: the new head position
	SetHeadPosition(p [3]float32)

	// RestLength returns the rest-length spacing between adjacent segments.
	RestLength() float32

	// TotalLength returns the nominal body length the chain was built for.
	TotalLength() float32
}

var _ Chain = &chain{}

// NewChain creates a chain of floor(totalLength/segmentSpacing) segments laid
// out colinear along +Z behind the head at the origin, evenly spaced by
// segmentSpacing, all tangents pointing along +Z.
//
// Parameters:
//   - options: functional options for chain configuration
//
// Returns:
//   - Chain: the newly created chain
func NewChain(options ...ChainBuilderOption) Chain {
	c := &chain{
		spacing:          defaultSegmentSpacing,
		totalLength:      defaultTotalLength,
		headSpeed:        defaultHeadSpeed,
		turnInertia:      defaultTurnInertia,
		stiffness:        defaultFollowStiffness,
		retargetInterval: defaultRetargetInterval,
		heading:          [3]float32{0, 0, 1},
	}

	for _, opt := range options {
		opt(c)
	}

	if c.spacing <= 0 {
		c.spacing = defaultSegmentSpacing
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(1))
	}
	c.target = c.heading

	count := int(c.totalLength / c.spacing)
	if count < 1 {
		count = 1
	}
	c.segments = make([]Segment, count)
	for i := range c.segments {
		c.segments[i] = Segment{
			Position: [3]float32{0, 0, -float32(i) * c.spacing},
			Tangent:  c.heading,
		}
		c.segments[i].RecomputeFrame()
	}

	return c
}

func (c *chain) Advance(deltaTime float32, now float64) {
	c.steerHead(deltaTime, now)
	c.relaxBody()
}

// steerHead retargets the heading when the direction-change interval has
// elapsed, blends the heading toward the target by the turn inertia fraction,
// and Euler-integrates the head position.
func (c *chain) steerHead(deltaTime float32, now float64) {
	if c.retargetInterval > 0 && now-c.lastRetarget > c.retargetInterval.Seconds() {
		c.retarget(now)
	}

	blended := common.Normalize3(common.Lerp3(c.heading, c.target, c.turnInertia))
	if blended != ([3]float32{}) {
		c.heading = blended
	}

	head := &c.segments[0]
	head.Position = common.Add3(head.Position, common.Scale3(c.heading, c.headSpeed*deltaTime))
	head.Tangent = c.heading
	head.RecomputeFrame()
}

// retarget samples a new target direction in a bounded cone around the
// current heading: yaw uniform in +-0.6*pi, pitch uniform in +-0.3*pi,
// with the resulting pitch clamped away from the poles.
func (c *chain) retarget(now float64) {
	yaw := math.Atan2(float64(c.heading[0]), float64(c.heading[2]))
	pitch := math.Asin(float64(common.Clamp(c.heading[1], -1, 1)))

	yaw += (c.rng.Float64()*2 - 1) * 0.6 * math.Pi
	pitch += (c.rng.Float64()*2 - 1) * 0.3 * math.Pi
	pitch = math.Max(-0.45*math.Pi, math.Min(0.45*math.Pi, pitch))

	c.target = [3]float32{
		float32(math.Cos(pitch) * math.Sin(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Cos(yaw)),
	}
	c.lastRetarget = now

	if c.onRetarget != nil {
		c.onRetarget(c.target)
	}
}

// relaxBody runs one damped distance-constraint sweep from the segment
// nearest the head out to the tail. Segments stretched past the rest length
// move toward their leader by a fraction of the excess; tangents blend toward
// the leader direction with a slew limit that loosens toward the tail.
func (c *chain) relaxBody() {
	n := len(c.segments)
	for i := 1; i < n; i++ {
		leader := &c.segments[i-1]
		seg := &c.segments[i]

		delta := common.Sub3(leader.Position, seg.Position)
		dist := common.Length3(delta)
		if dist < common.Epsilon {
			// Undefined direction; leave position and frame untouched.
			continue
		}
		dir := common.Scale3(delta, 1/dist)

		if dist > c.spacing {
			seg.Position = common.Add3(seg.Position, common.Scale3(dir, (dist-c.spacing)*c.stiffness))
		}

		blended := common.Normalize3(common.Lerp3(seg.Tangent, dir, c.tangentBlend(i)))
		if blended != ([3]float32{}) {
			seg.Tangent = blended
			seg.RecomputeFrame()
		}
	}
}

// tangentBlend returns the tangent slew fraction for segment i: stiff near
// the head, looser toward the tail so the rear of the body lags smoothly.
func (c *chain) tangentBlend(i int) float32 {
	n := len(c.segments)
	if n <= 1 {
		return maxTangentBlend
	}
	t := float32(i) / float32(n-1)
	return maxTangentBlend + (minTangentBlend-maxTangentBlend)*t
}

func (c *chain) Count() int {
	return len(c.segments)
}

func (c *chain) Segment(i int) Segment {
	return c.segments[i]
}

func (c *chain) HeadPosition() [3]float32 {
	return c.segments[0].Position
}

func (c *chain) HeadDirection() [3]float32 {
	return c.heading
}

func (c *chain) SetHeadPosition(p [3]float32) {
	offset := common.Sub3(p, c.segments[0].Position)
	for i := range c.segments {
		c.segments[i].Position = common.Add3(c.segments[i].Position, offset)
	}
}

func (c *chain) RestLength() float32 {
	return c.spacing
}

func (c *chain) TotalLength() float32 {
	return c.totalLength
}
