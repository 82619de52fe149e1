package spine

import (
	"math/rand"
	"time"
)

// Default tuning for a chain. The follow stiffness and tangent slew bounds
// are the canonical presets; both are overridable per chain.
const (
	defaultTotalLength      = float32(12)
	defaultSegmentSpacing   = float32(0.5)
	defaultHeadSpeed        = float32(2)
	defaultTurnInertia      = float32(0.08)
	defaultFollowStiffness  = float32(0.55)
	defaultRetargetInterval = 2500 * time.Millisecond

	maxTangentBlend = float32(0.4)  // segments nearest the head
	minTangentBlend = float32(0.12) // tail
)

// ChainBuilderOption is a functional option for configuring a Chain.
// Use the With* functions to create options that are applied directly to the
// chain instance.
type ChainBuilderOption func(*chain)

// WithTotalLength sets the nominal body length; the segment count is
// floor(totalLength / segmentSpacing). Values <= 0 keep the default.
//
// Parameters:
//   - length: the body length in world units
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithTotalLength(length float32) ChainBuilderOption {
	return func(c *chain) {
		if length > 0 {
			c.totalLength = length
		}
	}
}

// WithSegmentSpacing sets the rest-length spacing between adjacent segments.
// Values <= 0 keep the default.
//
// Parameters:
//   - spacing: the rest length in world units
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithSegmentSpacing(spacing float32) ChainBuilderOption {
	return func(c *chain) {
		if spacing > 0 {
			c.spacing = spacing
		}
	}
}

// WithHeadSpeed sets the head's forward speed in world units per second.
//
// Parameters:
//   - speed: the head speed
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithHeadSpeed(speed float32) ChainBuilderOption {
	return func(c *chain) {
		c.headSpeed = speed
	}
}

// WithTurnInertia sets the per-tick exponential blend fraction applied to the
// heading as it chases the target direction. Clamped to [0, 1].
//
// Parameters:
//   - inertia: the blend fraction (1 = snap to target immediately)
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithTurnInertia(inertia float32) ChainBuilderOption {
	return func(c *chain) {
		if inertia < 0 {
			inertia = 0
		}
		if inertia > 1 {
			inertia = 1
		}
		c.turnInertia = inertia
	}
}

// WithFollowStiffness sets the fraction of excess stretch corrected per tick
// during body relaxation. Clamped to (0, 1].
//
// Parameters:
//   - stiffness: the correction fraction
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithFollowStiffness(stiffness float32) ChainBuilderOption {
	return func(c *chain) {
		if stiffness > 0 && stiffness <= 1 {
			c.stiffness = stiffness
		}
	}
}

// WithDirectionChangeInterval sets how long the head keeps a target direction
// before sampling a new one. Pass 0 to disable retargeting.
//
// Parameters:
//   - interval: the retarget interval
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithDirectionChangeInterval(interval time.Duration) ChainBuilderOption {
	return func(c *chain) {
		c.retargetInterval = interval
	}
}

// WithRand injects the pseudo-random source used for direction retargeting,
// so steering scenarios are reproducible under a fixed seed.
//
// Parameters:
//   - rng: the seeded random source
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithRand(rng *rand.Rand) ChainBuilderOption {
	return func(c *chain) {
		c.rng = rng
	}
}

// WithHeading sets the initial heading direction. The vector is not
// normalized here; pass a unit vector.
//
// Parameters:
//   - heading: the initial unit heading
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithHeading(heading [3]float32) ChainBuilderOption {
	return func(c *chain) {
		c.heading = heading
	}
}

// WithRetargetHook registers a callback invoked with the new target direction
// each time the head retargets. Used to surface steering events to the
// owning worm's lifecycle hook.
//
// Parameters:
//   - hook: the callback, or nil to disable
//
// Returns:
//   - ChainBuilderOption: option function to apply
func WithRetargetHook(hook func(direction [3]float32)) ChainBuilderOption {
	return func(c *chain) {
		c.onRetarget = hook
	}
}
