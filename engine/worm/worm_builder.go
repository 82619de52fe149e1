package worm

import (
	"math/rand"
	"time"

	"github.com/hans-linger/wormses/engine/instance_buffer"
	"github.com/hans-linger/wormses/engine/ring"
	"github.com/hans-linger/wormses/engine/spine"
)

// config is the construction-time snapshot assembled by the builder options.
// Chain and field options are collected and forwarded to the respective
// constructors so each package owns its own defaults.
type config struct {
	chainOptions []spine.ChainBuilderOption
	fieldOptions []ring.FieldBuilderOption
	buffer       instance_buffer.InstanceBuffer
	events       EventFunc
}

func newConfig() *config {
	return &config{}
}

// WormBuilderOption is a functional option for configuring a Worm.
// Use the With* functions to create options that are applied during NewWorm.
type WormBuilderOption func(*config)

// WithTotalLength sets the worm's nominal body length; the segment and ring
// count is floor(totalLength / segmentSpacing).
//
// Parameters:
//   - length: the body length in world units
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithTotalLength(length float32) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithTotalLength(length))
	}
}

// WithSegmentSpacing sets the rest-length spacing between spine segments.
//
// Parameters:
//   - spacing: the rest length in world units
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithSegmentSpacing(spacing float32) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithSegmentSpacing(spacing))
	}
}

// WithHeadSpeed sets the head's forward speed in world units per second.
//
// Parameters:
//   - speed: the head speed
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithHeadSpeed(speed float32) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithHeadSpeed(speed))
	}
}

// WithTurnInertia sets the per-tick heading blend fraction in [0, 1].
//
// Parameters:
//   - inertia: the blend fraction (1 = snap to target immediately)
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithTurnInertia(inertia float32) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithTurnInertia(inertia))
	}
}

// WithFollowStiffness sets the body relaxation correction fraction.
//
// Parameters:
//   - stiffness: the fraction of excess stretch corrected per tick
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithFollowStiffness(stiffness float32) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithFollowStiffness(stiffness))
	}
}

// WithDirectionChangeInterval sets how long the head keeps a steering target
// before sampling a new one. Pass 0 to disable retargeting.
//
// Parameters:
//   - interval: the retarget interval
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithDirectionChangeInterval(interval time.Duration) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithDirectionChangeInterval(interval))
	}
}

// WithRand injects the seedable pseudo-random source used for steering, so
// movement is reproducible in tests and demos.
//
// Parameters:
//   - rng: the seeded random source
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithRand(rng *rand.Rand) WormBuilderOption {
	return func(c *config) {
		c.chainOptions = append(c.chainOptions, spine.WithRand(rng))
	}
}

// WithRingRadius sets the base ring cross-section radius.
//
// Parameters:
//   - radius: the base radius in world units
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithRingRadius(radius float32) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithRingRadius(radius))
	}
}

// WithRingThickness sets the ring tube thickness reported to the renderer.
//
// Parameters:
//   - thickness: the tube thickness in world units
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithRingThickness(thickness float32) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithRingThickness(thickness))
	}
}

// WithPulsationAmplitude sets the peristaltic wave amplitude.
//
// Parameters:
//   - amplitude: the tangent-aligned offset amplitude in world units
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithPulsationAmplitude(amplitude float32) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithPulsationAmplitude(amplitude))
	}
}

// WithPulsationSpeed sets the temporal frequency of the traveling waves.
//
// Parameters:
//   - speed: the wave speed in radians per second
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithPulsationSpeed(speed float64) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithPulsationSpeed(speed))
	}
}

// WithFrictionVariation sets how strongly per-ring friction coefficients
// scale ring responsiveness.
//
// Parameters:
//   - variation: the scaling strength
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithFrictionVariation(variation float32) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithFrictionVariation(variation))
	}
}

// WithMaxFrictionSpeed caps per-ring velocity magnitude; 0 leaves it
// uncapped.
//
// Parameters:
//   - speed: the maximum velocity magnitude
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithMaxFrictionSpeed(speed float32) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithMaxFrictionSpeed(speed))
	}
}

// WithColorFunc sets the per-ring color function.
//
// Parameters:
//   - fn: the color function; nil keeps the default traveling wave
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithColorFunc(fn ring.ColorFunc) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithColorFunc(fn))
	}
}

// WithColorUpdateFrequency recomputes ring colors only every kth tick.
//
// Parameters:
//   - k: the color update stride in ticks
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithColorUpdateFrequency(k int) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithColorUpdateFrequency(k))
	}
}

// WithRadiusKeys sets the keyframes of the body's radius profile, sorted
// ascending by Height.
//
// Parameters:
//   - keys: the radius keyframes
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithRadiusKeys(keys []ring.RadiusKey) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithRadiusKeys(keys))
	}
}

// WithBlendCurve sets the radius profile interpolation curve.
//
// Parameters:
//   - curve: one of BlendLinear, BlendCosine, BlendSmoothstep
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithBlendCurve(curve ring.BlendCurve) WormBuilderOption {
	return func(c *config) {
		c.fieldOptions = append(c.fieldOptions, ring.WithBlendCurve(curve))
	}
}

// WithInstanceBuffer supplies an externally owned instance buffer, typically
// one mirrored to the GPU via instance_buffer.NewGPUSync. The buffer must
// hold at least as many instances as the worm has rings; NewWorm panics
// otherwise.
//
// Parameters:
//   - buf: the instance buffer to write into
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithInstanceBuffer(buf instance_buffer.InstanceBuffer) WormBuilderOption {
	return func(c *config) {
		c.buffer = buf
	}
}

// WithEvents subscribes a lifecycle event callback. Events fire on
// construction, steering retargets, and disposal; no subscriber means no
// side effects.
//
// Parameters:
//   - fn: the event callback
//
// Returns:
//   - WormBuilderOption: option function to apply
func WithEvents(fn EventFunc) WormBuilderOption {
	return func(c *config) {
		c.events = fn
	}
}
