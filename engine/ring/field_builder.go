package ring

// Default tuning for a ring field. The velocity damping factor sits in the
// critically-damped-feeling band; the approach rate is the base
// responsiveness before the per-ring friction coefficient scales it.
const (
	defaultPulsationAmplitude = float32(0.35)
	defaultPulsationSpeed     = 2.4
	defaultRingRadius         = float32(1)
	defaultRingThickness      = float32(0.18)
	defaultApproachRate       = float32(0.12)
	defaultCoupling           = float32(0.05)
	defaultVelocityDamping    = float32(0.86)
	defaultFrictionVariation  = float32(0.5)
	defaultMaxFrictionSpeed   = float32(0)
	defaultColorEvery         = uint64(2)
)

// FieldBuilderOption is a functional option for configuring a Field.
// Use the With* functions to create options that are applied directly to the
// field instance.
type FieldBuilderOption func(*field)

// WithPulsationAmplitude sets the peristaltic wave amplitude in world units.
//
// Parameters:
//   - amplitude: the tangent-aligned target offset amplitude
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithPulsationAmplitude(amplitude float32) FieldBuilderOption {
	return func(f *field) {
		f.amplitude = amplitude
	}
}

// WithPulsationSpeed sets the temporal frequency of the traveling waves.
//
// Parameters:
//   - speed: the wave speed in radians per second
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithPulsationSpeed(speed float64) FieldBuilderOption {
	return func(f *field) {
		f.pulseSpeed = speed
	}
}

// WithRingRadius sets the base cross-section radius before profile and
// pulsation modulation.
//
// Parameters:
//   - radius: the base radius in world units
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithRingRadius(radius float32) FieldBuilderOption {
	return func(f *field) {
		if radius > 0 {
			f.ringRadius = radius
		}
	}
}

// WithRingThickness sets the ring tube thickness reported to the rendering
// collaborator.
//
// Parameters:
//   - thickness: the tube thickness in world units
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithRingThickness(thickness float32) FieldBuilderOption {
	return func(f *field) {
		if thickness > 0 {
			f.ringThickness = thickness
		}
	}
}

// WithApproachRate sets the base responsiveness of the damped approach,
// before the per-ring friction coefficient scales it.
//
// Parameters:
//   - rate: the base responsiveness fraction per frame
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithApproachRate(rate float32) FieldBuilderOption {
	return func(f *field) {
		if rate > 0 {
			f.approach = rate
		}
	}
}

// WithCoupling sets the fraction of the leading neighbor's velocity folded
// into each ring, propagating the wave coherently down the body. Pass 0 to
// disable coupling.
//
// Parameters:
//   - coupling: the neighbor velocity fraction
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithCoupling(coupling float32) FieldBuilderOption {
	return func(f *field) {
		if coupling >= 0 {
			f.coupling = coupling
		}
	}
}

// WithVelocityDamping sets the multiplicative per-frame velocity damping
// factor. Values outside (0, 1) keep the default.
//
// Parameters:
//   - damping: the damping factor
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithVelocityDamping(damping float32) FieldBuilderOption {
	return func(f *field) {
		if damping > 0 && damping < 1 {
			f.damping = damping
		}
	}
}

// WithFrictionVariation sets how strongly a ring's friction coefficient
// scales its responsiveness.
//
// Parameters:
//   - variation: the scaling strength
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithFrictionVariation(variation float32) FieldBuilderOption {
	return func(f *field) {
		if variation >= 0 {
			f.frictionVariation = variation
		}
	}
}

// WithMaxFrictionSpeed caps each ring's per-frame velocity magnitude.
// Pass 0 to leave velocities uncapped (default).
//
// Parameters:
//   - speed: the maximum velocity magnitude, or 0 for uncapped
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithMaxFrictionSpeed(speed float32) FieldBuilderOption {
	return func(f *field) {
		if speed >= 0 {
			f.maxFrictionSpeed = speed
		}
	}
}

// WithRadiusKeys sets the keyframes of the body's radius profile. Keys must
// be sorted ascending by Height; heights map along the chain's total length.
//
// Parameters:
//   - keys: the radius keyframes
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithRadiusKeys(keys []RadiusKey) FieldBuilderOption {
	return func(f *field) {
		f.radiusKeys = keys
	}
}

// WithBlendCurve sets the interpolation curve used between radius keys.
//
// Parameters:
//   - curve: one of BlendLinear, BlendCosine, BlendSmoothstep
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithBlendCurve(curve BlendCurve) FieldBuilderOption {
	return func(f *field) {
		f.curve = curve
	}
}

// WithColorFunc sets the per-ring color function. Nil keeps the default
// traveling color wave.
//
// Parameters:
//   - fn: the color function
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithColorFunc(fn ColorFunc) FieldBuilderOption {
	return func(f *field) {
		if fn != nil {
			f.colorFn = fn
		}
	}
}

// WithColorUpdateFrequency recomputes colors only every kth update to reduce
// write volume; transforms are always recomputed. Values < 1 mean every
// update.
//
// Parameters:
//   - k: the color update stride in ticks
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithColorUpdateFrequency(k int) FieldBuilderOption {
	return func(f *field) {
		if k >= 1 {
			f.colorEvery = uint64(k)
		}
	}
}
