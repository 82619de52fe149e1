package ring

import (
	"fmt"
	"math"

	"github.com/hans-linger/wormses/common"
	"github.com/hans-linger/wormses/engine/instance_buffer"
	"github.com/hans-linger/wormses/engine/spine"
)

// localUp is the reference axis the ring geometry is modeled around; each
// ring is oriented by the shortest arc from this axis to its segment tangent.
var localUp = [3]float32{0, 1, 0}

// state is the deformation state of one ring.
type state struct {
	friction float32 // responsiveness coefficient in [-1, 1]
	velocity [3]float32
	position [3]float32 // rendered position, chases target
	target   [3]float32
	color    [3]float32
}

// field implements the Field interface.
type field struct {
	chain spine.Chain
	buf   instance_buffer.InstanceBuffer
	rings []state

	amplitude         float32
	pulseSpeed        float64
	ringRadius        float32
	ringThickness     float32
	approach          float32
	coupling          float32
	damping           float32
	frictionVariation float32
	maxFrictionSpeed  float32

	radiusKeys []RadiusKey
	curve      BlendCurve
	colorFn    ColorFunc
	colorEvery uint64

	springs scaleSprings
	tick    uint64
}

// Field owns one deformable ring per spine segment. Each update it reads the
// chain's post-advance frames, synthesizes a pulsation target per ring,
// integrates a damped approach toward it, orients the ring along the local
// tangent, and writes transform and color into the instance buffer.
//
// The ring count equals the chain's segment count for the field's lifetime;
// a Field is singly-owned and has exclusive write access to its buffer.
type Field interface {
	// Update advances every ring by one frame and writes the results into
	// the instance buffer. Must be called after the chain has advanced so it
	// observes post-update spine state only.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous frame in seconds
	//   - now: running wall clock in seconds
	Update(deltaTime float32, now float64)

	// Count returns the number of rings, always equal to the chain's segment
	// count.
	Count() int

	// SetFrictionCoefficient sets ring index's responsiveness coefficient,
	// clamped to [-1, 1]. Out-of-range indices are ignored.
	//
	// Parameters:
	//   - index: the ring index
	//   - value: the coefficient; higher chases the target faster
	SetFrictionCoefficient(index int, value float32)

	// FrictionCoefficient returns ring index's responsiveness coefficient,
	// or 0 for out-of-range indices.
	FrictionCoefficient(index int) float32

	// SetColorFunc replaces the per-ring color function. Passing nil restores
	// the default traveling color wave.
	//
	// Parameters:
	//   - fn: the color function
	SetColorFunc(fn ColorFunc)

	// RingPosition returns ring index's current rendered position.
	RingPosition(index int) [3]float32

	// Thickness returns the configured ring tube thickness, consumed by the
	// rendering collaborator when building ring geometry.
	Thickness() float32

	// Release clears the ring state. The field must not be updated afterward.
	Release()
}

var _ Field = &field{}

// NewField creates one ring per chain segment, each seeded at its segment's
// position, and binds the field to the given instance buffer. Panics if the
// buffer holds fewer instances than the chain has segments: resizing a chain
// without rebuilding its field is a structural invariant violation, not a
// recoverable condition.
//
// Parameters:
//   - chain: the spine chain the rings follow
//   - buf: the instance buffer the field writes into
//   - options: functional options for field configuration
//
// Returns:
//   - Field: the newly created field
func NewField(chain spine.Chain, buf instance_buffer.InstanceBuffer, options ...FieldBuilderOption) Field {
	if buf.Count() < chain.Count() {
		panic(fmt.Sprintf("ring: instance buffer holds %d instances for %d segments", buf.Count(), chain.Count()))
	}

	f := &field{
		chain:             chain,
		buf:               buf,
		amplitude:         defaultPulsationAmplitude,
		pulseSpeed:        defaultPulsationSpeed,
		ringRadius:        defaultRingRadius,
		ringThickness:     defaultRingThickness,
		approach:          defaultApproachRate,
		coupling:          defaultCoupling,
		damping:           defaultVelocityDamping,
		frictionVariation: defaultFrictionVariation,
		maxFrictionSpeed:  defaultMaxFrictionSpeed,
		curve:             BlendCosine,
		colorEvery:        defaultColorEvery,
	}

	for _, opt := range options {
		opt(f)
	}

	if f.colorFn == nil {
		f.colorFn = DefaultColorFunc()
	}
	if f.colorEvery == 0 {
		f.colorEvery = 1
	}

	n := chain.Count()
	f.rings = make([]state, n)
	for i := range f.rings {
		seg := chain.Segment(i)
		f.rings[i].position = seg.Position
		f.rings[i].target = seg.Position
	}
	f.springs = newScaleSprings(n, 60, 4.5, 0.8, 1)

	return f
}

// Update integrates every ring. The damped approach is a per-frame
// integrator, so deltaTime only matters to the spine; it is accepted here to
// keep the tick signature uniform.
func (f *field) Update(deltaTime float32, now float64) {
	n := len(f.rings)
	if n == 0 {
		return
	}
	colorTick := f.tick%f.colorEvery == 0

	for i := 0; i < n; i++ {
		r := &f.rings[i]
		seg := f.chain.Segment(i)

		progress := float32(0)
		if n > 1 {
			progress = float32(i) / float32(n-1)
		}

		// Pulsation target: primary traveling wave plus a faster secondary
		// wave at a different spatial frequency and phase offset.
		phase := float64(progress)*math.Pi*3 + now*f.pulseSpeed
		phase2 := float64(progress)*math.Pi*7 - now*f.pulseSpeed*1.7 + 1.3
		offset := f.amplitude * float32(math.Sin(phase)+0.35*math.Sin(phase2))
		r.target = common.Add3(seg.Position, common.Scale3(seg.Tangent, offset))

		// Damped approach: responsiveness scales with the ring's friction
		// coefficient; neighbor coupling propagates the wave coherently.
		respond := f.approach * (1 + f.frictionVariation*r.friction)
		if respond < 0 {
			respond = 0
		}
		r.velocity = common.Add3(r.velocity, common.Scale3(common.Sub3(r.target, r.position), respond))
		if i > 0 && f.coupling > 0 {
			r.velocity = common.Add3(r.velocity, common.Scale3(f.rings[i-1].velocity, f.coupling))
		}
		r.velocity = common.Scale3(r.velocity, f.damping)
		if f.maxFrictionSpeed > 0 {
			if speed := common.Length3(r.velocity); speed > f.maxFrictionSpeed {
				r.velocity = common.Scale3(r.velocity, f.maxFrictionSpeed/speed)
			}
		}
		r.position = common.Add3(r.position, r.velocity)

		// Orientation: shortest arc from the ring's modeling axis to the
		// local tangent.
		rot := common.QuatBetween(localUp, seg.Tangent)

		// Scale: profile base along the body, modulated by the pulsation
		// multiplier and settled through the spring field.
		height := progress * f.chain.TotalLength()
		base := RadiusFromKeys(f.radiusKeys, f.curve, height)
		smoothed := f.springs.step(i, float64(base)*Pulse(float64(progress), now))
		scale := f.ringRadius * float32(smoothed)

		f.buf.SetTransformAt(i, r.position, rot, scale)

		if colorTick {
			c := f.colorFn(progress, now)
			if i > 0 {
				c = lerpRGB(c, f.rings[i-1].color, 0.25)
			}
			r.color = c
			f.buf.SetColorAt(i, c)
		}
	}

	f.tick++
}

func (f *field) Count() int {
	return len(f.rings)
}

func (f *field) SetFrictionCoefficient(index int, value float32) {
	if index < 0 || index >= len(f.rings) {
		return
	}
	f.rings[index].friction = common.Clamp(value, -1, 1)
}

func (f *field) FrictionCoefficient(index int) float32 {
	if index < 0 || index >= len(f.rings) {
		return 0
	}
	return f.rings[index].friction
}

func (f *field) SetColorFunc(fn ColorFunc) {
	if fn == nil {
		fn = DefaultColorFunc()
	}
	f.colorFn = fn
}

func (f *field) RingPosition(index int) [3]float32 {
	if index < 0 || index >= len(f.rings) {
		return [3]float32{}
	}
	return f.rings[index].position
}

func (f *field) Release() {
	f.rings = nil
	f.springs.pos = nil
	f.springs.vel = nil
}

// Thickness returns the configured ring tube thickness. Exposed for the
// rendering collaborator; the field itself only scales the cross-section.
func (f *field) Thickness() float32 {
	return f.ringThickness
}
