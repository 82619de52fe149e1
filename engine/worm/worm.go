// package worm assembles a spine chain, a ring field, and an instance buffer
// into one procedurally animated worm. The worm produces numeric outputs
// only: per-ring transforms and colors in the instance buffer, plus head
// getters for camera-follow style consumers. Rendering is an external
// collaborator's job.
package worm

import (
	"github.com/hans-linger/wormses/engine/instance_buffer"
	"github.com/hans-linger/wormses/engine/ring"
	"github.com/hans-linger/wormses/engine/spine"
)

// worm implements the Worm interface.
type worm struct {
	chain spine.Chain
	rings ring.Field
	buf   instance_buffer.InstanceBuffer

	events   EventFunc
	disposed bool
}

// Worm is a procedurally animated, worm-like articulated body. An external
// scheduler calls Tick once per rendered frame; within one tick the spine is
// fully advanced before the ring field reads it, so the field never observes
// a mix of old and new spine state.
//
// A Worm is singly-owned and not safe for concurrent use; run each instance
// on one goroutine.
type Worm interface {
	// Tick advances the whole worm by one frame: head steering, body
	// relaxation, then ring deformation and instance buffer writes.
	// No-op after Dispose.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous frame in seconds
	//   - wallClock: running wall clock in seconds
	Tick(deltaTime float32, wallClock float64)

	// HeadPosition returns the current head position.
	HeadPosition() [3]float32

	// HeadDirection returns the current unit heading direction.
	HeadDirection() [3]float32

	// SetPosition translates the whole chain so the head lands at p,
	// preserving body shape.
	//
	// Parameters:
	//   - p: the new head position
	SetPosition(p [3]float32)

	// SetRingFrictionCoefficient sets one ring's responsiveness coefficient,
	// clamped to [-1, 1]. Out-of-range indices are ignored.
	//
	// Parameters:
	//   - index: the ring index
	//   - value: the coefficient
	SetRingFrictionCoefficient(index int, value float32)

	// SetColorFunc replaces the per-ring color function at runtime.
	//
	// Parameters:
	//   - fn: the color function; nil restores the default
	SetColorFunc(fn ring.ColorFunc)

	// RingCount returns the number of rings (equal to the spine segment
	// count).
	RingCount() int

	// Buffer returns the instance buffer the worm writes into. The rendering
	// collaborator reads transform and color data from it and clears the
	// dirty flags after upload.
	Buffer() instance_buffer.InstanceBuffer

	// Dispose releases the ring state and instance buffer and emits
	// EventDisposed. Subsequent Ticks are no-ops; Dispose itself is
	// idempotent.
	Dispose()
}

var _ Worm = &worm{}

// NewWorm creates a fully assembled worm: a spine chain sized from the
// configured length and spacing, one ring per segment, and an instance
// buffer sized to the ring count (or the buffer supplied via
// WithInstanceBuffer). Emits EventConstructed once assembly completes.
//
// Parameters:
//   - options: functional options for worm configuration
//
// Returns:
//   - Worm: the newly created worm
func NewWorm(options ...WormBuilderOption) Worm {
	cfg := newConfig()
	for _, opt := range options {
		opt(cfg)
	}

	w := &worm{events: cfg.events}

	chainOpts := cfg.chainOptions
	if cfg.events != nil {
		events := cfg.events
		chainOpts = append(chainOpts, spine.WithRetargetHook(func(direction [3]float32) {
			events(Event{Kind: EventRetargeted, Direction: direction})
		}))
	}
	w.chain = spine.NewChain(chainOpts...)

	w.buf = cfg.buffer
	if w.buf == nil {
		w.buf = instance_buffer.NewInstanceBuffer(w.chain.Count())
	}

	w.rings = ring.NewField(w.chain, w.buf, cfg.fieldOptions...)

	if w.events != nil {
		w.events(Event{Kind: EventConstructed, RingCount: w.rings.Count()})
	}
	return w
}

func (w *worm) Tick(deltaTime float32, wallClock float64) {
	if w.disposed {
		return
	}
	w.chain.Advance(deltaTime, wallClock)
	w.rings.Update(deltaTime, wallClock)
}

func (w *worm) HeadPosition() [3]float32 {
	return w.chain.HeadPosition()
}

func (w *worm) HeadDirection() [3]float32 {
	return w.chain.HeadDirection()
}

func (w *worm) SetPosition(p [3]float32) {
	w.chain.SetHeadPosition(p)
}

func (w *worm) SetRingFrictionCoefficient(index int, value float32) {
	w.rings.SetFrictionCoefficient(index, value)
}

func (w *worm) SetColorFunc(fn ring.ColorFunc) {
	w.rings.SetColorFunc(fn)
}

func (w *worm) RingCount() int {
	return w.rings.Count()
}

func (w *worm) Buffer() instance_buffer.InstanceBuffer {
	return w.buf
}

func (w *worm) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.rings.Release()
	w.buf.Release()
	if w.events != nil {
		w.events(Event{Kind: EventDisposed})
	}
}
