package swarm

import (
	"math/rand"
	"testing"
	"time"

	"github.com/hans-linger/wormses/engine/worm"
)

func newSwarmWorm(seed int64) worm.Worm {
	return worm.NewWorm(
		worm.WithTotalLength(4),
		worm.WithSegmentSpacing(0.5),
		worm.WithDirectionChangeInterval(300*time.Millisecond),
		worm.WithRand(rand.New(rand.NewSource(seed))),
	)
}

func TestSwarmTickAdvancesEveryWorm(t *testing.T) {
	s := NewSwarm(WithTickWorkers(2))
	worms := make([]worm.Worm, 4)
	for i := range worms {
		worms[i] = newSwarmWorm(int64(i + 1))
		s.Add(worms[i])
	}
	if s.Count() != 4 {
		t.Fatalf("count = %d, want 4", s.Count())
	}

	for _, w := range worms {
		w.Buffer().ClearTransformsDirty()
	}

	s.Tick(1.0/60.0, 1.0/60.0)

	// Tick blocks until every worm has updated, so all buffers are dirty
	// as soon as it returns.
	for i, w := range worms {
		if !w.Buffer().TransformsDirty() {
			t.Fatalf("worm %d buffer not written after swarm tick", i)
		}
	}
}

func TestSwarmWormsMoveIndependently(t *testing.T) {
	a := newSwarmWorm(1)
	b := newSwarmWorm(2)
	s := NewSwarm(WithWorms(a, b))

	now := 0.0
	for i := 0; i < 120; i++ {
		now += 1.0 / 60.0
		s.Tick(1.0/60.0, now)
	}

	if a.HeadPosition() == b.HeadPosition() {
		t.Fatalf("differently seeded worms ended at the same position %v", a.HeadPosition())
	}
}

func TestSwarmRemove(t *testing.T) {
	a := newSwarmWorm(1)
	b := newSwarmWorm(2)
	s := NewSwarm(WithWorms(a, b))

	s.Remove(a)
	if s.Count() != 1 {
		t.Fatalf("count after remove = %d, want 1", s.Count())
	}

	a.Buffer().ClearTransformsDirty()
	b.Buffer().ClearTransformsDirty()
	s.Tick(1.0/60.0, 1.0/60.0)

	if a.Buffer().TransformsDirty() {
		t.Fatalf("removed worm was ticked")
	}
	if !b.Buffer().TransformsDirty() {
		t.Fatalf("remaining worm was not ticked")
	}

	// Removing a worm that is not registered is a no-op.
	s.Remove(a)
	if s.Count() != 1 {
		t.Fatalf("count after double remove = %d, want 1", s.Count())
	}
}

func TestSwarmTickEmptyIsNoop(t *testing.T) {
	s := NewSwarm()
	s.Tick(1.0/60.0, 0) // must not block or panic
	if s.Count() != 0 {
		t.Fatalf("count = %d, want 0", s.Count())
	}
}

func TestSwarmDisposeDisposesWorms(t *testing.T) {
	disposed := 0
	w := worm.NewWorm(
		worm.WithTotalLength(4),
		worm.WithSegmentSpacing(0.5),
		worm.WithEvents(func(e worm.Event) {
			if e.Kind == worm.EventDisposed {
				disposed++
			}
		}),
	)
	s := NewSwarm(WithWorms(w))

	s.Dispose()
	if disposed != 1 {
		t.Fatalf("EventDisposed fired %d times, want 1", disposed)
	}
	if s.Count() != 0 {
		t.Fatalf("count after dispose = %d, want 0", s.Count())
	}

	// Dispose is idempotent at the swarm level.
	s.Dispose()
	if disposed != 1 {
		t.Fatalf("second dispose re-fired events")
	}
}

func TestSwarmWorms(t *testing.T) {
	a := newSwarmWorm(1)
	s := NewSwarm(WithWorms(a))

	cp := s.Worms()
	if len(cp) != 1 || cp[0] != a {
		t.Fatalf("Worms() = %v", cp)
	}
	// Mutating the copy must not affect the swarm.
	cp[0] = nil
	if s.Count() != 1 || s.Worms()[0] != a {
		t.Fatalf("Worms() copy aliased internal state")
	}
}
