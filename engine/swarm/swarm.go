// package swarm manages a group of worms and advances them in parallel.
// Each worm owns its instance buffer and mutates only its own state during a
// tick, so the per-worm updates fan out across a bounded worker pool with no
// shared mutable data between tasks.
package swarm

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/hans-linger/wormses/engine/worm"
)

// swarm implements the Swarm interface.
type swarm struct {
	mu    sync.Mutex
	worms []worm.Worm

	// tickPool manages a bounded set of reusable goroutines for the parallel
	// tick fan-out. Workers persist across ticks, avoiding per-tick goroutine
	// spawn/teardown overhead.
	tickPool    worker.DynamicWorkerPool
	tickWorkers int // stored so we can log/inspect the configured count

	taskID int
}

// Swarm advances a collection of worms together. Worms are ticked in
// parallel; each tick blocks until every worm has finished updating, so
// callers can read instance buffers immediately after Tick returns.
type Swarm interface {
	// Add registers a worm with the swarm.
	//
	// Parameters:
	//   - w: the worm to register
	Add(w worm.Worm)

	// Remove unregisters a worm from the swarm. The worm is not disposed.
	//
	// Parameters:
	//   - w: the worm to unregister
	Remove(w worm.Worm)

	// Count returns the number of worms currently registered.
	//
	// Returns:
	//   - int: the worm count
	Count() int

	// Worms returns a copy of the registered worm slice.
	//
	// Returns:
	//   - []worm.Worm: a copy of the registered worms
	Worms() []worm.Worm

	// Tick advances every registered worm by one simulation step and blocks
	// until all worms have finished.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the previous tick, in seconds
	//   - wallClock: running wall clock in seconds
	Tick(deltaTime float32, wallClock float64)

	// Dispose disposes every registered worm and clears the swarm.
	// Safe to call multiple times.
	Dispose()
}

var _ Swarm = &swarm{}

// NewSwarm creates a new Swarm with the provided options.
//
// Parameters:
//   - options: functional options for swarm configuration
//
// Returns:
//   - Swarm: the newly created swarm
func NewSwarm(options ...SwarmBuilderOption) Swarm {
	s := &swarm{
		tickWorkers: defaultTickWorkers(),
	}

	for _, opt := range options {
		opt(s)
	}

	// Initialize the pool after options so WithTickWorkers can override the default.
	// Queue size of 256 accommodates typical swarm sizes with headroom.
	s.tickPool = worker.NewDynamicWorkerPool(s.tickWorkers, 256, poolIdleTimeout)

	return s
}

func (s *swarm) Add(w worm.Worm) {
	if w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worms = append(s.worms, w)
}

func (s *swarm) Remove(w worm.Worm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.worms {
		if existing == w {
			s.worms = append(s.worms[:i], s.worms[i+1:]...)
			return
		}
	}
}

func (s *swarm) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.worms)
}

func (s *swarm) Worms() []worm.Worm {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]worm.Worm, len(s.worms))
	copy(cp, s.worms)
	return cp
}

func (s *swarm) Tick(deltaTime float32, wallClock float64) {
	s.mu.Lock()
	worms := make([]worm.Worm, len(s.worms))
	copy(worms, s.worms)
	s.mu.Unlock()

	if len(worms) == 0 {
		return
	}

	// Fan the per-worm updates out to the tick pool. Workers are reused
	// across ticks (no goroutine spawn overhead). A WaitGroup provides
	// per-tick barrier sync since pool.Wait() blocks until workers idle-exit
	// which is unsuitable for frame-rate workloads.
	var wg sync.WaitGroup
	for _, w := range worms {
		wg.Add(1)
		wCap := w // capture for closure
		id := s.taskID
		s.taskID++
		s.tickPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				wCap.Tick(deltaTime, wallClock)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *swarm) Dispose() {
	s.mu.Lock()
	worms := s.worms
	s.worms = nil
	s.mu.Unlock()

	for _, w := range worms {
		w.Dispose()
	}
}
