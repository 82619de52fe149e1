package swarm

import (
	"runtime"
	"time"

	"github.com/hans-linger/wormses/engine/worm"
)

// poolIdleTimeout is how long pool workers linger before idle-exiting.
const poolIdleTimeout = 1 * time.Second

// defaultTickWorkers returns the default tick pool size.
func defaultTickWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

// SwarmBuilderOption is a functional option for configuring a Swarm.
// Use the With* functions to create options that are applied directly to the swarm instance.
type SwarmBuilderOption func(*swarm)

// WithTickWorkers sets the number of worker goroutines used during the
// parallel tick fan-out. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the worker count (values <= 0 are ignored)
//
// Returns:
//   - SwarmBuilderOption: option function to apply
func WithTickWorkers(n int) SwarmBuilderOption {
	return func(s *swarm) {
		if n <= 0 {
			return
		}
		s.tickWorkers = n
	}
}

// WithWorms registers worms with the swarm during construction.
//
// Parameters:
//   - worms: the worms to register
//
// Returns:
//   - SwarmBuilderOption: option function to apply
func WithWorms(worms ...worm.Worm) SwarmBuilderOption {
	return func(s *swarm) {
		for _, w := range worms {
			if w != nil {
				s.worms = append(s.worms, w)
			}
		}
	}
}
