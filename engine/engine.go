// package engine provides the frame driver for worm instances: a fixed-rate
// tick loop that plumbs delta time and a running wall clock into a tick
// callback. Rendering collaborators run their own frame loops; this driver
// exists for headless simulation, tests, and demos that need a scheduler.
package engine

import (
	"sync"
	"time"

	"github.com/hans-linger/wormses/engine/profiler"
)

// engine implements the Engine interface.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate     time.Duration
	tickCallback func(deltaTime float32, wallClock float64)
}

// Engine drives a tick callback at a configurable fixed rate, passing both
// the measured delta time and a monotonically increasing wall clock in
// seconds. The wall clock starts at zero when Run is called, which is the
// time base the worm's pulsation and steering schedules expect.
type Engine interface {
	// SetTickRate sets the tick rate in ticks per second.
	// If the engine is running, the change takes effect immediately.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers the function called each tick.
	// Use this for simulation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving
	//     the delta time in seconds and the running wall clock in seconds
	SetTickCallback(callback func(deltaTime float32, wallClock float64))

	// EnableProfiler enables tick-rate and memory telemetry output to the log.
	EnableProfiler()

	// DisableProfiler disables telemetry output.
	DisableProfiler()

	// Run starts the tick loop (blocks until Quit is called).
	Run()

	// Quit stops the tick loop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Defaults to 60 ticks per second with profiling disabled.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		tickRate:         time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run() {
	e.running = true
	e.wg.Add(1)
	go e.handleTicks()
	e.wg.Wait()
}

// Quit signals the tick goroutine to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handleTicks runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback at the configured rate and listens for dynamic rate
// changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTicks() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	start := time.Now()
	lastTick := start

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt, now.Sub(start).Seconds())
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.tickRate = newRate
		}
	}
}

// EnableProfiler enables telemetry output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables telemetry output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	newRate := time.Second / time.Duration(tps)

	if e.running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.tickRate = newRate
	}
}

// SetTickCallback registers the function called each tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32, wallClock float64)) {
	e.tickCallback = callback
}
