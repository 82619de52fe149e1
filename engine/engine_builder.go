package engine

import "time"

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables telemetry output.
//
// Parameters:
//   - enabled: if true, enables telemetry output
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the tick rate in ticks per second.
// The tick callback will be called at this rate for simulation updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = 60.0
		}
		e.tickRate = time.Second / time.Duration(tps)
	}
}

// WithTickCallback registers the tick callback during engine construction.
//
// Parameters:
//   - callback: function to call each tick, receiving the delta time in
//     seconds and the running wall clock in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32, wallClock float64)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}
