package worm

// EventKind identifies a worm lifecycle event.
type EventKind uint8

const (
	// EventConstructed fires once when the worm has been fully assembled.
	EventConstructed EventKind = iota
	// EventRetargeted fires each time the head samples a new steering
	// direction.
	EventRetargeted
	// EventDisposed fires once when the worm releases its resources.
	EventDisposed
)

// Event is a structured lifecycle notification. Events carry data instead of
// logging: a subscriber decides what, if anything, to do with them, and no
// subscriber means no side effects at all.
type Event struct {
	Kind EventKind

	// RingCount is populated on EventConstructed.
	RingCount int

	// Direction is populated on EventRetargeted with the new unit target
	// direction.
	Direction [3]float32
}

// EventFunc receives lifecycle events. Callbacks run synchronously on the
// ticking goroutine and must not block.
type EventFunc func(Event)
