package sharedptr

import "github.com/iahmad1337/sharedptr/arena"

// EventType identifies a control-block lifecycle transition.
type EventType uint8

const (
	// EventBlockAllocated fires when a control block takes a payload under
	// management.
	EventBlockAllocated EventType = iota

	// EventPayloadDestroyed fires when the strong count reaches zero and
	// the payload has been destroyed. Fires exactly once per block,
	// strictly before EventBlockFreed.
	EventPayloadDestroyed

	// EventBlockFreed fires when the weak count reaches zero and the block
	// has released its slot.
	EventBlockFreed
)

// Event describes a control-block lifecycle transition. Strong and Weak are
// the counter values after the transition.
type Event struct {
	Type   EventType
	Slot   arena.Slot
	Strong int
	Weak   int
}

// Observer receives control-block lifecycle events from a Registry.
type Observer interface {
	OnBlockEvent(Event)
}
