package sharedptr

import (
	"go.uber.org/zap"

	"github.com/iahmad1337/sharedptr/arena"
)

// Registry tracks the control blocks that are currently alive. Every block
// occupies a slot in the registry's table from the moment its payload is
// taken under management until its weak count reaches zero.
//
// Most code uses the package default registry through New and Adopt; NewIn
// and AdoptIn target an explicit one, which keeps tests and tools isolated.
type Registry struct {
	table     *arena.Table
	observers []Observer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{table: arena.New()}
}

var defaultRegistry = NewRegistry()

// Default returns the package default registry used by New and Adopt.
func Default() *Registry {
	return defaultRegistry
}

// Live returns the number of control blocks currently alive.
func (r *Registry) Live() int {
	return r.table.Len()
}

// Subscribe adds an observer for block lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Close stops accepting new blocks. Blocks already alive keep working and
// still run their full destruction protocol; only construction fails after
// Close, which is the error path surfaced by Adopt.
func (r *Registry) Close() error {
	return r.table.Close()
}

// allocate registers a freshly constructed block. The caller has already
// registered the first strong reference.
func (r *Registry) allocate(b *blockHeader, box payloadBox) error {
	slot, err := r.table.Alloc(box)
	if err != nil {
		return err
	}
	b.slot = slot
	b.reg = r
	b.box = box

	Logger().Debug("block allocated",
		zap.Uint32("slot", uint32(slot)),
		zap.Int("strong", b.strongCnt),
		zap.Int("weak", b.weakCnt))
	r.notify(Event{Type: EventBlockAllocated, Slot: slot, Strong: b.strongCnt, Weak: b.weakCnt})
	return nil
}

// payloadDestroyed reports that a block's strong count hit zero and its
// payload destructor has run.
func (r *Registry) payloadDestroyed(b *blockHeader) {
	Logger().Debug("payload destroyed",
		zap.Uint32("slot", uint32(b.slot)),
		zap.Int("weak", b.weakCnt))
	r.notify(Event{Type: EventPayloadDestroyed, Slot: b.slot, Strong: 0, Weak: b.weakCnt})
}

// free releases the block's slot once its weak count hits zero.
func (r *Registry) free(b *blockHeader) {
	r.table.Free(b.slot)

	Logger().Debug("block freed", zap.Uint32("slot", uint32(b.slot)))
	r.notify(Event{Type: EventBlockFreed, Slot: b.slot})
	b.slot = 0
}

func (r *Registry) notify(e Event) {
	for _, o := range r.observers {
		o.OnBlockEvent(e)
	}
}
