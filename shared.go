package sharedptr

import (
	"fmt"

	"github.com/iahmad1337/sharedptr/internal/debug"
)

// Shared is an owning handle: it holds a strong reference to a payload
// managed by a control block. The zero value is an empty handle.
//
// Handles are value types. Duplicating one goes through Clone, dropping one
// goes through Release; see the package documentation for why plain struct
// copies must not be released.
type Shared[T any] struct {
	cb  *blockHeader
	ptr *T
}

// New constructs a payload in place inside a fresh control block and
// returns the first owning handle. Block and payload share one allocation,
// which makes this the preferred construction path over Adopt.
func New[T any](value T) Shared[T] {
	return NewIn(defaultRegistry, value)
}

// NewIn is New against an explicit registry. Constructing against a closed
// registry is a precondition violation and panics.
func NewIn[T any](r *Registry, value T) Shared[T] {
	ob := &objBlock[T]{obj: value}
	ob.retainStrong()
	if err := r.allocate(&ob.blockHeader, ob); err != nil {
		panic(fmt.Sprintf("sharedptr: new on closed registry: %v", err))
	}
	return Shared[T]{cb: &ob.blockHeader, ptr: &ob.obj}
}

// Adopt takes ownership of an externally allocated payload. The drop
// function runs exactly once, when the last owner releases the payload; nil
// leaves the payload to the collector.
//
// This is the one construction path that can fail: if the control block
// cannot be allocated, drop is invoked on ptr before the error is returned,
// so the payload does not leak.
func Adopt[T any](ptr *T, drop DropFunc[T]) (Shared[T], error) {
	return AdoptIn(defaultRegistry, ptr, drop)
}

// AdoptIn is Adopt against an explicit registry.
func AdoptIn[T any](r *Registry, ptr *T, drop DropFunc[T]) (Shared[T], error) {
	debug.Assert(ptr != nil, "sharedptr: adopt of nil pointer")
	pb := &ptrBlock[T]{ptr: ptr, drop: drop}
	pb.retainStrong()
	if err := r.allocate(&pb.blockHeader, pb); err != nil {
		if drop != nil {
			drop(ptr)
		}
		return Shared[T]{}, fmt.Errorf("sharedptr: adopt: %w", err)
	}
	return Shared[T]{cb: &pb.blockHeader, ptr: ptr}, nil
}

// Alias builds a handle that shares s's control block but points at a
// different address, typically a field of the owned value. The aliased
// handle keeps the whole parent payload alive; UseCount tracks the parent's
// block. Aliasing an empty handle yields an empty handle.
func Alias[T, U any](s Shared[U], ptr *T) Shared[T] {
	if s.cb == nil {
		return Shared[T]{}
	}
	s.cb.retainStrong()
	return Shared[T]{cb: s.cb, ptr: ptr}
}

// Clone returns a new owning handle sharing the same payload. The strong
// count is incremented. Cloning an empty handle yields an empty handle.
func (s Shared[T]) Clone() Shared[T] {
	if s.cb != nil {
		s.cb.retainStrong()
	}
	return Shared[T]{cb: s.cb, ptr: s.ptr}
}

// Move transfers ownership out of s, leaving it empty. No counts change.
func (s *Shared[T]) Move() Shared[T] {
	out := Shared[T]{cb: s.cb, ptr: s.ptr}
	s.cb = nil
	s.ptr = nil
	return out
}

// Assign replaces s's reference with a clone of other. Implemented as
// clone-then-swap, so self-assignment is a no-op and the old payload is
// released only after the new reference is in place.
func (s *Shared[T]) Assign(other Shared[T]) {
	tmp := other.Clone()
	s.Swap(&tmp)
	tmp.Release()
}

// Take moves other's reference into s, leaving other empty. Same swap
// discipline as Assign; taking from itself is a no-op.
func (s *Shared[T]) Take(other *Shared[T]) {
	if s == other {
		return
	}
	tmp := other.Move()
	s.Swap(&tmp)
	tmp.Release()
}

// Swap exchanges the references held by two handles without touching any
// counts.
func (s *Shared[T]) Swap(other *Shared[T]) {
	s.cb, other.cb = other.cb, s.cb
	s.ptr, other.ptr = other.ptr, s.ptr
}

// Get returns the raw payload pointer without affecting ownership.
// Returns nil for an empty handle.
func (s Shared[T]) Get() *T {
	return s.ptr
}

// Value dereferences the payload. Calling Value on an empty handle is a
// precondition violation, matching raw-pointer semantics.
func (s Shared[T]) Value() T {
	debug.Assert(s.ptr != nil, "sharedptr: value of empty handle")
	return *s.ptr
}

// Valid reports whether the handle references a payload.
func (s Shared[T]) Valid() bool {
	return s.ptr != nil
}

// UseCount returns the strong count of the shared control block, or 0 for
// an empty handle.
func (s Shared[T]) UseCount() int {
	if s.cb == nil {
		return 0
	}
	return s.cb.strong()
}

// Equal reports whether two handles point at the same payload address.
// Aliases of one control block with different addresses compare unequal.
func (s Shared[T]) Equal(other Shared[T]) bool {
	return s.ptr == other.ptr
}

// Release drops s's strong reference and empties the handle. The payload is
// destroyed if this was the last owner. Releasing an empty handle is a
// no-op, so Release doubles as the handle's destructor.
func (s *Shared[T]) Release() {
	if s.cb != nil {
		s.cb.releaseStrong()
	}
	s.cb = nil
	s.ptr = nil
}

// Reset is Release under its conventional name.
func (s *Shared[T]) Reset() {
	s.Release()
}

// ResetTo replaces the handle with a freshly adopted payload, equivalent to
// assigning Adopt(ptr, drop) over s. The new block is allocated in the same
// registry as the current one (the default registry for an empty handle).
// On adoption failure s is left untouched and drop has already been applied
// to ptr.
func (s *Shared[T]) ResetTo(ptr *T, drop DropFunc[T]) error {
	r := defaultRegistry
	if s.cb != nil {
		r = s.cb.reg
	}
	fresh, err := AdoptIn(r, ptr, drop)
	if err != nil {
		return err
	}
	s.Swap(&fresh)
	fresh.Release()
	return nil
}

// Downgrade returns an observer handle for s's payload. The weak count is
// incremented; the strong count is not.
func (s Shared[T]) Downgrade() Weak[T] {
	if s.cb != nil {
		s.cb.retainWeak()
	}
	return Weak[T]{cb: s.cb, ptr: s.ptr}
}
