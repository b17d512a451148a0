package sharedptr

// Weak is an observer handle: it references a control block without keeping
// the payload alive. It participates only in the weak-count protocol and
// can attempt to upgrade to an owning handle via Lock. The zero value is an
// empty handle.
type Weak[T any] struct {
	cb  *blockHeader
	ptr *T
}

// Clone returns a new observer handle for the same block. The weak count is
// incremented.
func (w Weak[T]) Clone() Weak[T] {
	if w.cb != nil {
		w.cb.retainWeak()
	}
	return Weak[T]{cb: w.cb, ptr: w.ptr}
}

// Move transfers the observation out of w, leaving it empty.
func (w *Weak[T]) Move() Weak[T] {
	out := Weak[T]{cb: w.cb, ptr: w.ptr}
	w.cb = nil
	w.ptr = nil
	return out
}

// Assign replaces w's observation with a clone of other, using the same
// clone-then-swap discipline as Shared.Assign.
func (w *Weak[T]) Assign(other Weak[T]) {
	tmp := other.Clone()
	w.Swap(&tmp)
	tmp.Release()
}

// AssignShared points w at the payload owned by s, equivalent to assigning
// s.Downgrade() over w.
func (w *Weak[T]) AssignShared(s Shared[T]) {
	tmp := s.Downgrade()
	w.Swap(&tmp)
	tmp.Release()
}

// Take moves other's observation into w, leaving other empty.
func (w *Weak[T]) Take(other *Weak[T]) {
	if w == other {
		return
	}
	tmp := other.Move()
	w.Swap(&tmp)
	tmp.Release()
}

// Swap exchanges the references held by two handles without touching any
// counts.
func (w *Weak[T]) Swap(other *Weak[T]) {
	w.cb, other.cb = other.cb, w.cb
	w.ptr, other.ptr = other.ptr, w.ptr
}

// Lock attempts to upgrade to an owning handle. It returns a non-empty
// handle iff the payload still has at least one owner at the instant of the
// call; otherwise it returns an empty handle. The check and the strong
// retain are one step relative to all other handle operations, since the
// model is single-threaded.
func (w Weak[T]) Lock() Shared[T] {
	if w.cb != nil && w.cb.strong() != 0 {
		w.cb.retainStrong()
		return Shared[T]{cb: w.cb, ptr: w.ptr}
	}
	return Shared[T]{}
}

// Expired reports whether the observed payload has been destroyed (or the
// handle is empty); equivalently, whether Lock would return an empty
// handle.
func (w Weak[T]) Expired() bool {
	return w.cb == nil || w.cb.strong() == 0
}

// UseCount returns the strong count of the observed block, or 0 for an
// empty handle.
func (w Weak[T]) UseCount() int {
	if w.cb == nil {
		return 0
	}
	return w.cb.strong()
}

// Release drops w's weak reference and empties the handle. The control
// block is freed if this was the last handle of either kind. Releasing an
// empty handle is a no-op.
func (w *Weak[T]) Release() {
	if w.cb != nil {
		w.cb.releaseWeak()
	}
	w.cb = nil
	w.ptr = nil
}

// Reset is Release under its conventional name.
func (w *Weak[T]) Reset() {
	w.Release()
}
