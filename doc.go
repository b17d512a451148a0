// Package sharedptr provides reference-counted shared ownership of a single
// heap value, with non-owning observer handles.
//
// Multiple owning handles share one payload through a control block; the
// payload is destroyed exactly once, at the moment the last owner releases
// it. Observer handles can check liveness and attempt to reacquire ownership
// without extending the payload's lifetime.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	sharedptr/       Handle types and the counting engine
//	├── arena/       Slot table backing control-block allocation
//	├── internal/    Build-tagged debug assertions
//	└── cmd/ptrwatch Interactive inspector for live control blocks
//
// # Quick Start
//
// Construct a payload in place and share it:
//
//	a := sharedptr.New(42)
//	defer a.Release()
//
//	b := a.Clone()
//	fmt.Println(b.Value(), a.UseCount()) // 42 2
//	b.Release()
//
// Adopt an externally allocated value with a custom drop function:
//
//	buf := newBuffer()
//	h, err := sharedptr.Adopt(buf, func(b *buffer) { b.free() })
//
// Observe without owning:
//
//	w := a.Downgrade()
//	if s := w.Lock(); s.Valid() {
//	    defer s.Release()
//	    // payload is alive for as long as s is held
//	}
//
// # Ownership Protocol
//
// Every control block carries two counters. The strong count is the number
// of owning handles; the weak count is the strong count plus the number of
// observer handles. When the strong count reaches zero the payload is
// destroyed; when the weak count reaches zero the block itself is freed.
// Payload destruction always runs strictly before the block is freed.
//
// Handles are value types, but Go has no copy hooks: duplicating a handle
// goes through Clone (or Assign), and dropping one goes through Release (or
// Reset). Copying a handle struct directly without Clone produces two
// handles backed by a single counted reference, and releasing both corrupts
// the counts.
//
// # Construction Paths
//
// New constructs the payload inside the control block, so block and payload
// share one allocation. Adopt wraps an existing pointer in a separate block
// and attaches a DropFunc; this is the only operation in the package that
// can fail (see Adopt). Alias builds a handle that shares another handle's
// block while pointing at a different address, such as a field of the owned
// value.
//
// # Thread Safety
//
// Counters are plain integers. Handles that share a control block must be
// used from a single goroutine, or all operations on them must be
// externally synchronized. This is a deliberate non-goal of the library.
package sharedptr
