// Package arena provides a slot table for heap objects with explicit free.
//
// Control blocks have a lifetime that is managed by the counting protocol,
// not by reachability: a block must be freed exactly once, at the moment its
// weak count reaches zero. The slot table makes that protocol observable —
// every live block occupies a slot, and freeing the block releases the slot
// back to a free list for reuse.
//
//	table := arena.New()
//
//	// Allocate a slot for a value
//	slot, err := table.Alloc(block)
//
//	// Look it up
//	v, ok := table.Get(slot)
//
//	// Release it (exactly once)
//	v, ok := table.Free(slot)
//
// Slot 0 is reserved and always invalid.
//
// The table is single-threaded, matching the counting protocol it backs.
// Concurrent use from multiple goroutines requires external synchronization.
package arena
