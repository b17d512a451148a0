package sharedptr

import (
	"github.com/iahmad1337/sharedptr/arena"
	"github.com/iahmad1337/sharedptr/internal/debug"
)

// DropFunc destroys an adopted payload. A nil DropFunc leaves the payload to
// the collector, the Go equivalent of plain delete semantics.
type DropFunc[T any] func(*T)

// Dropper is optionally implemented by payload types constructed via New
// that need cleanup beyond having their storage zeroed.
type Dropper interface {
	Drop()
}

// payloadBox is the dynamic half of a control block: the part that knows how
// to destroy its payload. Implemented by ptrBlock and objBlock.
type payloadBox interface {
	destroyPayload()
}

// blockHeader holds the counters and bookkeeping shared by both block
// variants. Blocks are heap-resident and never copied; handles reference
// them by pointer.
//
// Invariant: weakCnt = strongCnt + number of live observer handles, so
// weakCnt >= strongCnt at all times.
type blockHeader struct {
	strongCnt int
	weakCnt   int
	slot      arena.Slot
	reg       *Registry
	box       payloadBox
}

func (b *blockHeader) strong() int {
	return b.strongCnt
}

// retainStrong adds an owner. Every strong holder is implicitly a weak
// holder, so the weak count moves with it.
func (b *blockHeader) retainStrong() {
	b.strongCnt++
	b.retainWeak()
}

// releaseStrong drops an owner. The payload is destroyed when the last
// owner goes away, strictly before the weak release that may free the
// block, since destruction reads block state.
func (b *blockHeader) releaseStrong() {
	debug.Assert(b.strongCnt > 0, "sharedptr: strong release on zero count")
	b.strongCnt--
	if b.strongCnt == 0 {
		b.box.destroyPayload()
		b.reg.payloadDestroyed(b)
	}
	b.releaseWeak()
}

func (b *blockHeader) retainWeak() {
	b.weakCnt++
}

// releaseWeak drops a bookkeeping share. The block itself is freed when the
// last holder of either kind goes away.
func (b *blockHeader) releaseWeak() {
	debug.Assert(b.weakCnt > 0, "sharedptr: weak release on zero count")
	b.weakCnt--
	if b.weakCnt == 0 {
		b.reg.free(b)
	}
}

// ptrBlock owns an externally allocated payload through a raw pointer and a
// caller-supplied drop function.
type ptrBlock[T any] struct {
	blockHeader
	ptr  *T
	drop DropFunc[T]
}

func (pb *ptrBlock[T]) destroyPayload() {
	if pb.ptr == nil {
		return
	}
	if pb.drop != nil {
		pb.drop(pb.ptr)
	}
	pb.ptr = nil
}

// objBlock embeds the payload in the block itself, so block and payload
// share a single allocation.
type objBlock[T any] struct {
	blockHeader
	obj T
}

func (ob *objBlock[T]) destroyPayload() {
	if d, ok := any(&ob.obj).(Dropper); ok {
		d.Drop()
	}
	// The storage stays allocated until the block is freed; only the value
	// is torn down.
	var zero T
	ob.obj = zero
}
