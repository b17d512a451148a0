package arena

import "errors"

// ErrClosed is returned by Alloc after the table has been closed.
var ErrClosed = errors.New("arena: table closed")

// Slot identifies an allocation in a Table.
// Slot 0 is reserved and always invalid.
type Slot uint32

// Table is a dense slot table with free-list reuse.
type Table struct {
	entries  []entry
	freeList []Slot
	closed   bool
}

type entry struct {
	value any
	valid bool
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Slot, 0, 16),
	}
}

// Alloc stores a value and returns its slot.
func (t *Table) Alloc(value any) (Slot, error) {
	if t.closed {
		return 0, ErrClosed
	}

	e := entry{value: value, valid: true}

	if len(t.freeList) > 0 {
		slot := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[slot-1] = e
		return slot, nil
	}

	t.entries = append(t.entries, e)
	return Slot(len(t.entries)), nil
}

// Get retrieves the value in a slot.
func (t *Table) Get(slot Slot) (any, bool) {
	if slot == 0 {
		return nil, false
	}

	idx := slot - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// Free releases a slot and returns its value. Freeing an invalid or
// already-freed slot returns (nil, false).
func (t *Table) Free(slot Slot) (any, bool) {
	if slot == 0 {
		return nil, false
	}

	idx := slot - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, slot)

	return value, true
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all occupied slots.
func (t *Table) Each(fn func(Slot, any) bool) {
	for i, e := range t.entries {
		if e.valid {
			if !fn(Slot(i+1), e.value) {
				break
			}
		}
	}
}

// Close discards all entries and stops accepting allocations.
// Values in occupied slots are dropped without any cleanup hook; callers
// that need ordered teardown must free their slots first.
func (t *Table) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
	return nil
}
