package sharedptr

import "testing"

type pair struct {
	first  int
	second int
	drops  *int
}

func (p *pair) Drop() {
	if p.drops != nil {
		*p.drops++
	}
}

func TestAlias_SubObject(t *testing.T) {
	reg := NewRegistry()
	drops := 0

	parent := NewIn(reg, pair{first: 1, second: 2, drops: &drops})
	second := Alias(parent, &parent.Get().second)

	if second.Get() != &parent.Get().second {
		t.Fatal("Alias does not point at the sub-object")
	}
	if second.Value() != 2 {
		t.Fatalf("Expected 2, got %d", second.Value())
	}

	// The alias shares the parent's block: one block, strong count 2.
	if parent.UseCount() != 2 || second.UseCount() != 2 {
		t.Fatalf("Expected use count 2 on both, got %d and %d",
			parent.UseCount(), second.UseCount())
	}
	if reg.Live() != 1 {
		t.Fatalf("Expected a single block, got %d", reg.Live())
	}

	// The alias keeps the whole parent payload alive.
	parent.Release()
	if drops != 0 {
		t.Fatal("Parent destroyed while an alias is alive")
	}
	if second.Value() != 2 {
		t.Fatalf("Sub-object unreadable after parent release, got %d", second.Value())
	}

	second.Release()
	if drops != 1 {
		t.Fatalf("Expected exactly one drop, got %d", drops)
	}
}

func TestAlias_EqualityByAddress(t *testing.T) {
	reg := NewRegistry()

	parent := NewIn(reg, pair{first: 1, second: 2})
	first := Alias(parent, &parent.Get().first)
	second := Alias(parent, &parent.Get().second)

	// Same block, different addresses: handles compare unequal.
	if first.Equal(second) {
		t.Fatal("Aliases of different sub-objects should compare unequal")
	}
	other := first.Clone()
	if !first.Equal(other) {
		t.Fatal("Clones of one alias should compare equal")
	}

	first.Release()
	second.Release()
	other.Release()
	parent.Release()
}

func TestAlias_DowngradeAndLock(t *testing.T) {
	reg := NewRegistry()

	parent := NewIn(reg, pair{first: 1, second: 2})
	second := Alias(parent, &parent.Get().second)
	w := second.Downgrade()
	parent.Release()
	second.Release()

	if s := w.Lock(); s.Valid() {
		t.Fatal("Lock succeeded after all owners released")
	}
	w.Release()
	if reg.Live() != 0 {
		t.Fatalf("Expected 0 live blocks, got %d", reg.Live())
	}
}

func TestAlias_EmptyHandle(t *testing.T) {
	var empty Shared[pair]
	v := 1
	a := Alias(empty, &v)
	if a.Valid() {
		t.Fatal("Alias of an empty handle should be empty")
	}
}
