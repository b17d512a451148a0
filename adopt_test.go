package sharedptr

import (
	"errors"
	"testing"

	"github.com/iahmad1337/sharedptr/arena"
)

func TestAdopt_DropRecorded(t *testing.T) {
	reg := NewRegistry()
	drops := 0

	payload := &tracked{value: 3}
	a, err := AdoptIn(reg, payload, func(p *tracked) { drops++ })
	if err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}
	if a.Get() != payload {
		t.Fatal("Handle does not reference the adopted payload")
	}

	b := a.Clone()
	a.Release()
	if drops != 0 {
		t.Fatal("Drop invoked before the last release")
	}

	b.Release()
	if drops != 1 {
		t.Fatalf("Expected exactly one drop, got %d", drops)
	}
	if reg.Live() != 0 {
		t.Fatalf("Expected no live blocks, got %d", reg.Live())
	}
}

func TestAdopt_NilDrop(t *testing.T) {
	reg := NewRegistry()

	v := 9
	a, err := AdoptIn(reg, &v, nil)
	if err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}
	if a.Value() != 9 {
		t.Fatalf("Expected 9, got %d", a.Value())
	}

	a.Release()
	if reg.Live() != 0 {
		t.Fatal("Block not freed after release")
	}
}

func TestAdopt_ClosedRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	drops := 0
	v := 1
	a, err := AdoptIn(reg, &v, func(p *int) { drops++ })
	if err == nil {
		t.Fatal("Expected adoption failure on closed registry")
	}
	if !errors.Is(err, arena.ErrClosed) {
		t.Fatalf("Expected ErrClosed in chain, got %v", err)
	}
	if a.Valid() {
		t.Fatal("Expected empty handle on failure")
	}

	// The payload must not leak: the drop runs before the error propagates.
	if drops != 1 {
		t.Fatalf("Expected drop invoked once on failure, got %d", drops)
	}
}

func TestNewIn_ClosedRegistryPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic from New on closed registry")
		}
	}()
	NewIn(reg, 1)
}

func TestResetTo_ClosedRegistry(t *testing.T) {
	reg := NewRegistry()

	a := NewIn(reg, 1)
	reg.Close()

	fresh := 2
	freshDrops := 0
	err := a.ResetTo(&fresh, func(p *int) { freshDrops++ })
	if err == nil {
		t.Fatal("Expected ResetTo failure on closed registry")
	}
	if freshDrops != 1 {
		t.Fatalf("Expected fresh payload cleaned up once, got %d", freshDrops)
	}

	// The original reference is untouched.
	if !a.Valid() || a.Value() != 1 || a.UseCount() != 1 {
		t.Fatal("ResetTo failure disturbed the handle")
	}

	a.Release()
}
