package pool

import (
	"math/rand"
	"testing"
)

type item struct{ id int }

func TestActivateEmptyPool(t *testing.T) {
	p := New[*item](4)

	if _, ok := p.ActivateObject(); ok {
		t.Error("ActivateObject() on empty pool should fail")
	}

	p.Add(&item{1})
	got, ok := p.ActivateObject()
	if !ok || got.id != 1 {
		t.Fatalf("ActivateObject() = %v, %v, expected item 1", got, ok)
	}
	if _, ok := p.ActivateObject(); ok {
		t.Error("ActivateObject() with no inactive items should fail")
	}
}

func TestDeactivateSwapsToBoundary(t *testing.T) {
	p := New[*item](4)
	a, b, c := &item{1}, &item{2}, &item{3}
	p.Add(a)
	p.Add(b)
	p.Add(c)
	p.ActivateObject()
	p.ActivateObject()
	p.ActivateObject()

	if !p.DeactivateObject(a) {
		t.Fatal("DeactivateObject(a) should succeed")
	}
	if p.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, expected 2", p.ActiveCount())
	}
	if p.IsActive(a) {
		t.Error("a should be inactive")
	}
	if !p.IsActive(b) || !p.IsActive(c) {
		t.Error("b and c should stay active")
	}

	// Reactivation hands back the item that was just released.
	got, _ := p.ActivateObject()
	if got != a {
		t.Errorf("ActivateObject() = %v, expected a", got)
	}
}

func TestUnknownItemsAreNoOps(t *testing.T) {
	p := New[*item](2)
	a := &item{1}
	p.Add(a)

	if p.DeactivateObject(&item{9}) {
		t.Error("DeactivateObject(unknown) should be a no-op")
	}
	if p.DeactivateObject(a) {
		t.Error("DeactivateObject(inactive) should be a no-op")
	}
	p.Add(a)
	if p.Count() != 1 {
		t.Errorf("Add(duplicate) changed Count() to %d", p.Count())
	}
	if _, ok := p.GetObject(0); ok {
		t.Error("GetObject(0) should fail with no active items")
	}
}

func TestClearCallsDestroy(t *testing.T) {
	p := New[*item](3)
	for i := 0; i < 3; i++ {
		p.Add(&item{i})
	}
	p.ActivateObject()

	destroyed := 0
	p.Clear(func(*item) { destroyed++ })

	if destroyed != 3 {
		t.Errorf("destroy called %d times, expected 3", destroyed)
	}
	if p.Count() != 0 || p.ActiveCount() != 0 {
		t.Errorf("Clear() left Count=%d ActiveCount=%d", p.Count(), p.ActiveCount())
	}
}

func TestPartitionInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := New[*item](0)
	var all []*item

	for step := 0; step < 2000; step++ {
		switch rng.Intn(3) {
		case 0:
			it := &item{len(all)}
			all = append(all, it)
			p.Add(it)
		case 1:
			p.ActivateObject()
		case 2:
			if len(all) > 0 {
				p.DeactivateObject(all[rng.Intn(len(all))])
			}
		}

		if p.ActiveCount() < 0 || p.ActiveCount() > p.Count() {
			t.Fatalf("step %d: ActiveCount=%d Count=%d", step, p.ActiveCount(), p.Count())
		}
		seen := make(map[*item]bool, p.Count())
		for _, it := range p.items {
			if seen[it] {
				t.Fatalf("step %d: item %d appears twice", step, it.id)
			}
			seen[it] = true
		}
		for i, it := range p.items {
			if p.index[it] != i {
				t.Fatalf("step %d: index map stale for item %d", step, it.id)
			}
		}
	}
}
