package store

import (
	"slices"
	"testing"
)

func TestObservableDeliversCurrentThenChanges(t *testing.T) {
	o := NewObservable(1)

	var a, b []int
	unsubA := o.Subscribe(func(v int) { a = append(a, v) })
	o.Subscribe(func(v int) { b = append(b, v) })

	o.Set(2)
	o.Set(3)
	unsubA()
	o.Set(4)

	if !slices.Equal(a, []int{1, 2, 3}) {
		t.Errorf("listener a got %v", a)
	}
	if !slices.Equal(b, []int{1, 2, 3, 4}) {
		t.Errorf("listener b got %v", b)
	}
	if o.Len() != 1 {
		t.Errorf("expected 1 listener, got %d", o.Len())
	}
}

// TestObservableReentrantSetKeepsOrder proves nested publishes are queued
func TestObservableReentrantSetKeepsOrder(t *testing.T) {
	o := NewObservable(0)

	var first, second []int
	o.Subscribe(func(v int) {
		first = append(first, v)
		if v == 1 {
			o.Set(2)
		}
	})
	o.Subscribe(func(v int) { second = append(second, v) })

	o.Set(1)

	if !slices.Equal(first, []int{0, 1, 2}) {
		t.Errorf("first got %v", first)
	}
	if !slices.Equal(second, []int{0, 1, 2}) {
		t.Errorf("second got %v, want values in publish order", second)
	}
	if o.Get() != 2 {
		t.Errorf("expected final value 2, got %d", o.Get())
	}
}

func TestObservableUnsubscribeDuringDelivery(t *testing.T) {
	o := NewObservable("a")

	var got []string
	var unsub func()
	unsub = o.Subscribe(func(v string) {
		got = append(got, v)
		if v == "b" {
			unsub()
		}
	})

	o.Set("b")
	o.Set("c")

	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestDerivedRecomputesEagerly(t *testing.T) {
	src := NewObservable(2)
	calls := 0
	d := NewDerived(src, func(v int) int {
		calls++
		return v * 10
	})

	if d.Get() != 20 {
		t.Fatalf("expected 20, got %d", d.Get())
	}

	var seen []int
	d.Subscribe(func(v int) { seen = append(seen, v) })

	src.Set(3)
	src.Set(4)

	if !slices.Equal(seen, []int{20, 30, 40}) {
		t.Errorf("derived listener got %v", seen)
	}
	if calls != 3 {
		t.Errorf("expected 3 computations, got %d", calls)
	}

	d.Close()
	src.Set(5)
	if d.Get() != 40 {
		t.Errorf("closed derived should keep last value, got %d", d.Get())
	}
	if calls != 3 {
		t.Errorf("closed derived recomputed: %d calls", calls)
	}
}
