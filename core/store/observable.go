// Package store - Reactive pricing state
// Holds the mutable input state and a derived computation that follows it.
package store

// Listener receives every value published by an Observable
type Listener[T any] func(T)

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// Observable holds a value and notifies listeners synchronously on change.
// Values published from inside a listener are queued, so every listener
// sees every value in publish order. Not safe for concurrent use.
type Observable[T any] struct {
	value     T
	listeners []subscription[T]
	nextID    int
	queue     []T
	notifying bool
}

// NewObservable creates an observable holding initial
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// Get returns the latest value
func (o *Observable[T]) Get() T {
	return o.value
}

// Set publishes a new value to all listeners
func (o *Observable[T]) Set(value T) {
	o.value = value
	o.queue = append(o.queue, value)
	if o.notifying {
		return
	}

	o.notifying = true
	defer func() { o.notifying = false }()

	for len(o.queue) > 0 {
		next := o.queue[0]
		o.queue = o.queue[1:]

		// listeners added during delivery start with the current value already
		snapshot := make([]subscription[T], len(o.listeners))
		copy(snapshot, o.listeners)
		for _, sub := range snapshot {
			if o.active(sub.id) {
				sub.fn(next)
			}
		}
	}
}

// Subscribe registers fn, calls it with the current value, and returns
// a function that removes it.
func (o *Observable[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	o.nextID++
	id := o.nextID
	o.listeners = append(o.listeners, subscription[T]{id: id, fn: fn})

	fn(o.value)

	return func() {
		for i, sub := range o.listeners {
			if sub.id == id {
				o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered listeners
func (o *Observable[T]) Len() int {
	return len(o.listeners)
}

func (o *Observable[T]) active(id int) bool {
	for _, sub := range o.listeners {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Derived recomputes a value eagerly from a source observable
type Derived[S, T any] struct {
	out    *Observable[T]
	detach func()
}

// NewDerived subscribes to source and publishes fn(value) on every change
func NewDerived[S, T any](source *Observable[S], fn func(S) T) *Derived[S, T] {
	d := &Derived[S, T]{}
	first := true
	d.detach = source.Subscribe(func(v S) {
		if first {
			first = false
			d.out = NewObservable(fn(v))
			return
		}
		d.out.Set(fn(v))
	})
	return d
}

// Get returns the latest derived value
func (d *Derived[S, T]) Get() T {
	return d.out.Get()
}

// Subscribe registers fn on the derived value
func (d *Derived[S, T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	return d.out.Subscribe(fn)
}

// Close detaches from the source. The last value stays readable.
func (d *Derived[S, T]) Close() {
	if d.detach != nil {
		d.detach()
		d.detach = nil
	}
}
