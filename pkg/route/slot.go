package route

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// SlotKind identifies how a component slot produces its value.
type SlotKind int

const (
	// SlotEmpty renders nothing at this position.
	SlotEmpty SlotKind = iota

	// SlotValue holds a concrete component value.
	SlotValue

	// SlotLazy holds a loader that is invoked on first resolution.
	SlotLazy
)

// LoaderFunc produces the value of a lazily loaded component slot.
type LoaderFunc func(ctx context.Context) (any, error)

// Slot is one component position of a route definition. The kind is decided
// at build time and never inferred from the runtime shape of the value.
//
// A lazy slot memoizes its resolved value: the loader settles to a value at
// most once per process lifetime. Concurrent first-time resolutions share a
// single in-flight call. A failed load is not memoized, so a later lookup
// retries the loader.
type Slot struct {
	kind   SlotKind
	value  any
	loader LoaderFunc

	mu       sync.Mutex
	resolved bool
	group    singleflight.Group
}

// Empty returns a slot that renders nothing.
func Empty() *Slot {
	return &Slot{kind: SlotEmpty}
}

// Value returns a slot holding a concrete component value.
func Value(v any) *Slot {
	return &Slot{kind: SlotValue, value: v}
}

// Lazy returns a slot whose value is produced by loader on first resolution.
func Lazy(loader LoaderFunc) *Slot {
	return &Slot{kind: SlotLazy, loader: loader}
}

// Kind returns the slot kind.
func (s *Slot) Kind() SlotKind {
	return s.kind
}

// Resolve returns the slot's component value, invoking the loader for a lazy
// slot that has not settled yet. Empty slots resolve to nil.
//
// The context is advisory: it is handed to the loader of the call that ends
// up performing the load, and loaders are expected to honor it for
// cancellable work.
func (s *Slot) Resolve(ctx context.Context) (any, error) {
	switch s.kind {
	case SlotEmpty:
		return nil, nil
	case SlotValue:
		return s.value, nil
	}

	s.mu.Lock()
	if s.resolved {
		v := s.value
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("resolve", func() (any, error) {
		v, err := s.loader(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.value = v
		s.resolved = true
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Settled reports whether a lazy slot has already resolved to a value.
// Value slots are always settled, empty slots never are.
func (s *Slot) Settled() bool {
	switch s.kind {
	case SlotValue:
		return true
	case SlotLazy:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.resolved
	}
	return false
}
