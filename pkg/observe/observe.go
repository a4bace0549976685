package observe

import (
	"sync"
	"time"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Pair is a before/after hook pair produced by an instrumentation
// constructor. The before hook opens a measurement for the attempt and the
// after hook closes it; both must be registered for the instrument to
// produce anything.
type Pair struct {
	Before router.Hook
	After  router.Hook
}

// Attach registers both hooks on r. The returned function unregisters them.
func (p Pair) Attach(r *router.Router) func() {
	unBefore := r.Before(p.Before)
	unAfter := r.After(p.After)
	return func() {
		unBefore()
		unAfter()
	}
}

// inflight tracks per-attempt measurement state between the before and
// after hook, keyed by the attempt's To snapshot. Attempts that never reach
// their after hook (preloads, redirected attempts) are swept once stale.
type inflight[T any] struct {
	mu      sync.Mutex
	entries map[any]inflightEntry[T]
	maxAge  time.Duration
	onSweep func(T)
}

type inflightEntry[T any] struct {
	value T
	at    time.Time
}

func newInflight[T any](maxAge time.Duration, onSweep func(T)) *inflight[T] {
	return &inflight[T]{
		entries: make(map[any]inflightEntry[T]),
		maxAge:  maxAge,
		onSweep: onSweep,
	}
}

func (f *inflight[T]) put(key any, v T) {
	now := time.Now()

	f.mu.Lock()
	var stale []T
	for k, e := range f.entries {
		if now.Sub(e.at) > f.maxAge {
			stale = append(stale, e.value)
			delete(f.entries, k)
		}
	}
	f.entries[key] = inflightEntry[T]{value: v, at: now}
	f.mu.Unlock()

	if f.onSweep != nil {
		for _, v := range stale {
			f.onSweep(v)
		}
	}
}

func (f *inflight[T]) take(key any) (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[key]
	if ok {
		delete(f.entries, key)
	}
	return e.value, ok
}
