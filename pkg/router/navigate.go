package router

import (
	"context"
	"net/url"
	"sync"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// navigateOptions configures one navigation call.
type navigateOptions struct {
	preload bool
	replace bool
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*navigateOptions)

// WithPreload marks the navigation as speculative: components and loads
// warm up, but after hooks are skipped and the current route is untouched.
func WithPreload() NavigateOption {
	return func(o *navigateOptions) {
		o.preload = true
	}
}

// WithReplace records that the platform should replace the current history
// entry instead of pushing a new one.
func WithReplace() NavigateOption {
	return func(o *navigateOptions) {
		o.replace = true
	}
}

// Navigate resolves target through the route trie, runs the hook pipeline,
// and settles the attempt, following any redirect chain transparently.
//
// The returned snapshot is the settled route, whether it settled on success
// or on a captured error: parse, load, and component failures are recorded
// on the snapshot and delivered to OnError, never returned here. A non-nil
// error means an unexpected fault (invalid target, redirect loop).
//
// Navigating to the current route's href performs no work and returns the
// current snapshot unchanged.
func (r *Router) Navigate(ctx context.Context, target any, opts ...NavigateOption) (*Resolved, error) {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return r.navigate(ctx, target, o)
}

// Preload speculatively resolves target without committing it as the
// visible route. Components resolve and loads run so a later real
// navigation finds them warm.
func (r *Router) Preload(ctx context.Context, target any) (*Resolved, error) {
	return r.navigate(ctx, target, navigateOptions{preload: true})
}

// SchedulePreload hands a preload of target to the platform's idle
// scheduler.
func (r *Router) SchedulePreload(target any) {
	r.platform.SchedulePreload(func() {
		_, _ = r.Preload(context.Background(), target)
	})
}

func (r *Router) navigate(ctx context.Context, target any, o navigateOptions) (*Resolved, error) {
	href, err := r.Href(target)
	if err != nil {
		r.reportFault(err)
		return nil, err
	}

	r.mu.Lock()
	if !o.preload && r.from.Href != "" && href == r.from.Href {
		from := r.from
		r.mu.Unlock()
		return from, nil
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var seq uint64
	if !o.preload {
		// A newer committed attempt supersedes the in-flight one.
		if r.cancelInflight != nil {
			r.cancelInflight()
		}
		r.cancelInflight = cancel
		r.seq++
		seq = r.seq
	}
	r.mu.Unlock()

	if !o.preload {
		r.platform.Intercept(href, o.replace)
	}

	cur := href
	for hops := 0; ; hops++ {
		if hops > r.maxRedirects {
			err := errors.New("I001").WithDetail("last target %q", cur)
			r.reportFault(err)
			return nil, err
		}

		to, redirect, ok := r.attempt(attemptCtx, cur, o)
		if redirect != nil {
			next, err := r.Href(redirect.Target)
			if err != nil {
				r.reportFault(err)
				return nil, err
			}
			cur = next
			continue
		}
		if !ok {
			// Unmatched path: abandon the attempt, leave state untouched.
			return r.From(), nil
		}

		if !o.preload {
			r.mu.Lock()
			if r.seq == seq {
				r.from = to
				r.sealed = true
			}
			r.mu.Unlock()
		}
		if to.Err != nil && r.onError != nil {
			r.onError(to.Err)
		}
		return to, nil
	}
}

// attempt runs one pass of the state machine for href: lookup, search
// parsing, before hooks, component resolution concurrent with loads, after
// hooks. A redirect from any stage aborts the pass.
func (r *Router) attempt(ctx context.Context, href string, o navigateOptions) (*Resolved, *Redirect, bool) {
	pathWithBase, rawQuery := routepath.SplitPathAndQuery(href)
	pathname := routepath.TrimBase(pathWithBase, r.base)

	m, ok := r.root.lookup(pathname)
	if !ok {
		r.logger.Warn("no route matches path",
			"path", pathname,
			"error", errors.New("M001").WithDetail("path %q", pathname))
		return nil, nil, false
	}

	to := &Resolved{
		Href:     href,
		Path:     m.leaf.Path,
		Params:   m.params,
		Search:   make(map[string]any),
		Comps:    make([]any, len(m.comps)),
		Err:      m.err,
		ErrIndex: m.errIndex,
	}
	r.parseSearch(to, m, rawQuery)

	nav := Nav{To: to, From: r.From(), Context: r.appCtx}

	// Before hooks always run, even when the attempt already carries a
	// captured error. Hook failures attribute to the root level: the level
	// index tracks the stage, not the hook's position.
	redirect, err := r.runHooks(ctx, r.snapshotHooks(&r.before), nav)
	if redirect != nil {
		return nil, redirect, true
	}
	if err != nil && to.Err == nil {
		to.Err = errors.New("N005").Wrap(err)
		to.ErrIndex = 0
	}

	redirect = r.resolveAndLoad(ctx, to, m)
	if redirect != nil {
		return nil, redirect, true
	}

	// After hooks are skipped entirely for preloads: a preload computes
	// readiness without announcing a committed navigation.
	if !o.preload {
		redirect, err = r.runHooks(ctx, r.snapshotHooks(&r.after), nav)
		if redirect != nil {
			return nil, redirect, true
		}
		if err != nil && to.Err == nil {
			to.Err = errors.New("N005").Wrap(err)
			to.ErrIndex = 0
		}
	}

	return to, nil, true
}

// parseSearch applies each level's search parser to the query, root level
// first so that child keys shadow parent keys. The first failing level is
// captured; later levels still apply.
func (r *Router) parseSearch(to *Resolved, m *matched, rawQuery string) {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		if to.Err == nil {
			to.Err = errors.New("N002").Wrap(err)
			to.ErrIndex = 0
		}
		return
	}

	for level, parse := range m.searches {
		if parse == nil {
			continue
		}
		vals, err := parse(query)
		if err != nil {
			if to.Err == nil {
				to.Err = errors.New("N002").Wrap(err)
				to.ErrIndex = level
			}
			continue
		}
		for k, v := range vals {
			to.Search[k] = v
		}
	}
}

// resolveAndLoad resolves component slots concurrently with the load
// functions. Loads are skipped entirely when the attempt already captured
// an error; component resolution always proceeds so error boundaries have
// something to render.
func (r *Router) resolveAndLoad(ctx context.Context, to *Resolved, m *matched) *Redirect {
	var wg sync.WaitGroup

	compErrs := make([]error, len(m.comps))
	for i, slot := range m.comps {
		wg.Add(1)
		go func(i int, slot *route.Slot) {
			defer wg.Done()
			v, err := slot.Resolve(ctx)
			if err != nil {
				r.logger.Error("component resolution failed",
					"path", to.Path, "slot", i, "error", err)
				compErrs[i] = err
				return
			}
			to.Comps[i] = v
		}(i, slot)
	}

	loadErrs := make([]error, len(m.loads))
	if to.Err == nil {
		args := route.LoadArgs{
			Href:    to.Href,
			Path:    to.Path,
			Params:  to.Params,
			Search:  to.Search,
			Context: r.appCtx,
		}
		for i, load := range m.loads {
			if load == nil {
				continue
			}
			wg.Add(1)
			go func(i int, load route.LoadFunc) {
				defer wg.Done()
				loadErrs[i] = load(ctx, args)
			}(i, load)
		}
	}

	wg.Wait()

	// A redirect from any load aborts the attempt before after hooks run.
	for _, err := range loadErrs {
		if rd := asRedirect(err); rd != nil {
			return rd
		}
	}

	// When several concurrent failures land, attribution is deterministic:
	// the lowest failing level wins, and at the same level a load failure
	// outranks a component failure.
	if to.Err == nil {
		for level := range m.loads {
			if err := loadErrs[level]; err != nil {
				to.Err = errors.New("N003").Wrap(err)
				to.ErrIndex = level
				break
			}
			if err := levelCompErr(compErrs, level); err != nil {
				to.Err = errors.New("N004").Wrap(err)
				to.ErrIndex = level
				break
			}
		}
	}

	return nil
}

// levelCompErr returns the first component failure belonging to a level
// (two slots per level).
func levelCompErr(compErrs []error, level int) error {
	for _, i := range []int{level * 2, level*2 + 1} {
		if i < len(compErrs) && compErrs[i] != nil {
			return compErrs[i]
		}
	}
	return nil
}

// runHooks launches all hooks together and awaits them jointly. Redirects
// outrank plain errors; among several of a kind, registration order wins.
func (r *Router) runHooks(ctx context.Context, hooks []Hook, nav Nav) (*Redirect, error) {
	if len(hooks) == 0 {
		return nil, nil
	}

	errs := make([]error, len(hooks))
	var wg sync.WaitGroup
	for i, h := range hooks {
		wg.Add(1)
		go func(i int, h Hook) {
			defer wg.Done()
			errs[i] = h(ctx, nav)
		}(i, h)
	}
	wg.Wait()

	for _, err := range errs {
		if rd := asRedirect(err); rd != nil {
			return rd, nil
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}
