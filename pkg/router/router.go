package router

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// DefaultMaxRedirects bounds redirect chains. Exceeding the bound is
// treated as a fault, since it almost always indicates a redirect loop
// between hooks.
const DefaultMaxRedirects = 16

// Config configures a Router.
type Config struct {
	// Routes maps absolute path patterns to their definitions. Each key
	// must equal the Path of its definition, and a root route keyed by "/"
	// is mandatory.
	Routes map[string]*route.Definition

	// Base is the base path prepended to every href. When empty, the
	// platform's document base hint is consulted.
	Base string

	// Context is a shared value handed to every hook and load for
	// dependency injection. It is router-scoped, not route-scoped.
	Context any

	// OnError receives every captured navigation error and every fault.
	OnError func(error)

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Platform supplies browser-only capabilities; NoopPlatform when nil.
	Platform Platform

	// MaxRedirects bounds redirect chains; DefaultMaxRedirects when 0.
	MaxRedirects int
}

// Router resolves navigation targets through a route trie and drives the
// hook pipeline. The trie is built once at construction and read-only
// afterwards; the current/in-flight route snapshots are owned exclusively
// by the Router.
type Router struct {
	root         *node
	routes       map[string]*route.Definition
	base         string
	appCtx       any
	onError      func(error)
	logger       *slog.Logger
	platform     Platform
	maxRedirects int

	mu             sync.Mutex
	before         []*hookEntry
	after          []*hookEntry
	sealed         bool
	from           *Resolved
	seq            uint64
	cancelInflight context.CancelFunc
}

type hookEntry struct {
	fn Hook
}

// New builds a Router from cfg, validating every route definition and
// inserting it into the trie. Configuration violations are returned
// immediately; they are never deferred to the first navigation.
func New(cfg Config) (*Router, error) {
	platform := cfg.Platform
	if platform == nil {
		platform = NoopPlatform{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxRedirects := cfg.MaxRedirects
	if maxRedirects == 0 {
		maxRedirects = DefaultMaxRedirects
	}

	base := cfg.Base
	if base == "" {
		base = platform.DocumentBase()
	}
	base = routepath.NormalizeBase(base)

	if _, ok := cfg.Routes["/"]; !ok {
		return nil, errors.New("C001")
	}

	r := &Router{
		root:         newNode(""),
		routes:       make(map[string]*route.Definition, len(cfg.Routes)),
		base:         base,
		appCtx:       cfg.Context,
		onError:      cfg.OnError,
		logger:       logger,
		platform:     platform,
		maxRedirects: maxRedirects,
		from:         &Resolved{ErrIndex: -1},
	}

	// Insertion order is fixed so configuration conflicts reproduce.
	paths := make([]string, 0, len(cfg.Routes))
	for path := range cfg.Routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		def := cfg.Routes[path]
		if def == nil || def.Path != path {
			return nil, errors.New("C002").WithDetail("key %q", path)
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if err := r.root.insert(path, def); err != nil {
			return nil, err
		}
		r.routes[path] = def
	}

	return r, nil
}

// Before registers a hook observing navigation attempts before components
// resolve and loads run. Hooks must be registered before the first
// navigation settles; afterwards registration is a logged no-op. The
// returned function unregisters exactly this hook.
func (r *Router) Before(h Hook) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(&r.before, h)
}

// After registers a hook observing settled navigations. After hooks are the
// subscription point UI adapters use to project the resolved route into
// their own state. Same registration window rules as Before.
func (r *Router) After(h Hook) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(&r.after, h)
}

// register must be called with r.mu held.
func (r *Router) register(list *[]*hookEntry, h Hook) func() {
	if r.sealed {
		r.logger.Warn("hook registered after first navigation settled; ignoring")
		return func() {}
	}

	e := &hookEntry{fn: h}
	*list = append(*list, e)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, x := range *list {
			if x == e {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// Context returns the shared context value supplied at construction.
func (r *Router) Context() any {
	return r.appCtx
}

// Base returns the normalized base path, "" when none is configured.
func (r *Router) Base() string {
	return r.base
}

// Paths returns the registered route path patterns in no particular order.
func (r *Router) Paths() []string {
	out := make([]string, 0, len(r.routes))
	for path := range r.routes {
		out = append(out, path)
	}
	return out
}

// From returns the current route snapshot. Before the first committed
// navigation it is an empty snapshot with no href.
func (r *Router) From() *Resolved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.from
}

// snapshotHooks copies a hook list for one attempt so concurrent
// unregistration cannot shift indexes mid-run.
func (r *Router) snapshotHooks(list *[]*hookEntry) []Hook {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Hook, len(*list))
	for i, e := range *list {
		out[i] = e.fn
	}
	return out
}

// reportFault logs and delivers a fault. Faults, unlike captured
// navigation errors, also fail the Navigate call that produced them.
func (r *Router) reportFault(err error) {
	r.logger.Error("navigation fault", "error", err)
	if r.onError != nil {
		r.onError(err)
	}
}
