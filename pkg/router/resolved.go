package router

import "context"

// Resolved is the snapshot describing the outcome of one navigation attempt.
//
// Exactly two snapshots matter at a time: the current route (From) and the
// in-flight or just-settled one (To). Snapshots are created fresh per
// attempt and owned by the engine; consumers must treat them as read-only.
type Resolved struct {
	// Href is the full target href including the base path.
	Href string

	// Path is the matched route pattern, e.g. "/settings/:tab".
	Path string

	// Params holds the parsed route parameters of the whole chain.
	Params map[string]any

	// Search holds the parsed search values, child levels shadowing parents.
	Search map[string]any

	// Comps holds the resolved component values, two per level in root-to-
	// leaf order: error boundary then layout for ancestors, error boundary
	// then page for the final level.
	Comps []any

	// Err is the captured navigation error, nil on success.
	Err error

	// ErrIndex is the level the error is attributed to, -1 when Err is nil.
	// Level 0 is the root layout.
	ErrIndex int
}

// Errored reports whether the attempt captured an error.
func (r *Resolved) Errored() bool {
	return r.Err != nil
}

// ErrorSlot returns the index into Comps of the error boundary guarding the
// failed level, or -1 when no error was captured. Everything before this
// index is safe to render.
func (r *Resolved) ErrorSlot() int {
	if r.Err == nil {
		return -1
	}
	return r.ErrIndex * 2
}

// Nav is the argument passed to before and after hooks.
type Nav struct {
	// To is the route being navigated to.
	To *Resolved

	// From is the current route.
	From *Resolved

	// Context is the router-wide shared context value.
	Context any
}

// Hook observes a navigation attempt. The context is the per-attempt
// cancellation signal; hooks performing cancellable work should pass it
// along. Returning an error captures it on the resolved route; returning a
// redirect restarts the attempt against the redirect target.
type Hook func(ctx context.Context, nav Nav) error
