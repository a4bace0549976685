package route

import (
	"context"
	"net/url"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

// Component slot positions within a Definition.
const (
	SlotLayoutError = 0
	SlotLayout      = 1
	SlotPageError   = 2
	SlotPage        = 3
)

// Load and search positions within a Definition.
const (
	LevelLayout = 0
	LevelPage   = 1
)

// ParamsFunc validates and transforms the raw parameter captures extracted
// at one route level. Captures with empty values are filtered out before the
// function is applied. Returning an error marks the navigation as errored at
// the owning level.
type ParamsFunc func(raw map[string]string) (map[string]any, error)

// SearchFunc parses the search query at one route level. Keys returned by a
// child level shadow the same keys returned by a parent level.
type SearchFunc func(query url.Values) (map[string]any, error)

// LoadArgs is the argument to a load hook. Unlike before/after hooks, loads
// do not observe the previous route.
type LoadArgs struct {
	// Href is the full target href of the navigation attempt.
	Href string

	// Path is the matched route pattern, e.g. "/users/:id".
	Path string

	// Params holds the parsed route parameters of the whole chain.
	Params map[string]any

	// Search holds the parsed search values of the whole chain.
	Search map[string]any

	// Context is the router-wide shared context value.
	Context any
}

// LoadFunc loads data for one level of a matched route. The context is the
// per-attempt cancellation signal; loads performing cancellable work should
// pass it along.
type LoadFunc func(ctx context.Context, args LoadArgs) error

// Definition is an immutable description of one route node: its absolute
// path pattern, parsing functions, load functions, and the four component
// slots (layout error boundary, layout, page error boundary, page).
//
// Definitions are produced by the Builder and never mutated afterwards; the
// one exception is the internal memoization of lazy slots.
type Definition struct {
	// Path is the normalized absolute path pattern, e.g. "/users/:id".
	// It is the unique key of the route table.
	Path string

	// Pattern matches the final path segment when it is dynamic; nil for
	// fully static paths.
	Pattern *Pattern

	// Components holds the four slots in order: layout error boundary,
	// layout, page error boundary, page.
	Components [4]*Slot

	// Loads holds the layout and page load functions; nil where absent.
	Loads [2]LoadFunc

	// Search holds the layout and page search parsers; nil where absent.
	Search [2]SearchFunc

	// Params is the parameter parser declared at whichever level owns it.
	Params ParamsFunc
}

// Validate checks the structural invariants the trie relies on: all four
// component slots present, a non-empty page slot, and concrete (never lazy)
// error boundary slots. A violation means the route wiring is broken and is
// reported as a fatal configuration error.
func (d *Definition) Validate() error {
	for i, s := range d.Components {
		if s == nil {
			return errors.New("C003").WithDetail("route %q: slot %d is nil", d.Path, i)
		}
	}
	if d.Components[SlotPage].Kind() == SlotEmpty {
		return errors.New("C003").WithDetail("route %q: page slot is empty", d.Path)
	}
	if d.Components[SlotLayoutError].Kind() == SlotLazy ||
		d.Components[SlotPageError].Kind() == SlotLazy {
		return errors.New("C007").WithDetail("route %q", d.Path)
	}
	return nil
}
