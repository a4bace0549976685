package route

import (
	"strings"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// LayoutOptions configures the layout level of a route.
// Component and Lazy are mutually exclusive; leaving both unset means the
// layout renders nothing of its own.
type LayoutOptions struct {
	// Component is a concrete layout component value.
	Component any

	// Lazy lazily loads the layout component.
	Lazy LoaderFunc

	// ErrorComponent is the error boundary wrapping the layout level.
	ErrorComponent any

	// Params parses the raw captures of this node. Parameter parsing is
	// decided once per node, at the layout level.
	Params ParamsFunc

	// Search parses the search query at the layout level.
	Search SearchFunc

	// Load loads data for the layout level.
	Load LoadFunc
}

// PageOptions configures the page level of a route.
type PageOptions struct {
	// Component is a concrete page component value.
	Component any

	// Lazy lazily loads the page component.
	Lazy LoaderFunc

	// ErrorComponent is the error boundary wrapping the page level.
	ErrorComponent any

	// Search parses the search query at the page level.
	Search SearchFunc

	// Load loads data for the page level.
	Load LoadFunc
}

// StandalonePageOptions configures a single-level route built without a
// separate layout. Only here may Params be supplied at the page call, since
// no layout level exists to own it.
type StandalonePageOptions struct {
	PageOptions

	// Params parses the raw captures of this node.
	Params ParamsFunc
}

// Builder constructs a route definition in two steps: an optional Layout
// call followed by a Page call. Nesting is expressed by chaining builders,
// one path segment per builder.
type Builder struct {
	parent  *Definition
	segment string
	path    string
	pattern *Pattern
}

// PageBuilder is the second builder step returned by Layout. It only exposes
// Page, and its options cannot re-declare Params: the layout level already
// owns parameter parsing for the whole node.
type PageBuilder struct {
	b      *Builder
	layout LayoutOptions
}

// New starts building a route under parent. A nil parent builds the root
// route, whose segment must be "/". Every other segment must be a single
// path segment without a slash.
func New(parent *Definition, segment string) (*Builder, error) {
	if parent == nil {
		if segment != "/" {
			return nil, errors.New("C004").WithDetail("segment %q", segment)
		}
		return &Builder{segment: segment, path: "/"}, nil
	}

	if segment == "" || strings.Contains(segment, "/") {
		return nil, errors.New("C005").WithDetail("segment %q", segment)
	}
	if strings.Index(segment, ":") > 0 {
		return nil, errors.New("C008").WithDetail("segment %q", segment)
	}

	return &Builder{
		parent:  parent,
		segment: segment,
		path:    routepath.Resolve(parent.Path, segment),
		pattern: ParsePattern(segment),
	}, nil
}

// Layout registers the layout level and returns the page step.
func (b *Builder) Layout(opts LayoutOptions) *PageBuilder {
	return &PageBuilder{b: b, layout: opts}
}

// Page finishes a single-level route with no separate layout.
func (b *Builder) Page(opts StandalonePageOptions) (*Definition, error) {
	return b.finish(LayoutOptions{Params: opts.Params}, opts.PageOptions)
}

// Page finishes the route with the page level.
func (pb *PageBuilder) Page(opts PageOptions) (*Definition, error) {
	return pb.b.finish(pb.layout, opts)
}

func (b *Builder) finish(layout LayoutOptions, page PageOptions) (*Definition, error) {
	layoutSlot, err := componentSlot(b.path, layout.Component, layout.Lazy)
	if err != nil {
		return nil, err
	}
	pageSlot, err := componentSlot(b.path, page.Component, page.Lazy)
	if err != nil {
		return nil, err
	}

	d := &Definition{
		Path:    b.path,
		Pattern: b.pattern,
		Components: [4]*Slot{
			errorSlot(layout.ErrorComponent),
			layoutSlot,
			errorSlot(page.ErrorComponent),
			pageSlot,
		},
		Loads:  [2]LoadFunc{layout.Load, page.Load},
		Search: [2]SearchFunc{layout.Search, page.Search},
		Params: layout.Params,
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func componentSlot(path string, component any, lazy LoaderFunc) (*Slot, error) {
	switch {
	case component != nil && lazy != nil:
		return nil, errors.New("C003").
			WithDetail("route %q: a slot cannot be both concrete and lazy", path)
	case lazy != nil:
		return Lazy(lazy), nil
	case component != nil:
		return Value(component), nil
	default:
		return Empty(), nil
	}
}

func errorSlot(component any) *Slot {
	if component == nil {
		return Empty()
	}
	return Value(component)
}
