package router

import (
	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// node is one segment position in the route trie.
type node struct {
	// segment is the literal segment text, kept for display.
	segment string

	// pattern is set on dynamic nodes and matches one segment (or the rest
	// of the path for ":name*" / ":name+").
	pattern *route.Pattern

	// children are static children, matched by exact segment string.
	children []*node

	// dynChild is the dynamic child. At most one dynamic pattern may occupy
	// a given trie position.
	dynChild *node

	// def terminates a registered route. Pass-through nodes have none.
	def *route.Definition
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// findChild finds a static child with an exact segment match.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves the static child for the given segment.
func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newNode(segment)
	n.children = append(n.children, child)
	return child
}

// insert walks or creates the node chain for path and attaches def at the
// terminal node. Registering a second dynamic template at an occupied
// position is a configuration conflict, not an overwrite.
func (n *node) insert(path string, def *route.Definition) error {
	cur := n
	for _, seg := range routepath.Segments(path) {
		pat := route.ParsePattern(seg)
		if pat == nil {
			cur = cur.addChild(seg)
			continue
		}
		if cur.dynChild == nil {
			child := newNode(seg)
			child.pattern = pat
			cur.dynChild = child
		} else if cur.dynChild.segment != seg {
			return errors.New("C006").
				WithDetail("route %q: %q conflicts with existing %q", path, seg, cur.dynChild.segment)
		}
		cur = cur.dynChild
	}
	cur.def = def
	return nil
}

// matched is the outcome of a trie lookup: the per-level component slots,
// load and search functions (root level first), the parsed parameters, and
// any parameter error captured along the way. A capture failure does not
// abort the lookup; it marks the level it belongs to.
type matched struct {
	leaf     *route.Definition
	comps    []*route.Slot
	loads    []route.LoadFunc
	searches []route.SearchFunc
	params   map[string]any
	err      error
	errIndex int
}

// lookupStep pairs a visited node with the raw captures extracted at it.
type lookupStep struct {
	node   *node
	raw    map[string]string
	rawErr error
}

// lookup resolves a canonical pathname against the trie rooted at n.
//
// The root definition is always included as the outermost level. Each
// subsequent segment prefers an exact static child over the dynamic child;
// if neither matches, the whole lookup fails. Nodes without a definition
// contribute no level of their own: their captures flow down to the next
// level that has one. The final node contributes its page pair, every
// earlier definition its layout pair.
func (n *node) lookup(pathname string) (*matched, bool) {
	segments := routepath.Segments(pathname)

	steps := []lookupStep{{node: n}}
	cur := n

	for i := 0; i < len(segments); {
		seg := segments[i]

		if child := cur.findChild(seg); child != nil {
			steps = append(steps, lookupStep{node: child})
			cur = child
			i++
			continue
		}

		dyn := cur.dynChild
		if dyn == nil {
			return nil, false
		}

		st := lookupStep{node: dyn}
		if dyn.pattern.Rest() {
			value, ok := dyn.pattern.MatchRest(segments[i:])
			if !ok {
				return nil, false
			}
			st.raw, st.rawErr = capture(dyn.pattern.Name, value, true)
			i = len(segments)
		} else {
			value, ok := dyn.pattern.Match(seg)
			if !ok {
				return nil, false
			}
			st.raw, st.rawErr = capture(dyn.pattern.Name, value, false)
			i++
		}
		steps = append(steps, st)
		cur = dyn
	}

	// Path exhausted. When the final node has no definition, an optional
	// dynamic child may still terminate the route with an absent capture.
	if cur.def == nil {
		dyn := cur.dynChild
		if dyn == nil || dyn.pattern == nil || !dyn.pattern.Optional() || dyn.def == nil {
			return nil, false
		}
		steps = append(steps, lookupStep{node: dyn})
		cur = dyn
	}

	return assemble(steps, cur)
}

// capture decodes one extracted parameter value. Absent (empty) values are
// filtered out rather than captured.
func capture(name, value string, catchAll bool) (map[string]string, error) {
	if value == "" {
		return nil, nil
	}
	decoded, err := routepath.DecodeSegment(value, catchAll)
	if err != nil {
		return nil, err
	}
	return map[string]string{name: decoded}, nil
}

// assemble turns the visited steps into the per-level match result,
// applying each level's parameter parser to the captures it owns.
func assemble(steps []lookupStep, terminal *node) (*matched, bool) {
	m := &matched{
		leaf:     terminal.def,
		params:   make(map[string]any),
		errIndex: -1,
	}

	raw := make(map[string]string)
	var rawErr error
	level := 0

	for _, st := range steps {
		for k, v := range st.raw {
			raw[k] = v
		}
		if st.rawErr != nil && rawErr == nil {
			rawErr = st.rawErr
		}

		d := st.node.def
		if d == nil {
			continue
		}

		if st.node == terminal {
			m.comps = append(m.comps, d.Components[route.SlotPageError], d.Components[route.SlotPage])
			m.loads = append(m.loads, d.Loads[route.LevelPage])
			m.searches = append(m.searches, d.Search[route.LevelPage])
		} else {
			m.comps = append(m.comps, d.Components[route.SlotLayoutError], d.Components[route.SlotLayout])
			m.loads = append(m.loads, d.Loads[route.LevelLayout])
			m.searches = append(m.searches, d.Search[route.LevelLayout])
		}

		switch {
		case rawErr != nil:
			if m.err == nil {
				m.err = errors.New("N001").Wrap(rawErr)
				m.errIndex = level
			}
			rawErr = nil
		case len(raw) > 0 && d.Params != nil:
			parsed, err := d.Params(raw)
			if err != nil {
				if m.err == nil {
					m.err = errors.New("N001").Wrap(err)
					m.errIndex = level
				}
			} else {
				for k, v := range parsed {
					m.params[k] = v
				}
			}
		case len(raw) > 0:
			for k, v := range raw {
				m.params[k] = v
			}
		}
		if len(raw) > 0 {
			raw = make(map[string]string)
		}
		level++
	}

	return m, true
}
