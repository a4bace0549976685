package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	wferrors "github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/route"
)

// defFor builds a minimal layout+page definition for a path pattern.
func defFor(t testing.TB, path string, parse route.ParamsFunc) *route.Definition {
	t.Helper()
	var segs []string
	if path != "/" {
		segs = strings.Split(strings.TrimPrefix(path, "/"), "/")
	}

	parent := (*route.Definition)(nil)
	seg := "/"
	if len(segs) > 0 {
		// Synthesize the parent chain; only the final definition is used.
		parentPath := "/" + strings.Join(segs[:len(segs)-1], "/")
		parent = &route.Definition{Path: parentPath}
		seg = segs[len(segs)-1]
	}

	b, err := route.New(parent, seg)
	if err != nil {
		t.Fatalf("route.New(%q): %v", seg, err)
	}
	def, err := b.Layout(route.LayoutOptions{
		Component: "layout:" + path,
		Params:    parse,
	}).Page(route.PageOptions{Component: "page:" + path})
	if err != nil {
		t.Fatalf("building %q: %v", path, err)
	}
	return def
}

// buildTree inserts definitions into a fresh trie rooted at a root route.
func buildTree(t testing.TB, defs ...*route.Definition) *node {
	t.Helper()
	root := newNode("")
	for _, def := range defs {
		if err := root.insert(def.Path, def); err != nil {
			t.Fatalf("insert %q: %v", def.Path, err)
		}
	}
	return root
}

func TestNodeFindChild(t *testing.T) {
	root := newNode("")
	root.addChild("users")
	root.addChild("projects")

	tests := []struct {
		segment string
		want    bool
	}{
		{"users", true},
		{"projects", true},
		{"tasks", false},
		{"", false},
	}

	for _, tt := range tests {
		child := root.findChild(tt.segment)
		got := child != nil
		if got != tt.want {
			t.Errorf("findChild(%q) = %v, want %v", tt.segment, got, tt.want)
		}
	}
}

func TestInsertConflictingDynamic(t *testing.T) {
	root := newNode("")
	if err := root.insert("/users/:id", defFor(t, "/users/:id", nil)); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Same template is idempotent.
	if err := root.insert("/users/:id", defFor(t, "/users/:id", nil)); err != nil {
		t.Errorf("re-insert of same template: %v", err)
	}

	// A different template at the same position conflicts.
	err := root.insert("/users/:name", defFor(t, "/users/:name", nil))
	var werr *wferrors.Error
	if !errors.As(err, &werr) || werr.Code != "C006" {
		t.Errorf("conflicting insert error = %v, want C006", err)
	}
}

func TestLookupChainLength(t *testing.T) {
	rootDef := defFor(t, "/", nil)
	settings := defFor(t, "/settings", nil)
	tab := defFor(t, "/settings/:tab", nil)
	tree := buildTree(t, rootDef, settings, tab)

	tests := []struct {
		path      string
		wantComps int
		wantLeaf  string
	}{
		{"/", 2, "/"},
		{"/settings", 4, "/settings"},
		{"/settings/profile", 6, "/settings/:tab"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, ok := tree.lookup(tt.path)
			if !ok {
				t.Fatalf("lookup(%q) failed", tt.path)
			}
			if len(m.comps) != tt.wantComps {
				t.Errorf("comps length = %d, want %d", len(m.comps), tt.wantComps)
			}
			if len(m.loads) != tt.wantComps/2 || len(m.searches) != tt.wantComps/2 {
				t.Errorf("loads/searches length = %d/%d, want %d",
					len(m.loads), len(m.searches), tt.wantComps/2)
			}
			if m.leaf.Path != tt.wantLeaf {
				t.Errorf("leaf = %q, want %q", m.leaf.Path, tt.wantLeaf)
			}
		})
	}
}

func TestLookupTerminalUsesPageSlots(t *testing.T) {
	rootDef := defFor(t, "/", nil)
	settings := defFor(t, "/settings", nil)
	tree := buildTree(t, rootDef, settings)

	m, ok := tree.lookup("/settings")
	if !ok {
		t.Fatal("lookup failed")
	}

	// Root contributes its layout pair, the terminal its page pair.
	ctx := context.Background()
	if v, _ := m.comps[1].Resolve(ctx); v != "layout:/" {
		t.Errorf("comps[1] = %v, want root layout", v)
	}
	if v, _ := m.comps[3].Resolve(ctx); v != "page:/settings" {
		t.Errorf("comps[3] = %v, want settings page", v)
	}
}

func TestLookupParams(t *testing.T) {
	tree := buildTree(t,
		defFor(t, "/", nil),
		defFor(t, "/users/:id", nil),
	)

	m, ok := tree.lookup("/users/42")
	if !ok {
		t.Fatal("lookup failed")
	}
	if m.params["id"] != "42" {
		t.Errorf("params = %v, want id=42", m.params)
	}

	// The /users node exists but terminates no route.
	if _, ok := tree.lookup("/users"); ok {
		t.Error("lookup(/users) should fail: no route terminates there")
	}
	// Two levels only: root layout + :id page.
	if len(m.comps) != 4 {
		t.Errorf("comps length = %d, want 4", len(m.comps))
	}
}

func TestLookupStaticBeatsDynamic(t *testing.T) {
	tree := buildTree(t,
		defFor(t, "/", nil),
		defFor(t, "/users/new", nil),
		defFor(t, "/users/:id", nil),
	)

	m, ok := tree.lookup("/users/new")
	if !ok {
		t.Fatal("lookup failed")
	}
	if m.leaf.Path != "/users/new" {
		t.Errorf("leaf = %q, want static route", m.leaf.Path)
	}
	if len(m.params) != 0 {
		t.Errorf("params = %v, want none", m.params)
	}

	m, ok = tree.lookup("/users/42")
	if !ok {
		t.Fatal("lookup failed")
	}
	if m.leaf.Path != "/users/:id" || m.params["id"] != "42" {
		t.Errorf("leaf = %q params = %v, want dynamic match", m.leaf.Path, m.params)
	}
}

func TestLookupNotFound(t *testing.T) {
	tree := buildTree(t, defFor(t, "/", nil), defFor(t, "/about", nil))

	for _, path := range []string{"/missing", "/about/deeper", "/a/b/c"} {
		if _, ok := tree.lookup(path); ok {
			t.Errorf("lookup(%q) should fail", path)
		}
	}
}

func TestLookupOptionalSegment(t *testing.T) {
	tree := buildTree(t,
		defFor(t, "/", nil),
		defFor(t, "/files/:name?", nil),
	)

	m, ok := tree.lookup("/files/readme")
	if !ok || m.params["name"] != "readme" {
		t.Fatalf("lookup with value: ok=%v params=%v", ok, m.params)
	}

	// Absent value still matches; the capture is filtered out.
	m, ok = tree.lookup("/files")
	if !ok {
		t.Fatal("optional segment should match with no value")
	}
	if _, present := m.params["name"]; present {
		t.Errorf("params = %v, want no capture for absent value", m.params)
	}
	if m.leaf.Path != "/files/:name?" {
		t.Errorf("leaf = %q", m.leaf.Path)
	}
}

func TestLookupRestSegments(t *testing.T) {
	tree := buildTree(t,
		defFor(t, "/", nil),
		defFor(t, "/docs/:path*", nil),
	)

	m, ok := tree.lookup("/docs/guide/install/linux")
	if !ok {
		t.Fatal("lookup failed")
	}
	if m.params["path"] != "guide/install/linux" {
		t.Errorf("params = %v", m.params)
	}

	// Zero segments is a valid match for "*".
	m, ok = tree.lookup("/docs")
	if !ok {
		t.Fatal("star rest should match zero segments")
	}
	if _, present := m.params["path"]; present {
		t.Errorf("params = %v, want no capture", m.params)
	}
}

func TestLookupParseFailureCaptured(t *testing.T) {
	failing := func(raw map[string]string) (map[string]any, error) {
		if raw["id"] == "bad" {
			return nil, fmt.Errorf("not a number: %q", raw["id"])
		}
		return map[string]any{"id": raw["id"]}, nil
	}

	tree := buildTree(t,
		defFor(t, "/", nil),
		defFor(t, "/users/:id", failing),
	)

	m, ok := tree.lookup("/users/bad")
	if !ok {
		t.Fatal("parse failure must not abort the lookup")
	}
	if m.err == nil {
		t.Fatal("expected captured error")
	}
	// /users terminates no route, so :id is level 1 after the root.
	if m.errIndex != 1 {
		t.Errorf("errIndex = %d, want 1", m.errIndex)
	}
	// Chain still assembled for error boundary rendering.
	if len(m.comps) != 4 {
		t.Errorf("comps length = %d, want 4", len(m.comps))
	}

	m, ok = tree.lookup("/users/7")
	if !ok || m.err != nil || m.params["id"] != "7" {
		t.Errorf("good value: ok=%v err=%v params=%v", ok, m.err, m.params)
	}
}

func TestLookupEncodedSegment(t *testing.T) {
	tree := buildTree(t,
		defFor(t, "/", nil),
		defFor(t, "/search/:term", nil),
	)

	m, ok := tree.lookup("/search/hello%20world")
	if !ok {
		t.Fatal("lookup failed")
	}
	if m.params["term"] != "hello world" {
		t.Errorf("params = %v", m.params)
	}

	// Encoded slash in a single-segment capture is rejected and captured
	// as a parameter error at the owning level.
	m, ok = tree.lookup("/search/a%2Fb")
	if !ok {
		t.Fatal("lookup should still assemble the chain")
	}
	if m.err == nil || m.errIndex != 1 {
		t.Errorf("err=%v errIndex=%d, want captured error at level 1", m.err, m.errIndex)
	}
}
