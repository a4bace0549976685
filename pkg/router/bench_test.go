package router

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkLookupStatic benchmarks matching a static route.
func BenchmarkLookupStatic(b *testing.B) {
	tree := buildTree(b,
		defFor(b, "/", nil),
		defFor(b, "/about", nil),
		defFor(b, "/contact", nil),
		defFor(b, "/pricing", nil),
		defFor(b, "/features", nil),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.lookup("/about")
	}
}

// BenchmarkLookupParam benchmarks matching a parameterized route.
func BenchmarkLookupParam(b *testing.B) {
	tree := buildTree(b,
		defFor(b, "/", nil),
		defFor(b, "/users/:id", nil),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.lookup("/users/123")
	}
}

// BenchmarkLookupRest benchmarks matching a rest route.
func BenchmarkLookupRest(b *testing.B) {
	tree := buildTree(b,
		defFor(b, "/", nil),
		defFor(b, "/files/:path*", nil),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.lookup("/files/a/b/c/d/e")
	}
}

// BenchmarkLookupLargeTree benchmarks matching among many siblings.
func BenchmarkLookupLargeTree(b *testing.B) {
	tree := buildTree(b, defFor(b, "/", nil))
	for i := 0; i < 100; i++ {
		path := fmt.Sprintf("/route%d", i)
		if err := tree.insert(path, defFor(b, path, nil)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.lookup("/route50")
	}
}

// BenchmarkLookupNoMatch benchmarks failed matches.
func BenchmarkLookupNoMatch(b *testing.B) {
	tree := buildTree(b,
		defFor(b, "/", nil),
		defFor(b, "/users", nil),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.lookup("/notfound")
	}
}

// BenchmarkNavigate benchmarks a full navigation round trip, alternating
// hrefs so the same-href skip rule does not short-circuit.
func BenchmarkNavigate(b *testing.B) {
	r := newTestRouter(b, Config{},
		pageDef(b, "/"),
		pageDef(b, "/a"),
		pageDef(b, "/b"),
	)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		target := "/a"
		if i%2 == 1 {
			target = "/b"
		}
		if _, err := r.Navigate(ctx, target); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkHref benchmarks href computation for a structured target.
func BenchmarkHref(b *testing.B) {
	r := newTestRouter(b, Config{Base: "/app"},
		pageDef(b, "/"),
		pageDef(b, "/users/:id"),
	)
	target := Target{Path: "/users/:id", Params: map[string]string{"id": "42"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Href(target); err != nil {
			b.Fatal(err)
		}
	}
}
