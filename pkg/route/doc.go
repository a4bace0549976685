// Package route defines the immutable route definition data model and the
// two-step builder that produces it.
//
// A route definition describes one node of the nested route tree: its
// absolute path pattern, its parameter and search parsers, its load
// functions, and four component slots (layout error boundary, layout, page
// error boundary, page). Component slots are explicit tagged variants —
// empty, concrete value, or lazy loader — decided at build time.
//
// Definitions compose structurally: a child builder receives its parent
// definition and derives the merged absolute path from it. There are no
// runtime back-references between definitions.
//
// Usage:
//
//	root, _ := route.New(nil, "/")
//	rootDef, _ := root.Layout(route.LayoutOptions{Component: appShell}).
//		Page(route.PageOptions{Component: home})
//
//	users, _ := route.New(rootDef, "users")
//	usersDef, _ := users.Page(route.StandalonePageOptions{
//		PageOptions: route.PageOptions{Component: userList},
//	})
package route
