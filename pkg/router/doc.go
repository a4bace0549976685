// Package router implements the route trie and the navigation engine.
//
// The router resolves a target href through a prefix tree over path
// segments, assembles the nested chain of route levels (layouts plus the
// final page), parses parameters and search values with per-level failure
// containment, runs before hooks, resolves lazy components concurrently
// with the per-level load functions, runs after hooks, and swaps the
// current route snapshot.
//
// # Matching
//
// Each trie node has static children (exact segment match) and at most one
// dynamic child. Dynamic segments use the templates ":name", ":name?"
// (optional), ":name*" (rest, possibly empty) and ":name+" (rest, at least
// one segment). A static match always wins over the dynamic child at the
// same node; if neither matches, the lookup fails with no partial match.
//
// # Navigation pipeline
//
// Hooks within one stage launch together and are awaited jointly; only the
// stage boundaries order execution. A redirect returned from a before hook
// or a load aborts the attempt and restarts it against the redirect target,
// transparently to the Navigate caller. Parse, load, and component failures
// never fail Navigate: they are captured on the resolved route with the
// level they belong to and delivered to OnError.
//
// # Usage
//
//	r, err := router.New(router.Config{
//	    Routes:  routes,
//	    Context: deps,
//	    OnError: func(err error) { log.Println(err) },
//	})
//
//	r.After(func(ctx context.Context, nav router.Nav) error {
//	    ui.Project(nav.To)
//	    return nil
//	})
//
//	resolved, err := r.Navigate(ctx, "/settings/profile?expand=1")
package router
