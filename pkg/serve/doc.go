// Package serve exposes a router over HTTP for tooling and remote UIs: a
// stateless resolution endpoint, the route table, and a WebSocket feed of
// settled navigations.
//
// The resolution endpoint answers through Preload, so concurrent requests
// never fight over the router's current route.
//
//	r, _ := router.New(cfg)
//	srv := serve.New(r)
//	defer srv.Close()
//	go srv.Run(ctx, ":8080")
package serve
