// Package wayfind provides the public API for the wayfind navigation
// engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/wayfind-dev/wayfind"
//
// Usage:
//
//	root, _ := wayfind.Route(nil, "/")
//	home, _ := root.Layout(wayfind.LayoutOptions{Component: appShell}).
//	    Page(wayfind.PageOptions{Component: homePage})
//
//	r, _ := wayfind.New(wayfind.Config{
//	    Routes: map[string]*wayfind.Definition{"/": home},
//	})
//	to, _ := r.Navigate(ctx, "/")
package wayfind

import (
	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// =============================================================================
// Router (pkg/router re-exports)
// =============================================================================

// Router resolves navigation targets and drives the hook pipeline.
type Router = router.Router

// Config configures a Router.
type Config = router.Config

// New builds a Router from cfg.
func New(cfg Config) (*Router, error) {
	return router.New(cfg)
}

// Resolved is the snapshot describing the outcome of a navigation attempt.
type Resolved = router.Resolved

// Nav is the argument passed to before and after hooks.
type Nav = router.Nav

// Hook observes a navigation attempt.
type Hook = router.Hook

// Target is a structured navigation target: a route path pattern plus
// parameter values and a search query.
type Target = router.Target

// Redirect is the control-flow signal that restarts an attempt against a
// new target.
type Redirect = router.Redirect

// RedirectTo returns the redirect signal for target. Call it only from
// within a before hook or a load function.
var RedirectTo = router.RedirectTo

// Platform abstracts browser-only capabilities.
type Platform = router.Platform

// NoopPlatform is the Platform for non-browser targets.
type NoopPlatform = router.NoopPlatform

// =============================================================================
// Navigation options
// =============================================================================

// NavigateOption configures one Navigate call.
type NavigateOption = router.NavigateOption

// WithPreload marks the navigation as speculative.
var WithPreload = router.WithPreload

// WithReplace replaces the current history entry instead of pushing.
var WithReplace = router.WithReplace

// =============================================================================
// Route building (pkg/route re-exports)
// =============================================================================

// Definition is an immutable description of one route node.
type Definition = route.Definition

// Builder constructs a route definition in two steps.
type Builder = route.Builder

// Route starts building a route under parent. A nil parent builds the root
// route.
func Route(parent *Definition, segment string) (*Builder, error) {
	return route.New(parent, segment)
}

// LayoutOptions configures the layout level of a route.
type LayoutOptions = route.LayoutOptions

// PageOptions configures the page level of a route.
type PageOptions = route.PageOptions

// StandalonePageOptions configures a single-level route without a layout.
type StandalonePageOptions = route.StandalonePageOptions

// LoadArgs is the argument to a load function.
type LoadArgs = route.LoadArgs

// LoadFunc loads data for one level of a matched route.
type LoadFunc = route.LoadFunc

// ParamsFunc parses the raw parameter captures of one route node.
type ParamsFunc = route.ParamsFunc

// SearchFunc parses the search query at one route level.
type SearchFunc = route.SearchFunc

// LoaderFunc lazily resolves a component value.
type LoaderFunc = route.LoaderFunc
