package router

import (
	"net/url"
	"strings"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// Target is a structured navigation target: a route-table path pattern plus
// the parameter values and search query to materialize it with.
type Target struct {
	// Path must be a key of the route table, e.g. "/users/:id".
	Path string

	// Params supplies values for the named placeholders of Path.
	Params map[string]string

	// Search becomes the query string, empty values included.
	Search url.Values
}

// Href computes the final href for a navigation target without performing a
// lookup or mutating any state. The target is an href string or a Target.
//
// The result is basePath + path-with-params-substituted + optional query
// string. For string targets an absolute http(s) URL is reduced to its path
// and an already-present base path is not doubled.
func (r *Router) Href(target any) (string, error) {
	switch t := target.(type) {
	case string:
		return r.hrefString(t)
	case Target:
		return r.hrefTarget(t)
	case *Target:
		return r.hrefTarget(*t)
	default:
		return "", errors.New("I002").WithDetail("target type %T", target)
	}
}

func (r *Router) hrefString(href string) (string, error) {
	// Protocol-relative targets would survive origin stripping and point
	// off-site; reject them outright.
	if strings.HasPrefix(href, "//") {
		return "", errors.New("I002").Wrap(routepath.ErrInvalidPath)
	}

	pathOnly, query := routepath.SplitPathAndQuery(href)
	target := routepath.TrimBase(pathOnly, r.base)
	if query != "" {
		target += "?" + query
	}
	canon, err := routepath.CanonicalizeNavTarget(target)
	if err != nil {
		return "", errors.New("I002").Wrap(err)
	}

	path, q := routepath.SplitPathAndQuery(canon)
	return r.joinBase(path, q), nil
}

func (r *Router) hrefTarget(t Target) (string, error) {
	if _, ok := r.routes[t.Path]; !ok {
		return "", errors.New("M002").WithDetail("path %q", t.Path)
	}

	path := substituteParams(t.Path, t.Params)

	var query string
	if len(t.Search) > 0 {
		query = t.Search.Encode()
	}
	return r.joinBase(path, query), nil
}

// joinBase prepends the configured base path and reattaches the query.
func (r *Router) joinBase(path, query string) string {
	href := path
	if r.base != "" {
		if path == "/" {
			href = r.base
		} else {
			href = r.base + path
		}
	}
	if query != "" {
		href += "?" + query
	}
	return href
}

// substituteParams fills the named placeholders of a path pattern. For each
// placeholder the modifier-suffixed forms (":name*", ":name+", ":name?")
// resolve before the bare ":name". Optional placeholders without a value
// drop out of the path; a required placeholder without a value stays
// literal, which makes the mistake visible in the produced href.
func substituteParams(pattern string, params map[string]string) string {
	segs := routepath.Segments(pattern)
	out := make([]string, 0, len(segs))

	for _, seg := range segs {
		p := route.ParsePattern(seg)
		if p == nil {
			out = append(out, seg)
			continue
		}
		if v := params[p.Name]; v != "" {
			out = append(out, v)
		} else if !p.Optional() {
			out = append(out, seg)
		}
	}

	return routepath.Resolve(out...)
}
