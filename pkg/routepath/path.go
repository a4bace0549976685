// Package routepath provides pure path utilities for the wayfind router:
// joining and normalization, base-path trimming, and the canonicalization
// and security validation applied to every navigation target.
package routepath

import "strings"

// Resolve joins path fragments with "/" and normalizes the result.
//
// The result always has exactly one leading slash, no repeated slashes, and
// no trailing slash unless the whole result is "/". Empty fragments are
// ignored.
//
// Resolve is idempotent: Resolve(Resolve(x)) == Resolve(x).
func Resolve(segments ...string) string {
	var b strings.Builder
	b.Grow(16)

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(seg)
	}

	joined := b.String()
	if joined == "" {
		return "/"
	}

	// Collapse repeated slashes.
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}

	// Strip a single trailing slash, keeping the root.
	if len(joined) > 1 && strings.HasSuffix(joined, "/") {
		joined = strings.TrimSuffix(joined, "/")
	}

	return joined
}

// TrimBase strips an absolute-URL prefix and the configured base path from
// path, then normalizes.
//
// An http:// or https:// URL is reduced to its path-only form by removing
// everything up to the first "/" after the host. If base is not a prefix of
// the remaining path, the path passes through unchanged (normalized).
func TrimBase(path, base string) string {
	path = stripOrigin(path)

	if base != "" && base != "/" {
		if rest, ok := strings.CutPrefix(path, base); ok {
			path = rest
		}
	}

	return Resolve(path)
}

// NormalizeBase trims a configured base path into canonical form.
// An empty or root base normalizes to "" (no base).
func NormalizeBase(base string) string {
	if base == "" {
		return ""
	}
	normalized := Resolve(base)
	if normalized == "/" {
		return ""
	}
	return normalized
}

// SplitPathAndQuery splits a target into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// Segments splits a normalized path into its non-empty segments.
// The root path yields nil.
func Segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// stripOrigin removes the scheme and host of an absolute http(s) URL,
// leaving the path onward. Other inputs are returned unchanged.
func stripOrigin(path string) string {
	rest, ok := strings.CutPrefix(path, "http://")
	if !ok {
		rest, ok = strings.CutPrefix(path, "https://")
	}
	if !ok {
		return path
	}

	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		return rest[idx:]
	}
	// Bare origin with no path.
	return "/"
}
