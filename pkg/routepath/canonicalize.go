package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Canonicalization errors.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in path segment")
)

// Canonicalize normalizes a navigation pathname before trie lookup.
//
// Applied transformations:
//   - ensure a leading slash and remove the trailing slash (except root "/")
//   - collapse repeated slashes
//   - drop "." segments and resolve ".." segments
//
// Rejected inputs:
//   - paths containing a backslash or a NUL byte (literal or encoded)
//   - invalid percent-escapes (e.g. %GG, a truncated %2)
//   - ".." that would climb above the root
//
// A query string in the input is preserved but not canonicalized; it is
// returned separately without the leading "?".
func Canonicalize(input string) (path, query string, err error) {
	if input == "" {
		return "/", "", nil
	}

	path, query = SplitPathAndQuery(input)

	// SECURITY: reject backslash and NUL before any rewriting.
	if strings.Contains(path, "\\") {
		return "", "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", "", ErrNullByteInPath
	}

	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return "", "", err
		}
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return "", "", ErrPathEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	return "/" + strings.Join(kept, "/"), query, nil
}

// CanonicalizeNavTarget canonicalizes and validates a navigation href.
//
// Navigation targets must be relative paths: full URLs and protocol-relative
// forms ("//host") are rejected to prevent open-redirect style targets from
// sneaking past the base-path trimming done by the engine.
//
// Returns the canonical path with the query string reattached.
func CanonicalizeNavTarget(href string) (string, error) {
	if strings.HasPrefix(href, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(href, "/") {
		return "", ErrInvalidPath
	}

	path, query, err := Canonicalize(href)
	if err != nil {
		return "", err
	}

	if query != "" {
		return path + "?" + query, nil
	}
	return path, nil
}

// DecodeSegment decodes one percent-encoded path segment.
//
// A decoded "/" inside a single segment would let one segment masquerade as
// several, so it is rejected unless the segment feeds a rest-style (catch-all)
// parameter.
func DecodeSegment(segment string, catchAll bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}

	if !catchAll && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}

	return decoded, nil
}

// validatePercentEscapes checks that every "%" begins a valid %XX escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); {
		if path[i] != '%' {
			i++
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 3
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
