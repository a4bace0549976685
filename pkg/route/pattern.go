package route

import "strings"

// Modifier adjusts how a dynamic segment matches.
type Modifier byte

const (
	// ModNone matches exactly one non-empty segment.
	ModNone Modifier = 0

	// ModOptional (":name?") matches one segment or none.
	ModOptional Modifier = '?'

	// ModZeroPlus (":name*") matches the rest of the path, possibly empty.
	ModZeroPlus Modifier = '*'

	// ModOnePlus (":name+") matches the rest of the path, at least one segment.
	ModOnePlus Modifier = '+'
)

// Pattern matches one dynamic path segment template such as ":id", ":id?",
// ":slug*" or ":slug+" and extracts the named capture.
type Pattern struct {
	// Name is the capture name without the leading ":" or modifier.
	Name string

	// Mod is the matching modifier, ModNone for a plain ":name".
	Mod Modifier

	// Raw is the original template segment.
	Raw string
}

// ParsePattern parses a path segment into a Pattern.
// Segments not starting with ":" are static and yield nil.
func ParsePattern(segment string) *Pattern {
	if !strings.HasPrefix(segment, ":") {
		return nil
	}

	p := &Pattern{Raw: segment}
	name := strings.TrimPrefix(segment, ":")

	if len(name) > 0 {
		switch Modifier(name[len(name)-1]) {
		case ModOptional, ModZeroPlus, ModOnePlus:
			p.Mod = Modifier(name[len(name)-1])
			name = name[:len(name)-1]
		}
	}

	p.Name = name
	return p
}

// Rest reports whether the pattern consumes all remaining path segments.
func (p *Pattern) Rest() bool {
	return p.Mod == ModZeroPlus || p.Mod == ModOnePlus
}

// Optional reports whether the pattern may match zero segments.
func (p *Pattern) Optional() bool {
	return p.Mod == ModOptional || p.Mod == ModZeroPlus
}

// Match tests a single path segment against the pattern and returns the
// captured value. An empty segment only matches optional patterns; the
// capture is then absent (empty value, ok=true).
func (p *Pattern) Match(segment string) (value string, ok bool) {
	if segment == "" {
		return "", p.Optional()
	}
	return segment, true
}

// MatchRest tests the remaining path segments against a rest pattern
// (":name*" or ":name+") and returns the joined capture.
func (p *Pattern) MatchRest(segments []string) (value string, ok bool) {
	if !p.Rest() {
		return "", false
	}
	if len(segments) == 0 {
		return "", p.Mod == ModZeroPlus
	}
	return strings.Join(segments, "/"), true
}
