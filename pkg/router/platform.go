package router

// Platform abstracts the browser-only capabilities the engine defers to:
// native navigation interception, idle-time scheduling, and the
// document-level base path hint. Non-browser targets use NoopPlatform.
type Platform interface {
	// Intercept gives the platform a chance to claim the visible URL
	// transition for a committed navigation. replace asks for the current
	// history entry to be replaced rather than pushed. The engine resolves
	// the route either way; the return value only records whether the
	// platform took over the URL change.
	Intercept(href string, replace bool) bool

	// SchedulePreload schedules speculative work for a quiet moment.
	SchedulePreload(fn func())

	// DocumentBase returns a document-level base path hint, "" if none.
	// It is consulted only when no explicit base path is configured.
	DocumentBase() string
}

// NoopPlatform is the Platform for non-browser targets: nothing is
// intercepted, preloads run immediately, and there is no document base.
type NoopPlatform struct{}

func (NoopPlatform) Intercept(string, bool) bool { return false }
func (NoopPlatform) SchedulePreload(fn func())   { fn() }
func (NoopPlatform) DocumentBase() string        { return "" }
