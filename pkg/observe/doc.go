// Package observe provides ready-made instrumentation for the navigation
// pipeline: Prometheus metrics and OpenTelemetry tracing, each packaged as
// a before/after hook pair.
//
// Both instruments key their per-attempt state by the attempt's To
// snapshot, which is unique per attempt, so concurrent navigations never
// cross their measurements.
//
//	r, _ := router.New(cfg)
//	observe.Metrics().Attach(r)
//	observe.Tracing().Attach(r)
package observe
