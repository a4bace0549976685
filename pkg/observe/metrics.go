package observe

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	wferrors "github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// MetricsConfig configures the Prometheus navigation metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus navigation metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "wayfind",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec
}

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of settled navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation pipeline duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of navigation errors by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),
	}
}

// Metrics builds a Prometheus hook pair recording settled navigations.
//
// Metrics collected:
//   - wayfind_navigations_total: Counter by route pattern and status
//   - wayfind_navigation_duration_seconds: Histogram per route pattern
//   - wayfind_navigation_errors_total: Counter by route pattern and error code
//
// The route label is the matched pattern ("/users/:id"), never the concrete
// href, so label cardinality stays bounded by the size of the route table.
//
// Example:
//
//	pair := observe.Metrics(observe.WithNamespace("myapp"))
//	pair.Attach(r)
//	http.Handle("/metrics", promhttp.Handler())
func Metrics(opts ...MetricsOption) Pair {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := initMetrics(config)
	starts := newInflight[time.Time](time.Minute, nil)

	before := func(ctx context.Context, nav router.Nav) error {
		starts.put(nav.To, time.Now())
		return nil
	}

	after := func(ctx context.Context, nav router.Nav) error {
		route := nav.To.Path

		if start, ok := starts.take(nav.To); ok {
			m.navigationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}

		status := "success"
		if nav.To.Errored() {
			status = "error"
			m.navigationErrors.WithLabelValues(route, errorCode(nav.To.Err)).Inc()
		}
		m.navigationsTotal.WithLabelValues(route, status).Inc()
		return nil
	}

	return Pair{Before: before, After: after}
}

// errorCode extracts the registry code for the error label. Codes are a
// small fixed set, unlike error messages.
func errorCode(err error) string {
	var werr *wferrors.Error
	if errors.As(err, &werr) {
		return werr.Code
	}
	return "unknown"
}
