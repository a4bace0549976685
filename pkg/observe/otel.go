package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Default tracer name for wayfind applications.
const defaultTracerName = "wayfind"

// TracingConfig configures the OpenTelemetry navigation tracing.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeHref includes the concrete href in spans. Hrefs can carry
	// user identifiers in params, so this is disabled by default.
	IncludeHref bool

	// Filter determines which navigations to trace. Return true to trace
	// the attempt, false to skip. If nil, all attempts are traced.
	Filter func(nav router.Nav) bool

	// AttributeExtractor extracts custom attributes from the navigation.
	// Called for each traced attempt.
	AttributeExtractor func(nav router.Nav) []attribute.KeyValue

	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry navigation tracing.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithIncludeHref enables including the concrete href in spans.
func WithIncludeHref(include bool) TracingOption {
	return func(c *TracingConfig) {
		c.IncludeHref = include
	}
}

// WithFilter sets a filter function for navigation attempts.
func WithFilter(filter func(nav router.Nav) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav router.Nav) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName: defaultTracerName,
	}
}

// Tracing builds an OpenTelemetry hook pair spanning each navigation
// attempt from its before hook to its after hook.
//
// Spans carry the matched route pattern and the route navigated from.
// Attempts that end without their after hook running (preloads, attempts
// restarted by a redirect) have their spans closed during a later sweep
// with unset status.
//
// The tracer comes from the global tracer provider; configure it in main()
// before the first navigation:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//	observe.Tracing().Attach(r)
func Tracing(opts ...TracingOption) Pair {
	config := defaultTracingConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	spans := newInflight[trace.Span](time.Minute, func(span trace.Span) {
		span.End()
	})

	before := func(ctx context.Context, nav router.Nav) error {
		if config.Filter != nil && !config.Filter(nav) {
			return nil
		}

		attrs := []attribute.KeyValue{
			attribute.String("wayfind.route", nav.To.Path),
			attribute.String("wayfind.from_route", nav.From.Path),
		}
		if config.IncludeHref {
			attrs = append(attrs, attribute.String("wayfind.href", nav.To.Href))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}

		_, span := config.tracer.Start(
			ctx,
			"navigate "+nav.To.Path,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		spans.put(nav.To, span)
		return nil
	}

	after := func(ctx context.Context, nav router.Nav) error {
		span, ok := spans.take(nav.To)
		if !ok {
			return nil
		}
		defer span.End()

		if err := nav.To.Err; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.Int("wayfind.error_level", nav.To.ErrIndex))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return nil
	}

	return Pair{Before: before, After: after}
}
