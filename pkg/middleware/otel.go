package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// Default tracer name for the render service.
const defaultTracerName = "vango-ssr"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vango-ssr").
	TracerName string

	// Provider supplies the tracer. Nil means the global provider.
	Provider trace.TracerProvider

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool

	// AttributeExtractor extracts custom attributes from the request.
	AttributeExtractor func(r *http.Request) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the provider the tracer is taken from.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(r *http.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing creates spans for requests and renders.
type Tracing struct {
	config OTelConfig
	tracer trace.Tracer
}

// OpenTelemetry creates the tracing middleware.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) *Tracing {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracing{
		config: config,
		tracer: provider.Tracer(config.TracerName),
	}
}

// Middleware starts a server span per request and stores it in the
// request context. The span is renamed to the matched route once the
// handler returns.
func (t *Tracing) Middleware(next http.Handler) http.Handler {
	if t == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.config.Filter != nil && !t.config.Filter(r) {
			next.ServeHTTP(w, r)
			return
		}

		attrs := []attribute.KeyValue{
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		}
		if id := chimw.GetReqID(r.Context()); id != "" {
			attrs = append(attrs, attribute.String("http.request_id", id))
		}
		if t.config.AttributeExtractor != nil {
			attrs = append(attrs, t.config.AttributeExtractor(r)...)
		}

		ctx, span := t.tracer.Start(r.Context(), "HTTP "+r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		r = r.WithContext(ctx)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		span.SetName("HTTP " + r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// StartRender starts a span around one render. Finish it with EndRender.
// A nil Tracing returns ctx and a non-recording span that is not the
// span already in ctx.
func (t *Tracing) StartRender(ctx context.Context, mode string) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return t.tracer.Start(ctx, "render."+mode,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("render.mode", mode)),
	)
}

// EndRender records the outcome of a render on span and ends it.
func EndRender(span trace.Span, size int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("render.error_code", errorCode(err)))
		msg := err.Error()
		if ve, ok := errors.As(err); ok {
			msg = ve.Message
		}
		span.SetStatus(codes.Error, msg)
	} else {
		span.SetAttributes(attribute.Int("render.bytes", size))
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// SpanFromRequest retrieves the current trace span from the request.
// Without the middleware this is a non-recording span.
func SpanFromRequest(r *http.Request) trace.Span {
	return trace.SpanFromContext(r.Context())
}
