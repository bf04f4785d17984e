// Package middleware provides the observability middleware of the render
// service.
//
// This package includes:
//   - OpenTelemetry request tracing and render spans
//   - Prometheus request and render metrics
//
// # OpenTelemetry Middleware
//
// Tracing wraps every request in a server span named after the matched
// chi route, and exposes StartRender for spans around a single render.
//
//	tracing := middleware.OpenTelemetry(
//	    middleware.WithTracerName("vango-ssr"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	)
//	router.Use(tracing.Middleware)
//
// The tracer comes from the global OpenTelemetry provider unless
// WithTracerProvider is given. Configure it in main() before starting the
// server.
//
// # Prometheus Metrics
//
// Metrics collected, under the configured namespace:
//   - http_requests_total: requests by route, method and status code
//   - http_request_duration_seconds: request latency by route
//   - http_requests_in_flight: requests being served
//   - renders_total: renders by mode and outcome
//   - render_duration_seconds: render latency by mode
//   - render_errors_total: failed renders by error code
//   - render_output_bytes: size of rendered markup
//   - websocket_connections: open render sockets
//   - websocket_messages_total: socket messages by outcome
//
//	reg := prometheus.NewRegistry()
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//	router.Use(metrics.Middleware)
//	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Both types are safe to use through a nil pointer, which disables them.
package middleware
