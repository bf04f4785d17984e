package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// recorder is a TracerProvider that keeps every span it starts.
type recorder struct {
	embedded.TracerProvider

	mu    sync.Mutex
	spans []*recordedSpan
}

func (p *recorder) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{provider: p}
}

func (p *recorder) ended() []*recordedSpan {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*recordedSpan
	for _, s := range p.spans {
		if s.ended {
			out = append(out, s)
		}
	}
	return out
}

type recordingTracer struct {
	embedded.Tracer
	provider *recorder
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{
		provider: t.provider,
		name:     name,
		kind:     cfg.SpanKind(),
		attrs:    map[attribute.Key]attribute.Value{},
	}
	for _, kv := range cfg.Attributes() {
		s.attrs[kv.Key] = kv.Value
	}
	t.provider.mu.Lock()
	t.provider.spans = append(t.provider.spans, s)
	t.provider.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recordedSpan struct {
	embedded.Span

	provider *recorder
	name     string
	kind     trace.SpanKind
	attrs    map[attribute.Key]attribute.Value
	status   codes.Code
	errs     []error
	ended    bool
}

func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }
func (s *recordedSpan) AddEvent(string, ...trace.EventOption) {}
func (s *recordedSpan) IsRecording() bool { return !s.ended }
func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}
func (s *recordedSpan) SpanContext() trace.SpanContext { return trace.SpanContext{} }
func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordedSpan) SetName(name string) { s.name = name }
func (s *recordedSpan) TracerProvider() trace.TracerProvider { return s.provider }
func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func TestTracingMiddleware(t *testing.T) {
	rec := &recorder{}
	tracing := OpenTelemetry(
		WithTracerProvider(rec),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	var inHandler trace.Span
	r := chi.NewRouter()
	r.Use(tracing.Middleware)
	r.Get("/pages/{component}", func(w http.ResponseWriter, r *http.Request) {
		inHandler = SpanFromRequest(r)
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pages/App", nil))

	spans := rec.ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	s := spans[0]
	if inHandler != trace.Span(s) {
		t.Error("handler should see the request span")
	}
	if s.name != "HTTP GET /pages/{component}" {
		t.Errorf("span name = %q", s.name)
	}
	if s.kind != trace.SpanKindServer {
		t.Errorf("span kind = %v, want server", s.kind)
	}
	if got := s.attrs["http.status_code"].AsInt64(); got != http.StatusTeapot {
		t.Errorf("http.status_code = %d", got)
	}
	if got := s.attrs["http.target"].AsString(); got != "/pages/App" {
		t.Errorf("http.target = %q", got)
	}
	if got := s.attrs["test.attr"].AsString(); got != "ok" {
		t.Errorf("test.attr = %q", got)
	}
	if s.status == codes.Error {
		t.Error("4xx responses should not mark the span as failed")
	}
}

func TestTracingMiddlewareServerError(t *testing.T) {
	rec := &recorder{}
	tracing := OpenTelemetry(WithTracerProvider(rec))

	h := tracing.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/render", nil))

	spans := rec.ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if spans[0].status != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].status)
	}
	if got := spans[0].attrs["http.route"].AsString(); got != "unmatched" {
		t.Errorf("http.route = %q, want unmatched outside a chi router", got)
	}
}

func TestTracingFilter(t *testing.T) {
	rec := &recorder{}
	tracing := OpenTelemetry(
		WithTracerProvider(rec),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	)
	h := tracing.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if n := len(rec.ended()); n != 0 {
		t.Errorf("filtered request produced %d spans", n)
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/render", nil))
	if n := len(rec.ended()); n != 1 {
		t.Errorf("traced request produced %d spans, want 1", n)
	}
}

func TestRenderSpans(t *testing.T) {
	rec := &recorder{}
	tracing := OpenTelemetry(WithTracerProvider(rec))

	_, span := tracing.StartRender(context.Background(), "string")
	EndRender(span, 42, nil)

	_, span = tracing.StartRender(context.Background(), "static")
	EndRender(span, 0, errors.New("E001").Wrap(stderrors.New("loop")))

	spans := rec.ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}

	ok, failed := spans[0], spans[1]
	if ok.name != "render.string" || ok.status != codes.Ok {
		t.Errorf("success span = %q %v", ok.name, ok.status)
	}
	if got := ok.attrs["render.bytes"].AsInt64(); got != 42 {
		t.Errorf("render.bytes = %d, want 42", got)
	}
	if failed.name != "render.static" || failed.status != codes.Error {
		t.Errorf("failed span = %q %v", failed.name, failed.status)
	}
	if got := failed.attrs["render.error_code"].AsString(); got != "E001" {
		t.Errorf("render.error_code = %q, want E001", got)
	}
	if len(failed.errs) != 1 {
		t.Errorf("recorded errors = %d, want 1", len(failed.errs))
	}
}

func TestTracingNil(t *testing.T) {
	var tracing *Tracing

	ctx := context.Background()
	got, span := tracing.StartRender(ctx, "string")
	if got != ctx {
		t.Error("nil Tracing should return ctx unchanged")
	}
	if span.IsRecording() {
		t.Error("nil Tracing should return a non-recording span")
	}
	EndRender(span, 1, nil)

	called := false
	h := tracing.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("nil Tracing should pass requests through")
	}
}

func TestTracingNilKeepsCallerSpan(t *testing.T) {
	rec := &recorder{}
	ctx, parent := rec.Tracer("caller").Start(context.Background(), "HTTP POST /render")

	var tracing *Tracing
	got, span := tracing.StartRender(ctx, "string")
	if got != ctx {
		t.Error("nil Tracing should return ctx unchanged")
	}
	EndRender(span, 0, errors.New("E001"))

	p := parent.(*recordedSpan)
	if p.ended {
		t.Error("EndRender on a nil Tracing span ended the caller's span")
	}
	if p.status != codes.Unset || len(p.errs) != 0 {
		t.Errorf("caller span status = %v, errors = %d, want untouched", p.status, len(p.errs))
	}
	if _, ok := p.attrs["render.error_code"]; ok {
		t.Error("caller span got render attributes")
	}
}

func TestOpenTelemetryGlobalProvider(t *testing.T) {
	tracing := OpenTelemetry()
	_, span := tracing.StartRender(context.Background(), "string")
	EndRender(span, 0, nil)
}
