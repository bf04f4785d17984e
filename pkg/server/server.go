package server

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vango-ssr/internal/registry"
	"github.com/vango-dev/vango-ssr/pkg/assets"
	"github.com/vango-dev/vango-ssr/pkg/middleware"
	"github.com/vango-dev/vango-ssr/pkg/render"
	"github.com/vango-dev/vango-ssr/pkg/tree"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

// Render modes, used as metric labels and span names.
const (
	modeString = "string"
	modeStatic = "static"
)

// Server serves rendered markup over HTTP and WebSocket.
type Server struct {
	config     *ServerConfig
	renderer   *render.Renderer
	components *registry.Registry
	decoder    *tree.Decoder
	assets     assets.Resolver
	static     fs.FS

	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	tracing  *middleware.Tracing
	logger   *slog.Logger

	upgrader       websocket.Upgrader
	trustedProxies *proxyMatcher
	handler        http.Handler
	httpServer     *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithAssets sets the resolver passed to page components as
// props["assets"].
func WithAssets(r assets.Resolver) Option {
	return func(s *Server) {
		s.assets = r
	}
}

// WithMetrics records metrics into m and serves gatherer on the
// configured metrics path. gatherer may be nil to record without serving.
func WithMetrics(m *middleware.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithTracing wraps requests and renders in spans.
func WithTracing(t *middleware.Tracing) Option {
	return func(s *Server) {
		s.tracing = t
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a new Server. components resolves names in documents and
// page routes and may be nil.
func New(config *ServerConfig, renderer *render.Renderer, components *registry.Registry, opts ...Option) *Server {
	config = config.withDefaults()
	if renderer == nil {
		renderer = render.NewRenderer(render.RendererConfig{})
	}
	if components == nil {
		components = registry.New()
	}

	s := &Server{
		config:     config,
		renderer:   renderer,
		components: components,
		decoder:    tree.NewDecoder(components),
		assets:     assets.NewPassthroughResolver("/"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.WebSocket.ReadBufferSize,
		WriteBufferSize: config.WebSocket.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	if config.StaticDir != "" {
		s.static = os.DirFS(config.StaticDir)
	}
	s.trustedProxies = newProxyMatcher(config.TrustedProxies, s.logger)
	s.handler = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Config returns the effective configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// ListenAndServe listens on the configured address and serves until ctx
// is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout. It returns nil after a clean
// shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		if err := s.Shutdown(context.Background()); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// render renders node inside a span and records the outcome.
func (s *Server) render(ctx context.Context, node *vdom.VNode, static bool) (string, error) {
	mode := modeString
	if static {
		mode = modeStatic
	}
	_, span := s.tracing.StartRender(ctx, mode)

	start := time.Now()
	var (
		html string
		err  error
	)
	if static {
		html, err = s.renderer.RenderToStaticMarkup(node)
	} else {
		html, err = s.renderer.RenderToString(node)
	}
	elapsed := time.Since(start)

	middleware.EndRender(span, len(html), err)
	s.metrics.RecordRender(mode, elapsed, len(html), err)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "render failed",
			slog.String("mode", mode),
			slog.String("code", errorCode(err)),
			slog.String("error", err.Error()),
		)
	}
	return html, err
}

// routes builds the router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	if s.tracing != nil {
		r.Use(s.tracing.Middleware)
	}
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, s.config.MetricsPath, metricsHandler(s.gatherer))
	}
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		if s.config.Compress {
			r.Use(compress(s.logger))
		}
		r.Post("/render", s.handleRender)
		r.Get("/pages/{component}", s.handlePage)
		if s.static != nil {
			r.Get(s.config.StaticPrefix+"*", s.handleStatic)
			r.Head(s.config.StaticPrefix+"*", s.handleStatic)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, notFound("no route for "+r.Method+" "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, notFound(r.Method+" is not allowed on "+r.URL.Path))
	})
	return r
}
