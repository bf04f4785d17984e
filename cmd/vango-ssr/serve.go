package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-ssr/internal/config"
	"github.com/vango-dev/vango-ssr/internal/demo"
	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/internal/registry"
	"github.com/vango-dev/vango-ssr/pkg/assets"
	"github.com/vango-dev/vango-ssr/pkg/middleware"
	"github.com/vango-dev/vango-ssr/pkg/render"
	"github.com/vango-dev/vango-ssr/pkg/server"
)

func serveCmd(configDir *string) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render endpoints",
		Long: `Start the HTTP render service.

Endpoints:
  POST /render              render a posted document
  GET  /pages/{component}   render a registered component as a page
  GET  /ws                  render documents sent over a WebSocket
  GET  /static/*            built client assets (when server.staticDir is set)
  GET  /healthz             liveness
  GET  /metrics             Prometheus metrics (when enabled)

Examples:
  vango-ssr serve
  vango-ssr serve --port 8080
  SSR_ENV=development vango-ssr serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := buildServer(ctx, cfg, cfg.Logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to (default from ssr.json)")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on (default from ssr.json)")

	return cmd
}

// buildServer wires the renderer, components, assets and telemetry
// described by cfg.
func buildServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	sc, err := serverConfig(cfg)
	if err != nil {
		return nil, err
	}

	resolver, err := loadAssets(ctx, cfg)
	if err != nil {
		return nil, err
	}

	components := registry.New()
	if err := demo.Register(components); err != nil {
		return nil, err
	}

	opts := []server.Option{
		server.WithAssets(resolver),
		server.WithLogger(logger),
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		)
		opts = append(opts, server.WithMetrics(metrics, reg))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, server.WithTracing(
			middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)),
		))
	}

	logger.Info("configured",
		"env", cfg.Assets.Env,
		"hydratable", cfg.Render.Hydratable,
		"metrics", cfg.Metrics.Enabled,
		"tracing", cfg.Tracing.Enabled,
	)
	return server.New(sc, render.NewRenderer(cfg.RendererConfig()), components, opts...), nil
}

// serverConfig converts the file settings to a server configuration.
func serverConfig(cfg *config.Config) (*server.ServerConfig, error) {
	read, err := cfg.ReadTimeout()
	if err != nil {
		return nil, err
	}
	write, err := cfg.WriteTimeout()
	if err != nil {
		return nil, err
	}

	sc := server.DefaultServerConfig()
	sc.Address = cfg.Address()
	sc.ReadTimeout = read
	sc.WriteTimeout = write
	sc.MaxBodyBytes = cfg.Server.MaxBodyBytes
	sc.Compress = cfg.Server.Compress
	sc.MetricsPath = cfg.Metrics.Path
	sc.TrustedProxies = cfg.Server.TrustedProxies
	if dir := cfg.Server.StaticDir; dir != "" {
		if !filepath.IsAbs(dir) && cfg.Dir() != "" {
			dir = filepath.Join(cfg.Dir(), dir)
		}
		sc.StaticDir = dir
	}
	return sc, nil
}

// loadAssets builds the resolver for page components. Manifests named
// by s3://bucket/key URLs are fetched from S3; relative file paths are
// taken from the config directory.
func loadAssets(ctx context.Context, cfg *config.Config) (assets.Resolver, error) {
	path := cfg.Assets.Manifest

	var (
		m   *assets.Manifest
		err error
	)
	if strings.HasPrefix(path, "s3://") && !cfg.Development() {
		bucket, key, perr := parseS3URL(path)
		if perr != nil {
			return nil, perr
		}
		m, err = assets.LoadS3(ctx, assets.NewS3Client(cfg.Assets.Region), bucket, key)
	} else {
		if !filepath.IsAbs(path) && cfg.Dir() != "" {
			path = filepath.Join(cfg.Dir(), path)
		}
		m, err = assets.ForEnv(cfg.Assets.Env, path)
	}
	if err != nil {
		if ve, ok := errors.As(err); ok && ve.Suggestion == "" {
			ve.Suggestion = "Build the client first, or set " + config.EnvVar + "=development"
		}
		return nil, err
	}
	return assets.NewResolver(m, cfg.Assets.Prefix), nil
}

func parseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || strings.Trim(u.Path, "/") == "" {
		return "", "", errors.New("E120").
			WithDetailf("assets.manifest %q is not an s3://bucket/key URL", raw)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
