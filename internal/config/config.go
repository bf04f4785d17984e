package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "ssr.json"

	// EnvVar overrides Assets.Env when set.
	EnvVar = "SSR_ENV"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultManifest is where the build writes its asset manifest.
	DefaultManifest = "build/asset-manifest.json"

	// DefaultMaxBodyBytes bounds request documents.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "vango_ssr"
)

// Config represents the complete ssr.json configuration.
type Config struct {
	// Render configures the HTML renderer.
	Render RenderConfig `json:"render"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server"`

	// Assets selects the asset manifest.
	Assets AssetsConfig `json:"assets"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing"`

	// Log configures the service logger.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig mirrors render.RendererConfig.
type RenderConfig struct {
	MaxDepth      int    `json:"maxDepth,omitempty"`
	Hydratable    bool   `json:"hydratable"`
	RootAttribute string `json:"rootAttribute,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on. Zero picks a free port.
	Port int `json:"port"`

	// ReadTimeout and WriteTimeout are Go durations such as "10s".
	ReadTimeout  string `json:"readTimeout,omitempty"`
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// MaxBodyBytes bounds the size of a posted document.
	MaxBodyBytes int64 `json:"maxBodyBytes,omitempty"`

	// Compress enables gzip responses.
	Compress bool `json:"compress"`

	// StaticDir is a directory of built client assets served under
	// /static/. Relative paths are taken from the config directory.
	StaticDir string `json:"staticDir,omitempty"`

	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers
	// are believed when logging client addresses.
	TrustedProxies []string `json:"trustedProxies,omitempty"`
}

// AssetsConfig selects where asset paths come from.
type AssetsConfig struct {
	// Env is "development" to use the dev server bundle, anything else
	// to read Manifest.
	Env string `json:"env,omitempty"`

	// Manifest is a file path or an s3://bucket/key URL.
	Manifest string `json:"manifest,omitempty"`

	// Prefix is prepended to every resolved asset path.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region for S3 manifests.
	Region string `json:"region,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled"`
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig configures the logger built by Logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			MaxDepth:      render.DefaultMaxDepth,
			RootAttribute: render.DefaultRootAttribute,
		},
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
			MaxBodyBytes: DefaultMaxBodyBytes,
			Compress:     true,
		},
		Assets: AssetsConfig{
			Env:      "production",
			Manifest: DefaultManifest,
			Prefix:   "",
			Region:   "us-east-1",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      "/metrics",
		},
		Tracing: TracingConfig{
			TracerName: "vango-ssr",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for ssr.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'vango-ssr config init' to write one with the defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.ApplyEnv()

	return cfg, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if env := os.Getenv(EnvVar); env != "" {
		c.Assets.Env = env
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Render.MaxDepth == 0 {
		c.Render.MaxDepth = d.Render.MaxDepth
	}
	if c.Render.RootAttribute == "" {
		c.Render.RootAttribute = d.Render.RootAttribute
	}

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = d.Server.MaxBodyBytes
	}

	if c.Assets.Env == "" {
		c.Assets.Env = d.Assets.Env
	}
	if c.Assets.Manifest == "" {
		c.Assets.Manifest = d.Assets.Manifest
	}
	if c.Assets.Region == "" {
		c.Assets.Region = d.Assets.Region
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetailf("server.port is %d", c.Server.Port)
	}
	if c.Render.MaxDepth < 0 {
		return errors.New("E120").WithDetail("render.maxDepth must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("E120").WithDetail("server.maxBodyBytes must not be negative")
	}
	if _, err := c.ReadTimeout(); err != nil {
		return err
	}
	if _, err := c.WriteTimeout(); err != nil {
		return err
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E120").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "" && f != "text" && f != "json" {
		return errors.New("E120").
			WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E120").
			WithDetailf("metrics.path %q must start with /", c.Metrics.Path)
	}
	return nil
}

// Address returns the listen address for the server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ReadTimeout parses Server.ReadTimeout. Empty means no timeout.
func (c *Config) ReadTimeout() (time.Duration, error) {
	return parseDuration("server.readTimeout", c.Server.ReadTimeout)
}

// WriteTimeout parses Server.WriteTimeout. Empty means no timeout.
func (c *Config) WriteTimeout() (time.Duration, error) {
	return parseDuration("server.writeTimeout", c.Server.WriteTimeout)
}

// RendererConfig returns the renderer settings.
func (c *Config) RendererConfig() render.RendererConfig {
	return render.RendererConfig{
		MaxDepth:      c.Render.MaxDepth,
		Hydratable:    c.Render.Hydratable,
		RootAttribute: c.Render.RootAttribute,
	}
}

// Development reports whether assets come from the dev server.
func (c *Config) Development() bool {
	return c.Assets.Env == "development"
}

// Logger builds the service logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("E120").
			WithDetailf("%s %q is not a duration", field, s).
			WithExample(`"` + field[strings.IndexByte(field, '.')+1:] + `": "10s"`)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
