package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WebSocketConfig holds configuration for render sockets.
type WebSocketConfig struct {
	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// MaxMessageSize is the maximum size of an incoming message.
	// Default: 1MB.
	MaxMessageSize int64

	// ReadTimeout closes a socket that sends nothing, pongs included,
	// for this long. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// PingInterval is the time between heartbeat pings. It must be shorter
	// than ReadTimeout. Default: 30 seconds.
	PingInterval time.Duration
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: "localhost:3000".
	Address string

	// ReadTimeout, ReadHeaderTimeout, WriteTimeout and IdleTimeout are
	// passed to http.Server. Zero means no timeout.
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// MaxBodyBytes bounds posted documents.
	// Default: 1MB.
	MaxBodyBytes int64

	// Compress enables gzip for rendered responses.
	Compress bool

	// StaticDir is a directory of built client assets served under
	// StaticPrefix. Empty disables static serving.
	StaticDir string

	// StaticPrefix is the URL prefix for StaticDir. It must start and end
	// with "/". Default: "/static/".
	StaticPrefix string

	// MetricsPath is where metrics are served when a gatherer is set.
	// Default: "/metrics".
	MetricsPath string

	// TrustedProxies lists reverse proxy IPs or CIDRs whose Forwarded and
	// X-Forwarded-For headers are believed when logging client addresses.
	// Default: nil (don't trust proxy headers).
	TrustedProxies []string

	// CheckOrigin is called to validate the origin of socket requests.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// WebSocket configures /ws.
	WebSocket WebSocketConfig
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:3000",
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   30 * time.Second,
		MaxBodyBytes:      1 << 20,
		Compress:          true,
		StaticPrefix:      "/static/",
		MetricsPath:       "/metrics",
		CheckOrigin:       SameOriginCheck,
		WebSocket: WebSocketConfig{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			MaxMessageSize:  1 << 20,
			ReadTimeout:     60 * time.Second,
			WriteTimeout:    10 * time.Second,
			PingInterval:    30 * time.Second,
		},
	}
}

// withDefaults returns a copy of c with unset fields taken from
// DefaultServerConfig. Timeouts of http.Server are left as given.
func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxBodyBytes == 0 {
		out.MaxBodyBytes = d.MaxBodyBytes
	}
	if out.StaticPrefix == "" {
		out.StaticPrefix = d.StaticPrefix
	}
	if !strings.HasPrefix(out.StaticPrefix, "/") {
		out.StaticPrefix = "/" + out.StaticPrefix
	}
	if !strings.HasSuffix(out.StaticPrefix, "/") {
		out.StaticPrefix += "/"
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}

	ws := &out.WebSocket
	if ws.ReadBufferSize == 0 {
		ws.ReadBufferSize = d.WebSocket.ReadBufferSize
	}
	if ws.WriteBufferSize == 0 {
		ws.WriteBufferSize = d.WebSocket.WriteBufferSize
	}
	if ws.MaxMessageSize == 0 {
		ws.MaxMessageSize = d.WebSocket.MaxMessageSize
	}
	if ws.ReadTimeout == 0 {
		ws.ReadTimeout = d.WebSocket.ReadTimeout
	}
	if ws.WriteTimeout == 0 {
		ws.WriteTimeout = d.WebSocket.WriteTimeout
	}
	if ws.PingInterval == 0 || ws.PingInterval >= ws.ReadTimeout {
		ws.PingInterval = ws.ReadTimeout / 2
	}
	return &out
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
// Requests without an Origin header (non-browser clients) are allowed.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}
