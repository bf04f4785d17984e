package server

import (
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeebo/blake3"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/pkg/assets"
	"github.com/vango-dev/vango-ssr/pkg/render"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"

	// gzipMinSize is the smallest response worth compressing.
	gzipMinSize = 1024

	// documentName labels posted documents in error locations.
	documentName = "request"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errors.JSONError `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}

// handleRender renders a posted document.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errors.New("E151").WithDetailf("the limit is %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, errors.New("E152").Wrap(err))
		return
	}

	node, err := s.decoder.Decode(documentName, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.FromError(err, "E040"))
		return
	}

	html, err := s.render(r.Context(), node, isStatic(r))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, errors.FromError(err, "E003"))
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = io.WriteString(w, html)
}

// handlePage renders a registered component as a complete document.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "component")
	comp, err := s.components.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, errors.FromError(err, "E041"))
		return
	}

	node := vdom.Composite(comp, pageProps(r, s.assets))
	html, err := s.render(r.Context(), node, isStatic(r))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, errors.FromError(err, "E003"))
		return
	}

	body := render.Doctype + html
	tag := etag(body)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = io.WriteString(w, body)
}

// pageProps builds component props from the first value of each query
// parameter. The static flag is not a prop.
func pageProps(r *http.Request, resolver assets.Resolver) vdom.Props {
	query := r.URL.Query()
	props := make(vdom.Props, len(query)+1)
	for key, values := range query {
		if key == "static" || len(values) == 0 {
			continue
		}
		props[key] = values[0]
	}
	props["assets"] = resolver
	return props
}

// isStatic reports whether the request asks for markup without hydration
// markers.
func isStatic(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("static")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// etag returns a strong entity tag for body.
func etag(body string) string {
	sum := blake3.Sum256([]byte(body))
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// compress gzips responses larger than gzipMinSize for clients that
// accept it.
func compress(logger *slog.Logger) func(http.Handler) http.Handler {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		logger.Warn("compression disabled", "error", err)
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}
}

func notFound(detail string) *errors.Error {
	return errors.New("E150").WithDetail(detail)
}

// errorCode returns the code of err, or "internal" for uncoded errors.
func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}

func writeError(w http.ResponseWriter, status int, err *errors.Error) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: err.JSON()})
}
