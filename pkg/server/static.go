package server

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// staticFile maps a request path under the static prefix to a file name
// in the static tree. Anything that could leave the tree is refused.
func staticFile(prefix, urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(urlPath, prefix)
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", false
	}
	if strings.IndexByte(rel, 0) >= 0 || strings.Contains(rel, `\`) {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}
	if !fs.ValidPath(rel) {
		return "", false
	}
	return rel, true
}

// handleStatic serves built client assets referenced by rendered pages.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name, ok := staticFile(s.config.StaticPrefix, r.URL.Path)
	if !ok {
		writeError(w, http.StatusNotFound, notFound("no asset at "+r.URL.Path))
		return
	}

	f, err := s.static.Open(name)
	if err != nil {
		writeError(w, http.StatusNotFound, notFound("no asset at "+r.URL.Path))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, notFound("no asset at "+r.URL.Path))
		return
	}

	// http.ServeContent seeks for ranges and type sniffing.
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("E153").WithDetail("asset is not seekable"))
		return
	}

	if isFingerprinted(name) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
	http.ServeContent(w, r, name, info.ModTime(), rs)
}

// isFingerprinted reports whether a build hash precedes the extension,
// as in main.1a2b3c4d.js.
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
