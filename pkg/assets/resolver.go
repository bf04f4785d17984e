package assets

import "strings"

// Resolver provides asset path resolution.
// It combines manifest lookup with path prefixing.
type Resolver interface {
	// Asset resolves an asset name to the path a page should reference.
	// An asset the manifest maps to "" resolves to "" so callers can skip
	// the tag.
	//
	// Example:
	//   resolver.Asset("main.js") → "/static/js/main.1a2b3c.js"
	Asset(source string) string
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with an optional path prefix.
//
// The prefix is prepended to all resolved paths, typically a CDN origin
// or a mount path such as "/public/". A single slash is kept where the
// prefix and the path meet.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	resolved := r.manifest.Resolve(source)
	if resolved == "" {
		return ""
	}
	return joinPrefix(r.prefix, resolved)
}

// passthrough returns assets unchanged.
type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that returns names unchanged,
// prefixed.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return joinPrefix(p.prefix, source)
}

func joinPrefix(prefix, path string) string {
	if strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, "/") {
		return prefix + path[1:]
	}
	return prefix + path
}
