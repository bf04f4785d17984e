package render

import (
	"strings"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

const (
	// DefaultMaxDepth is the composite nesting allowed along one path.
	DefaultMaxDepth = 1000

	// DefaultRootAttribute marks the root element of hydratable markup.
	DefaultRootAttribute = "data-ssr-root"

	// Doctype is the document type declaration. The renderer never emits
	// it; callers rendering a full page prepend it themselves.
	Doctype = "<!DOCTYPE html>"

	// textSeparator keeps adjacent text nodes apart in hydratable markup.
	textSeparator = "<!-- -->"

	defaultSizeHint = 512
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// MaxDepth bounds composite nesting along any root-to-leaf path.
	// Zero means DefaultMaxDepth.
	MaxDepth int

	// Hydratable marks the first top-level element with RootAttribute and
	// separates adjacent text nodes with an empty comment, so a client
	// can attach to the markup without re-rendering it.
	Hydratable bool

	// RootAttribute is the attribute written on the root element when
	// Hydratable is set. Defaults to DefaultRootAttribute.
	RootAttribute string
}

// Renderer renders vdom trees to HTML. It holds no mutable state and is
// safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

var defaultRenderer = NewRenderer(RendererConfig{})

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	if config.RootAttribute == "" {
		config.RootAttribute = DefaultRootAttribute
	}
	return &Renderer{config: config}
}

// Config returns the effective configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// RenderToString renders node with the default configuration.
func RenderToString(node *vdom.VNode) (string, error) {
	return defaultRenderer.RenderToString(node)
}

// RenderToStaticMarkup renders node with the default configuration and
// without hydration markers.
func RenderToStaticMarkup(node *vdom.VNode) (string, error) {
	return defaultRenderer.RenderToStaticMarkup(node)
}

// RenderToString renders node to an HTML fragment. On error no markup is
// returned.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	return r.render(node, r.config.Hydratable)
}

// RenderToStaticMarkup is RenderToString with hydration markers off,
// whatever the configuration says.
func (r *Renderer) RenderToStaticMarkup(node *vdom.VNode) (string, error) {
	return r.render(node, false)
}

func (r *Renderer) render(node *vdom.VNode, hydratable bool) (string, error) {
	s := &serializer{
		r:           r,
		b:           NewBuilder(defaultSizeHint),
		hydratable:  hydratable,
		rootPending: hydratable,
	}
	if err := s.node(node, 0, 0); err != nil {
		return "", err
	}
	return s.b.String(), nil
}

// serializer is the per-call state of one render.
type serializer struct {
	r           *Renderer
	b           *Builder
	hydratable  bool
	rootPending bool
	lastText    bool
}

// node writes node. depth counts composites above node; level counts
// enclosing elements.
func (s *serializer) node(node *vdom.VNode, depth, level int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindEmpty:
		return nil

	case vdom.KindText:
		if s.hydratable && s.lastText {
			s.b.WriteString(textSeparator)
		}
		writeEscaped(s.b, node.Text)
		s.lastText = true
		return nil

	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := s.node(child, depth, level); err != nil {
				return err
			}
		}
		return nil

	case vdom.KindComponent:
		rendered, err := s.r.renderComponent(node, depth)
		if err != nil {
			return err
		}
		return s.node(rendered, depth+1, level)

	case vdom.KindElement:
		return s.element(node, depth, level)

	default:
		return unknownKind(node)
	}
}

func (s *serializer) element(node *vdom.VNode, depth, level int) error {
	tag := node.Tag
	if !validTagName(tag) {
		return errors.New("E004").WithDetailf("tag %q", tag)
	}
	lower := lowerASCII(tag)
	s.lastText = false

	inner, hasInner := innerHTML(node)
	children := nonEmpty(node.Children)

	if isVoidElement(lower) && (children || hasInner) {
		return errors.New("E002").WithDetailf("<%s> has children", tag)
	}
	if hasInner && children {
		return errors.New("E005").WithDetailf("<%s> sets both", tag)
	}

	s.b.WriteByte('<')
	s.b.WriteString(tag)
	s.attributes(node.Attrs)
	if s.rootPending && level == 0 {
		s.b.WriteByte(' ')
		s.b.WriteString(s.r.config.RootAttribute)
		s.b.WriteString(`=""`)
		s.rootPending = false
	}
	s.b.WriteByte('>')

	if isVoidElement(lower) {
		return nil
	}

	if hasInner {
		if newlineEatingTags[lower] && strings.HasPrefix(inner, "\n") {
			s.b.WriteByte('\n')
		}
		s.b.WriteString(inner)
	} else {
		if newlineEatingTags[lower] && leadingNewline(node.Children) {
			s.b.WriteByte('\n')
		}
		for _, child := range node.Children {
			if err := s.node(child, depth, level+1); err != nil {
				return err
			}
		}
	}

	s.b.WriteString("</")
	s.b.WriteString(tag)
	s.b.WriteByte('>')
	s.lastText = false
	return nil
}

// attributes writes attrs in authored order.
func (s *serializer) attributes(attrs []vdom.Attr) {
	for _, a := range attrs {
		if a.Key == "style" {
			if css := styleString(a.Value); css != "" {
				s.b.WriteString(` style="`)
				writeEscaped(s.b, css)
				s.b.WriteByte('"')
			}
			continue
		}
		writeAttribute(s.b, a.Key, a.Value)
	}
}

// innerHTML returns the raw markup set through dangerouslySetInnerHTML.
func innerHTML(node *vdom.VNode) (string, bool) {
	v, ok := node.Attr("dangerouslySetInnerHTML")
	if !ok {
		return "", false
	}
	switch h := v.(type) {
	case vdom.InnerHTML:
		return h.HTML, true
	case *vdom.InnerHTML:
		if h != nil {
			return h.HTML, true
		}
	case string:
		return h, true
	case map[string]any:
		if html, ok := h["__html"].(string); ok {
			return html, true
		}
	}
	return "", false
}

// nonEmpty reports whether any child can produce output.
func nonEmpty(children []*vdom.VNode) bool {
	for _, c := range children {
		if !c.IsEmpty() {
			return true
		}
	}
	return false
}

// leadingNewline reports whether the first text child starts with "\n".
func leadingNewline(children []*vdom.VNode) bool {
	for _, c := range children {
		if c.IsEmpty() {
			continue
		}
		return c.Kind == vdom.KindText && strings.HasPrefix(c.Text, "\n")
	}
	return false
}
