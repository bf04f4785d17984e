package render

import (
	"fmt"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

// Resolve expands every composite in node using the default
// configuration. See (*Renderer).Resolve.
func Resolve(node *vdom.VNode) (*vdom.VNode, error) {
	return defaultRenderer.Resolve(node)
}

// Resolve returns a copy of node in which every composite has been
// replaced by what it renders, recursively. The result contains only
// element, text, fragment and empty nodes. node itself is not modified.
func (r *Renderer) Resolve(node *vdom.VNode) (*vdom.VNode, error) {
	return r.resolve(node, 0)
}

// resolve copies node. depth is the number of composites between the
// root and node.
func (r *Renderer) resolve(node *vdom.VNode, depth int) (*vdom.VNode, error) {
	if node == nil {
		return vdom.Empty(), nil
	}

	switch node.Kind {
	case vdom.KindEmpty:
		return vdom.Empty(), nil

	case vdom.KindText:
		return vdom.Text(node.Text), nil

	case vdom.KindElement, vdom.KindFragment:
		out := &vdom.VNode{
			Kind: node.Kind,
			Tag:  node.Tag,
			Key:  node.Key,
		}
		if len(node.Attrs) > 0 {
			out.Attrs = append([]vdom.Attr(nil), node.Attrs...)
		}
		if len(node.Children) > 0 {
			out.Children = make([]*vdom.VNode, 0, len(node.Children))
			for _, child := range node.Children {
				rc, err := r.resolve(child, depth)
				if err != nil {
					return nil, err
				}
				out.Children = append(out.Children, rc)
			}
		}
		return out, nil

	case vdom.KindComponent:
		rendered, err := r.renderComponent(node, depth)
		if err != nil {
			return nil, err
		}
		return r.resolve(rendered, depth+1)

	default:
		return nil, unknownKind(node)
	}
}

// renderComponent invokes a composite's Render. depth is the number of
// composites above node; node itself makes depth+1.
func (r *Renderer) renderComponent(node *vdom.VNode, depth int) (out *vdom.VNode, err error) {
	if depth+1 > r.config.MaxDepth {
		return nil, errors.New("E001").
			WithDetailf("component %s exceeds the maximum depth of %d", vdom.ComponentName(node.Comp), r.config.MaxDepth)
	}
	if node.Comp == nil {
		return nil, errors.New("E003").WithDetail("composite node has no component")
	}

	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = errors.New("E003").
				WithDetailf("component %s panicked", vdom.ComponentName(node.Comp)).
				Wrap(panicError(p))
		}
	}()

	out, err = node.Comp.Render(node.Props)
	if err != nil {
		return nil, errors.New("E003").
			WithDetailf("component %s failed", vdom.ComponentName(node.Comp)).
			Wrap(err)
	}
	return out, nil
}

// panicError turns a recovered value into an error, keeping errors intact
// so callers can still match them.
func panicError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", p)
}

func unknownKind(node *vdom.VNode) error {
	return errors.New("E006").WithDetailf("node kind %d", node.Kind)
}
