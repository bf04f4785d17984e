package vdom

import "fmt"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Composite awaiting resolution
	KindEmpty                  // Renders nothing
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// VNode is a node of the render tree.
//
// Which fields are meaningful depends on Kind:
//   - KindElement: Tag, Attrs, Children
//   - KindText: Text
//   - KindFragment: Children
//   - KindComponent: Comp, Props
//   - KindEmpty: none
//
// A nil *VNode renders like KindEmpty.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Attrs    []Attr    // Attributes in authored order
	Children []*VNode  // Child nodes
	Key      string    // Sibling identity, never rendered
	Text     string    // For KindText
	Comp     Component // For KindComponent
	Props    Props     // Component input, for KindComponent
}

// IsEmpty reports whether the node renders nothing by construction.
func (v *VNode) IsEmpty() bool {
	return v == nil || v.Kind == KindEmpty
}

// Attr returns the value of the named attribute.
func (v *VNode) Attr(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	for _, a := range v.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// SetAttr sets an attribute. An existing attribute keeps its position and
// takes the new value; a new one is appended.
func (v *VNode) SetAttr(key string, value any) {
	for i := range v.Attrs {
		if v.Attrs[i].Key == key {
			v.Attrs[i].Value = value
			return
		}
	}
	v.Attrs = append(v.Attrs, Attr{Key: key, Value: value})
}

// String returns a short debug description of the node.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		return fmt.Sprintf("Element(%s, %d attrs, %d children)", v.Tag, len(v.Attrs), len(v.Children))
	case KindText:
		return fmt.Sprintf("Text(%q)", v.Text)
	case KindFragment:
		return fmt.Sprintf("Fragment(%d children)", len(v.Children))
	case KindComponent:
		return fmt.Sprintf("Component(%s)", ComponentName(v.Comp))
	default:
		return v.Kind.String()
	}
}

// Props holds the input of a composite component.
type Props map[string]any

// String returns the string value of key, or "" if absent or not a string.
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Children returns the nodes passed under the "children" prop.
func (p Props) Children() []*VNode {
	switch v := p["children"].(type) {
	case []*VNode:
		return v
	case *VNode:
		if v != nil {
			return []*VNode{v}
		}
	}
	return nil
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that renders to a VNode given its props.
// Render must be free of side effects visible to the caller.
type Component interface {
	Render(props Props) (*VNode, error)
}

// Named is implemented by components that report a display name.
type Named interface {
	Name() string
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(props Props) (*VNode, error)

// Render implements Component.
func (f ComponentFunc) Render(props Props) (*VNode, error) {
	return f(props)
}

// namedFunc is a ComponentFunc with a display name.
type namedFunc struct {
	name   string
	render func(Props) (*VNode, error)
}

func (f *namedFunc) Render(props Props) (*VNode, error) { return f.render(props) }
func (f *namedFunc) Name() string                       { return f.name }

// Func creates a named component from a render function.
func Func(name string, render func(props Props) (*VNode, error)) Component {
	return &namedFunc{name: name, render: render}
}

// Pure creates a named component from a render function that cannot fail.
func Pure(name string, render func(props Props) *VNode) Component {
	return &namedFunc{name: name, render: func(p Props) (*VNode, error) {
		return render(p), nil
	}}
}

// ComponentName returns the display name of a component.
func ComponentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}

// InnerHTML is raw markup used as an element's content through the
// dangerouslySetInnerHTML attribute. It is never escaped.
type InnerHTML struct {
	HTML string
}

// StyleDecl is a single CSS declaration.
type StyleDecl struct {
	Property string
	Value    any
}

// Style is an ordered list of CSS declarations. Property names may be
// camelCase (fontSize) or already hyphenated (font-size).
type Style []StyleDecl

// Decl creates a CSS declaration.
func Decl(property string, value any) StyleDecl {
	return StyleDecl{Property: property, Value: value}
}
