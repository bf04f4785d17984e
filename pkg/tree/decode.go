package tree

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

// Components resolves component names used in documents.
type Components interface {
	Lookup(name string) (vdom.Component, bool)
}

// Decoder turns documents into vdom trees. A Decoder holds no per-call
// state and can be shared.
type Decoder struct {
	components Components
}

// NewDecoder creates a Decoder. components may be nil, in which case
// any component reference is an error.
func NewDecoder(components Components) *Decoder {
	return &Decoder{components: components}
}

// Decode decodes a document using components to resolve component names.
func Decode(data []byte, components Components) (*vdom.VNode, error) {
	return NewDecoder(components).Decode("", data)
}

// Decode decodes data. file names the source in error locations and may
// be empty.
func (d *Decoder) Decode(file string, data []byte) (*vdom.VNode, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return vdom.Empty(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		e := errors.New("E040").WithDetail("the document is not valid JSON or YAML").Wrap(err)
		if line := yamlErrorLine(err); line > 0 {
			e = e.WithSourceLocation(file, data, line, 0)
		}
		return nil, e
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return vdom.Empty(), nil
		}
		root = root.Content[0]
	}

	s := &state{
		d:         d,
		file:      file,
		src:       data,
		expanding: make(map[*yaml.Node]bool),
		budget:    expansionFactor*countNodes(root) + minBudget,
	}
	return s.node(root)
}

// Aliases may grow a document to at most expansionFactor times its
// parsed size plus minBudget decoded nodes.
const (
	expansionFactor = 10
	minBudget       = 1000
)

// state carries the source of one Decode call for error locations and
// the alias bookkeeping that keeps expansion finite.
type state struct {
	d    *Decoder
	file string
	src  []byte

	// expanding holds the anchored nodes whose aliases are being decoded.
	expanding map[*yaml.Node]bool
	budget    int
}

// expand decodes the target of an alias with decode. An alias met again
// while its own target is being decoded is a cycle.
func expand[T any](s *state, n *yaml.Node, decode func(*yaml.Node) (T, error)) (T, error) {
	var zero T
	if s.expanding[n.Alias] {
		return zero, s.fail("E040", n, "alias *%s refers to itself", n.Value)
	}
	s.expanding[n.Alias] = true
	defer delete(s.expanding, n.Alias)
	return decode(n.Alias)
}

// spend charges cost decoded nodes against the budget.
func (s *state) spend(n *yaml.Node, cost int) error {
	s.budget -= cost
	if s.budget < 0 {
		return s.fail("E040", n, "aliases expand the document too far")
	}
	return nil
}

// countNodes counts the parsed nodes under n without following aliases.
func countNodes(n *yaml.Node) int {
	c := 1
	for _, child := range n.Content {
		c += countNodes(child)
	}
	return c
}

func (s *state) fail(code string, n *yaml.Node, format string, args ...any) *errors.Error {
	return errors.New(code).
		WithDetailf(format, args...).
		WithSourceLocation(s.file, s.src, n.Line, n.Column)
}

func (s *state) node(n *yaml.Node) (*vdom.VNode, error) {
	if err := s.spend(n, 1); err != nil {
		return nil, err
	}
	switch n.Kind {
	case yaml.AliasNode:
		return expand(s, n, s.node)

	case yaml.ScalarNode:
		return scalarNode(n), nil

	case yaml.SequenceNode:
		children, err := s.nodes(n)
		if err != nil {
			return nil, err
		}
		return &vdom.VNode{Kind: vdom.KindFragment, Children: children}, nil

	case yaml.MappingNode:
		return s.mapping(n)

	default:
		return nil, s.fail("E040", n, "unexpected document node")
	}
}

// nodes decodes the items of a sequence.
func (s *state) nodes(n *yaml.Node) ([]*vdom.VNode, error) {
	out := make([]*vdom.VNode, 0, len(n.Content))
	for _, item := range n.Content {
		child, err := s.node(item)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// children decodes a children prop, which may be a single node or a list.
func (s *state) children(n *yaml.Node) ([]*vdom.VNode, error) {
	if n.Kind == yaml.AliasNode {
		return expand(s, n, s.children)
	}
	if n.Kind == yaml.SequenceNode {
		return s.nodes(n)
	}
	child, err := s.node(n)
	if err != nil {
		return nil, err
	}
	if child.IsEmpty() {
		return nil, nil
	}
	return []*vdom.VNode{child}, nil
}

func (s *state) mapping(n *yaml.Node) (*vdom.VNode, error) {
	var typ, props, key, fragment *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch k.Value {
		case "type":
			typ = v
		case "props":
			props = v
		case "key":
			key = v
		case "fragment":
			fragment = v
		default:
			return nil, s.fail("E040", k, "unknown field %q", k.Value)
		}
	}

	if fragment != nil {
		if typ != nil {
			return nil, s.fail("E040", n, "a node cannot have both type and fragment")
		}
		children, err := s.children(fragment)
		if err != nil {
			return nil, err
		}
		node := &vdom.VNode{Kind: vdom.KindFragment, Children: children}
		if key != nil {
			node.Key = key.Value
		}
		return node, nil
	}

	if typ == nil {
		return nil, s.fail("E040", n, "node has no type")
	}
	if typ.Kind != yaml.ScalarNode || typ.ShortTag() != "!!str" || typ.Value == "" {
		return nil, s.fail("E040", typ, "type must be a non-empty string")
	}
	if props != nil && props.Kind != yaml.MappingNode && !isNull(props) {
		return nil, s.fail("E040", props, "props must be a mapping")
	}

	var node *vdom.VNode
	var err error
	if isElementType(typ.Value) {
		node, err = s.element(typ.Value, props)
	} else {
		node, err = s.composite(typ, props)
	}
	if err != nil {
		return nil, err
	}
	if key != nil {
		node.Key = key.Value
	}
	return node, nil
}

func (s *state) element(tag string, props *yaml.Node) (*vdom.VNode, error) {
	node := &vdom.VNode{Kind: vdom.KindElement, Tag: tag}
	if props == nil || isNull(props) {
		return node, nil
	}

	for i := 0; i+1 < len(props.Content); i += 2 {
		k, v := props.Content[i], props.Content[i+1]
		switch k.Value {
		case "children":
			children, err := s.children(v)
			if err != nil {
				return nil, err
			}
			node.Children = children
		case "key":
			node.Key = v.Value
		case "style":
			style, err := s.style(v)
			if err != nil {
				return nil, err
			}
			node.SetAttr("style", style)
		case "dangerouslySetInnerHTML":
			html, err := s.innerHTML(v)
			if err != nil {
				return nil, err
			}
			node.SetAttr("dangerouslySetInnerHTML", html)
		default:
			val, err := s.value(v)
			if err != nil {
				return nil, err
			}
			node.SetAttr(k.Value, val)
		}
	}
	return node, nil
}

func (s *state) composite(typ, props *yaml.Node) (*vdom.VNode, error) {
	if s.d.components == nil {
		return nil, s.fail("E041", typ, "component %q is not registered", typ.Value)
	}
	comp, ok := s.d.components.Lookup(typ.Value)
	if !ok {
		return nil, s.fail("E041", typ, "component %q is not registered", typ.Value)
	}

	p := vdom.Props{}
	var key string
	if props != nil && !isNull(props) {
		for i := 0; i+1 < len(props.Content); i += 2 {
			k, v := props.Content[i], props.Content[i+1]
			switch k.Value {
			case "children":
				children, err := s.children(v)
				if err != nil {
					return nil, err
				}
				p["children"] = children
			case "key":
				key = v.Value
			default:
				val, err := s.value(v)
				if err != nil {
					return nil, err
				}
				p[k.Value] = val
			}
		}
	}

	return &vdom.VNode{Kind: vdom.KindComponent, Comp: comp, Props: p, Key: key}, nil
}

// style decodes a style prop. Mappings keep their authored order.
func (s *state) style(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		return expand(s, n, s.style)
	}
	if n.Kind != yaml.MappingNode {
		return s.value(n)
	}
	style := make(vdom.Style, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, s.fail("E040", v, "style %q must be a string or number", k.Value)
		}
		style = append(style, vdom.Decl(k.Value, scalarValue(v)))
	}
	return style, nil
}

func (s *state) innerHTML(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		return vdom.InnerHTML{HTML: n.Value}, nil
	}
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == "__html" {
				return vdom.InnerHTML{HTML: n.Content[i+1].Value}, nil
			}
		}
	}
	return nil, s.fail("E040", n, "dangerouslySetInnerHTML must be a string or {__html: ...}")
}

// value decodes a prop value. Scalars keep their type; lists and
// mappings decode to []any and map[string]any, where the yaml package
// applies its own alias checks.
func (s *state) value(n *yaml.Node) (any, error) {
	if err := s.spend(n, 1); err != nil {
		return nil, err
	}
	if n.Kind == yaml.AliasNode {
		return expand(s, n, s.value)
	}
	if n.Kind == yaml.ScalarNode {
		return scalarValue(n), nil
	}
	if err := s.spend(n, countNodes(n)-1); err != nil {
		return nil, err
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, s.fail("E040", n, "invalid prop value").Wrap(err)
	}
	return v, nil
}

// isElementType reports whether a type names an element rather than a
// component: lower-case first letter or a dash, like custom elements.
func isElementType(typ string) bool {
	c := typ[0]
	return c >= 'a' && c <= 'z' || strings.Contains(typ, "-")
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// scalarNode converts a scalar to a node: text for strings and numbers,
// nothing for null and booleans.
func scalarNode(n *yaml.Node) *vdom.VNode {
	switch n.ShortTag() {
	case "!!null", "!!bool":
		return vdom.Empty()
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return vdom.Text(strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	return vdom.Text(n.Value)
}

// scalarValue converts a scalar to its Go value.
func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return int(i)
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine extracts the line number from a parser error message.
func yamlErrorLine(err error) int {
	m := yamlLine.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
