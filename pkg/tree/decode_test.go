package tree

import (
	"strings"
	"testing"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/internal/registry"
	"github.com/vango-dev/vango-ssr/pkg/render"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

func testComponents() *registry.Registry {
	reg := registry.New()
	reg.MustRegister("Greeting", vdom.Pure("Greeting", func(p vdom.Props) *vdom.VNode {
		return vdom.Span(vdom.Text("Hi " + p.String("name")))
	}))
	reg.MustRegister("Card", vdom.Pure("Card", func(p vdom.Props) *vdom.VNode {
		return vdom.Div(vdom.Class("card"), p.Children())
	}))
	reg.MustRegister("Count", vdom.Pure("Count", func(p vdom.Props) *vdom.VNode {
		n, _ := p["n"].(int)
		return vdom.Textf("%d", n*2)
	}))
	return reg
}

func renderDoc(t *testing.T, doc string) string {
	t.Helper()
	node, err := Decode([]byte(doc), testComponents())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	html, err := render.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "element with className",
			doc:  `{"type": "div", "props": {"className": "a", "children": ["hi & bye"]}}`,
			want: `<div class="a">hi &amp; bye</div>`,
		},
		{
			name: "void element",
			doc:  `{"type": "br"}`,
			want: `<br>`,
		},
		{
			name: "list is a fragment",
			doc:  `["a", "b"]`,
			want: `ab`,
		},
		{
			name: "component",
			doc:  `{"type": "Greeting", "props": {"name": "Sam"}}`,
			want: `<span>Hi Sam</span>`,
		},
		{
			name: "component with children",
			doc:  `{"type": "Card", "props": {"children": [{"type": "b", "props": {"children": "x"}}, "y"]}}`,
			want: `<div class="card"><b>x</b>y</div>`,
		},
		{
			name: "component int prop",
			doc:  `{"type": "Count", "props": {"n": 21}}`,
			want: `42`,
		},
		{
			name: "single child",
			doc:  `{"type": "p", "props": {"children": "only"}}`,
			want: `<p>only</p>`,
		},
		{
			name: "numbers become text",
			doc:  `{"type": "p", "props": {"children": [1, 2.50, -3]}}`,
			want: `<p>12.5-3</p>`,
		},
		{
			name: "null and booleans render nothing",
			doc:  `{"type": "p", "props": {"children": [null, false, true, "x"]}}`,
			want: `<p>x</p>`,
		},
		{
			name: "prop order preserved",
			doc:  `{"type": "a", "props": {"title": "t", "href": "/", "id": "i", "className": "c"}}`,
			want: `<a title="t" href="/" id="i" class="c"></a>`,
		},
		{
			name: "typed prop values",
			doc:  `{"type": "input", "props": {"disabled": true, "readOnly": false, "maxLength": 5, "value": "v"}}`,
			want: `<input disabled maxlength="5" value="v">`,
		},
		{
			name: "style keeps authored order",
			doc:  `{"type": "div", "props": {"style": {"zIndex": 2, "color": "red", "marginTop": 4}}}`,
			want: `<div style="z-index:2;color:red;margin-top:4px"></div>`,
		},
		{
			name: "style string",
			doc:  `{"type": "div", "props": {"style": "color:red"}}`,
			want: `<div style="color:red"></div>`,
		},
		{
			name: "inner html object",
			doc:  `{"type": "div", "props": {"dangerouslySetInnerHTML": {"__html": "<b>x</b>"}}}`,
			want: `<div><b>x</b></div>`,
		},
		{
			name: "explicit fragment",
			doc:  `{"fragment": [{"type": "i"}, "t"], "key": "f"}`,
			want: `<i></i>t`,
		},
		{
			name: "custom element",
			doc:  `{"type": "my-widget", "props": {"data-x": 1}}`,
			want: `<my-widget data-x="1"></my-widget>`,
		},
		{
			name: "key is not rendered",
			doc:  `[{"type": "li", "key": "1"}, {"type": "li", "props": {"key": "2"}}]`,
			want: `<li></li><li></li>`,
		},
		{
			name: "null props",
			doc:  `{"type": "span", "props": null}`,
			want: `<span></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderDoc(t, tt.doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
type: ul
props:
  className: list
  children:
    - type: li
      props:
        children: one
    - type: Greeting
      props:
        name: Ada
    - 3
`
	want := `<ul class="list"><li>one</li><span>Hi Ada</span>3</ul>`
	if got := renderDoc(t, doc); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecodeYAMLAnchors(t *testing.T) {
	doc := `
- &item
  type: em
  props:
    children: x
- *item
`
	if got := renderDoc(t, doc); got != "<em>x</em><em>x</em>" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeAliasReuse(t *testing.T) {
	doc := `
- &a {type: b, props: {children: x}}
- &b [*a, *a]
- [*b, *b]
`
	if got := renderDoc(t, doc); got != strings.Repeat("<b>x</b>", 7) {
		t.Errorf("got %q", got)
	}
}

func TestDecodeAliasExpansionLimit(t *testing.T) {
	aliases := func(name string) string {
		return strings.TrimSuffix(strings.Repeat("*"+name+", ", 10), ", ")
	}
	doc := "- &a [" + strings.TrimSuffix(strings.Repeat("lol, ", 10), ", ") + "]\n" +
		"- &b [" + aliases("a") + "]\n" +
		"- &c [" + aliases("b") + "]\n" +
		"- &d [" + aliases("c") + "]\n" +
		"- &e [" + aliases("d") + "]\n"

	_, err := NewDecoder(testComponents()).Decode("page.yaml", []byte(doc))
	ve, ok := errors.As(err)
	if !ok {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	if ve.Code != "E040" || !strings.Contains(ve.Detail, "too far") {
		t.Errorf("err = %v, want E040 expansion error", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, doc := range []string{"", "   \n", "null", "---\n"} {
		node, err := Decode([]byte(doc), nil)
		if err != nil {
			t.Fatalf("Decode(%q): %v", doc, err)
		}
		if !node.IsEmpty() {
			t.Errorf("Decode(%q) = %s, want empty", doc, node)
		}
	}
}

func TestDecodeKeys(t *testing.T) {
	node, err := Decode([]byte(`{"type": "li", "key": "a", "props": {"id": "x"}}`), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if node.Key != "a" {
		t.Errorf("Key = %q", node.Key)
	}
	if _, ok := node.Attr("key"); ok {
		t.Error("key should not be an attribute")
	}
}

func TestDecodeComponentProps(t *testing.T) {
	node, err := Decode([]byte(`{"type": "Greeting", "props": {"name": "Sam", "tags": ["a", "b"], "meta": {"x": 1}}}`), testComponents())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if node.Kind != vdom.KindComponent {
		t.Fatalf("Kind = %v", node.Kind)
	}
	if node.Props.String("name") != "Sam" {
		t.Errorf("name = %v", node.Props["name"])
	}
	tags, ok := node.Props["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %#v", node.Props["tags"])
	}
	meta, ok := node.Props["meta"].(map[string]any)
	if !ok || meta["x"] != 1 {
		t.Errorf("meta = %#v", node.Props["meta"])
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code string
		line int
	}{
		{"syntax", "{\"type\": \"div\",\n  \"props\": {\n", "E040", 0},
		{"missing type", `{"props": {}}`, "E040", 1},
		{"non-string type", `{"type": 3}`, "E040", 1},
		{"empty type", `{"type": ""}`, "E040", 1},
		{"unknown field", "type: div\nextra: 1\n", "E040", 2},
		{"props not mapping", `{"type": "div", "props": [1]}`, "E040", 1},
		{"type and fragment", `{"type": "div", "fragment": []}`, "E040", 1},
		{"bad style value", "type: div\nprops:\n  style:\n    color: [red]\n", "E040", 4},
		{"bad inner html", `{"type": "div", "props": {"dangerouslySetInnerHTML": 3}}`, "E040", 1},
		{"unknown component", "- type: p\n- type: Missing\n", "E041", 2},
		{"self alias", "&a [*a]\n", "E040", 1},
		{"alias cycle through children", "- &n {type: div, props: {children: [*n]}}\n", "E040", 1},
		{"alias cycle through fragment", "&f {fragment: *f}\n", "E040", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(testComponents()).Decode("page.yaml", []byte(tt.doc))
			ve, ok := errors.As(err)
			if !ok {
				t.Fatalf("err = %v, want *errors.Error", err)
			}
			if ve.Code != tt.code {
				t.Errorf("Code = %s, want %s (%v)", ve.Code, tt.code, err)
			}
			if tt.line > 0 {
				if ve.Location == nil || ve.Location.Line != tt.line {
					t.Errorf("Location = %v, want line %d", ve.Location, tt.line)
				} else if ve.Location.File != "page.yaml" {
					t.Errorf("Location.File = %q", ve.Location.File)
				}
			}
		})
	}
}

func TestDecodeUnknownComponentLocation(t *testing.T) {
	doc := "type: div\nprops:\n  children:\n    - type: Nope\n"
	_, err := NewDecoder(nil).Decode("page.yaml", []byte(doc))
	ve, ok := errors.As(err)
	if !ok || ve.Code != "E041" {
		t.Fatalf("err = %v, want E041", err)
	}
	if got := ve.Location.String(); got != "page.yaml:4:13" {
		t.Errorf("Location = %s, want page.yaml:4:13", got)
	}
	if !strings.Contains(ve.Detail, `"Nope"`) {
		t.Errorf("Detail = %q", ve.Detail)
	}
	if len(ve.Context) == 0 {
		t.Error("expected source context lines")
	}
}

func TestIsElementType(t *testing.T) {
	for typ, want := range map[string]bool{
		"div":       true,
		"svg":       true,
		"my-widget": true,
		"My-Widget": true,
		"Greeting":  false,
		"App":       false,
	} {
		if got := isElementType(typ); got != want {
			t.Errorf("isElementType(%q) = %v, want %v", typ, got, want)
		}
	}
}
