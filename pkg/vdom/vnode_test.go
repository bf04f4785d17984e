package vdom

import (
	"errors"
	"testing"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindEmpty, "Empty"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, true},
		{"empty node", Empty(), true},
		{"text node", Text(""), false},
		{"element", Div(), false},
		{"empty fragment", Fragment(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeSetAttrKeepsPosition(t *testing.T) {
	node := &VNode{Kind: KindElement, Tag: "div"}
	node.SetAttr("id", "a")
	node.SetAttr("class", "x")
	node.SetAttr("id", "b")

	if len(node.Attrs) != 2 {
		t.Fatalf("len(Attrs) = %d, want 2", len(node.Attrs))
	}
	if node.Attrs[0].Key != "id" || node.Attrs[0].Value != "b" {
		t.Errorf("Attrs[0] = %+v, want id=b", node.Attrs[0])
	}
	if v, ok := node.Attr("class"); !ok || v != "x" {
		t.Errorf("Attr(class) = %v, %v", v, ok)
	}
	if _, ok := node.Attr("missing"); ok {
		t.Error("Attr(missing) should report false")
	}

	var nilNode *VNode
	if _, ok := nilNode.Attr("id"); ok {
		t.Error("Attr on nil node should report false")
	}
}

func TestVNodeString(t *testing.T) {
	tests := []struct {
		node *VNode
		want string
	}{
		{nil, "<nil>"},
		{Text("hi"), `Text("hi")`},
		{Div(Class("a"), Text("x")), "Element(div, 1 attrs, 1 children)"},
		{Fragment(Text("a"), Text("b")), "Fragment(2 children)"},
		{Composite(Pure("Card", func(Props) *VNode { return nil }), nil), "Component(Card)"},
		{Empty(), "Empty"},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPropsAccessors(t *testing.T) {
	child := Text("c")
	p := Props{"name": "Sam", "count": 3, "children": []*VNode{child}}

	if got := p.String("name"); got != "Sam" {
		t.Errorf("String(name) = %q", got)
	}
	if got := p.String("count"); got != "" {
		t.Errorf("String(count) = %q, want empty for non-string", got)
	}
	if got := p.Children(); len(got) != 1 || got[0] != child {
		t.Errorf("Children() = %v", got)
	}
	if got := (Props{"children": child}).Children(); len(got) != 1 {
		t.Errorf("single child Children() = %v", got)
	}
	if got := (Props{}).Children(); got != nil {
		t.Errorf("Children() without children = %v", got)
	}
}

type plainComponent struct{}

func (plainComponent) Render(Props) (*VNode, error) { return Text("plain"), nil }

func TestComponentName(t *testing.T) {
	if got := ComponentName(Pure("Greeting", func(Props) *VNode { return nil })); got != "Greeting" {
		t.Errorf("ComponentName(named) = %q", got)
	}
	if got := ComponentName(plainComponent{}); got != "vdom.plainComponent" {
		t.Errorf("ComponentName(plain) = %q", got)
	}
	if got := ComponentName(nil); got != "<nil>" {
		t.Errorf("ComponentName(nil) = %q", got)
	}
}

func TestComponentAdapters(t *testing.T) {
	boom := errors.New("boom")

	fn := ComponentFunc(func(p Props) (*VNode, error) {
		return Text(p.String("v")), nil
	})
	node, err := fn.Render(Props{"v": "x"})
	if err != nil || node.Text != "x" {
		t.Errorf("ComponentFunc.Render = %v, %v", node, err)
	}

	failing := Func("Failing", func(Props) (*VNode, error) { return nil, boom })
	if _, err := failing.Render(nil); !errors.Is(err, boom) {
		t.Errorf("Func.Render error = %v, want boom", err)
	}

	pure := Pure("Pure", func(p Props) *VNode { return Text("ok") })
	if node, err := pure.Render(nil); err != nil || node.Text != "ok" {
		t.Errorf("Pure.Render = %v, %v", node, err)
	}
}
