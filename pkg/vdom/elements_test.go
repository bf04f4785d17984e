package vdom

import "testing"

func TestCreateElementOrdersAttrs(t *testing.T) {
	node := Div(
		ID("main"),
		Class("a"),
		nil,
		[]Attr{Data("x", "1"), Role("note")},
		Attr{},
		ID("override"),
	)

	want := []string{"id", "class", "data-x", "role"}
	if len(node.Attrs) != len(want) {
		t.Fatalf("len(Attrs) = %d, want %d", len(node.Attrs), len(want))
	}
	for i, key := range want {
		if node.Attrs[i].Key != key {
			t.Errorf("Attrs[%d].Key = %q, want %q", i, node.Attrs[i].Key, key)
		}
	}
	if node.Attrs[0].Value != "override" {
		t.Errorf("repeated id should replace in place, got %v", node.Attrs[0].Value)
	}
}

func TestCreateElementKey(t *testing.T) {
	node := Li(Key(7), Text("x"))

	if node.Key != "7" {
		t.Errorf("Key = %q, want 7", node.Key)
	}
	if _, ok := node.Attr("key"); ok {
		t.Error("key must not be stored as an attribute")
	}
}

func TestCreateElementChildren(t *testing.T) {
	comp := Pure("C", func(Props) *VNode { return nil })
	var nilNode *VNode

	node := Ul(
		Li(Text("1")),
		nilNode,
		[]*VNode{Li(Text("2")), nil},
		"tail",
		comp,
	)

	if len(node.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(node.Children))
	}
	if node.Children[2].Kind != KindText {
		t.Errorf("string arg should become text, got %v", node.Children[2].Kind)
	}
	if node.Children[3].Kind != KindComponent {
		t.Errorf("component arg should become composite, got %v", node.Children[3].Kind)
	}
}

func TestElementTags(t *testing.T) {
	tests := []struct {
		node *VNode
		tag  string
	}{
		{Html(), "html"},
		{Div(), "div"},
		{Br(), "br"},
		{Img(), "img"},
		{StyleEl(), "style"},
		{El("my-widget"), "my-widget"},
	}

	for _, tt := range tests {
		if tt.node.Kind != KindElement || tt.node.Tag != tt.tag {
			t.Errorf("got %v, want element %s", tt.node, tt.tag)
		}
	}
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attr
		key   string
		value any
	}{
		{"class joins", Class("a", "b"), "class", "a b"},
		{"data", Data("id", 5), "data-id", 5},
		{"aria", Aria("hidden", true), "aria-hidden", true},
		{"download bare", Download(), "download", true},
		{"download named", Download("f.txt"), "download", "f.txt"},
		{"inner html", DangerouslySetInnerHTML("<b>x</b>"), "dangerouslySetInnerHTML", InnerHTML{HTML: "<b>x</b>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key || tt.attr.Value != tt.value {
				t.Errorf("got %s=%v, want %s=%v", tt.attr.Key, tt.attr.Value, tt.key, tt.value)
			}
		})
	}

	if !ClassIf(false, "x").IsEmpty() {
		t.Error("ClassIf(false) should be empty")
	}

	styles := Styles(Decl("color", "red"), Decl("fontSize", 12))
	s, ok := styles.Value.(Style)
	if !ok || len(s) != 2 || s[1].Property != "fontSize" {
		t.Errorf("Styles = %#v", styles.Value)
	}
}
