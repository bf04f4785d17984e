package render

import (
	"math"
	"testing"

	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

func TestStyleString(t *testing.T) {
	tests := []struct {
		name  string
		style any
		want  string
	}{
		{
			name:  "ordered declarations",
			style: vdom.Style{vdom.Decl("fontSize", 12), vdom.Decl("color", "red")},
			want:  "font-size:12px;color:red",
		},
		{
			name:  "map in lexical order",
			style: map[string]any{"zIndex": 2, "color": "red", "margin": 0},
			want:  "color:red;margin:0;z-index:2",
		},
		{
			name:  "string map",
			style: map[string]string{"b": "2", "a": "1"},
			want:  "a:1;b:2",
		},
		{
			name:  "ms prefix",
			style: vdom.Style{vdom.Decl("msTransition", "none")},
			want:  "-ms-transition:none",
		},
		{
			name:  "webkit prefix unitless",
			style: vdom.Style{vdom.Decl("WebkitLineClamp", 3)},
			want:  "-webkit-line-clamp:3",
		},
		{
			name:  "custom property",
			style: vdom.Style{vdom.Decl("--main-Color", "blue"), vdom.Decl("--gap", 10)},
			want:  "--main-Color:blue;--gap:10",
		},
		{
			name:  "unitless",
			style: vdom.Style{vdom.Decl("lineHeight", 1.5), vdom.Decl("opacity", 0.5), vdom.Decl("flexGrow", 1)},
			want:  "line-height:1.5;opacity:0.5;flex-grow:1",
		},
		{
			name:  "hyphenated unitless",
			style: vdom.Style{vdom.Decl("line-height", 2), vdom.Decl("-webkit-line-clamp", 2)},
			want:  "line-height:2;-webkit-line-clamp:2",
		},
		{
			name:  "hyphenated with unit",
			style: vdom.Style{vdom.Decl("margin-top", 4)},
			want:  "margin-top:4px",
		},
		{
			name:  "fractional px",
			style: vdom.Style{vdom.Decl("width", 10.5), vdom.Decl("left", -3)},
			want:  "width:10.5px;left:-3px",
		},
		{
			name:  "skipped values",
			style: vdom.Style{vdom.Decl("a", nil), vdom.Decl("b", true), vdom.Decl("c", ""), vdom.Decl("d", "  x ")},
			want:  "d:x",
		},
		{
			name:  "all skipped",
			style: map[string]any{"color": nil, "display": false},
			want:  "",
		},
		{
			name:  "string passes through",
			style: "color: red; margin: 0",
			want:  "color: red; margin: 0",
		},
		{
			name:  "props map",
			style: vdom.Props{"paddingLeft": 8},
			want:  "padding-left:8px",
		},
		{
			name:  "nil",
			style: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styleString(tt.style); got != tt.want {
				t.Errorf("styleString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderStyleAttribute(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "map style",
			node: vdom.Div(vdom.StyleAttr(map[string]any{"color": "red", "fontSize": 14})),
			want: `<div style="color:red;font-size:14px"></div>`,
		},
		{
			name: "ordered style keeps position among attributes",
			node: vdom.Div(vdom.ID("a"), vdom.Styles(vdom.Decl("width", 1)), vdom.Class("c")),
			want: `<div id="a" style="width:1px" class="c"></div>`,
		},
		{
			name: "empty style omitted",
			node: vdom.Div(vdom.StyleAttr(map[string]any{"color": nil})),
			want: `<div></div>`,
		},
		{
			name: "style values escaped",
			node: vdom.Div(vdom.Styles(vdom.Decl("fontFamily", `"A" & B`))),
			want: `<div style="font-family:&quot;A&quot; &amp; B"></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
		})
	}
}

func TestHyphenateStyleName(t *testing.T) {
	tests := map[string]string{
		"color":          "color",
		"fontSize":       "font-size",
		"borderTopWidth": "border-top-width",
		"msTransform":    "-ms-transform",
		"MozAppearance":  "-moz-appearance",
		"--customProp":   "--customProp",
		"font-size":      "font-size",
	}
	for in, want := range tests {
		if got := hyphenateStyleName(in); got != want {
			t.Errorf("hyphenateStyleName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-2, "-2"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{123456789, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsUnitless(t *testing.T) {
	for name, want := range map[string]bool{
		"zIndex":           true,
		"z-index":          true,
		"WebkitFlex":       true,
		"msFlex":           true,
		"-ms-flex":         true,
		"-webkit-box-flex": true,
		"width":            false,
		"margin-left":      false,
		"-":                false,
		"":                 false,
	} {
		if got := isUnitless(name); got != want {
			t.Errorf("isUnitless(%q) = %v, want %v", name, got, want)
		}
	}
}
