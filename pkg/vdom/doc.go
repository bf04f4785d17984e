// Package vdom defines the render tree consumed by the SSR engine.
//
// A tree is made of VNodes tagged by Kind: elements, text, fragments,
// empty nodes, and composite components that still need to be resolved
// by calling their Render method with props.
//
// # Core Types
//
// VNode is the fundamental building block. Attr holds one attribute;
// an element keeps its attributes as an ordered slice so serialization
// follows authored order. Component is the capability a composite needs:
// Render(props) returns the node the component stands for.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// Components are placed in a tree with Composite:
//
//	greeting := vdom.Pure("Greeting", func(p vdom.Props) *vdom.VNode {
//	    return vdom.Span(vdom.Text("Hi " + p.String("name")))
//	})
//	tree := vdom.Composite(greeting, vdom.Props{"name": "Sam"})
package vdom
