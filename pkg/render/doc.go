// Package render turns a vdom tree into an HTML string.
//
// Rendering happens in two conceptual steps. Resolve expands every
// composite component into the nodes it renders, counting composite
// nesting along each path so that a component which renders itself fails
// with ErrRenderDepthExceeded instead of exhausting the stack. The
// serializer then walks the resolved tree and writes markup into a
// Builder. RenderToString does both in a single pass.
//
// # Basic Usage
//
//	html, err := render.RenderToString(vdom.Div(vdom.Class("a"), vdom.Text("hi")))
//	// html == `<div class="a">hi</div>`
//
// A Renderer carries a RendererConfig and is safe for concurrent use:
//
//	r := render.NewRenderer(render.RendererConfig{MaxDepth: 200, Hydratable: true})
//	html, err := r.RenderToString(root)
//
// # Attributes
//
// Attribute names follow the JSX authoring conventions: className renders
// as class, htmlFor as for, known camelCase HTML properties are lowercased
// (readOnly becomes readonly) and camelCase SVG attributes are hyphenated
// (strokeWidth becomes stroke-width). Reserved props such as key and
// children, event handlers, nil values and names that are not valid
// attribute names are never written.
//
// Boolean properties render as a bare name when true and are omitted when
// false. aria-* and data-* attributes render booleans as "true" or "false".
//
// # Styles
//
// The style attribute accepts a string, a vdom.Style (declaration order is
// kept) or a map[string]any (rendered in lexical property order). Numeric
// values get a "px" suffix unless the property is unitless or the value is
// zero.
//
// # Security
//
// Text content and attribute values are always escaped. The only way to
// emit raw markup is the dangerouslySetInnerHTML attribute, which must only
// carry trusted content.
package render
