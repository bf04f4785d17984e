// Package tree decodes render trees from JSON or YAML documents.
//
// A document describes nodes the way React elements are written:
//
//	{"type": "div", "props": {"className": "a", "children": ["hi & bye"]}}
//
// Strings and numbers become text, null and booleans render nothing and
// lists become fragments. A mapping with a lower-case type (or one
// containing a dash) is an element; any other type names a component that
// must be known to the Components passed to the Decoder. {"fragment": [...]}
// is an explicit fragment.
//
// Both formats are read with the YAML parser, which accepts JSON, so prop
// order is preserved and errors point at the line and column of the
// offending node.
package tree
