package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf creates an attribute with an arbitrary name and value.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf returns a class attribute if the condition is true.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return Class(class)
	}
	return Attr{}
}

// StyleAttr sets the style attribute. The value may be a CSS string, a
// Style, or a map[string]any (rendered in lexical property order).
func StyleAttr(style any) Attr { return attr("style", style) }

// Styles sets the style attribute from ordered declarations.
func Styles(decls ...StyleDecl) Attr { return attr("style", Style(decls)) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key string, value any) Attr { return attr("data-"+key, value) }

// Aria creates an aria-* attribute.
func Aria(key string, value any) Attr { return attr("aria-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Links and resources

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Defer_ sets the defer attribute.
func Defer_() Attr { return attr("defer", true) }

// Async sets the async attribute.
func Async() Attr { return attr("async", true) }

// Download sets the download attribute. Without a filename it renders as
// a bare attribute.
func Download(filename ...string) Attr {
	if len(filename) > 0 && filename[0] != "" {
		return attr("download", filename[0])
	}
	return attr("download", true)
}

// Forms

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value any) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("for", id) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Checked sets the checked attribute.
func Checked() Attr { return attr("checked", true) }

// Selected sets the selected attribute.
func Selected() Attr { return attr("selected", true) }

// Required sets the required attribute.
func Required() Attr { return attr("required", true) }

// Rows sets the rows attribute.
func Rows(n int) Attr { return attr("rows", n) }

// Cols sets the cols attribute.
func Cols(n int) Attr { return attr("cols", n) }

// Raw content

// DangerouslySetInnerHTML sets the element's content to unescaped markup.
// Only use with trusted content.
func DangerouslySetInnerHTML(html string) Attr {
	return attr("dangerouslySetInnerHTML", InnerHTML{HTML: html})
}
