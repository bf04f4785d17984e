package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// propertyFlags describe how a known property's value is written.
type propertyFlags uint8

const (
	hasBooleanValue propertyFlags = 1 << iota
	hasNumericValue
	hasPositiveNumericValue
	hasOverloadedBooleanValue
	hasStringBooleanValue
)

// propertyInfo is what the serializer knows about an authored attribute
// name.
type propertyInfo struct {
	attributeName string
	flags         propertyFlags
}

func (p propertyInfo) has(f propertyFlags) bool { return p.flags&f != 0 }

// htmlProperties lists HTML properties whose values need special
// handling or whose authored name differs from the attribute name.
var htmlProperties = map[string]propertyFlags{
	"allowFullScreen": hasBooleanValue,
	"async":           hasBooleanValue,
	"autoFocus":       hasBooleanValue,
	"autoPlay":        hasBooleanValue,
	"capture":         hasBooleanValue,
	"checked":         hasBooleanValue,
	"cols":            hasPositiveNumericValue,
	"contentEditable": hasStringBooleanValue,
	"controls":        hasBooleanValue,
	"default":         hasBooleanValue,
	"defer":           hasBooleanValue,
	"disabled":        hasBooleanValue,
	"download":        hasOverloadedBooleanValue,
	"draggable":       hasStringBooleanValue,
	"formNoValidate":  hasBooleanValue,
	"hidden":          hasBooleanValue,
	"inert":           hasBooleanValue,
	"isMap":           hasBooleanValue,
	"itemScope":       hasBooleanValue,
	"loop":            hasBooleanValue,
	"multiple":        hasBooleanValue,
	"muted":           hasBooleanValue,
	"noModule":        hasBooleanValue,
	"noValidate":      hasBooleanValue,
	"open":            hasBooleanValue,
	"playsInline":     hasBooleanValue,
	"readOnly":        hasBooleanValue,
	"required":        hasBooleanValue,
	"reversed":        hasBooleanValue,
	"rows":            hasPositiveNumericValue,
	"rowSpan":         hasNumericValue,
	"scoped":          hasBooleanValue,
	"seamless":        hasBooleanValue,
	"selected":        hasBooleanValue,
	"size":            hasPositiveNumericValue,
	"span":            hasPositiveNumericValue,
	"spellCheck":      hasStringBooleanValue,
	"start":           hasNumericValue,
	"value":           hasStringBooleanValue,

	// Plain properties that are only authored in camelCase.
	"autoComplete":   0,
	"colSpan":        0,
	"crossOrigin":    0,
	"dateTime":       0,
	"encType":        0,
	"formAction":     0,
	"frameBorder":    0,
	"inputMode":      0,
	"maxLength":      0,
	"minLength":      0,
	"referrerPolicy": 0,
	"srcDoc":         0,
	"srcLang":        0,
	"srcSet":         0,
	"tabIndex":       0,
	"useMap":         0,
}

// attributeAliases map authored names to attribute names that are not a
// simple lower-casing.
var attributeAliases = map[string]string{
	"acceptCharset": "accept-charset",
	"className":     "class",
	"htmlFor":       "for",
	"httpEquiv":     "http-equiv",
}

// svgAttributes are SVG attribute names that are authored in camelCase
// (strokeWidth, xlinkHref) but written hyphenated or namespaced.
var svgAttributes = []string{
	"accent-height",
	"alignment-baseline",
	"arabic-form",
	"baseline-shift",
	"cap-height",
	"clip-path",
	"clip-rule",
	"color-interpolation",
	"color-interpolation-filters",
	"color-profile",
	"color-rendering",
	"dominant-baseline",
	"enable-background",
	"fill-opacity",
	"fill-rule",
	"flood-color",
	"flood-opacity",
	"font-family",
	"font-size",
	"font-size-adjust",
	"font-stretch",
	"font-style",
	"font-variant",
	"font-weight",
	"glyph-name",
	"glyph-orientation-horizontal",
	"glyph-orientation-vertical",
	"horiz-adv-x",
	"horiz-origin-x",
	"image-rendering",
	"letter-spacing",
	"lighting-color",
	"marker-end",
	"marker-mid",
	"marker-start",
	"overline-position",
	"overline-thickness",
	"paint-order",
	"panose-1",
	"pointer-events",
	"rendering-intent",
	"shape-rendering",
	"stop-color",
	"stop-opacity",
	"strikethrough-position",
	"strikethrough-thickness",
	"stroke-dasharray",
	"stroke-dashoffset",
	"stroke-linecap",
	"stroke-linejoin",
	"stroke-miterlimit",
	"stroke-opacity",
	"stroke-width",
	"text-anchor",
	"text-decoration",
	"text-rendering",
	"underline-position",
	"underline-thickness",
	"unicode-bidi",
	"unicode-range",
	"units-per-em",
	"v-alphabetic",
	"v-hanging",
	"v-ideographic",
	"v-mathematical",
	"vector-effect",
	"vert-adv-y",
	"vert-origin-x",
	"vert-origin-y",
	"word-spacing",
	"writing-mode",
	"x-height",
	"xlink:actuate",
	"xlink:arcrole",
	"xlink:href",
	"xlink:role",
	"xlink:show",
	"xlink:title",
	"xlink:type",
	"xml:base",
	"xmlns:xlink",
	"xml:lang",
	"xml:space",
}

// svgStringBooleans keep their camelCase name and render booleans as text.
var svgStringBooleans = []string{
	"autoReverse",
	"externalResourcesRequired",
	"preserveAlpha",
}

// reservedProps are never written as attributes. style and
// dangerouslySetInnerHTML are handled separately by the serializer.
var reservedProps = map[string]bool{
	"children":                       true,
	"key":                            true,
	"ref":                            true,
	"dangerouslySetInnerHTML":        true,
	"suppressContentEditableWarning": true,
	"suppressHydrationWarning":       true,
}

// properties is the lookup table built from the lists above, keyed by
// authored name. Lower-cased HTML names are keyed too, so readonly and
// readOnly behave the same.
var properties = buildProperties()

func buildProperties() map[string]propertyInfo {
	m := make(map[string]propertyInfo, len(htmlProperties)*2+len(svgAttributes)+len(attributeAliases))
	for name, flags := range htmlProperties {
		info := propertyInfo{attributeName: strings.ToLower(name), flags: flags}
		m[name] = info
		m[info.attributeName] = info
	}
	for name, attr := range attributeAliases {
		m[name] = propertyInfo{attributeName: attr}
	}
	for _, attr := range svgAttributes {
		m[camelize(attr)] = propertyInfo{attributeName: attr}
	}
	for _, name := range svgStringBooleans {
		m[name] = propertyInfo{attributeName: name, flags: hasStringBooleanValue}
	}
	return m
}

// camelize turns "stroke-width" into "strokeWidth" and "xlink:href" into
// "xlinkHref". Only a lowercase letter after the separator is folded.
func camelize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == '-' || c == ':') && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// lookupProperty returns what is known about an authored attribute name.
// aria-* and data-* names are always string-boolean.
func lookupProperty(name string) (propertyInfo, bool) {
	if info, ok := properties[name]; ok {
		return info, true
	}
	if strings.HasPrefix(name, "aria-") || strings.HasPrefix(name, "data-") {
		return propertyInfo{attributeName: name, flags: hasStringBooleanValue}, true
	}
	return propertyInfo{}, false
}

// isEventHandler reports whether name looks like onClick, onInput, ...
func isEventHandler(name string) bool {
	return len(name) > 2 && name[0] == 'o' && name[1] == 'n' && name[2] >= 'A' && name[2] <= 'Z'
}

// isAttributeNameSafe reports whether name is a valid attribute name:
// a name start character followed by name characters, as XML defines
// them.
func isAttributeNameSafe(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 {
			if !isNameStartChar(r) {
				return false
			}
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStartChar(r rune) bool {
	switch {
	case r == ':', r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r < 0x80:
		return false
	}
	return unicode.Is(nameStartRanges, r)
}

func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r):
		return true
	case r == '-', r == '.', r >= '0' && r <= '9':
		return true
	case r == 0xB7, r >= 0x0300 && r <= 0x036F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}

var nameStartRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00C0, Hi: 0x00D6, Stride: 1},
		{Lo: 0x00D8, Hi: 0x00F6, Stride: 1},
		{Lo: 0x00F8, Hi: 0x02FF, Stride: 1},
		{Lo: 0x0370, Hi: 0x037D, Stride: 1},
		{Lo: 0x037F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	LatinOffset: 2,
}
