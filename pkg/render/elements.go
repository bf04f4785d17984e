package render

// voidElements are elements that cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// isVoidElement returns true if the tag is a void element.
// The tag must already be lowercase.
func isVoidElement(tag string) bool {
	return voidElements[tag]
}

// newlineEatingTags drop a newline that directly follows the start tag
// when the markup is parsed, so a leading newline in their content has to
// be doubled to survive.
var newlineEatingTags = map[string]bool{
	"listing":  true,
	"pre":      true,
	"textarea": true,
}

// validTagName reports whether tag matches [a-zA-Z][a-zA-Z:_.\-0-9]*.
// Tag names are checked once per element, so this avoids the regexp
// engine on the hot path.
func validTagName(tag string) bool {
	if tag == "" || !isASCIILetter(tag[0]) {
		return false
	}
	for i := 1; i < len(tag); i++ {
		c := tag[i]
		switch {
		case isASCIILetter(c), c >= '0' && c <= '9':
		case c == ':', c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// lowerASCII lowercases ASCII letters, returning s unchanged when it has
// no uppercase letters.
func lowerASCII(s string) string {
	upper := false
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			upper = true
			break
		}
	}
	if !upper {
		return s
	}
	out := []byte(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + 'a' - 'A'
		}
	}
	return string(out)
}
