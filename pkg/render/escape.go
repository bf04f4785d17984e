package render

// htmlEscapes maps the five characters that are unsafe in text and
// attribute values to their entities. All of them are ASCII, so scanning
// bytes never splits a multi-byte UTF-8 sequence.
var htmlEscapes = [256]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#x27;",
}

// writeEscaped writes s to b with HTML special characters replaced.
// Runs of safe bytes are copied in one call.
func writeEscaped(b *Builder, s string) {
	last := 0
	for i := 0; i < len(s); i++ {
		esc := htmlEscapes[s[i]]
		if esc == "" {
			continue
		}
		if last < i {
			b.WriteString(s[last:i])
		}
		b.WriteString(esc)
		last = i + 1
	}
	if last < len(s) {
		b.WriteString(s[last:])
	}
}

// needsEscape reports whether s contains a character writeEscaped would
// replace.
func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if htmlEscapes[s[i]] != "" {
			return true
		}
	}
	return false
}

// EscapeHTML returns s with &, <, >, " and ' replaced by entities. The
// same escaping applies to text content and attribute values.
func EscapeHTML(s string) string {
	if !needsEscape(s) {
		return s
	}
	b := NewBuilder(len(s) + len(s)/4)
	writeEscaped(b, s)
	return b.String()
}
