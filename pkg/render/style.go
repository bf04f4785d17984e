package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

// unitlessNumbers are CSS properties that accept plain numbers, keyed by
// camelCase name. Vendor-prefixed variants are added at init.
var unitlessNumbers = map[string]bool{
	"animationIterationCount": true,
	"borderImageOutset":       true,
	"borderImageSlice":        true,
	"borderImageWidth":        true,
	"boxFlex":                 true,
	"boxFlexGroup":            true,
	"boxOrdinalGroup":         true,
	"columnCount":             true,
	"columns":                 true,
	"flex":                    true,
	"flexGrow":                true,
	"flexPositive":            true,
	"flexShrink":              true,
	"flexNegative":            true,
	"flexOrder":               true,
	"gridRow":                 true,
	"gridRowEnd":              true,
	"gridRowSpan":             true,
	"gridRowStart":            true,
	"gridColumn":              true,
	"gridColumnEnd":           true,
	"gridColumnSpan":          true,
	"gridColumnStart":         true,
	"fontWeight":              true,
	"lineClamp":               true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,

	// SVG
	"fillOpacity":      true,
	"floodOpacity":     true,
	"stopOpacity":      true,
	"strokeDasharray":  true,
	"strokeDashoffset": true,
	"strokeMiterlimit": true,
	"strokeOpacity":    true,
	"strokeWidth":      true,
}

var cssPrefixes = []string{"Webkit", "ms", "Moz", "O"}

func init() {
	base := make([]string, 0, len(unitlessNumbers))
	for name := range unitlessNumbers {
		base = append(base, name)
	}
	for _, name := range base {
		for _, prefix := range cssPrefixes {
			unitlessNumbers[prefix+strings.ToUpper(name[:1])+name[1:]] = true
		}
	}
}

// isUnitless accepts both camelCase and hyphenated property names.
func isUnitless(name string) bool {
	if unitlessNumbers[name] {
		return true
	}
	if len(name) < 2 || strings.IndexByte(name, '-') < 0 {
		return false
	}
	if !strings.HasPrefix(name, "-") {
		return unitlessNumbers[camelize(name)]
	}
	// -webkit-line-clamp is WebkitLineClamp, -ms-flex is msFlex.
	prefixed := camelize(name[1:])
	if unitlessNumbers[prefixed] {
		return true
	}
	return unitlessNumbers[strings.ToUpper(prefixed[:1])+prefixed[1:]]
}

// hyphenateStyleName converts fontSize to font-size. The ms vendor prefix
// has no leading capital, so msTransition becomes -ms-transition.
// Custom properties (--x) are returned unchanged.
func hyphenateStyleName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + 'a' - 'A')
			continue
		}
		b.WriteByte(c)
	}
	out := b.String()
	if strings.HasPrefix(out, "ms-") {
		return "-" + out
	}
	return out
}

// styleValue normalizes a single declaration value. It returns "" for
// values that should be skipped.
func styleValue(name string, value any, custom bool) string {
	switch v := value.(type) {
	case nil, bool:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	}
	f, ok := toFloat(value)
	if !ok {
		return strings.TrimSpace(fmt.Sprint(value))
	}
	s := formatNumber(f)
	if !custom && f != 0 && !isUnitless(name) {
		return s + "px"
	}
	return s
}

// writeStyleDecl appends "name:value" to b, preceded by ";" when b is
// not empty. Skipped values write nothing.
func writeStyleDecl(b *strings.Builder, name string, value any) {
	custom := strings.HasPrefix(name, "--")
	v := styleValue(name, value, custom)
	if v == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(';')
	}
	b.WriteString(hyphenateStyleName(name))
	b.WriteByte(':')
	b.WriteString(v)
}

// styleString renders a style attribute value. Style keeps declaration
// order; maps are rendered in lexical key order.
func styleString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case vdom.Style:
		var b strings.Builder
		for _, d := range v {
			writeStyleDecl(&b, d.Property, d.Value)
		}
		return b.String()
	case []vdom.StyleDecl:
		return styleString(vdom.Style(v))
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			writeStyleDecl(&b, k, v[k])
		}
		return b.String()
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			writeStyleDecl(&b, k, v[k])
		}
		return b.String()
	case vdom.Props:
		return styleString(map[string]any(v))
	default:
		return fmt.Sprint(v)
	}
}

// toFloat reports the numeric value of the Go number kinds.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// formatNumber formats f the way a browser prints a number: integers
// without a fraction, 1.5, 1e+21.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// Go pads the exponent to two digits; browsers do not.
		if i := strings.Index(s, "e-0"); i >= 0 {
			s = s[:i+2] + s[i+3:]
		} else if i := strings.Index(s, "e+0"); i >= 0 {
			s = s[:i+2] + s[i+3:]
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
