package render

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// writeAttribute writes ` name="value"`, a bare ` name`, or nothing,
// depending on the name and value.
func writeAttribute(b *Builder, key string, value any) {
	if value == nil || reservedProps[key] || isEventHandler(key) || isFunc(value) {
		return
	}

	info, known := lookupProperty(key)
	if !known {
		if !isAttributeNameSafe(key) {
			return
		}
		writeUnknownAttribute(b, key, value)
		return
	}
	name := info.attributeName

	switch {
	case info.has(hasBooleanValue):
		if truthy(value) {
			writeBareAttribute(b, name)
		}
		return

	case info.has(hasOverloadedBooleanValue):
		if v, ok := value.(bool); ok {
			if v {
				writeBareAttribute(b, name)
			}
			return
		}

	case info.has(hasNumericValue), info.has(hasPositiveNumericValue):
		if f, ok := toFloat(value); ok {
			if math.IsNaN(f) {
				return
			}
			if info.has(hasPositiveNumericValue) && f < 1 {
				return
			}
		}

	case info.has(hasStringBooleanValue):
		if v, ok := value.(bool); ok {
			writeQuotedAttribute(b, name, strconv.FormatBool(v))
			return
		}

	default:
		if v, ok := value.(bool); ok {
			if v {
				writeBareAttribute(b, name)
			}
			return
		}
	}

	writeQuotedAttribute(b, name, attributeValue(value))
}

// writeUnknownAttribute handles names the serializer has no table entry
// for. Booleans follow the bare-name rule.
func writeUnknownAttribute(b *Builder, name string, value any) {
	if v, ok := value.(bool); ok {
		if v {
			writeBareAttribute(b, name)
		}
		return
	}
	writeQuotedAttribute(b, name, attributeValue(value))
}

func writeBareAttribute(b *Builder, name string) {
	b.WriteByte(' ')
	b.WriteString(name)
}

func writeQuotedAttribute(b *Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	writeEscaped(b, value)
	b.WriteByte('"')
}

// attributeValue converts an attribute value to its unescaped text.
func attributeValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatNumber(v)
	case fmt.Stringer:
		return v.String()
	}
	if f, ok := toFloat(value); ok {
		return formatNumber(f)
	}
	return fmt.Sprint(value)
}

// truthy follows the usual scripting notion: false, 0, NaN and "" are
// false.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, ok := toFloat(value); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

func isFunc(value any) bool {
	return reflect.TypeOf(value).Kind() == reflect.Func
}
