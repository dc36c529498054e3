package hostgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// GetterName converts a Go getter method name to a script property name.
// e.g., "NumChildren" → "numChildren", "GetLabel" → "label", "X" → "x"
func GetterName(method string) string {
	return lowerFirst(trimVerb(method, "Get"))
}

// SetterName converts a Go setter method name to a script property name.
// e.g., "SetFrameRate" → "frameRate", "SetX" → "x"
func SetterName(method string) string {
	return lowerFirst(trimVerb(method, "Set"))
}

// FunctionName converts a Go method name to a script function name.
// e.g., "AddEventListener" → "addEventListener", "ToString" → "toString"
func FunctionName(method string) string {
	return lowerFirst(method)
}

// BuilderName names the generated function that builds a type's table.
// e.g., "DisplayObject" → "displayObjectType"
func BuilderName(goType string) string {
	return lowerFirst(goType) + "Type"
}

// SimpleName returns the last segment of a dotted class name.
// e.g., "flash.display.Sprite" → "Sprite"
func SimpleName(className string) string {
	if i := strings.LastIndexByte(className, '.'); i >= 0 {
		return className[i+1:]
	}
	return className
}

// trimVerb strips a leading verb only when an exported word follows it, so
// "Settle" and "Set" keep their names.
func trimVerb(name, verb string) string {
	rest, ok := strings.CutPrefix(name, verb)
	if !ok || rest == "" {
		return name
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return name
	}
	return rest
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
