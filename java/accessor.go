package java

import (
	"unicode"
	"unicode/utf8"
)

// GetterName returns the getter for a field: "field" -> "getField".
func GetterName(field string) string { return "get" + upperFirst(field) }

// SetterName returns the setter for a field: "field" -> "setField".
func SetterName(field string) string { return "set" + upperFirst(field) }

// HasName returns the presence check for a field: "field" -> "hasField".
func HasName(field string) string { return "has" + upperFirst(field) }

// ClearName returns the clearing method for a field: "field" -> "clearField".
func ClearName(field string) string { return "clear" + upperFirst(field) }

// upperFirst upper-cases the first character and leaves the rest alone.
// There is no other normalization: "Field" stays "Field" and "my_field"
// becomes "My_field". Downstream code depends on exactly this spelling.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
