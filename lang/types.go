// Package lang defines the linked schema model consumed by target generators.
// The model is built by a loader or by hand in tests and is treated as
// read-only once every definition has been added to its module.
package lang

// TypeKind identifies the variant of a Type.
type TypeKind int

const (
	// Value types
	KindNative TypeKind = iota // Built-in scalar (bool, int32, string, ...)
	KindList                   // Ordered collection
	KindSet                    // Collection of unique elements
	KindMap                    // Key-value mapping

	// References
	KindEnumValue // A single value of an enum, used as a discriminator
	KindEnum      // User-defined enum
	KindMessage   // User-defined message or exception
	KindInterface // User-defined interface
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindNative:
		return "Native"
	case KindList:
		return "List"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindEnumValue:
		return "EnumValue"
	case KindEnum:
		return "Enum"
	case KindMessage:
		return "Message"
	case KindInterface:
		return "Interface"
	default:
		return "Unknown"
	}
}

// Type is the base interface for every schema type.
type Type interface {
	// Kind returns the variant for type switching.
	Kind() TypeKind

	// Ensure only types in this package can implement Type.
	sealed()
}

// IsNative reports whether t is a built-in scalar type.
func IsNative(t Type) bool {
	_, ok := t.(NativeType)
	return ok
}

// IsPrimitive reports whether t is a value scalar with a primitive
// spelling. Void and datetime are native but not primitive.
func IsPrimitive(t Type) bool {
	n, ok := t.(NativeType)
	if !ok {
		return false
	}
	switch n {
	case Bool, Int16, Int32, Int64, Float, Double, String:
		return true
	}
	return false
}

// IsCollection reports whether t is a list, set or map.
func IsCollection(t Type) bool {
	switch t.(type) {
	case *List, *Set, *Map:
		return true
	}
	return false
}

// IsEnum reports whether t is an enum definition.
func IsEnum(t Type) bool {
	_, ok := t.(*Enum)
	return ok
}

// IsMessage reports whether t is a message or exception definition.
func IsMessage(t Type) bool {
	_, ok := t.(*Message)
	return ok
}

// IsInterface reports whether t is an interface definition.
func IsInterface(t Type) bool {
	_, ok := t.(*Interface)
	return ok
}

// IsDataType reports whether values of t can be serialized: every type
// except interfaces, enum values and void.
func IsDataType(t Type) bool {
	switch t := t.(type) {
	case NativeType:
		return t != Void
	case *Interface, *EnumValue:
		return false
	case nil:
		return false
	}
	return true
}
