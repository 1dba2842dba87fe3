package java

import "github.com/broady/idlgen/lang"

// TypeRef is the set of Java spellings for a schema type. The fields agree
// with each other: Default constructs a value of Name and Descriptor
// describes it at runtime.
type TypeRef struct {
	// Name is the qualified, boxed type name used in generic positions.
	// Example: "java.util.Map<String, Integer>"
	Name string

	// Descriptor is an expression evaluating to the runtime descriptor.
	// Empty for enum values, which have no descriptor of their own.
	Descriptor string

	// Default is an expression for a fresh default value.
	// Example: "new java.util.ArrayList<Integer>()"
	Default string

	// Unboxed is the primitive spelling where one exists ("int" for
	// "Integer"), otherwise equal to Name.
	Unboxed string

	IsPrimitive  bool
	IsCollection bool
	IsMessage    bool
	IsInterface  bool
}

// String returns the qualified type name.
func (r TypeRef) String() string { return r.Name }

// HasDescriptor reports whether the type has a runtime descriptor.
func (r TypeRef) HasDescriptor() bool { return r.Descriptor != "" }

// IsZero returns true if the reference is empty.
func (r TypeRef) IsZero() bool { return r == TypeRef{} }

const (
	descriptorsClass = "io.pdef.descriptors.Descriptors"

	// Bases for messages that do not declare one.
	abstractMessage   = "io.pdef.AbstractMessage"
	abstractException = "io.pdef.AbstractException"

	nullLiteral = "null"
)

func nativeRef(name, descriptor, def, unboxed string) TypeRef {
	if unboxed == "" {
		unboxed = name
	}
	return TypeRef{
		Name:       name,
		Descriptor: descriptorsClass + "." + descriptor,
		Default:    def,
		Unboxed:    unboxed,
	}
}

// nativeRefs holds the constant reference for each native type. Entries are
// copied on resolution, so callers cannot modify the table.
var nativeRefs = map[lang.NativeType]TypeRef{
	lang.Bool:     nativeRef("Boolean", "bool", "false", "boolean"),
	lang.Int16:    nativeRef("Short", "int16", "(short) 0", "short"),
	lang.Int32:    nativeRef("Integer", "int32", "0", "int"),
	lang.Int64:    nativeRef("Long", "int64", "0L", "long"),
	lang.Float:    nativeRef("Float", "float0", "0f", "float"),
	lang.Double:   nativeRef("Double", "double0", "0.0", "double"),
	lang.String:   nativeRef("String", "string", `""`, ""),
	lang.Void:     nativeRef("Void", "void0", nullLiteral, "void"),
	lang.Datetime: nativeRef("java.util.Date", "datetime", "new java.util.Date(0)", ""),
}

// Bool returns the Java literal for b.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
