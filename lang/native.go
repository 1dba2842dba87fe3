package lang

// NativeType is a built-in scalar type. Native types are values, so
// lang.Int32 can be used anywhere a Type is expected.
type NativeType int

const (
	Bool NativeType = iota
	Int16
	Int32
	Int64
	Float
	Double
	String
	Void
	Datetime
)

// NativeTypes lists every native type in declaration order.
var NativeTypes = []NativeType{Bool, Int16, Int32, Int64, Float, Double, String, Void, Datetime}

// Kind returns KindNative.
func (NativeType) Kind() TypeKind { return KindNative }

func (NativeType) sealed() {}

// String returns the schema spelling of the native type.
func (n NativeType) String() string {
	switch n {
	case Bool:
		return "bool"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Void:
		return "void"
	case Datetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ParseNative returns the native type spelled name.
func ParseNative(name string) (NativeType, bool) {
	for _, n := range NativeTypes {
		if n.String() == name {
			return n, true
		}
	}
	return 0, false
}

// List is an ordered collection of Element.
type List struct {
	Element Type
}

// Kind returns KindList.
func (*List) Kind() TypeKind { return KindList }

func (*List) sealed() {}

// NewList returns a list of element.
func NewList(element Type) *List {
	return &List{Element: element}
}

// Set is a collection of unique Element values.
type Set struct {
	Element Type
}

// Kind returns KindSet.
func (*Set) Kind() TypeKind { return KindSet }

func (*Set) sealed() {}

// NewSet returns a set of element.
func NewSet(element Type) *Set {
	return &Set{Element: element}
}

// Map is a key-value mapping.
type Map struct {
	Key   Type
	Value Type
}

// Kind returns KindMap.
func (*Map) Kind() TypeKind { return KindMap }

func (*Map) sealed() {}

// NewMap returns a map from key to value.
func NewMap(key, value Type) *Map {
	return &Map{Key: key, Value: value}
}
