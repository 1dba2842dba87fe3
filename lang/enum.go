package lang

// Enum is an ordered set of named values.
type Enum struct {
	defBase

	Name   string
	Values []*EnumValue
}

// NewEnum creates an enum with the given value names.
func NewEnum(name string, values ...string) *Enum {
	e := &Enum{Name: name}
	for _, v := range values {
		e.AddValue(v)
	}
	return e
}

// Kind returns KindEnum.
func (*Enum) Kind() TypeKind { return KindEnum }

// Identifier returns the enum's name.
func (e *Enum) Identifier() string { return e.Name }

func (*Enum) sealed() {}

// AddValue appends a value and returns it.
func (e *Enum) AddValue(name string) *EnumValue {
	v := &EnumValue{Name: name, enum: e}
	e.Values = append(e.Values, v)
	return v
}

// Value returns the value with the given name, or nil.
func (e *Enum) Value(name string) *EnumValue {
	for _, v := range e.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// ValueNames returns the value names in declaration order.
func (e *Enum) ValueNames() []string {
	names := make([]string, len(e.Values))
	for i, v := range e.Values {
		names[i] = v.Name
	}
	return names
}

// EnumValue is a single value of an enum. It is a Type so that message
// subtypes can reference the value that selects them.
type EnumValue struct {
	Name string

	enum *Enum
}

// Kind returns KindEnumValue.
func (*EnumValue) Kind() TypeKind { return KindEnumValue }

func (*EnumValue) sealed() {}

// Enum returns the enum that owns the value.
func (v *EnumValue) Enum() *Enum { return v.enum }
