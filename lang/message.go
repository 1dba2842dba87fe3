package lang

// Message is a structured type with single inheritance. Exceptions are
// messages with IsException set.
type Message struct {
	defBase

	Name        string
	IsException bool

	// Base is the parent message, or nil.
	Base *Message

	// DiscriminatorValue selects this message when a polymorphic base is
	// decoded. Nil for the root of a hierarchy and for plain messages.
	DiscriminatorValue *EnumValue

	// Fields contains the fields declared on this message, excluding
	// inherited ones.
	Fields []*Field

	// Subtypes contains messages whose Base is this message, in the order
	// SetBase was called.
	Subtypes []*Message
}

// NewMessage creates a message.
func NewMessage(name string) *Message {
	return &Message{Name: name}
}

// NewException creates a message marked as an exception.
func NewException(name string) *Message {
	return &Message{Name: name, IsException: true}
}

// Kind returns KindMessage.
func (*Message) Kind() TypeKind { return KindMessage }

// Identifier returns the message's name.
func (m *Message) Identifier() string { return m.Name }

func (*Message) sealed() {}

// SetBase sets the base message and the discriminator value selecting m,
// and registers m as a subtype of base. value may be nil.
func (m *Message) SetBase(base *Message, value *EnumValue) {
	m.Base = base
	m.DiscriminatorValue = value
	if base != nil {
		base.Subtypes = append(base.Subtypes, m)
	}
}

// AddField appends a declared field and returns it.
func (m *Message) AddField(name string, typ Type) *Field {
	f := &Field{Name: name, Type: typ}
	m.Fields = append(m.Fields, f)
	return f
}

// AddDiscriminator appends a discriminator field. Its type must be an enum.
func (m *Message) AddDiscriminator(name string, enum *Enum) *Field {
	f := m.AddField(name, enum)
	f.IsDiscriminator = true
	return f
}

// Discriminator returns the discriminator field declared on m or on the
// nearest base that declares one, or nil.
func (m *Message) Discriminator() *Field {
	for cur := m; cur != nil; cur = cur.Base {
		for _, f := range cur.Fields {
			if f.IsDiscriminator {
				return f
			}
		}
	}
	return nil
}

// IsPolymorphic reports whether m belongs to a discriminated hierarchy.
func (m *Message) IsPolymorphic() bool {
	return m.Discriminator() != nil
}

// InheritedFields returns the fields of every base, root first, followed by
// the fields declared on m.
func (m *Message) InheritedFields() []*Field {
	var chain []*Message
	for cur := m; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
	}
	var out []*Field
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].Fields...)
	}
	return out
}

// Field is a single field within a message.
type Field struct {
	Name            string
	Type            Type
	IsDiscriminator bool
}
