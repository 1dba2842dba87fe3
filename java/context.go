package java

import (
	"fmt"

	"github.com/broady/idlgen/lang"
)

// EnumContext is the template input for an enum.
type EnumContext struct {
	GeneratedBy string
	Package     string
	Name        string
	Values      []string
}

// MessageContext is the template input for a message or exception.
type MessageContext struct {
	GeneratedBy string
	Package     string
	Name        string

	// Ref is the reference to the message itself.
	Ref TypeRef

	// Base is the class the message extends.
	Base string

	// BaseRef is the resolved base message, or nil when Base is one of the
	// abstract runtime classes.
	BaseRef *TypeRef

	IsException bool

	// Fields contains declared fields only; inherited accessors come from
	// the base class.
	Fields []FieldContext

	// Discriminator is set for messages in a polymorphic hierarchy.
	Discriminator *DiscriminatorContext

	// Subtypes are the direct subtypes registered on the descriptor.
	Subtypes []TypeRef
}

// FieldContext describes one declared field.
type FieldContext struct {
	Name            string
	Type            TypeRef
	Getter          string
	Setter          string
	Has             string
	Clear           string
	IsDiscriminator bool
}

// DiscriminatorContext names the discriminator field and the value
// selecting the message.
type DiscriminatorContext struct {
	// Field is the discriminator field name, possibly inherited.
	Field string

	// Value is the enum value selecting this message. Nil for the root of
	// the hierarchy.
	Value *TypeRef
}

// InterfaceContext is the template input for an interface.
type InterfaceContext struct {
	GeneratedBy string
	Package     string
	Name        string

	// Exc is the bound exception, or nil.
	Exc *TypeRef

	Methods []MethodContext
}

// MethodContext describes one interface method.
type MethodContext struct {
	Name   string
	Result TypeRef

	// Unboxed is the result spelling for the Java method signature.
	Unboxed    string
	Args       []ArgContext
	IsPost     bool
	IsTerminal bool
}

// ArgContext describes one method argument.
type ArgContext struct {
	Name string
	Type TypeRef
}

// EnumContext builds the template input for e.
func (r *Renderer) EnumContext(e *lang.Enum) *EnumContext {
	return &EnumContext{
		GeneratedBy: r.generatedBy,
		Package:     r.resolver.Package(e.Owner()),
		Name:        e.Name,
		Values:      e.ValueNames(),
	}
}

// MessageContext builds the template input for m.
func (r *Renderer) MessageContext(m *lang.Message) (*MessageContext, error) {
	self, err := r.resolver.Resolve(m)
	if err != nil {
		return nil, err
	}
	base, err := r.resolver.MessageBase(m)
	if err != nil {
		return nil, err
	}

	ctx := &MessageContext{
		GeneratedBy: r.generatedBy,
		Package:     r.resolver.Package(m.Owner()),
		Name:        m.Name,
		Ref:         self,
		Base:        base,
		IsException: m.IsException,
	}
	if m.Base != nil {
		ref, err := r.resolver.Resolve(m.Base)
		if err != nil {
			return nil, err
		}
		ctx.BaseRef = &ref
	}

	for _, f := range m.Fields {
		typ, err := r.resolver.Resolve(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", m.Name, f.Name, err)
		}
		ctx.Fields = append(ctx.Fields, FieldContext{
			Name:            f.Name,
			Type:            typ,
			Getter:          GetterName(f.Name),
			Setter:          SetterName(f.Name),
			Has:             HasName(f.Name),
			Clear:           ClearName(f.Name),
			IsDiscriminator: f.IsDiscriminator,
		})
	}

	if field := m.Discriminator(); field != nil {
		disc := &DiscriminatorContext{Field: field.Name}
		if m.DiscriminatorValue != nil {
			value, err := r.resolver.Resolve(m.DiscriminatorValue)
			if err != nil {
				return nil, fmt.Errorf("discriminator value of %s: %w", m.Name, err)
			}
			disc.Value = &value
		}
		ctx.Discriminator = disc
	}

	for _, sub := range m.Subtypes {
		ref, err := r.resolver.Resolve(sub)
		if err != nil {
			return nil, fmt.Errorf("subtype of %s: %w", m.Name, err)
		}
		ctx.Subtypes = append(ctx.Subtypes, ref)
	}

	return ctx, nil
}

// InterfaceContext builds the template input for iface.
func (r *Renderer) InterfaceContext(iface *lang.Interface) (*InterfaceContext, error) {
	ctx := &InterfaceContext{
		GeneratedBy: r.generatedBy,
		Package:     r.resolver.Package(iface.Owner()),
		Name:        iface.Name,
	}

	if iface.Exc != nil {
		exc, err := r.resolver.Resolve(iface.Exc)
		if err != nil {
			return nil, fmt.Errorf("exception of %s: %w", iface.Name, err)
		}
		ctx.Exc = &exc
	}

	for _, m := range iface.Methods {
		result, err := r.resolver.Resolve(m.Result)
		if err != nil {
			return nil, fmt.Errorf("method %s.%s result: %w", iface.Name, m.Name, err)
		}
		method := MethodContext{
			Name:       m.Name,
			Result:     result,
			Unboxed:    result.Unboxed,
			IsPost:     m.IsPost,
			IsTerminal: m.IsTerminal(),
		}
		for _, arg := range m.Args {
			typ, err := r.resolver.Resolve(arg.Type)
			if err != nil {
				return nil, fmt.Errorf("method %s.%s arg %s: %w", iface.Name, m.Name, arg.Name, err)
			}
			method.Args = append(method.Args, ArgContext{Name: arg.Name, Type: typ})
		}
		ctx.Methods = append(ctx.Methods, method)
	}

	return ctx, nil
}
