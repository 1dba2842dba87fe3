package java

import (
	"errors"
	"fmt"

	"github.com/broady/idlgen/lang"
	"github.com/broady/idlgen/namespace"
)

// ErrUnsupportedType is returned when a type has no Java mapping. It means
// the schema model gained a variant this resolver does not know.
var ErrUnsupportedType = errors.New("unsupported type")

// Resolver maps schema types to Java type references.
// A Resolver holds no mutable state and is safe for concurrent use;
// resolving the same type twice yields equal references.
type Resolver struct {
	ns *namespace.Mapper
}

// NewResolver returns a Resolver that qualifies user-defined types with
// packages from ns. A nil ns keeps module names as package names.
func NewResolver(ns *namespace.Mapper) *Resolver {
	return &Resolver{ns: ns}
}

// Package returns the Java package for a module.
func (r *Resolver) Package(m *lang.Module) string {
	if m == nil {
		return ""
	}
	return r.ns.Map(m.Name)
}

// Resolve returns the Java reference for typ.
func (r *Resolver) Resolve(typ lang.Type) (TypeRef, error) {
	var (
		ref TypeRef
		err error
	)

	switch t := typ.(type) {
	case lang.NativeType:
		native, ok := nativeRefs[t]
		if !ok {
			return TypeRef{}, fmt.Errorf("%w: native %s", ErrUnsupportedType, t)
		}
		ref = native
	case *lang.List:
		ref, err = r.resolveList(t)
	case *lang.Set:
		ref, err = r.resolveSet(t)
	case *lang.Map:
		ref, err = r.resolveMap(t)
	case *lang.EnumValue:
		ref, err = r.resolveEnumValue(t)
	case lang.Definition:
		ref, err = r.resolveDefinition(t)
	default:
		return TypeRef{}, fmt.Errorf("%w: %T", ErrUnsupportedType, typ)
	}
	if err != nil {
		return TypeRef{}, err
	}

	ref.IsPrimitive = lang.IsPrimitive(typ)
	ref.IsCollection = lang.IsCollection(typ)
	ref.IsMessage = lang.IsMessage(typ)
	ref.IsInterface = lang.IsInterface(typ)
	return ref, nil
}

// ResolveUnboxed returns the primitive spelling of typ, for signature
// positions where boxing is unwanted.
func (r *Resolver) ResolveUnboxed(typ lang.Type) (string, error) {
	ref, err := r.Resolve(typ)
	if err != nil {
		return "", err
	}
	return ref.Unboxed, nil
}

// MessageBase returns the class a generated message extends: the declared
// base, or the abstract message or exception class.
func (r *Resolver) MessageBase(m *lang.Message) (string, error) {
	if m.Base != nil {
		ref, err := r.Resolve(m.Base)
		if err != nil {
			return "", fmt.Errorf("base of %s: %w", m.Name, err)
		}
		return ref.Name, nil
	}
	if m.IsException {
		return abstractException, nil
	}
	return abstractMessage, nil
}

func (r *Resolver) resolveList(t *lang.List) (TypeRef, error) {
	elem, err := r.Resolve(t.Element)
	if err != nil {
		return TypeRef{}, fmt.Errorf("list element: %w", err)
	}
	return composite(
		fmt.Sprintf("java.util.List<%s>", elem),
		fmt.Sprintf("new java.util.ArrayList<%s>()", elem),
		fmt.Sprintf("%s.list(%s)", descriptorsClass, elem.Descriptor),
	), nil
}

func (r *Resolver) resolveSet(t *lang.Set) (TypeRef, error) {
	elem, err := r.Resolve(t.Element)
	if err != nil {
		return TypeRef{}, fmt.Errorf("set element: %w", err)
	}
	return composite(
		fmt.Sprintf("java.util.Set<%s>", elem),
		fmt.Sprintf("new java.util.HashSet<%s>()", elem),
		fmt.Sprintf("%s.set(%s)", descriptorsClass, elem.Descriptor),
	), nil
}

func (r *Resolver) resolveMap(t *lang.Map) (TypeRef, error) {
	key, err := r.Resolve(t.Key)
	if err != nil {
		return TypeRef{}, fmt.Errorf("map key: %w", err)
	}
	value, err := r.Resolve(t.Value)
	if err != nil {
		return TypeRef{}, fmt.Errorf("map value: %w", err)
	}
	return composite(
		fmt.Sprintf("java.util.Map<%s, %s>", key, value),
		fmt.Sprintf("new java.util.HashMap<%s, %s>()", key, value),
		fmt.Sprintf("%s.map(%s, %s)", descriptorsClass, key.Descriptor, value.Descriptor),
	), nil
}

func (r *Resolver) resolveEnumValue(v *lang.EnumValue) (TypeRef, error) {
	if v.Enum() == nil {
		return TypeRef{}, fmt.Errorf("%w: enum value %s has no enum", ErrUnsupportedType, v.Name)
	}
	enum, err := r.Resolve(v.Enum())
	if err != nil {
		return TypeRef{}, err
	}
	name := enum.Name + "." + v.Name
	return TypeRef{Name: name, Default: nullLiteral, Unboxed: name}, nil
}

// resolveDefinition only needs the owning module and the name, so messages
// referencing each other resolve without looking at their fields.
func (r *Resolver) resolveDefinition(d lang.Definition) (TypeRef, error) {
	switch d.(type) {
	case *lang.Enum, *lang.Message, *lang.Interface:
	default:
		return TypeRef{}, fmt.Errorf("%w: %T", ErrUnsupportedType, d)
	}

	name := d.Identifier()
	if pkg := r.Package(d.Owner()); pkg != "" {
		name = pkg + "." + name
	}

	def := nullLiteral
	if lang.IsMessage(d) {
		def = "new " + name + "()"
	}
	return TypeRef{
		Name:       name,
		Descriptor: name + ".DESCRIPTOR",
		Default:    def,
		Unboxed:    name,
	}, nil
}

func composite(name, def, descriptor string) TypeRef {
	return TypeRef{Name: name, Descriptor: descriptor, Default: def, Unboxed: name}
}
