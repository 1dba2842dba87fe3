package java

import (
	"errors"
	"fmt"

	"github.com/broady/idlgen/internal/meta"
	"github.com/broady/idlgen/lang"
	"github.com/broady/idlgen/namespace"
)

// ErrUnsupportedDefinition is returned for a definition kind that has no
// Java template.
var ErrUnsupportedDefinition = errors.New("unsupported definition")

// Renderer produces Java source text for definitions.
type Renderer struct {
	resolver    *Resolver
	engine      TemplateEngine
	generatedBy string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEngine replaces the embedded templates.
func WithEngine(engine TemplateEngine) RendererOption {
	return func(r *Renderer) { r.engine = engine }
}

// WithGeneratedBy overrides the provenance line written at the top of every
// file.
func WithGeneratedBy(s string) RendererOption {
	return func(r *Renderer) { r.generatedBy = s }
}

// NewRenderer returns a Renderer resolving packages with ns.
func NewRenderer(ns *namespace.Mapper, opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		resolver:    NewResolver(ns),
		generatedBy: meta.GeneratedBy(meta.Version()),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		t, err := NewTemplates()
		if err != nil {
			return nil, err
		}
		r.engine = t
	}
	return r, nil
}

// Resolver returns the type resolver used by r.
func (r *Renderer) Resolver() *Resolver { return r.resolver }

// Render returns the Java source for def.
func (r *Renderer) Render(def lang.Definition) (string, error) {
	id, data, err := r.context(def)
	if err != nil {
		return "", err
	}
	return r.engine.Render(id, data)
}

// context returns the template id and input for def.
func (r *Renderer) context(def lang.Definition) (string, any, error) {
	switch d := def.(type) {
	case *lang.Enum:
		return EnumTemplate, r.EnumContext(d), nil
	case *lang.Message:
		ctx, err := r.MessageContext(d)
		if err != nil {
			return "", nil, err
		}
		return MessageTemplate, ctx, nil
	case *lang.Interface:
		ctx, err := r.InterfaceContext(d)
		if err != nil {
			return "", nil, err
		}
		return InterfaceTemplate, ctx, nil
	default:
		return "", nil, fmt.Errorf("%w: %T", ErrUnsupportedDefinition, def)
	}
}
