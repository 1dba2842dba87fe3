package lang

// Definition is a top-level named type declared in a module.
type Definition interface {
	Type

	// Identifier returns the definition name, unique within its module.
	Identifier() string

	// Owner returns the declaring module, or nil before the definition
	// is added to one.
	Owner() *Module

	setOwner(m *Module)
}

// defBase holds the fields shared by every definition.
type defBase struct {
	module *Module
}

func (d *defBase) Owner() *Module      { return d.module }
func (d *defBase) setOwner(m *Module) { d.module = m }

// Module is a named group of definitions. Its dotted name is the input to
// namespace mapping.
type Module struct {
	Name        string
	Definitions []Definition
}

// NewModule creates a module and adds defs to it.
func NewModule(name string, defs ...Definition) *Module {
	m := &Module{Name: name}
	m.Add(defs...)
	return m
}

// Add appends definitions in order and sets their owning module.
func (m *Module) Add(defs ...Definition) {
	for _, d := range defs {
		d.setOwner(m)
		m.Definitions = append(m.Definitions, d)
	}
}

// Lookup returns the definition with the given name, or nil.
func (m *Module) Lookup(name string) Definition {
	for _, d := range m.Definitions {
		if d.Identifier() == name {
			return d
		}
	}
	return nil
}

// Package is an ordered collection of modules handed to a generator.
type Package struct {
	Modules []*Module
}

// NewPackage returns a package of modules.
func NewPackage(modules ...*Module) *Package {
	return &Package{Modules: modules}
}

// FindModule looks up a module by name. Returns nil if not found.
func (p *Package) FindModule(name string) *Module {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Definitions returns every definition in module then declaration order.
func (p *Package) Definitions() []Definition {
	var out []Definition
	for _, m := range p.Modules {
		out = append(out, m.Definitions...)
	}
	return out
}
