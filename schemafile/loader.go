// Package schemafile loads linked schema packages from YAML descriptor
// files.
//
// A file declares one module, or several under "modules":
//
//	module: test.module
//	definitions:
//	  - enum: Type
//	    values: [BASE, SUBTYPE]
//	  - message: Base
//	    fields:
//	      - {name: type, type: Type, discriminator: true}
//	  - message: Subtype
//	    base: Base
//	    discriminator_value: Type.SUBTYPE
//	    fields:
//	      - {name: items, type: "map<string, list<int32>>"}
//	  - exception: Failure
//	  - interface: Service
//	    exc: Failure
//	    methods:
//	      - {name: get, result: Base, args: [{name: id, type: int64}]}
//
// Names are resolved in two passes, so definitions may refer to each other
// regardless of order and across files.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/broady/idlgen/lang"
)

// Load reads, merges and links the schema files at paths.
func Load(paths ...string) (*lang.Package, error) {
	l := NewLoader()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		if err := l.AddFile(p, data); err != nil {
			return nil, err
		}
	}
	return l.Link()
}

// Loader accumulates schema files and links them into a package.
type Loader struct {
	modules []*pendingModule
	byName  map[string]*pendingModule
}

type pendingModule struct {
	module *lang.Module
	defs   []pendingDef
}

// pendingDef pairs a shell definition with the document it came from.
type pendingDef struct {
	file string
	doc  *defDoc
	def  lang.Definition
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{byName: make(map[string]*pendingModule)}
}

// AddFile parses a schema document and registers its definitions. Modules
// with the same name in several files are merged. file names the source in
// errors.
func (l *Loader) AddFile(file string, data []byte) error {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &Error{File: file, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
	}

	modules := doc.Modules
	if doc.Module != "" || len(doc.Definitions) > 0 {
		modules = append([]moduleDoc{{Module: doc.Module, Definitions: doc.Definitions}}, modules...)
	}
	if len(modules) == 0 {
		return &Error{File: file, Err: fmt.Errorf("%w: no module declared", ErrSyntax)}
	}

	var errs []error
	for _, md := range modules {
		if md.Module == "" {
			errs = append(errs, &Error{File: file, Err: fmt.Errorf("%w: module name is required", ErrSyntax)})
			continue
		}
		pm := l.module(md.Module)
		for i := range md.Definitions {
			if err := l.register(file, pm, &md.Definitions[i]); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (l *Loader) module(name string) *pendingModule {
	if pm, ok := l.byName[name]; ok {
		return pm
	}
	pm := &pendingModule{module: lang.NewModule(name)}
	l.byName[name] = pm
	l.modules = append(l.modules, pm)
	return pm
}

// register creates the shell for one definition. Shells carry names only;
// references are filled in by Link.
func (l *Loader) register(file string, pm *pendingModule, d *defDoc) error {
	kind, name, count := d.kindAndName()
	path := pm.module.Name
	switch {
	case count == 0:
		return &Error{File: file, Line: d.line, Path: path,
			Err: fmt.Errorf("%w: definition needs one of enum, message, exception or interface", ErrSyntax)}
	case count > 1:
		return &Error{File: file, Line: d.line, Path: path + "." + name,
			Err: fmt.Errorf("%w: definition declares more than one kind", ErrSyntax)}
	}
	path += "." + name
	if pm.module.Lookup(name) != nil {
		return &Error{File: file, Line: d.line, Path: path, Err: ErrDuplicate}
	}

	var def lang.Definition
	switch kind {
	case "enum":
		enum := lang.NewEnum(name)
		for _, v := range d.Values {
			if enum.Value(v) != nil {
				return &Error{File: file, Line: d.line, Path: path + "." + v,
					Err: fmt.Errorf("%w: enum value", ErrDuplicate)}
			}
			enum.AddValue(v)
		}
		def = enum
	case "message":
		def = lang.NewMessage(name)
	case "exception":
		def = lang.NewException(name)
	case "interface":
		def = lang.NewInterface(name, nil)
	}
	pm.module.Add(def)
	pm.defs = append(pm.defs, pendingDef{file: file, doc: d, def: def})
	return nil
}

// Link resolves every reference and returns the package. All problems are
// reported together.
func (l *Loader) Link() (*lang.Package, error) {
	modules := make([]*lang.Module, len(l.modules))
	for i, pm := range l.modules {
		modules[i] = pm.module
	}
	lk := &linker{pkg: lang.NewPackage(modules...)}

	for _, pm := range l.modules {
		for _, pd := range pm.defs {
			lk.link(pm.module, pd)
		}
	}
	if len(lk.errs) == 0 {
		for _, pm := range l.modules {
			for _, pd := range pm.defs {
				lk.check(pm.module, pd)
			}
		}
	}
	if len(lk.errs) > 0 {
		return nil, errors.Join(lk.errs...)
	}
	return lk.pkg, nil
}

type linker struct {
	pkg  *lang.Package
	errs []error
}

func (lk *linker) fail(file string, line int, path string, err error) {
	lk.errs = append(lk.errs, &Error{File: file, Line: line, Path: path, Err: err})
}

func (lk *linker) link(m *lang.Module, pd pendingDef) {
	path := m.Name + "." + pd.def.Identifier()
	switch def := pd.def.(type) {
	case *lang.Message:
		lk.linkMessage(m, pd, def, path)
	case *lang.Interface:
		lk.linkInterface(m, pd, def, path)
	}
}

func (lk *linker) linkMessage(m *lang.Module, pd pendingDef, msg *lang.Message, path string) {
	d := pd.doc
	if d.Base != "" {
		typ, err := lk.resolveName(m, d.Base)
		base, ok := typ.(*lang.Message)
		switch {
		case err != nil:
			lk.fail(pd.file, d.line, path+".base", err)
		case !ok:
			lk.fail(pd.file, d.line, path+".base", fmt.Errorf("%w: %s is not a message", ErrWrongKind, d.Base))
		case base.IsException != msg.IsException:
			lk.fail(pd.file, d.line, path+".base", fmt.Errorf("%w: messages and exceptions cannot inherit from each other", ErrWrongKind))
		default:
			var value *lang.EnumValue
			if d.DiscriminatorValue != "" {
				typ, err := lk.resolveName(m, d.DiscriminatorValue)
				v, ok := typ.(*lang.EnumValue)
				switch {
				case err != nil:
					lk.fail(pd.file, d.line, path+".discriminator_value", err)
				case !ok:
					lk.fail(pd.file, d.line, path+".discriminator_value",
						fmt.Errorf("%w: %s is not an enum value", ErrDiscriminator, d.DiscriminatorValue))
				default:
					value = v
				}
			}
			msg.SetBase(base, value)
		}
	} else if d.DiscriminatorValue != "" {
		lk.fail(pd.file, d.line, path+".discriminator_value",
			fmt.Errorf("%w: discriminator value without a base", ErrDiscriminator))
	}

	for i, fd := range d.Fields {
		fpath := fmt.Sprintf("%s.fields[%d]", path, i)
		if fd.Name == "" {
			lk.fail(pd.file, fd.line, fpath, fmt.Errorf("%w: field name is required", ErrSyntax))
			continue
		}
		typ, err := lk.resolveType(m, fd.Type)
		if err != nil {
			lk.fail(pd.file, fd.line, fpath, err)
			continue
		}
		if !lang.IsDataType(typ) {
			lk.fail(pd.file, fd.line, fpath, fmt.Errorf("%w: field type %s is not a data type", ErrWrongKind, fd.Type))
			continue
		}
		if fd.Discriminator {
			enum, ok := typ.(*lang.Enum)
			if !ok {
				lk.fail(pd.file, fd.line, fpath, fmt.Errorf("%w: discriminator field must be an enum, got %s", ErrDiscriminator, fd.Type))
				continue
			}
			msg.AddDiscriminator(fd.Name, enum)
			continue
		}
		msg.AddField(fd.Name, typ)
	}
}

func (lk *linker) linkInterface(m *lang.Module, pd pendingDef, iface *lang.Interface, path string) {
	d := pd.doc
	if d.Exc != "" {
		typ, err := lk.resolveName(m, d.Exc)
		exc, ok := typ.(*lang.Message)
		switch {
		case err != nil:
			lk.fail(pd.file, d.line, path+".exc", err)
		case !ok || !exc.IsException:
			lk.fail(pd.file, d.line, path+".exc", fmt.Errorf("%w: %s is not an exception", ErrWrongKind, d.Exc))
		default:
			iface.Exc = exc
		}
	}

	for i, md := range d.Methods {
		mpath := fmt.Sprintf("%s.methods[%d]", path, i)
		if md.Name == "" {
			lk.fail(pd.file, md.line, mpath, fmt.Errorf("%w: method name is required", ErrSyntax))
			continue
		}
		resultExpr := md.Result
		if resultExpr == "" {
			resultExpr = lang.Void.String()
		}
		result, err := lk.resolveType(m, resultExpr)
		if err != nil {
			lk.fail(pd.file, md.line, mpath+".result", err)
			continue
		}
		if _, ok := result.(*lang.EnumValue); ok {
			lk.fail(pd.file, md.line, mpath+".result", fmt.Errorf("%w: result cannot be an enum value", ErrWrongKind))
			continue
		}

		var args []lang.Arg
		ok := true
		for j, ad := range md.Args {
			apath := fmt.Sprintf("%s.args[%d]", mpath, j)
			typ, err := lk.resolveType(m, ad.Type)
			switch {
			case err != nil:
				lk.fail(pd.file, md.line, apath, err)
				ok = false
			case !lang.IsDataType(typ):
				lk.fail(pd.file, md.line, apath, fmt.Errorf("%w: argument type %s is not a data type", ErrWrongKind, ad.Type))
				ok = false
			default:
				args = append(args, lang.Arg{Name: ad.Name, Type: typ})
			}
		}
		if !ok {
			continue
		}
		method := iface.AddMethod(md.Name, result, args...)
		method.IsPost = md.Post
	}
}

// check validates cross-definition rules once every reference is linked.
func (lk *linker) check(m *lang.Module, pd pendingDef) {
	msg, ok := pd.def.(*lang.Message)
	if !ok {
		return
	}
	path := m.Name + "." + msg.Name

	seen := map[*lang.Message]bool{}
	for cur := msg; cur != nil; cur = cur.Base {
		if seen[cur] {
			lk.fail(pd.file, pd.doc.line, path+".base", fmt.Errorf("%w: %s inherits from itself", ErrBaseCycle, msg.Name))
			return
		}
		seen[cur] = true
	}

	declared := 0
	for cur := msg; cur != nil; cur = cur.Base {
		for _, f := range cur.Fields {
			if f.IsDiscriminator {
				declared++
			}
		}
	}
	if declared > 1 {
		lk.fail(pd.file, pd.doc.line, path, fmt.Errorf("%w: more than one discriminator field in the hierarchy", ErrDiscriminator))
		return
	}

	if msg.DiscriminatorValue == nil {
		return
	}
	field := msg.Base.Discriminator()
	if field == nil {
		lk.fail(pd.file, pd.doc.line, path+".discriminator_value",
			fmt.Errorf("%w: base %s has no discriminator field", ErrDiscriminator, msg.Base.Name))
		return
	}
	if enum := field.Type.(*lang.Enum); msg.DiscriminatorValue.Enum() != enum {
		lk.fail(pd.file, pd.doc.line, path+".discriminator_value",
			fmt.Errorf("%w: %s is not a value of %s", ErrDiscriminator, pd.doc.DiscriminatorValue, enum.Name))
	}
}

// resolveType parses and resolves a type expression in the scope of m.
func (lk *linker) resolveType(m *lang.Module, expr string) (lang.Type, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: type is required", ErrSyntax)
	}
	e, err := parseTypeExpr(expr)
	if err != nil {
		return nil, err
	}
	return lk.resolveExpr(m, e)
}

func (lk *linker) resolveExpr(m *lang.Module, e *typeExpr) (lang.Type, error) {
	args := make([]lang.Type, len(e.args))
	for i, a := range e.args {
		t, err := lk.resolveExpr(m, a)
		if err != nil {
			return nil, err
		}
		if !lang.IsDataType(t) {
			return nil, fmt.Errorf("%w: %s cannot be a collection element", ErrWrongKind, a)
		}
		args[i] = t
	}
	switch e.name {
	case "list":
		return lang.NewList(args[0]), nil
	case "set":
		return lang.NewSet(args[0]), nil
	case "map":
		return lang.NewMap(args[0], args[1]), nil
	}
	if n, ok := lang.ParseNative(e.name); ok {
		return n, nil
	}
	return lk.resolveName(m, e.name)
}

// resolveName finds a definition or enum value by name. Local names win
// over qualified ones: "Item" and "Type.ONE" are looked up in m first,
// then "a.b.Item" and "a.b.Type.ONE" through the package.
func (lk *linker) resolveName(m *lang.Module, name string) (lang.Type, error) {
	parts := strings.Split(name, ".")
	n := len(parts)

	if def := m.Lookup(name); def != nil {
		return def, nil
	}
	if n == 2 {
		if v := enumValue(m.Lookup(parts[0]), parts[1]); v != nil {
			return v, nil
		}
	}
	if n >= 2 {
		if mod := lk.pkg.FindModule(strings.Join(parts[:n-1], ".")); mod != nil {
			if def := mod.Lookup(parts[n-1]); def != nil {
				return def, nil
			}
		}
	}
	if n >= 3 {
		if mod := lk.pkg.FindModule(strings.Join(parts[:n-2], ".")); mod != nil {
			if v := enumValue(mod.Lookup(parts[n-2]), parts[n-1]); v != nil {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownReference, name)
}

func enumValue(def lang.Definition, value string) *lang.EnumValue {
	enum, ok := def.(*lang.Enum)
	if !ok {
		return nil
	}
	return enum.Value(value)
}

// Stats summarizes a linked package.
type Stats struct {
	Modules     int
	Enums       int
	Messages    int
	Exceptions  int
	Interfaces  int
	Definitions int
}

// Count returns definition counts for pkg.
func Count(pkg *lang.Package) Stats {
	s := Stats{Modules: len(pkg.Modules)}
	for _, def := range pkg.Definitions() {
		s.Definitions++
		switch d := def.(type) {
		case *lang.Enum:
			s.Enums++
		case *lang.Message:
			if d.IsException {
				s.Exceptions++
			} else {
				s.Messages++
			}
		case *lang.Interface:
			s.Interfaces++
		}
	}
	return s
}
