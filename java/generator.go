// Package java generates Java sources for the io.pdef runtime from a linked
// schema package.
//
// Each enum, message, exception and interface becomes one file. Its path is
// derived from the module name mapped through a namespace table:
//
//	g := java.NewGenerator(sink.NewDir("out")).
//	    WithNamespace(namespace.New(map[string]string{"test": "com.corp.test"}))
//	result, err := g.Generate(ctx, pkg)
package java

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/broady/idlgen/lang"
	"github.com/broady/idlgen/namespace"
	"github.com/broady/idlgen/sink"
)

// GenerateResult reports what a generation run produced.
type GenerateResult struct {
	// Files are the written files in declaration order.
	Files []OutputFile

	// DefinitionsGenerated is the number of definitions written.
	DefinitionsGenerated int
}

// Generator drives rendering and writing for a whole package.
// Configure it with the With methods before calling Generate.
type Generator struct {
	sink        sink.Sink
	ns          *namespace.Mapper
	engine      TemplateEngine
	generatedBy string
	ext         string
	workers     int
	keepGoing   bool
	logger      *slog.Logger
}

// NewGenerator returns a Generator writing into s.
func NewGenerator(s sink.Sink) *Generator {
	return &Generator{sink: s}
}

// WithNamespace sets the module to package table.
func (g *Generator) WithNamespace(ns *namespace.Mapper) *Generator {
	g.ns = ns
	return g
}

// WithEngine replaces the embedded templates.
func (g *Generator) WithEngine(engine TemplateEngine) *Generator {
	g.engine = engine
	return g
}

// WithGeneratedBy overrides the provenance line of generated files.
func (g *Generator) WithGeneratedBy(s string) *Generator {
	g.generatedBy = s
	return g
}

// WithExtension sets the file extension. Default: ".java".
func (g *Generator) WithExtension(ext string) *Generator {
	g.ext = ext
	return g
}

// WithWorkers sets how many definitions are processed concurrently.
// Values below 2 mean sequential processing.
func (g *Generator) WithWorkers(n int) *Generator {
	g.workers = n
	return g
}

// KeepGoing makes Generate continue past failing definitions and return
// their errors joined.
func (g *Generator) KeepGoing(keepGoing bool) *Generator {
	g.keepGoing = keepGoing
	return g
}

// WithLogger sets the logger. Default: slog.Default().
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

func (g *Generator) log() *slog.Logger {
	if g.logger == nil {
		return slog.Default()
	}
	return g.logger
}

func (g *Generator) renderer() (*Renderer, error) {
	var opts []RendererOption
	if g.engine != nil {
		opts = append(opts, WithEngine(g.engine))
	}
	if g.generatedBy != "" {
		opts = append(opts, WithGeneratedBy(g.generatedBy))
	}
	return NewRenderer(g.ns, opts...)
}

// Generate renders and writes every definition of pkg.
func (g *Generator) Generate(ctx context.Context, pkg *lang.Package) (*GenerateResult, error) {
	if g.sink == nil {
		return nil, errors.New("java: no output sink")
	}
	r, err := g.renderer()
	if err != nil {
		return nil, err
	}
	w := NewWriter(g.ns, g.sink, g.ext)
	logger := g.log()

	defs := pkg.Definitions()
	files := make([]OutputFile, len(defs))
	errs := make([]error, len(defs))

	process := func(ctx context.Context, i int) error {
		def := defs[i]
		file, err := g.generateOne(ctx, r, w, def)
		if err != nil {
			errs[i] = err
			if !g.keepGoing {
				return err
			}
			logger.Error("generate definition failed",
				slog.String("definition", qualifiedName(def)),
				slog.Any("error", err))
			return nil
		}
		files[i] = file
		logger.Debug("created file",
			slog.String("path", file.Path),
			slog.Int64("size", file.Size))
		return nil
	}

	if g.workers > 1 {
		eg, ectx := errgroup.WithContext(ctx)
		eg.SetLimit(g.workers)
		for i := range defs {
			eg.Go(func() error { return process(ectx, i) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range defs {
			if err := process(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	result := &GenerateResult{}
	for i, file := range files {
		if errs[i] != nil {
			continue
		}
		result.Files = append(result.Files, file)
		result.DefinitionsGenerated++
	}
	return result, errors.Join(errs...)
}

func (g *Generator) generateOne(ctx context.Context, r *Renderer, w *Writer, def lang.Definition) (OutputFile, error) {
	if err := ctx.Err(); err != nil {
		return OutputFile{}, err
	}
	text, err := r.Render(def)
	if err != nil {
		return OutputFile{}, fmt.Errorf("%s: %w", qualifiedName(def), err)
	}
	file, err := w.Write(ctx, def, text)
	if err != nil {
		return OutputFile{}, fmt.Errorf("%s: %w", qualifiedName(def), err)
	}
	return file, nil
}

// Check builds the rendering context of every definition without writing
// anything and returns the number of type references resolved.
func (g *Generator) Check(pkg *lang.Package) (int, error) {
	r, err := g.renderer()
	if err != nil {
		return 0, err
	}

	var (
		refs int
		errs []error
	)
	for _, def := range pkg.Definitions() {
		_, data, err := r.context(def)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", qualifiedName(def), err))
			continue
		}
		refs += countRefs(data)
	}
	return refs, errors.Join(errs...)
}

// countRefs counts the type references a context holds.
func countRefs(data any) int {
	switch c := data.(type) {
	case *MessageContext:
		n := 1 + len(c.Fields) + len(c.Subtypes)
		if c.BaseRef != nil {
			n++
		}
		if c.Discriminator != nil && c.Discriminator.Value != nil {
			n++
		}
		return n
	case *InterfaceContext:
		n := 0
		if c.Exc != nil {
			n++
		}
		for _, m := range c.Methods {
			n += 1 + len(m.Args)
		}
		return n
	default:
		return 0
	}
}

func qualifiedName(def lang.Definition) string {
	if m := def.Owner(); m != nil && m.Name != "" {
		return m.Name + "." + def.Identifier()
	}
	return def.Identifier()
}
