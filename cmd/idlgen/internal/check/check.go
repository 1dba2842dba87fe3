package check

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/idlgen/java"
	"github.com/broady/idlgen/namespace"
	"github.com/broady/idlgen/schemafile"
)

type Cmd struct {
	Schemas   []string          `arg:"" name:"schema" help:"Schema files to load."`
	Namespace map[string]string `help:"Map a module prefix to a Java package (module=package)." short:"n"`

	stdout io.Writer
}

func (c *Cmd) Run(logger *slog.Logger) error {
	w := c.stdout
	if w == nil {
		w = os.Stdout
	}

	pkg, err := schemafile.Load(c.Schemas...)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}
	s := schemafile.Count(pkg)
	fmt.Fprintf(w, "✓ Loaded %d module(s), %d definition(s): %d enum(s), %d message(s), %d exception(s), %d interface(s)\n",
		s.Modules, s.Definitions, s.Enums, s.Messages, s.Exceptions, s.Interfaces)

	refs, err := java.NewGenerator(nil).
		WithNamespace(namespace.New(c.Namespace)).
		WithLogger(logger).
		Check(pkg)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	fmt.Fprintf(w, "✓ Resolved %d type reference(s)\n", refs)
	return nil
}
