package gen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/broady/idlgen/config"
	"github.com/broady/idlgen/java"
	"github.com/broady/idlgen/schemafile"
	"github.com/broady/idlgen/sink"
)

type Cmd struct {
	Schemas   []string          `arg:"" optional:"" name:"schema" help:"Schema files to load."`
	Out       string            `help:"Output directory for generated files." short:"o"`
	Namespace map[string]string `help:"Map a module prefix to a Java package (module=package)." short:"n"`
	Config    string            `help:"YAML configuration file." short:"c" type:"existingfile"`
	Param     string            `help:"Comma-separated key=value parameters, e.g. out=gen,namespace.test=com.corp.test."`
	Workers   int               `help:"Number of definitions processed concurrently." short:"j"`
	KeepGoing bool              `help:"Continue past failing definitions and report all errors." short:"k"`
	DryRun    bool              `help:"Render everything but only print the paths that would be written."`
	Watch     bool              `help:"Watch schema files and regenerate on change." short:"w"`

	stdout io.Writer
}

func (c *Cmd) Run(logger *slog.Logger) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.generate(ctx, logger, cfg); err != nil {
		if !c.Watch {
			return err
		}
		logger.Error("generation failed", slog.Any("error", err))
	}
	if !c.Watch {
		return nil
	}

	logger.Info("watching schema files", slog.Int("files", len(cfg.Schemas)))
	return watch(ctx, logger, cfg.Schemas, func(ctx context.Context) error {
		return c.generate(ctx, logger, cfg)
	})
}

// config layers the config file, the parameter string and the flags, in
// that order.
func (c *Cmd) config() (*config.Config, error) {
	cfg := &config.Config{}
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.Param != "" {
		if err := cfg.ApplyParams(c.Param); err != nil {
			return nil, err
		}
	}
	cfg.Merge(&config.Config{
		OutDir:     c.Out,
		Namespaces: c.Namespace,
		Workers:    c.Workers,
		KeepGoing:  c.KeepGoing,
		Schemas:    c.Schemas,
	})
	cfg.ApplyDefaults()

	if c.DryRun && cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if len(cfg.Schemas) == 0 {
		return nil, fmt.Errorf("%w: no schema files given", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Cmd) generate(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	pkg, err := schemafile.Load(cfg.Schemas...)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}

	var out sink.Sink = sink.NewDir(cfg.OutDir)
	if c.DryRun {
		out = sink.NewMemory()
	}

	result, err := java.NewGenerator(out).
		WithNamespace(cfg.Mapper()).
		WithExtension(cfg.Extension).
		WithWorkers(cfg.Workers).
		KeepGoing(cfg.KeepGoing).
		WithLogger(logger).
		Generate(ctx, pkg)
	if result != nil {
		if c.DryRun {
			w := c.stdout
			if w == nil {
				w = os.Stdout
			}
			for _, f := range result.Files {
				fmt.Fprintf(w, "%s (%d bytes)\n", f.Path, f.Size)
			}
		}
		logger.Info("generated",
			slog.Int("definitions", result.DefinitionsGenerated),
			slog.String("out", cfg.OutDir),
			slog.Bool("dry_run", c.DryRun))
	}
	if err != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
