package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/idlgen/cmd/idlgen/internal/check"
	"github.com/broady/idlgen/cmd/idlgen/internal/gen"
	"github.com/broady/idlgen/internal/meta"
)

type CLI struct {
	Verbose   bool   `help:"Enable debug logging." short:"v"`
	LogFormat string `help:"Log output format." enum:"text,json" default:"text"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Java sources from schema files."`
	Check   check.Cmd  `cmd:"" help:"Load and resolve schema files without writing anything."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(meta.Version())
	return nil
}

func newLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("idlgen"),
		kong.Description("Java code generator for linked schema packages."),
		kong.UsageOnError(),
	)

	logger := newLogger(os.Stderr, cli.Verbose, cli.LogFormat)
	slog.SetDefault(logger)

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
