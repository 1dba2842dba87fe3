package java

import (
	"context"
	"fmt"
	"strings"

	"github.com/broady/idlgen/lang"
	"github.com/broady/idlgen/namespace"
	"github.com/broady/idlgen/sink"
)

// DefaultExtension is the file extension of generated sources.
const DefaultExtension = ".java"

// OutputFile describes a written file.
type OutputFile struct {
	// Path is relative to the sink root, with forward slashes.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// Writer places rendered definitions under their package directories.
type Writer struct {
	ns   *namespace.Mapper
	sink sink.Sink
	ext  string
}

// NewWriter returns a Writer writing into s. An empty ext means
// DefaultExtension.
func NewWriter(ns *namespace.Mapper, s sink.Sink, ext string) *Writer {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Writer{ns: ns, sink: s, ext: ext}
}

// Path returns the relative file path for def: the mapped package with
// dots turned into directories, then the definition name.
//
//	module "test.module", namespace test=com.corp.test -> com/corp/test/module/Number.java
func (w *Writer) Path(def lang.Definition) string {
	var segments []string
	if m := def.Owner(); m != nil {
		for _, s := range strings.Split(w.ns.Map(m.Name), ".") {
			if s != "" {
				segments = append(segments, s)
			}
		}
	}
	segments = append(segments, def.Identifier()+w.ext)
	return strings.Join(segments, "/")
}

// Write stores text as the source file for def.
func (w *Writer) Write(ctx context.Context, def lang.Definition, text string) (OutputFile, error) {
	p := w.Path(def)
	data := []byte(text)
	if err := w.sink.WriteFile(ctx, p, data); err != nil {
		return OutputFile{}, fmt.Errorf("write %s: %w", p, err)
	}
	return OutputFile{Path: p, Size: int64(len(data))}, nil
}
