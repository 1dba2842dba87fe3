package schemafile

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by *Error.
var (
	ErrSyntax           = errors.New("syntax error")
	ErrUnknownReference = errors.New("unknown reference")
	ErrDuplicate        = errors.New("duplicate definition")
	ErrWrongKind        = errors.New("wrong kind")
	ErrBaseCycle        = errors.New("base cycle")
	ErrDiscriminator    = errors.New("invalid discriminator")
)

// Error is a problem found while loading or linking a schema file.
type Error struct {
	// File is the schema file name as given to the loader.
	File string

	// Line is the 1-based line of the offending node, or 0 if unknown.
	Line int

	// Path locates the node within the schema, e.g. "test.module.Message.fields[0]".
	Path string

	Err error
}

func (e *Error) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", loc, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
