// Package namespace maps dotted schema module names to target package names.
package namespace

import (
	"maps"
	"strings"
)

// Mapper rewrites module names using a table of literal module prefixes.
// The zero value and a nil *Mapper map every name to itself.
// A Mapper is immutable and safe for concurrent use.
type Mapper struct {
	table map[string]string
}

// New returns a Mapper for table. The table is copied.
//
// Example:
//
//	m := namespace.New(map[string]string{"service": "com.company.service"})
//	m.Map("service.client.tests") // "com.company.service.client.tests"
func New(table map[string]string) *Mapper {
	return &Mapper{table: maps.Clone(table)}
}

// Map returns the package name for module.
//
// Dotted prefixes of module are tried longest first. The first prefix found
// in the table is replaced and the rest of the name is kept verbatim. Names
// without a matching prefix are returned unchanged. A match is always on
// whole segments: "service" matches "service.client" but not "services".
func (m *Mapper) Map(module string) string {
	if m == nil || len(m.table) == 0 {
		return module
	}

	prefix := module
	for {
		if repl, ok := m.table[prefix]; ok {
			suffix := module[len(prefix):]
			if repl == "" {
				return strings.TrimPrefix(suffix, ".")
			}
			return repl + suffix
		}

		i := strings.LastIndexByte(prefix, '.')
		if i < 0 {
			return module
		}
		prefix = prefix[:i]
	}
}

// Table returns a copy of the mapping table.
func (m *Mapper) Table() map[string]string {
	if m == nil {
		return nil
	}
	return maps.Clone(m.table)
}
