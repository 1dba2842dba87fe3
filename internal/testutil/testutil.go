// Package testutil provides helpers shared by the generator tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/tools/txtar"
)

// ExpectNoDiff reports a unified diff between want and got, if any.
func ExpectNoDiff(t testing.TB, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("output mismatch (-want +got):\n%s", diff)
}

// Archive is a parsed txtar fixture.
type Archive struct {
	Comment string
	Files   map[string]string

	// Names holds file names in archive order.
	Names []string
}

// ParseArchive parses txtar data.
func ParseArchive(data []byte) *Archive {
	ar := txtar.Parse(data)
	a := &Archive{
		Comment: string(ar.Comment),
		Files:   make(map[string]string, len(ar.Files)),
	}
	for _, f := range ar.Files {
		a.Names = append(a.Names, f.Name)
		a.Files[f.Name] = string(f.Data)
	}
	return a
}

// LoadArchive reads and parses the txtar file at path.
func LoadArchive(t testing.TB, path string) *Archive {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return ParseArchive(data)
}

// WriteFiles writes every file of the archive whose name matches keep into
// dir and returns their paths. A nil keep writes all files.
func (a *Archive) WriteFiles(t testing.TB, dir string, keep func(name string) bool) []string {
	t.Helper()
	var paths []string
	for _, name := range a.Names {
		if keep != nil && !keep(name) {
			continue
		}
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(a.Files[name]), 0644); err != nil {
			t.Fatalf("write fixture file %s: %v", name, err)
		}
		paths = append(paths, p)
	}
	return paths
}
