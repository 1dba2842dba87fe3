// Package sink provides destinations for generated source files.
//
// Paths handed to a Sink are slash-separated, relative and clean. A sink
// rejects anything else with ErrInvalidPath before touching storage.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	// ErrInvalidPath is returned for paths that are empty, absolute, unclean
	// or that leave the sink root.
	ErrInvalidPath = errors.New("invalid output path")

	// ErrExists is returned by a Dir with NoClobber set when the target
	// file already exists.
	ErrExists = errors.New("file exists")
)

// Sink receives generated files. Implementations must be safe for
// concurrent use.
type Sink interface {
	WriteFile(ctx context.Context, name string, content []byte) error
}

// Dir writes files below a directory on the local filesystem.
type Dir struct {
	Root string

	// Perm is applied to every written file. Zero means 0644.
	Perm os.FileMode

	// NoClobber refuses to replace existing files.
	NoClobber bool
}

// NewDir returns a Dir rooted at root that overwrites existing files, so
// running the generator twice leaves identical output.
func NewDir(root string) *Dir {
	return &Dir{Root: root, Perm: 0o644}
}

var tempSeq atomic.Uint64

// WriteFile stores content at name below d.Root. Missing directories are
// created. Content goes to a temporary sibling first and is renamed into
// place, so readers never observe a partial file. All filesystem access
// goes through an os.Root, which also stops symlinks from escaping the
// output tree.
func (d *Dir) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("create output root: %w", err)
	}
	root, err := os.OpenRoot(d.Root)
	if err != nil {
		return fmt.Errorf("open output root: %w", err)
	}
	defer root.Close()

	if dir := path.Dir(name); dir != "." {
		if err := root.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := path.Join(path.Dir(name), fmt.Sprintf(".idlgen-%d-%d.tmp", os.Getpid(), tempSeq.Add(1)))
	if err := d.writeTemp(root, tmp, content); err != nil {
		_ = root.Remove(tmp)
		return err
	}

	if err := ctx.Err(); err != nil {
		_ = root.Remove(tmp)
		return err
	}

	if d.NoClobber {
		// Link fails if name exists, which a stat followed by a rename
		// cannot guarantee.
		err := root.Link(tmp, name)
		_ = root.Remove(tmp)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, name)
		}
		return err
	}
	if err := root.Rename(tmp, name); err != nil {
		_ = root.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (d *Dir) writeTemp(root *os.Root, tmp string, content []byte) error {
	perm := d.Perm
	if perm == 0 {
		perm = 0o644
	}
	f, err := root.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	_, werr := f.Write(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	// OpenFile is subject to the umask.
	return root.Chmod(tmp, perm)
}

// Memory keeps written files in memory. Dry runs and tests use it.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty Memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// WriteFile records a copy of content under name, replacing any earlier
// write to the same name.
func (m *Memory) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.files[name] = slices.Clone(content)
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the content written to name, or nil.
func (m *Memory) Get(name string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.files[name])
}

// Paths returns the written names in sorted order.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Size returns the total number of bytes held.
func (m *Memory) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, b := range m.files {
		n += int64(len(b))
	}
	return n
}

// Reset discards all files.
func (m *Memory) Reset() {
	m.mu.Lock()
	clear(m.files)
	m.mu.Unlock()
}

// ValidatePath reports whether name can be written by a sink. It must be
// non-empty, slash-separated, relative, already clean and free of ".."
// elements.
func ValidatePath(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	case strings.Contains(name, `\`):
		return fmt.Errorf("%w: %q contains a backslash", ErrInvalidPath, name)
	case path.IsAbs(name) || filepath.VolumeName(name) != "" || hasDrive(name):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidPath, name)
	case slices.Contains(strings.Split(name, "/"), ".."):
		return fmt.Errorf("%w: %q leaves the output root", ErrInvalidPath, name)
	case path.Clean(name) != name:
		return fmt.Errorf("%w: %q is not clean, want %q", ErrInvalidPath, name, path.Clean(name))
	}
	return nil
}

// hasDrive catches "C:" prefixes on every platform, since the output may be
// copied to Windows.
func hasDrive(name string) bool {
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0] | 0x20
	return c >= 'a' && c <= 'z'
}
