package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dir serves files from an extracted tree on disk.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory the source reads from.
func (d *Dir) Root() string {
	return d.root
}

// ReadFile reads name relative to the root. An exact match is tried first;
// otherwise each path component is matched case-insensitively.
func (d *Dir) ReadFile(name string) ([]byte, error) {
	rel := filepath.FromSlash(strings.TrimLeft(strings.ReplaceAll(name, `\`, "/"), "/"))
	if rel == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	data, err := os.ReadFile(filepath.Join(d.root, rel))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	path, ok := d.resolve(rel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func (d *Dir) resolve(rel string) (string, bool) {
	cur := d.root
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "" {
			continue
		}
		entries, err := os.ReadDir(cur)
		if err != nil {
			return "", false
		}
		want := folder.String(part)
		found := ""
		for _, e := range entries {
			if folder.String(e.Name()) == want {
				found = e.Name()
				break
			}
		}
		if found == "" {
			return "", false
		}
		cur = filepath.Join(cur, found)
	}
	return cur, true
}

// List returns every regular file under the root as a slash-separated
// relative path, sorted.
func (d *Dir) List() ([]string, error) {
	var out []string
	err := filepath.WalkDir(d.root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", d.root, err)
	}
	sort.Strings(out)
	return out, nil
}

// Close is a no-op.
func (d *Dir) Close() error {
	return nil
}
