// Package archive provides read access to client data: MPQ archives, on-disk
// extracted trees, and priority chains of both.
//
// Internal names use the client's conventions. Lookups accept either slash
// direction and are case-insensitive.
package archive

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Archive errors.
var (
	ErrNotFound   = errors.New("file not found in archive")
	ErrUnsafePath = errors.New("entry path escapes its root")
)

// Source is anything that can return the bytes of a named entry.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// Archive is a Source that can enumerate its entries and must be closed.
type Archive interface {
	Source
	List() ([]string, error)
	Close() error
}

var folder = cases.Fold()

// NormalizePath returns the comparison key for an entry name: forward
// slashes, no leading separator, case-folded.
func NormalizePath(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.TrimLeft(name, "/")
	return folder.String(name)
}

// Open opens path as a Dir if it is a directory and as an MPQ otherwise.
func Open(path string) (Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	if info.IsDir() {
		return NewDir(path), nil
	}
	return OpenMPQ(path)
}

// OpenAll opens every path and chains them in the given order.
func OpenAll(paths ...string) (*Chain, error) {
	c := NewChain()
	for _, p := range paths {
		a, err := Open(p)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Add(a)
	}
	return c, nil
}

type subSource struct {
	src Source
	dir string
}

// Sub returns a Source that resolves names relative to dir inside src,
// e.g. Sub(mpq, `DBFilesClient`) reads "Map.dbc" as `DBFilesClient\Map.dbc`.
func Sub(src Source, dir string) Source {
	dir = strings.TrimRight(strings.ReplaceAll(dir, `\`, "/"), "/")
	if dir == "" {
		return src
	}
	return subSource{src: src, dir: dir}
}

func (s subSource) ReadFile(name string) ([]byte, error) {
	return s.src.ReadFile(s.dir + "/" + strings.TrimLeft(strings.ReplaceAll(name, `\`, "/"), "/"))
}
