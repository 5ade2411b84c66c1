package archive

import (
	"fmt"
	"strings"

	"github.com/icza/mpq"
)

// ListFileName is the conventional MPQ entry holding the archive's file list.
const ListFileName = "(listfile)"

// MPQ is a Blizzard MPQ archive opened for reading.
type MPQ struct {
	path string
	m    *mpq.MPQ
}

// OpenMPQ opens the MPQ archive at path.
func OpenMPQ(path string) (*MPQ, error) {
	m, err := mpq.NewFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening MPQ %s: %w", path, err)
	}
	return &MPQ{path: path, m: m}, nil
}

// Path returns the archive's location on disk.
func (a *MPQ) Path() string {
	return a.path
}

// ReadFile returns the decompressed content of name. Forward slashes are
// converted to the archive's backslash form.
func (a *MPQ) ReadFile(name string) ([]byte, error) {
	key := strings.ReplaceAll(strings.TrimLeft(name, `/\`), "/", `\`)
	data, err := a.m.FileByName(key)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", name, a.path, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, a.path)
	}
	return data, nil
}

// List returns the entries named by the archive's (listfile). Archives
// without one report ErrNotFound.
func (a *MPQ) List() ([]string, error) {
	data, err := a.ReadFile(ListFileName)
	if err != nil {
		return nil, err
	}
	return parseListFile(data), nil
}

// Close releases the underlying file.
func (a *MPQ) Close() error {
	return a.m.Close()
}

// parseListFile splits a (listfile) body. Entries are separated by CR, LF or
// semicolons; blanks are dropped.
func parseListFile(data []byte) []string {
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == '\r' || r == '\n' || r == ';'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
