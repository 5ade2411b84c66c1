// Package formats assembles World of Warcraft chunked assets (ADT terrain
// tiles, WDT map definitions and WMO world-model objects) from their raw
// bytes.
//
// Every assembler follows the same steps: split the buffer into chunks,
// resolve the variant when the format has more than one, then run the
// asset's chunk schema. Chunks a schema does not decode are either ignored
// or recorded as chunk.Undecoded placeholders.
package formats

import (
	"errors"
	"fmt"

	"github.com/Faultbox/wowfmt/pkg/binread"
	"github.com/Faultbox/wowfmt/pkg/chunk"
)

// Assembly errors.
var (
	ErrDependencyLoadFailed = errors.New("dependent file could not be loaded")
	ErrNotRootWMO           = errors.New("WMO is a group file, not a root file")
	ErrNotGroupWMO          = errors.New("WMO is a root file, not a group file")
)

// NameTable is a block of null-terminated names that other chunks address
// by byte offset (MTEX, MMDX, MWMO, MOTX, MOGN, MODN).
type NameTable []binread.IndexedString

// decodeNameTable splits a name block. Empty padding entries are dropped.
func decodeNameTable(data []byte) (NameTable, error) {
	names, err := binread.IndexedCStrings(data)
	if err != nil {
		return nil, err
	}
	return NameTable(names), nil
}

// At returns the name starting at byte offset off.
func (t NameTable) At(off uint32) (string, bool) {
	for _, n := range t {
		if n.Offset == off {
			return n.Value, true
		}
	}
	return "", false
}

// Strings returns the names in file order.
func (t NameTable) Strings() []string {
	out := make([]string, len(t))
	for i, n := range t {
		out[i] = n.Value
	}
	return out
}

// nameBinding builds an optional binding that decodes tag as a NameTable.
func nameBinding[T any](tag string, field func(*T) *NameTable) chunk.Binding[T] {
	return chunk.Binding[T]{
		Tag:  tag,
		Mode: chunk.Optional,
		Decode: func(dst *T, c chunk.Chunk) error {
			t, err := decodeNameTable(c.Data)
			if err != nil {
				return err
			}
			*field(dst) = t
			return nil
		},
	}
}

// versionBinding decodes the MVER chunk every format starts with.
func versionBinding[T any](field func(*T) *uint32) chunk.Binding[T] {
	return chunk.Binding[T]{
		Tag:  "MVER",
		Mode: chunk.Required,
		Decode: func(dst *T, c chunk.Chunk) error {
			v, err := binread.Uint32(c.Data, 0)
			if err != nil {
				return err
			}
			*field(dst) = v
			return nil
		},
	}
}

// offsetIndex decodes a chunk of u32 offsets into a name table (MMID, MWID).
func offsetIndex(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: offset index of %d bytes is not a multiple of 4", binread.ErrTruncated, len(data))
	}
	r := binread.NewReader(data)
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = r.Uint32()
	}
	return out, r.Err()
}

// resolveName maps entry id through an offset index into a name table.
func resolveName(names NameTable, index []uint32, id uint32) (string, error) {
	if int(id) >= len(index) {
		return "", fmt.Errorf("%w: name id %d but index has %d entries", binread.ErrOutOfRange, id, len(index))
	}
	name, ok := names.At(index[id])
	if !ok {
		return "", fmt.Errorf("%w: no name at offset %d", binread.ErrOutOfRange, index[id])
	}
	return name, nil
}

// records checks that data holds whole records of size bytes and returns
// how many.
func records(tag string, data []byte, size int) (int, error) {
	if len(data)%size != 0 {
		return 0, fmt.Errorf("%w: %s payload of %d bytes is not a multiple of %d", binread.ErrTruncated, tag, len(data), size)
	}
	return len(data) / size, nil
}
