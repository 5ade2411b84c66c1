package dbc

import (
	"fmt"
	"os"

	"github.com/Faultbox/wowfmt/pkg/archive"
)

// Column is one entry of a schema's extraction plan: a column index and
// the function that reads it into a field of T.
type Column[T any] struct {
	Index   int
	Name    string
	extract func(row Row, dst *T) error
}

// Schema maps rows of one table into records of type T.
type Schema[T any] struct {
	Name    string // file name, e.g. "AreaTable.dbc"
	Columns []Column[T]
}

// Map converts one row into a record. Either every column is extracted or
// the zero record is returned with the first error.
func (s Schema[T]) Map(row Row) (T, error) {
	var rec T
	for _, c := range s.Columns {
		if err := c.extract(row, &rec); err != nil {
			var zero T
			return zero, fmt.Errorf("%s row %d, %s (column %d): %w", s.Name, row.Index(), c.Name, c.Index, err)
		}
	}
	return rec, nil
}

// File is a fully mapped table.
type File[T any] struct {
	Header  Header `json:"header"`
	Records []T    `json:"records"`
}

// Load parses data and maps every row through s.
func Load[T any](s Schema[T], data []byte) (*File[T], error) {
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	out := &File[T]{
		Header:  t.Header,
		Records: make([]T, 0, min(t.Len(), len(data)/max(1, int(t.Header.RecordSize)))),
	}
	for _, row := range t.Rows() {
		rec, err := s.Map(row)
		if err != nil {
			return nil, err
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// LoadFile reads a table from disk and maps it through s.
func LoadFile[T any](s Schema[T], path string) (*File[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading DBC file: %w", err)
	}
	return Load(s, data)
}

// LoadFrom reads a table named name from src and maps it through s.
func LoadFrom[T any](s Schema[T], src archive.Source, name string) (*File[T], error) {
	data, err := src.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Load(s, data)
}

// Uint32 maps column col to a uint32 field.
func Uint32[T any](col int, name string, field func(*T) *uint32) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		v, err := row.Uint32(col)
		if err != nil {
			return err
		}
		*field(dst) = v
		return nil
	}}
}

// Int32 maps column col to an int32 field.
func Int32[T any](col int, name string, field func(*T) *int32) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		v, err := row.Int32(col)
		if err != nil {
			return err
		}
		*field(dst) = v
		return nil
	}}
}

// Float32 maps column col to a float32 field.
func Float32[T any](col int, name string, field func(*T) *float32) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		v, err := row.Float32(col)
		if err != nil {
			return err
		}
		*field(dst) = v
		return nil
	}}
}

// Bool maps column col to a bool field.
func Bool[T any](col int, name string, field func(*T) *bool) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		v, err := row.Bool(col)
		if err != nil {
			return err
		}
		*field(dst) = v
		return nil
	}}
}

// String maps column col, a string block offset, to a string field.
func String[T any](col int, name string, field func(*T) *string) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		v, err := row.String(col)
		if err != nil {
			return err
		}
		*field(dst) = v
		return nil
	}}
}

// Uint32s maps len(field(dst)) consecutive columns starting at col.
func Uint32s[T any](col int, name string, field func(*T) []uint32) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		out := field(dst)
		for i := range out {
			v, err := row.Uint32(col + i)
			if err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	}}
}

// Float32s maps len(field(dst)) consecutive float columns starting at col.
func Float32s[T any](col int, name string, field func(*T) []float32) Column[T] {
	return Column[T]{Index: col, Name: name, extract: func(row Row, dst *T) error {
		out := field(dst)
		for i := range out {
			v, err := row.Float32(col + i)
			if err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	}}
}
