// Package dbc decodes WDBC client database tables.
//
// A table is a 20-byte header, RecordCount fixed-size rows of RecordSize
// bytes, and a string block that string columns point into by offset.
// Columns are 4-byte words addressed by zero-based index.
package dbc

import (
	"errors"
	"fmt"
	"iter"

	"github.com/Faultbox/wowfmt/pkg/binread"
)

// HeaderSize is the size of the WDBC header.
const HeaderSize = 20

const magic = "WDBC"

// ErrInvalidMagic is returned when the buffer does not start with "WDBC".
var ErrInvalidMagic = errors.New("invalid DBC magic: expected 'WDBC'")

// Header is the fixed table header.
type Header struct {
	RecordCount     uint32 `json:"record_count"`
	FieldCount      uint32 `json:"field_count"`
	RecordSize      uint32 `json:"record_size"`
	StringBlockSize uint32 `json:"string_block_size"`
}

// Table is a parsed record table. It owns the backing buffer; rows and
// string lookups are views into it.
type Table struct {
	Header Header
	rows   []byte
	pool   []byte
}

// Parse parses a table from raw bytes. Bytes after the declared string
// block are ignored.
func Parse(data []byte) (*Table, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: DBC header needs %d bytes, have %d", binread.ErrTruncated, HeaderSize, len(data))
	}
	if string(data[0:4]) != magic {
		return nil, ErrInvalidMagic
	}

	r := binread.NewReader(data[4:HeaderSize])
	h := Header{
		RecordCount:     r.Uint32(),
		FieldCount:      r.Uint32(),
		RecordSize:      r.Uint32(),
		StringBlockSize: r.Uint32(),
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	if uint64(h.RecordSize) < uint64(h.FieldCount)*4 {
		return nil, fmt.Errorf("%w: record size %d cannot hold %d fields", binread.ErrOutOfRange, h.RecordSize, h.FieldCount)
	}
	if h.RecordSize == 0 && h.RecordCount > 0 {
		return nil, fmt.Errorf("%w: %d records of size 0", binread.ErrOutOfRange, h.RecordCount)
	}

	rowBytes := uint64(h.RecordCount) * uint64(h.RecordSize)
	need := uint64(HeaderSize) + rowBytes + uint64(h.StringBlockSize)
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("%w: DBC declares %d records of %d bytes and %d string bytes (%d total), have %d",
			binread.ErrTruncated, h.RecordCount, h.RecordSize, h.StringBlockSize, need, len(data))
	}

	poolStart := HeaderSize + int(rowBytes)
	poolEnd := poolStart + int(h.StringBlockSize)
	return &Table{
		Header: h,
		rows:   data[HeaderSize:poolStart:poolStart],
		pool:   data[poolStart:poolEnd:poolEnd],
	}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return int(t.Header.RecordCount)
}

// Row returns the i-th row view.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.Len() {
		return Row{}, fmt.Errorf("%w: row %d of %d", binread.ErrOutOfRange, i, t.Len())
	}
	size := int(t.Header.RecordSize)
	start := i * size
	return Row{table: t, index: i, data: t.rows[start : start+size : start+size]}, nil
}

// Rows iterates over all rows in order. The sequence can be ranged over
// any number of times.
func (t *Table) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		size := int(t.Header.RecordSize)
		for i := 0; i < t.Len(); i++ {
			start := i * size
			row := Row{table: t, index: i, data: t.rows[start : start+size : start+size]}
			if !yield(i, row) {
				return
			}
		}
	}
}

// StringAt reads the null-terminated string at off in the string block.
func (t *Table) StringAt(off uint32) (string, error) {
	return binread.CString(t.pool, int(off))
}

// Row is a view of one record. It is only valid while its Table is.
type Row struct {
	table *Table
	index int
	data  []byte
}

// Index returns the row's position in the table.
func (r Row) Index() int {
	return r.index
}

func (r Row) word(col int) (uint32, error) {
	if col < 0 || (col+1)*4 > len(r.data) {
		return 0, fmt.Errorf("%w: column %d (bytes [%d..%d]) but record size is %d",
			binread.ErrOutOfRange, col, col*4, col*4+4, len(r.data))
	}
	return binread.Uint32(r.data, col*4)
}

// Uint32 reads column col as an unsigned integer.
func (r Row) Uint32(col int) (uint32, error) {
	return r.word(col)
}

// Int32 reads column col as a signed integer.
func (r Row) Int32(col int) (int32, error) {
	v, err := r.word(col)
	return int32(v), err
}

// Float32 reinterprets column col as an IEEE-754 single.
func (r Row) Float32(col int) (float32, error) {
	if _, err := r.word(col); err != nil {
		return 0, err
	}
	return binread.Float32(r.data, col*4)
}

// Bool reads column col as a uint32 flag; nonzero is true.
func (r Row) Bool(col int) (bool, error) {
	v, err := r.word(col)
	return v != 0, err
}

// String reads column col as an offset into the string block and returns
// the string found there.
func (r Row) String(col int) (string, error) {
	off, err := r.word(col)
	if err != nil {
		return "", err
	}
	s, err := r.table.StringAt(off)
	if err != nil {
		return "", fmt.Errorf("column %d: %w", col, err)
	}
	return s, nil
}
