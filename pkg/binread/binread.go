// Package binread provides bounds-checked little-endian reads over byte buffers.
//
// Every function validates the byte window it touches before slicing and
// reports a wrapped ErrOutOfRange instead of panicking. Strings are expected
// to be UTF-8; anything else is reported as ErrEncoding.
package binread

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// Decoding errors shared by every format package.
var (
	ErrTruncated  = errors.New("truncated data")
	ErrOutOfRange = errors.New("byte range out of bounds")
	ErrEncoding   = errors.New("invalid UTF-8 string")
)

// IndexedString is a null-terminated string together with the byte offset
// it starts at inside its block.
type IndexedString struct {
	Offset uint32 `json:"offset"`
	Value  string `json:"value"`
}

// window validates [off, off+n) against b.
func window(b []byte, off, n int) error {
	if off < 0 || n < 0 || off > len(b) || n > len(b)-off {
		return fmt.Errorf("%w: [%d..%d] but length is %d", ErrOutOfRange, off, off+n, len(b))
	}
	return nil
}

// Byte returns the byte at off.
func Byte(b []byte, off int) (uint8, error) {
	if err := window(b, off, 1); err != nil {
		return 0, err
	}
	return b[off], nil
}

// Bytes2 returns the two raw bytes at off.
func Bytes2(b []byte, off int) ([2]byte, error) {
	var out [2]byte
	if err := window(b, off, 2); err != nil {
		return out, err
	}
	copy(out[:], b[off:off+2])
	return out, nil
}

// Bytes4 returns the four raw bytes at off.
func Bytes4(b []byte, off int) ([4]byte, error) {
	var out [4]byte
	if err := window(b, off, 4); err != nil {
		return out, err
	}
	copy(out[:], b[off:off+4])
	return out, nil
}

// Uint16 reads a little-endian uint16 at off.
func Uint16(b []byte, off int) (uint16, error) {
	if err := window(b, off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[off:]), nil
}

// Uint32 reads a little-endian uint32 at off.
func Uint32(b []byte, off int) (uint32, error) {
	if err := window(b, off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[off:]), nil
}

// Int32 reads a little-endian int32 at off.
func Int32(b []byte, off int) (int32, error) {
	v, err := Uint32(b, off)
	return int32(v), err
}

// Float32 reads a little-endian IEEE-754 single at off.
func Float32(b []byte, off int) (float32, error) {
	v, err := Uint32(b, off)
	return math.Float32frombits(v), err
}

// String decodes n bytes at off as UTF-8.
func String(b []byte, off, n int) (string, error) {
	if err := window(b, off, n); err != nil {
		return "", err
	}
	raw := b[off : off+n]
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w at offset %d", ErrEncoding, off)
	}
	return string(raw), nil
}

// ReversedString decodes n bytes at off as UTF-8 and then reverses the
// character order. Chunk tags are stored this way on disk.
func ReversedString(b []byte, off, n int) (string, error) {
	s, err := String(b, off, n)
	if err != nil {
		return "", err
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

// CString reads the null-terminated string starting at off. The terminator
// must lie inside b.
func CString(b []byte, off int) (string, error) {
	if off < 0 || off >= len(b) {
		return "", fmt.Errorf("%w: string offset %d but length is %d", ErrOutOfRange, off, len(b))
	}
	end := bytes.IndexByte(b[off:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at offset %d (length %d)", ErrOutOfRange, off, len(b))
	}
	return String(b, off, end)
}

// CStrings splits b into the null-terminated strings packed back to back in
// it. Empty strings (padding) are kept so positions stay meaningful.
func CStrings(b []byte) ([]string, error) {
	var out []string
	start := 0
	for i, c := range b {
		if c != 0 {
			continue
		}
		s, err := String(b, start, i-start)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		start = i + 1
	}
	if start < len(b) {
		return nil, fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, start)
	}
	return out, nil
}

// IndexedCStrings is like CStrings but drops empty padding entries and
// records where each string starts, so offset references into the block can
// be resolved.
func IndexedCStrings(b []byte) ([]IndexedString, error) {
	var out []IndexedString
	start := 0
	for i, c := range b {
		if c != 0 {
			continue
		}
		if i > start {
			s, err := String(b, start, i-start)
			if err != nil {
				return nil, err
			}
			out = append(out, IndexedString{Offset: uint32(start), Value: s})
		}
		start = i + 1
	}
	if start < len(b) {
		return nil, fmt.Errorf("%w: unterminated string at offset %d", ErrTruncated, start)
	}
	return out, nil
}
