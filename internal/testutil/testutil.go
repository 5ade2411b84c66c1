// Package testutil builds synthetic chunk containers and record tables for
// tests. Nothing outside _test.go files should import it.
package testutil

import (
	"bytes"
	"encoding/binary"
)

// Chunk is one chunk to serialize: a canonical tag and its payload.
type Chunk struct {
	Tag  string
	Data []byte
}

// Container serializes chunks with reversed tags and LE lengths.
func Container(chunks ...Chunk) []byte {
	buf := new(bytes.Buffer)
	for _, c := range chunks {
		tag := []byte(c.Tag)
		for i, j := 0, len(tag)-1; i < j; i, j = i+1, j-1 {
			tag[i], tag[j] = tag[j], tag[i]
		}
		buf.Write(tag)
		binary.Write(buf, binary.LittleEndian, uint32(len(c.Data)))
		buf.Write(c.Data)
	}
	return buf.Bytes()
}

// LE serializes values little-endian back to back.
func LE(values ...any) []byte {
	buf := new(bytes.Buffer)
	for _, v := range values {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// Zeros returns n zero bytes.
func Zeros(n int) []byte {
	return make([]byte, n)
}

// Cat concatenates byte slices.
func Cat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// StringBlock packs names as null-terminated strings and returns the block
// together with each name's offset.
func StringBlock(names ...string) ([]byte, []uint32) {
	buf := new(bytes.Buffer)
	offsets := make([]uint32, len(names))
	for i, n := range names {
		offsets[i] = uint32(buf.Len())
		buf.WriteString(n)
		buf.WriteByte(0)
	}
	return buf.Bytes(), offsets
}

// Table serializes a WDBC record table. Each row is a list of uint32 words;
// every row must have fieldCount words.
func Table(fieldCount uint32, rows [][]uint32, pool []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("WDBC")
	binary.Write(buf, binary.LittleEndian, uint32(len(rows)))
	binary.Write(buf, binary.LittleEndian, fieldCount)
	binary.Write(buf, binary.LittleEndian, fieldCount*4)
	binary.Write(buf, binary.LittleEndian, uint32(len(pool)))
	for _, row := range rows {
		for _, w := range row {
			binary.Write(buf, binary.LittleEndian, w)
		}
	}
	buf.Write(pool)
	return buf.Bytes()
}
