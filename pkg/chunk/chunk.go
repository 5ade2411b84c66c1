// Package chunk reads tagged, length-prefixed chunk containers.
//
// A container is a sequence of chunks, each laid out as a 4-byte tag stored
// in reverse character order, a little-endian uint32 payload length and the
// payload itself. Tags are exposed in canonical form ("MVER", not "REVM").
package chunk

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/wowfmt/pkg/binread"
)

// HeaderSize is the size of a chunk's tag and length fields.
const HeaderSize = 8

// Container errors.
var (
	ErrMissingChunk        = errors.New("missing required chunk")
	ErrUnrecognizedVariant = errors.New("unrecognized format variant")
)

// Chunk is one tagged section of a container.
type Chunk struct {
	Tag    string // canonical tag
	Offset int    // position of the chunk header within its buffer
	Data   []byte // payload, a view into the loaded buffer
}

// Len returns the payload length.
func (c Chunk) Len() uint32 {
	return uint32(len(c.Data))
}

// DecodeTag converts an on-disk tag to its canonical name.
func DecodeTag(raw []byte) (string, error) {
	return binread.ReversedString(raw, 0, 4)
}

// EncodeTag converts a canonical 4-character tag to its on-disk bytes.
func EncodeTag(tag string) [4]byte {
	var out [4]byte
	for i := 0; i < 4 && i < len(tag); i++ {
		out[3-i] = tag[i]
	}
	return out
}

// Container is an ordered, immutable list of chunks.
type Container struct {
	chunks []Chunk
}

// Parse splits data into chunks. The payloads alias data.
func Parse(data []byte) (*Container, error) {
	c := &Container{}
	off := 0
	for off < len(data) {
		if len(data)-off < HeaderSize {
			return nil, fmt.Errorf("%w: chunk header at offset %d needs %d bytes, have %d",
				binread.ErrTruncated, off, HeaderSize, len(data)-off)
		}
		tag, err := DecodeTag(data[off : off+4])
		if err != nil {
			return nil, fmt.Errorf("chunk tag at offset %d: %w", off, err)
		}
		size, err := binread.Uint32(data, off+4)
		if err != nil {
			return nil, err
		}
		start := off + HeaderSize
		if uint64(size) > uint64(len(data)-start) {
			return nil, fmt.Errorf("%w: chunk %s at offset %d declares %d bytes, have %d",
				binread.ErrTruncated, tag, off, size, len(data)-start)
		}
		end := start + int(size)
		c.chunks = append(c.chunks, Chunk{
			Tag:    tag,
			Offset: off,
			Data:   data[start:end:end],
		})
		off = end
	}
	return c, nil
}

// Len returns the number of chunks.
func (c *Container) Len() int {
	return len(c.chunks)
}

// Chunks returns the chunks in file order.
func (c *Container) Chunks() []Chunk {
	return c.chunks
}

// First returns the first chunk with the given tag.
func (c *Container) First(tag string) (Chunk, bool) {
	for _, ch := range c.chunks {
		if ch.Tag == tag {
			return ch, true
		}
	}
	return Chunk{}, false
}

// Require returns the first chunk with the given tag or ErrMissingChunk.
func (c *Container) Require(tag string) (Chunk, error) {
	ch, ok := c.First(tag)
	if !ok {
		return Chunk{}, fmt.Errorf("%w: %s", ErrMissingChunk, tag)
	}
	return ch, nil
}

// All returns every chunk with the given tag in file order.
func (c *Container) All(tag string) []Chunk {
	var out []Chunk
	for _, ch := range c.chunks {
		if ch.Tag == tag {
			out = append(out, ch)
		}
	}
	return out
}

// Tags returns the set of tags present.
func (c *Container) Tags() TagSet {
	set := make(TagSet, len(c.chunks))
	for _, ch := range c.chunks {
		set[ch.Tag] = struct{}{}
	}
	return set
}

// Merge returns a new container holding c's chunks followed by other's.
func (c *Container) Merge(other *Container) *Container {
	merged := make([]Chunk, 0, len(c.chunks)+len(other.chunks))
	merged = append(merged, c.chunks...)
	merged = append(merged, other.chunks...)
	return &Container{chunks: merged}
}

// TagSet is the set of tags present in a container.
type TagSet map[string]struct{}

// Has reports whether tag is present.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// HasAll reports whether every tag is present.
func (s TagSet) HasAll(tags ...string) bool {
	for _, t := range tags {
		if !s.Has(t) {
			return false
		}
	}
	return true
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
