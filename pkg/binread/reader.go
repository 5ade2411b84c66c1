package binread

import (
	"encoding/binary"
	"fmt"
	"math"

	wmath "github.com/Faultbox/wowfmt/pkg/math"
)

// Reader reads fixed-layout records sequentially from a byte slice.
//
// The first failed read is remembered; later reads return zero values and
// Err reports the original failure, so a decoder can read a whole record
// and check once at the end.
type Reader struct {
	data []byte
	off  int
	err  error
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > len(r.data)-r.off {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, len(r.data)-r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// Skip advances past n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Byte reads one byte.
func (r *Reader) Byte() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Float32 reads a little-endian float32.
func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// Vec3 reads three consecutive float32 values.
func (r *Reader) Vec3() wmath.Vec3 {
	return wmath.Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}
}

// Bytes4 reads four raw bytes.
func (r *Reader) Bytes4() [4]byte {
	var out [4]byte
	copy(out[:], r.take(4))
	return out
}
