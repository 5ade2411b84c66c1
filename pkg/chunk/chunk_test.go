package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wowfmt/internal/testutil"
	"github.com/Faultbox/wowfmt/pkg/binread"
)

func sample() []byte {
	return testutil.Container(
		testutil.Chunk{Tag: "MVER", Data: testutil.LE(uint32(18))},
		testutil.Chunk{Tag: "MTEX", Data: []byte("a.blp\x00b.blp\x00")},
		testutil.Chunk{Tag: "MCNK", Data: []byte{1}},
		testutil.Chunk{Tag: "MCNK", Data: []byte{2, 2}},
		testutil.Chunk{Tag: "ZZZZ", Data: nil},
	)
}

func TestTagRoundTrip(t *testing.T) {
	raw := EncodeTag("MVER")
	assert.Equal(t, [4]byte{'R', 'E', 'V', 'M'}, raw)

	tag, err := DecodeTag(raw[:])
	require.NoError(t, err)
	assert.Equal(t, "MVER", tag)
}

func TestParse(t *testing.T) {
	data := sample()
	c, err := Parse(data)
	require.NoError(t, err)

	require.Equal(t, 5, c.Len())
	tags := make([]string, 0, c.Len())
	total := 0
	for _, ch := range c.Chunks() {
		tags = append(tags, ch.Tag)
		total += HeaderSize + int(ch.Len())
	}
	assert.Equal(t, []string{"MVER", "MTEX", "MCNK", "MCNK", "ZZZZ"}, tags)
	assert.Equal(t, len(data), total, "header-plus-payload accounting must cover the buffer")

	mver, err := c.Require("MVER")
	require.NoError(t, err)
	v, err := binread.Uint32(mver.Data, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(18), v)
	assert.Equal(t, 0, mver.Offset)

	mtex, ok := c.First("MTEX")
	require.True(t, ok)
	assert.Equal(t, 12, mtex.Offset)
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Tags())
}

func TestParse_PayloadsDoNotAlias(t *testing.T) {
	c, err := Parse(sample())
	require.NoError(t, err)

	mcnk := c.All("MCNK")
	require.Len(t, mcnk, 2)
	assert.Equal(t, []byte{1}, mcnk[0].Data)
	assert.Equal(t, []byte{2, 2}, mcnk[1].Data)

	// appending to one payload must not clobber the next chunk
	_ = append(mcnk[0].Data, 0xff)
	assert.Equal(t, []byte{2, 2}, c.All("MCNK")[1].Data)
}

func TestParse_Truncated(t *testing.T) {
	data := sample()

	tests := []struct {
		name string
		cut  int
	}{
		{"mid tag", 2},
		{"mid length", 6},
		{"mid payload", 10},
		{"second header", 14},
		{"last byte", len(data) - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(data[:tt.cut])
			require.Error(t, err)
			assert.ErrorIs(t, err, binread.ErrTruncated)
		})
	}
}

func TestParse_HugeLength(t *testing.T) {
	data := testutil.Cat([]byte("REVM"), testutil.LE(uint32(0xffffffff)), []byte{1, 2, 3})
	_, err := Parse(data)
	assert.ErrorIs(t, err, binread.ErrTruncated)
}

func TestRequire_Missing(t *testing.T) {
	c, err := Parse(sample())
	require.NoError(t, err)

	_, err = c.Require("MHDR")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingChunk)
	assert.Contains(t, err.Error(), "MHDR")
}

func TestAll_Absent(t *testing.T) {
	c, err := Parse(sample())
	require.NoError(t, err)
	assert.Empty(t, c.All("MDDF"))
}

func TestTags(t *testing.T) {
	c, err := Parse(sample())
	require.NoError(t, err)

	tags := c.Tags()
	assert.True(t, tags.HasAll("MVER", "MTEX", "MCNK", "ZZZZ"))
	assert.False(t, tags.HasAll("MVER", "MHDR"))
	assert.Equal(t, []string{"MCNK", "MTEX", "MVER", "ZZZZ"}, tags.Sorted())
}

func TestMerge(t *testing.T) {
	a, err := Parse(testutil.Container(testutil.Chunk{Tag: "MVER", Data: testutil.LE(uint32(17))}))
	require.NoError(t, err)
	b, err := Parse(testutil.Container(testutil.Chunk{Tag: "MOPY", Data: []byte{1, 2}}))
	require.NoError(t, err)

	m := a.Merge(b)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, a.Len())
	assert.True(t, m.Tags().HasAll("MVER", "MOPY"))
}

type decoded struct {
	Version uint32
	Sizes   []int
	Holes   Undecoded
	Extra   Undecoded
}

var testSchema = Schema[decoded]{
	{Tag: "MVER", Mode: Required, Decode: func(d *decoded, c Chunk) error {
		v, err := binread.Uint32(c.Data, 0)
		d.Version = v
		return err
	}},
	{Tag: "MCNK", Mode: Repeated, Decode: func(d *decoded, c Chunk) error {
		d.Sizes = append(d.Sizes, len(c.Data))
		return nil
	}},
	Opaque("MTEX", func(d *decoded) *Undecoded { return &d.Holes }),
	Opaque("MH2O", func(d *decoded) *Undecoded { return &d.Extra }),
}

func TestSchemaApply(t *testing.T) {
	c, err := Parse(sample())
	require.NoError(t, err)

	var d decoded
	require.NoError(t, testSchema.Apply(c, &d))

	assert.Equal(t, uint32(18), d.Version)
	assert.Equal(t, []int{1, 2}, d.Sizes)
	assert.Equal(t, Undecoded{Present: true, Size: 12}, d.Holes)
	assert.Equal(t, Undecoded{}, d.Extra)
}

func TestSchemaApply_MissingRequired(t *testing.T) {
	c, err := Parse(testutil.Container(testutil.Chunk{Tag: "MCNK", Data: []byte{1}}))
	require.NoError(t, err)

	var d decoded
	err = testSchema.Apply(c, &d)
	assert.ErrorIs(t, err, ErrMissingChunk)
}

func TestSchemaApply_DecodeErrorNamesTag(t *testing.T) {
	c, err := Parse(testutil.Container(testutil.Chunk{Tag: "MVER", Data: []byte{1}}))
	require.NoError(t, err)

	var d decoded
	err = testSchema.Apply(c, &d)
	require.Error(t, err)
	assert.ErrorIs(t, err, binread.ErrOutOfRange)
	assert.Contains(t, err.Error(), "MVER")
}
