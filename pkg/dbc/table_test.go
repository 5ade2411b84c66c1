package dbc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wowfmt/internal/testutil"
	"github.com/Faultbox/wowfmt/pkg/binread"
)

func areaTable(t *testing.T) []byte {
	t.Helper()
	pool, offs := testutil.StringBlock("", "Elwynn", "Goldshire")
	return testutil.Table(3, [][]uint32{
		{12, offs[1], math.Float32bits(1.5)},
		{87, offs[2], 0},
	}, pool)
}

func TestParse(t *testing.T) {
	data := areaTable(t)
	tbl, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, Header{RecordCount: 2, FieldCount: 3, RecordSize: 12, StringBlockSize: 18}, tbl.Header)
	assert.Equal(t, 2, tbl.Len())

	h := tbl.Header
	assert.Equal(t, len(data), HeaderSize+int(h.RecordCount*h.RecordSize+h.StringBlockSize))
}

func TestRow_Accessors(t *testing.T) {
	tbl, err := Parse(areaTable(t))
	require.NoError(t, err)

	row, err := tbl.Row(0)
	require.NoError(t, err)

	id, err := row.Uint32(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), id)

	name, err := row.String(1)
	require.NoError(t, err)
	assert.Equal(t, "Elwynn", name)

	f, err := row.Float32(2)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	b, err := row.Bool(0)
	require.NoError(t, err)
	assert.True(t, b)

	row1, err := tbl.Row(1)
	require.NoError(t, err)
	b, err = row1.Bool(2)
	require.NoError(t, err)
	assert.False(t, b)
	i, err := row1.Int32(0)
	require.NoError(t, err)
	assert.Equal(t, int32(87), i)
}

func TestRow_ColumnOutOfRange(t *testing.T) {
	tbl, err := Parse(areaTable(t))
	require.NoError(t, err)
	row, err := tbl.Row(0)
	require.NoError(t, err)

	for _, col := range []int{3, 100, -1} {
		_, err := row.Uint32(col)
		assert.ErrorIs(t, err, binread.ErrOutOfRange, "column %d", col)
	}
	_, err = tbl.Row(2)
	assert.ErrorIs(t, err, binread.ErrOutOfRange)
}

func TestRow_StringOffsetPastBlock(t *testing.T) {
	pool, _ := testutil.StringBlock("", "abc")
	data := testutil.Table(1, [][]uint32{{uint32(len(pool)) + 4}}, pool)
	tbl, err := Parse(data)
	require.NoError(t, err)
	row, err := tbl.Row(0)
	require.NoError(t, err)

	_, err = row.String(0)
	assert.ErrorIs(t, err, binread.ErrOutOfRange)
}

func TestRow_StringEncoding(t *testing.T) {
	pool := []byte{0, 0xff, 0xfe, 0}
	tbl, err := Parse(testutil.Table(1, [][]uint32{{1}}, pool))
	require.NoError(t, err)
	row, err := tbl.Row(0)
	require.NoError(t, err)

	_, err = row.String(0)
	assert.ErrorIs(t, err, binread.ErrEncoding)
}

func TestParse_Errors(t *testing.T) {
	data := areaTable(t)

	badMagic := append([]byte("WDBX"), data[4:]...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, binread.ErrTruncated},
		{"short header", data[:12], binread.ErrTruncated},
		{"mid row", data[:HeaderSize+14], binread.ErrTruncated},
		{"mid string block", data[:len(data)-1], binread.ErrTruncated},
		{"bad magic", badMagic, ErrInvalidMagic},
		{"zero record size", testutil.Cat([]byte("WDBC"), testutil.LE(uint32(0xFFFFFFFF), uint32(1), uint32(0), uint32(0))), binread.ErrOutOfRange},
		{"zero fields zero size", testutil.Cat([]byte("WDBC"), testutil.LE(uint32(0xFFFFFFFF), uint32(0), uint32(0), uint32(0))), binread.ErrOutOfRange},
		{"record smaller than fields", testutil.Cat([]byte("WDBC"), testutil.LE(uint32(1), uint32(3), uint32(8), uint32(0)), testutil.Zeros(8)), binread.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_TrailingBytesIgnored(t *testing.T) {
	data := append(areaTable(t), 0xde, 0xad)
	tbl, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestParse_Empty(t *testing.T) {
	tbl, err := Parse(testutil.Table(4, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	for range tbl.Rows() {
		t.Fatal("no rows expected")
	}
}

func TestRows_Restartable(t *testing.T) {
	tbl, err := Parse(areaTable(t))
	require.NoError(t, err)

	collect := func() []uint32 {
		var ids []uint32
		for _, row := range tbl.Rows() {
			id, err := row.Uint32(0)
			require.NoError(t, err)
			ids = append(ids, id)
		}
		return ids
	}
	assert.Equal(t, []uint32{12, 87}, collect())
	assert.Equal(t, []uint32{12, 87}, collect())

	for i, row := range tbl.Rows() {
		assert.Equal(t, 0, i)
		assert.Equal(t, 0, row.Index())
		break
	}
}
