package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Name    string    `json:"name" yaml:"name" cbor:"name"`
	Version uint32    `json:"version" yaml:"version" cbor:"version"`
	Heights []float32 `json:"heights" yaml:"heights" cbor:"heights"`
}

var value = sample{Name: "Stormwind <Keep>", Version: 17, Heights: []float32{1.5, -2}}

func TestWriteJSON(t *testing.T) {
	var pretty, compact bytes.Buffer
	require.NoError(t, Write(&pretty, value, Options{Format: "json"}))
	require.NoError(t, Write(&compact, value, Options{Format: "JSON", Compact: true}))

	assert.Contains(t, pretty.String(), "\n  \"name\": \"Stormwind <Keep>\"")
	assert.Equal(t, `{"name":"Stormwind <Keep>","version":17,"heights":[1.5,-2]}`+"\n", compact.String())
}

func TestWriteDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]int{"a": 1}, Options{Compact: true}))
	assert.Equal(t, "{\"a\":1}\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, value, Options{Format: FormatYAML}))

	var got sample
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, value, got)
}

func TestWriteCBORDeterministic(t *testing.T) {
	m := map[string]uint32{"zeta": 1, "alpha": 2, "mid": 3}

	var a, b bytes.Buffer
	require.NoError(t, Write(&a, m, Options{Format: FormatCBOR}))
	require.NoError(t, Write(&b, m, Options{Format: FormatCBOR}))
	assert.Equal(t, a.Bytes(), b.Bytes())

	var got map[string]uint32
	require.NoError(t, cbor.Unmarshal(a.Bytes(), &got))
	assert.Equal(t, m, got)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, value, Options{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "json, yaml, cbor")
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, errors.New(`missing chunk "MOHD"`)))
	assert.Equal(t, `{"error":"missing chunk \"MOHD\""}`, strings.TrimSpace(buf.String()))
}
