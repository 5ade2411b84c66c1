// Package output renders decoded assets for the command line.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// ErrUnknownFormat is returned for a format name Write does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// encMode is Core Deterministic Encoding (RFC 8949 §4.2), so the same
// asset always produces the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("output: CBOR encoder initialization failed: " + err.Error())
	}
}

// Options controls rendering.
type Options struct {
	Format  string
	Compact bool // single-line JSON; ignored by YAML and CBOR
}

// Formats returns the supported format names.
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatCBOR}
}

// Write renders v to w.
func Write(w io.Writer, v any, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if !opts.Compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		return encMode.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, opts.Format, strings.Join(Formats(), ", "))
	}
}

// Error is the document printed on stderr when a command fails.
type Error struct {
	Error string `json:"error"`
}

// WriteError renders err as a compact JSON error document.
func WriteError(w io.Writer, err error) error {
	return Write(w, Error{Error: err.Error()}, Options{Format: FormatJSON, Compact: true})
}
