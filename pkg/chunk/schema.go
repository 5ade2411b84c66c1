package chunk

import "fmt"

// Mode says how a schema treats its tag.
type Mode int

const (
	Required Mode = iota // first chunk decoded, absence is ErrMissingChunk
	Optional             // first chunk decoded if present
	Repeated             // every chunk decoded in order
)

// Binding ties one chunk tag to the function that decodes it into T.
type Binding[T any] struct {
	Tag    string
	Mode   Mode
	Decode func(dst *T, c Chunk) error
}

// Schema is the ordered tag-to-decoder plan for one asset type. Tags that
// no binding names are left alone.
type Schema[T any] []Binding[T]

// Apply runs every binding against c, filling dst.
func (s Schema[T]) Apply(c *Container, dst *T) error {
	for _, b := range s {
		switch b.Mode {
		case Required:
			ch, err := c.Require(b.Tag)
			if err != nil {
				return err
			}
			if err := b.Decode(dst, ch); err != nil {
				return fmt.Errorf("decoding %s: %w", b.Tag, err)
			}
		case Optional:
			ch, ok := c.First(b.Tag)
			if !ok {
				continue
			}
			if err := b.Decode(dst, ch); err != nil {
				return fmt.Errorf("decoding %s: %w", b.Tag, err)
			}
		case Repeated:
			for i, ch := range c.All(b.Tag) {
				if err := b.Decode(dst, ch); err != nil {
					return fmt.Errorf("decoding %s #%d: %w", b.Tag, i, err)
				}
			}
		default:
			return fmt.Errorf("chunk %s: unknown binding mode %d", b.Tag, b.Mode)
		}
	}
	return nil
}

// Undecoded marks a chunk the format knows about but does not decode.
// Present and Size keep the file's layout visible for debugging.
type Undecoded struct {
	Present bool   `json:"present"`
	Size    uint32 `json:"size,omitempty"`
}

// Opaque returns an optional binding that records presence and size of tag
// in the field selected by field.
func Opaque[T any](tag string, field func(*T) *Undecoded) Binding[T] {
	return Binding[T]{
		Tag:  tag,
		Mode: Optional,
		Decode: func(dst *T, c Chunk) error {
			*field(dst) = Undecoded{Present: true, Size: c.Len()}
			return nil
		},
	}
}
