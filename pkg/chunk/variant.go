package chunk

import (
	"fmt"
	"slices"
	"strings"
)

// Variant is one structural form of a multi-variant format, identified by
// the tags that must all be present.
type Variant struct {
	Name    string
	Markers []string
}

// Resolver picks the variant a container encodes. Candidates are tested in
// the order they were given and the first full marker match wins.
type Resolver struct {
	variants []Variant
}

// NewResolver returns a resolver over a private copy of variants.
func NewResolver(variants ...Variant) *Resolver {
	return &Resolver{variants: cloneVariants(variants)}
}

func cloneVariants(vs []Variant) []Variant {
	out := make([]Variant, len(vs))
	for i, v := range vs {
		out[i] = Variant{Name: v.Name, Markers: slices.Clone(v.Markers)}
	}
	return out
}

// Variants returns the candidates in precedence order.
func (r *Resolver) Variants() []Variant {
	return cloneVariants(r.variants)
}

// Resolve returns the first variant whose markers are all in tags.
func (r *Resolver) Resolve(tags TagSet) (Variant, error) {
	for _, v := range r.variants {
		if tags.HasAll(v.Markers...) {
			return Variant{Name: v.Name, Markers: slices.Clone(v.Markers)}, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: tags present [%s]", ErrUnrecognizedVariant, strings.Join(tags.Sorted(), " "))
}
