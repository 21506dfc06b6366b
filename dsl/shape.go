package dsl

import (
	shapeguard "github.com/shapeguard/shapeguard"
)

type shapeBuilder struct {
	name     string
	fields   map[string]shapeguard.FieldSpec
	tagField string
	tagValue string
	fieldSet shapeguard.FieldSetPolicy
	identity *shapeguard.Identity
}

// Shape creates a new descriptor builder with safe defaults (open field set,
// no tag, no identity).
func Shape() *shapeBuilder {
	return &shapeBuilder{fields: map[string]shapeguard.FieldSpec{}}
}

// Named sets the descriptor's display name.
func (b *shapeBuilder) Named(name string) *shapeBuilder {
	b.name = name
	return b
}

// Field declares a required field of a primitive kind.
func (b *shapeBuilder) Field(name string, k shapeguard.Kind) *shapeBuilder {
	b.fields[name] = shapeguard.FieldSpec{Kind: k}
	return b
}

// Method declares a required callable field with its declared arity and the
// kind a probe call is expected to return.
func (b *shapeBuilder) Method(name string, arity int, result shapeguard.Kind) *shapeBuilder {
	b.fields[name] = shapeguard.FieldSpec{Kind: shapeguard.KindFunc, Arity: arity, Result: result}
	return b
}

// Tag sets the discriminant field and the literal it must equal.
func (b *shapeBuilder) Tag(field, value string) *shapeBuilder {
	b.tagField = field
	b.tagValue = value
	return b
}

// Closed marks the field set as closed: no fields beyond the declared ones
// (plus the tag) are permitted by the exact-shape policy.
func (b *shapeBuilder) Closed() *shapeBuilder {
	b.fieldSet = shapeguard.FieldSetClosed
	return b
}

// Identity attaches a construction identity, enabling the exact-shape
// policy's nominal bypass.
func (b *shapeBuilder) Identity(id *shapeguard.Identity) *shapeBuilder {
	b.identity = id
	return b
}

// Build validates the builder and returns a Descriptor.
func (b *shapeBuilder) Build() (shapeguard.Descriptor, error) {
	return shapeguard.NewDescriptor(shapeguard.DescriptorSpec{
		Name:     b.name,
		Fields:   b.fields,
		TagField: b.tagField,
		TagValue: b.tagValue,
		FieldSet: b.fieldSet,
		Identity: b.identity,
	})
}

// MustBuild is like Build but panics on error.
func (b *shapeBuilder) MustBuild() shapeguard.Descriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
