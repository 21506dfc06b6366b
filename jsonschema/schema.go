// Package jsonschema holds a minimal JSON Schema representation used when
// exporting shape descriptors. Keep this struct small and extend it only as
// the projection needs.
package jsonschema

type Schema struct {
	// Core
	Type  string `json:"type,omitempty"`
	Const any    `json:"const,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}
