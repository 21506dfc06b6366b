package shapeguard

import (
	"sort"

	"github.com/shapeguard/shapeguard/i18n"
	js "github.com/shapeguard/shapeguard/jsonschema"
)

// FieldSpec declares the expected runtime kind of one required field.
// Arity and Result apply to KindFunc only: Arity is the declared parameter
// count and Result the kind the callable is expected to return.
type FieldSpec struct {
	Kind   Kind
	Arity  int
	Result Kind
}

// DescriptorSpec is the plain-data input to NewDescriptor. The dsl package
// builds it fluently; shapefile builds it from YAML.
type DescriptorSpec struct {
	Name     string
	Fields   map[string]FieldSpec
	TagField string // discriminant field name; empty when the shape has no tag
	TagValue string // literal the discriminant must equal
	FieldSet FieldSetPolicy
	Identity *Identity // optional nominal channel for the exact-shape policy
}

// Descriptor is an immutable shape description. Descriptors are defined once
// and may be shared and classified against concurrently.
type Descriptor struct {
	name       string
	fields     map[string]FieldSpec
	sortedKeys []string
	tagField   string
	tagValue   string
	fieldSet   FieldSetPolicy
	identity   *Identity
}

// NewDescriptor validates the spec and returns an immutable Descriptor.
// The fields map is copied; mutating the spec afterwards has no effect.
func NewDescriptor(spec DescriptorSpec) (Descriptor, error) {
	var iss Issues
	fields := make(map[string]FieldSpec, len(spec.Fields))
	for name, fs := range spec.Fields {
		if name == "" {
			iss = AppendIssues(iss, Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "empty field name"})
			continue
		}
		switch fs.Kind {
		case KindString, KindBool, KindNumber:
			if fs.Arity != 0 || fs.Result != KindInvalid {
				iss = AppendIssues(iss, Issue{Path: "/" + name, Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "arity/result apply to func fields only"})
				continue
			}
		case KindFunc:
			if fs.Arity < 0 {
				iss = AppendIssues(iss, Issue{Path: "/" + name, Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "negative arity"})
				continue
			}
		default:
			iss = AppendIssues(iss, Issue{Path: "/" + name, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "unknown field kind"})
			continue
		}
		fields[name] = fs
	}
	if spec.TagField == "" && spec.TagValue != "" {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "tag value without tag field"})
	}
	if spec.TagField != "" {
		// The discriminant may also be declared as a field, but then it must
		// be textual; the tag comparison assumes a string literal.
		if fs, ok := fields[spec.TagField]; ok && fs.Kind != KindString {
			iss = AppendIssues(iss, Issue{Path: "/" + spec.TagField, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "discriminant field must be string-kinded"})
		}
	}
	if len(iss) > 0 {
		return Descriptor{}, iss
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Descriptor{
		name:       spec.Name,
		fields:     fields,
		sortedKeys: keys,
		tagField:   spec.TagField,
		tagValue:   spec.TagValue,
		fieldSet:   spec.FieldSet,
		identity:   spec.Identity,
	}, nil
}

// MustDescriptor is like NewDescriptor but panics on error.
func MustDescriptor(spec DescriptorSpec) Descriptor {
	d, err := NewDescriptor(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the descriptor's name ("" when unnamed).
func (d Descriptor) Name() string { return d.name }

// TagField returns the discriminant field name ("" when untagged).
func (d Descriptor) TagField() string { return d.tagField }

// TagValue returns the literal the discriminant must equal.
func (d Descriptor) TagValue() string { return d.tagValue }

// FieldSet reports whether the descriptor tolerates undeclared fields.
func (d Descriptor) FieldSet() FieldSetPolicy { return d.fieldSet }

// Identity returns the descriptor's construction identity, if any.
func (d Descriptor) Identity() *Identity { return d.identity }

// Field returns the spec for a declared field.
func (d Descriptor) Field(name string) (FieldSpec, bool) {
	fs, ok := d.fields[name]
	return fs, ok
}

// FieldNames returns the declared field names in ascending order.
func (d Descriptor) FieldNames() []string {
	out := make([]string, len(d.sortedKeys))
	copy(out, d.sortedKeys)
	return out
}

// JSONSchema projects the descriptor into a JSON Schema representation.
// Func fields have no JSON representation and are omitted from properties;
// they still appear in the required list so the projection stays honest
// about the field set.
func (d Descriptor) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(d.fields)+1)
	req := make([]string, 0, len(d.fields)+1)
	for _, k := range d.sortedKeys {
		fs := d.fields[k]
		req = append(req, k)
		switch fs.Kind {
		case KindString:
			props[k] = &js.Schema{Type: "string"}
		case KindBool:
			props[k] = &js.Schema{Type: "boolean"}
		case KindNumber:
			props[k] = &js.Schema{Type: "number"}
		case KindFunc:
			// omitted: callables do not serialize
		}
	}
	if d.tagField != "" {
		props[d.tagField] = &js.Schema{Type: "string", Const: d.tagValue}
		if _, declared := d.fields[d.tagField]; !declared {
			req = append(req, d.tagField)
			sort.Strings(req)
		}
	}
	var additional any
	switch d.fieldSet {
	case FieldSetClosed:
		additional = false
	default:
		additional = true
	}
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}
