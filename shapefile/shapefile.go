// Package shapefile loads shape descriptors from YAML documents. A shape
// descriptor is plain data, so shipping it as configuration keeps classifiers
// and the shapes they interpret independently deployable.
//
// Document format:
//
//	name: robot
//	tag: {field: kind, equals: robot}
//	closed: true
//	fields:
//	  name: {kind: string}
//	  action: {kind: func, arity: 0, result: string}
//
// Func fields loaded from YAML carry arity and result kind only; no Go func
// value exists until application code supplies one. Wire-decoded values can
// therefore never satisfy a func field structurally, which is the point: the
// tag-trusted policy is the one meant for wire data.
package shapefile

import (
	"bytes"
	"errors"
	"io"

	shapeguard "github.com/shapeguard/shapeguard"
	"github.com/shapeguard/shapeguard/i18n"
	"gopkg.in/yaml.v3"
)

type fileShape struct {
	Name   string               `yaml:"name"`
	Tag    *fileTag             `yaml:"tag"`
	Closed bool                 `yaml:"closed"`
	Fields map[string]fileField `yaml:"fields"`
}

type fileTag struct {
	Field  string `yaml:"field"`
	Equals string `yaml:"equals"`
}

type fileField struct {
	Kind   string `yaml:"kind"`
	Arity  int    `yaml:"arity"`
	Result string `yaml:"result"`
}

// Load parses a single YAML document into a Descriptor.
func Load(data []byte) (shapeguard.Descriptor, error) {
	var fs fileShape
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return shapeguard.Descriptor{}, parseIssue(err)
	}
	return build(fs)
}

// LoadAll parses a multi-document YAML stream into Descriptors, in order.
func LoadAll(data []byte) ([]shapeguard.Descriptor, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []shapeguard.Descriptor
	for {
		var fs fileShape
		if err := dec.Decode(&fs); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, parseIssue(err)
		}
		d, err := build(fs)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func build(fs fileShape) (shapeguard.Descriptor, error) {
	spec := shapeguard.DescriptorSpec{Name: fs.Name, Fields: map[string]shapeguard.FieldSpec{}}
	if fs.Closed {
		spec.FieldSet = shapeguard.FieldSetClosed
	}
	if fs.Tag != nil {
		spec.TagField = fs.Tag.Field
		spec.TagValue = fs.Tag.Equals
	}
	var iss shapeguard.Issues
	for name, ff := range fs.Fields {
		k, ok := parseKind(ff.Kind)
		if !ok {
			iss = shapeguard.AppendIssues(iss, shapeguard.Issue{
				Path: "/fields/" + name, Code: shapeguard.CodeInvalidType,
				Message: i18n.T(shapeguard.CodeInvalidType, nil),
				Hint:    "unknown kind '" + ff.Kind + "'",
			})
			continue
		}
		sf := shapeguard.FieldSpec{Kind: k}
		if k == shapeguard.KindFunc {
			sf.Arity = ff.Arity
			r, ok := parseKind(ff.Result)
			if ff.Result != "" && !ok {
				iss = shapeguard.AppendIssues(iss, shapeguard.Issue{
					Path: "/fields/" + name, Code: shapeguard.CodeInvalidType,
					Message: i18n.T(shapeguard.CodeInvalidType, nil),
					Hint:    "unknown result kind '" + ff.Result + "'",
				})
				continue
			}
			sf.Result = r
		}
		spec.Fields[name] = sf
	}
	if len(iss) > 0 {
		return shapeguard.Descriptor{}, iss
	}
	return shapeguard.NewDescriptor(spec)
}

func parseKind(s string) (shapeguard.Kind, bool) {
	switch s {
	case "string":
		return shapeguard.KindString, true
	case "bool":
		return shapeguard.KindBool, true
	case "number":
		return shapeguard.KindNumber, true
	case "func":
		return shapeguard.KindFunc, true
	default:
		return shapeguard.KindInvalid, false
	}
}

func parseIssue(err error) error {
	return shapeguard.Issues{shapeguard.Issue{
		Path: "/", Code: shapeguard.CodeParseError,
		Message: err.Error(), Cause: err,
	}}
}
