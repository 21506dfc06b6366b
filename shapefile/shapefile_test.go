package shapefile_test

import (
	"context"
	"testing"

	shapeguard "github.com/shapeguard/shapeguard"
	"github.com/shapeguard/shapeguard/shapefile"
)

const robotYAML = `
name: robot
tag: {field: kind, equals: robot}
closed: true
fields:
  name: {kind: string}
  action: {kind: func, arity: 0, result: string}
`

func TestLoad_Robot(t *testing.T) {
	d, err := shapefile.Load([]byte(robotYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Name() != "robot" || d.TagField() != "kind" || d.TagValue() != "robot" {
		t.Errorf("metadata wrong: %q %q=%q", d.Name(), d.TagField(), d.TagValue())
	}
	if d.FieldSet() != shapeguard.FieldSetClosed {
		t.Errorf("expected closed field set")
	}
	fs, ok := d.Field("action")
	if !ok || fs.Kind != shapeguard.KindFunc || fs.Arity != 0 || fs.Result != shapeguard.KindString {
		t.Errorf("action spec wrong: %#v", fs)
	}

	ctx := context.Background()
	v := map[string]any{
		"kind": "robot", "name": "C3PO",
		"action": func() string { return "informs" },
	}
	if !shapeguard.MatchesThorough(ctx, v, d) {
		t.Errorf("loaded descriptor must classify: %v", shapeguard.CheckThorough(ctx, v, d))
	}
}

func TestLoadAll_MultiDocument(t *testing.T) {
	docs := []byte(`
name: robot
tag: {field: kind, equals: robot}
fields:
  name: {kind: string}
---
name: human
tag: {field: kind, equals: human}
fields:
  name: {kind: string}
  age: {kind: number}
`)
	ds, err := shapefile.LoadAll(docs)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(ds) != 2 || ds[0].Name() != "robot" || ds[1].Name() != "human" {
		t.Fatalf("unexpected descriptors: %v", ds)
	}
}

func TestLoad_UnknownKind(t *testing.T) {
	_, err := shapefile.Load([]byte(`
name: bad
fields:
  blob: {kind: widget}
`))
	iss, ok := shapeguard.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != shapeguard.CodeInvalidType || iss[0].Path != "/fields/blob" {
		t.Fatalf("unexpected issue: %v", iss)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := shapefile.Load([]byte("fields: [not: a: map"))
	if iss, ok := shapeguard.AsIssues(err); !ok || iss[0].Code != shapeguard.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestLoad_WireValuesNeverSatisfyFuncFields(t *testing.T) {
	d, err := shapefile.Load([]byte(robotYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	v, err := shapeguard.DecodeValue(shapeguard.JSONBytes([]byte(`{"kind":"robot","name":"C3PO","action":"informs"}`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if shapeguard.Matches(ctx, v, d) {
		t.Errorf("a wire value cannot carry a callable and must fail structurally")
	}
	if !shapeguard.MatchesTag(ctx, v, d.TagField(), d.TagValue()) {
		t.Errorf("the tag policy is the one meant for wire data")
	}
}
