package shapeguard_test

import (
	"testing"

	shapeguard "github.com/shapeguard/shapeguard"
)

func TestNewDescriptor_Validation(t *testing.T) {
	// arity on a primitive field
	_, err := shapeguard.NewDescriptor(shapeguard.DescriptorSpec{
		Fields: map[string]shapeguard.FieldSpec{
			"name": {Kind: shapeguard.KindString, Arity: 1},
		},
	})
	if err == nil {
		t.Errorf("expected rejection of arity on a primitive field")
	}

	// negative arity
	_, err = shapeguard.NewDescriptor(shapeguard.DescriptorSpec{
		Fields: map[string]shapeguard.FieldSpec{
			"action": {Kind: shapeguard.KindFunc, Arity: -1},
		},
	})
	if err == nil {
		t.Errorf("expected rejection of negative arity")
	}

	// non-string discriminant field
	_, err = shapeguard.NewDescriptor(shapeguard.DescriptorSpec{
		Fields: map[string]shapeguard.FieldSpec{
			"kind": {Kind: shapeguard.KindNumber},
		},
		TagField: "kind",
		TagValue: "robot",
	})
	if err == nil {
		t.Errorf("expected rejection of non-string discriminant")
	}

	// tag value without tag field
	_, err = shapeguard.NewDescriptor(shapeguard.DescriptorSpec{TagValue: "robot"})
	if err == nil {
		t.Errorf("expected rejection of tag value without field")
	}
}

func TestDescriptor_Immutability(t *testing.T) {
	fields := map[string]shapeguard.FieldSpec{
		"name": {Kind: shapeguard.KindString},
	}
	d, err := shapeguard.NewDescriptor(shapeguard.DescriptorSpec{Name: "robot", Fields: fields})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// mutating the input spec must not reach the descriptor
	fields["sneaked"] = shapeguard.FieldSpec{Kind: shapeguard.KindBool}
	if _, ok := d.Field("sneaked"); ok {
		t.Fatalf("descriptor aliases the caller's field map")
	}

	names := d.FieldNames()
	names[0] = "mutated"
	if got := d.FieldNames()[0]; got != "name" {
		t.Fatalf("FieldNames returned an aliased slice, got %q", got)
	}
}

func TestDescriptor_JSONSchema(t *testing.T) {
	d, err := shapeguard.NewDescriptor(shapeguard.DescriptorSpec{
		Name: "robot",
		Fields: map[string]shapeguard.FieldSpec{
			"name":   {Kind: shapeguard.KindString},
			"mass":   {Kind: shapeguard.KindNumber},
			"active": {Kind: shapeguard.KindBool},
			"action": {Kind: shapeguard.KindFunc, Result: shapeguard.KindString},
		},
		TagField: "kind",
		TagValue: "robot",
		FieldSet: shapeguard.FieldSetClosed,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	js, err := d.JSONSchema()
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if js.Type != "object" {
		t.Errorf("type = %q", js.Type)
	}
	if js.AdditionalProperties != false {
		t.Errorf("closed descriptor must project additionalProperties=false")
	}
	if p := js.Properties["kind"]; p == nil || p.Const != "robot" {
		t.Errorf("discriminant projection wrong: %#v", p)
	}
	if _, ok := js.Properties["action"]; ok {
		t.Errorf("func fields have no JSON projection")
	}
	// func fields still count toward required
	found := false
	for _, r := range js.Required {
		if r == "action" {
			found = true
		}
	}
	if !found {
		t.Errorf("required missing action: %v", js.Required)
	}
}
