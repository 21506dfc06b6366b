package shapeguard

import (
	"encoding/json"
	"reflect"
)

// Kind enumerates the runtime kinds a required field may declare.
type Kind int

const (
	KindInvalid Kind = iota
	KindString       // textual values
	KindBool         // boolean values
	KindNumber       // numeric values, including json.Number
	KindFunc         // callable values; checked by declared arity, not behavior
)

// String renders the kind the way descriptor files spell it.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindFunc:
		return "func"
	default:
		return "invalid"
	}
}

// FieldSetPolicy controls how fields beyond the declared set are handled.
type FieldSetPolicy int

const (
	FieldSetOpen   FieldSetPolicy = iota // Extra fields are ignored.
	FieldSetClosed                       // Extra fields disqualify the value (exact-shape).
)

// CheckOpt bundles classification options. The zero value is the default
// behavior for every policy.
type CheckOpt struct {
	// FailFast stops at the first issue instead of collecting all of them.
	// The boolean Matches* wrappers always run fail-fast.
	FailFast bool
	// SkipCallProbe disables the thorough policy's probe call of zero-arg
	// callable fields. With probing off, thorough degrades to structural
	// checks plus discriminant equality.
	SkipCallProbe bool
	// IgnoreIdentity makes the exact-shape policy run its structural arm
	// even for values carrying the descriptor's construction identity.
	// By default a matching identity is authoritative and field checks
	// are skipped.
	IgnoreIdentity bool
}

// lastOpt picks the effective option set from a variadic tail.
func lastOpt(opts []CheckOpt) CheckOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return CheckOpt{}
}

// kindOf reports the shapeguard kind of a runtime value. ok is false for
// nil and for values outside the classifiable kinds.
func kindOf(v any) (Kind, bool) {
	switch v.(type) {
	case string:
		return KindString, true
	case bool:
		return KindBool, true
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber, true
	}
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
		return KindFunc, true
	}
	return KindInvalid, false
}
