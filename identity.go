package shapeguard

import (
	"reflect"
	"sync"

	"github.com/shapeguard/shapeguard/i18n"
)

// Identity is an unforgeable construction marker. Two identities are the
// same lineage only when they are the same *Identity; structurally identical
// values built elsewhere never compare equal. An identity may extend another,
// in which case values it constructs also satisfy checks against the base.
type Identity struct {
	name   string
	parent *Identity
}

// NewIdentity creates a root construction identity.
func NewIdentity(name string) *Identity { return &Identity{name: name} }

// Extend derives a child identity. Values constructed through the child
// satisfy nominal checks against both the child and every ancestor.
func (id *Identity) Extend(name string) *Identity {
	return &Identity{name: name, parent: id}
}

// Name returns the identity's display name.
func (id *Identity) Name() string {
	if id == nil {
		return ""
	}
	return id.name
}

// The brand table maps a composite value's reference identity to the
// identity that constructed it. Holding the map itself keeps the entry's
// key stable; branded values are therefore retained for the life of the
// process. Branding is meant for the fixed set of constructor-produced
// values a program defines at start, not for unbounded streams.
var (
	brandMu sync.RWMutex
	brands  = map[uintptr]brandEntry{}
)

type brandEntry struct {
	ref map[string]any // pins the branded map so its address is never reused
	id  *Identity
}

// New constructs a branded composite from the given fields. The fields map
// is copied; the returned map carries the brand, the input does not. The
// brand lives in a side table and never appears in the value's field set.
func (id *Identity) New(fields map[string]any) map[string]any {
	m := make(map[string]any, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	key := reflect.ValueOf(m).Pointer()
	brandMu.Lock()
	brands[key] = brandEntry{ref: m, id: id}
	brandMu.Unlock()
	return m
}

// IdentityOf reports the construction identity of a value. It returns
// (nil, false) for nil, primitives, and composites built outside any
// tracked constructor.
func IdentityOf(v any) (*Identity, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	key := reflect.ValueOf(m).Pointer()
	brandMu.RLock()
	e, ok := brands[key]
	brandMu.RUnlock()
	if !ok {
		return nil, false
	}
	return e.id, true
}

// CheckNominal reports whether v was constructed through id or any identity
// extending id. It never panics; unbranded, nil, and primitive values yield
// issues.
func CheckNominal(v any, id *Identity) error {
	if id == nil {
		return Issues{Issue{Path: "/", Code: CodeNoIdentity, Message: i18n.T(CodeNoIdentity, nil), Hint: "nil identity"}}
	}
	got, ok := IdentityOf(v)
	if !ok {
		return Issues{Issue{Path: "/", Code: CodeNoIdentity, Message: i18n.T(CodeNoIdentity, nil)}}
	}
	for cur := got; cur != nil; cur = cur.parent {
		if cur == id {
			return nil
		}
	}
	return Issues{Issue{Path: "/", Code: CodeIdentityMismatch, Message: i18n.T(CodeIdentityMismatch, nil), Hint: "constructed by '" + got.Name() + "'"}}
}

// Made is the boolean form of CheckNominal.
func (id *Identity) Made(v any) bool { return CheckNominal(v, id) == nil }
