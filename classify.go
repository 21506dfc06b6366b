package shapeguard

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/shapeguard/shapeguard/i18n"
)

// asComposite narrows v to a record-like value. Composite-kind assertions
// accept typed nil maps, so nil is rejected explicitly.
func asComposite(v any) (map[string]any, Issues) {
	if v == nil {
		return nil, Issues{Issue{Path: "/", Code: CodeNullValue, Message: i18n.T(CodeNullValue, nil)}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{Issue{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
	}
	if m == nil {
		return nil, Issues{Issue{Path: "/", Code: CodeNullValue, Message: i18n.T(CodeNullValue, nil)}}
	}
	return m, nil
}

// checkFields verifies every declared field's presence, kind, and (for
// callables) declared arity. Callables are not invoked here.
func checkFields(m map[string]any, d Descriptor, opt CheckOpt) Issues {
	var iss Issues
	for _, name := range d.sortedKeys {
		fs := d.fields[name]
		val, exists := m[name]
		if !exists {
			iss = AppendIssues(iss, Issue{Path: "/" + name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil)})
			if opt.FailFast {
				return iss
			}
			continue
		}
		got, ok := kindOf(val)
		if !ok || got != fs.Kind {
			iss = AppendIssues(iss, Issue{
				Path: "/" + name, Code: CodeWrongKind, Message: i18n.T(CodeWrongKind, nil),
				Hint:   "expected " + fs.Kind.String(),
				Params: map[string]any{"expected": fs.Kind.String(), "got": got.String()},
			})
			if opt.FailFast {
				return iss
			}
			continue
		}
		if fs.Kind == KindFunc {
			if n := reflect.TypeOf(val).NumIn(); n != fs.Arity {
				iss = AppendIssues(iss, Issue{
					Path: "/" + name, Code: CodeWrongArity, Message: i18n.T(CodeWrongArity, nil),
					Params: map[string]any{"expected": fs.Arity, "got": n},
				})
				if opt.FailFast {
					return iss
				}
			}
		}
	}
	return iss
}

// checkTag performs the single discriminant comparison.
func checkTag(m map[string]any, field, want string) Issues {
	dv, exists := m[field]
	if !exists {
		return Issues{Issue{Path: "/" + field, Code: CodeDiscriminantMissing, Message: i18n.T(CodeDiscriminantMissing, nil)}}
	}
	s, ok := dv.(string)
	if !ok || s != want {
		return Issues{Issue{Path: "/" + field, Code: CodeDiscriminantMismatch, Message: i18n.T(CodeDiscriminantMismatch, nil), Hint: "expected '" + want + "'"}}
	}
	return nil
}

// CheckStructural is the permissive policy: composite kind, non-null, and
// every declared field present with matching kind and declared arity. It
// ignores any discriminant on the descriptor and never invokes a callable,
// so a callable that panics or returns the wrong kind at call time passes.
func CheckStructural(ctx context.Context, v any, d Descriptor, opts ...CheckOpt) error {
	m, iss := asComposite(v)
	if len(iss) > 0 {
		return iss
	}
	if iss := checkFields(m, d, lastOpt(opts)); len(iss) > 0 {
		return iss
	}
	return nil
}

// Matches is the boolean form of CheckStructural.
func Matches(ctx context.Context, v any, d Descriptor) bool {
	return CheckStructural(ctx, v, d, CheckOpt{FailFast: true}) == nil
}

// CheckTag is the tag-trusted policy: non-null, composite, and the
// discriminant field equals the literal. It inspects nothing else; a value
// carrying a matching tag over a malformed payload passes, and callers
// invoking payload fields afterwards must tolerate runtime failure.
func CheckTag(ctx context.Context, v any, field, want string) error {
	m, iss := asComposite(v)
	if len(iss) > 0 {
		return iss
	}
	if iss := checkTag(m, field, want); len(iss) > 0 {
		return iss
	}
	return nil
}

// MatchesTag is the boolean form of CheckTag.
func MatchesTag(ctx context.Context, v any, field, want string) bool {
	return CheckTag(ctx, v, field, want) == nil
}

// probeCall invokes a zero-argument callable once and verifies the kind of
// its first result. A panic raised by the callable is treated as
// non-conformance, never propagated. The callable is assumed side-effect
// free; that is the caller's obligation, not something the classifier can
// enforce.
func probeCall(name string, fn any, want Kind) (iss Issues) {
	defer func() {
		if r := recover(); r != nil {
			iss = Issues{Issue{
				Path: "/" + name, Code: CodeCallFailed, Message: i18n.T(CodeCallFailed, nil),
				Hint: fmt.Sprint(r),
			}}
		}
	}()
	rv := reflect.ValueOf(fn)
	if rv.Type().NumOut() == 0 {
		return Issues{Issue{Path: "/" + name, Code: CodeWrongResult, Message: i18n.T(CodeWrongResult, nil), Hint: "callable returns nothing"}}
	}
	out := rv.Call(nil)
	got, ok := kindOf(out[0].Interface())
	if !ok || got != want {
		return Issues{Issue{
			Path: "/" + name, Code: CodeWrongResult, Message: i18n.T(CodeWrongResult, nil),
			Hint:   "expected " + want.String(),
			Params: map[string]any{"expected": want.String(), "got": got.String()},
		}}
	}
	return nil
}

// CheckThorough is the tag-and-shape policy: all structural checks, the
// discriminant equality, and a probe call of each zero-argument callable
// field verifying its returned kind. It rejects any value whose callable
// would fail when application code later invokes it. SkipCallProbe reduces
// it to structural checks plus the tag.
func CheckThorough(ctx context.Context, v any, d Descriptor, opts ...CheckOpt) error {
	opt := lastOpt(opts)
	m, iss := asComposite(v)
	if len(iss) > 0 {
		return iss
	}
	if d.tagField != "" {
		iss = AppendIssues(iss, checkTag(m, d.tagField, d.tagValue)...)
		if opt.FailFast && len(iss) > 0 {
			return iss
		}
	}
	iss = AppendIssues(iss, checkFields(m, d, opt)...)
	if len(iss) > 0 {
		return iss
	}
	if opt.SkipCallProbe {
		return nil
	}
	for _, name := range d.sortedKeys {
		fs := d.fields[name]
		if fs.Kind != KindFunc || fs.Arity != 0 {
			continue
		}
		iss = AppendIssues(iss, probeCall(name, m[name], fs.Result)...)
		if opt.FailFast && len(iss) > 0 {
			return iss
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// MatchesThorough is the boolean form of CheckThorough.
func MatchesThorough(ctx context.Context, v any, d Descriptor, opts ...CheckOpt) bool {
	opt := lastOpt(opts)
	opt.FailFast = true
	return CheckThorough(ctx, v, d, opt) == nil
}

// CheckExact is the closed-shape policy. A value qualifies through the
// descriptor's construction identity when one is attached (skipping field
// inspection entirely), or by matching the discriminant, every declared
// field, and carrying no field beyond the declared set. The identity bypass
// can be disabled with IgnoreIdentity; see DESIGN.md for the tradeoff.
func CheckExact(ctx context.Context, v any, d Descriptor, opts ...CheckOpt) error {
	opt := lastOpt(opts)
	if d.identity != nil && !opt.IgnoreIdentity {
		if CheckNominal(v, d.identity) == nil {
			return nil
		}
	}
	m, iss := asComposite(v)
	if len(iss) > 0 {
		return iss
	}
	if d.tagField != "" {
		iss = AppendIssues(iss, checkTag(m, d.tagField, d.tagValue)...)
		if opt.FailFast && len(iss) > 0 {
			return iss
		}
	}
	iss = AppendIssues(iss, checkFields(m, d, opt)...)
	if opt.FailFast && len(iss) > 0 {
		return iss
	}
	// closed set: the value's keys must not exceed declared fields plus the
	// discriminant. Missing keys were already reported as required.
	extras := make([]string, 0)
	for k := range m {
		if _, declared := d.fields[k]; declared {
			continue
		}
		if d.tagField != "" && k == d.tagField {
			continue
		}
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
		if opt.FailFast {
			return iss
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// MatchesExact is the boolean form of CheckExact.
func MatchesExact(ctx context.Context, v any, d Descriptor, opts ...CheckOpt) bool {
	opt := lastOpt(opts)
	opt.FailFast = true
	return CheckExact(ctx, v, d, opt) == nil
}
