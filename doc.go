// Package shapeguard classifies untyped runtime values against shape
// descriptors.
//
// It provides:
//
// - Shape descriptors as plain data (required fields, kinds, discriminant tag, closure)
// - Five classification policies with distinct cost/safety tradeoffs
//   (nominal, structural, tag-trusted, thorough, exact)
// - A stable diagnostics model via Issues (JSON Pointer, code, message)
// - Construction identities: unforgeable nominal markers carried outside the
//   value's visible field set
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the builder DSL under dsl/, YAML descriptor loading under shapefile/,
//   and the CLI under cmd/shapeguard.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	robot := dsl.Shape().
//		Field("name", shapeguard.KindString).
//		Method("action", 0, shapeguard.KindString).
//		Tag("kind", "robot").
//		MustBuild()
//
//	if shapeguard.Matches(ctx, v, robot) {
//		// v has the declared fields; callables were not invoked.
//	}
//	if shapeguard.MatchesThorough(ctx, v, robot) {
//		// v additionally survived a probe call of its zero-arg callables.
//	}
//
// Every Check function is a total predicate: nil, primitives, and malformed
// composites yield issues, never panics.
package shapeguard
