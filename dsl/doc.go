// Package dsl provides the fluent builder for shape descriptors.
//
//	robot := dsl.Shape().Named("robot").
//		Field("name", shapeguard.KindString).
//		Method("action", 0, shapeguard.KindString).
//		Tag("kind", "robot").
//		Closed().
//		MustBuild()
//
// Builders are single-use construction helpers; the Descriptor they build
// is immutable and safe to share.
package dsl
