package shapeguard_test

import (
	"context"
	"testing"

	shapeguard "github.com/shapeguard/shapeguard"
	"github.com/shapeguard/shapeguard/dsl"
)

func TestIdentity_BrandedVersusLiteralTwin(t *testing.T) {
	ctx := context.Background()
	factory := shapeguard.NewIdentity("robot-factory")

	fields := map[string]any{
		"kind": "robot", "name": "R2D2",
		"action": func() string { return "beeps" },
	}
	built := factory.New(fields)
	literal := map[string]any{
		"kind": "robot", "name": "R2D2",
		"action": fields["action"],
	}

	if !factory.Made(built) {
		t.Fatalf("constructor-built value must carry the brand")
	}
	if factory.Made(literal) {
		t.Fatalf("structural twin built as a literal must not carry the brand")
	}

	// both twins are structurally identical under the permissive policies
	robot := dsl.Shape().
		Field("name", shapeguard.KindString).
		Method("action", 0, shapeguard.KindString).
		Tag("kind", "robot").
		MustBuild()
	if !shapeguard.Matches(ctx, built, robot) || !shapeguard.Matches(ctx, literal, robot) {
		t.Fatalf("both twins must pass the structural check")
	}
	if !shapeguard.MatchesTag(ctx, built, "kind", "robot") || !shapeguard.MatchesTag(ctx, literal, "kind", "robot") {
		t.Fatalf("both twins must pass the tag check")
	}
}

func TestIdentity_BrandInvisibleToFieldSet(t *testing.T) {
	factory := shapeguard.NewIdentity("factory")
	built := factory.New(map[string]any{"kind": "robot", "name": "R2D2"})
	if len(built) != 2 {
		t.Fatalf("brand leaked into the field set: %v", built)
	}
}

func TestIdentity_Lineage(t *testing.T) {
	base := shapeguard.NewIdentity("droid")
	derived := base.Extend("astromech")
	other := shapeguard.NewIdentity("droid") // same name, different lineage

	v := derived.New(map[string]any{"name": "R2D2"})
	if !derived.Made(v) {
		t.Errorf("derived identity must accept its own value")
	}
	if !base.Made(v) {
		t.Errorf("base identity must accept a value built by an extension")
	}
	if other.Made(v) {
		t.Errorf("a same-named but unrelated identity must not accept the value")
	}

	// lineage widening is one-directional
	basev := base.New(map[string]any{"name": "GNK"})
	if derived.Made(basev) {
		t.Errorf("derived identity must not accept a base-built value")
	}
}

func TestIdentity_CopySheddingBrand(t *testing.T) {
	factory := shapeguard.NewIdentity("factory")
	built := factory.New(map[string]any{"name": "R2D2"})

	// copying fields into a fresh map does not forge the brand
	copied := make(map[string]any, len(built))
	for k, v := range built {
		copied[k] = v
	}
	if factory.Made(copied) {
		t.Fatalf("field-for-field copy must not carry the brand")
	}
}

func TestIdentity_ExactShapeBypass(t *testing.T) {
	ctx := context.Background()
	factory := shapeguard.NewIdentity("robot-factory")
	robot := dsl.Shape().
		Field("name", shapeguard.KindString).
		Tag("kind", "robot").
		Closed().
		Identity(factory).
		MustBuild()

	// branded but payload-incomplete: nominal channel is authoritative by default
	incomplete := factory.New(map[string]any{"kind": "robot"})
	if !shapeguard.MatchesExact(ctx, incomplete, robot) {
		t.Errorf("branded value must bypass field checks by default")
	}
	if shapeguard.MatchesExact(ctx, incomplete, robot, shapeguard.CheckOpt{IgnoreIdentity: true}) {
		t.Errorf("IgnoreIdentity must force the structural arm")
	}

	// an unbranded exact match still passes through the structural arm
	plain := map[string]any{"kind": "robot", "name": "K2SO"}
	if !shapeguard.MatchesExact(ctx, plain, robot) {
		t.Errorf("unbranded exact match must pass")
	}
}

func TestIdentity_CheckNominalIssues(t *testing.T) {
	factory := shapeguard.NewIdentity("factory")

	err := shapeguard.CheckNominal(map[string]any{}, factory)
	if iss, ok := shapeguard.AsIssues(err); !ok || iss[0].Code != shapeguard.CodeNoIdentity {
		t.Errorf("expected no_identity, got %v", err)
	}

	other := shapeguard.NewIdentity("other")
	v := other.New(map[string]any{})
	err = shapeguard.CheckNominal(v, factory)
	if iss, ok := shapeguard.AsIssues(err); !ok || iss[0].Code != shapeguard.CodeIdentityMismatch {
		t.Errorf("expected identity_mismatch, got %v", err)
	}
}
