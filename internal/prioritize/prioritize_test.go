package prioritize

import (
	"testing"

	"corrigo/internal/config"
	"corrigo/internal/patch"
	"corrigo/internal/schema"
)

func TestPrioritizeOrdersByBiasedDistance(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1}
	space := []patch.Patch{
		{ID: patch.ID{Base: 0}, App: app, Meta: patch.Metadata{Kind: schema.Negation, Distance: 1}},       // cost 1
		{ID: patch.ID{Base: 1}, App: app, Meta: patch.Metadata{Kind: schema.Swaping, Distance: 1}},         // cost 0.7
		{ID: patch.ID{Base: 2}, App: app, Meta: patch.Metadata{Kind: schema.OperatorReplacement, Distance: 1}}, // cost 0.8
	}
	Prioritize(space, config.Default(), nil)

	if space[0].ID.Base != 1 {
		t.Fatalf("expected Swaping patch first, got base=%d", space[0].ID.Base)
	}
	if space[1].ID.Base != 2 {
		t.Fatalf("expected OperatorReplacement patch second, got base=%d", space[1].ID.Base)
	}
	if space[2].ID.Base != 0 {
		t.Fatalf("expected Negation patch last, got base=%d", space[2].ID.Base)
	}
}

func TestPrioritizeStableWithinEqualCost(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1}
	space := []patch.Patch{
		{ID: patch.ID{Base: 0}, App: app, Meta: patch.Metadata{Kind: schema.Negation, Distance: 2}},
		{ID: patch.ID{Base: 1}, App: app, Meta: patch.Metadata{Kind: schema.Negation, Distance: 2}},
	}
	Prioritize(space, config.Default(), nil)
	if space[0].ID.Base != 0 || space[1].ID.Base != 1 {
		t.Fatalf("expected stable ordering preserved for equal-cost patches")
	}
}

func TestPrioritizeDispatchesToSemanticDiffWhenConfigured(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1}
	small := patch.Patch{ID: patch.ID{Base: 0}, App: app, Meta: patch.Metadata{Kind: schema.Negation, Distance: 5}}
	large := patch.Patch{ID: patch.ID{Base: 1}, App: app, Meta: patch.Metadata{Kind: schema.Negation, Distance: 5}}
	space := []patch.Patch{large, small}

	coverage := make(patch.Set)
	coverage.Record("t1", small.KeyOf(), patch.Coverage{"a.c": {1: {}}})
	coverage.Record("t1", large.KeyOf(), patch.Coverage{"a.c": {1: {}, 2: {}, 3: {}}})

	cfg := config.Default()
	cfg.PatchPrioritization = config.SemanticDiff
	Prioritize(space, cfg, coverage)

	if space[0].ID.Base != small.ID.Base {
		t.Fatalf("expected the smaller-footprint patch first under semantic_diff, got base=%d", space[0].ID.Base)
	}
}

func TestSemanticDiffFallsBackToSyntacticDiffWithoutCoverage(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1}
	p := patch.Patch{ID: patch.ID{Base: 0}, App: app, Meta: patch.Metadata{Kind: schema.Swaping, Distance: 3}}
	if got := SemanticDiff(p, nil); got != SyntacticDiff(p) {
		t.Fatalf("expected fallback to SyntacticDiff, got %v want %v", got, SyntacticDiff(p))
	}
}
