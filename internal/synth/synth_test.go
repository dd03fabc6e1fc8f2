package synth

import (
	"testing"

	"corrigo/internal/expr"
	"corrigo/internal/schema"
)

func TestGeneratePatchIDsUniqueWithinApplication(t *testing.T) {
	x := expr.NewVariable("x", expr.Integer, "int")
	original := expr.NewOperator(expr.GT, x, expr.IntegerExpression(0))
	app := &schema.SchemaApplication{
		AppID:      1,
		Schema:     schema.Expression,
		Context:    schema.Condition,
		Original:   original,
		Components: []expr.Expression{expr.NewVariable("y", expr.Integer, "int")},
	}

	space, err := Generate([]*schema.SchemaApplication{app})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(space) == 0 {
		t.Fatalf("expected a non-empty search space")
	}

	seen := make(map[patchIDKey]bool)
	for _, p := range space {
		key := patchIDKey{p.ID.Base, p.ID.Int2, p.ID.Bool2, p.ID.Cond3, p.ID.Param}
		if seen[key] {
			t.Fatalf("duplicate PatchID %+v within application", p.ID)
		}
		seen[key] = true
		if p.App.AppID != 1 {
			t.Fatalf("patch lost its owning application")
		}
	}
}

type patchIDKey struct {
	base, int2, bool2, cond3, param uint
}

func TestOperatorReplacementPreservesArity(t *testing.T) {
	x := expr.NewVariable("x", expr.Integer, "int")
	original := expr.NewOperator(expr.GT, x, expr.IntegerExpression(0))
	for _, c := range operatorReplacements(original) {
		if !c.modified.Valid() {
			t.Fatalf("operator replacement produced invalid expression: %+v", c.modified)
		}
		if len(c.modified.Args) != len(original.Args) {
			t.Fatalf("operator replacement changed arity")
		}
	}
}

func TestConditionContextUnlocksNullCheck(t *testing.T) {
	x := expr.NewVariable("x", expr.Integer, "int")
	original := expr.NewOperator(expr.GT, x, expr.IntegerExpression(0))
	p := expr.NewVariable("p", expr.Pointer, "int *")
	app := &schema.SchemaApplication{
		AppID:      2,
		Schema:     schema.Expression,
		Context:    schema.Condition,
		Original:   original,
		Components: []expr.Expression{p},
	}
	var sawNullCheck bool
	for _, c := range enumerate(app) {
		if c.kind == schema.NullCheck {
			sawNullCheck = true
		}
	}
	if !sawNullCheck {
		t.Fatalf("expected a NullCheck candidate in condition context with a pointer component")
	}
}

func TestArrayInitProducesExactlyOnePatch(t *testing.T) {
	app := &schema.SchemaApplication{
		AppID:    3,
		Schema:   schema.ArrayInit,
		Original: expr.IntegerExpression(0),
	}
	space, err := Generate([]*schema.SchemaApplication{app})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(space) != 1 {
		t.Fatalf("expected exactly one patch for ArrayInit, got %d", len(space))
	}
}
