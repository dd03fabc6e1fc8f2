package schema

import (
	"testing"

	"corrigo/internal/expr"
)

func TestLocationString(t *testing.T) {
	loc := Location{FileID: 1, BeginLine: 10, BeginColumn: 3, EndLine: 10, EndColumn: 20}
	if got, want := loc.String(), "1:10:3-10:20"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSchemaApplicationHoldsComponents(t *testing.T) {
	app := SchemaApplication{
		AppID:    1,
		Schema:   Expression,
		Location: Location{FileID: 1, BeginLine: 5, BeginColumn: 1, EndLine: 5, EndColumn: 10},
		Context:  Condition,
		Original: expr.NewOperator(expr.GT, expr.NewVariable("x", expr.Integer, "int"), expr.IntegerExpression(0)),
		Components: []expr.Expression{
			expr.NewVariable("y", expr.Integer, "int"),
		},
	}
	if app.Schema.String() != "expression" {
		t.Fatalf("unexpected schema string %q", app.Schema.String())
	}
	if len(app.Components) != 1 {
		t.Fatalf("expected one component")
	}
}

func TestModificationKindStrings(t *testing.T) {
	cases := map[ModificationKind]string{
		OperatorReplacement: "operator",
		Swaping:             "swaping",
		Simplification:      "simplification",
		Generalization:      "generalization",
		Concretization:      "concretization",
		Loosening:           "loosening",
		Tightening:          "tightening",
		Negation:            "negation",
		NullCheck:           "null_check",
		Substitution:        "substitution",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("kind %d: got %q want %q", kind, got, want)
		}
	}
}
