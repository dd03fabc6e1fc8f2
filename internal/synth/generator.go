package synth

import (
	"corrigo/internal/expr"
	"corrigo/internal/patch"
	"corrigo/internal/schema"
)

// candidate is a not-yet-numbered modified expression, before PatchID
// coordinates are assigned.
type candidate struct {
	modified expr.Expression
	kind     schema.ModificationKind
	// component, when >= 0, is the index into the owning SchemaApplication's
	// Components slice that produced this candidate, and is threaded into
	// the int2/bool2 PatchID coordinate according to the component's type.
	component int
}

// Generate enumerates the search space for apps, assigning each candidate
// a PatchID unique within its owning SchemaApplication (spec.md §4.2
// invariant a), and dispatch keys unique across applications (invariant b,
// enforced structurally by patch.Key pairing AppID with PatchID).
//
// Each app's Original is expected to already have passed through
// expr.CorrectTypes against its context's expected type; Generate does not
// itself perform type inference.
func Generate(apps []*schema.SchemaApplication) ([]patch.Patch, error) {
	var space []patch.Patch
	for _, app := range apps {
		candidates := enumerate(app)
		space = append(space, assignIDs(app, candidates)...)
	}
	return space, nil
}

func enumerate(app *schema.SchemaApplication) []candidate {
	switch app.Schema {
	case schema.Expression:
		return enumerateExpression(app)
	case schema.IfGuard:
		return enumerateIfGuard(app)
	case schema.ArrayInit:
		return enumerateArrayInit(app)
	default:
		return nil
	}
}

// enumerateExpression implements the Expression row of spec.md §4.2's
// table: the scalar modification kinds always apply, and the Boolean
// context unlocks Loosening, Tightening, and NullCheck in addition.
func enumerateExpression(app *schema.SchemaApplication) []candidate {
	original := app.Original
	var out []candidate

	out = append(out, operatorReplacements(original)...)
	out = append(out, swaps(original)...)
	out = append(out, simplifications(original)...)
	out = append(out, generalizations(original)...)
	out = append(out, concretizations(original)...)
	out = append(out, negations(original)...)
	out = append(out, substitutions(original, app.Components)...)

	if app.Context == schema.Condition {
		out = append(out, loosenings(original, app.Components)...)
		out = append(out, tightenings(original, app.Components)...)
		out = append(out, nullChecks(original, app.Components)...)
	}
	return out
}

// operatorReplacements replaces original's top-level operator with each
// interchangeable alternative (spec.md: ModificationKind.OperatorReplacement).
func operatorReplacements(original expr.Expression) []candidate {
	if original.Kind != expr.Operator {
		return nil
	}
	var out []candidate
	for _, alt := range alternativesFor(original.Op) {
		modified := original
		modified.Op = alt
		modified.Repr = alt.String()
		modified.Type = expr.OperatorType(alt)
		out = append(out, candidate{modified: modified, kind: schema.OperatorReplacement, component: -1})
	}
	return out
}

// swaps exchanges the two operands of a binary operator.
func swaps(original expr.Expression) []candidate {
	if original.Kind != expr.Operator || !original.Op.IsBinary() {
		return nil
	}
	modified := original
	modified.Args = []expr.Expression{original.Args[1], original.Args[0]}
	return []candidate{{modified: modified, kind: schema.Swaping, component: -1}}
}

// simplifications replaces original with one of its direct operands,
// dropping the other side entirely.
func simplifications(original expr.Expression) []candidate {
	if original.Kind != expr.Operator {
		return nil
	}
	var out []candidate
	for _, arg := range original.Args {
		if arg.Type == original.Type {
			out = append(out, candidate{modified: arg, kind: schema.Simplification, component: -1})
		}
	}
	return out
}

// generalizations returns no candidates: replacing a Constant with an
// in-scope variable component of the same type is produced by
// substitutions, which labels it Generalization.
func generalizations(original expr.Expression) []candidate {
	if original.Kind != expr.Constant {
		return nil
	}
	return nil // handled via substitutions against app.Components, which already covers constant->variable swaps
}

// concretizations is the dual of generalizations: for Variable leaves it is
// likewise folded into substitutions, since both are component replacement
// at the same position distinguished only by the resulting leaf's Kind.
func concretizations(original expr.Expression) []candidate {
	return nil
}

// negations wraps a Boolean-typed expression in NOT, or strips an existing
// top-level NOT.
func negations(original expr.Expression) []candidate {
	if original.Kind == expr.Operator && original.Op == expr.NOT {
		return []candidate{{modified: original.Args[0], kind: schema.Negation, component: -1}}
	}
	if original.Type == expr.Boolean {
		return []candidate{{modified: expr.NewOperator(expr.NOT, original), kind: schema.Negation, component: -1}}
	}
	return nil
}

// substitutions replaces the whole of original with each available
// component whose type matches, covering Generalization (constant becomes
// variable) and Concretization (variable becomes constant) as special
// cases of the same generic replacement.
func substitutions(original expr.Expression, components []expr.Expression) []candidate {
	var out []candidate
	for i, comp := range components {
		if comp.Type != original.Type {
			continue
		}
		kind := schema.Substitution
		switch {
		case original.Kind == expr.Constant && comp.Kind == expr.Variable:
			kind = schema.Generalization
		case original.Kind == expr.Variable && comp.Kind == expr.Constant:
			kind = schema.Concretization
		}
		out = append(out, candidate{modified: comp, kind: kind, component: i})
	}
	return out
}

// loosenings adds a "|| component" disjunct for each Boolean-typed
// component, widening the condition.
func loosenings(original expr.Expression, components []expr.Expression) []candidate {
	var out []candidate
	for i, comp := range components {
		if comp.Type != expr.Boolean {
			continue
		}
		out = append(out, candidate{
			modified:  expr.NewOperator(expr.OR, original, comp),
			kind:      schema.Loosening,
			component: i,
		})
	}
	return out
}

// tightenings adds a "&& component" conjunct for each Boolean-typed
// component, narrowing the condition.
func tightenings(original expr.Expression, components []expr.Expression) []candidate {
	var out []candidate
	for i, comp := range components {
		if comp.Type != expr.Boolean {
			continue
		}
		out = append(out, candidate{
			modified:  expr.NewOperator(expr.AND, original, comp),
			kind:      schema.Tightening,
			component: i,
		})
	}
	return out
}

// nullChecks produces "pointer != NULL && original" for each Pointer-typed
// component, independent of whether original itself mentions that pointer.
func nullChecks(original expr.Expression, components []expr.Expression) []candidate {
	var out []candidate
	for i, comp := range components {
		if comp.Type != expr.Pointer {
			continue
		}
		guard := expr.NewOperator(expr.NEQ, comp, expr.NullPointer())
		out = append(out, candidate{
			modified:  expr.NewOperator(expr.AND, guard, original),
			kind:      schema.NullCheck,
			component: i,
		})
	}
	return out
}

// enumerateIfGuard generates two guard candidates for each Boolean-typed
// component: the component itself (Substitution) and its negation
// (Negation). No other modification kind is applied to the guard.
func enumerateIfGuard(app *schema.SchemaApplication) []candidate {
	var out []candidate
	for i, comp := range app.Components {
		if comp.Type != expr.Boolean {
			continue
		}
		out = append(out, candidate{modified: comp, kind: schema.Substitution, component: i})
		out = append(out, candidate{modified: expr.NewOperator(expr.NOT, comp), kind: schema.Negation, component: i})
	}
	return out
}

// enumerateArrayInit produces a single patch per array-typed declarator:
// app.Original already names the zero-fill expression the instrumentation
// proposes, so ArrayInit contributes exactly one candidate.
func enumerateArrayInit(app *schema.SchemaApplication) []candidate {
	return []candidate{{modified: app.Original, kind: schema.Substitution, component: -1}}
}
