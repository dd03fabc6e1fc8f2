package expr

import "fmt"

// TypeError reports that no legal coercion exists between an expression's
// inferred type and the type expected of it at its use site.
type TypeError struct {
	Expr     Expression
	Expected Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot coerce %s expression %q to %s", e.Expr.Type, e.Expr.Repr, e.Expected)
}

// operandContract returns, for an Operator node, the expected type of each
// operand in argument order. Any means "accept the operand's natural type".
func operandContract(op Operator) []Type {
	switch op {
	case OR, AND:
		return []Type{Boolean, Boolean}
	case NOT:
		return []Type{Boolean}
	case ADD, SUB, MUL, DIV, MOD:
		return []Type{Integer, Integer}
	case NEG:
		return []Type{Integer}
	case BVAnd, BVXor, BVOr, BVShl, BVShr:
		return []Type{Bitvector, Bitvector}
	case BVNot:
		return []Type{Bitvector}
	case BVToInt:
		return []Type{Bitvector}
	case IntToBV, IntCast:
		return []Type{Integer}
	case EQ, NEQ, LT, LE, GT, GE:
		return []Type{Any, Any}
	default:
		n := op.Arity()
		out := make([]Type, n)
		for i := range out {
			out[i] = Any
		}
		return out
	}
}

// isComparison reports whether e is a comparison operator node, i.e. one
// that already produces a Boolean result regardless of its operands' types.
func isComparison(e Expression) bool {
	if e.Kind != Operator {
		return false
	}
	switch e.Op {
	case EQ, NEQ, LT, LE, GT, GE:
		return true
	default:
		return false
	}
}

// CorrectTypes returns a semantically equivalent expression whose subtree
// types are explicit and consistent with expected at the root (spec.md
// §4.1). expected == Any means "accept the natural type". CorrectTypes is
// idempotent: CorrectTypes(CorrectTypes(e, t), t) == CorrectTypes(e, t).
func CorrectTypes(e Expression, expected Type) (Expression, error) {
	fixed, err := fixChildren(e)
	if err != nil {
		return Expression{}, err
	}
	return coerce(fixed, expected)
}

// fixChildren recursively corrects each operand of an Operator node against
// that operator's contract, then re-derives the node's own Type from the
// operator. Leaves are returned unchanged.
func fixChildren(e Expression) (Expression, error) {
	if e.Kind != Operator {
		return e, nil
	}
	contract := operandContract(e.Op)
	newArgs := make([]Expression, len(e.Args))
	for i, arg := range e.Args {
		want := Any
		if i < len(contract) {
			want = contract[i]
		}
		corrected, err := CorrectTypes(arg, want)
		if err != nil {
			return Expression{}, err
		}
		newArgs[i] = corrected
	}
	fixed := e
	fixed.Args = newArgs
	fixed.Type = OperatorType(e.Op)
	return fixed, nil
}

// coerce inserts an explicit coercion node (BV_TO_INT, INT_TO_BV, or the
// C-semantics-preserving comparison-to-zero form) when e's type disagrees
// with expected, or reports a TypeError when no legal coercion exists.
func coerce(e Expression, expected Type) (Expression, error) {
	if expected == Any || e.Type == expected {
		return e, nil
	}
	switch expected {
	case Boolean:
		switch e.Type {
		case Integer:
			return NewOperator(NEQ, e, IntegerExpression(0)), nil
		case Bitvector:
			asInt := NewOperator(BVToInt, e)
			return NewOperator(NEQ, asInt, IntegerExpression(0)), nil
		case Pointer:
			if isComparison(e) {
				return e, nil
			}
			return Expression{}, &TypeError{Expr: e, Expected: expected}
		default:
			return Expression{}, &TypeError{Expr: e, Expected: expected}
		}
	case Integer:
		switch e.Type {
		case Boolean:
			// a Boolean value is already a valid 0/1 Integer in C; no node inserted.
			return e, nil
		case Bitvector:
			return NewOperator(BVToInt, e), nil
		default:
			return Expression{}, &TypeError{Expr: e, Expected: expected}
		}
	case Bitvector:
		switch e.Type {
		case Integer:
			return NewOperator(IntToBV, e), nil
		case Boolean:
			return NewOperator(IntToBV, e), nil
		default:
			return Expression{}, &TypeError{Expr: e, Expected: expected}
		}
	default:
		return Expression{}, &TypeError{Expr: e, Expected: expected}
	}
}
