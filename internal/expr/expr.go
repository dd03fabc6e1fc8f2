package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a tagged-tree node: Operator, Variable, Constant,
// Parameter, or one of the auxiliary holes (BV2, INT2, BOOL2, BOOL3).
//
// Invariant: for Kind == Operator, len(Args) == Op.Arity(); for every
// other kind, Args is empty.
type Expression struct {
	Kind    Kind
	Type    Type
	Op      Operator // meaningful only when Kind == Operator
	RawType string   // underlying C integer or pointer-base type, e.g. "unsigned char", "int *"
	Repr    string   // literal text for leaves ("1", "x", ">="...) or the operator symbol
	Args    []Expression
}

// Valid reports whether e satisfies the Operator-arity invariant,
// recursively over the whole subtree.
func (e Expression) Valid() bool {
	if e.Kind == Operator {
		if len(e.Args) != e.Op.Arity() {
			return false
		}
	} else if len(e.Args) != 0 {
		return false
	}
	for _, a := range e.Args {
		if !a.Valid() {
			return false
		}
	}
	return true
}

// NewOperator builds an Operator-kind node, deriving Type from the
// operator's result-type contract unless overridden by the caller.
func NewOperator(op Operator, args ...Expression) Expression {
	return Expression{
		Kind: Operator,
		Type: OperatorType(op),
		Op:   op,
		Repr: op.String(),
		Args: args,
	}
}

// NewVariable builds a leaf Variable node of the given type and raw C type.
func NewVariable(name string, t Type, rawType string) Expression {
	return Expression{Kind: Variable, Type: t, RawType: rawType, Repr: name}
}

// IntegerExpression returns the leaf Integer constant "n".
func IntegerExpression(n int) Expression {
	return Expression{Kind: Constant, Type: Integer, RawType: "int", Repr: strconv.Itoa(n)}
}

// NullPointer returns the leaf Pointer constant "0" (C's null pointer constant).
func NullPointer() Expression {
	return Expression{Kind: Constant, Type: Pointer, RawType: "void *", Repr: "0"}
}

// String renders e as a parenthesized C-like expression, for diagnostics
// and the search-space dump (not used for code generation, which goes
// through internal/codegen instead).
func (e Expression) String() string {
	switch e.Kind {
	case Variable, Constant, Parameter:
		return e.Repr
	case BV2, INT2, BOOL2, BOOL3:
		return "<" + e.Kind.String() + ">"
	case Operator:
		switch e.Op.Arity() {
		case 1:
			return fmt.Sprintf("%s(%s)", e.Op.String(), e.Args[0].String())
		case 2:
			return fmt.Sprintf("(%s %s %s)", e.Args[0].String(), e.Op.String(), e.Args[1].String())
		default:
			parts := make([]string, len(e.Args))
			for i, a := range e.Args {
				parts[i] = a.String()
			}
			return fmt.Sprintf("%s(%s)", e.Op.String(), strings.Join(parts, ", "))
		}
	default:
		return "<?>"
	}
}

// Distance computes a syntactic edit-distance between e and original,
// per spec.md §4.2: 0 for identity, 1 for a single top-level operator
// swap or constant<->variable generalization, 2 for a compound change
// (a new subexpression introduced alongside a structural change), and
// otherwise (same node shape, differing children) the sum of the
// children's distances, or 1 when that sum is 0.
func Distance(original, modified Expression) uint {
	if exprEqual(original, modified) {
		return 0
	}
	if original.Kind == Operator && modified.Kind == Operator &&
		original.Op != modified.Op && len(original.Args) == len(modified.Args) {
		allChildrenEqual := true
		for i := range original.Args {
			if !exprEqual(original.Args[i], modified.Args[i]) {
				allChildrenEqual = false
				break
			}
		}
		if allChildrenEqual {
			return 1
		}
	}
	if (original.Kind == Constant && modified.Kind == Variable) ||
		(original.Kind == Variable && modified.Kind == Constant) {
		return 1
	}
	if original.Kind != modified.Kind || original.Op != modified.Op || len(original.Args) != len(modified.Args) {
		return 2
	}
	var sum uint
	for i := range original.Args {
		sum += Distance(original.Args[i], modified.Args[i])
	}
	if sum == 0 {
		return 1
	}
	return sum
}

func exprEqual(a, b Expression) bool {
	if a.Kind != b.Kind || a.Type != b.Type || a.Op != b.Op || a.RawType != b.RawType || a.Repr != b.Repr {
		return false
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !exprEqual(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}
