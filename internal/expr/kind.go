// Package expr models the tagged-tree C-like expression representation
// that corrigo patches: operators, variables, constants, parameters, and
// the auxiliary holes filled in by the parameterized runtime.
package expr

// Kind is the tag of an Expression node.
type Kind uint8

const (
	// Operator is an interior node; Op is meaningful and Args holds its operands.
	Operator Kind = iota
	// Variable is a leaf referencing an in-scope program variable.
	Variable
	// Constant is a leaf literal value.
	Constant
	// Parameter is a leaf numeric-literal synthesis parameter (coordinate "param").
	Parameter
	// BV2 is an auxiliary hole: a bitvector-typed substitution choice.
	BV2
	// INT2 is an auxiliary hole: an integer-typed substitution choice (coordinate "int2").
	INT2
	// BOOL2 is an auxiliary hole: a boolean-typed substitution choice (coordinate "bool2").
	BOOL2
	// BOOL3 is an auxiliary hole: a three-slot conditional structure choice (coordinate "cond3").
	BOOL3
)

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Operator:
		return "operator"
	case Variable:
		return "variable"
	case Constant:
		return "constant"
	case Parameter:
		return "parameter"
	case BV2:
		return "bv2"
	case INT2:
		return "int2"
	case BOOL2:
		return "bool2"
	case BOOL3:
		return "bool3"
	default:
		return "unknown"
	}
}

// IsAuxiliary reports whether the kind is one of the four holes whose
// concrete fill is selected later by a PatchID coordinate.
func (k Kind) IsAuxiliary() bool {
	switch k {
	case BV2, INT2, BOOL2, BOOL3:
		return true
	default:
		return false
	}
}
