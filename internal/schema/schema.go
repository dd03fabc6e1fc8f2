package schema

import "corrigo/internal/expr"

// TransformationSchema is the high-level shape of a transformation rule.
type TransformationSchema uint8

const (
	// Expression rewrites an existing expression at a location.
	Expression TransformationSchema = iota
	// IfGuard wraps an existing statement with a new Boolean guard.
	IfGuard
	// ArrayInit inserts a memset-style initialization for an array declarator.
	ArrayInit
)

func (s TransformationSchema) String() string {
	switch s {
	case Expression:
		return "expression"
	case IfGuard:
		return "if_guard"
	case ArrayInit:
		return "array_init"
	default:
		return "unknown"
	}
}

// ModificationKind classifies how a patch's expression differs from the
// original, independent of the transformation schema that produced it. It
// drives both internal/synth's enumeration rules and internal/prioritize's
// cost model.
type ModificationKind uint8

const (
	// OperatorReplacement swaps the top-level operator, e.g. > for >=.
	OperatorReplacement ModificationKind = iota
	// Swaping exchanges the positions of an operator's arguments.
	Swaping
	// Simplification drops a subexpression in favor of one of its operands.
	Simplification
	// Generalization replaces a constant with a fresh variable or parameter.
	Generalization
	// Concretization replaces a variable with a constant or parameter.
	Concretization
	// Loosening adds a "|| something" disjunct (condition context only).
	Loosening
	// Tightening adds a "&& something" conjunct (condition context only).
	Tightening
	// Negation logically negates the expression, or removes an existing negation.
	Negation
	// NullCheck adds a pointer-nullness guard (condition context only).
	NullCheck
	// Substitution is a generic replacement of a subnode with a component
	// supplied alongside the SchemaApplication.
	Substitution
)

func (k ModificationKind) String() string {
	switch k {
	case OperatorReplacement:
		return "operator"
	case Swaping:
		return "swaping"
	case Simplification:
		return "simplification"
	case Generalization:
		return "generalization"
	case Concretization:
		return "concretization"
	case Loosening:
		return "loosening"
	case Tightening:
		return "tightening"
	case Negation:
		return "negation"
	case NullCheck:
		return "null_check"
	case Substitution:
		return "substitution"
	default:
		return "unknown"
	}
}

// SchemaApplication is one application of a transformation schema to a
// program location: the location's natural context, the original
// expression found there, and the pool of component expressions (e.g.
// in-scope variables and constants) that modification kinds like
// Substitution and Generalization may draw on. internal/synth enumerates
// every legal patch for a SchemaApplication; internal/patch identifies each
// resulting patch by (appId, PatchID).
type SchemaApplication struct {
	AppID      uint
	Schema     TransformationSchema
	Location   Location
	Context    LocationContext
	Original   expr.Expression
	Components []expr.Expression
}
