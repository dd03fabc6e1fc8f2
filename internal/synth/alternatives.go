// Package synth enumerates the closed catalogue of modification kinds over
// a SchemaApplication and assigns each resulting candidate a PatchID,
// producing the search space internal/prioritize ranks and internal/search
// explores (spec.md §4.2).
package synth

import "corrigo/internal/expr"

// operatorFamilies groups operators that are mutually substitutable for
// OperatorReplacement: swapping one member for another preserves arity and
// result type, so the swap alone is syntactically well-formed.
var operatorFamilies = [][]expr.Operator{
	{expr.EQ, expr.NEQ, expr.LT, expr.LE, expr.GT, expr.GE},
	{expr.AND, expr.OR},
	{expr.ADD, expr.SUB, expr.MUL, expr.DIV, expr.MOD},
	{expr.BVAnd, expr.BVOr, expr.BVXor},
}

// alternativesFor returns every operator in op's family other than op
// itself, in family order.
func alternativesFor(op expr.Operator) []expr.Operator {
	for _, family := range operatorFamilies {
		for _, member := range family {
			if member == op {
				out := make([]expr.Operator, 0, len(family)-1)
				for _, candidate := range family {
					if candidate != op {
						out = append(out, candidate)
					}
				}
				return out
			}
		}
	}
	return nil
}
