// Package prioritize orders a generated search space so the search engine
// explores the most plausible patches first (spec.md §4.4).
package prioritize

import (
	"sort"

	"corrigo/internal/config"
	"corrigo/internal/patch"
	"corrigo/internal/schema"
)

// kindBias biases the cost of a patch by how conservative its modification
// kind is, relative to the others in the closed catalogue. Lower explores
// first.
func kindBias(kind schema.ModificationKind) float64 {
	switch kind {
	case schema.Swaping, schema.Simplification, schema.Generalization:
		return -0.3
	case schema.OperatorReplacement:
		return -0.2
	case schema.Substitution, schema.Loosening, schema.Tightening:
		return -0.1
	default:
		return 0
	}
}

// SyntacticDiff is the cost function: tree-edit distance from the original
// expression, plus a kind-dependent bias.
func SyntacticDiff(p patch.Patch) float64 {
	return float64(p.Meta.Distance) + kindBias(p.Meta.Kind)
}

// SemanticDiff costs a patch by how many lines of coverage has recorded
// it touching so far: a smaller observed footprint biases earlier, since
// a patch whose location is exercised by fewer of the tests under
// investigation is more likely to be the minimal, correct fix. Before
// any coverage exists for a patch — before the first test execution that
// reaches it, or when coverage is nil — it falls back to SyntacticDiff,
// since there is nothing yet to diverge from.
func SemanticDiff(p patch.Patch, coverage patch.Set) float64 {
	touched := 0
	for _, byPatch := range coverage {
		for _, lines := range byPatch[p.KeyOf()] {
			touched += len(lines)
		}
	}
	if touched == 0 {
		return SyntacticDiff(p)
	}
	return float64(touched) + kindBias(p.Meta.Kind)
}

func costFunc(cfg config.Configuration, coverage patch.Set) func(patch.Patch) float64 {
	if cfg.PatchPrioritization == config.SemanticDiff {
		return func(p patch.Patch) float64 { return SemanticDiff(p, coverage) }
	}
	return SyntacticDiff
}

// Prioritize stable-sorts searchSpace by ascending cost, dispatching on
// cfg.PatchPrioritization. coverage is consulted only under SemanticDiff;
// pass nil when running SyntacticDiff or when nothing has been collected
// yet. Stability preserves the instrumentation's discovery order within
// equal-cost groups, which is what makes repeated runs deterministic
// (spec.md §4.5 Determinism).
func Prioritize(searchSpace []patch.Patch, cfg config.Configuration, coverage patch.Set) {
	cost := costFunc(cfg, coverage)
	sort.SliceStable(searchSpace, func(i, j int) bool {
		return cost(searchSpace[i]) < cost(searchSpace[j])
	})
}
