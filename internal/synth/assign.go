package synth

import (
	"fortio.org/safecast"

	"corrigo/internal/expr"
	"corrigo/internal/patch"
	"corrigo/internal/schema"
)

// assignIDs numbers candidates into Patches with PatchIDs unique within
// app (spec.md §4.2 invariant a). base counts every candidate in
// generation order; int2/bool2 additionally carry the chosen component's
// index for Substitution-family kinds, keyed by that component's type, so
// the coordinate the parameterized runtime actually branches on at one
// call site stays stable across unrelated candidates.
func assignIDs(app *schema.SchemaApplication, candidates []candidate) []patch.Patch {
	out := make([]patch.Patch, 0, len(candidates))
	for base, c := range candidates {
		id := patch.ID{Base: mustUint(base)}
		if c.component >= 0 {
			switch componentType(app, c.component) {
			case expr.Integer, expr.Bitvector:
				id.Int2 = mustUint(c.component)
			case expr.Boolean:
				id.Bool2 = mustUint(c.component)
			case expr.Pointer:
				id.Cond3 = mustUint(c.component)
			}
		}
		out = append(out, patch.Patch{
			ID:       id,
			App:      app,
			Modified: c.modified,
			Meta: patch.Metadata{
				Kind:     c.kind,
				Distance: expr.Distance(app.Original, c.modified),
			},
		})
	}
	return out
}

// mustUint converts a non-negative candidate index or count to the uint
// PatchID coordinates expect. A generation bug producing a negative index
// is a programmer error, not a runtime condition to recover from, so this
// panics rather than silently wrapping.
func mustUint(n int) uint {
	v, err := safecast.Conv[uint](n)
	if err != nil {
		panic(err)
	}
	return v
}

func componentType(app *schema.SchemaApplication, index int) expr.Type {
	if index < 0 || index >= len(app.Components) {
		return expr.Any
	}
	return app.Components[index].Type
}
