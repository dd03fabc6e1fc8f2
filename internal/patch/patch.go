package patch

import (
	"corrigo/internal/expr"
	"corrigo/internal/schema"
)

// Metadata carries the information internal/prioritize needs to rank a
// Patch without re-deriving it from the expression tree each time.
type Metadata struct {
	Kind     schema.ModificationKind
	Distance uint
}

// Patch is one concrete element of the search space: a PatchID, the
// SchemaApplication it belongs to, the modified expression it installs at
// that application's location, and the metadata describing how it differs
// from the original.
//
// App is a shared pointer into the owning SchemaApplication rather than a
// copy: a SchemaApplication commonly yields dozens of patches, and patches
// are generated once and never mutated, so there is nothing to protect by
// giving each Patch its own copy.
type Patch struct {
	ID       ID
	App      *schema.SchemaApplication
	Modified expr.Expression
	Meta     Metadata
}

// Key uniquely identifies a Patch across every SchemaApplication in a
// search space: dispatch is keyed on (AppID, PatchID), not PatchID alone,
// since PatchID coordinates are local to the SchemaApplication that
// generated them.
type Key struct {
	AppID uint
	ID    ID
}

// KeyOf returns p's dispatch key.
func (p Patch) KeyOf() Key {
	return Key{AppID: p.App.AppID, ID: p.ID}
}
