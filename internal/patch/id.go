// Package patch models a concrete search-space element: a PatchID naming
// one coordinate in the parameterized runtime's dispatch space, and the
// Patch that PatchID resolves to (spec.md §3/§4.3).
package patch

import "fmt"

// ID is the five-coordinate address the parameterized runtime uses to pick
// one concrete patch at process-start via its F1X_ID_* environment
// variables. It is comparable and usable as a map key.
type ID struct {
	Base  uint
	Int2  uint
	Bool2 uint
	Cond3 uint
	Param uint
}

func (id ID) String() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d", id.Base, id.Int2, id.Bool2, id.Cond3, id.Param)
}

// EnvPairs returns the F1X_ID_* environment variable assignments that
// select id at runtime, keyed by variable name: internal/search exports
// them and the runtime internal/codegen emits reads them.
func (id ID) EnvPairs() map[string]string {
	return map[string]string{
		"F1X_ID_BASE":  fmt.Sprint(id.Base),
		"F1X_ID_INT2":  fmt.Sprint(id.Int2),
		"F1X_ID_BOOL2": fmt.Sprint(id.Bool2),
		"F1X_ID_COND3": fmt.Sprint(id.Cond3),
		"F1X_ID_PARAM": fmt.Sprint(id.Param),
	}
}
