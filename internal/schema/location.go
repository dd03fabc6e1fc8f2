// Package schema models where a patch applies and under what transformation
// rule: locations in the instrumented sources, the context they appear in,
// and the catalogue of transformation schemas and modification kinds that
// internal/synth enumerates over (spec.md §3/§4.2).
package schema

import "fmt"

// Location identifies a byte range in one instrumented source file by its
// 1-based line/column span. fileId indexes into the candidate-locations
// input's file table rather than carrying a path directly, so Location stays
// small, comparable, and safe to use as a map key.
type Location struct {
	FileID      uint
	BeginLine   uint
	BeginColumn uint
	EndLine     uint
	EndColumn   uint
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d:%d-%d:%d", l.FileID, l.BeginLine, l.BeginColumn, l.EndLine, l.EndColumn)
}

// LocationContext distinguishes a condition location, which unlocks the
// Boolean-context-only modification kinds (Loosening, Tightening, NullCheck),
// from one with no special treatment.
type LocationContext uint8

const (
	// Condition marks an if, loop, or other Boolean-typed condition location.
	Condition LocationContext = iota
	// Unknown marks a location with no special contextual treatment.
	Unknown
)

func (c LocationContext) String() string {
	switch c {
	case Condition:
		return "condition"
	case Unknown:
		return "unknown"
	default:
		return "unknown"
	}
}
