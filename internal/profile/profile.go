// Package profile declares the fault-localization collaborator contract
// and the Profile shape the search engine consults for test ordering
// (spec.md §6). The profiler implementation itself is out of scope.
package profile

import "corrigo/internal/schema"

// Profile maps a candidate Location to the indices (into the caller's
// tests slice) of tests known to exercise it, ordered by observed
// discriminative power, strongest first.
type Profile map[schema.Location][]int

// Localizer narrows a project's files down to the ones worth
// instrumenting, when the caller has not already named them explicitly.
type Localizer interface {
	Localize(files []string) ([]string, error)
}
