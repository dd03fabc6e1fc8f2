package ingest

import "github.com/google/uuid"

// NewRunID returns a fresh identifier for one repair run, used to
// namespace dataDir subdirectories (partition channel files,
// patch-coverage output) so concurrent runs against the same project
// checkout don't clobber each other's state.
func NewRunID() string {
	return uuid.NewString()
}
