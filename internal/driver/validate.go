package driver

import (
	"context"

	"corrigo/internal/oracle"
	"corrigo/internal/patch"
	"corrigo/internal/project"
)

// validateOne applies p, runs every test, and restores the project,
// reporting whether every test passed. It calls no build step of its own
// between ApplyPatch and the test runs.
//
// original_source/repair/Repair.cpp's single-best-patch branch calls
// validatePatch but discards its return value (`bool valid = true;` is
// never reassigned), so validation silently never rejects a patch there.
// That is a bug in the original, not a behavior to preserve: validateOne's
// result is always consulted by its caller.
func validateOne(ctx context.Context, proj project.Project, testOracle oracle.TestOracle, tests []string, p patch.Patch) (bool, error) {
	if err := proj.ApplyPatch(p); err != nil {
		return false, err
	}
	defer proj.Restore()

	for _, test := range tests {
		status, err := testOracle.Execute(ctx, test)
		if err != nil {
			return false, err
		}
		if status != oracle.Pass {
			return false, nil
		}
	}
	return true, nil
}

// Validate filters candidates down to the ones that pass every test when
// applied, the generateAll branch of the original's
// validation pass.
func Validate(ctx context.Context, proj project.Project, testOracle oracle.TestOracle, tests []string, candidates []patch.Patch) ([]patch.Patch, error) {
	var valid []patch.Patch
	for _, c := range candidates {
		ok, err := validateOne(ctx, proj, testOracle, tests, c)
		if err != nil {
			return nil, err
		}
		if ok {
			valid = append(valid, c)
		}
	}
	return valid, nil
}
