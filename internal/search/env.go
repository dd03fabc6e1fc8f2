package search

import (
	"strconv"

	"corrigo/internal/patch"
	"corrigo/internal/wdctx"
)

// pushPatchEnv exports F1X_APP and the five F1X_ID_* coordinates for the
// duration of one test execution, restoring whatever the process had
// beforehand once the caller's defer runs (spec.md §5: "Environment
// exported to the target process"). partitionPath, when non-empty, is
// exported as F1X_PARTITION_PATH so the parameterized runtime knows where
// to read and narrow the partition channel; leave it empty when ValueTEQ
// is disabled.
func pushPatchEnv(appID uint, id patch.ID, partitionPath string) (restore func(), err error) {
	env := id.EnvPairs()
	env["F1X_APP"] = strconv.FormatUint(uint64(appID), 10)
	if partitionPath != "" {
		env["F1X_PARTITION_PATH"] = partitionPath
	}
	return wdctx.PushEnv(env)
}
