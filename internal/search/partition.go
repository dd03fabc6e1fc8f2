// Package search implements the prioritized-space exploration loop:
// findNext walks a sorted search space, executes tests through the oracle,
// and exploits value-based test equivalence and test-order heuristics to
// skip work a single execution has already settled (spec.md §4.5).
package search

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"corrigo/internal/patch"
)

// WritePartition writes ids to path, one PatchID per line as five decimals,
// the format the parameterized runtime reads before narrowing it to the
// subset consistent with the values it actually observed.
func WritePartition(path string, ids []patch.ID) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "%d %d %d %d %d\n", id.Base, id.Int2, id.Bool2, id.Cond3, id.Param); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadPartition reads back the subset the runtime narrowed path to after a
// test execution (getPartition in the original).
func ReadPartition(path string) ([]patch.ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ids []patch.ID
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, fmt.Errorf("malformed partition line %q", line)
		}
		var vals [5]uint64
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed partition line %q: %w", line, err)
			}
			vals[i] = v
		}
		ids = append(ids, patch.ID{
			Base:  uint(vals[0]),
			Int2:  uint(vals[1]),
			Bool2: uint(vals[2]),
			Cond3: uint(vals[3]),
			Param: uint(vals[4]),
		})
	}
	return ids, scanner.Err()
}

// Partitionable maps an owning application's AppID to the set of PatchIDs
// that share its partition namespace: every patch synth generated from the
// same SchemaApplication (getPartitionable in the original).
type Partitionable map[uint]map[patch.ID]struct{}

// BuildPartitionable derives Partitionable from a generated search space.
func BuildPartitionable(searchSpace []patch.Patch) Partitionable {
	result := make(Partitionable)
	for _, p := range searchSpace {
		appID := p.App.AppID
		set, ok := result[appID]
		if !ok {
			set = make(map[patch.ID]struct{})
			result[appID] = set
		}
		set[p.ID] = struct{}{}
	}
	return result
}

// idsOf flattens a partitionable set to a slice in map order; order does
// not matter to the runtime, which only tests membership.
func idsOf(set map[patch.ID]struct{}) []patch.ID {
	out := make([]patch.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
