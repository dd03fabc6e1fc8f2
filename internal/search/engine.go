package search

import (
	"context"
	"path/filepath"
	"time"

	"corrigo/internal/config"
	"corrigo/internal/oracle"
	"corrigo/internal/patch"
	"corrigo/internal/profile"
	"corrigo/internal/project"
	"corrigo/internal/trace"
	"corrigo/internal/tui"
)

// Engine walks a prioritized search space, executing tests through an
// oracle and folding value-based test equivalence back into its failing
// and passing sets (spec.md §4.5).
//
// failing and passing are keyed by patch.Key rather than bare patch.ID:
// PatchID coordinates are only unique within the SchemaApplication that
// generated them (spec.md §4.2 invariant b), so two patches from different
// applications can carry an identical PatchID and must not be conflated.
type Engine struct {
	tests   []string
	oracle  oracle.TestOracle
	cfg     config.Configuration
	dataDir string

	partitionable      Partitionable
	relatedTestIndexes profile.Profile
	files              map[uint]string

	failing map[patch.Key]struct{}
	passing map[string]map[patch.Key]struct{}

	stat        Statistics
	progress    int
	coverageSet patch.Set

	tracer    trace.Tracer
	progressC chan<- tui.Event
}

// New constructs an Engine. tracer may be trace.Nop when tracing is
// disabled. files resolves a Location's FileID back to a project-relative
// path for semantic-diff coverage recording; pass nil when
// PatchPrioritization never needs it. progressC, when non-nil, receives
// one tui.EventTest per test execution; pass nil to run without a TUI.
func New(tests []string, testOracle oracle.TestOracle, cfg config.Configuration, dataDir string, partitionable Partitionable, relatedTestIndexes profile.Profile, files []project.File, tracer trace.Tracer, progressC chan<- tui.Event) *Engine {
	if tracer == nil {
		tracer = trace.Nop
	}
	filesByID := make(map[uint]string, len(files))
	for _, f := range files {
		filesByID[f.FileID] = f.Path
	}
	e := &Engine{
		tests:              tests,
		oracle:             testOracle,
		cfg:                cfg,
		dataDir:            dataDir,
		partitionable:      partitionable,
		relatedTestIndexes: relatedTestIndexes,
		files:              filesByID,
		failing:            make(map[patch.Key]struct{}),
		passing:            make(map[string]map[patch.Key]struct{}),
		tracer:             tracer,
		progressC:          progressC,
	}
	if cfg.PatchPrioritization == config.SemanticDiff {
		e.coverageSet = make(patch.Set)
	}
	return e
}

// Statistics returns the accumulated exploration/execution counters.
func (e *Engine) Statistics() Statistics { return e.stat }

// CoverageSet returns the recorded per-test per-patch coverage, or nil
// when semantic-diff prioritization was not enabled.
func (e *Engine) CoverageSet() patch.Set { return e.coverageSet }

// FindNext scans searchSpace from its start and returns the index of
// the first patch that makes every test pass, or len(searchSpace) if the
// scan is exhausted.
func (e *Engine) FindNext(ctx context.Context, searchSpace []patch.Patch) (int, error) {
	return e.findNextFrom(ctx, searchSpace, 0)
}

// FindNextFrom is FindNext starting the scan at fromIdx, for driving
// successive calls from the outer plausible-patch loop.
func (e *Engine) FindNextFrom(ctx context.Context, searchSpace []patch.Patch, fromIdx int) (int, error) {
	return e.findNextFrom(ctx, searchSpace, fromIdx)
}

func (e *Engine) findNextFrom(ctx context.Context, searchSpace []patch.Patch, fromIdx int) (int, error) {
	span := trace.Begin(e.tracer, trace.ScopeRun, "find_next", 0)
	defer span.End("")

	for idx := fromIdx; idx < len(searchSpace); idx++ {
		c := searchSpace[idx]
		key := c.KeyOf()

		e.stat.ExplorationCounter++
		e.reportProgress(len(searchSpace))

		if e.cfg.ValueTEQ {
			if _, known := e.failing[key]; known {
				continue
			}
		}

		testOrder := e.testOrderFor(c)

		allPassed := true
		for _, testIdx := range testOrder {
			if testIdx < 0 || testIdx >= len(e.tests) {
				continue
			}
			test := e.tests[testIdx]

			if e.cfg.ValueTEQ {
				if _, known := e.passing[test][key]; known {
					continue
				}
			}

			status, dur, err := e.execute(ctx, c, test)
			if err != nil {
				return 0, err
			}
			e.stat.recordExecution(dur, status == oracle.Timeout)
			e.emitTest(test, status)

			if e.cfg.ValueTEQ {
				e.foldPartition(c, test, status)
			}

			if status != oracle.Pass {
				if e.cfg.TestPrioritization == config.MaxFailing {
					e.promoteTest(c, testIdx)
				}
				allPassed = false
				break
			}

			if e.coverageSet != nil {
				e.recordCoverage(c, test)
			}
		}

		if allPassed {
			return idx, nil
		}
	}
	return len(searchSpace), nil
}

// testOrderFor builds the order findNext walks tests in for c: the
// profiler's related-test list for c's location, then every remaining
// test index not already in that list, appended in original order.
func (e *Engine) testOrderFor(c patch.Patch) []int {
	related := e.relatedTestIndexes[c.App.Location]
	seen := make(map[int]bool, len(related))
	order := make([]int, 0, len(e.tests))
	for _, idx := range related {
		order = append(order, idx)
		seen[idx] = true
	}
	for i := range e.tests {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order
}

// promoteTest moves testIdx to the front of c's location's related-test
// list, so the next candidate at this location tries the test that just
// failed first (spec.md §4.5 step 4f, the MaxFailing heuristic). It takes
// effect starting with the next candidate, per spec.md §5 ordering.
func (e *Engine) promoteTest(c patch.Patch, testIdx int) {
	order := e.relatedTestIndexes[c.App.Location]
	filtered := make([]int, 0, len(order)+1)
	filtered = append(filtered, testIdx)
	for _, idx := range order {
		if idx != testIdx {
			filtered = append(filtered, idx)
		}
	}
	e.relatedTestIndexes[c.App.Location] = filtered
}

func (e *Engine) execute(ctx context.Context, c patch.Patch, test string) (oracle.Status, time.Duration, error) {
	partitionPath := filepath.Join(e.dataDir, "partition")
	envPartitionPath := ""
	if e.cfg.ValueTEQ {
		siblings := idsOf(e.partitionable[c.App.AppID])
		if err := WritePartition(partitionPath, siblings); err != nil {
			return 0, 0, err
		}
		envPartitionPath = partitionPath
	}

	restoreEnv, err := pushPatchEnv(c.App.AppID, c.ID, envPartitionPath)
	if err != nil {
		return 0, 0, err
	}
	defer restoreEnv()

	start := time.Now()
	status, err := e.oracle.Execute(ctx, test)
	dur := time.Since(start)
	if err != nil {
		return 0, dur, err
	}
	return status, dur, nil
}

func (e *Engine) foldPartition(c patch.Patch, test string, status oracle.Status) {
	partitionPath := filepath.Join(e.dataDir, "partition")
	consistent, err := ReadPartition(partitionPath)
	if err != nil {
		return
	}
	switch status {
	case oracle.Pass:
		set, ok := e.passing[test]
		if !ok {
			set = make(map[patch.Key]struct{})
			e.passing[test] = set
		}
		for _, id := range consistent {
			set[patch.Key{AppID: c.App.AppID, ID: id}] = struct{}{}
		}
	case oracle.Fail, oracle.Timeout:
		for _, id := range consistent {
			e.failing[patch.Key{AppID: c.App.AppID, ID: id}] = struct{}{}
		}
	}
}

// recordCoverage records, for every PatchID in c's application's
// Partitionable set, that passing test exercised c.App.Location's line
// span in its source file. The instrumented binary itself carries no
// finer-grained coverage collector, so the patched location's own span is
// what the engine can observe directly. The whole Partitionable set shares
// the observation, which is wider than the narrowed subset foldPartition
// records for the test.
func (e *Engine) recordCoverage(c patch.Patch, test string) {
	path, ok := e.files[c.App.Location.FileID]
	if !ok {
		return
	}
	for id := range e.partitionable[c.App.AppID] {
		lines := make(map[uint]struct{}, c.App.Location.EndLine-c.App.Location.BeginLine+1)
		for ln := c.App.Location.BeginLine; ln <= c.App.Location.EndLine; ln++ {
			lines[ln] = struct{}{}
		}
		key := patch.Key{AppID: c.App.AppID, ID: id}
		e.coverageSet.Record(test, key, patch.Coverage{path: lines})
	}
}

// emitTest reports one test execution's outcome to progressC, the way
// emitExplore/emitFound report candidate-level events from
// internal/driver.
func (e *Engine) emitTest(test string, status oracle.Status) {
	if e.progressC == nil {
		return
	}
	e.progressC <- tui.Event{Kind: tui.EventTest, Test: test, Status: status}
}

// reportProgress logs a progress milestone every 10% of searchSpace
// explored, per spec.md §4.5 step 1.
func (e *Engine) reportProgress(total int) {
	if total == 0 {
		return
	}
	pct := e.stat.ExplorationCounter * 100 / total
	milestone := pct / 10 * 10
	if milestone > e.progress {
		e.progress = milestone
		trace.Begin(e.tracer, trace.ScopeCandidate, "progress", 0).End(progressDetail(milestone))
	}
}

func progressDetail(pct int) string {
	if pct >= 100 {
		return "100%"
	}
	digits := [...]byte{byte('0' + pct/10%10), byte('0' + pct%10)}
	return string(digits[:]) + "%"
}
