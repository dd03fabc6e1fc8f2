// Package driver orchestrates one end-to-end repair run: build, localize,
// ingest candidate locations, type-correct, generate and prioritize the
// search space, compile and link the parameterized runtime, search, and
// emit diffs for whatever plausible patches were found. Grounded on
// original_source/repair/Repair.cpp's repair() function, restructured into
// staged Go calls against this module's collaborator contracts
// (project.Project, oracle.TestOracle, profile.Localizer) instead of the
// original's concrete C++ classes.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"corrigo/internal/codegen"
	"corrigo/internal/config"
	"corrigo/internal/diagx"
	"corrigo/internal/expr"
	"corrigo/internal/ingest"
	"corrigo/internal/oracle"
	"corrigo/internal/observ"
	"corrigo/internal/patch"
	"corrigo/internal/profile"
	"corrigo/internal/project"
	"corrigo/internal/prioritize"
	"corrigo/internal/schema"
	"corrigo/internal/search"
	"corrigo/internal/spacecache"
	"corrigo/internal/synth"
	"corrigo/internal/trace"
	"corrigo/internal/tui"
)

// Status is the outcome of a Repair run.
type Status uint8

const (
	// Success means at least one plausible patch was found (and, when
	// Cfg.ValidatePatches is set, passed validation).
	Success Status = iota
	// Failure means the search completed without finding a patch.
	Failure
	// Error means a pipeline stage failed outright (build, runtime compile,
	// driver missing).
	Error
	// NoNegativeTests means every supplied test passed on the unmodified
	// project, so there is nothing to repair against.
	NoNegativeTests
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Error:
		return "ERROR"
	case NoNegativeTests:
		return "NO_NEGATIVE_TESTS"
	default:
		return "UNKNOWN"
	}
}

// Result is everything Repair reports back to its caller.
type Result struct {
	Status     Status
	RunID      string
	Plausible  []patch.Patch
	SearchSize int
	Stat       search.Statistics
	Timings    observ.Report
}

// Inputs bundles everything Repair needs beyond the project/tester/tests
// triple, so its signature stays stable as new collaborators are added.
type Inputs struct {
	Project          project.Project
	Oracle           oracle.TestOracle
	Tests            []string
	Localizer        profile.Localizer
	CandidateJSON    []byte
	RelatedTestIndex profile.Profile
	Cfg              config.Configuration
	OutputDir        string
	Tracer           trace.Tracer
	Progress         chan<- tui.Event
}

// Repair runs the full pipeline described above and returns a Result.
//
// CandidateLocations and the profile are supplied by the caller (the
// instrumentation/profiler steps are external collaborators per this
// module's scope) rather than produced internally. Repair generates the
// runtime source/header pair itself and hands it to
// Project.BuildWithRuntime to compile; beyond that its job is generating,
// prioritizing, and searching the patch space, then emitting diffs for
// whatever plausible patches surface.
func Repair(ctx context.Context, in Inputs) (Result, error) {
	tracer := in.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	timer := observ.NewTimer()
	defer in.closeProgress()

	runSpan := trace.Begin(tracer, trace.ScopeRun, "repair", 0)
	defer runSpan.End("")

	buildIdx := timer.Begin("initial_build")
	compiled, commandsInferred, err := in.Project.InitialBuild(ctx)
	timer.End(buildIdx, fmt.Sprintf("compiled=%v inferred=%v", compiled, commandsInferred))
	if err != nil {
		return Result{Status: Error}, &diagx.BuildError{What: "initial build", Err: err}
	}
	if !commandsInferred {
		return Result{Status: Error}, &diagx.BuildError{What: "infer compile commands", Err: fmt.Errorf("no compile commands inferred")}
	}

	if !in.Oracle.DriverIsOK() {
		return Result{Status: Error}, &diagx.OracleError{Driver: "test driver", Err: fmt.Errorf("missing or not executable")}
	}

	if in.Localizer != nil {
		locIdx := timer.Begin("localize")
		var files []string
		for _, f := range in.Project.Files() {
			files = append(files, f.Path)
		}
		localized, err := in.Localizer.Localize(files)
		timer.End(locIdx, fmt.Sprintf("localized=%d", len(localized)))
		if err != nil {
			return Result{Status: Error}, fmt.Errorf("localize: %w", err)
		}
		if len(localized) == 0 {
			return Result{Status: Failure}, nil
		}
	}

	ingestIdx := timer.Begin("ingest")
	apps, err := ingest.Load(ctx, in.CandidateJSON)
	timer.End(ingestIdx, fmt.Sprintf("applications=%d", len(apps)))
	if err != nil {
		return Result{Status: Error}, fmt.Errorf("load candidate locations: %w", err)
	}

	typeIdx := timer.Begin("infer_types")
	for _, app := range apps {
		expected := expr.Any
		if app.Context == schema.Condition {
			expected = expr.Boolean
		}
		corrected, err := expr.CorrectTypes(app.Original, expected)
		if err != nil {
			return Result{Status: Error}, &diagx.TypeError{AppID: app.AppID, Err: err}
		}
		app.Original = corrected
	}
	timer.End(typeIdx, "")

	var cache *spacecache.Cache
	cacheKey := spacecache.Sum(in.CandidateJSON)
	if in.Cfg.DataDir != "" {
		cache, err = spacecache.Open(filepath.Join(in.Cfg.DataDir, "search-space"))
		if err != nil {
			return Result{Status: Error}, &diagx.IoError{Path: in.Cfg.DataDir, Err: err}
		}
	}

	genIdx := timer.Begin("generate_search_space")
	var searchSpace []patch.Patch
	cacheHit := false
	if cache != nil {
		searchSpace, cacheHit, err = cache.Get(cacheKey, apps)
		if err != nil {
			return Result{Status: Error}, fmt.Errorf("read search-space cache: %w", err)
		}
	}
	if !cacheHit {
		searchSpace, err = synth.Generate(apps)
		if err != nil {
			timer.End(genIdx, "")
			return Result{Status: Error}, fmt.Errorf("generate search space: %w", err)
		}
		prioritize.Prioritize(searchSpace, in.Cfg, nil)
		if cache != nil {
			if err := cache.Put(cacheKey, searchSpace); err != nil {
				return Result{Status: Error}, fmt.Errorf("write search-space cache: %w", err)
			}
		}
	}
	timer.End(genIdx, fmt.Sprintf("size=%d cache_hit=%v", len(searchSpace), cacheHit))

	if len(searchSpace) > 0 {
		runtimeIdx := timer.Begin("build_with_runtime")
		artifact := codegen.Generate(searchSpace)
		err := in.Project.BuildWithRuntime(ctx, artifact)
		timer.End(runtimeIdx, "")
		if err != nil {
			return Result{Status: Error}, &diagx.BuildError{What: "build with runtime", Err: err}
		}
	}

	runID := ingest.NewRunID()
	runDataDir := filepath.Join(in.Cfg.DataDir, "patch-coverage", runID)
	if err := os.MkdirAll(runDataDir, 0o755); err != nil {
		return Result{Status: Error}, &diagx.IoError{Path: runDataDir, Err: err}
	}

	partitionable := search.BuildPartitionable(searchSpace)
	engine := search.New(in.Tests, in.Oracle, in.Cfg, runDataDir, partitionable, in.RelatedTestIndex, in.Project.Files(), tracer, in.Progress)

	searchIdx := timer.Begin("search")
	plausible, fixLocations, err := findPlausiblePatches(ctx, engine, searchSpace, in)
	timer.End(searchIdx, fmt.Sprintf("plausible=%d fix_locations=%d", len(plausible), len(fixLocations)))
	if err != nil {
		return Result{Status: Error}, err
	}

	if in.Cfg.ValidatePatches && in.Cfg.GenerateAll && len(plausible) > 0 {
		validIdx := timer.Begin("validate")
		plausible, err = Validate(ctx, in.Project, in.Oracle, in.Tests, plausible)
		timer.End(validIdx, fmt.Sprintf("valid=%d", len(plausible)))
		if err != nil {
			return Result{Status: Error}, fmt.Errorf("validate: %w", err)
		}
	}

	if len(plausible) > 0 {
		emitIdx := timer.Begin("emit")
		err := search.EmitAll(ctx, in.Project, plausible, in.OutputDir, in.Cfg.OutputOnePerLocation)
		timer.End(emitIdx, "")
		if err != nil {
			return Result{Status: Error}, fmt.Errorf("emit diffs: %w", err)
		}
	}

	status := Failure
	if len(plausible) > 0 {
		status = Success
	}
	return Result{
		Status:     status,
		RunID:      runID,
		Plausible:  plausible,
		SearchSize: len(searchSpace),
		Stat:       engine.Statistics(),
		Timings:    timer.Report(),
	}, nil
}

// findPlausiblePatches drives the outer "generate plausible patches" loop
// from Repair.cpp: repeatedly call findNext, and for each hit either
// validate-then-stop (single-best-patch mode) or collect-and-continue
// (generateAll mode).
func findPlausiblePatches(ctx context.Context, engine *search.Engine, searchSpace []patch.Patch, in Inputs) ([]patch.Patch, map[uint]struct{}, error) {
	tracer := in.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	var plausible []patch.Patch
	fixLocations := make(map[uint]struct{})
	moreThanOneFound := make(map[uint]struct{})

	last := 0
	for last < len(searchSpace) {
		idx, err := engine.FindNextFrom(ctx, searchSpace, last)
		if err != nil {
			return nil, nil, err
		}
		in.emitExplore(idx, len(searchSpace))
		if idx == len(searchSpace) {
			break
		}

		if in.Cfg.OutputTop > 0 && len(plausible) >= in.Cfg.OutputTop {
			break
		}

		candidate := searchSpace[idx]

		if _, dup := fixLocations[candidate.App.AppID]; dup {
			if in.Cfg.Verbose {
				trace.Begin(tracer, trace.ScopeCandidate, "more_patches_at_location", 0).End(fmt.Sprintf("appId=%d", candidate.App.AppID))
			}
			moreThanOneFound[candidate.App.AppID] = struct{}{}
		} else if in.Cfg.Verbose {
			trace.Begin(tracer, trace.ScopeCandidate, "plausible_patch", 0).End(fmt.Sprintf("appId=%d id=%s", candidate.App.AppID, candidate.ID))
		}

		if !in.Cfg.GenerateAll {
			valid := true
			if in.Cfg.ValidatePatches {
				valid, _ = validateOne(ctx, in.Project, in.Oracle, in.Tests, candidate)
			}
			if valid {
				fixLocations[candidate.App.AppID] = struct{}{}
				plausible = append(plausible, candidate)
				in.emitFound(idx)
				break
			}
		} else {
			fixLocations[candidate.App.AppID] = struct{}{}
			plausible = append(plausible, candidate)
			in.emitFound(idx)
		}

		last = idx + 1
		if in.Cfg.PatchPrioritization == config.SemanticDiff && last < len(searchSpace) {
			prioritize.Prioritize(searchSpace[last:], in.Cfg, engine.CoverageSet())
		}
	}

	return plausible, fixLocations, nil
}

func (in Inputs) emitExplore(candidate, total int) {
	if in.Progress == nil {
		return
	}
	in.Progress <- tui.Event{Kind: tui.EventExplore, Candidate: candidate, Total: total}
}

func (in Inputs) emitFound(candidate int) {
	if in.Progress == nil {
		return
	}
	in.Progress <- tui.Event{Kind: tui.EventFound, Candidate: candidate}
}

func (in Inputs) closeProgress() {
	if in.Progress != nil {
		close(in.Progress)
	}
}
