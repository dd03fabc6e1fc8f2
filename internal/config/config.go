// Package config loads the repair engine's configuration from corrigo.toml
// (spec.md §6), following the same BurntSushi/toml decode-then-validate
// pattern the CLI uses for its own project manifest.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TestPrioritization selects how findNext reorders a location's test list
// after a non-passing execution.
type TestPrioritization uint8

const (
	// Original never reorders relatedTestIndexes.
	Original TestPrioritization = iota
	// MaxFailing moves the offending test to the front on non-PASS.
	MaxFailing
)

func (t TestPrioritization) String() string {
	if t == MaxFailing {
		return "max_failing"
	}
	return "original"
}

// PatchPrioritization selects the cost function the search engine records
// alongside each explored patch.
type PatchPrioritization uint8

const (
	// SyntacticDiff costs a patch by tree-edit distance plus kind bias.
	SyntacticDiff PatchPrioritization = iota
	// SemanticDiff costs a patch by the number of covered lines recorded
	// for it so far (internal/prioritize.SemanticDiff), which requires
	// per-test per-patch Coverage collection.
	SemanticDiff
)

func (p PatchPrioritization) String() string {
	if p == SemanticDiff {
		return "semantic_diff"
	}
	return "syntactic_diff"
}

// Configuration is the closed set of options spec.md §6 names.
type Configuration struct {
	ValueTEQ             bool
	TestPrioritization   TestPrioritization
	PatchPrioritization  PatchPrioritization
	GenerateAll          bool
	OutputTop            int
	OutputOnePerLocation bool
	ValidatePatches      bool
	Verbose              bool
	DataDir              string
	SearchSpaceFile      string
	Dump                 bool
}

// Default returns the configuration the engine runs with when no
// corrigo.toml is given (Load rejects a file without a [repair] table):
// single best patch, syntactic
// prioritization, value-based partitioning and test-order adaptation on.
func Default() Configuration {
	return Configuration{
		ValueTEQ:            true,
		TestPrioritization:  MaxFailing,
		PatchPrioritization: SyntacticDiff,
		DataDir:             ".corrigo",
	}
}

type fileConfig struct {
	Repair repairTable `toml:"repair"`
}

type repairTable struct {
	ValueTEQ             bool   `toml:"value_teq"`
	TestPrioritization   string `toml:"test_prioritization"`
	PatchPrioritization  string `toml:"patch_prioritization"`
	GenerateAll          bool   `toml:"generate_all"`
	OutputTop            int    `toml:"output_top"`
	OutputOnePerLocation bool   `toml:"output_one_per_location"`
	ValidatePatches      bool   `toml:"validate_patches"`
	Verbose              bool   `toml:"verbose"`
	DataDir              string `toml:"data_dir"`
	SearchSpaceFile      string `toml:"search_space_file"`
	Dump                 bool   `toml:"dump"`
}

// Load decodes path (normally corrigo.toml) and validates its required
// [repair] table, the way the CLI validates [package]/[run] in surge.toml.
func Load(path string) (Configuration, error) {
	cfg := Default()
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Configuration{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("repair") {
		return Configuration{}, fmt.Errorf("%s: missing [repair]", path)
	}

	cfg.ValueTEQ = raw.Repair.ValueTEQ
	cfg.GenerateAll = raw.Repair.GenerateAll
	cfg.OutputTop = raw.Repair.OutputTop
	cfg.OutputOnePerLocation = raw.Repair.OutputOnePerLocation
	cfg.ValidatePatches = raw.Repair.ValidatePatches
	cfg.Verbose = raw.Repair.Verbose
	cfg.Dump = raw.Repair.Dump
	if strings.TrimSpace(raw.Repair.DataDir) != "" {
		cfg.DataDir = raw.Repair.DataDir
	}
	cfg.SearchSpaceFile = raw.Repair.SearchSpaceFile

	if meta.IsDefined("repair", "test_prioritization") {
		tp, err := parseTestPrioritization(raw.Repair.TestPrioritization)
		if err != nil {
			return Configuration{}, fmt.Errorf("%s: %w", path, err)
		}
		cfg.TestPrioritization = tp
	}
	if meta.IsDefined("repair", "patch_prioritization") {
		pp, err := parsePatchPrioritization(raw.Repair.PatchPrioritization)
		if err != nil {
			return Configuration{}, fmt.Errorf("%s: %w", path, err)
		}
		cfg.PatchPrioritization = pp
	}

	return cfg, nil
}

func parseTestPrioritization(s string) (TestPrioritization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "original":
		return Original, nil
	case "max_failing", "maxfailing":
		return MaxFailing, nil
	default:
		return 0, fmt.Errorf("unknown test_prioritization %q", s)
	}
}

func parsePatchPrioritization(s string) (PatchPrioritization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "syntactic_diff", "syntacticdiff":
		return SyntacticDiff, nil
	case "semantic_diff", "semanticdiff":
		return SemanticDiff, nil
	default:
		return 0, fmt.Errorf("unknown patch_prioritization %q", s)
	}
}
