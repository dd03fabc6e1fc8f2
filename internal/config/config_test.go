package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corrigo.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadRequiresRepairTable(t *testing.T) {
	path := writeTemp(t, "")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing [repair] table")
	}
}

func TestLoadAppliesOverridesOverDefaults(t *testing.T) {
	path := writeTemp(t, `
[repair]
value_teq = false
generate_all = true
test_prioritization = "original"
patch_prioritization = "semantic_diff"
data_dir = "/tmp/corrigo-data"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ValueTEQ {
		t.Fatalf("expected value_teq=false to override default true")
	}
	if !cfg.GenerateAll {
		t.Fatalf("expected generate_all=true")
	}
	if cfg.TestPrioritization != Original {
		t.Fatalf("expected Original test prioritization, got %v", cfg.TestPrioritization)
	}
	if cfg.PatchPrioritization != SemanticDiff {
		t.Fatalf("expected SemanticDiff patch prioritization, got %v", cfg.PatchPrioritization)
	}
	if cfg.DataDir != "/tmp/corrigo-data" {
		t.Fatalf("expected overridden data dir, got %q", cfg.DataDir)
	}
}

func TestLoadRejectsUnknownPrioritization(t *testing.T) {
	path := writeTemp(t, `
[repair]
test_prioritization = "bogus"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown test_prioritization")
	}
}

func TestDefaultUsesMaxFailingAndValueTEQ(t *testing.T) {
	cfg := Default()
	if !cfg.ValueTEQ {
		t.Fatalf("expected default ValueTEQ=true")
	}
	if cfg.TestPrioritization != MaxFailing {
		t.Fatalf("expected default MaxFailing")
	}
}
