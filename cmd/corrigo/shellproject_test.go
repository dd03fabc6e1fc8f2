package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"corrigo/internal/expr"
	"corrigo/internal/patch"
	"corrigo/internal/project"
	"corrigo/internal/schema"
)

func TestOffsetOfFindsLineColumn(t *testing.T) {
	content := []byte("int a;\nint b;\nint c;\n")
	cases := []struct {
		line, col uint
		want      int
	}{
		{1, 1, 0},
		{2, 1, 7},
		{3, 5, 18},
	}
	for _, tc := range cases {
		got, err := offsetOf(content, tc.line, tc.col)
		if err != nil {
			t.Fatalf("offsetOf(%d,%d): %v", tc.line, tc.col, err)
		}
		if got != tc.want {
			t.Fatalf("offsetOf(%d,%d) = %d, want %d", tc.line, tc.col, got, tc.want)
		}
	}
}

func TestOffsetOfRejectsZeroLine(t *testing.T) {
	if _, err := offsetOf([]byte("x"), 0, 1); err == nil {
		t.Fatalf("expected an error for a zero line number")
	}
}

func TestSpliceSourceReplacesRange(t *testing.T) {
	original := []byte("if (a > b) {\n  return 1;\n}\n")
	loc := schema.Location{BeginLine: 1, BeginColumn: 5, EndLine: 1, EndColumn: 10}
	got, err := spliceSource(original, loc, "a < b")
	if err != nil {
		t.Fatalf("spliceSource: %v", err)
	}
	want := "if (a < b) {\n  return 1;\n}\n"
	if string(got) != want {
		t.Fatalf("spliceSource = %q, want %q", got, want)
	}
}

func TestSpliceSourceRejectsInvertedRange(t *testing.T) {
	original := []byte("abc\n")
	loc := schema.Location{BeginLine: 1, BeginColumn: 3, EndLine: 1, EndColumn: 1}
	if _, err := spliceSource(original, loc, "x"); err == nil {
		t.Fatalf("expected an error for end before begin")
	}
}

func TestShellProjectApplyPatchAndRestore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	if err := os.WriteFile(path, []byte("int v = 1;\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	files := []project.File{{Path: "a.c", FileID: 0}}
	p := newShellProject(dir, "", files)

	loc := schema.Location{FileID: 0, BeginLine: 1, BeginColumn: 9, EndLine: 1, EndColumn: 9}
	app := &schema.SchemaApplication{AppID: 1, Location: loc, Original: expr.IntegerExpression(1)}
	pat := patch.Patch{ID: patch.ID{Base: 0}, App: app, Modified: expr.IntegerExpression(2)}
	if err := p.ApplyPatch(pat); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	patched, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read patched file: %v", err)
	}
	if string(patched) == "int v = 1;\n" {
		t.Fatalf("expected file to be rewritten, got unchanged content")
	}

	if err := p.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(restored) != "int v = 1;\n" {
		t.Fatalf("Restore left content %q, want original", restored)
	}
}

func TestShellProjectInitialBuildSkipsEmptyCommand(t *testing.T) {
	p := newShellProject(t.TempDir(), "", nil)
	compiled, inferred, err := p.InitialBuild(context.Background())
	if err != nil {
		t.Fatalf("InitialBuild: %v", err)
	}
	if compiled || inferred {
		t.Fatalf("InitialBuild() = (%v, %v), want (false, false) with no build command", compiled, inferred)
	}
}
