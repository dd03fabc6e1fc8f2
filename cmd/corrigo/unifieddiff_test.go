package main

import (
	"strings"
	"testing"
)

func TestUnifiedDiffNoChangeIsEmpty(t *testing.T) {
	src := "int x = 1;\nint y = 2;\n"
	got := unifiedDiff("a.c", src, src)
	if got != "" {
		t.Fatalf("unifiedDiff(identical) = %q, want empty", got)
	}
}

func TestUnifiedDiffReportsSingleLineChange(t *testing.T) {
	original := "int x = 1;\nint y = 2;\nint z = 3;\n"
	current := "int x = 1;\nint y = 99;\nint z = 3;\n"
	got := unifiedDiff("a.c", original, current)

	if !strings.Contains(got, "--- a/a.c") || !strings.Contains(got, "+++ b/a.c") {
		t.Fatalf("unifiedDiff missing file headers: %q", got)
	}
	if !strings.Contains(got, "-int y = 2;") {
		t.Fatalf("unifiedDiff missing removed line: %q", got)
	}
	if !strings.Contains(got, "+int y = 99;") {
		t.Fatalf("unifiedDiff missing added line: %q", got)
	}
	if !strings.Contains(got, " int x = 1;") {
		t.Fatalf("unifiedDiff missing unchanged context line: %q", got)
	}
}

func TestUnifiedDiffHandlesAppendedLine(t *testing.T) {
	original := "a\nb\n"
	current := "a\nb\nc\n"
	got := unifiedDiff("f.c", original, current)
	if !strings.Contains(got, "+c") {
		t.Fatalf("unifiedDiff missing appended line: %q", got)
	}
}

func TestLongestCommonSubsequenceMatchesSharedPrefix(t *testing.T) {
	a := []string{"x", "y", "z"}
	b := []string{"x", "y", "w"}
	lcs := longestCommonSubsequence(a, b)
	if len(lcs) != 2 || lcs[0] != "x" || lcs[1] != "y" {
		t.Fatalf("longestCommonSubsequence = %v, want [x y]", lcs)
	}
}
