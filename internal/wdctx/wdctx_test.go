package wdctx

import (
	"os"
	"testing"
)

func TestPushDirRestoresOnPop(t *testing.T) {
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	tmp := t.TempDir()

	restore, err := PushDir(tmp)
	if err != nil {
		t.Fatalf("PushDir: %v", err)
	}
	cur, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd after push: %v", err)
	}
	if !sameDir(cur, tmp) {
		t.Fatalf("expected cwd %s, got %s", tmp, cur)
	}

	if err := restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	cur, err = os.Getwd()
	if err != nil {
		t.Fatalf("Getwd after restore: %v", err)
	}
	if !sameDir(cur, original) {
		t.Fatalf("expected cwd restored to %s, got %s", original, cur)
	}
}

func sameDir(a, b string) bool {
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return os.SameFile(infoA, infoB)
}

func TestPushEnvRestoresUnsetVariable(t *testing.T) {
	const key = "CORRIGO_WDCTX_TEST_VAR"
	os.Unsetenv(key)

	restore, err := PushEnv(map[string]string{key: "1"})
	if err != nil {
		t.Fatalf("PushEnv: %v", err)
	}
	if v := os.Getenv(key); v != "1" {
		t.Fatalf("expected %s=1, got %q", key, v)
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Fatalf("expected %s to be unset after restore", key)
	}
}

func TestPushEnvRestoresPriorValue(t *testing.T) {
	const key = "CORRIGO_WDCTX_TEST_VAR2"
	os.Setenv(key, "original")
	defer os.Unsetenv(key)

	restore, err := PushEnv(map[string]string{key: "changed"})
	if err != nil {
		t.Fatalf("PushEnv: %v", err)
	}
	restore()
	if v := os.Getenv(key); v != "original" {
		t.Fatalf("expected %s restored to original, got %q", key, v)
	}
}
