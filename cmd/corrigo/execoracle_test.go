package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"corrigo/internal/oracle"
)

func writeDriverScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "driver.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write driver script: %v", err)
	}
	return path
}

func TestExecOracleDriverIsOKRequiresExecutableFile(t *testing.T) {
	missing := &execOracle{driver: filepath.Join(t.TempDir(), "nonexistent"), timeout: time.Second}
	if missing.DriverIsOK() {
		t.Fatalf("expected DriverIsOK to fail for a missing driver")
	}

	script := writeDriverScript(t, "exit 0\n")
	ok := &execOracle{driver: script, timeout: time.Second}
	if !ok.DriverIsOK() {
		t.Fatalf("expected DriverIsOK to succeed for an executable driver")
	}
}

func TestExecOracleExecuteMapsExitCodeToFail(t *testing.T) {
	script := writeDriverScript(t, "exit 1\n")
	o := &execOracle{driver: script, timeout: time.Second}
	status, err := o.Execute(context.Background(), "some-test")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if status != oracle.Fail {
		t.Fatalf("Execute status = %v, want Fail", status)
	}
}

func TestExecOracleExecuteReportsPass(t *testing.T) {
	script := writeDriverScript(t, "exit 0\n")
	o := &execOracle{driver: script, timeout: time.Second}
	status, err := o.Execute(context.Background(), "some-test")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if status != oracle.Pass {
		t.Fatalf("Execute status = %v, want Pass", status)
	}
}

func TestExecOracleExecuteReportsTimeout(t *testing.T) {
	script := writeDriverScript(t, "sleep 2\n")
	o := &execOracle{driver: script, timeout: 20 * time.Millisecond}
	status, err := o.Execute(context.Background(), "some-test")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if status != oracle.Timeout {
		t.Fatalf("Execute status = %v, want Timeout", status)
	}
}
