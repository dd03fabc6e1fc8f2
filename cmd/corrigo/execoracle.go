package main

import (
	"context"
	"os"
	"os/exec"
	"time"

	"corrigo/internal/oracle"
)

// execOracle is corrigo repair's default oracle.TestOracle: it forks
// driver with test as its sole argument, relying on the search engine
// having already pushed the F1X_* environment before Execute runs
// (original_source/lib/Project.h's TestingFramework).
type execOracle struct {
	driver  string
	timeout time.Duration
}

func (o *execOracle) DriverIsOK() bool {
	info, err := os.Stat(o.driver)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}

func (o *execOracle) Execute(ctx context.Context, test string) (oracle.Status, error) {
	runCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, o.driver, test)
	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return oracle.Timeout, nil
	}
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return oracle.Fail, nil
		}
		return 0, err
	}
	return oracle.Pass, nil
}
