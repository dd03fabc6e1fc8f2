package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"golang.org/x/term"

	"corrigo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "corrigo",
	Short: "Automated program repair via test-guided patch search",
	Long:  `corrigo generates, prioritizes, and searches a C program's patch space against a test suite`,
}

var (
	timeoutCancel   context.CancelFunc
	timeoutDuration time.Duration
	traceCleanup    func()
)

// main configures the root CLI command and executes it, exiting with
// status 1 if execution fails.
func main() {
	rootCmd.Version = version.VersionString()
	rootCmd.PersistentPreRunE = applyTimeout
	rootCmd.PersistentPostRun = cleanupTimeout

	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("ui", "auto", "progress view (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show phase timing information")
	rootCmd.PersistentFlags().Int("timeout", 0, "command timeout in seconds (0 disables)")

	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr, empty to disable)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "output format (auto|text|ndjson|chrome) - auto detects from file extension")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for trace events")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval (0 to disable, e.g. 1s)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	secs, err := cmd.Root().PersistentFlags().GetInt("timeout")
	if err != nil {
		return fmt.Errorf("failed to read timeout flag: %w", err)
	}

	ctx := cmd.Context()
	if secs > 0 {
		timeoutDuration = time.Duration(secs) * time.Second
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeoutDuration)
		timeoutCancel = cancel

		go func() {
			<-ctx.Done()
			if ctx.Err() == context.DeadlineExceeded {
				fmt.Fprintf(os.Stderr, "corrigo: command timed out after %s\n", timeoutDuration)
				os.Exit(1)
			}
		}()
	}
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return fmt.Errorf("failed to setup tracing: %w", err)
	}
	traceCleanup = cleanup

	return nil
}

func cleanupTimeout(*cobra.Command, []string) {
	if timeoutCancel != nil {
		timeoutCancel()
		timeoutCancel = nil
	}
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
}
