package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"corrigo/internal/config"
	"corrigo/internal/driver"
	"corrigo/internal/project"
	"corrigo/internal/report"
	"corrigo/internal/trace"
	"corrigo/internal/tui"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Search for a patch that makes every given test pass",
	Long:  "Generate, prioritize, and search a project's patch space against its tests, emitting a diff for each plausible patch found.",
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().String("root", ".", "project root directory")
	repairCmd.Flags().String("build-cmd", "", "shell command that builds the project, run in --root")
	repairCmd.Flags().StringSlice("file", nil, "instrumented source file, project-relative (repeatable; position is its FileID)")
	repairCmd.Flags().String("candidates", "", "path to the candidate-locations JSON document (spec.md §6)")
	repairCmd.Flags().StringSlice("test", nil, "test identifier to run (repeatable)")
	repairCmd.Flags().String("driver", "", "test driver executable")
	repairCmd.Flags().Duration("test-timeout", 10*time.Second, "per-test execution timeout (0 disables)")
	repairCmd.Flags().String("config", "", "path to corrigo.toml ([repair] table); defaults built in when omitted")
	repairCmd.Flags().String("output", "patches", "directory (or file, in single-patch mode) patches are written to")

	repairCmd.MarkFlagRequired("candidates")
	repairCmd.MarkFlagRequired("driver")
	repairCmd.MarkFlagRequired("test")
}

func runRepair(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	buildCmd, _ := cmd.Flags().GetString("build-cmd")
	fileArgs, _ := cmd.Flags().GetStringSlice("file")
	candidatesPath, _ := cmd.Flags().GetString("candidates")
	tests, _ := cmd.Flags().GetStringSlice("test")
	driverPath, _ := cmd.Flags().GetString("driver")
	testTimeout, _ := cmd.Flags().GetDuration("test-timeout")
	configPath, _ := cmd.Flags().GetString("config")
	outputDir, _ := cmd.Flags().GetString("output")
	uiModeStr, _ := cmd.Root().PersistentFlags().GetString("ui")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	candidateJSON, err := os.ReadFile(candidatesPath)
	if err != nil {
		return fmt.Errorf("read candidates: %w", err)
	}

	files := make([]project.File, len(fileArgs))
	for i, p := range fileArgs {
		files[i] = project.File{Path: p, FileID: uint(i)}
	}

	proj := newShellProject(root, buildCmd, files)
	testOracle := &execOracle{driver: driverPath, timeout: testTimeout}

	uiMode, err := tui.ParseMode(uiModeStr)
	if err != nil {
		return err
	}

	var progressCh chan tui.Event
	var program *tea.Program
	if tui.ShouldRender(uiMode) {
		progressCh = make(chan tui.Event, 256)
		model := tui.NewProgressModel("corrigo repair", progressCh)
		program = tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
	}

	in := driver.Inputs{
		Project:       proj,
		Oracle:        testOracle,
		Tests:         tests,
		CandidateJSON: candidateJSON,
		Cfg:           cfg,
		OutputDir:     outputDir,
		Tracer:        trace.FromContext(cmd.Context()),
	}
	if progressCh != nil {
		in.Progress = progressCh
	}

	type outcome struct {
		result driver.Result
		err    error
	}
	outcomeCh := make(chan outcome, 1)
	go func() {
		res, err := driver.Repair(cmd.Context(), in)
		outcomeCh <- outcome{result: res, err: err}
	}()

	if program != nil {
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("progress view: %w", err)
		}
	}
	out := <-outcomeCh

	if !quiet {
		printResult(cmd, out.result)
	}
	if showTimings {
		printTimings(cmd, out.result)
	}
	if out.err != nil {
		return out.err
	}

	switch out.result.Status {
	case driver.Success:
		return nil
	case driver.NoNegativeTests:
		return fmt.Errorf("every supplied test already passes; nothing to repair")
	default:
		return fmt.Errorf("repair %s: searched %d candidates, found no plausible patch", out.result.Status, out.result.SearchSize)
	}
}

func printResult(cmd *cobra.Command, res driver.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "status: %s  run: %s  searched: %d  explored: %d  executed: %d\n",
		res.Status, res.RunID, res.SearchSize, res.Stat.ExplorationCounter, res.Stat.ExecutionCounter)
	if len(res.Plausible) > 0 {
		rows := [][]report.Column{{{Header: "index", Value: ""}, {Header: "appId", Value: ""}, {Header: "patchId", Value: ""}}}
		for i, p := range res.Plausible {
			rows = append(rows, []report.Column{
				{Header: "index", Value: strconv.Itoa(i)},
				{Header: "appId", Value: strconv.FormatUint(uint64(p.App.AppID), 10)},
				{Header: "patchId", Value: p.ID.String()},
			})
		}
		report.FormatTable(out, rows)
	}
}

func printTimings(cmd *cobra.Command, res driver.Result) {
	out := cmd.OutOrStdout()
	var b strings.Builder
	for _, phase := range res.Timings.Phases {
		fmt.Fprintf(&b, "  %-24s %7.2f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			fmt.Fprintf(&b, "  // %s", phase.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-24s %7.2f ms\n", "total", res.Timings.TotalMS)
	fmt.Fprintf(out, "timings:\n%s", b.String())
}
