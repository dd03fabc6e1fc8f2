package driver

import (
	"context"
	"testing"

	"corrigo/internal/codegen"
	"corrigo/internal/config"
	"corrigo/internal/oracle"
	"corrigo/internal/patch"
	"corrigo/internal/project"
)

type stubProject struct {
	files []project.File
}

func (p *stubProject) InitialBuild(ctx context.Context) (bool, bool, error) { return true, true, nil }
func (p *stubProject) BuildWithRuntime(ctx context.Context, runtime codegen.Artifact) error {
	return nil
}
func (p *stubProject) Files() []project.File                                    { return p.files }
func (p *stubProject) ApplyPatch(patch.Patch) error                              { return nil }
func (p *stubProject) Restore() error                                           { return nil }
func (p *stubProject) Diff(project.File) (string, error)                       { return "", nil }

type stubOracle struct{ ok bool }

func (o *stubOracle) DriverIsOK() bool { return o.ok }
func (o *stubOracle) Execute(ctx context.Context, test string) (oracle.Status, error) {
	return oracle.Pass, nil
}

func TestRepairEmptySearchSpaceReturnsFailure(t *testing.T) {
	in := Inputs{
		Project:       &stubProject{},
		Oracle:        &stubOracle{ok: true},
		Tests:         []string{"t1"},
		CandidateJSON: []byte(`[]`),
		Cfg:           config.Default(),
	}
	result, err := Repair(context.Background(), in)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if result.Status != Failure {
		t.Fatalf("expected Failure on an empty search space, got %v", result.Status)
	}
	if result.Stat.ExecutionCounter != 0 {
		t.Fatalf("expected no test executions over an empty search space, got %d", result.Stat.ExecutionCounter)
	}
}

func TestRepairErrorsWhenDriverNotUsable(t *testing.T) {
	in := Inputs{
		Project:       &stubProject{},
		Oracle:        &stubOracle{ok: false},
		Tests:         []string{"t1"},
		CandidateJSON: []byte(`[]`),
		Cfg:           config.Default(),
	}
	result, err := Repair(context.Background(), in)
	if err == nil {
		t.Fatalf("expected an error when the test driver is not usable")
	}
	if result.Status != Error {
		t.Fatalf("expected Error status, got %v", result.Status)
	}
}
