package search

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"corrigo/internal/codegen"
	"corrigo/internal/expr"
	"corrigo/internal/patch"
	"corrigo/internal/project"
	"corrigo/internal/schema"
)

type fakeProject struct {
	mu      sync.Mutex
	files   []project.File
	applied []patch.ID
}

func (p *fakeProject) InitialBuild(ctx context.Context) (bool, bool, error) { return true, true, nil }
func (p *fakeProject) BuildWithRuntime(ctx context.Context, runtime codegen.Artifact) error {
	return nil
}
func (p *fakeProject) Files() []project.File                                    { return p.files }

func (p *fakeProject) ApplyPatch(pat patch.Patch) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applied = append(p.applied, pat.ID)
	return nil
}

func (p *fakeProject) Restore() error { return nil }

func (p *fakeProject) Diff(file project.File) (string, error) {
	return "--- a/" + file.Path + "\n+++ b/" + file.Path + "\n", nil
}

func TestEmitAllWritesOneFilePerPatch(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1, Location: schema.Location{FileID: 0}, Original: expr.IntegerExpression(0)}
	proj := &fakeProject{files: []project.File{{Path: "a.c", FileID: 0}}}
	plausible := []patch.Patch{
		{ID: patch.ID{Base: 0}, App: app, Modified: expr.IntegerExpression(1)},
		{ID: patch.ID{Base: 1}, App: app, Modified: expr.IntegerExpression(2)},
	}

	dir := t.TempDir()
	if err := EmitAll(context.Background(), proj, plausible, dir, false); err != nil {
		t.Fatalf("EmitAll: %v", err)
	}

	for i := range plausible {
		path := filepath.Join(dir, "0.patch")
		if i == 1 {
			path = filepath.Join(dir, "1.patch")
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
	if len(proj.applied) != 2 {
		t.Fatalf("expected 2 applied patches, got %d", len(proj.applied))
	}
}

func TestEmitAllOnePerLocationSkipsDuplicates(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1, Location: schema.Location{FileID: 0}, Original: expr.IntegerExpression(0)}
	proj := &fakeProject{files: []project.File{{Path: "a.c", FileID: 0}}}
	plausible := []patch.Patch{
		{ID: patch.ID{Base: 0}, App: app, Modified: expr.IntegerExpression(1)},
		{ID: patch.ID{Base: 1}, App: app, Modified: expr.IntegerExpression(2)},
	}

	dir := t.TempDir()
	if err := EmitAll(context.Background(), proj, plausible, dir, true); err != nil {
		t.Fatalf("EmitAll: %v", err)
	}
	if len(proj.applied) != 1 {
		t.Fatalf("expected only the first patch applied for a shared location, got %d", len(proj.applied))
	}
}

func TestEmitAllNoopOnEmptyInput(t *testing.T) {
	proj := &fakeProject{}
	dir := filepath.Join(t.TempDir(), "nonexistent")
	if err := EmitAll(context.Background(), proj, nil, dir, false); err != nil {
		t.Fatalf("EmitAll: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected no directory to be created for an empty patch list")
	}
}
