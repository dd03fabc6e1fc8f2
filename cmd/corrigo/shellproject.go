package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"corrigo/internal/codegen"
	"corrigo/internal/patch"
	"corrigo/internal/project"
	"corrigo/internal/schema"
)

// shellProject is corrigo repair's default project.Project: it shells out
// to buildCmd for compilation and rewrites instrumented source files in
// place for ApplyPatch, backing up originals the way f1x's own
// Project::backupFiles/restoreFiles do (original_source/lib/Project.h).
type shellProject struct {
	root     string
	buildCmd string
	files    []project.File
	backups  map[string][]byte
}

func newShellProject(root, buildCmd string, files []project.File) *shellProject {
	return &shellProject{root: root, buildCmd: buildCmd, files: files, backups: make(map[string][]byte)}
}

func (p *shellProject) InitialBuild(ctx context.Context) (bool, bool, error) {
	if strings.TrimSpace(p.buildCmd) == "" {
		return false, false, nil
	}
	err := p.run(ctx, p.buildCmd)
	return err == nil, true, err
}

func (p *shellProject) BuildWithRuntime(ctx context.Context, runtime codegen.Artifact) error {
	headerPath := filepath.Join(p.root, "f1x_runtime.h")
	if err := os.WriteFile(headerPath, []byte(runtime.Header), 0o644); err != nil {
		return fmt.Errorf("write runtime header: %w", err)
	}
	sourcePath := filepath.Join(p.root, "f1x_runtime.c")
	if err := os.WriteFile(sourcePath, []byte(runtime.Source), 0o644); err != nil {
		return fmt.Errorf("write runtime source: %w", err)
	}
	return p.run(ctx, p.buildCmd)
}

func (p *shellProject) Files() []project.File { return p.files }

func (p *shellProject) ApplyPatch(pat patch.Patch) error {
	if int(pat.App.Location.FileID) >= len(p.files) {
		return fmt.Errorf("patch references unknown file id %d", pat.App.Location.FileID)
	}
	file := p.files[pat.App.Location.FileID]
	path := filepath.Join(p.root, file.Path)

	if _, saved := p.backups[path]; !saved {
		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
		p.backups[path] = original
	}

	rewritten, err := spliceSource(p.backups[path], pat.App.Location, codegen.RenderExpr(pat.Modified))
	if err != nil {
		return fmt.Errorf("splice %s: %w", path, err)
	}
	return os.WriteFile(path, rewritten, 0o644)
}

func (p *shellProject) Restore() error {
	var firstErr error
	for path, original := range p.backups {
		if err := os.WriteFile(path, original, 0o644); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *shellProject) Diff(file project.File) (string, error) {
	path := filepath.Join(p.root, file.Path)
	original, ok := p.backups[path]
	if !ok {
		return "", nil
	}
	current, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return unifiedDiff(file.Path, string(original), string(current)), nil
}

func (p *shellProject) run(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = p.root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", command, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// spliceSource replaces the byte range loc covers in original with
// replacement, converting loc's 1-based line/column coordinates to byte
// offsets first.
func spliceSource(original []byte, loc schema.Location, replacement string) ([]byte, error) {
	begin, err := offsetOf(original, loc.BeginLine, loc.BeginColumn)
	if err != nil {
		return nil, err
	}
	end, err := offsetOf(original, loc.EndLine, loc.EndColumn)
	if err != nil {
		return nil, err
	}
	if end < begin {
		return nil, fmt.Errorf("location %s has end before begin", loc)
	}
	if end > len(original) {
		return nil, fmt.Errorf("location %s is past end of file", loc)
	}

	var out bytes.Buffer
	out.Write(original[:begin])
	out.WriteString(replacement)
	out.Write(original[end:])
	return out.Bytes(), nil
}

func offsetOf(content []byte, line, column uint) (int, error) {
	if line == 0 {
		return 0, fmt.Errorf("line numbers are 1-based, got 0")
	}
	offset := 0
	currentLine := uint(1)
	for offset < len(content) {
		if currentLine == line {
			return offset + int(column) - 1, nil
		}
		if content[offset] == '\n' {
			currentLine++
		}
		offset++
	}
	if currentLine == line {
		return offset + int(column) - 1, nil
	}
	return 0, fmt.Errorf("line %d column %d is past end of file", line, column)
}
