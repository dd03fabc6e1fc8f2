// Package project declares the collaborator contract for the build,
// apply, and restore mechanics of the project under repair. Build-command
// inference is out of scope (spec.md §1), and the actual compiler
// invocation lives outside this package (cmd/corrigo's shellProject is the
// implementation the CLI uses); only the shape every caller in this module
// needs is specified here.
package project

import (
	"context"

	"corrigo/internal/codegen"
	"corrigo/internal/patch"
)

// File identifies one instrumented source file by its project-relative
// path and the FileID that Location.FileID refers to.
type File struct {
	Path   string
	FileID uint
}

// Project is the external collaborator that knows how to build the
// project, apply a patch to its source tree, and restore the originals.
// internal/driver and internal/search.EmitAll (which the driver calls) are
// its callers; neither reaches into a project's filesystem state directly.
type Project interface {
	// InitialBuild compiles the project as checked out. compiled reports
	// whether the build succeeded and commandsInferred whether compile
	// commands were available; internal/driver reports any non-nil err as
	// a BuildError, whether or not a usable artifact resulted.
	InitialBuild(ctx context.Context) (compiled bool, commandsInferred bool, err error)
	// BuildWithRuntime writes runtime's generated source/header (spec.md
	// §4.3) where the instrumented project expects them and rebuilds.
	BuildWithRuntime(ctx context.Context, runtime codegen.Artifact) error
	Files() []File

	// ApplyPatch rewrites the source file named by p's location to embed
	// p.Modified in place of p.App.Original.
	ApplyPatch(p patch.Patch) error
	// Restore reverts every file ApplyPatch touched back to its checked-out
	// contents.
	Restore() error

	// Diff renders a unified diff of file against its checked-out original.
	Diff(file File) (string, error)
}
