package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"corrigo/internal/patch"
	"corrigo/internal/project"
)

// EmitAll computes and writes one diff file per plausible patch to
// outputDir, the Go counterpart of the original tool's dumpPatches +
// thread_obj: one fork per patch, joined before returning.
//
// Applying a patch and restoring the project mutate a single shared
// working tree, so that part stays strictly sequential — the original's
// own per-patch apply/restore loop is sequential too, it only forks a
// thread for the external `diff` subprocess once the patched/original
// snapshots are already on disk. Writing each diff's output file has no
// such constraint, so that half of the work is what runs through
// errgroup.
//
// When onePerLocation is true, only the first plausible patch for a given
// SchemaApplication is emitted, matching cfg.outputOnePerLocation.
func EmitAll(ctx context.Context, proj project.Project, plausiblePatches []patch.Patch, outputDir string, onePerLocation bool) error {
	if len(plausiblePatches) == 0 {
		return nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	type diffJob struct {
		index int
		text  string
	}

	seenLocation := make(map[uint]struct{})
	jobs := make([]diffJob, 0, len(plausiblePatches))

	for i, p := range plausiblePatches {
		if onePerLocation {
			if _, dup := seenLocation[p.App.AppID]; dup {
				continue
			}
			seenLocation[p.App.AppID] = struct{}{}
		}

		files := proj.Files()
		fileID := p.App.Location.FileID
		if int(fileID) >= len(files) {
			return fmt.Errorf("patch references unknown file id %d", fileID)
		}
		file := files[fileID]

		if err := proj.ApplyPatch(p); err != nil {
			return fmt.Errorf("apply patch %s: %w", p.ID, err)
		}
		text, diffErr := proj.Diff(file)
		restoreErr := proj.Restore()
		if diffErr != nil {
			return fmt.Errorf("diff patch %s: %w", p.ID, diffErr)
		}
		if restoreErr != nil {
			return fmt.Errorf("restore after patch %s: %w", p.ID, restoreErr)
		}

		jobs = append(jobs, diffJob{index: i, text: text})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(8, len(jobs)))
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			path := filepath.Join(outputDir, fmt.Sprintf("%d.patch", job.index))
			return os.WriteFile(path, []byte(job.text), 0o644)
		})
	}
	return g.Wait()
}
