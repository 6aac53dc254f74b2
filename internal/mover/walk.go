package mover

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gobwas/glob"

	"pymover/internal/core/errors"
	"pymover/internal/modpath"
	"pymover/internal/rewrite"
)

// UpdateImports runs the rewrite pass over every recognized source file
// under repoRoot, except excluded paths. Each file is processed
// independently: a parse failure skips that file, a write failure is
// recorded, and neither stops the batch.
func (m *Mover) UpdateImports(repoRoot string, spec rewrite.MoveSpec, exclude map[string]struct{}) (*Result, error) {
	result := &Result{
		OldModule: spec.Old.Dotted(),
		NewModule: spec.New.Dotted(),
	}

	dirGlobs, err := compileGlobs(m.cfg.Exclude.Dirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(m.cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	walkErr := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			for _, g := range dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !slices.Contains(m.cfg.Extensions, filepath.Ext(path)) {
			return nil
		}
		for _, g := range fileGlobs {
			if g.Match(base) {
				return nil
			}
		}
		if _, skip := exclude[filepath.Clean(path)]; skip {
			return nil
		}

		result.FilesScanned++
		changed, err := m.rewriteFile(path, repoRoot, spec)
		switch {
		case errors.IsCode(err, errors.CodeParse):
			// Local to the file: skip it and keep going.
			slog.Warn("skipping unparseable file", "path", path, "error", err)
			result.FilesSkipped++
		case err != nil:
			slog.Warn("failed to rewrite file", "path", path, "error", err)
			result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
		case changed:
			result.FilesRewritten++
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrap(walkErr, errors.CodeInternal, "walk repository")
	}

	return result, nil
}

// rewriteFile parses one file, computes its edit list, and writes the
// spliced result back only when the content actually changed.
func (m *Mover) rewriteFile(path, repoRoot string, spec rewrite.MoveSpec) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrap(err, errors.CodeWrite, "read source file")
	}

	file, err := m.parser.ParseFile(path, data)
	if err != nil {
		return false, err
	}

	// Needed only to resolve relative imports; a file whose module path
	// cannot be derived still gets its absolute imports rewritten.
	fileModule, err := modpath.FromFile(repoRoot, path)
	if err != nil {
		fileModule = nil
	}

	edits := rewrite.RewriteFile(file, fileModule, spec)
	if len(edits) == 0 {
		return false, nil
	}

	source := string(data)
	updated := rewrite.Splice(source, edits)
	if updated == source {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, errors.Wrap(err, errors.CodeWrite, "write rewritten file")
	}
	slog.Debug("rewrote imports", "path", path, "edits", len(edits))
	return true, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Newf(errors.CodeValidation, "invalid exclude pattern %q: %v", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
