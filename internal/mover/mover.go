// Package mover coordinates filesystem relocations with the repository-wide
// import rewrite.
package mover

import (
	"os"
	"path/filepath"

	"pymover/internal/config"
	"pymover/internal/core/errors"
	"pymover/internal/modpath"
	"pymover/internal/parser"
	"pymover/internal/rewrite"
	"pymover/internal/shared/util"
)

type Mover struct {
	cfg    *config.Config
	parser *parser.Parser
}

// Result summarizes one completed operation for reporting and journaling.
type Result struct {
	OldModule      string
	NewModule      string
	FilesScanned   int
	FilesRewritten int
	FilesSkipped   int
	Failures       []FileFailure
}

// FileFailure records a per-file write problem; it never aborts the batch.
type FileFailure struct {
	Path string
	Err  error
}

func New(cfg *config.Config) *Mover {
	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterExtractor("python", &parser.PythonExtractor{})
	return &Mover{cfg: cfg, parser: p}
}

// MoveFile relocates a single source file and rewrites imports across the
// repository. All preconditions are checked before the filesystem move, so
// a failure here never leaves the repository partially moved.
func (m *Mover) MoveFile(src, dst, repoRoot string) (*Result, error) {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil, errors.Newf(errors.CodeNotFound, "source file %s does not exist", src)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "stat source")
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.CodeValidation, "source path %s must be a file", src)
	}
	if err := checkInside(src, repoRoot); err != nil {
		return nil, err
	}

	// A destination without a suffix inherits the source's so the module
	// semantics survive the move.
	if filepath.Ext(dst) == "" {
		dst += filepath.Ext(src)
	}
	if err := checkInside(dst, repoRoot); err != nil {
		return nil, err
	}
	if _, err := os.Stat(dst); err == nil {
		return nil, errors.Newf(errors.CodeConflict, "destination %s already exists", dst)
	}

	// Old module path must come from the pre-move location.
	oldModule, err := modpath.FromFile(repoRoot, src)
	if err != nil {
		return nil, err
	}
	newModule, err := modpath.FromFile(repoRoot, dst)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CodeWrite, "create destination directory")
	}
	if err := os.Rename(src, dst); err != nil {
		return nil, errors.Wrap(err, errors.CodeWrite, "move file")
	}

	// The moved file's own body must not be rewritten as if it referenced
	// itself, so it is excluded from the pass.
	exclude := map[string]struct{}{filepath.Clean(dst): {}}
	return m.UpdateImports(repoRoot, rewrite.MoveSpec{Old: oldModule, New: newModule}, exclude)
}

// MoveFolder relocates an entire directory tree and rewrites imports.
// Intra-subtree relative imports stay valid on their own since a whole-tree
// move does not change their ascent level or suffix, so no exclusions apply.
func (m *Mover) MoveFolder(srcDir, dstDir, repoRoot string) (*Result, error) {
	info, err := os.Stat(srcDir)
	if os.IsNotExist(err) {
		return nil, errors.Newf(errors.CodeNotFound, "source directory %s does not exist", srcDir)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "stat source")
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.CodeValidation, "source path %s must be a directory", srcDir)
	}
	if err := checkInside(srcDir, repoRoot); err != nil {
		return nil, err
	}
	if err := checkInside(dstDir, repoRoot); err != nil {
		return nil, err
	}
	if _, err := os.Stat(dstDir); err == nil {
		return nil, errors.Newf(errors.CodeConflict, "destination %s already exists", dstDir)
	}

	oldModule, err := modpath.FromFile(repoRoot, srcDir)
	if err != nil {
		return nil, err
	}
	newModule, err := modpath.FromFile(repoRoot, dstDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dstDir), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CodeWrite, "create destination directory")
	}
	if err := os.Rename(srcDir, dstDir); err != nil {
		return nil, errors.Wrap(err, errors.CodeWrite, "move directory")
	}

	return m.UpdateImports(repoRoot, rewrite.MoveSpec{Old: oldModule, New: newModule}, nil)
}

func checkInside(path, repoRoot string) error {
	if !util.IsStrictlyInside(filepath.ToSlash(path), filepath.ToSlash(repoRoot)) {
		return errors.Newf(errors.CodeValidation,
			"path %s is not inside repository root %s", path, repoRoot)
	}
	return nil
}
