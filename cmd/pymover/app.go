package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pymover/internal/config"
	"pymover/internal/core/errors"
	"pymover/internal/journal"
	"pymover/internal/modpath"
	"pymover/internal/mover"
	"pymover/internal/rewrite"
)

type App struct {
	cfg      *config.Config
	mover    *mover.Mover
	repoRoot string
}

func NewApp(cfg *config.Config, root string) (*App, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidation, "determine working directory")
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "resolve repository root")
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.CodeValidation,
			"repository root %s does not exist or is not a directory", abs)
	}

	return &App{cfg: cfg, mover: mover.New(cfg), repoRoot: abs}, nil
}

// resolve interprets a path argument relative to the repository root unless
// it is absolute, and normalizes the result.
func (a *App) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.repoRoot, path)
}

func (a *App) MoveFile(src, dst string) error {
	srcPath := a.resolve(src)
	dstPath := a.resolve(dst)

	ext := filepath.Ext(srcPath)
	if ext != ".py" && ext != ".pyw" {
		return errors.New(errors.CodeValidation, "move-file expects SRC to be a Python source file")
	}

	// A destination that is an existing directory, or spelled with a
	// trailing separator, means "move into": append the source file name.
	destIsDirHint := strings.HasSuffix(dst, "/") || strings.HasSuffix(dst, string(os.PathSeparator))
	if info, err := os.Stat(dstPath); (err == nil && info.IsDir()) || destIsDirHint {
		dstPath = filepath.Join(dstPath, filepath.Base(srcPath))
	}

	a.announce(srcPath, dstPath)
	res, err := a.mover.MoveFile(srcPath, dstPath, a.repoRoot)
	if err != nil {
		return err
	}
	a.record(journal.KindMoveFile, res)
	a.printSummary(res)
	return nil
}

func (a *App) MoveFolder(src, dst string) error {
	srcPath := a.resolve(src)
	dstPath := a.resolve(dst)

	a.announce(srcPath, dstPath)
	res, err := a.mover.MoveFolder(srcPath, dstPath, a.repoRoot)
	if err != nil {
		return err
	}
	a.record(journal.KindMoveFolder, res)
	a.printSummary(res)
	return nil
}

// RewriteImports runs a standalone rewrite pass for an explicit module-path
// pair, without touching the filesystem layout.
func (a *App) RewriteImports(oldModule, newModule string, excludes []string) error {
	oldPath, err := parseModule(oldModule)
	if err != nil {
		return err
	}
	newPath, err := parseModule(newModule)
	if err != nil {
		return err
	}

	excludeSet := make(map[string]struct{}, len(excludes))
	for _, p := range excludes {
		excludeSet[filepath.Clean(a.resolve(p))] = struct{}{}
	}

	fmt.Println(statusStyle.Render(
		fmt.Sprintf("Rewriting imports %s -> %s under %s", oldPath.Dotted(), newPath.Dotted(), a.repoRoot)))
	res, err := a.mover.UpdateImports(a.repoRoot, rewrite.MoveSpec{Old: oldPath, New: newPath}, excludeSet)
	if err != nil {
		return err
	}
	a.record(journal.KindRewrite, res)
	a.printSummary(res)
	return nil
}

func (a *App) ShowJournal() error {
	if a.cfg.Journal.Path == "" {
		return errors.New(errors.CodeValidation, "no journal configured; set [journal] path in pymover.toml")
	}
	store, err := journal.Open(a.journalPath())
	if err != nil {
		return err
	}
	defer store.Close()

	ops, err := store.Recent(20)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Println(statusStyle.Render("journal is empty"))
		return nil
	}
	for _, op := range ops {
		fmt.Println(renderOperation(op))
	}
	return nil
}

func (a *App) journalPath() string {
	path := a.cfg.Journal.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.repoRoot, path)
	}
	return path
}

// record appends to the configured journal; auditing must never break a
// completed move, so failures only warn.
func (a *App) record(kind journal.OperationKind, res *mover.Result) {
	if a.cfg.Journal.Path == "" {
		return
	}
	store, err := journal.Open(a.journalPath())
	if err != nil {
		slog.Warn("failed to open journal", "path", a.journalPath(), "error", err)
		return
	}
	defer store.Close()

	op := journal.Operation{
		Kind:           kind,
		OldModule:      res.OldModule,
		NewModule:      res.NewModule,
		FilesScanned:   res.FilesScanned,
		FilesRewritten: res.FilesRewritten,
		FilesSkipped:   res.FilesSkipped,
		FailureCount:   len(res.Failures),
	}
	if err := store.Append(op); err != nil {
		slog.Warn("failed to append journal entry", "error", err)
	}
}

func (a *App) announce(srcPath, dstPath string) {
	srcRel, dstRel := srcPath, dstPath
	if rel, err := filepath.Rel(a.repoRoot, srcPath); err == nil {
		srcRel = rel
	}
	if rel, err := filepath.Rel(a.repoRoot, dstPath); err == nil {
		dstRel = rel
	}
	fmt.Println(statusStyle.Render(
		fmt.Sprintf("Moving %s to %s and updating imports...", srcRel, dstRel)))
}

func splitExcludes(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseModule(dotted string) (modpath.Path, error) {
	path := modpath.Parse(dotted)
	if path.IsEmpty() {
		return nil, errors.New(errors.CodeValidation, "module path must not be empty")
	}
	for _, part := range path {
		if part == "" {
			return nil, errors.Newf(errors.CodeValidation, "module path %q has an empty component", dotted)
		}
	}
	return path, nil
}
