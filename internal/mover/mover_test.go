package mover

import (
	"os"
	"path/filepath"
	"testing"

	"pymover/internal/config"
	"pymover/internal/core/errors"
	"pymover/internal/modpath"
	"pymover/internal/rewrite"
)

func newTestMover() *Mover {
	return New(config.Default())
}

func writeFile(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMoveFolderEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/util/helper.py", "def helper():\n    pass\n")
	consumer := writeFile(t, root, "app/consumer.py",
		"from pkg.util import helper\nimport pkg.util\n\nhelper.helper()\n")

	m := newTestMover()
	res, err := m.MoveFolder(filepath.Join(root, "pkg", "util"), filepath.Join(root, "pkg2", "utilities"), root)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(root, "pkg2", "utilities", "helper.py")); err != nil {
		t.Errorf("moved tree missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "pkg", "util")); !os.IsNotExist(err) {
		t.Error("source directory still present")
	}

	got := readFile(t, consumer)
	want := "from pkg2.utilities import helper\nimport pkg2.utilities\n\nhelper.helper()\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if res.OldModule != "pkg.util" || res.NewModule != "pkg2.utilities" {
		t.Errorf("unexpected module paths: %+v", res)
	}
	if res.FilesRewritten != 1 {
		t.Errorf("expected 1 rewritten file, got %d", res.FilesRewritten)
	}
}

func TestMoveFileExcludesItself(t *testing.T) {
	root := t.TempDir()
	// The moved file imports a sibling by the name it is itself moving to;
	// its own body must stay untouched.
	writeFile(t, root, "pkg/a.py", "import pkg.a\nx = 1\n")
	other := writeFile(t, root, "main.py", "import pkg.a\n")

	m := newTestMover()
	if _, err := m.MoveFile(filepath.Join(root, "pkg", "a.py"), filepath.Join(root, "pkg", "b.py"), root); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, filepath.Join(root, "pkg", "b.py")); got != "import pkg.a\nx = 1\n" {
		t.Errorf("moved file body was rewritten: %q", got)
	}
	if got := readFile(t, other); got != "import pkg.b\n" {
		t.Errorf("expected import pkg.b, got %q", got)
	}
}

func TestMoveFileInheritsSuffix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/a.py", "x = 1\n")

	m := newTestMover()
	if _, err := m.MoveFile(filepath.Join(root, "pkg", "a.py"), filepath.Join(root, "pkg", "renamed"), root); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "pkg", "renamed.py")); err != nil {
		t.Errorf("destination suffix not inherited: %v", err)
	}
}

func TestMoveValidation(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	src := writeFile(t, root, "pkg/a.py", "x = 1\n")
	dir := filepath.Join(root, "pkg")

	m := newTestMover()

	_, err := m.MoveFile(filepath.Join(root, "missing.py"), filepath.Join(root, "b.py"), root)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	_, err = m.MoveFile(dir, filepath.Join(root, "b.py"), root)
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR for directory source, got %v", err)
	}

	_, err = m.MoveFile(src, filepath.Join(outside, "b.py"), root)
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR for destination outside root, got %v", err)
	}

	writeFile(t, root, "pkg/b.py", "y = 2\n")
	_, err = m.MoveFile(src, filepath.Join(root, "pkg", "b.py"), root)
	if !errors.IsCode(err, errors.CodeConflict) {
		t.Errorf("expected CONFLICT for existing destination, got %v", err)
	}

	_, err = m.MoveFolder(src, filepath.Join(root, "pkg2"), root)
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR for file source in MoveFolder, got %v", err)
	}

	// No mutation happened along the way.
	if got := readFile(t, src); got != "x = 1\n" {
		t.Errorf("source modified by failed validations: %q", got)
	}
}

func TestUpdateImportsIdempotence(t *testing.T) {
	root := t.TempDir()
	consumer := writeFile(t, root, "main.py", "from pkg.a import f\n")

	m := newTestMover()
	spec := rewrite.MoveSpec{Old: modpath.Parse("pkg.a"), New: modpath.Parse("pkg.b")}

	res, err := m.UpdateImports(root, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesRewritten != 1 {
		t.Fatalf("expected 1 rewrite, got %d", res.FilesRewritten)
	}
	first := readFile(t, consumer)

	res, err = m.UpdateImports(root, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesRewritten != 0 {
		t.Errorf("second pass rewrote %d files", res.FilesRewritten)
	}
	if got := readFile(t, consumer); got != first {
		t.Errorf("content changed on second pass: %q vs %q", got, first)
	}
}

func TestMoveRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/a.py", "x = 1\n")
	consumer := writeFile(t, root, "main.py", "import pkg.a\nfrom pkg.a import x\n")
	original := readFile(t, consumer)

	m := newTestMover()
	if _, err := m.MoveFile(filepath.Join(root, "pkg", "a.py"), filepath.Join(root, "other", "b.py"), root); err != nil {
		t.Fatal(err)
	}
	if _, err := m.MoveFile(filepath.Join(root, "other", "b.py"), filepath.Join(root, "pkg", "a.py"), root); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, consumer); got != original {
		t.Errorf("round trip did not restore original text: %q vs %q", got, original)
	}
}

func TestUpdateImportsSkipsUnparseableFile(t *testing.T) {
	root := t.TempDir()
	broken := writeFile(t, root, "broken.py", "def broken(:\nimport pkg.a\n")
	good := writeFile(t, root, "good.py", "import pkg.a\n")

	m := newTestMover()
	spec := rewrite.MoveSpec{Old: modpath.Parse("pkg.a"), New: modpath.Parse("pkg.b")}
	res, err := m.UpdateImports(root, spec, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.FilesSkipped != 1 {
		t.Errorf("expected 1 skipped file, got %d", res.FilesSkipped)
	}
	if got := readFile(t, broken); got != "def broken(:\nimport pkg.a\n" {
		t.Errorf("unparseable file was modified: %q", got)
	}
	if got := readFile(t, good); got != "import pkg.b\n" {
		t.Errorf("healthy file not rewritten: %q", got)
	}
}

func TestUpdateImportsHonorsExcludeDirs(t *testing.T) {
	root := t.TempDir()
	ignored := writeFile(t, root, ".venv/lib/site.py", "import pkg.a\n")
	tracked := writeFile(t, root, "main.py", "import pkg.a\n")

	m := newTestMover()
	spec := rewrite.MoveSpec{Old: modpath.Parse("pkg.a"), New: modpath.Parse("pkg.b")}
	if _, err := m.UpdateImports(root, spec, nil); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, ignored); got != "import pkg.a\n" {
		t.Errorf("excluded directory was rewritten: %q", got)
	}
	if got := readFile(t, tracked); got != "import pkg.b\n" {
		t.Errorf("tracked file not rewritten: %q", got)
	}
}

func TestUpdateImportsRelativeConversion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/sub/a.py", "x = 1\n")
	sibling := writeFile(t, root, "pkg/sub/consumer.py", "from . import a\n")

	m := newTestMover()
	if _, err := m.MoveFile(filepath.Join(root, "pkg", "sub", "a.py"), filepath.Join(root, "other", "a.py"), root); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, sibling); got != "from other import a\n" {
		t.Errorf("expected cross-package conversion, got %q", got)
	}
}

func TestUpdateImportsIndentedStatement(t *testing.T) {
	root := t.TempDir()
	consumer := writeFile(t, root, "main.py",
		"def lazy():\n    import pkg.a\n    return pkg.a\n")

	m := newTestMover()
	spec := rewrite.MoveSpec{Old: modpath.Parse("pkg.a"), New: modpath.Parse("pkg.b")}
	if _, err := m.UpdateImports(root, spec, nil); err != nil {
		t.Fatal(err)
	}

	got := readFile(t, consumer)
	if got != "def lazy():\n    import pkg.b\n    return pkg.a\n" {
		t.Errorf("unexpected result: %q", got)
	}
}
