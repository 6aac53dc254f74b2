package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
extensions = [".py"]

[exclude]
dirs = [".git", "build"]
files = ["conftest.py"]

[journal]
path = ".pymover/journal.db"
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".py" {
		t.Errorf("Unexpected Extensions: %v", cfg.Extensions)
	}
	if len(cfg.Exclude.Dirs) != 2 || cfg.Exclude.Dirs[1] != "build" {
		t.Errorf("Unexpected Exclude.Dirs: %v", cfg.Exclude.Dirs)
	}
	if len(cfg.Exclude.Files) != 1 || cfg.Exclude.Files[0] != "conftest.py" {
		t.Errorf("Unexpected Exclude.Files: %v", cfg.Exclude.Files)
	}
	if cfg.Journal.Path != ".pymover/journal.db" {
		t.Errorf("Unexpected Journal.Path: %s", cfg.Journal.Path)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.toml")
	if err != nil {
		t.Fatalf("expected defaults for missing config, got error: %v", err)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".py" || cfg.Extensions[1] != ".pyw" {
		t.Errorf("Unexpected default Extensions: %v", cfg.Extensions)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("expected default exclude dirs")
	}
	if cfg.Journal.Path != "" {
		t.Errorf("journal should be disabled by default, got %s", cfg.Journal.Path)
	}
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	tmpfile, _ := os.CreateTemp("", "config*.toml")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(`[journal]` + "\n" + `path = "j.db"`))
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) != 2 {
		t.Errorf("expected default extensions, got %v", cfg.Extensions)
	}
	if cfg.Journal.Path != "j.db" {
		t.Errorf("expected journal path j.db, got %s", cfg.Journal.Path)
	}
}

func TestLoadError(t *testing.T) {
	tmpfile, _ := os.CreateTemp("", "badconfig*.toml")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte("bad = toml = format"))
	tmpfile.Close()

	_, err := Load(tmpfile.Name())
	if err == nil {
		t.Error("Expected error for malformed TOML")
	}
}
