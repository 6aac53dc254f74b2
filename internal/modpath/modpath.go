// Package modpath maps repository-relative file locations to dotted
// Python module paths and carries the helpers for prefix rewriting.
package modpath

import (
	"path/filepath"
	"strings"

	"pymover/internal/core/errors"
)

// Suffixes recognized as Python sources when deriving module paths.
var SourceSuffixes = []string{".py", ".pyw"}

// Path is an ordered sequence of non-empty identifiers, e.g. ["pkg", "sub", "m"].
type Path []string

func Parse(dotted string) Path {
	if dotted == "" {
		return nil
	}
	return Path(strings.Split(dotted, "."))
}

func (p Path) Dotted() string {
	return strings.Join(p, ".")
}

func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Parent returns the containing package, or nil for a top-level module.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1]
}

func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether p equals prefix or lies underneath it.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) == 0 || len(prefix) > len(p) {
		return false
	}
	for i, c := range prefix {
		if p[i] != c {
			return false
		}
	}
	return true
}

// Rebase swaps the old prefix of p for new. The caller must have
// checked HasPrefix(old) first.
func (p Path) Rebase(old, new Path) Path {
	out := make(Path, 0, len(new)+len(p)-len(old))
	out = append(out, new...)
	out = append(out, p[len(old):]...)
	return out
}

// Join returns p with extra components appended, without mutating p.
func (p Path) Join(parts ...string) Path {
	out := make(Path, 0, len(p)+len(parts))
	out = append(out, p...)
	out = append(out, parts...)
	return out
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i, c := range other {
		if p[i] != c {
			return false
		}
	}
	return true
}

// FromFile derives the dotted module path for a file or directory inside
// repoRoot. A recognized source suffix is stripped; directories keep their
// name as the final component.
func FromFile(repoRoot, filePath string) (Path, error) {
	rel, err := filepath.Rel(repoRoot, filePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "relativize path")
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, errors.Newf(errors.CodeValidation,
			"path %q is outside repository root %q", filePath, repoRoot)
	}
	for _, suffix := range SourceSuffixes {
		if strings.HasSuffix(rel, suffix) {
			rel = strings.TrimSuffix(rel, suffix)
			break
		}
	}
	parts := strings.Split(rel, "/")
	for _, part := range parts {
		if part == "" {
			return nil, errors.Newf(errors.CodeValidation,
				"path %q yields an empty module component", filePath)
		}
	}
	return Path(parts), nil
}
