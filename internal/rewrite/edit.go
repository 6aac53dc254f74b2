package rewrite

import "pymover/internal/modpath"

// Edit replaces an inclusive 1-based line range with a single physical line.
type Edit struct {
	StartLine int
	EndLine   int
	Text      string
}

// MoveSpec describes one relocation in module-path terms.
type MoveSpec struct {
	Old modpath.Path
	New modpath.Path
}
