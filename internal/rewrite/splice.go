package rewrite

import "strings"

// Splice applies a sorted, non-overlapping edit list to source text. Lines
// outside every edit range are copied verbatim; at an edit's start line its
// replacement is emitted once and the walk skips to end+1. Line splitting
// keeps a trailing final newline intact.
func Splice(source string, edits []Edit) string {
	if len(edits) == 0 {
		return source
	}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	next := 0

	for line := 1; line <= len(lines); line++ {
		if next < len(edits) && line == edits[next].StartLine {
			out = append(out, edits[next].Text)
			line = edits[next].EndLine
			next++
			continue
		}
		out = append(out, lines[line-1])
	}

	return strings.Join(out, "\n")
}
