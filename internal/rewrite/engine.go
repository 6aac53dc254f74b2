package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"pymover/internal/modpath"
	"pymover/internal/parser"
)

// RewriteFile classifies every import statement of a scanned file against
// the move and returns the resulting edit list, sorted by start line.
// Statements that do not reference the moved entity produce no edit.
// fileModule is the scanned file's own module path; it is only needed to
// resolve relative imports and may be nil when unknown.
func RewriteFile(file *parser.File, fileModule modpath.Path, spec MoveSpec) []Edit {
	var edits []Edit
	for _, stmt := range file.Imports {
		if edit, ok := RewriteStatement(stmt, fileModule, spec); ok {
			edits = append(edits, edit)
		}
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].StartLine < edits[j].StartLine })
	return edits
}

// RewriteStatement computes the single-line replacement for one statement,
// or reports false when the statement is unaffected (or irreducibly
// ambiguous and deliberately left alone).
func RewriteStatement(stmt parser.ImportStatement, fileModule modpath.Path, spec MoveSpec) (Edit, bool) {
	switch stmt.Kind {
	case parser.KindImport:
		return rewriteImport(stmt, spec)
	case parser.KindFromImport:
		if stmt.Level == 0 {
			return rewriteFromImport(stmt, spec)
		}
		return rewriteRelativeImport(stmt, fileModule, spec)
	}
	return Edit{}, false
}

// rewriteImport handles "import a.b, c as d": any target equal to the old
// path or underneath it gets its prefix swapped, aliases carried over.
func rewriteImport(stmt parser.ImportStatement, spec MoveSpec) (Edit, bool) {
	oldDotted := spec.Old.Dotted()
	oldPrefix := oldDotted + "."

	replaced := false
	targets := make([]parser.Alias, len(stmt.Targets))
	for i, target := range stmt.Targets {
		switch {
		case target.Name == oldDotted:
			targets[i] = parser.Alias{Name: spec.New.Dotted(), AsName: target.AsName}
			replaced = true
		case strings.HasPrefix(target.Name, oldPrefix):
			targets[i] = parser.Alias{
				Name:   spec.New.Dotted() + "." + target.Name[len(oldPrefix):],
				AsName: target.AsName,
			}
			replaced = true
		default:
			targets[i] = target
		}
	}
	if !replaced {
		return Edit{}, false
	}

	return makeEdit(stmt, "import "+joinAliases(targets)), true
}

// rewriteFromImport handles absolute "from x import y" statements.
func rewriteFromImport(stmt parser.ImportStatement, spec MoveSpec) (Edit, bool) {
	oldDotted := spec.Old.Dotted()
	oldPrefix := oldDotted + "."

	// The stated module path is the moved entity or lies underneath it:
	// swap the prefix, imported names untouched.
	if stmt.Module == oldDotted || strings.HasPrefix(stmt.Module, oldPrefix) {
		newModule := spec.New.Dotted()
		if stmt.Module != oldDotted {
			newModule += "." + stmt.Module[len(oldPrefix):]
		}
		return makeEdit(stmt, fmt.Sprintf("from %s import %s", newModule, joinAliases(stmt.Names))), true
	}

	// The moved entity is imported by name from its parent package.
	if stmt.Module == spec.Old.Parent().Dotted() {
		names, replaced := substituteNames(stmt.Names, spec.Old.Last(), spec.New.Last())
		if replaced {
			return renderFromNames(stmt, spec.New.Parent(), names)
		}
	}

	return Edit{}, false
}

// rewriteRelativeImport normalizes a level-based reference and rewrites it
// when it denotes the moved entity. A sibling move keeps the relative
// syntax; a move to a different parent converts to an absolute form since
// the original ascent level generally cannot reach the new parent.
func rewriteRelativeImport(stmt parser.ImportStatement, fileModule modpath.Path, spec MoveSpec) (Edit, bool) {
	if len(fileModule) == 0 {
		return Edit{}, false
	}

	base := ResolveRelative(fileModule, stmt.Level, stmt.Module)
	actualModule := base.Dotted()
	oldDotted := spec.Old.Dotted()
	oldParent := spec.Old.Parent().Dotted()
	oldName := spec.Old.Last()

	replaced := false
	names := make([]parser.Alias, len(stmt.Names))
	for i, name := range stmt.Names {
		full := base.Join(strings.Split(name.Name, ".")...).Dotted()
		if full == oldDotted || (name.Name == oldName && actualModule == oldParent) {
			names[i] = parser.Alias{Name: spec.New.Last(), AsName: name.Local()}
			replaced = true
		} else {
			names[i] = name
		}
	}
	if !replaced {
		return Edit{}, false
	}

	if spec.New.Parent().Dotted() == oldParent {
		// Sibling move: same level, same module suffix, only the name changes.
		dots := strings.Repeat(".", stmt.Level)
		return makeEdit(stmt, fmt.Sprintf("from %s%s import %s", dots, stmt.Module, joinAliases(names))), true
	}
	return renderFromNames(stmt, spec.New.Parent(), names)
}

// renderFromNames emits "from <parent> import <names>", or a plain import
// when the moved entity became top-level. The top-level form exists only
// for single-name statements; with several names no valid single-line
// rewrite exists, so the statement is left unmodified.
func renderFromNames(stmt parser.ImportStatement, newParent modpath.Path, names []parser.Alias) (Edit, bool) {
	if !newParent.IsEmpty() {
		return makeEdit(stmt, fmt.Sprintf("from %s import %s", newParent.Dotted(), joinAliases(names))), true
	}
	if len(stmt.Names) != 1 {
		return Edit{}, false
	}
	name := names[0]
	if local := name.Local(); local != name.Name {
		return makeEdit(stmt, fmt.Sprintf("import %s as %s", name.Name, local)), true
	}
	return makeEdit(stmt, "import "+name.Name), true
}

// substituteNames swaps every occurrence of oldName for newName, pinning
// the importer's visible local name through an explicit alias.
func substituteNames(in []parser.Alias, oldName, newName string) ([]parser.Alias, bool) {
	replaced := false
	out := make([]parser.Alias, len(in))
	for i, name := range in {
		if name.Name == oldName {
			out[i] = parser.Alias{Name: newName, AsName: name.Local()}
			replaced = true
		} else {
			out[i] = name
		}
	}
	return out, replaced
}

func makeEdit(stmt parser.ImportStatement, code string) Edit {
	return Edit{
		StartLine: stmt.StartLine,
		EndLine:   stmt.EndLine,
		Text:      strings.Repeat(" ", stmt.Indent) + code,
	}
}

// joinAliases renders "a, b as c". A redundant alias equal to the target
// itself is dropped rather than echoed back.
func joinAliases(aliases []parser.Alias) string {
	parts := make([]string, len(aliases))
	for i, a := range aliases {
		if a.AsName != "" && a.AsName != a.Name {
			parts[i] = a.Name + " as " + a.AsName
		} else {
			parts[i] = a.Name
		}
	}
	return strings.Join(parts, ", ")
}
