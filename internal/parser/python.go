package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "python",
	}

	e.walk(root, source, file)

	return file, nil
}

func (e *PythonExtractor) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, file)
		return
	case "import_from_statement":
		e.extractFromImport(node, source, file)
		return
	case "future_import_statement":
		// "from __future__ import ..." can never reference a moved module.
		return
	}

	// Recurse; imports nested in conditional or function bodies count too.
	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	stmt := ImportStatement{Kind: KindImport}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			stmt.Targets = append(stmt.Targets, Alias{Name: e.getText(child, source)})
		case "aliased_import":
			stmt.Targets = append(stmt.Targets, e.aliasedImport(child, source))
		}
	}

	if len(stmt.Targets) == 0 {
		return
	}
	e.finish(&stmt, node, file)
}

func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, file *File) {
	stmt := ImportStatement{Kind: KindFromImport}
	seenImport := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "relative_import":
			relText := e.getText(child, source)
			module := strings.TrimLeft(relText, ".")
			stmt.Level = len(relText) - len(module)
			stmt.Module = module

		case "dotted_name", "identifier":
			if !seenImport {
				stmt.Module = e.getText(child, source)
			} else {
				stmt.Names = append(stmt.Names, Alias{Name: e.getText(child, source)})
			}

		case "import":
			seenImport = true

		case "aliased_import":
			stmt.Names = append(stmt.Names, e.aliasedImport(child, source))

		case "wildcard_import":
			stmt.Names = append(stmt.Names, Alias{Name: "*"})
		}
	}

	if len(stmt.Names) == 0 {
		return
	}
	e.finish(&stmt, node, file)
}

// aliasedImport splits "name as alias"; the first dotted_name/identifier is
// the target, the second the local alias.
func (e *PythonExtractor) aliasedImport(node *sitter.Node, source []byte) Alias {
	var out Alias
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "dotted_name" || child.Kind() == "identifier" {
			if out.Name == "" {
				out.Name = e.getText(child, source)
			} else {
				out.AsName = e.getText(child, source)
			}
		}
	}
	return out
}

func (e *PythonExtractor) finish(stmt *ImportStatement, node *sitter.Node, file *File) {
	stmt.StartLine = int(node.StartPosition().Row) + 1
	stmt.EndLine = int(node.EndPosition().Row) + 1
	stmt.Indent = int(node.StartPosition().Column)
	file.Imports = append(file.Imports, *stmt)
}

func (e *PythonExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
