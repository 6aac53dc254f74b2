package parser

type File struct {
	Path     string
	Language string
	Imports  []ImportStatement
}

type ImportKind int

const (
	// KindImport is a plain "import a.b, c as d" statement.
	KindImport ImportKind = iota
	// KindFromImport is a "from x import y" statement, absolute or relative.
	KindFromImport
)

// ImportStatement is the structured form of one import-like statement,
// together with its source extent. Start/End lines are 1-based and
// inclusive; Indent is the leading indentation width of the first line.
type ImportStatement struct {
	Kind    ImportKind
	Targets []Alias // plain import: dotted targets in order
	Module  string  // from-import: stated module path, "" for "from . import x"
	Level   int     // from-import ascent level; 0 = absolute
	Names   []Alias // from-import: imported names in order

	StartLine int
	EndLine   int
	Indent    int
}

// Alias pairs an imported dotted name with its optional local alias.
type Alias struct {
	Name   string
	AsName string
}

// Local returns the name the statement binds in the importing scope.
func (a Alias) Local() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}
