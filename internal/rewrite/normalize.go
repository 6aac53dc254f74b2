package rewrite

import (
	"strings"

	"pymover/internal/modpath"
)

// ResolveRelative turns a relative from-import into the absolute module path
// it denotes, seen from fileModule. A single leading dot means the current
// package, two dots its parent, and so on; the statement's module suffix is
// appended afterwards. Used only for comparison against the moved entity.
func ResolveRelative(fileModule modpath.Path, level int, module string) modpath.Path {
	if len(fileModule) == 0 {
		return nil
	}
	currentPackage := fileModule.Parent()

	var ascend modpath.Path
	if level <= len(currentPackage)+1 {
		trim := level - 1
		switch {
		case trim <= 0:
			ascend = currentPackage
		case trim >= len(currentPackage):
			ascend = nil
		default:
			ascend = currentPackage[:len(currentPackage)-trim]
		}
	}

	if module == "" {
		return ascend
	}
	return ascend.Join(strings.Split(module, ".")...)
}
