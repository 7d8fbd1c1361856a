package gen

import (
	"errors"
	"fmt"
	"sort"

	"unchecked-convert/internal/common"
	"unchecked-convert/internal/shape"
)

// ErrImportConflict is returned when one package name would refer to two import paths.
var ErrImportConflict = errors.New("import name conflict")

// importSet collects the imports of a generated file. The same path may appear under
// several names, but a name never refers to two paths.
type importSet struct {
	specs map[importSpec]struct{}
	names map[string]string
}

func newImportSet() *importSet {
	return &importSet{
		specs: make(map[importSpec]struct{}),
		names: make(map[string]string),
	}
}

// add registers imps. Nothing is added when one of them conflicts.
func (s *importSet) add(imps []shape.Import) error {
	pending := make(map[string]string, len(imps))

	for _, imp := range imps {
		name := common.PkgName(imp.Path, imp.Name)

		prev, ok := s.names[name]
		if !ok {
			prev, ok = pending[name]
		}

		if ok && prev != imp.Path {
			return fmt.Errorf("%w: %s refers to both %q and %q", ErrImportConflict, name, prev, imp.Path)
		}

		pending[name] = imp.Path
	}

	for _, imp := range imps {
		s.names[common.PkgName(imp.Path, imp.Name)] = imp.Path
		s.specs[importSpec{Alias: imp.Name, Path: imp.Path}] = struct{}{}
	}

	return nil
}

// nameOf returns a name already bound to path, preferring an unaliased import.
func (s *importSet) nameOf(path string) (string, bool) {
	for _, spec := range s.sorted() {
		if spec.Path == path {
			return common.PkgName(spec.Path, spec.Alias), true
		}
	}

	return "", false
}

// sorted returns the imports ordered by path, then alias.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.specs))
	for spec := range s.specs {
		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}

		return out[i].Alias < out[j].Alias
	})

	return out
}
