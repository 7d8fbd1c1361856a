package declfile

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"unchecked-convert/internal/common"
	"unchecked-convert/internal/directive"
	"unchecked-convert/internal/shape"
)

// Validation errors.
var (
	ErrMissingName    = errors.New("declaration has no name")
	ErrDuplicateDecl  = errors.New("duplicate declaration")
	ErrUnknownKind    = errors.New("unknown declaration kind")
	ErrGenericEnum    = errors.New("enum cannot have type parameters")
	ErrInvalidType    = errors.New("invalid type expression")
	ErrUnknownPackage = errors.New("package is not imported")
)

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Declarations converts the file into declarations that are defined by the generated code.
// filename is used for positions only.
func (f *File) Declarations(filename string) ([]*shape.Decl, error) {
	pkgs := make(map[string]shape.Import, len(f.Imports))
	for _, imp := range f.Imports {
		pkgs[common.PkgName(imp.Path, imp.Name)] = shape.Import{Path: imp.Path, Name: imp.Name}
	}

	seen := make(map[string]bool, len(f.Decls))
	decls := make([]*shape.Decl, 0, len(f.Decls))

	var errs []error

	for i := range f.Decls {
		spec := &f.Decls[i]
		pos := fmt.Sprintf("%s:%d", filepath.Base(filename), spec.Line)

		switch {
		case spec.Name == "":
			errs = append(errs, fmt.Errorf("%s: %w", pos, ErrMissingName))
			continue
		case seen[spec.Name]:
			errs = append(errs, fmt.Errorf("%s: %w: %s", pos, ErrDuplicateDecl, spec.Name))
			continue
		}

		seen[spec.Name] = true

		d, err := spec.decl(pkgs)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s: %w", pos, spec.Name, err))
			continue
		}

		d.Pos = pos
		decls = append(decls, d)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return decls, nil
}

func (s *DeclSpec) decl(pkgs map[string]shape.Import) (*shape.Decl, error) {
	dirs, err := directive.ParseAll(s.Directives)
	if err != nil {
		return nil, err
	}

	d := &shape.Decl{
		Name:       s.Name,
		Directives: dirs,
		Define:     true,
	}

	// Constraints are copied into every generated function, so their packages are
	// imported like those of field types.
	var types []string

	for _, tp := range s.TypeParams {
		constraint := tp.Constraint
		if constraint == "" {
			constraint = "any"
		}

		d.TypeParams = append(d.TypeParams, shape.TypeParam{Name: tp.Name, Constraint: constraint})
		types = append(types, constraint)
	}

	kind := s.Kind
	if kind == "" {
		kind = KindStruct
		if len(s.Variants) > 0 {
			kind = KindEnum
		}
	}

	switch kind {
	case KindStruct:
		d.Kind = shape.DeclStruct
		d.Fields = fields(s.Fields)

		for _, f := range s.Fields {
			types = append(types, f.Type)
		}

	case KindEnum:
		if len(s.TypeParams) > 0 {
			return nil, ErrGenericEnum
		}

		d.Kind = shape.DeclEnum

		for _, v := range s.Variants {
			d.Variants = append(d.Variants, shape.Variant{Name: v.Name, Fields: fields(v.Fields)})

			for _, f := range v.Fields {
				types = append(types, f.Type)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	d.Imports, err = imports(types, pkgs)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func fields(specs []FieldSpec) []shape.Field {
	if len(specs) == 0 {
		return nil
	}

	out := make([]shape.Field, 0, len(specs))
	for _, f := range specs {
		out = append(out, shape.Field{Name: f.Name, Type: f.Type})
	}

	return out
}

// imports returns the packages referenced by the given type expressions.
func imports(types []string, pkgs map[string]shape.Import) ([]shape.Import, error) {
	var (
		out []shape.Import
		err error
	)

	for _, typ := range types {
		expr, perr := parser.ParseExpr(typ)
		if perr != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidType, typ, perr)
		}

		ast.Inspect(expr, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok || err != nil {
				return err == nil
			}

			x, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}

			imp, ok := pkgs[x.Name]
			if !ok {
				err = fmt.Errorf("%w: %s in %q", ErrUnknownPackage, x.Name, typ)
				return false
			}

			if !slices.Contains(out, imp) {
				out = append(out, imp)
			}

			return false
		})

		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
