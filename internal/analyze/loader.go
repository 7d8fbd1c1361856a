package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"unchecked-convert/internal/directive"
	"unchecked-convert/internal/shape"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Errors returned while extracting declarations.
var (
	ErrTypeNotFound    = errors.New("type not found")
	ErrUnsupportedType = errors.New("type is neither a struct nor a named basic type")
)

// Analyzer loads Go packages.
type Analyzer struct {
	// Dir is the directory packages are resolved from. Empty means the current directory.
	Dir string
	// Tags are extra build tags.
	Tags []string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Package is a loaded package.
type Package struct {
	pkg *packages.Package
}

// LoadPackage loads the single package matched by pattern.
// Patterns are standard Go package patterns (e.g., ".", "unchecked-convert/examples/basic").
func (a *Analyzer) LoadPackage(pattern string) (*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	if len(a.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want 1", pattern, len(pkgs))
	}

	var errs []error
	for _, e := range pkgs[0].Errors {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return &Package{pkg: pkgs[0]}, nil
}

// Name returns the package name.
func (p *Package) Name() string {
	return p.pkg.Name
}

// Path returns the package import path.
func (p *Package) Path() string {
	return p.pkg.PkgPath
}

// Decl builds the static description of the named type.
func (p *Package) Decl(typeName string) (*shape.Decl, error) {
	spec, gd := p.findTypeSpec(typeName)
	if spec == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrTypeNotFound, typeName, p.pkg.PkgPath)
	}

	obj, ok := p.pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no type information", ErrTypeNotFound, typeName)
	}

	dirs, err := p.directives(spec, gd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", typeName, err)
	}

	d := &shape.Decl{
		Name:       typeName,
		TypeParams: typeParams(spec),
		Directives: dirs,
		Pos:        p.position(spec.Pos()),
	}

	var scan []ast.Node

	switch u := obj.Type().Underlying().(type) {
	case *types.Struct:
		st, ok := spec.Type.(*ast.StructType)
		if !ok {
			return nil, fmt.Errorf("%w: %s is defined through another struct type", ErrUnsupportedType, typeName)
		}

		d.Kind = shape.DeclStruct
		d.Fields = structFields(st)
		scan = append(scan, st)

	case *types.Basic:
		d.Kind = shape.DeclEnum
		d.Variants = p.variants(obj)

		if len(directive.Lists(d.Directives, directive.Repr)) == 0 {
			d.Directives = append(d.Directives, directive.List(directive.Repr, directive.Word(u.Name())))
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typeName)
	}

	// Constraints are copied into every generated function, so they need imports too.
	if spec.TypeParams != nil {
		scan = append(scan, spec.TypeParams)
	}

	d.Imports = p.imports(scan...)

	return d, nil
}

// Annotated returns the names of types in file that carry `//uncon:` directives, in
// source order. An empty file means every file of the package.
func (p *Package) Annotated(file string) []string {
	var names []string

	for _, f := range p.files(file) {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, s := range gd.Specs {
				spec := s.(*ast.TypeSpec)
				if hasDirective(docFor(spec, gd)) {
					names = append(names, spec.Name.Name)
				}
			}
		}
	}

	return names
}

// TypeAfterLine returns the first type declared in file after line, which is where a
// go:generate directive sits above the type it applies to.
func (p *Package) TypeAfterLine(file string, line int) (string, error) {
	for _, f := range p.files(file) {
		tf := p.pkg.Fset.File(f.Pos())
		if line < 1 || line > tf.LineCount() {
			return "", fmt.Errorf("line %d out of range in %s", line, file)
		}

		start := tf.LineStart(line)

		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE || gd.Pos() <= start {
				continue
			}

			return gd.Specs[0].(*ast.TypeSpec).Name.Name, nil
		}
	}

	return "", fmt.Errorf("no type declared after line %d of %s", line, file)
}

func (p *Package) files(name string) []*ast.File {
	var out []*ast.File

	for _, f := range p.pkg.Syntax {
		if name == "" || filepath.Base(p.pkg.Fset.File(f.Pos()).Name()) == filepath.Base(name) {
			out = append(out, f)
		}
	}

	return out
}

func (p *Package) findTypeSpec(name string) (*ast.TypeSpec, *ast.GenDecl) {
	for _, f := range p.pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, s := range gd.Specs {
				spec := s.(*ast.TypeSpec)
				if spec.Name.Name == name {
					return spec, gd
				}
			}
		}
	}

	return nil, nil
}

func (p *Package) position(pos token.Pos) string {
	position := p.pkg.Fset.Position(pos)
	position.Filename = filepath.Base(position.Filename)

	return position.String()
}

func (p *Package) directives(spec *ast.TypeSpec, gd *ast.GenDecl) ([]directive.Item, error) {
	doc := docFor(spec, gd)
	if doc == nil {
		return nil, nil
	}

	var items []directive.Item

	for _, c := range doc.List {
		item, ok, err := directive.FromComment(c.Text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.position(c.Pos()), err)
		}

		if ok {
			items = append(items, item)
		}
	}

	return items, nil
}

// variants returns the constants of the enum type, ordered by file then position.
func (p *Package) variants(obj *types.TypeName) []shape.Variant {
	type constPos struct {
		name string
		pos  token.Position
	}

	var consts []constPos

	for ident, def := range p.pkg.TypesInfo.Defs {
		c, ok := def.(*types.Const)
		if !ok || c.Parent() != p.pkg.Types.Scope() || !types.Identical(c.Type(), obj.Type()) {
			continue
		}

		consts = append(consts, constPos{name: ident.Name, pos: p.pkg.Fset.Position(ident.Pos())})
	}

	sort.Slice(consts, func(i, j int) bool {
		a, b := consts[i].pos, consts[j].pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}

		return a.Offset < b.Offset
	})

	variants := make([]shape.Variant, 0, len(consts))
	for _, c := range consts {
		variants = append(variants, shape.Variant{Name: c.name})
	}

	return variants
}

// imports returns the packages referenced inside nodes, in first-use order.
func (p *Package) imports(nodes ...ast.Node) []shape.Import {
	var out []shape.Import

	for _, n := range nodes {
		out = p.collectImports(n, out)
	}

	return out
}

func (p *Package) collectImports(n ast.Node, out []shape.Import) []shape.Import {
	astutil.Apply(n, func(c *astutil.Cursor) bool {
		sel, ok := c.Node().(*ast.SelectorExpr)
		if !ok {
			return true
		}

		x, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		pn, ok := p.pkg.TypesInfo.Uses[x].(*types.PkgName)
		if !ok {
			return true
		}

		imp := shape.Import{Path: pn.Imported().Path()}
		if x.Name != pn.Imported().Name() {
			imp.Name = x.Name
		}

		if !slices.Contains(out, imp) {
			out = append(out, imp)
		}

		return false
	}, nil)

	return out
}

func docFor(spec *ast.TypeSpec, gd *ast.GenDecl) *ast.CommentGroup {
	if spec.Doc != nil {
		return spec.Doc
	}

	if len(gd.Specs) == 1 {
		return gd.Doc
	}

	return nil
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if _, ok, _ := directive.FromComment(c.Text); ok {
			return true
		}
	}

	return false
}

func typeParams(spec *ast.TypeSpec) shape.TypeParams {
	if spec.TypeParams == nil {
		return nil
	}

	var tp shape.TypeParams

	for _, field := range spec.TypeParams.List {
		constraint := types.ExprString(field.Type)
		for _, name := range field.Names {
			tp = append(tp, shape.TypeParam{Name: name.Name, Constraint: constraint})
		}
	}

	return tp
}

func structFields(st *ast.StructType) []shape.Field {
	var fields []shape.Field

	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			fields = append(fields, shape.Field{Type: typ})
			continue
		}

		for _, name := range field.Names {
			fields = append(fields, shape.Field{Name: name.Name, Type: typ})
		}
	}

	return fields
}
