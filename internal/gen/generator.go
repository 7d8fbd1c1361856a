package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strings"

	"unchecked-convert/internal/common"
	"unchecked-convert/internal/diagnostic"
	"unchecked-convert/internal/shape"
)

// ErrVariantOverflow is returned when a defined enum has more variants than its
// representation can number.
var ErrVariantOverflow = errors.New("too many variants for representation")

// DefaultUnconImport is the import path of the package declaring the conversion
// interfaces.
const DefaultUnconImport = "unchecked-convert/uncon"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// PackagePath is the import path of the generated package, if known.
	PackagePath string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir receives a debug copy of unformatted code when formatting fails.
	OutputDir string
	// UnconImport is the import path of the uncon package.
	UnconImport string
	// GenerateComments enables doc comments on generated functions.
	GenerateComments bool
	// GenerateAssertions enables compile-time uncon.FromUnchecked assertions.
	GenerateAssertions bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:        "main",
		Filename:           "uncon_gen.go",
		UnconImport:        DefaultUnconImport,
		GenerateComments:   true,
		GenerateAssertions: true,
	}
}

// Generator generates Go code from declarations. It holds no state between calls.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "flag_uncon.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Impls lists every generated implementation, in output order.
	Impls []Impl
	// Warnings collected while generating.
	Warnings []diagnostic.Diagnostic
}

type importSpec struct {
	Alias string
	Path  string
}

type declData struct {
	Definition string
	Impls      []Impl
}

type templateData struct {
	PackageName string
	Imports     []importSpec
	Decls       []declData
	Comments    bool
	Uncon       string
	Assertions  []Impl
}

// Generate classifies every declaration and renders one file with all implementations.
// If any declaration fails, no file is returned and the error lists every failure.
func (g *Generator) Generate(decls []*shape.Decl) (*GeneratedFile, error) {
	var diags diagnostic.Diagnostics

	data := &templateData{
		PackageName: g.config.PackageName,
		Comments:    g.config.GenerateComments,
	}

	imports := newImportSet()

	var all []Impl

	for _, d := range decls {
		dd, warnings, err := g.generateDecl(d)
		diags.Warnings = append(diags.Warnings, warnings...)

		if err == nil {
			err = imports.add(d.Imports)
		}

		if err != nil {
			diags.AddError(errorCode(err), d.Name, d.Pos, err)
			continue
		}

		data.Decls = append(data.Decls, *dd)
		all = append(all, dd.Impls...)

		if g.assertionsEnabled() && len(d.TypeParams) == 0 {
			data.Assertions = append(data.Assertions, dd.Impls...)
		}
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	if len(data.Assertions) > 0 {
		name, err := g.addUnconImport(imports)
		if err != nil {
			return nil, err
		}

		data.Uncon = name
	}

	data.Imports = imports.sorted()

	content, err := g.render(data)
	if err != nil {
		return nil, err
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  content,
		Impls:    all,
		Warnings: diags.Warnings,
	}, nil
}

func (g *Generator) generateDecl(d *shape.Decl) (*declData, []diagnostic.Diagnostic, error) {
	s, err := shape.Classify(d)
	if err != nil {
		return nil, nil, err
	}

	sources := shape.CollectSources(d)

	var warnings []diagnostic.Diagnostic
	for _, item := range sources.Ignored {
		warnings = append(warnings, diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     diagnostic.CodeIgnoredArgument,
			Message:  fmt.Sprintf("other(...) argument %s is not a plain identifier, ignored", item),
			Decl:     d.Name,
			Pos:      d.Pos,
		})
	}

	impls, dupWarnings := BuildImpls(s, sources.Names)
	for _, w := range dupWarnings {
		w.Pos = d.Pos
		warnings = append(warnings, w)
	}

	dd := &declData{Impls: impls}
	if d.Define {
		if err := checkVariantCount(s); err != nil {
			return nil, nil, err
		}

		dd.Definition = Definition(s)
	}

	return dd, warnings, nil
}

func (g *Generator) assertionsEnabled() bool {
	if !g.config.GenerateAssertions || g.config.UnconImport == "" {
		return false
	}

	return g.config.PackagePath != g.config.UnconImport
}

// addUnconImport registers the uncon package and returns the name to refer to it by.
func (g *Generator) addUnconImport(imports *importSet) (string, error) {
	if name, ok := imports.nameOf(g.config.UnconImport); ok {
		return name, nil
	}

	if err := imports.add([]shape.Import{{Path: g.config.UnconImport}}); err != nil {
		return "", fmt.Errorf("adding assertions: %w", err)
	}

	return common.PkgName(g.config.UnconImport, ""), nil
}

func (g *Generator) render(data *templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

// Definition renders the type definition of a classified declaration.
func Definition(s shape.Shape) string {
	var sb strings.Builder

	switch s := s.(type) {
	case *shape.Wrapper:
		fmt.Fprintf(&sb, "type %s%s struct {\n", s.Name, s.TypeParams.Decl())

		if s.Binding == shape.BindNamed {
			fmt.Fprintf(&sb, "\t%s %s\n", s.Field.Name, s.Field.Type)
		} else {
			fmt.Fprintf(&sb, "\t%s\n", s.Field.Type)
		}

		sb.WriteString("}\n")

	case *shape.Enum:
		fmt.Fprintf(&sb, "type %s%s %s\n", s.Name, s.TypeParams.Decl(), s.ReprName)

		if len(s.Variants) > 0 && len(s.TypeParams) == 0 {
			sb.WriteString("\nconst (\n")

			for i, v := range s.Variants {
				if i == 0 {
					fmt.Fprintf(&sb, "\t%s %s = iota\n", v, s.Name)
				} else {
					fmt.Fprintf(&sb, "\t%s\n", v)
				}
			}

			sb.WriteString(")\n")
		}
	}

	return sb.String()
}

// checkVariantCount makes sure the iota constants of a defined enum fit its
// representation on every platform.
func checkVariantCount(s shape.Shape) error {
	e, ok := s.(*shape.Enum)
	if !ok || len(e.Variants) == 0 {
		return nil
	}

	if last := uint64(len(e.Variants) - 1); last > e.Repr.MaxPortable() {
		return fmt.Errorf("enum %s: %w: %d variants, %s holds at most %d",
			e.Name, ErrVariantOverflow, len(e.Variants), e.ReprName, e.Repr.MaxPortable()+1)
	}

	return nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, shape.ErrNonUnitVariant):
		return diagnostic.CodeNonUnitVariant
	case errors.Is(err, shape.ErrNoRepr):
		return diagnostic.CodeNoRepr
	case errors.Is(err, shape.ErrNoIntegerRepr):
		return diagnostic.CodeNoIntegerRepr
	case errors.Is(err, shape.ErrFieldCount):
		return diagnostic.CodeFieldCount
	case errors.Is(err, ErrVariantOverflow):
		return diagnostic.CodeVariantOverflow
	case errors.Is(err, ErrImportConflict):
		return diagnostic.CodeImportConflict
	default:
		return ""
	}
}
