// uncon-gen generates unchecked conversion functions for single-field structs and
// integer-backed enums.
//
// Usage:
//
//	//go:generate uncon-gen
//	// Flag is ...
//	//
//	//uncon:other(uint16, uint32)
//	type Flag uint8
//
// Or with explicit types, or from a declaration file:
//
//	//go:generate uncon-gen -type=Nibble,Flag
//	//go:generate uncon-gen -decls=shapes.yaml
//
// Without -type, every type in $GOFILE that carries an //uncon: directive is generated.
// When there is none, the type declared right after the go:generate line is used.
//
// Flags:
//
//	-type     Comma-separated type names
//	-decls    YAML declaration file; the generated code also defines the types
//	-output   Output directory for generated files (default: same as source)
//	-package  Package name for generated files (default: same as source)
//	-dir      Directory of the package to load (default: current directory)
//	-v        Verbose logging
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"unchecked-convert/internal/analyze"
	"unchecked-convert/internal/declfile"
	"unchecked-convert/internal/gen"
	"unchecked-convert/internal/shape"
)

// ErrNoTypes is returned when no type could be selected for generation.
var ErrNoTypes = errors.New("no types to generate")

// config is the resolved command line.
type config struct {
	Types     []string
	DeclsFile string
	OutputDir string
	Package   string
	Dir       string
	Verbose   bool

	// From go generate.
	GoFile    string
	GoPackage string
	GoLine    int
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.Verbose)

	path, err := run(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated: %s\n", path)
}

func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("uncon-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	var (
		cfg   config
		types string
	)

	fs.StringVar(&types, "type", "", "Comma-separated type names (inferred from //uncon: directives if empty)")
	fs.StringVar(&cfg.DeclsFile, "decls", "", "YAML declaration file")
	fs.StringVar(&cfg.OutputDir, "output", "", "Output directory for generated files (default: same as source)")
	fs.StringVar(&cfg.Package, "package", "", "Package name for generated files (default: same as source)")
	fs.StringVar(&cfg.Dir, "dir", ".", "Directory of the package to load")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	for _, name := range strings.Split(types, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Types = append(cfg.Types, name)
		}
	}

	if cfg.DeclsFile != "" && len(cfg.Types) > 0 {
		return nil, errors.New("-type and -decls are mutually exclusive")
	}

	cfg.GoFile = getenv("GOFILE")
	cfg.GoPackage = getenv("GOPACKAGE")

	if line := getenv("GOLINE"); line != "" {
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("invalid GOLINE %q: %w", line, err)
		}

		cfg.GoLine = n
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = cfg.Dir
	}

	return &cfg, nil
}

// run generates the file described by cfg and returns the path it was written to.
func run(cfg *config, logger *slog.Logger) (string, error) {
	var (
		decls  []*shape.Decl
		genCfg = gen.DefaultGeneratorConfig()
		err    error
	)

	genCfg.OutputDir = cfg.OutputDir

	if cfg.DeclsFile != "" {
		decls, err = loadDeclFile(cfg, &genCfg, logger)
	} else {
		decls, err = loadGoPackage(cfg, &genCfg, logger)
	}

	if err != nil {
		return "", err
	}

	if cfg.Package != "" {
		genCfg.PackageName = cfg.Package
	}

	file, err := gen.NewGenerator(genCfg).Generate(decls)
	if err != nil {
		return "", err
	}

	for _, w := range file.Warnings {
		logger.Warn(w.Message, slog.String("code", w.Code), slog.String("decl", w.Decl), slog.String("pos", w.Pos))
	}

	logger.Debug("generated", slog.Int("decls", len(decls)), slog.Int("functions", len(file.Impls)))

	return gen.WriteFile(file, cfg.OutputDir)
}

func loadDeclFile(cfg *config, genCfg *gen.GeneratorConfig, logger *slog.Logger) ([]*shape.Decl, error) {
	path := cfg.DeclsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Dir, path)
	}

	f, err := declfile.LoadFile(path)
	if err != nil {
		return nil, err
	}

	decls, err := f.Declarations(path)
	if err != nil {
		return nil, err
	}

	switch {
	case f.Package != "":
		genCfg.PackageName = f.Package
	case cfg.GoPackage != "":
		genCfg.PackageName = cfg.GoPackage
	}

	genCfg.Filename = outputName(filepath.Base(path))

	logger.Debug("loaded declaration file", slog.String("path", path), slog.Int("decls", len(decls)))

	return decls, nil
}

func loadGoPackage(cfg *config, genCfg *gen.GeneratorConfig, logger *slog.Logger) ([]*shape.Decl, error) {
	a := analyze.NewAnalyzer()
	a.Dir = cfg.Dir

	pkg, err := a.LoadPackage(".")
	if err != nil {
		return nil, err
	}

	logger.Debug("loaded package", slog.String("path", pkg.Path()))

	names, err := selectTypes(cfg, pkg)
	if err != nil {
		return nil, err
	}

	decls := make([]*shape.Decl, 0, len(names))

	for _, name := range names {
		d, err := pkg.Decl(name)
		if err != nil {
			return nil, err
		}

		logger.Debug("found type", slog.String("type", name), slog.String("kind", d.Kind.String()))
		decls = append(decls, d)
	}

	genCfg.PackageName = pkg.Name()
	genCfg.PackagePath = pkg.Path()

	if cfg.GoFile != "" {
		genCfg.Filename = outputName(cfg.GoFile)
	} else {
		genCfg.Filename = outputName(pkg.Name())
	}

	return decls, nil
}

// selectTypes returns the explicit types, else the annotated types of $GOFILE (or of the
// package), else the type following the go:generate line.
func selectTypes(cfg *config, pkg *analyze.Package) ([]string, error) {
	if len(cfg.Types) > 0 {
		return cfg.Types, nil
	}

	if names := pkg.Annotated(cfg.GoFile); len(names) > 0 {
		return names, nil
	}

	if cfg.GoFile != "" && cfg.GoLine > 0 {
		name, err := pkg.TypeAfterLine(cfg.GoFile, cfg.GoLine)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoTypes, err)
		}

		return []string{name}, nil
	}

	return nil, fmt.Errorf("%w: use -type=TypeName or annotate types with //uncon:", ErrNoTypes)
}

// outputName turns "types.go" into "types_uncon.go".
func outputName(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return base + "_uncon.go"
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `uncon-gen - unchecked conversion generator

Usage:
  //go:generate uncon-gen [flags]
  type Flag uint8

Examples:
  //go:generate uncon-gen
  //go:generate uncon-gen -type=Nibble,Flag
  //go:generate uncon-gen -decls=shapes.yaml

Directives:
  //uncon:other(T1, T2)   also convert from T1 and T2 through the primary type
  //uncon:repr(uint16)    representation of an enum (default: its underlying type)

Flags:
  -type string
        Comma-separated type names (inferred from //uncon: directives if empty)
  -decls string
        YAML declaration file
  -output string
        Output directory for generated files (default: same as source)
  -package string
        Package name for generated files (default: same as source)
  -dir string
        Directory of the package to load (default ".")
  -v    Verbose logging
`)
}
