package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unchecked-convert/internal/diagnostic"
	"unchecked-convert/internal/directive"
	"unchecked-convert/internal/shape"
)

func nibbleDecl() *shape.Decl {
	return &shape.Decl{
		Name:   "Nibble",
		Kind:   shape.DeclStruct,
		Fields: []shape.Field{{Name: "bits", Type: "uint8"}},
	}
}

func flagDecl() *shape.Decl {
	return &shape.Decl{
		Name: "Flag",
		Kind: shape.DeclEnum,
		Variants: []shape.Variant{
			{Name: "FlagA"}, {Name: "FlagB"}, {Name: "FlagC"}, {Name: "FlagD"},
		},
		Directives: []directive.Item{
			directive.List(directive.Uncon, directive.List(directive.Other,
				directive.Word("uint16"), directive.Word("uint32"))),
			directive.List(directive.Repr, directive.Word("uint8")),
		},
	}
}

func testConfig() GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	cfg.PackageName = "example"
	cfg.Filename = "example_uncon.go"

	return cfg
}

func TestGenerator_Generate_Wrapper(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{nibbleDecl()})
	require.NoError(t, err)
	require.Len(t, file.Impls, 1)

	content := string(file.Content)

	assert.Equal(t, "example_uncon.go", file.Filename)
	assert.Contains(t, content, "// Code generated by uncon-gen. DO NOT EDIT.")
	assert.Contains(t, content, "package example")
	assert.Contains(t, content, `"unchecked-convert/uncon"`)
	assert.Contains(t, content, "func NibbleFromUnchecked(in uint8) Nibble {\n\treturn Nibble{bits: in}\n}")
	assert.Contains(t, content, "var _ uncon.FromUnchecked[uint8, Nibble] = uncon.Func[uint8, Nibble](NibbleFromUnchecked)")
	assert.NotContains(t, content, "type Nibble")
	assert.Empty(t, file.Warnings)
}

func TestGenerator_Generate_Enum(t *testing.T) {
	t.Parallel()

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{flagDecl()})
	require.NoError(t, err)
	t.Log(spew.Sdump(file.Impls))

	require.Len(t, file.Impls, 3)
	assert.Equal(t, BodyReinterpret, file.Impls[0].Kind)
	assert.Equal(t, BodyDelegate, file.Impls[1].Kind)
	assert.Equal(t, "uint16", file.Impls[1].Source)
	assert.Equal(t, "uint32", file.Impls[2].Source)

	content := string(file.Content)
	assert.Contains(t, content, "func FlagFromUnchecked(in uint8) Flag {\n\treturn Flag(in)\n}")
	assert.Contains(t, content, "func FlagFromUint16Unchecked(in uint16) Flag {\n\treturn FlagFromUnchecked(uint8(in))\n}")
	assert.Contains(t, content, "func FlagFromUint32Unchecked(in uint32) Flag {\n\treturn FlagFromUnchecked(uint8(in))\n}")
	assert.Contains(t, content, "uncon.Func[uint16, Flag](FlagFromUint16Unchecked)")
}

func TestGenerator_Generate_Generic(t *testing.T) {
	t.Parallel()

	d := &shape.Decl{
		Name:       "Box",
		Kind:       shape.DeclStruct,
		TypeParams: shape.TypeParams{{Name: "T", Constraint: "~int | ~uint"}},
		Fields:     []shape.Field{{Type: "T"}},
		Directives: []directive.Item{
			directive.List(directive.Uncon, directive.List(directive.Other, directive.Word("int64"))),
		},
	}

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "func BoxFromUnchecked[T ~int | ~uint](in T) Box[T] {\n\treturn Box[T]{in}\n}")
	assert.Contains(t, content, "func BoxFromInt64Unchecked[T ~int | ~uint](in int64) Box[T] {\n\treturn BoxFromUnchecked[T](T(in))\n}")
	assert.NotContains(t, content, "uncon.Func")
	assert.NotContains(t, content, "import")
}

func TestGenerator_Generate_Define(t *testing.T) {
	t.Parallel()

	n := nibbleDecl()
	n.Define = true
	f := flagDecl()
	f.Define = true

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{n, f})
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "type Nibble struct {\n\tbits uint8\n}")
	assert.Contains(t, content, "type Flag uint8")
	assert.Contains(t, content, "FlagA Flag = iota\n\tFlagB\n\tFlagC\n\tFlagD\n")
	assert.Len(t, file.Impls, 4)
}

func TestGenerator_Generate_Imports(t *testing.T) {
	t.Parallel()

	d := &shape.Decl{
		Name:    "Timeout",
		Kind:    shape.DeclStruct,
		Fields:  []shape.Field{{Name: "d", Type: "time.Duration"}},
		Imports: []shape.Import{{Path: "time"}},
		Directives: []directive.Item{
			directive.List(directive.Uncon, directive.List(directive.Other, directive.Word("int64"))),
		},
	}

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, `"time"`)
	assert.Contains(t, content, "return TimeoutFromUnchecked(time.Duration(in))")
}

func TestGenerator_Generate_Errors(t *testing.T) {
	t.Parallel()

	noRepr := flagDecl()
	noRepr.Name = "NoRepr"
	noRepr.Directives = noRepr.Directives[:1]

	pair := &shape.Decl{
		Name:   "Pair",
		Kind:   shape.DeclStruct,
		Fields: []shape.Field{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}},
		Pos:    "pair.go:3:6",
	}

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{nibbleDecl(), noRepr, pair})
	require.Error(t, err)
	assert.Nil(t, file)

	require.ErrorIs(t, err, shape.ErrNoRepr)
	require.ErrorIs(t, err, shape.ErrFieldCount)

	diags, ok := diagnostic.As(err)
	require.True(t, ok)
	require.Len(t, diags, 2)
	assert.Equal(t, diagnostic.CodeNoRepr, diags[0].Code)
	assert.Equal(t, diagnostic.CodeFieldCount, diags[1].Code)
	assert.Contains(t, err.Error(), "pair.go:3:6 Pair: [UNCON_FIELD_COUNT]")
}

func TestGenerator_Generate_ErrorCodes(t *testing.T) {
	t.Parallel()

	nonUnit := flagDecl()
	nonUnit.Variants[1].Fields = []shape.Field{{Name: "x", Type: "int"}}

	noInt := flagDecl()
	noInt.Directives = []directive.Item{directive.List(directive.Repr, directive.Word("C"))}

	tests := []struct {
		name string
		decl *shape.Decl
		code string
	}{
		{name: "non-unit", decl: nonUnit, code: diagnostic.CodeNonUnitVariant},
		{name: "no integer repr", decl: noInt, code: diagnostic.CodeNoIntegerRepr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGenerator(testConfig()).Generate([]*shape.Decl{tt.decl})
			diags, ok := diagnostic.As(err)
			require.True(t, ok)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.code, diags[0].Code)
		})
	}
}

func TestGenerator_Generate_Warnings(t *testing.T) {
	t.Parallel()

	d := flagDecl()
	d.Directives = append(d.Directives, directive.List(directive.Uncon,
		directive.List(directive.Other, directive.Word("uint16"), directive.Literal("big.Int"))))

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.NoError(t, err)
	require.Len(t, file.Impls, 3)
	require.Len(t, file.Warnings, 2)

	codes := []string{file.Warnings[0].Code, file.Warnings[1].Code}
	assert.ElementsMatch(t, []string{diagnostic.CodeIgnoredArgument, diagnostic.CodeDuplicateSource}, codes)
}

func TestGenerator_Generate_NoAssertions(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GenerateAssertions = false
	cfg.GenerateComments = false

	file, err := NewGenerator(cfg).Generate([]*shape.Decl{nibbleDecl()})
	require.NoError(t, err)

	content := string(file.Content)
	assert.NotContains(t, content, "uncon.Func")
	assert.NotContains(t, content, "import")
	assert.NotContains(t, content, "// NibbleFromUnchecked")

	cfg = testConfig()
	cfg.PackagePath = DefaultUnconImport

	file, err = NewGenerator(cfg).Generate([]*shape.Decl{nibbleDecl()})
	require.NoError(t, err)
	assert.NotContains(t, string(file.Content), "import")
}

func TestGenerator_Generate_UnconAlias(t *testing.T) {
	t.Parallel()

	d := nibbleDecl()
	d.Imports = []shape.Import{{Path: DefaultUnconImport, Name: "uc"}}

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), `uc "unchecked-convert/uncon"`)
	assert.Contains(t, string(file.Content), "uc.Func[uint8, Nibble]")
}

func TestGenerator_Generate_Concurrent(t *testing.T) {
	t.Parallel()

	g := NewGenerator(testConfig())
	want, err := g.Generate([]*shape.Decl{flagDecl(), nibbleDecl()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, err := g.Generate([]*shape.Decl{flagDecl(), nibbleDecl()})
			if assert.NoError(t, err) {
				assert.Equal(t, want.Content, got.Content)
			}
		}()
	}

	wg.Wait()
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	file := &GeneratedFile{Filename: "x_uncon.go", Content: []byte("package x\n")}

	p, err := WriteFile(file, dir)
	require.NoError(t, err)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(b))
}

func TestGenerator_Render_FormatFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig()
	cfg.OutputDir = dir

	d := nibbleDecl()
	d.Fields[0].Type = "uint8 {"

	_, err := NewGenerator(cfg).Generate([]*shape.Decl{d})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting code")
	assert.FileExists(t, filepath.Join(dir, "example_uncon.go.unformatted"))
}

func TestGenerator_Generate_ImportAliases(t *testing.T) {
	t.Parallel()

	plain := &shape.Decl{
		Name:    "Wide",
		Kind:    shape.DeclStruct,
		Fields:  []shape.Field{{Name: "n", Type: "*big.Int"}},
		Imports: []shape.Import{{Path: "math/big"}},
	}
	aliased := &shape.Decl{
		Name:    "Ratio",
		Kind:    shape.DeclStruct,
		Fields:  []shape.Field{{Name: "r", Type: "*mb.Rat"}},
		Imports: []shape.Import{{Path: "math/big", Name: "mb"}},
	}

	file, err := NewGenerator(testConfig()).Generate([]*shape.Decl{plain, aliased})
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "\t\"math/big\"\n\tmb \"math/big\"\n")
	assert.Contains(t, content, "return Wide{n: in}")
	assert.Contains(t, content, "return Ratio{r: in}")
}

func TestGenerator_Generate_ImportConflict(t *testing.T) {
	t.Parallel()

	rand := &shape.Decl{
		Name:    "Seed",
		Kind:    shape.DeclStruct,
		Fields:  []shape.Field{{Name: "src", Type: "*rand.Rand"}},
		Imports: []shape.Import{{Path: "math/rand"}},
	}
	cryptoRand := &shape.Decl{
		Name:    "Key",
		Kind:    shape.DeclStruct,
		Fields:  []shape.Field{{Name: "r", Type: "rand.Reader"}},
		Imports: []shape.Import{{Path: "crypto/rand"}},
		Pos:     "key.go:4:6",
	}

	_, err := NewGenerator(testConfig()).Generate([]*shape.Decl{rand, cryptoRand})
	require.ErrorIs(t, err, ErrImportConflict)

	diags, ok := diagnostic.As(err)
	require.True(t, ok)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CodeImportConflict, diags[0].Code)
	assert.Equal(t, "Key", diags[0].Decl)
}

func TestGenerator_Generate_UnconNameTaken(t *testing.T) {
	t.Parallel()

	d := nibbleDecl()
	d.Imports = []shape.Import{{Path: "example.com/other", Name: "uncon"}}

	_, err := NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.ErrorIs(t, err, ErrImportConflict)
}

func TestGenerator_Generate_VariantOverflow(t *testing.T) {
	t.Parallel()

	variants := make([]shape.Variant, 0, 257)
	for i := range 257 {
		variants = append(variants, shape.Variant{Name: fmt.Sprintf("V%d", i)})
	}

	d := &shape.Decl{
		Name:       "Big",
		Kind:       shape.DeclEnum,
		Variants:   variants,
		Define:     true,
		Directives: []directive.Item{directive.List(directive.Repr, directive.Word("uint8"))},
	}

	_, err := NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.ErrorIs(t, err, ErrVariantOverflow)

	diags, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeVariantOverflow, diags[0].Code)

	// Exactly filling the representation is fine, and so is any count for types that are
	// not defined by the generated file.
	d.Variants = variants[:256]
	_, err = NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.NoError(t, err)

	d.Variants = variants
	d.Define = false
	_, err = NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.NoError(t, err)

	d.Define = true
	d.Directives = []directive.Item{directive.List(directive.Repr, directive.Word("int8"))}
	d.Variants = variants[:129]
	_, err = NewGenerator(testConfig()).Generate([]*shape.Decl{d})
	require.ErrorIs(t, err, ErrVariantOverflow)
}
