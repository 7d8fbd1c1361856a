package gen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"unchecked-convert/internal/diagnostic"
	"unchecked-convert/internal/shape"
)

// BodyKind tells how a generated function builds its result.
type BodyKind int

const (
	BodyConstruct   BodyKind = iota + 1 // composite literal around the wrapped field
	BodyReinterpret                     // conversion of the integer to the enum type
	BodyDelegate                        // cast to the primary type, then call the primary function
)

// String returns a human-readable representation of the BodyKind.
func (k BodyKind) String() string {
	switch k {
	case BodyConstruct:
		return "construct"
	case BodyReinterpret:
		return "reinterpret"
	case BodyDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// Impl is one generated FromUnchecked implementation.
type Impl struct {
	// FuncName is the generated function name.
	FuncName string
	// TypeParams are copied from the declaration.
	TypeParams shape.TypeParams
	// Source is the parameter type.
	Source string
	// Target is the instantiated result type, e.g. "Box[T]".
	Target string
	// Kind of body.
	Kind BodyKind
	// Body is the returned expression.
	Body string
	// Doc is the doc comment text after the function name.
	Doc string
}

// Primary returns true if the implementation is the primary one.
func (i Impl) Primary() bool {
	return i.Kind != BodyDelegate
}

// PrimaryFuncName returns the name of the primary function generated for a type.
func PrimaryFuncName(typeName string) string {
	return typeName + "FromUnchecked"
}

// SecondaryFuncName returns the name of the function converting from source.
func SecondaryFuncName(typeName, source string) string {
	return typeName + "From" + capitalize(source) + "Unchecked"
}

// BuildImpls returns the primary implementation of s followed by one implementation per
// source, in order. A source whose function name was already generated is skipped and
// reported as a warning, since Go does not allow two functions with the same name.
func BuildImpls(s shape.Shape, sources []string) ([]Impl, []diagnostic.Diagnostic) {
	target := s.TypeName() + s.Params().Args()
	primary := s.Primary()
	primaryName := PrimaryFuncName(s.TypeName())

	impls := make([]Impl, 0, 1+len(sources))
	impls = append(impls, primaryImpl(s, target, primaryName))

	var warnings []diagnostic.Diagnostic

	seen := linkedhashset.New(primaryName)

	for _, src := range sources {
		name := SecondaryFuncName(s.TypeName(), src)
		if seen.Contains(name) {
			warnings = append(warnings, diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     diagnostic.CodeDuplicateSource,
				Message:  fmt.Sprintf("source %s already generated as %s, skipped", src, name),
				Decl:     s.TypeName(),
			})

			continue
		}

		seen.Add(name)

		impls = append(impls, Impl{
			FuncName:   name,
			TypeParams: s.Params(),
			Source:     src,
			Target:     target,
			Kind:       BodyDelegate,
			Body:       fmt.Sprintf("%s%s(%s)", primaryName, s.Params().Args(), conversion(primary, "in")),
			Doc:        fmt.Sprintf("converts in to %s and calls %s.", primary, primaryName),
		})
	}

	return impls, warnings
}

func primaryImpl(s shape.Shape, target, name string) Impl {
	impl := Impl{
		FuncName:   name,
		TypeParams: s.Params(),
		Source:     s.Primary(),
		Target:     target,
	}

	switch s := s.(type) {
	case *shape.Wrapper:
		impl.Kind = BodyConstruct
		impl.Doc = fmt.Sprintf("builds a %s from in without checking its invariants.", s.Name)

		if s.Binding == shape.BindNamed {
			impl.Body = fmt.Sprintf("%s{%s: in}", target, s.Field.Name)
		} else {
			impl.Body = target + "{in}"
		}

	case *shape.Enum:
		impl.Kind = BodyReinterpret
		impl.Doc = fmt.Sprintf("reinterprets in as a %s. in must be the value of a declared %s.", s.Name, s.Name)
		impl.Body = conversion(target, "in")
	}

	return impl
}

// conversion writes a conversion of expr to typ, parenthesizing types that would
// otherwise parse differently.
func conversion(typ, expr string) string {
	if strings.HasPrefix(typ, "*") || strings.HasPrefix(typ, "<-") || strings.HasPrefix(typ, "func") {
		typ = "(" + typ + ")"
	}

	return typ + "(" + expr + ")"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
