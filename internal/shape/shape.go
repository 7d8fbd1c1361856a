package shape

import (
	"errors"
	"fmt"

	"unchecked-convert/internal/directive"
	"unchecked-convert/primitive"
)

// Generation errors. Classify wraps them with the offending element.
var (
	ErrNonUnitVariant = errors.New("non-unit variant found")
	ErrNoRepr         = errors.New("no representation attribute")
	ErrNoIntegerRepr  = errors.New("no integer representation found for conversion")
	ErrFieldCount     = errors.New("must have exactly one field")
	ErrUnknownKind    = errors.New("unsupported declaration kind")
)

//go:generate go tool stringer -type=Binding -output=binding_string.go

// Binding tells how a wrapper's field is written in a composite literal.
type Binding int

const (
	_ Binding = iota
	BindNamed
	BindPositional
)

// Shape is a classified declaration. It is either a Wrapper or an Enum.
type Shape interface {
	// TypeName is the declared type name.
	TypeName() string
	// Params are the declaration's type parameters.
	Params() TypeParams
	// Primary is the primary representation type.
	Primary() string

	isShape()
}

// Wrapper is a struct with exactly one field.
type Wrapper struct {
	Name       string
	TypeParams TypeParams
	Field      Field
	Binding    Binding
}

// Enum is a data-less enumeration with an integer representation.
type Enum struct {
	Name       string
	TypeParams TypeParams
	Variants   []string
	Repr       primitive.KindEnum
	// ReprName is the representation as written, e.g. "byte" for KindUint8.
	ReprName string
}

func (w *Wrapper) TypeName() string   { return w.Name }
func (w *Wrapper) Params() TypeParams { return w.TypeParams }
func (w *Wrapper) Primary() string    { return w.Field.Type }
func (*Wrapper) isShape()             {}

func (e *Enum) TypeName() string   { return e.Name }
func (e *Enum) Params() TypeParams { return e.TypeParams }
func (e *Enum) Primary() string    { return e.ReprName }
func (*Enum) isShape()             {}

// Classify checks the declaration and returns its shape.
func Classify(d *Decl) (Shape, error) {
	switch d.Kind {
	case DeclStruct:
		return classifyStruct(d)
	case DeclEnum:
		return classifyEnum(d)
	default:
		return nil, fmt.Errorf("%s: %w %q", d.Name, ErrUnknownKind, d.Kind)
	}
}

func classifyStruct(d *Decl) (*Wrapper, error) {
	if len(d.Fields) != 1 {
		return nil, fmt.Errorf("struct %s %w, found %d", d.Name, ErrFieldCount, len(d.Fields))
	}

	field := d.Fields[0]
	binding := BindNamed
	if field.Name == "" || field.Name == "_" {
		binding = BindPositional
	}

	return &Wrapper{
		Name:       d.Name,
		TypeParams: d.TypeParams,
		Field:      field,
		Binding:    binding,
	}, nil
}

func classifyEnum(d *Decl) (*Enum, error) {
	variants := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		if !v.IsUnit() {
			return nil, fmt.Errorf("enum %s: %w: %q", d.Name, ErrNonUnitVariant, v.Name)
		}

		variants = append(variants, v.Name)
	}

	reprs := directive.Lists(d.Directives, directive.Repr)
	if len(reprs) == 0 {
		return nil, fmt.Errorf("enum %s: %w", d.Name, ErrNoRepr)
	}

	kind, name, ok := integerRepr(reprs[0])
	if !ok {
		return nil, fmt.Errorf("enum %s: %w in %s", d.Name, ErrNoIntegerRepr,
			directive.List(directive.Repr, reprs[0]...))
	}

	return &Enum{
		Name:       d.Name,
		TypeParams: d.TypeParams,
		Variants:   variants,
		Repr:       kind,
		ReprName:   name,
	}, nil
}

// integerRepr returns the first word in args naming an integer kind.
func integerRepr(args []directive.Item) (primitive.KindEnum, string, bool) {
	for _, arg := range args {
		if !arg.IsWord() {
			continue
		}

		if kind, ok := primitive.Lookup(arg.Name); ok {
			return kind, arg.Name, true
		}
	}

	return 0, "", false
}

// Sources are the additional source types requested for a declaration.
type Sources struct {
	// Names in first-seen order. Duplicates are kept.
	Names []string
	// Ignored holds arguments of other(...) that are not plain identifiers.
	Ignored []directive.Item
}

// CollectSources gathers every plain identifier found in `other(...)` lists of every
// `uncon(...)` directive of the declaration.
func CollectSources(d *Decl) Sources {
	src := Sources{Names: []string{}}

	for _, unconArgs := range directive.Lists(d.Directives, directive.Uncon) {
		for _, otherArgs := range directive.Lists(unconArgs, directive.Other) {
			for _, arg := range otherArgs {
				if arg.IsWord() {
					src.Names = append(src.Names, arg.Name)
				} else {
					src.Ignored = append(src.Ignored, arg)
				}
			}
		}
	}

	return src
}
