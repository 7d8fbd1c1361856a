package shape

import (
	"strings"

	"unchecked-convert/internal/directive"
)

// DeclKind is the structural kind of a declaration.
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclStruct
	DeclEnum
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Field is a struct field or a variant field. Name is empty for embedded (positional)
// fields.
type Field struct {
	Name string
	Type string
}

// Variant is an enum variant. A unit variant has no fields.
type Variant struct {
	Name   string
	Fields []Field
}

// IsUnit returns true if the variant carries no data.
func (v Variant) IsUnit() bool {
	return len(v.Fields) == 0
}

// TypeParam is a type parameter with its constraint.
type TypeParam struct {
	Name       string
	Constraint string
}

// TypeParams is an ordered type parameter list.
type TypeParams []TypeParam

// Decl returns the list as written in a declaration: "[T any, U ~int]".
func (tp TypeParams) Decl() string {
	if len(tp) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tp))
	for _, p := range tp {
		parts = append(parts, p.Name+" "+p.Constraint)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Args returns the list as written when instantiating: "[T, U]".
func (tp TypeParams) Args() string {
	if len(tp) == 0 {
		return ""
	}

	names := make([]string, 0, len(tp))
	for _, p := range tp {
		names = append(names, p.Name)
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// Decl is the static description of one type declaration.
type Decl struct {
	// Name is the type name.
	Name string
	// TypeParams are carried unmodified into every generated function.
	TypeParams TypeParams
	// Kind selects between Fields and Variants.
	Kind DeclKind
	// Fields of a struct declaration.
	Fields []Field
	// Variants of an enum declaration, in declaration order.
	Variants []Variant
	// Directives attached to the declaration, in order.
	Directives []directive.Item
	// Pos is the source position used in diagnostics.
	Pos string
	// Imports are the packages referenced by field types.
	Imports []Import
	// Define requests that the type definition itself is generated too.
	Define bool
}

// Import is a package referenced by a declaration. Name is set when the package is
// imported under an alias.
type Import struct {
	Path string
	Name string
}
