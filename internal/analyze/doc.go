// Package analyze provides package loading and declaration extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to turn Go type
// declarations into static shape.Decl descriptions:
//   - struct types: their fields as written in source
//   - named integer types: their constants, in declaration order, as variants
//   - `//uncon:` comment directives attached to the type declaration
//
// For enums without an explicit `//uncon:repr(...)` directive the representation is
// taken from the underlying type, so `type Flag uint8` behaves like `repr(uint8)`.
package analyze
