// Package gen provides deterministic Go code generation for unchecked conversions.
//
// Generation approach uses text/template + go/format for readable Go code.
//
// For every classified declaration it emits:
//   - One primary function building the type from its primary representation
//     (composite literal for wrappers, plain conversion for enums)
//   - One secondary function per additional source type, converting the input to the
//     primary representation and calling the primary function
//   - Compile-time assertions tying non-generic functions to uncon.FromUnchecked
//   - The type definition itself, for declarations that ask for it
package gen
