// Package shape classifies static type declarations for unchecked conversion
// generation.
//
// A [Decl] is the input: a type name, its type parameters, either its fields or its
// variants, and the directives attached to it. [Classify] turns it into one of the two
// supported shapes:
//   - [Wrapper]: a struct with exactly one field; the field type is the primary
//     representation.
//   - [Enum]: a data-less enumeration whose repr directive names one of the ten
//     integer kinds; that kind is the primary representation.
//
// [CollectSources] gathers the additional source types listed in
// `uncon(other(...))` directives.
package shape
