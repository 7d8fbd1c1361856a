// Package uncon provides unchecked conversions between types.
//
// A type may wrap another while maintaining invariants the inner type does not
// guarantee: a byte that only ever has its low four bits set, or a byte slice that is
// known to hold valid text. The checked way to build such a type validates its input.
// The unchecked way, described by [FromUnchecked], trusts the caller instead.
//
// Calling an unchecked conversion with a value that does not satisfy the target's
// invariants is undefined behavior. Nothing in this package reports an error.
//
// Every [FromUnchecked] also gives an [IntoUnchecked] through [Into]:
//
//	var nibble uncon.FromUnchecked[uint8, Nibble] = uncon.Func[uint8, Nibble](NibbleFromUnchecked)
//	n := uncon.Into(nibble).IntoUnchecked(0b1010)
//
// Implementations for single-field structs and integer enums are generated by
// cmd/uncon-gen.
package uncon
