// Package directive parses the attribute-like directives attached to declarations.
//
// A directive is a tree of meta items:
//   - a word: `uint8`
//   - a list: `other(uint16, uint32)`
//   - a literal: anything else, such as `"text"` or `pkg.Type`
//
// Directives are written in Go expression syntax and parsed with go/parser, so
// `repr(uint8)` and `uncon(other(uint16, uint32))` need no custom grammar.
//
// In Go source they appear as comment directives on the type declaration:
//
//	//uncon:repr(uint8)
//	//uncon:other(uint16, uint32)
//	type Flag uint8
//
// The repr directive stays top level; every other `//uncon:` directive is wrapped in
// an `uncon(...)` list.
package directive
