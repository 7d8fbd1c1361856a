// Package declfile loads type declarations from YAML.
//
// Declarations read from a file are generated together with their conversions, so
// a file can describe types that do not exist in Go source yet, including enums with
// data-carrying variants that the generator must reject.
//
// # Schema Overview
//
//	package: shapes
//	imports:
//	  - path: time
//	  - path: example.com/units
//	    name: u
//	decls:
//	  # struct with one named field
//	  - name: Nibble
//	    fields:
//	      - {name: bits, type: uint8}
//	  # positional field and type parameters
//	  - name: Box
//	    type_params:
//	      - {name: T, constraint: any}
//	    fields:
//	      - {type: T}
//	  # enum; variants are either names or {name, fields}
//	  - name: Flag
//	    variants: [FlagA, FlagB]
//	    directives:
//	      - repr(uint8)
//	      - uncon(other(uint16, uint32))
//
// A declaration is an enum when it lists variants or sets `kind: enum`, and a struct
// otherwise. Imports are attached to the declarations whose field types use them.
package declfile
