// Package diagnostic provides structured errors and warnings for the unchecked
// conversion generator.
//
// Key capabilities:
//   - Generation errors that abort a declaration (non-unit variant, missing repr,
//     no integer repr, wrong field count)
//   - Warnings for skipped secondary sources
//   - A combined error value that still matches the sentinel errors with errors.Is
package diagnostic
