package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes for diagnostics produced by the generator.
const (
	CodeNonUnitVariant  = "UNCON_NON_UNIT_VARIANT"
	CodeNoRepr          = "UNCON_NO_REPR"
	CodeNoIntegerRepr   = "UNCON_NO_INTEGER_REPR"
	CodeFieldCount      = "UNCON_FIELD_COUNT"
	CodeDuplicateSource = "UNCON_DUPLICATE_SOURCE"
	CodeIgnoredArgument = "UNCON_IGNORED_ARGUMENT"
	CodeVariantOverflow = "UNCON_VARIANT_OVERFLOW"
	CodeImportConflict  = "UNCON_IMPORT_CONFLICT"
)

// Diagnostics holds all diagnostic information from one generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Decl names the declaration this relates to.
	Decl string
	// Pos is the source position of the declaration, if known.
	Pos string
	// Err is the underlying error, matched by errors.Is on the combined error.
	Err error
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic. err may be nil.
func (d *Diagnostics) AddError(code, decl, pos string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  msg,
		Decl:     decl,
		Pos:      pos,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, decl, pos string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Decl:     decl,
		Pos:      pos,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Err returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	return &Error{Diagnostics: d.Errors}
}

// Error is the error returned when generation fails.
type Error struct {
	Diagnostics []Diagnostic
}

// Error implements error.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, "; ")
}

// Unwrap returns the underlying errors so errors.Is and errors.As see them.
func (e *Error) Unwrap() []error {
	var errs []error

	for _, d := range e.Diagnostics {
		if d.Err != nil {
			errs = append(errs, d.Err)
		}
	}

	return errs
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos)
	}

	if d.Decl != "" {
		prefix = append(prefix, d.Decl)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// As returns the generation diagnostics carried by err, if any.
func As(err error) ([]Diagnostic, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Diagnostics, true
	}

	return nil, false
}
