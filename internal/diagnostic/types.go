package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"iismap/internal/common"
)

// Diagnostics holds all diagnostic information from one translation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Location points at the source of a diagnostic. Line is 1-based; zero means unknown.
type Location struct {
	File string
	Line int
}

// String returns "file(line)", "file", "line N" or "" depending on what is known.
func (l Location) String() string {
	switch {
	case l.File != "" && l.Line > 0:
		return fmt.Sprintf("%s(%d)", l.File, l.Line)
	case l.File != "":
		return l.File
	case l.Line > 0:
		return fmt.Sprintf("line %d", l.Line)
	default:
		return ""
	}
}

// IsZero reports whether nothing is known about the location.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// At returns a copy of l pointing at line.
func (l Location) At(line int) Location {
	l.Line = line
	return l
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description with Args substituted.
	Message string
	// Location is where the offending element was authored (if known).
	Location Location
	// Element names the XML element, or the table for row diagnostics.
	Element string
	// Attribute names the attribute, or the column for row diagnostics.
	Attribute string
	// Args are the values substituted into Message, in order.
	Args []string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add records d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, loc Location, element, attribute, message string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		Location:  loc,
		Element:   element,
		Attribute: attribute,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, loc Location, element, attribute, message string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		Location:  loc,
		Element:   element,
		Attribute: attribute,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, loc Location, element, attribute, message string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticInfo,
		Code:      code,
		Message:   message,
		Location:  loc,
		Element:   element,
		Attribute: attribute,
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
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Count returns how many diagnostics of any severity carry code.
func (d *Diagnostics) Count(code Code) int {
	n := 0

	for _, diag := range d.All() {
		if diag.Code == code {
			n++
		}
	}

	return n
}

// WithCode returns the diagnostics of any severity that carry code.
func (d *Diagnostics) WithCode(code Code) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// All returns every diagnostic, errors first, in the order recorded.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	return all
}

// Sorted returns every diagnostic ordered by file, line, then severity (errors first).
func (d *Diagnostics) Sorted() []Diagnostic {
	all := d.All()

	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Location.File, b.Location.File); c != 0 {
			return c
		}

		if a.Location.Line != b.Location.Line {
			return a.Location.Line - b.Location.Line
		}

		return int(b.Severity) - int(a.Severity)
	})

	return all
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if loc := d.Location.String(); loc != "" {
		prefix = append(prefix, loc+":")
	}

	prefix = append(prefix, d.Severity.String())

	if d.Code != "" {
		prefix = append(prefix, "["+string(d.Code)+"]")
	}

	msg := d.Message
	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if subject := d.Subject(); subject != "" {
		return strings.Join(prefix, " ") + " " + subject + ": " + msg
	}

	return strings.Join(prefix, " ") + " " + msg
}

// Subject returns "Element/@Attribute", "Element" or "".
func (d Diagnostic) Subject() string {
	switch {
	case d.Element != "" && d.Attribute != "":
		return d.Element + "/@" + d.Attribute
	default:
		return d.Element
	}
}
