package diagnostic

import (
	"slices"

	"iismap/internal/common"
)

// Policy adjusts diagnostics after a pass, as configured by the user.
type Policy struct {
	// Suppress drops warnings and infos with these codes. Errors are never suppressed.
	Suppress []Code
	// WarningsAsErrors promotes every remaining warning to an error.
	WarningsAsErrors bool
}

// Apply rewrites d according to p.
func (d *Diagnostics) Apply(p Policy) {
	keep := func(diag Diagnostic) bool {
		return !slices.Contains(p.Suppress, diag.Code)
	}

	d.Warnings = common.Filter(d.Warnings, keep)
	d.Infos = common.Filter(d.Infos, keep)

	if !p.WarningsAsErrors {
		return
	}

	for _, w := range d.Warnings {
		w.Severity = DiagnosticError
		d.Errors = append(d.Errors, w)
	}

	d.Warnings = nil
}
