package config

import (
	"fmt"

	"iismap/internal/diagnostic"
	"iismap/internal/match"
)

const (
	codeInvalidConfig diagnostic.Code = "invalid_config"
	codeUnknownCode   diagnostic.Code = "unknown_code"
)

// Validate checks a configuration. Unknown suppressed codes are warnings,
// since a newer configuration may name codes this build does not emit.
func Validate(c *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if c == nil {
		res.AddError(codeInvalidConfig, diagnostic.Location{}, "", "", "config is nil")
		return res
	}

	if c.Version != "1" {
		res.AddError(codeInvalidConfig, diagnostic.Location{}, "version", "",
			fmt.Sprintf("unsupported config version %q", c.Version))
	}

	if !c.Output.Format.IsValid() {
		res.AddError(codeInvalidConfig, diagnostic.Location{}, "output", "format",
			fmt.Sprintf("unknown output format %q (want yaml or sqlite)", c.Output.Format))
	}

	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		res.AddError(codeInvalidConfig, diagnostic.Location{}, "log", "",
			"log rotation limits cannot be negative")
	}

	known := make([]string, 0, len(diagnostic.KnownCodes()))
	for _, k := range diagnostic.KnownCodes() {
		known = append(known, string(k))
	}

	for _, s := range c.Suppress {
		if diagnostic.Code(s).IsKnown() {
			continue
		}

		res.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticWarning,
			Code:        codeUnknownCode,
			Message:     fmt.Sprintf("suppress names unknown diagnostic code %q", s),
			Element:     "suppress",
			Suggestions: match.Suggest(s, known, 3),
		})
	}

	return res
}
