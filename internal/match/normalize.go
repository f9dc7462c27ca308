package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching:
// CamelCase is tokenized, separators (_, -, space) are dropped and
// the result is lower-cased.
func NormalizeIdent(s string) string {
	tokens := tokenizeCamelCase(s)

	return strings.ToLower(strings.Join(tokens, ""))
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "WebSite" -> ["Web", "Site"]
//   - "AccessSSL128" -> ["Access", "SSL128"]
//   - "IIsControlledPassword" -> ["IIs", "Controlled", "Password"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken reports a lower->upper transition or the end of an acronym.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser" -> "XML" + "Parser"
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
