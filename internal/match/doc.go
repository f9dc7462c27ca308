// Package match provides name normalisation and edit distance for
// suggesting the attribute or element an author most likely meant.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so "web_site" and "WebSite" compare equal
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against a misspelled one
package match
