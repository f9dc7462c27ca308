package diagnostic

import (
	"fmt"
	"slices"
	"strings"
)

// Code identifies a class of diagnostic. Codes are stable and may be suppressed by configuration.
type Code string

const (
	// Schema violations.
	CodeExpectedAttribute           Code = "expected_attribute"
	CodeExpectedElement             Code = "expected_element"
	CodeExpectedParent              Code = "expected_parent"
	CodeIllegalAttributeValue       Code = "illegal_attribute_value"
	CodeIllegalAttributeCombination Code = "illegal_attribute_combination"
	CodeUnexpectedAttribute         Code = "unexpected_attribute"
	CodeUnexpectedElement           Code = "unexpected_element"
	CodeUnexpectedText              Code = "unexpected_text"
	CodeDuplicateIdentifier         Code = "duplicate_identifier"

	// Referential integrity.
	CodeUnresolvedReference Code = "unresolved_reference"

	// Reconstruction.
	CodeDanglingReference Code = "dangling_reference"
	CodeUnknownBits       Code = "unknown_bits"
	CodeUnknownValue      Code = "unknown_value"
	CodeMalformedRow      Code = "malformed_row"
)

var knownCodes = []Code{
	CodeExpectedAttribute, CodeExpectedElement, CodeExpectedParent,
	CodeIllegalAttributeValue, CodeIllegalAttributeCombination,
	CodeUnexpectedAttribute, CodeUnexpectedElement, CodeUnexpectedText,
	CodeDuplicateIdentifier, CodeUnresolvedReference,
	CodeDanglingReference, CodeUnknownBits, CodeUnknownValue, CodeMalformedRow,
}

// KnownCodes returns every code the translators emit.
func KnownCodes() []Code {
	return slices.Clone(knownCodes)
}

// IsKnown reports whether c is emitted by the translators.
func (c Code) IsKnown() bool {
	return slices.Contains(knownCodes, c)
}

// ExpectedAttribute reports a required attribute that was not found.
func ExpectedAttribute(loc Location, element, attribute string) Diagnostic {
	return Diagnostic{
		Severity:  DiagnosticError,
		Code:      CodeExpectedAttribute,
		Message:   fmt.Sprintf("The %s/@%s attribute was not found; it is required.", element, attribute),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute},
	}
}

// ExpectedAttributeWhen reports an attribute required because another attribute has a given value.
func ExpectedAttributeWhen(loc Location, element, attribute, other, otherValue string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeExpectedAttribute,
		Message: fmt.Sprintf("The %s/@%s attribute was not found; it is required when @%s is %q.",
			element, attribute, other, otherValue),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, other, otherValue},
	}
}

// ExpectedOneOf reports that none of a set of alternative attributes was given.
func ExpectedOneOf(loc Location, element string, attributes ...string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeExpectedAttribute,
		Message: fmt.Sprintf("The %s element requires one of these attributes: %s.",
			element, strings.Join(attributes, ", ")),
		Location: loc,
		Element:  element,
		Args:     append([]string{element}, attributes...),
	}
}

// ExpectedElement reports a required child element that is missing.
func ExpectedElement(loc Location, element, child string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeExpectedElement,
		Message:  fmt.Sprintf("A %s element must have at least one child %s element.", element, child),
		Location: loc,
		Element:  element,
		Args:     []string{element, child},
	}
}

// ExpectedParent reports an element that needs an ancestor it does not have.
func ExpectedParent(loc Location, element, ancestor string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeExpectedParent,
		Message:  fmt.Sprintf("The %s element must be nested under a %s element.", element, ancestor),
		Location: loc,
		Element:  element,
		Args:     []string{element, ancestor},
	}
}

// IllegalAttributeValue reports a value outside the attribute's allowed set.
func IllegalAttributeValue(loc Location, element, attribute, value string, legal ...string) Diagnostic {
	msg := fmt.Sprintf("The %s/@%s attribute's value, %q, is not legal.", element, attribute, value)
	if len(legal) > 0 {
		msg = fmt.Sprintf("The %s/@%s attribute's value, %q, is not one of the legal options: %s.",
			element, attribute, value, strings.Join(legal, ", "))
	}

	return Diagnostic{
		Severity:  DiagnosticError,
		Code:      CodeIllegalAttributeValue,
		Message:   msg,
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      append([]string{element, attribute, value}, legal...),
	}
}

// IntegerOutOfRange reports a numeric attribute outside [lo, hi].
func IntegerOutOfRange(loc Location, element, attribute, value string, lo, hi int) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeIllegalAttributeValue,
		Message: fmt.Sprintf("The %s/@%s attribute's value, %s, is outside the range %d to %d.",
			element, attribute, value, lo, hi),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, value, fmt.Sprint(lo), fmt.Sprint(hi)},
	}
}

// IllegalAttributeCombination reports two attributes that may not both be set.
func IllegalAttributeCombination(loc Location, element, attribute, other string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeIllegalAttributeCombination,
		Message: fmt.Sprintf("The %s/@%s attribute cannot be specified with the @%s attribute.",
			element, attribute, other),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, other},
	}
}

// IllegalAttributeWithout reports an attribute that only makes sense together with another.
func IllegalAttributeWithout(loc Location, element, attribute, other string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeIllegalAttributeCombination,
		Message: fmt.Sprintf("The %s/@%s attribute can only be specified with the @%s attribute.",
			element, attribute, other),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, other},
	}
}

// IllegalAttributeWithValue reports an attribute that requires another attribute to hold a value.
func IllegalAttributeWithValue(loc Location, element, attribute, other, otherValue string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeIllegalAttributeCombination,
		Message: fmt.Sprintf("The %s/@%s attribute can only be specified when @%s is %q.",
			element, attribute, other, otherValue),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, other, otherValue},
	}
}

// IllegalAttributeWhenNested reports an attribute whose value is implied by the enclosing element.
func IllegalAttributeWhenNested(loc Location, element, attribute, parent string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeIllegalAttributeCombination,
		Message: fmt.Sprintf("The %s/@%s attribute cannot be specified when the element is nested under %s.",
			element, attribute, parent),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, parent},
	}
}

// IllegalAttributeWithChild reports an attribute that duplicates what a nested child element declares.
func IllegalAttributeWithChild(loc Location, element, attribute, child string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeIllegalAttributeCombination,
		Message: fmt.Sprintf("The %s/@%s attribute cannot be specified together with a nested %s element.",
			element, attribute, child),
		Location:  loc,
		Element:   element,
		Attribute: attribute,
		Args:      []string{element, attribute, child},
	}
}

// TooManyChildren reports a child element that may appear at most once.
func TooManyChildren(loc Location, element, child string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeUnexpectedElement,
		Message:  fmt.Sprintf("The %s element may contain at most one %s element.", element, child),
		Location: loc,
		Element:  element,
		Args:     []string{element, child},
	}
}

// UnexpectedAttribute reports an attribute the element does not declare.
func UnexpectedAttribute(loc Location, element, attribute string, suggestions []string) Diagnostic {
	return Diagnostic{
		Severity:    DiagnosticError,
		Code:        CodeUnexpectedAttribute,
		Message:     fmt.Sprintf("The %s element contains an unexpected attribute %q.", element, attribute),
		Location:    loc,
		Element:     element,
		Attribute:   attribute,
		Args:        []string{element, attribute},
		Suggestions: suggestions,
	}
}

// UnexpectedElement reports a child element not allowed under parent.
func UnexpectedElement(loc Location, parent, child string, suggestions []string) Diagnostic {
	return Diagnostic{
		Severity:    DiagnosticError,
		Code:        CodeUnexpectedElement,
		Message:     fmt.Sprintf("The %s element contains an unexpected child element %q.", parent, child),
		Location:    loc,
		Element:     parent,
		Args:        []string{parent, child},
		Suggestions: suggestions,
	}
}

// UnexpectedText reports inner text on an element that carries only attributes.
func UnexpectedText(loc Location, element string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeUnexpectedText,
		Message:  fmt.Sprintf("The %s element contains illegal inner text.", element),
		Location: loc,
		Element:  element,
		Args:     []string{element},
	}
}

// DuplicateIdentifier reports a second row with an existing key.
func DuplicateIdentifier(loc Location, element, table, key string) Diagnostic {
	return Diagnostic{
		Severity:  DiagnosticError,
		Code:      CodeDuplicateIdentifier,
		Message:   fmt.Sprintf("Duplicate %s identifier %q; identifiers must be unique within a table.", table, key),
		Location:  loc,
		Element:   element,
		Attribute: "Id",
		Args:      []string{table, key},
	}
}

// UnresolvedReference reports a foreign key with no target row at the end of a pass.
func UnresolvedReference(loc Location, fromTable, fromKey, table, key string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeUnresolvedReference,
		Message: fmt.Sprintf("The %s row %q references %s %q, which does not exist.",
			fromTable, fromKey, table, key),
		Location: loc,
		Element:  fromTable,
		Args:     []string{fromTable, fromKey, table, key},
	}
}

// DanglingReference reports a reconstructed element whose parent element was not found.
func DanglingReference(fromTable, fromKey, table, key string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticWarning,
		Code:     CodeDanglingReference,
		Message: fmt.Sprintf("The %s row %q has parent %s %q, which does not exist; the row was skipped.",
			fromTable, fromKey, table, key),
		Element: fromTable,
		Args:    []string{fromTable, fromKey, table, key},
	}
}

// UnreachableParent reports a reconstructed element whose parent chain
// loops back on itself instead of reaching the document root.
func UnreachableParent(fromTable, fromKey, table, key string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticWarning,
		Code:     CodeDanglingReference,
		Message: fmt.Sprintf("The %s row %q has parent %s %q, whose ancestry never reaches the document root; the row was skipped.",
			fromTable, fromKey, table, key),
		Element: fromTable,
		Args:    []string{fromTable, fromKey, table, key},
	}
}

// UnknownBits reports bits in a packed column that no attribute accounts for.
func UnknownBits(table, key, column string, bits int) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticWarning,
		Code:     CodeUnknownBits,
		Message: fmt.Sprintf("The %s row %q has unknown bits 0x%x set in column %s.",
			table, key, bits, column),
		Element:   table,
		Attribute: column,
		Args:      []string{table, key, column, fmt.Sprintf("0x%x", bits)},
	}
}

// UnknownValue reports a column value with no symbolic attribute form.
func UnknownValue(table, key, column, value string) Diagnostic {
	return Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      CodeUnknownValue,
		Message:   fmt.Sprintf("The %s row %q has unknown value %q in column %s.", table, key, value, column),
		Element:   table,
		Attribute: column,
		Args:      []string{table, key, column, value},
	}
}

// MalformedRow reports a row that could not be decoded into its record type.
func MalformedRow(table, key string, err error) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeMalformedRow,
		Message:  fmt.Sprintf("The %s row %q is malformed: %v.", table, key, err),
		Element:  table,
		Args:     []string{table, key, err.Error()},
	}
}
