package schema

import (
	"iismap/internal/diagnostic"
	"iismap/internal/xmltree"
)

// Values holds the attributes of one element that passed validation.
// Accessors return nil for attributes that are absent or were rejected.
type Values struct {
	el   *xmltree.Element
	spec *ElementSpec
	loc  diagnostic.Location
	strs map[string]string
	ints map[string]int
}

// Element returns the validated element.
func (v *Values) Element() *xmltree.Element { return v.el }

// Location returns the source location of the element.
func (v *Values) Location() diagnostic.Location { return v.loc }

// Has reports whether name holds a legal value.
func (v *Values) Has(name string) bool {
	_, ok := v.strs[name]
	return ok
}

// String returns the value of name.
func (v *Values) String(name string) *string {
	s, ok := v.strs[name]
	if !ok {
		return nil
	}

	return &s
}

// StringOr returns the value of name or def.
func (v *Values) StringOr(name, def string) string {
	if s, ok := v.strs[name]; ok {
		return s
	}

	return def
}

// Int returns the value of an integer attribute.
func (v *Values) Int(name string) *int {
	n, ok := v.ints[name]
	if !ok {
		return nil
	}

	return &n
}

// YesNo returns the value of a yes/no attribute.
func (v *Values) YesNo(name string) *bool {
	s, ok := v.strs[name]
	if !ok {
		return nil
	}

	b := s == "yes"

	return &b
}

// IsYes reports whether name is present and "yes".
func (v *Values) IsYes(name string) bool {
	return v.strs[name] == "yes"
}

// YesNoInt returns 1 for yes and 0 for no.
func (v *Values) YesNoInt(name string) *int {
	b := v.YesNo(name)
	if b == nil {
		return nil
	}

	n := 0
	if *b {
		n = 1
	}

	return &n
}

// Text returns the element's inner text.
func (v *Values) Text() string { return v.el.Text }

func (v *Values) drop(name string) {
	delete(v.strs, name)
	delete(v.ints, name)
}
