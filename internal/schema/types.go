package schema

import (
	"math"
	"slices"
)

// AttrType is the lexical type of an attribute value.
type AttrType string

const (
	TypeString     AttrType = "string"
	TypeIdentifier AttrType = "identifier"
	TypeInteger    AttrType = "integer"
	TypeYesNo      AttrType = "yesno"
	TypeEnum       AttrType = "enum"
	TypeTime       AttrType = "time"
)

// IsValid returns true if the type is a recognized value.
func (t AttrType) IsValid() bool {
	switch t {
	case TypeString, TypeIdentifier, TypeInteger, TypeYesNo, TypeEnum, TypeTime:
		return true
	default:
		return false
	}
}

// MaxIdentifierLength is the longest legal identifier.
const MaxIdentifierLength = 72

// Schema is the root of the grammar document.
type Schema struct {
	// Version of the grammar document.
	Version string `yaml:"version,omitempty"`

	// Root names the document element.
	Root string `yaml:"root"`

	// Elements maps element names to their declarations.
	Elements map[string]*ElementSpec `yaml:"elements"`
}

// ElementSpec declares one element.
type ElementSpec struct {
	// Name is filled from the map key.
	Name string `yaml:"-"`

	// Table is the row table the element compiles into (informational).
	Table string `yaml:"table,omitempty"`

	// Attributes in declaration order.
	Attributes []AttributeSpec `yaml:"attributes,omitempty"`

	// Exclusive lists attribute sets of which at most one may be present.
	Exclusive [][]string `yaml:"exclusive,omitempty"`

	// Children lists the element names allowed directly under this one.
	Children []string `yaml:"children,omitempty"`

	// Text allows non-whitespace inner text.
	Text bool `yaml:"text,omitempty"`
}

// AttributeSpec declares one attribute.
type AttributeSpec struct {
	Name     string   `yaml:"name"`
	Type     AttrType `yaml:"type"`
	Required bool     `yaml:"required,omitempty"`
	Min      *int     `yaml:"min,omitempty"`
	Max      *int     `yaml:"max,omitempty"`
	Values   []string `yaml:"values,omitempty"`
}

// Bounds returns the inclusive integer range, defaulting to the int32 range.
func (a AttributeSpec) Bounds() (lo, hi int) {
	lo, hi = math.MinInt32, math.MaxInt32
	if a.Min != nil {
		lo = *a.Min
	}

	if a.Max != nil {
		hi = *a.Max
	}

	return lo, hi
}

// Attribute returns the declaration of name, or nil.
func (e *ElementSpec) Attribute(name string) *AttributeSpec {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			return &e.Attributes[i]
		}
	}

	return nil
}

// AttributeNames returns declared attribute names in order.
func (e *ElementSpec) AttributeNames() []string {
	names := make([]string, len(e.Attributes))
	for i, a := range e.Attributes {
		names[i] = a.Name
	}

	return names
}

// Element returns the declaration of name, or nil.
func (s *Schema) Element(name string) *ElementSpec {
	return s.Elements[name]
}

// AllowsChild reports whether child may appear directly under parent.
func (s *Schema) AllowsChild(parent, child string) bool {
	spec := s.Elements[parent]
	if spec == nil {
		return false
	}

	return slices.Contains(spec.Children, child)
}

// ElementNames returns every declared element name, sorted.
func (s *Schema) ElementNames() []string {
	names := make([]string, 0, len(s.Elements))
	for n := range s.Elements {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}
