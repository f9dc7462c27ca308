package schema

import (
	"regexp"
	"strconv"
	"strings"

	"iismap/internal/diagnostic"
	"iismap/internal/match"
	"iismap/internal/xmltree"
)

const maxSuggestions = 3

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	timePattern       = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// IsIdentifier reports whether s is a legal identifier.
func IsIdentifier(s string) bool {
	return len(s) <= MaxIdentifierLength && identifierPattern.MatchString(s)
}

// Validate checks el against its declaration and returns the attribute values
// that passed. Violations are added to diags; the offending attribute reads
// back as unset. loc supplies the file; the line comes from el.
func (s *Schema) Validate(el *xmltree.Element, loc diagnostic.Location, diags *diagnostic.Diagnostics) *Values {
	loc = loc.At(el.Line)

	spec := s.Elements[el.Name]
	v := &Values{
		el:   el,
		spec: spec,
		loc:  loc,
		strs: map[string]string{},
		ints: map[string]int{},
	}

	if spec == nil {
		parent := ""
		if el.Parent != nil {
			parent = el.Parent.Name
		}

		diags.Add(diagnostic.UnexpectedElement(loc, parent, el.Name, match.Suggest(el.Name, s.ElementNames(), maxSuggestions)))

		return v
	}

	for _, a := range el.Attrs {
		decl := spec.Attribute(a.Name)
		if decl == nil {
			diags.Add(diagnostic.UnexpectedAttribute(loc, el.Name, a.Name,
				match.Suggest(a.Name, spec.AttributeNames(), maxSuggestions)))

			continue
		}

		v.accept(*decl, a.Value, diags)
	}

	for _, decl := range spec.Attributes {
		if !decl.Required {
			continue
		}

		if _, ok := el.Attr(decl.Name); !ok {
			diags.Add(diagnostic.ExpectedAttribute(loc, el.Name, decl.Name))
		}
	}

	for _, group := range spec.Exclusive {
		var first string

		for _, name := range group {
			if _, ok := el.Attr(name); !ok {
				continue
			}

			if first == "" {
				first = name
				continue
			}

			diags.Add(diagnostic.IllegalAttributeCombination(loc, el.Name, name, first))
			v.drop(name)
		}
	}

	if !spec.Text && strings.TrimSpace(el.Text) != "" {
		diags.Add(diagnostic.UnexpectedText(loc, el.Name))
	}

	return v
}

// accept parses raw according to decl and records it when legal.
func (v *Values) accept(decl AttributeSpec, raw string, diags *diagnostic.Diagnostics) {
	name := v.el.Name

	switch decl.Type {
	case TypeString:
		v.strs[decl.Name] = raw

	case TypeIdentifier:
		if !IsIdentifier(raw) {
			diags.Add(diagnostic.IllegalAttributeValue(v.loc, name, decl.Name, raw))
			return
		}

		v.strs[decl.Name] = raw

	case TypeInteger:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			diags.Add(diagnostic.IllegalAttributeValue(v.loc, name, decl.Name, raw))
			return
		}

		lo, hi := decl.Bounds()
		if n < lo || n > hi {
			diags.Add(diagnostic.IntegerOutOfRange(v.loc, name, decl.Name, raw, lo, hi))
			return
		}

		v.strs[decl.Name] = raw
		v.ints[decl.Name] = n

	case TypeYesNo:
		if raw != "yes" && raw != "no" {
			diags.Add(diagnostic.IllegalAttributeValue(v.loc, name, decl.Name, raw, "yes", "no"))
			return
		}

		v.strs[decl.Name] = raw

	case TypeEnum:
		for _, legal := range decl.Values {
			if raw == legal {
				v.strs[decl.Name] = raw
				return
			}
		}

		diags.Add(diagnostic.IllegalAttributeValue(v.loc, name, decl.Name, raw, decl.Values...))

	case TypeTime:
		if !timePattern.MatchString(raw) {
			diags.Add(diagnostic.IllegalAttributeValue(v.loc, name, decl.Name, raw))
			return
		}

		v.strs[decl.Name] = raw
	}
}
