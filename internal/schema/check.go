package schema

import (
	"fmt"

	"iismap/internal/diagnostic"
)

const codeInvalidSchema diagnostic.Code = "invalid_schema"

// Check validates the grammar document itself. It is a structural check:
// types are known, ranges are ordered, references between declarations resolve.
func Check(s *Schema) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if s == nil {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, "", "", "schema is nil")
		return res
	}

	if s.Root == "" {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, "", "", "schema has no root element")
	} else if s.Elements[s.Root] == nil {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, s.Root, "",
			fmt.Sprintf("root element %q is not declared", s.Root))
	}

	for _, name := range s.ElementNames() {
		checkElement(res, s, s.Elements[name])
	}

	return res
}

func checkElement(res *diagnostic.Diagnostics, s *Schema, spec *ElementSpec) {
	seen := map[string]struct{}{}

	for _, a := range spec.Attributes {
		if a.Name == "" {
			res.AddError(codeInvalidSchema, diagnostic.Location{}, spec.Name, "", "attribute without a name")
			continue
		}

		if _, ok := seen[a.Name]; ok {
			res.AddError(codeInvalidSchema, diagnostic.Location{}, spec.Name, a.Name, "duplicate attribute")
			continue
		}

		seen[a.Name] = struct{}{}

		checkAttribute(res, spec.Name, a)
	}

	for _, group := range spec.Exclusive {
		if len(group) < 2 {
			res.AddError(codeInvalidSchema, diagnostic.Location{}, spec.Name, "",
				fmt.Sprintf("exclusive set %v needs at least two attributes", group))
		}

		for _, n := range group {
			if _, ok := seen[n]; !ok {
				res.AddError(codeInvalidSchema, diagnostic.Location{}, spec.Name, n,
					"exclusive set names an undeclared attribute")
			}
		}
	}

	for _, child := range spec.Children {
		if s.Elements[child] == nil {
			res.AddError(codeInvalidSchema, diagnostic.Location{}, spec.Name, "",
				fmt.Sprintf("child element %q is not declared", child))
		}
	}
}

func checkAttribute(res *diagnostic.Diagnostics, element string, a AttributeSpec) {
	if !a.Type.IsValid() {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, element, a.Name,
			fmt.Sprintf("unknown attribute type %q", a.Type))

		return
	}

	if a.Type == TypeEnum && len(a.Values) == 0 {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, element, a.Name, "enum attribute has no values")
	}

	if a.Type != TypeEnum && len(a.Values) > 0 {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, element, a.Name, "values are only legal on enum attributes")
	}

	if (a.Min != nil || a.Max != nil) && a.Type != TypeInteger {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, element, a.Name, "min/max are only legal on integer attributes")
	}

	if lo, hi := a.Bounds(); lo > hi {
		res.AddError(codeInvalidSchema, diagnostic.Location{}, element, a.Name,
			fmt.Sprintf("min %d is greater than max %d", lo, hi))
	}
}
