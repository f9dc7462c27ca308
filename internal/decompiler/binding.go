package decompiler

import (
	"fmt"
	"strconv"

	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/vocab"
	"iismap/internal/xmltree"
)

// placement says how phase two finds an element's parent.
type placement int

const (
	// placeUnder attaches under (parentTable, parentKey), or the root when parentKey is empty.
	placeUnder placement = iota
	// placeParentRef dispatches on the discriminator of ref.
	placeParentRef
	// placeSiteOrComponent nests under the site when it shares the
	// element's component and otherwise under the component.
	placeSiteOrComponent
)

// binding is a reconstructed element and where it belongs. It doubles as
// the builder that fills in the element's attributes.
type binding struct {
	table string
	key   string
	el    *xmltree.Element
	p     *pass

	placement   placement
	parentTable string
	parentKey   string
	ref         tables.ParentRef
	site        *string
	component   *string
	prepend     bool
}

func (p *pass) element(row *tables.Row, name string) *binding {
	return &binding{table: row.Table(), key: row.Key(), el: xmltree.New(name), p: p}
}

// under places the element below (table, key), or at the root when key is nil.
func (b *binding) under(table string, key *string) *binding {
	b.placement = placeUnder
	if key != nil {
		b.parentTable, b.parentKey = table, *key
	}

	return b
}

// underComponent places the element below its component, or at the root.
func (b *binding) underComponent(component *string) *binding {
	return b.under(tables.TableComponent, component)
}

func (b *binding) set(attribute, value string) {
	b.el.SetAttr(attribute, value)
}

func (b *binding) str(attribute string, v *string) {
	if v != nil {
		b.set(attribute, *v)
	}
}

func (b *binding) integer(attribute string, v *int) {
	if v != nil {
		b.set(attribute, strconv.Itoa(*v))
	}
}

// yesNo writes 1 as yes and 0 as no; anything else is reported.
func (b *binding) yesNo(attribute, column string, v *int) {
	if v == nil {
		return
	}

	switch *v {
	case 1:
		b.set(attribute, "yes")
	case 0:
		b.set(attribute, "no")
	default:
		b.unknownValue(column, strconv.Itoa(*v))
	}
}

// flags writes yes for every set bit of a packed column. Bits covered by
// handled are accounted for elsewhere; any others are reported.
func (b *binding) flags(column string, fs vocab.FlagSet, v *int, handled int) {
	if v == nil {
		return
	}

	set, unknown := fs.Unpack(*v)
	for _, attribute := range set {
		b.set(attribute, "yes")
	}

	if unknown &^= handled; unknown != 0 {
		b.p.diags.Add(diagnostic.UnknownBits(b.table, b.key, column, unknown))
	}
}

func (b *binding) unknownValue(column, value string) {
	b.p.diags.Add(diagnostic.UnknownValue(b.table, b.key, column, value))
}

// enum writes the attribute spelling of a stored enumeration value.
func enum[V comparable](b *binding, attribute, column string, e vocab.Enum[V], v *V) {
	if v == nil {
		return
	}

	name, ok := e.Name(*v)
	if !ok {
		b.unknownValue(column, fmt.Sprint(*v))

		return
	}

	b.set(attribute, name)
}
