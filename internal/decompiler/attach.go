package decompiler

import (
	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/xmltree"
)

// parentRef places the element under the site or virtual directory the
// discriminator selects.
func (b *binding) parentRef(ref tables.ParentRef) *binding {
	b.placement = placeParentRef
	b.ref = ref

	return b
}

// siteOrComponent places the element by the site/component rule.
func (b *binding) siteOrComponent(site, component *string) *binding {
	b.placement = placeSiteOrComponent
	b.site = site
	b.component = component

	return b
}

// attach links the element into the tree. It reports false when the
// parent could not be found and the element was left out.
func (p *pass) attach(b *binding) bool {
	var parent *xmltree.Element

	switch b.placement {
	case placeUnder:
		if b.parentKey == "" {
			parent = p.root
		} else if parent = p.lookup(b.parentTable, b.parentKey); parent == nil {
			return p.dangling(b, b.parentTable, b.parentKey)
		}

	case placeParentRef:
		if !b.ref.Kind.IsValid() {
			p.diags.Add(diagnostic.UnknownValue(b.table, b.key, "ParentType", b.ref.Kind.String()))
			return false
		}

		if parent = p.lookup(b.ref.Kind.Table(), b.ref.ID); parent == nil {
			return p.dangling(b, b.ref.Kind.Table(), b.ref.ID)
		}

	case placeSiteOrComponent:
		var ok bool
		if parent, ok = p.siteOrComponent(b); !ok {
			return false
		}
	}

	if b.prepend {
		parent.PrependChild(b.el)
	} else {
		parent.AppendChild(b.el)
	}

	return true
}

// siteOrComponent nests the element under its site when the site belongs
// to the same component. Otherwise the element goes under its own
// component and names the site with a WebSite attribute.
func (p *pass) siteOrComponent(b *binding) (*xmltree.Element, bool) {
	if b.site == nil {
		return p.componentOrRoot(b)
	}

	site := p.lookup(tables.TableWebSite, *b.site)
	if site == nil {
		return nil, p.dangling(b, tables.TableWebSite, *b.site)
	}

	var siteComponent *string

	if row := p.db.Lookup(tables.TableWebSite, *b.site); row != nil {
		if c, ok := row.Get("Component_").(string); ok {
			siteComponent = &c
		}
	}

	if sameComponent(siteComponent, b.component) {
		return site, true
	}

	b.el.SetAttr("WebSite", *b.site)

	return p.componentOrRoot(b)
}

func (p *pass) componentOrRoot(b *binding) (*xmltree.Element, bool) {
	if b.component == nil {
		return p.root, true
	}

	if c := p.lookup(tables.TableComponent, *b.component); c != nil {
		return c, true
	}

	return nil, p.dangling(b, tables.TableComponent, *b.component)
}

func (p *pass) dangling(b *binding, table, key string) bool {
	p.diags.Add(diagnostic.DanglingReference(b.table, b.key, table, key))
	p.log.Debugw("dangling parent", "table", b.table, "key", b.key, "parent", table, "parentKey", key)

	return false
}

func sameComponent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
