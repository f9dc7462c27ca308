package compiler

import (
	"iismap/internal/common"
	"iismap/internal/diagnostic"
	"iismap/internal/schema"
	"iismap/internal/tables"
	"iismap/internal/vocab"
	"iismap/internal/xmltree"
)

// Prefixes of generated identifiers.
const (
	prefixSite          = "site"
	prefixAddress       = "addr"
	prefixVirtualDir    = "vdir"
	prefixWebDir        = "wdir"
	prefixDirProperties = "dprop"
	prefixApplication   = "app"
	prefixAppPool       = "pool"
	prefixMimeMap       = "mime"
	prefixHeader        = "hdr"
	prefixFilter        = "flt"
	prefixServiceExt    = "wse"
	prefixCertificate   = "cert"
	prefixLog           = "log"
)

func (p *pass) webSite(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	id := p.identify(v, tables.TableWebSite, prefixSite, v.StringOr("Description", ""))

	inner := sc
	inner.site = id
	inner.vdir = ""
	inner.owner = id

	b := p.children(el, inner)

	if len(b["WebAddress"]) == 0 {
		p.diags.Add(diagnostic.ExpectedElement(p.loc(el), el.Name, "WebAddress"))
	}

	rec := tables.WebSite{
		Web:               id,
		Component:         optional(sc.component),
		Description:       v.String("Description"),
		ConnectionTimeout: v.Int("ConnectionTimeout"),
		Directory:         v.String("Directory"),
		State:             vocab.SiteStateFlags.Pack(v.YesNo),
		KeyAddress:        optional(b.first("WebAddress")),
		DirProperties:     p.inline(el, v, b, "DirProperties", "WebDirProperties"),
		Application:       p.inline(el, v, b, "WebApplication", "WebApplication"),
		Sequence:          v.Int("Sequence"),
		Log:               v.String("WebLog"),
		WebsiteID:         v.String("SiteId"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) webAddress(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	id := p.identify(v, tables.TableWebAddress, prefixAddress, sc.site, v.StringOr("Port", ""))

	rec := tables.WebAddress{
		Address: id,
		Web:     sc.site,
		IP:      v.String("IP"),
		Port:    v.String("Port"),
		Header:  v.String("Header"),
		Secure:  v.YesNoInt("Secure"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

// siteOf resolves the site of an element that is either nested in a
// WebSite or names one with its WebSite attribute.
func (p *pass) siteOf(el *xmltree.Element, v *schema.Values, sc scope, required bool) *string {
	_, given := el.Attr("WebSite")

	if sc.site != "" {
		if given {
			p.diags.Add(diagnostic.IllegalAttributeWhenNested(p.loc(el), el.Name, "WebSite", "WebSite"))
		}

		site := sc.site

		return &site
	}

	if required && !given {
		p.diags.Add(diagnostic.ExpectedAttribute(p.loc(el), el.Name, "WebSite"))
	}

	return v.String("WebSite")
}

// needComponent reports an element that has no Component ancestor.
func (p *pass) needComponent(el *xmltree.Element, sc scope) {
	if sc.component == "" {
		p.diags.Add(diagnostic.ExpectedParent(p.loc(el), el.Name, "Component"))
	}
}

func (p *pass) webVirtualDir(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	p.needComponent(el, sc)

	site := p.siteOf(el, v, sc, true)
	id := p.identify(v, tables.TableWebVirtualDir, prefixVirtualDir, common.Deref(site, ""), v.StringOr("Alias", ""))

	inner := sc
	inner.vdir = id
	inner.owner = id

	b := p.children(el, inner)

	rec := tables.WebVirtualDir{
		VirtualDir:    id,
		Component:     optional(sc.component),
		Web:           site,
		Alias:         v.String("Alias"),
		Directory:     v.String("Directory"),
		DirProperties: p.inline(el, v, b, "DirProperties", "WebDirProperties"),
		Application:   p.inline(el, v, b, "WebApplication", "WebApplication"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) webDir(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	p.needComponent(el, sc)

	site := p.siteOf(el, v, sc, true)
	id := p.identify(v, tables.TableWebDir, prefixWebDir, common.Deref(site, ""), v.StringOr("Path", ""))

	inner := sc
	inner.owner = id

	b := p.children(el, inner)

	rec := tables.WebDir{
		WebDir:        id,
		Component:     optional(sc.component),
		Web:           site,
		Path:          v.String("Path"),
		DirProperties: p.inline(el, v, b, "DirProperties", "WebDirProperties"),
		Application:   p.inline(el, v, b, "WebApplication", "WebApplication"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) webFilter(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	p.needComponent(el, sc)

	id := p.identify(v, tables.TableFilter, prefixFilter, v.StringOr("Name", ""))

	var loadOrder *int

	if raw := v.String("LoadOrder"); raw != nil {
		n, ok := vocab.ParseLoadOrder(*raw)
		if ok {
			loadOrder = &n
		} else {
			p.diags.Add(diagnostic.IllegalAttributeValue(p.loc(el), el.Name, "LoadOrder", *raw, "first", "last", "an integer of at least 1"))
		}
	}

	rec := tables.Filter{
		Filter:      id,
		Name:        v.String("Name"),
		Component:   optional(sc.component),
		Path:        v.String("Path"),
		Web:         p.siteOf(el, v, sc, false),
		Description: v.String("Description"),
		Flags:       v.Int("Flags"),
		LoadOrder:   loadOrder,
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) certificateRef(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	cert := v.String("Id")
	if cert == nil {
		return ""
	}

	if !p.insert(tables.WebSiteCertificate{Web: sc.site, Certificate: *cert}, el) {
		return ""
	}

	return sc.site + tables.KeySeparator + *cert
}
