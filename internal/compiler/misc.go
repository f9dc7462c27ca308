package compiler

import (
	"iismap/internal/common"
	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/vocab"
	"iismap/internal/xmltree"
)

func (p *pass) directory(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	inner := sc
	inner.directory = ""

	id := v.String("Id")
	if id != nil {
		inner.directory = *id
		if !p.insert(tables.Directory{Directory: *id, DirectoryParent: optional(sc.directory), DefaultDir: v.String("Name")}, el) {
			id = nil
		}
	}

	p.children(el, inner)

	return common.Deref(id, "")
}

func (p *pass) component(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	dir := v.String("Directory")
	if dir == nil {
		dir = optional(sc.directory)
	}

	inner := sc
	inner.component = ""

	id := v.String("Id")
	if id != nil {
		inner.component = *id
		if !p.insert(tables.Component{Component: *id, Directory: dir}, el) {
			id = nil
		}
	}

	p.children(el, inner)

	return common.Deref(id, "")
}

func (p *pass) binary(el *xmltree.Element) string {
	v := p.validate(el)

	id := v.String("Id")
	if id == nil || !p.insert(tables.Binary{Name: *id, Data: v.String("SourceFile")}, el) {
		return ""
	}

	return *id
}

func (p *pass) user(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	id := v.String("Id")
	if id == nil {
		return ""
	}

	rec := tables.User{
		User:      *id,
		Component: optional(sc.component),
		Name:      v.String("Name"),
		Domain:    v.String("Domain"),
		Password:  v.String("Password"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return *id
}

func (p *pass) webServiceExtension(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	id := p.identify(v, tables.TableWebServiceExtension, prefixServiceExt, v.StringOr("File", ""))

	rec := tables.WebServiceExtension{
		WebServiceExtension: id,
		Component:           optional(sc.component),
		File:                v.String("File"),
		Description:         v.String("Description"),
		Group:               v.String("Group"),
		Attributes:          vocab.ServiceExtensionFlags.Pack(v.YesNo),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) certificate(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	id := p.identify(v, tables.TableCertificate, prefixCertificate, v.StringOr("Name", ""))

	_, hasKey := el.Attr("BinaryKey")
	_, hasPath := el.Attr("CertificatePath")

	if !hasKey && !hasPath {
		p.diags.Add(diagnostic.ExpectedOneOf(p.loc(el), el.Name, "BinaryKey", "CertificatePath"))
	}

	attributes := vocab.CertificateFlags.Pack(v.YesNo)

	binary := v.String("BinaryKey")
	if binary != nil {
		bits := vocab.CertificateBinaryKey
		if attributes != nil {
			bits |= *attributes
		}

		attributes = &bits
	}

	var location *int

	if name := v.String("StoreLocation"); name != nil {
		if n, ok := vocab.StoreLocation.Value(*name); ok {
			location = &n
		}
	}

	var store *string

	if name := v.String("StoreName"); name != nil {
		if s, ok := vocab.StoreName.Value(*name); ok {
			store = &s
		}
	}

	rec := tables.Certificate{
		Certificate:     id,
		Component:       optional(sc.component),
		Name:            v.String("Name"),
		StoreLocation:   location,
		StoreName:       store,
		Attributes:      attributes,
		Binary:          binary,
		CertificatePath: v.String("CertificatePath"),
		PFXPassword:     v.String("PFXPassword"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) webLog(el *xmltree.Element) string {
	v := p.validate(el)
	id := p.identify(v, tables.TableWebLog, prefixLog, v.StringOr("Type", ""))

	var format *string

	if name := v.String("Type"); name != nil {
		if s, ok := vocab.LogFormat.Value(*name); ok {
			format = &s
		}
	}

	if !p.insert(tables.WebLog{Log: id, Format: format}, el) {
		return ""
	}

	return id
}

func (p *pass) webProperty(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	id := v.String("Id")
	if id == nil {
		return ""
	}

	rec := tables.Property{
		Property:  *id,
		Component: optional(sc.component),
		Value:     v.String("Value"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return *id
}
