package compiler

import (
	"strings"

	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/xmltree"
)

// parentOf returns the nearest site-level container of a setting element.
func parentOf(sc scope) tables.ParentRef {
	if sc.vdir != "" {
		return tables.VirtualDirParent(sc.vdir)
	}

	return tables.WebSiteParent(sc.site)
}

func (p *pass) mimeMap(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	parent := parentOf(sc)
	id := p.identify(v, tables.TableMimeMap, prefixMimeMap, parent.ID, v.StringOr("Extension", ""))

	rec := tables.MimeMap{
		MimeMap:   id,
		Parent:    parent,
		MimeType:  v.String("Type"),
		Extension: v.String("Extension"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) httpHeader(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	parent := parentOf(sc)
	id := p.identify(v, tables.TableHttpHeader, prefixHeader, parent.ID, v.StringOr("Name", ""))

	value := v.String("Value")

	if text := strings.TrimSpace(v.Text()); text != "" {
		if _, given := el.Attr("Value"); given {
			p.diags.Add(diagnostic.UnexpectedText(p.loc(el), el.Name))
		} else {
			value = &text
		}
	}

	rec := tables.HttpHeader{
		HttpHeader: id,
		Parent:     parent,
		Name:       v.String("Name"),
		Value:      value,
		Sequence:   v.Int("Sequence"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

// webError builds no row when its error code or sub code is missing,
// since both are part of the key.
func (p *pass) webError(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	code, sub := v.Int("ErrorCode"), v.Int("SubCode")
	if code == nil || sub == nil {
		return ""
	}

	rec := tables.WebError{
		ErrorCode: *code,
		SubCode:   *sub,
		Parent:    parentOf(sc),
		File:      v.String("File"),
		URL:       v.String("URL"),
	}

	row := p.insertRow(rec, el)
	if row == nil {
		return ""
	}

	return row.Key()
}
