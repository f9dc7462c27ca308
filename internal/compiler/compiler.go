// Package compiler turns an IIS configuration document into table rows.
//
// The document is walked depth first. Each element is validated against
// the schema, converted into a typed record and inserted into the
// database; the enclosing component, directory, site and virtual
// directory travel down the walk in a scope. Every inserted row is handed
// to the reference tracker, and foreign keys are checked once the whole
// document has been compiled, so a row may reference one that appears
// later in the document.
package compiler

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"iismap/internal/diagnostic"
	"iismap/internal/ident"
	"iismap/internal/match"
	"iismap/internal/reference"
	"iismap/internal/schema"
	"iismap/internal/tables"
	"iismap/internal/xmltree"
)

const maxSuggestions = 3

// Compiler compiles documents against one schema. It holds no per-document
// state and may be reused.
type Compiler struct {
	schema *schema.Schema
	log    *zap.SugaredLogger
}

// New creates a compiler. A nil logger discards output.
func New(s *schema.Schema, log *zap.SugaredLogger) *Compiler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Compiler{schema: s, log: log}
}

// Result is the outcome of one pass.
type Result struct {
	Database    *tables.Database
	Diagnostics *diagnostic.Diagnostics
	// Unresolved counts foreign keys with no target row.
	Unresolved int
}

// Succeeded reports whether the pass recorded no errors. Warnings are allowed.
func (r *Result) Succeeded() bool {
	return !r.Diagnostics.HasErrors()
}

// CompileReader parses XML from r and compiles it. Only unreadable or
// malformed XML is returned as an error.
func (c *Compiler) CompileReader(r io.Reader, file string) (*Result, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	return c.Compile(root, file), nil
}

// Compile builds the rows for the document rooted at root. file is used
// only for diagnostic locations.
func (c *Compiler) Compile(root *xmltree.Element, file string) *Result {
	p := &pass{
		schema: c.schema,
		log:    c.log,
		base:   diagnostic.Location{File: file},
		db:     tables.NewDatabase(),
		ids:    ident.NewGenerator(),
		refs:   reference.NewTracker(),
		diags:  &diagnostic.Diagnostics{},
	}

	c.log.Debugw("compile started", "file", file)

	if root.Name != c.schema.Root {
		p.diags.Add(diagnostic.UnexpectedElement(p.loc(root), "", root.Name, []string{c.schema.Root}))
	} else {
		p.reserve(root)
		p.validate(root)
		p.children(root, scope{})
	}

	unresolved := p.refs.Resolve(p.db, p.diags)

	c.log.Infow("compile finished",
		"file", file,
		"rows", p.db.Len(),
		"references", p.refs.Len(),
		"unresolved", unresolved,
		"errors", len(p.diags.Errors),
		"warnings", len(p.diags.Warnings),
	)

	return &Result{Database: p.db, Diagnostics: p.diags, Unresolved: unresolved}
}

// scope carries the enclosing rows down the walk. Empty means none.
type scope struct {
	component string
	directory string
	site      string
	vdir      string
	app       string
	// owner is the key of the element an inline child belongs to.
	owner string
}

type pass struct {
	schema *schema.Schema
	log    *zap.SugaredLogger
	base   diagnostic.Location
	db     *tables.Database
	ids    *ident.Generator
	refs   *reference.Tracker
	diags  *diagnostic.Diagnostics
}

func (p *pass) loc(el *xmltree.Element) diagnostic.Location {
	return p.base.At(el.Line)
}

func (p *pass) validate(el *xmltree.Element) *schema.Values {
	return p.schema.Validate(el, p.base, p.diags)
}

// reserve records every author-supplied key up front so generated keys
// never take an identifier that appears later in the document.
func (p *pass) reserve(root *xmltree.Element) {
	root.Walk(func(el *xmltree.Element) {
		spec := p.schema.Element(el.Name)
		if spec == nil || spec.Table == "" || spec.Table == tables.TableWebSiteCertificates {
			return
		}

		if id, ok := el.Attr("Id"); ok && schema.IsIdentifier(id) {
			p.ids.Reserve(spec.Table, id)
		}
	})
}

// identify returns the element's Id or generates one from basis.
func (p *pass) identify(v *schema.Values, table, prefix string, basis ...string) string {
	if id := v.String("Id"); id != nil {
		return *id
	}

	return p.ids.Generate(table, prefix, basis...)
}

// insert adds rec and registers its references. It returns false when the
// row could not be stored.
func (p *pass) insert(rec tables.Record, el *xmltree.Element) bool {
	return p.insertRow(rec, el) != nil
}

// insertRow is insert for callers that need the stored row. It returns nil
// when the row could not be stored.
func (p *pass) insertRow(rec tables.Record, el *xmltree.Element) *tables.Row {
	row, err := p.db.Insert(rec, el.Line)

	switch {
	case errors.Is(err, tables.ErrDuplicateKey):
		p.diags.Add(diagnostic.DuplicateIdentifier(p.loc(el), el.Name, row.Table(), row.Key()))
		return nil
	case err != nil:
		p.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeMalformedRow,
			Message:  err.Error(),
			Location: p.loc(el),
			Element:  el.Name,
		})

		return nil
	}

	p.refs.Track(row, p.base)
	p.log.Debugw("row", "table", row.Table(), "key", row.Key(), "line", el.Line)

	return row
}

// built maps child element names to what their handlers returned, in
// document order.
type built map[string][]string

// first returns the first non-empty result for name.
func (b built) first(name string) string {
	for _, k := range b[name] {
		if k != "" {
			return k
		}
	}

	return ""
}

// children compiles every child of el that the grammar allows under it.
func (p *pass) children(el *xmltree.Element, sc scope) built {
	out := built{}

	for _, child := range el.Children {
		if !p.schema.AllowsChild(el.Name, child.Name) {
			var known []string
			if spec := p.schema.Element(el.Name); spec != nil {
				known = spec.Children
			}

			p.diags.Add(diagnostic.UnexpectedElement(p.loc(child), el.Name, child.Name,
				match.Suggest(child.Name, known, maxSuggestions)))

			continue
		}

		out[child.Name] = append(out[child.Name], p.dispatch(child, sc))
	}

	return out
}

// dispatch compiles one element and returns the key of the row it built,
// or for folded elements the folded value.
func (p *pass) dispatch(el *xmltree.Element, sc scope) string {
	switch el.Name {
	case "Directory":
		return p.directory(el, sc)
	case "Component":
		return p.component(el, sc)
	case "Binary":
		return p.binary(el)
	case "User":
		return p.user(el, sc)
	case "WebSite":
		return p.webSite(el, sc)
	case "WebAddress":
		return p.webAddress(el, sc)
	case "WebVirtualDir":
		return p.webVirtualDir(el, sc)
	case "WebDir":
		return p.webDir(el, sc)
	case "WebDirProperties":
		return p.webDirProperties(el, sc)
	case "WebApplication":
		return p.webApplication(el, sc)
	case "WebApplicationExtension":
		return p.webApplicationExtension(el, sc)
	case "WebAppPool":
		return p.webAppPool(el, sc)
	case "RecycleTime":
		return p.recycleTime(el)
	case "MimeMap":
		return p.mimeMap(el, sc)
	case "HttpHeader":
		return p.httpHeader(el, sc)
	case "WebError":
		return p.webError(el, sc)
	case "WebFilter":
		return p.webFilter(el, sc)
	case "WebServiceExtension":
		return p.webServiceExtension(el, sc)
	case "Certificate":
		return p.certificate(el, sc)
	case "CertificateRef":
		return p.certificateRef(el, sc)
	case "WebLog":
		return p.webLog(el)
	case "WebProperty":
		return p.webProperty(el, sc)
	default:
		p.log.Warnw("no handler for declared element", "element", el.Name)
		return ""
	}
}

// inline resolves an attribute that may instead be given as a nested
// element. Both forms together, or the element twice, are errors.
func (p *pass) inline(el *xmltree.Element, v *schema.Values, b built, attribute, child string) *string {
	nested := b[child]

	if len(nested) > 1 {
		p.diags.Add(diagnostic.TooManyChildren(p.loc(el), el.Name, child))
	}

	if len(nested) > 0 {
		if _, ok := el.Attr(attribute); ok {
			p.diags.Add(diagnostic.IllegalAttributeWithChild(p.loc(el), el.Name, attribute, child))
		}

		if k := b.first(child); k != "" {
			return &k
		}

		return nil
	}

	return v.String(attribute)
}

// optional returns a pointer to s, or nil when s is empty.
func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
