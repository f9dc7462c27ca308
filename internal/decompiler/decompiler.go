// Package decompiler rebuilds an IIS configuration document from tables.
//
// Decompiling is a two-phase protocol. Phase one reconstructs every row of
// every table into a detached element and indexes it by (table, key),
// recording where the element wants to live. Phase two walks those
// bindings in table declaration order and attaches each element to its
// parent. Since all elements exist before any is attached, the resulting
// tree does not depend on the order rows were added to the database.
package decompiler

import (
	"go.uber.org/zap"

	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/xmltree"
)

// RootElement names the document element of a decompiled tree.
const RootElement = "Fragment"

// Decompiler reconstructs documents. It holds no per-database state.
type Decompiler struct {
	log *zap.SugaredLogger
}

// New creates a decompiler. A nil logger discards output.
func New(log *zap.SugaredLogger) *Decompiler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Decompiler{log: log}
}

// Result is the outcome of one decompile pass.
type Result struct {
	Root        *xmltree.Element
	Diagnostics *diagnostic.Diagnostics
}

// Succeeded reports whether the pass recorded no errors.
func (r *Result) Succeeded() bool {
	return !r.Diagnostics.HasErrors()
}

type indexKey struct {
	table string
	key   string
}

type pass struct {
	db       *tables.Database
	log      *zap.SugaredLogger
	diags    *diagnostic.Diagnostics
	root     *xmltree.Element
	index    map[indexKey]*xmltree.Element
	bindings []*binding
}

// Decompile reconstructs the document held by db.
func (d *Decompiler) Decompile(db *tables.Database) *Result {
	p := &pass{
		db:    db,
		log:   d.log,
		diags: &diagnostic.Diagnostics{},
		root:  xmltree.New(RootElement),
		index: map[indexKey]*xmltree.Element{},
	}

	for _, t := range db.Tables() {
		rebuild := reconstructors[t.Def.Name]

		for _, row := range t.Rows {
			b := rebuild(p, row)
			if b == nil {
				continue
			}

			p.index[indexKey{b.table, b.key}] = b.el
			p.bindings = append(p.bindings, b)
		}
	}

	d.log.Debugw("rows reconstructed", "elements", len(p.bindings))

	var attached []*binding

	for _, b := range p.bindings {
		if p.attach(b) {
			attached = append(attached, b)
		}
	}

	attached = p.detachCycles(attached)

	d.log.Infow("decompile finished",
		"rows", db.Len(),
		"attached", len(attached),
		"errors", len(p.diags.Errors),
		"warnings", len(p.diags.Warnings),
	)

	return &Result{Root: p.root, Diagnostics: p.diags}
}

func (p *pass) lookup(table, key string) *xmltree.Element {
	return p.index[indexKey{table, key}]
}

// detachCycles reports every attached element whose ancestry never reaches
// the root, either through a loop or through a parent that was skipped.
// It returns the elements that did reach it.
func (p *pass) detachCycles(attached []*binding) []*binding {
	owner := make(map[*xmltree.Element]*binding, len(p.bindings))
	for _, b := range p.bindings {
		owner[b.el] = b
	}

	reached := map[*xmltree.Element]bool{p.root: true}

	var reaches func(el *xmltree.Element) bool
	reaches = func(el *xmltree.Element) bool {
		if r, ok := reached[el]; ok {
			return r
		}

		// Marked before recursing so a loop resolves to false.
		reached[el] = false
		r := el.Parent != nil && reaches(el.Parent)
		reached[el] = r

		return r
	}

	kept := attached[:0]

	for _, b := range attached {
		if reaches(b.el) {
			kept = append(kept, b)
			continue
		}

		parent := owner[b.el.Parent]
		p.diags.Add(diagnostic.UnreachableParent(b.table, b.key, parent.table, parent.key))
		p.log.Debugw("unreachable parent", "table", b.table, "key", b.key, "parent", parent.table, "parentKey", parent.key)
	}

	return kept
}
