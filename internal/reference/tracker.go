// Package reference records foreign keys as rows are built and checks them
// once every row of every table exists.
package reference

import (
	"iismap/internal/diagnostic"
	"iismap/internal/tables"
)

// Reference is one foreign key from a row to (Table, Key).
type Reference struct {
	FromTable string
	FromKey   string
	Table     string
	Key       string
	Location  diagnostic.Location
}

// Tracker accumulates references for a single pass.
type Tracker struct {
	refs []Reference
	seen map[Reference]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: map[Reference]struct{}{}}
}

// Add registers a reference explicitly. Repeated (row, table, key) triples
// are recorded once.
func (t *Tracker) Add(ref Reference) {
	k := ref
	k.Location = diagnostic.Location{}

	if _, ok := t.seen[k]; ok {
		return
	}

	t.seen[k] = struct{}{}
	t.refs = append(t.refs, ref)
}

// Track registers every set foreign key column of row, including the
// target of a ParentRef pair.
func (t *Tracker) Track(row *tables.Row, loc diagnostic.Location) {
	def := row.Def
	key := row.Key()
	loc = loc.At(row.Line)

	for _, i := range def.References() {
		target, ok := row.Values[i].(string)
		if !ok {
			continue
		}

		t.Add(Reference{FromTable: def.Name, FromKey: key, Table: def.Columns[i].Ref, Key: target, Location: loc})
	}

	if kc, vc, ok := def.ParentColumns(); ok {
		kind, _ := tables.AsInt(row.Values[kc])
		target, _ := row.Values[vc].(string)

		t.Add(Reference{FromTable: def.Name, FromKey: key, Table: tables.ParentKind(kind).Table(), Key: target, Location: loc})
	}
}

// Len returns the number of distinct references recorded.
func (t *Tracker) Len() int {
	return len(t.refs)
}

// Resolve checks every reference against db and reports each missing
// target once. It returns the number of unresolved references.
func (t *Tracker) Resolve(db *tables.Database, diags *diagnostic.Diagnostics) int {
	missing := 0

	for _, ref := range t.refs {
		if ref.Table != "" && db.Exists(ref.Table, ref.Key) {
			continue
		}

		table := ref.Table
		if table == "" {
			table = tables.TableWebSite + "|" + tables.TableWebVirtualDir
		}

		diags.Add(diagnostic.UnresolvedReference(ref.Location, ref.FromTable, ref.FromKey, table, ref.Key))
		missing++
	}

	return missing
}
