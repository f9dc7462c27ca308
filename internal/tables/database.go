package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when a row's key already exists in its table.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownTable is returned for rows of an unregistered table.
	ErrUnknownTable = errors.New("unknown table")
)

// Table holds the rows of one definition in insertion order.
type Table struct {
	Def  *Definition
	Rows []*Row

	index map[string]*Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Database is an in-memory table set.
type Database struct {
	tables map[string]*Table
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{tables: map[string]*Table{}}
}

// Insert encodes rec and adds it. The source line is kept on the row.
func (db *Database) Insert(rec Record, line int) (*Row, error) {
	row, err := Encode(rec)
	if err != nil {
		return nil, err
	}

	row.Line = line

	if err := db.AddRow(row); err != nil {
		return row, err
	}

	return row, nil
}

// AddRow adds a positional row. The row must match its definition's arity
// and its key must be new.
func (db *Database) AddRow(row *Row) error {
	if row.Def == nil || DefinitionNamed(row.Def.Name) != row.Def {
		return ErrUnknownTable
	}

	if len(row.Values) != len(row.Def.Columns) {
		return fmt.Errorf("%w: %s row has %d values for %d columns",
			ErrMalformedRow, row.Def.Name, len(row.Values), len(row.Def.Columns))
	}

	for _, k := range row.Def.KeyColumns() {
		if row.Values[k] == nil {
			return fmt.Errorf("%w: %s key column %s is unset", ErrMalformedRow, row.Def.Name, row.Def.Columns[k].Name)
		}
	}

	t := db.table(row.Def)

	key := row.Key()
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("%w: %s %q", ErrDuplicateKey, row.Def.Name, key)
	}

	t.index[key] = row
	t.Rows = append(t.Rows, row)

	return nil
}

// Lookup returns the row of table with the given key, or nil.
func (db *Database) Lookup(table, key string) *Row {
	t := db.tables[table]
	if t == nil {
		return nil
	}

	return t.index[key]
}

// Exists reports whether table has a row with key.
func (db *Database) Exists(table, key string) bool {
	return db.Lookup(table, key) != nil
}

// Table returns the named table, or nil when it holds no rows.
func (db *Database) Table(name string) *Table {
	return db.tables[name]
}

// Rows returns the rows of the named table in insertion order.
func (db *Database) Rows(name string) []*Row {
	if t := db.tables[name]; t != nil {
		return t.Rows
	}

	return nil
}

// Tables returns the non-empty tables in declaration order.
func (db *Database) Tables() []*Table {
	var out []*Table

	for _, def := range Definitions() {
		if t := db.tables[def.Name]; t != nil && t.Len() > 0 {
			out = append(out, t)
		}
	}

	return out
}

// Len returns the total number of rows.
func (db *Database) Len() int {
	n := 0
	for _, t := range db.tables {
		n += t.Len()
	}

	return n
}

// Equal reports whether both databases hold equal rows under the same keys.
// Row order within a table is not compared.
func (db *Database) Equal(other *Database) bool {
	for _, def := range Definitions() {
		rows := db.Rows(def.Name)
		if len(rows) != len(other.Rows(def.Name)) {
			return false
		}

		for _, r := range rows {
			o := other.Lookup(def.Name, r.Key())
			if o == nil || !r.Equal(o) {
				return false
			}
		}
	}

	return true
}

func (db *Database) table(def *Definition) *Table {
	t, ok := db.tables[def.Name]
	if !ok {
		t = &Table{Def: def, index: map[string]*Row{}}
		db.tables[def.Name] = t
	}

	return t
}
