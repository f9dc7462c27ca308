package tables

import (
	"reflect"

	"iismap/internal/common"
)

// ColumnType is the storage type of a column.
type ColumnType int

const (
	ColumnString ColumnType = iota
	ColumnInteger
)

// String returns a human-readable column type.
func (t ColumnType) String() string {
	switch t {
	case ColumnString:
		return "string"
	case ColumnInteger:
		return "integer"
	default:
		return common.UnknownStr
	}
}

// Column describes one positional column.
type Column struct {
	Name     string
	Type     ColumnType
	Key      bool
	Nullable bool
	// Ref names the table this column points into, empty for plain data.
	Ref string
}

// Definition is the fixed layout of one table.
type Definition struct {
	Name    string
	Columns []Column

	record reflect.Type
	fields []fieldBinding
}

// fieldBinding maps a struct field onto its first column. ParentRef fields
// occupy two consecutive columns.
type fieldBinding struct {
	index  int
	column int
	parent bool
}

// Column returns the position of the named column, or -1.
func (d *Definition) Column(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}

	return -1
}

// KeyColumns returns the positions of the key columns.
func (d *Definition) KeyColumns() []int {
	var keys []int

	for i, c := range d.Columns {
		if c.Key {
			keys = append(keys, i)
		}
	}

	return keys
}

// References returns the positions of columns that declare a foreign key.
func (d *Definition) References() []int {
	var refs []int

	for i, c := range d.Columns {
		if c.Ref != "" {
			refs = append(refs, i)
		}
	}

	return refs
}

// ParentColumns returns the discriminator and value positions of the
// ParentRef pair, or ok=false when the table has none.
func (d *Definition) ParentColumns() (kind, value int, ok bool) {
	for _, f := range d.fields {
		if f.parent {
			return f.column, f.column + 1, true
		}
	}

	return 0, 0, false
}
