package tables

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySeparator joins the values of a composite key.
const KeySeparator = "/"

// Row is one positional tuple of a table. A nil value means unset.
type Row struct {
	Def    *Definition
	Values []any
	// Line is the source line the row was built from, zero when unknown.
	Line int
}

// Table returns the row's table name.
func (r *Row) Table() string {
	return r.Def.Name
}

// Get returns the value of the named column, or nil.
func (r *Row) Get(column string) any {
	i := r.Def.Column(column)
	if i < 0 {
		return nil
	}

	return r.Values[i]
}

// StringValue returns the named column as a string, or "" when unset or not a string.
func (r *Row) StringValue(column string) string {
	s, _ := r.Get(column).(string)
	return s
}

// Key returns the row's key, composite values joined with KeySeparator.
func (r *Row) Key() string {
	keys := r.Def.KeyColumns()

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = formatValue(r.Values[k])
	}

	return strings.Join(parts, KeySeparator)
}

// Equal reports whether two rows hold the same table and values. Line is ignored.
func (r *Row) Equal(other *Row) bool {
	if r.Def.Name != other.Def.Name || len(r.Values) != len(other.Values) {
		return false
	}

	for i := range r.Values {
		if !valuesEqual(r.Values[i], other.Values[i]) {
			return false
		}
	}

	return true
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if an, ok := AsInt(a); ok {
		bn, ok := AsInt(b)
		return ok && an == bn
	}

	return a == b
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		if n, ok := AsInt(x); ok {
			return strconv.Itoa(n)
		}

		return fmt.Sprint(x)
	}
}
