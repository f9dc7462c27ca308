package tables

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const tagName = "msi"

var (
	stringType    = reflect.TypeOf("")
	intType       = reflect.TypeOf(0)
	parentRefType = reflect.TypeOf(ParentRef{})
)

// ErrMalformedRow is wrapped by every Decode failure.
var ErrMalformedRow = errors.New("malformed row")

// define derives a Definition from the msi tags of rec's struct type.
func define(rec Record) (*Definition, error) {
	rt := reflect.TypeOf(rec)
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record %s is not a struct", rt)
	}

	def := &Definition{Name: rec.TableName(), record: rt}

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		tag, ok := f.Tag.Lookup(tagName)
		if !ok {
			continue
		}

		parts := strings.Split(tag, ",")
		col := Column{Name: parts[0]}

		for _, opt := range parts[1:] {
			switch {
			case opt == "key":
				col.Key = true
			case strings.HasPrefix(opt, "ref="):
				col.Ref = strings.TrimPrefix(opt, "ref=")
			default:
				return nil, fmt.Errorf("%s.%s: unknown tag option %q", rt.Name(), f.Name, opt)
			}
		}

		binding := fieldBinding{index: i, column: len(def.Columns)}

		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			col.Nullable = true
			ft = ft.Elem()
		}

		if col.Key && col.Nullable {
			return nil, fmt.Errorf("%s.%s: key columns cannot be nullable", rt.Name(), f.Name)
		}

		switch ft {
		case stringType:
			col.Type = ColumnString
		case intType:
			col.Type = ColumnInteger
		case parentRefType:
			names := strings.Split(col.Name, "+")
			if len(names) != 2 || col.Nullable || col.Ref != "" {
				return nil, fmt.Errorf("%s.%s: ParentRef needs a non-nullable \"Type+Value\" column pair", rt.Name(), f.Name)
			}

			binding.parent = true
			def.fields = append(def.fields, binding)
			def.Columns = append(def.Columns,
				Column{Name: names[0], Type: ColumnInteger, Key: col.Key},
				Column{Name: names[1], Type: ColumnString, Key: col.Key},
			)

			continue
		default:
			return nil, fmt.Errorf("%s.%s: unsupported field type %s", rt.Name(), f.Name, f.Type)
		}

		def.fields = append(def.fields, binding)
		def.Columns = append(def.Columns, col)
	}

	if len(def.KeyColumns()) == 0 {
		return nil, fmt.Errorf("%s: no key column", rt.Name())
	}

	return def, nil
}

// Encode lays rec out as a row of its table.
func Encode(rec Record) (*Row, error) {
	def := definitionOf(rec)
	if def == nil {
		return nil, fmt.Errorf("unregistered record type %T", rec)
	}

	rv := reflect.ValueOf(rec)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	values := make([]any, len(def.Columns))

	for _, b := range def.fields {
		fv := rv.Field(b.index)

		switch {
		case b.parent:
			p := fv.Interface().(ParentRef)
			values[b.column] = int(p.Kind)
			values[b.column+1] = p.ID
		case fv.Kind() == reflect.Ptr:
			if !fv.IsNil() {
				values[b.column] = fv.Elem().Interface()
			}
		default:
			values[b.column] = fv.Interface()
		}
	}

	return &Row{Def: def, Values: values}, nil
}

// Decode reads a row back into its typed record.
func Decode[T Record](row *Row) (T, error) {
	var rec T

	err := DecodeInto(row, &rec)

	return rec, err
}

// DecodeInto reads row into dst, which must be a pointer to the row's record type.
func DecodeInto(row *Row, dst any) error {
	def := row.Def

	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.Elem().Type() != def.record {
		return fmt.Errorf("cannot decode %s row into %T", def.Name, dst)
	}

	if len(row.Values) != len(def.Columns) {
		return fmt.Errorf("%w: %d values for %d columns", ErrMalformedRow, len(row.Values), len(def.Columns))
	}

	rv := dv.Elem()

	for _, b := range def.fields {
		fv := rv.Field(b.index)

		if b.parent {
			kind, err := columnInt(def, row.Values, b.column)
			if err != nil {
				return err
			}

			id, err := columnString(def, row.Values, b.column+1)
			if err != nil {
				return err
			}

			fv.Set(reflect.ValueOf(ParentRef{Kind: ParentKind(kind), ID: id}))

			continue
		}

		col := def.Columns[b.column]
		raw := row.Values[b.column]

		if raw == nil {
			if !col.Nullable {
				return fmt.Errorf("%w: column %s is unset", ErrMalformedRow, col.Name)
			}

			fv.Set(reflect.Zero(fv.Type()))

			continue
		}

		var v reflect.Value

		switch col.Type {
		case ColumnInteger:
			n, err := columnInt(def, row.Values, b.column)
			if err != nil {
				return err
			}

			v = reflect.ValueOf(n)
		default:
			s, err := columnString(def, row.Values, b.column)
			if err != nil {
				return err
			}

			v = reflect.ValueOf(s)
		}

		if col.Nullable {
			p := reflect.New(v.Type())
			p.Elem().Set(v)
			v = p
		}

		fv.Set(v)
	}

	return nil
}

func columnInt(def *Definition, values []any, i int) (int, error) {
	n, ok := AsInt(values[i])
	if !ok {
		return 0, fmt.Errorf("%w: column %s holds %T, want integer", ErrMalformedRow, def.Columns[i].Name, values[i])
	}

	return n, nil
}

func columnString(def *Definition, values []any, i int) (string, error) {
	s, ok := values[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: column %s holds %T, want string", ErrMalformedRow, def.Columns[i].Name, values[i])
	}

	return s, nil
}

// AsInt converts the integer forms produced by storage drivers to int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
