package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"iismap/internal/tables"
)

// Format selects the on-disk representation of a table set.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f == FormatYAML || f == FormatSQLite
}

// FormatFor guesses the format from a file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, true
	default:
		return "", false
	}
}

// Extension returns the conventional file extension for f.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return ".db"
	}

	return ".yaml"
}

// Save writes db to path in the given format, replacing any existing file.
func Save(ctx context.Context, path string, format Format, db *tables.Database) error {
	switch format {
	case FormatYAML:
		return SaveYAMLFile(path, db)
	case FormatSQLite:
		return SaveSQLite(ctx, path, db)
	default:
		return fmt.Errorf("unknown store format %q", format)
	}
}

// Load reads a table set, picking the format from the file extension.
func Load(ctx context.Context, path string) (*tables.Database, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, fmt.Errorf("cannot tell the store format of %s: use .yaml or .db", path)
	}

	if format == FormatSQLite {
		return LoadSQLite(ctx, path)
	}

	return LoadYAMLFile(path)
}

// convert coerces a stored value into the Go type of its column. Drivers
// and decoders hand back int64, []byte and the like.
func convert(col tables.Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch col.Type {
	case tables.ColumnInteger:
		if n, ok := tables.AsInt(v); ok {
			return n, nil
		}
	case tables.ColumnString:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		default:
			if n, ok := tables.AsInt(v); ok {
				return fmt.Sprint(n), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: column %s holds %T, want %s", tables.ErrMalformedRow, col.Name, v, col.Type)
}

// rowFrom builds a row of def from stored values.
func rowFrom(def *tables.Definition, values []any) (*tables.Row, error) {
	if len(values) != len(def.Columns) {
		return nil, fmt.Errorf("%w: %s row has %d values for %d columns",
			tables.ErrMalformedRow, def.Name, len(values), len(def.Columns))
	}

	row := &tables.Row{Def: def, Values: make([]any, len(values))}

	for i, v := range values {
		c, err := convert(def.Columns[i], v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Name, err)
		}

		row.Values[i] = c
	}

	return row, nil
}
