package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"iismap/internal/tables"
)

const documentVersion = "1"

type document struct {
	Version string          `yaml:"version"`
	Tables  []tableDocument `yaml:"tables"`
}

type tableDocument struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

// WriteYAML encodes db as a YAML document.
func WriteYAML(w io.Writer, db *tables.Database) error {
	doc := document{Version: documentVersion}

	for _, t := range db.Tables() {
		td := tableDocument{Name: t.Def.Name}

		for _, c := range t.Def.Columns {
			td.Columns = append(td.Columns, c.Name)
		}

		for _, r := range t.Rows {
			td.Rows = append(td.Rows, slices.Clone(r.Values))
		}

		doc.Tables = append(doc.Tables, td)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding tables: %w", err)
	}

	return enc.Close()
}

// ReadYAML decodes a document written by WriteYAML.
func ReadYAML(r io.Reader) (*tables.Database, error) {
	var doc document

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse tables YAML: %w", err)
	}

	if doc.Version != "" && doc.Version != documentVersion {
		return nil, fmt.Errorf("unsupported tables document version %q", doc.Version)
	}

	db := tables.NewDatabase()

	for _, td := range doc.Tables {
		def := tables.DefinitionNamed(td.Name)
		if def == nil {
			return nil, fmt.Errorf("%w: %s", tables.ErrUnknownTable, td.Name)
		}

		if err := checkColumns(def, td.Columns); err != nil {
			return nil, err
		}

		for i, values := range td.Rows {
			row, err := rowFrom(def, values)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}

			if err := db.AddRow(row); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
	}

	return db, nil
}

// checkColumns verifies that a stored column list matches the definition.
// An absent list is accepted.
func checkColumns(def *tables.Definition, columns []string) error {
	if columns == nil {
		return nil
	}

	if len(columns) != len(def.Columns) {
		return fmt.Errorf("%w: %s has %d columns, want %d", tables.ErrMalformedRow, def.Name, len(columns), len(def.Columns))
	}

	for i, name := range columns {
		if def.Columns[i].Name != name {
			return fmt.Errorf("%w: %s column %d is %s, want %s",
				tables.ErrMalformedRow, def.Name, i+1, name, def.Columns[i].Name)
		}
	}

	return nil
}

// SaveYAMLFile writes db to path as YAML.
func SaveYAMLFile(path string, db *tables.Database) error {
	var buf bytes.Buffer

	if err := WriteYAML(&buf, db); err != nil {
		return err
	}

	return writeFile(path, buf.Bytes())
}

// LoadYAMLFile reads a YAML table set from path.
func LoadYAMLFile(path string) (*tables.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}

	db, err := ReadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return db, nil
}
