package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"iismap/internal/tables"
)

// SaveSQLite writes db to a fresh SQLite file at path. Every registered
// table is created, including empty ones.
func SaveSQLite(ctx context.Context, path string, db *tables.Database) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	if err := removeIfExists(path); err != nil {
		return err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening sqlite db %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	if err := writeTables(ctx, tx, db); err != nil {
		return multierr.Append(err, tx.Rollback())
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", path, err)
	}

	return nil
}

func writeTables(ctx context.Context, tx *sql.Tx, db *tables.Database) error {
	for _, def := range tables.Definitions() {
		if _, err := tx.ExecContext(ctx, createStatement(def)); err != nil {
			return fmt.Errorf("creating table %s: %w", def.Name, err)
		}

		rows := db.Rows(def.Name)
		if len(rows) == 0 {
			continue
		}

		if err := insertRows(ctx, tx, def, rows); err != nil {
			return err
		}
	}

	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, def *tables.Definition, rows []*tables.Row) (err error) {
	stmt, err := tx.PrepareContext(ctx, insertStatement(def))
	if err != nil {
		return fmt.Errorf("preparing insert into %s: %w", def.Name, err)
	}
	defer func() {
		err = multierr.Append(err, stmt.Close())
	}()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Values...); err != nil {
			return fmt.Errorf("inserting %s row %q: %w", def.Name, r.Key(), err)
		}
	}

	return nil
}

// LoadSQLite reads a table set written by SaveSQLite. Tables missing from
// the file are treated as empty.
func LoadSQLite(ctx context.Context, path string) (_ *tables.Database, err error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
	}()

	present, err := tableNames(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("listing tables of %s: %w", path, err)
	}

	db := tables.NewDatabase()

	for _, def := range tables.Definitions() {
		if !present[def.Name] {
			continue
		}

		if err := readTable(ctx, conn, def, db); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return db, nil
}

func tableNames(ctx context.Context, conn *sql.DB) (_ map[string]bool, err error) {
	rows, err := conn.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, rows.Close())
	}()

	names := map[string]bool{}

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names[name] = true
	}

	return names, rows.Err()
}

func readTable(ctx context.Context, conn *sql.DB, def *tables.Definition, db *tables.Database) (err error) {
	rows, err := conn.QueryContext(ctx, selectStatement(def))
	if err != nil {
		return fmt.Errorf("querying %s: %w", def.Name, err)
	}
	defer func() {
		err = multierr.Append(err, rows.Close())
	}()

	for rows.Next() {
		values := make([]any, len(def.Columns))

		ptrs := make([]any, len(values))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning %s: %w", def.Name, err)
		}

		row, err := rowFrom(def, values)
		if err != nil {
			return err
		}

		if err := db.AddRow(row); err != nil {
			return err
		}
	}

	return rows.Err()
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createStatement(def *tables.Definition) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE TABLE %s (", quote(def.Name))

	var keys []string

	for i, c := range def.Columns {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(quote(c.Name))

		if c.Type == tables.ColumnInteger {
			b.WriteString(" INTEGER")
		} else {
			b.WriteString(" TEXT")
		}

		if !c.Nullable {
			b.WriteString(" NOT NULL")
		}

		if c.Key {
			keys = append(keys, quote(c.Name))
		}
	}

	if len(keys) > 0 {
		fmt.Fprintf(&b, ", PRIMARY KEY (%s)", strings.Join(keys, ", "))
	}

	b.WriteString(")")

	return b.String()
}

func insertStatement(def *tables.Definition) string {
	cols := make([]string, len(def.Columns))
	marks := make([]string, len(def.Columns))

	for i, c := range def.Columns {
		cols[i] = quote(c.Name)
		marks[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(def.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// selectStatement reads columns in definition order and rows in insertion order.
func selectStatement(def *tables.Definition) string {
	cols := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		cols[i] = quote(c.Name)
	}

	return fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(cols, ", "), quote(def.Name))
}
