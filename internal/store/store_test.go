package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iismap/internal/common"
	"iismap/internal/tables"
)

func sampleDatabase(t *testing.T) *tables.Database {
	t.Helper()

	db := tables.NewDatabase()

	recs := []tables.Record{
		tables.Directory{Directory: "WebRoot", DefaultDir: common.Ptr("www")},
		tables.Component{Component: "C", Directory: common.Ptr("WebRoot")},
		tables.WebSite{
			Web: "S1", Component: common.Ptr("C"), Description: common.Ptr(""),
			State: common.Ptr(2), KeyAddress: common.Ptr("a2"),
		},
		tables.WebAddress{Address: "a2", Web: "S1", Port: common.Ptr("80")},
		tables.WebAddress{Address: "a1", Web: "S1", Port: common.Ptr("443"), Secure: common.Ptr(1)},
		tables.AppPool{AppPool: "P", Name: common.Ptr("pool"), CPUMon: common.Ptr("80,,1"), RecycleTimes: common.Ptr("01:00,13:30")},
		tables.WebError{ErrorCode: 404, SubCode: 0, Parent: tables.VirtualDirParent("V"), URL: common.Ptr("/nf")},
		tables.WebError{ErrorCode: 404, SubCode: 0, Parent: tables.WebSiteParent("S1"), File: common.Ptr("yes")},
		tables.Filter{Filter: "F", LoadOrder: common.Ptr(-1)},
	}

	for _, rec := range recs {
		_, err := db.Insert(rec, 0)
		require.NoError(t, err)
	}

	return db
}

func addressOrder(db *tables.Database) []string {
	var keys []string
	for _, r := range db.Rows(tables.TableWebAddress) {
		keys = append(keys, r.Key())
	}

	return keys
}

func TestSave_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatSQLite} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			db := sampleDatabase(t)

			path := filepath.Join(t.TempDir(), "out", "tables"+format.Extension())
			require.NoError(t, Save(ctx, path, format, db))

			loaded, err := Load(ctx, path)
			require.NoError(t, err)

			assert.True(t, db.Equal(loaded), "loaded tables differ:\n%s", spew.Sdump(loaded.Tables()))
			assert.Equal(t, []string{"a2", "a1"}, addressOrder(loaded), "row order is kept")
			assert.Equal(t, "", loaded.Lookup(tables.TableWebSite, "S1").Get("Description"), "empty is not unset")
			assert.Nil(t, loaded.Lookup(tables.TableWebSite, "S1").Get("Attributes"))
		})
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tables.db")

	require.NoError(t, Save(ctx, path, FormatSQLite, sampleDatabase(t)))

	small := tables.NewDatabase()
	_, err := small.Insert(tables.Binary{Name: "B", Data: common.Ptr("b.bin")}, 0)
	require.NoError(t, err)

	require.NoError(t, Save(ctx, path, FormatSQLite, small))

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	assert.True(t, small.Equal(loaded))
}

func TestSave_UnknownFormat(t *testing.T) {
	err := Save(context.Background(), filepath.Join(t.TempDir(), "x"), Format("csv"), tables.NewDatabase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, "tables.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store format")

	_, err = Load(ctx, filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWriteYAML_Shape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleDatabase(t)))

	out := buf.String()
	assert.Contains(t, out, `version: "1"`)
	assert.Contains(t, out, "name: IIsWebSite")
	assert.Contains(t, out, "- ParentType")
	assert.NotContains(t, out, "IIsMimeMap", "empty tables are omitted")
}

func TestReadYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, db *tables.Database)
	}{
		{
			name: "hand written without columns",
			yaml: `
tables:
  - name: IIsWebAddress
    rows:
      - [a1, S1, null, 80, null, 1]
`,
			check: func(t *testing.T, db *tables.Database) {
				row := db.Lookup(tables.TableWebAddress, "a1")
				require.NotNil(t, row)
				assert.Equal(t, "80", row.Get("Port"))
				assert.Equal(t, 1, row.Get("Secure"))
			},
		},
		{
			name: "empty document",
			yaml: "",
			check: func(t *testing.T, db *tables.Database) {
				assert.Equal(t, 0, db.Len())
			},
		},
		{
			name:    "unknown table",
			yaml:    "tables:\n  - name: Registry\n    rows: []\n",
			wantErr: "unknown table",
		},
		{
			name:    "column mismatch",
			yaml:    "tables:\n  - name: Binary\n    columns: [Name, Blob]\n    rows: []\n",
			wantErr: "column 2 is Blob",
		},
		{
			name:    "wrong arity",
			yaml:    "tables:\n  - name: Binary\n    rows:\n      - [B]\n",
			wantErr: "1 values for 2 columns",
		},
		{
			name:    "wrong type",
			yaml:    "tables:\n  - name: IIsWebAddress\n    rows:\n      - [a1, S1, null, '80', null, 'yes']\n",
			wantErr: "column Secure",
		},
		{
			name:    "duplicate key",
			yaml:    "tables:\n  - name: Binary\n    rows:\n      - [B, x]\n      - [B, y]\n",
			wantErr: "duplicate key",
		},
		{
			name:    "unset key",
			yaml:    "tables:\n  - name: Binary\n    rows:\n      - [null, x]\n",
			wantErr: "key column Name is unset",
		},
		{
			name:    "future version",
			yaml:    "version: \"2\"\ntables: []\n",
			wantErr: "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := ReadYAML(strings.NewReader(tt.yaml))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, db)
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.yaml", FormatYAML, true},
		{"a.YML", FormatYAML, true},
		{"dir/a.db", FormatSQLite, true},
		{"a.sqlite3", FormatSQLite, true},
		{"a.xml", "", false},
	}

	for _, tt := range tests {
		got, ok := FormatFor(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	assert.True(t, FormatYAML.IsValid())
	assert.False(t, Format("json").IsValid())
}

func TestCreateStatement(t *testing.T) {
	def := tables.DefinitionNamed(tables.TableWebError)
	require.NotNil(t, def)

	stmt := createStatement(def)
	assert.True(t, strings.HasPrefix(stmt, `CREATE TABLE "IIsWebError" (`))
	assert.Contains(t, stmt, `"ErrorCode" INTEGER NOT NULL`)
	assert.Contains(t, stmt, `"File" TEXT,`)
	assert.Contains(t, stmt, `PRIMARY KEY ("ErrorCode", "SubCode", "ParentType", "ParentValue")`)
}
