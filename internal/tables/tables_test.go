package tables

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iismap/internal/common"
)

func columnNames(def *Definition) []string {
	names := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		names[i] = c.Name
	}

	return names
}

func TestDefinitions_Layout(t *testing.T) {
	tests := []struct {
		table   string
		columns []string
		keys    []int
	}{
		{TableWebSite, []string{"Web", "Component_", "Description", "ConnectionTimeout", "Directory_", "State",
			"Attributes", "KeyAddress_", "DirProperties_", "Application_", "Sequence", "Log_", "WebsiteId"}, []int{0}},
		{TableWebAddress, []string{"Address", "Web_", "IP", "Port", "Header", "Secure"}, []int{0}},
		{TableMimeMap, []string{"MimeMap", "ParentType", "ParentValue", "MimeType", "Extension"}, []int{0}},
		{TableWebError, []string{"ErrorCode", "SubCode", "ParentType", "ParentValue", "File", "URL"}, []int{0, 1, 2, 3}},
		{TableWebApplicationExtension, []string{"Application_", "Extension", "Verbs", "Executable", "Attributes"}, []int{0, 1}},
		{TableWebSiteCertificates, []string{"Web_", "Certificate_"}, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			def := DefinitionNamed(tt.table)
			require.NotNil(t, def)
			assert.Equal(t, tt.columns, columnNames(def))
			assert.Equal(t, tt.keys, def.KeyColumns())
		})
	}
}

func TestDefinitions_Order(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 21)
	assert.Equal(t, TableDirectory, defs[0].Name)
	assert.Equal(t, TableProperty, defs[len(defs)-1].Name)
}

func TestDefinitions_References(t *testing.T) {
	for _, def := range Definitions() {
		for _, i := range def.References() {
			assert.NotNil(t, DefinitionNamed(def.Columns[i].Ref),
				"%s.%s references an unknown table", def.Name, def.Columns[i].Name)
		}
	}

	site := DefinitionNamed(TableWebSite)
	assert.Equal(t, TableWebAddress, site.Columns[site.Column("KeyAddress_")].Ref)
	assert.True(t, site.Columns[site.Column("Description")].Nullable)
	assert.False(t, site.Columns[site.Column("Web")].Nullable)

	kind, value, ok := DefinitionNamed(TableHttpHeader).ParentColumns()
	require.True(t, ok)
	assert.Equal(t, 1, kind)
	assert.Equal(t, 2, value)

	_, _, ok = site.ParentColumns()
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	site := WebSite{
		Web:         "S1",
		Description: common.Ptr("d"),
		State:       common.Ptr(0),
		KeyAddress:  common.Ptr("addr_S1_80"),
	}

	row, err := Encode(site)
	require.NoError(t, err)

	assert.Equal(t, "S1", row.Values[0])
	assert.Nil(t, row.Values[1], "unset column must stay nil")
	assert.Equal(t, 0, row.Values[5], "zero is a value, not unset")
	assert.Equal(t, "S1", row.Key())

	got, err := Decode[WebSite](row)
	require.NoError(t, err)
	assert.Equal(t, site, got, spew.Sdump(row))
}

func TestEncodeDecode_ParentRef(t *testing.T) {
	werr := WebError{ErrorCode: 404, SubCode: 2, Parent: VirtualDirParent("vdir_app"), URL: common.Ptr("/nf")}

	row, err := Encode(&werr)
	require.NoError(t, err)
	assert.Equal(t, []any{404, 2, 1, "vdir_app", nil, "/nf"}, row.Values)
	assert.Equal(t, "404/2/1/vdir_app", row.Key())

	got, err := Decode[WebError](row)
	require.NoError(t, err)
	assert.Equal(t, werr, got)
	assert.Equal(t, TableWebVirtualDir, got.Parent.Kind.Table())
}

func TestDecode_Malformed(t *testing.T) {
	def := DefinitionNamed(TableWebAddress)

	tests := []struct {
		name   string
		values []any
	}{
		{"arity", []any{"a"}},
		{"unset non-null column", []any{"a", nil, nil, nil, nil, nil}},
		{"wrong type", []any{"a", "S1", nil, nil, nil, "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[WebAddress](&Row{Def: def, Values: tt.values})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRow))
		})
	}

	_, err := Decode[WebSite](&Row{Def: def, Values: make([]any, 6)})
	require.Error(t, err)
}

func TestDecodeInto(t *testing.T) {
	row, err := Encode(WebAddress{Address: "a", Web: "S1", Port: common.Ptr("80")})
	require.NoError(t, err)

	var addr WebAddress
	require.NoError(t, DecodeInto(row, &addr))
	assert.Equal(t, "S1", addr.Web)

	tests := []struct {
		name string
		dst  any
	}{
		{"non-pointer", addr},
		{"other record", &WebSite{}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, DecodeInto(row, tt.dst))
		})
	}
}

func TestDecode_AcceptsInt64(t *testing.T) {
	def := DefinitionNamed(TableWebAddress)

	addr, err := Decode[WebAddress](&Row{Def: def, Values: []any{"a", "S1", nil, "80", nil, int64(1)}})
	require.NoError(t, err)
	assert.Equal(t, 1, *addr.Secure)
}

func TestDatabase_Insert(t *testing.T) {
	db := NewDatabase()

	_, err := db.Insert(Component{Component: "C1"}, 3)
	require.NoError(t, err)

	row, err := db.Insert(Component{Component: "C1"}, 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Equal(t, 9, row.Line)

	assert.Equal(t, 1, db.Len())
	assert.Equal(t, 3, db.Lookup(TableComponent, "C1").Line)
	assert.True(t, db.Exists(TableComponent, "C1"))
	assert.False(t, db.Exists(TableComponent, "C2"))
	assert.Nil(t, db.Lookup(TableWebSite, "C1"))
}

func TestDatabase_AddRowChecks(t *testing.T) {
	db := NewDatabase()

	err := db.AddRow(&Row{Def: DefinitionNamed(TableBinary), Values: []any{"b"}})
	assert.True(t, errors.Is(err, ErrMalformedRow))

	err = db.AddRow(&Row{Def: DefinitionNamed(TableBinary), Values: []any{nil, "x"}})
	assert.True(t, errors.Is(err, ErrMalformedRow))

	err = db.AddRow(&Row{Def: &Definition{Name: "Nope"}, Values: nil})
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestDatabase_TablesInDeclarationOrder(t *testing.T) {
	db := NewDatabase()

	_, err := db.Insert(WebSite{Web: "S1"}, 0)
	require.NoError(t, err)
	_, err = db.Insert(Directory{Directory: "D1"}, 0)
	require.NoError(t, err)

	tables := db.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, TableDirectory, tables[0].Def.Name)
	assert.Equal(t, TableWebSite, tables[1].Def.Name)
}

func TestDatabase_Equal(t *testing.T) {
	build := func(port string) *Database {
		db := NewDatabase()
		_, err := db.Insert(WebAddress{Address: "a", Web: "S1", Port: common.Ptr(port)}, 0)
		require.NoError(t, err)

		return db
	}

	assert.True(t, build("80").Equal(build("80")))
	assert.False(t, build("80").Equal(build("81")))
	assert.False(t, build("80").Equal(NewDatabase()))
}

func TestRow_Accessors(t *testing.T) {
	row, err := Encode(User{User: "U1", Name: common.Ptr("svc")})
	require.NoError(t, err)

	assert.Equal(t, TableUser, row.Table())
	assert.Equal(t, "svc", row.StringValue("Name"))
	assert.Equal(t, "", row.StringValue("Domain"))
	assert.Nil(t, row.Get("Missing"))
}

func TestParentKind(t *testing.T) {
	assert.Equal(t, TableWebSite, ParentWebSite.Table())
	assert.Equal(t, "WebVirtualDir", ParentWebVirtualDir.Element())
	assert.Equal(t, common.UnknownStr, ParentKind(7).String())
	assert.False(t, ParentKind(0).IsValid())
	assert.Equal(t, "", ParentKind(3).Table())
}

func TestDefine_Rejects(t *testing.T) {
	_, err := define(badNullableKey{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key columns cannot be nullable")

	_, err = define(badType{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported field type")
}

type badNullableKey struct {
	ID *string `msi:"ID,key"`
}

func (badNullableKey) TableName() string { return "Bad" }

type badType struct {
	ID   string  `msi:"ID,key"`
	Rate float64 `msi:"Rate"`
}

func (badType) TableName() string { return "Bad" }
