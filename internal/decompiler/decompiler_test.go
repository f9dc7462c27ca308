package decompiler

import (
	"slices"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iismap/internal/common"
	"iismap/internal/compiler"
	"iismap/internal/diagnostic"
	"iismap/internal/schema"
	"iismap/internal/tables"
	"iismap/internal/xmltree"
)

const roundTripDoc = `<Fragment>
  <Binary Id="CertBin" SourceFile="site.pfx" />
  <User Id="PoolUser" Name="svc" Domain="CORP" />
  <WebLog Id="Log1" Type="IIS" />
  <WebDirProperties Id="Shared" Read="yes" Script="yes" AnonymousAccess="no" WindowsAuthentication="yes"
      AccessSSL="yes" DefaultDocuments="default.aspx" LogVisits="no" />
  <WebApplication Id="SharedApp" Name="shared" Isolation="high" WebAppPool="Pool1" AllowSessions="yes">
    <WebApplicationExtension Extension="aspx" Executable="aspnet_isapi.dll" Verbs="GET,POST" Script="yes" />
  </WebApplication>
  <Directory Id="WebRoot" Name="www">
    <Directory Id="AppDir" Name="app">
      <Component Id="SiteComp">
        <WebAppPool Id="Pool1" Name="pool1" Identity="other" User="PoolUser" CpuMon="75" RefreshCpu="5" ManagedRuntimeVersion="v4.0">
          <RecycleTime Value="02:00" />
          <RecycleTime Value="14:00" />
        </WebAppPool>
        <WebSite Id="Site1" Description="Main" AutoStart="yes" Directory="WebRoot" WebLog="Log1" DirProperties="Shared">
          <WebAddress Id="Addr1" Port="80" />
          <WebAddress Id="Addr2" Port="443" Secure="yes" Header="www.example.com" />
          <WebApplication Name="root" Isolation="medium" />
          <WebVirtualDir Id="VApp" Alias="app" Directory="AppDir" WebApplication="SharedApp">
            <MimeMap Id="JsonMime" Type="application/json" Extension=".json" />
            <HttpHeader Id="Hdr1" Name="X-Frame-Options">DENY</HttpHeader>
            <WebError ErrorCode="404" SubCode="0" URL="/notfound" />
          </WebVirtualDir>
          <WebDir Id="Dir1" Path="static">
            <WebDirProperties Read="yes" Index="yes" />
          </WebDir>
          <MimeMap Id="SiteMime" Type="text/plain" Extension=".log" />
          <WebError ErrorCode="500" SubCode="100" File="err.htm" />
          <WebFilter Id="Filter1" Name="rewrite" Path="rewrite.dll" LoadOrder="first" />
          <CertificateRef Id="SiteCert" />
        </WebSite>
        <Certificate Id="SiteCert" Name="site" StoreLocation="localMachine" StoreName="my" BinaryKey="CertBin" Overwrite="yes" />
        <WebServiceExtension Id="Ext1" File="ext.dll" Description="ext" Allow="yes" />
        <WebFilter Id="Global" Name="global" Path="g.dll" LoadOrder="3" />
        <WebProperty Id="ETagChangeNumber" Value="1234" />
      </Component>
      <Component Id="OtherComp">
        <WebVirtualDir Id="VOther" Alias="other" Directory="AppDir" WebSite="Site1" />
      </Component>
    </Directory>
  </Directory>
</Fragment>`

func compileDoc(t *testing.T, doc string) *tables.Database {
	t.Helper()

	s, err := schema.Default()
	require.NoError(t, err)

	res, err := compiler.New(s, nil).CompileReader(strings.NewReader(doc), "test.xml")
	require.NoError(t, err)
	require.True(t, res.Succeeded(), spew.Sdump(res.Diagnostics.Errors))

	return res.Database
}

func decompile(t *testing.T, db *tables.Database) *Result {
	t.Helper()
	return New(nil).Decompile(db)
}

func insertAll(t *testing.T, db *tables.Database, recs ...tables.Record) {
	t.Helper()

	for _, rec := range recs {
		_, err := db.Insert(rec, 0)
		require.NoError(t, err)
	}
}

func find(t *testing.T, root *xmltree.Element, name, id string) *xmltree.Element {
	t.Helper()

	el := root.Find(name, id)
	require.NotNil(t, el, "no %s %q in\n%s", name, id, root)

	return el
}

// inlineChild maps a reference attribute onto the child element it
// replaces when an inline setting is decompiled.
var inlineChild = map[string]string{
	"DirProperties":  "WebDirProperties",
	"WebApplication": "WebApplication",
}

// equivalent compares attributes up to the documented lossy spots: a
// packed "no" may come back absent, an explicit "no" may appear where the
// source said nothing, and inner text reads back as Value.
func equivalent(t *testing.T, src, got *xmltree.Element) {
	t.Helper()

	want := src.AttrMap()
	if text := strings.TrimSpace(src.Text); text != "" {
		want["Value"] = text
	}

	have := got.AttrMap()

	for name, v := range want {
		h, ok := have[name]
		if !ok && v == "no" {
			continue
		}

		assert.Equal(t, v, h, "%s %s/@%s", src.Name, src.AttrOr("Id", ""), name)
	}

	for name, v := range have {
		if _, ok := want[name]; ok {
			continue
		}

		if child, ok := inlineChild[name]; ok && len(src.ChildrenNamed(child)) == 1 {
			continue
		}

		assert.Equal(t, "no", v, "%s %s has extra attribute %s", src.Name, src.AttrOr("Id", ""), name)
	}
}

func TestDecompile_RoundTrip(t *testing.T) {
	db := compileDoc(t, roundTripDoc)

	res := decompile(t, db)
	require.True(t, res.Succeeded(), spew.Sdump(res.Diagnostics))
	assert.Empty(t, res.Diagnostics.Warnings)

	again := compileDoc(t, res.Root.String())
	assert.True(t, db.Equal(again), "tables differ after round trip:\n%s", res.Root)

	src, err := xmltree.Parse(strings.NewReader(roundTripDoc))
	require.NoError(t, err)

	src.Walk(func(el *xmltree.Element) {
		id, ok := el.Attr("Id")
		if !ok || el.Name == "CertificateRef" {
			return
		}

		equivalent(t, el, find(t, res.Root, el.Name, id))
	})
}

func TestDecompile_RoundTripPlacement(t *testing.T) {
	res := decompile(t, compileDoc(t, roundTripDoc))

	site := find(t, res.Root, "WebSite", "Site1")
	assert.Equal(t, "Component", site.Parent.Name)
	assert.Equal(t, "SiteComp", site.Parent.AttrOr("Id", ""))

	addrs := site.ChildrenNamed("WebAddress")
	require.Len(t, addrs, 2)
	assert.Equal(t, "Addr1", addrs[0].AttrOr("Id", ""), "key address comes first")

	vapp := find(t, res.Root, "WebVirtualDir", "VApp")
	assert.Same(t, site, vapp.Parent)
	_, hasSite := vapp.Attr("WebSite")
	assert.False(t, hasSite)

	vother := find(t, res.Root, "WebVirtualDir", "VOther")
	assert.Equal(t, "OtherComp", vother.Parent.AttrOr("Id", ""))
	assert.Equal(t, "Site1", vother.AttrOr("WebSite", ""))

	assert.Same(t, site, find(t, res.Root, "WebFilter", "Filter1").Parent)
	assert.Equal(t, "SiteComp", find(t, res.Root, "WebFilter", "Global").Parent.AttrOr("Id", ""))

	pool := find(t, res.Root, "WebAppPool", "Pool1")
	times := pool.ChildrenNamed("RecycleTime")
	require.Len(t, times, 2)
	assert.Equal(t, "14:00", times[1].AttrOr("Value", ""))

	// Inline settings come back as top-level elements referenced by attribute.
	assert.Equal(t, "app_Site1", site.AttrOr("WebApplication", ""))
	assert.Same(t, res.Root, find(t, res.Root, "WebApplication", "app_Site1").Parent)
	assert.Equal(t, "dprop_Dir1", find(t, res.Root, "WebDir", "Dir1").AttrOr("DirProperties", ""))
}

func TestDecompile_SiteWithGeneratedAddress(t *testing.T) {
	db := compileDoc(t, `<Fragment><Directory Id="D"><Component Id="C">
  <WebSite Id="S1" Description="d"><WebAddress Port="80" /></WebSite>
</Component></Directory></Fragment>`)

	res := decompile(t, db)
	require.True(t, res.Succeeded())

	site := find(t, res.Root, "WebSite", "S1")
	assert.Equal(t, "d", site.AttrOr("Description", ""))

	addrs := site.ChildrenNamed("WebAddress")
	require.Len(t, addrs, 1)
	assert.Equal(t, "80", addrs[0].AttrOr("Port", ""))
}

func TestDecompile_ExecuteOnly(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db, tables.WebDirProperties{DirProperties: "DP", Access: common.Ptr(0x4)})

	res := decompile(t, db)
	require.True(t, res.Succeeded())
	assert.Empty(t, res.Diagnostics.Warnings)

	dp := find(t, res.Root, "WebDirProperties", "DP")
	assert.Equal(t, map[string]string{"Id": "DP", "Execute": "yes"}, dp.AttrMap())
}

func TestDecompile_AnonymousAccessAsymmetry(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.WebDirProperties{DirProperties: "Windows", Authorization: common.Ptr(0x4)},
		tables.WebDirProperties{DirProperties: "Anon", Authorization: common.Ptr(0x1)},
		tables.WebDirProperties{DirProperties: "Unset", Access: common.Ptr(0x1)},
	)

	res := decompile(t, db)

	windows := find(t, res.Root, "WebDirProperties", "Windows")
	assert.Equal(t, "no", windows.AttrOr("AnonymousAccess", ""))
	assert.Equal(t, "yes", windows.AttrOr("WindowsAuthentication", ""))
	_, hasBasic := windows.Attr("BasicAuthentication")
	assert.False(t, hasBasic, "other clear bits are omitted")

	assert.Equal(t, "yes", find(t, res.Root, "WebDirProperties", "Anon").AttrOr("AnonymousAccess", ""))

	_, hasAnon := find(t, res.Root, "WebDirProperties", "Unset").Attr("AnonymousAccess")
	assert.False(t, hasAnon)
}

func TestDecompile_UnknownBitsAndValues(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.WebDirProperties{DirProperties: "DP", Access: common.Ptr(0x4 | 0x8)},
		tables.WebApplication{Application: "A", Isolation: common.Ptr(7)},
		tables.Filter{Filter: "F", LoadOrder: common.Ptr(-3)},
	)

	res := decompile(t, db)
	assert.True(t, res.Succeeded(), "unknown values are warnings")

	bits := res.Diagnostics.WithCode(diagnostic.CodeUnknownBits)
	require.Len(t, bits, 1)
	assert.Equal(t, []string{tables.TableWebDirProperties, "DP", "Access", "0x8"}, bits[0].Args)
	assert.Equal(t, "yes", find(t, res.Root, "WebDirProperties", "DP").AttrOr("Execute", ""))

	values := res.Diagnostics.WithCode(diagnostic.CodeUnknownValue)
	require.Len(t, values, 2)

	_, has := find(t, res.Root, "WebApplication", "A").Attr("Isolation")
	assert.False(t, has)
}

func TestDecompile_MimeMapFollowsDiscriminator(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.Component{Component: "C"},
		tables.WebSite{Web: "X", Component: common.Ptr("C")},
		tables.WebVirtualDir{VirtualDir: "X", Component: common.Ptr("C"), Web: common.Ptr("X")},
		tables.MimeMap{MimeMap: "m", Parent: tables.VirtualDirParent("X"), MimeType: common.Ptr("a/b")},
		tables.HttpHeader{HttpHeader: "h", Parent: tables.WebSiteParent("X")},
	)

	res := decompile(t, db)
	require.True(t, res.Succeeded())

	mime := find(t, res.Root, "MimeMap", "m")
	assert.Equal(t, "WebVirtualDir", mime.Parent.Name)

	hdr := find(t, res.Root, "HttpHeader", "h")
	assert.Equal(t, "WebSite", hdr.Parent.Name)
}

func TestDecompile_OrderIndependent(t *testing.T) {
	recs := []tables.Record{
		tables.Directory{Directory: "D"},
		tables.Component{Component: "C", Directory: common.Ptr("D")},
		tables.WebSite{Web: "S", Component: common.Ptr("C"), KeyAddress: common.Ptr("a2")},
		tables.WebAddress{Address: "a1", Web: "S", Port: common.Ptr("81")},
		tables.WebAddress{Address: "a2", Web: "S", Port: common.Ptr("80")},
		tables.WebVirtualDir{VirtualDir: "V", Component: common.Ptr("C"), Web: common.Ptr("S")},
		tables.MimeMap{MimeMap: "m", Parent: tables.VirtualDirParent("V")},
		tables.WebError{ErrorCode: 404, SubCode: 0, Parent: tables.WebSiteParent("S")},
	}

	forward := tables.NewDatabase()
	insertAll(t, forward, recs...)

	reversed := slices.Clone(recs)
	slices.Reverse(reversed)

	backward := tables.NewDatabase()
	insertAll(t, backward, reversed...)

	a, b := decompile(t, forward), decompile(t, backward)
	require.True(t, a.Succeeded())
	require.True(t, b.Succeeded())

	// Row order inside one table is document order and stays significant.
	aSite := find(t, a.Root, "WebSite", "S")
	assert.Equal(t, "a2", aSite.ChildrenNamed("WebAddress")[0].AttrOr("Id", ""))

	bSite := find(t, b.Root, "WebSite", "S")
	assert.Equal(t, "a2", bSite.ChildrenNamed("WebAddress")[0].AttrOr("Id", ""))

	assert.Equal(t, a.Root.Find("MimeMap", "m").Parent.Name, b.Root.Find("MimeMap", "m").Parent.Name)
	assert.Equal(t, len(a.Root.Children), len(b.Root.Children))
}

func TestDecompile_OrderIndependentAcrossTables(t *testing.T) {
	site := tables.WebSite{Web: "S", Component: common.Ptr("C")}
	comp := tables.Component{Component: "C"}
	vdir := tables.WebVirtualDir{VirtualDir: "V", Component: common.Ptr("C"), Web: common.Ptr("S")}
	mime := tables.MimeMap{MimeMap: "m", Parent: tables.VirtualDirParent("V")}

	childrenFirst := tables.NewDatabase()
	insertAll(t, childrenFirst, mime, vdir, site, comp)

	parentsFirst := tables.NewDatabase()
	insertAll(t, parentsFirst, comp, site, vdir, mime)

	assert.Equal(t, decompile(t, parentsFirst).Root.String(), decompile(t, childrenFirst).Root.String())
}

func TestDecompile_DanglingParent(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.WebSite{Web: "S"},
		tables.MimeMap{MimeMap: "m", Parent: tables.VirtualDirParent("Missing")},
		tables.MimeMap{MimeMap: "ok", Parent: tables.WebSiteParent("S")},
	)

	res := decompile(t, db)
	assert.True(t, res.Succeeded(), "a dangling parent is recoverable")

	require.Len(t, res.Diagnostics.Warnings, 1)
	d := res.Diagnostics.Warnings[0]
	assert.Equal(t, diagnostic.CodeDanglingReference, d.Code)
	assert.Equal(t, []string{tables.TableMimeMap, "m", tables.TableWebVirtualDir, "Missing"}, d.Args)

	assert.Nil(t, res.Root.Find("MimeMap", "m"))
	assert.NotNil(t, res.Root.Find("MimeMap", "ok"))
}

func TestDecompile_SelfParentedDirectory(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.Directory{Directory: "TARGETDIR", DirectoryParent: common.Ptr("TARGETDIR"), DefaultDir: common.Ptr("SourceDir")},
		tables.Directory{Directory: "WebRoot", DirectoryParent: common.Ptr("TARGETDIR")},
		tables.Component{Component: "C", Directory: common.Ptr("WebRoot")},
	)

	res := decompile(t, db)
	assert.Empty(t, res.Diagnostics.Warnings)

	target := find(t, res.Root, "Directory", "TARGETDIR")
	assert.Same(t, res.Root, target.Parent)
	assert.Same(t, target, find(t, res.Root, "Directory", "WebRoot").Parent)
	find(t, res.Root, "Component", "C")
}

func TestDecompile_DirectoryCycle(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.Directory{Directory: "A", DirectoryParent: common.Ptr("B")},
		tables.Directory{Directory: "B", DirectoryParent: common.Ptr("A")},
		tables.Directory{Directory: "Ok"},
		tables.Component{Component: "C", Directory: common.Ptr("A")},
	)

	res := decompile(t, db)
	assert.True(t, res.Succeeded())

	cycle := res.Diagnostics.WithCode(diagnostic.CodeDanglingReference)
	require.Len(t, cycle, 3)

	args := make([][]string, len(cycle))
	for i, d := range cycle {
		args[i] = d.Args
	}

	assert.ElementsMatch(t, [][]string{
		{tables.TableDirectory, "A", tables.TableDirectory, "B"},
		{tables.TableDirectory, "B", tables.TableDirectory, "A"},
		{tables.TableComponent, "C", tables.TableDirectory, "A"},
	}, args)

	assert.Nil(t, res.Root.Find("Directory", "A"))
	assert.Nil(t, res.Root.Find("Component", "C"))
	find(t, res.Root, "Directory", "Ok")
}

func TestDecompile_ChildOfSkippedParent(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.Directory{Directory: "Sub", DirectoryParent: common.Ptr("Missing")},
		tables.Component{Component: "C", Directory: common.Ptr("Sub")},
	)

	res := decompile(t, db)

	dangling := res.Diagnostics.WithCode(diagnostic.CodeDanglingReference)
	require.Len(t, dangling, 2)
	assert.Equal(t, []string{tables.TableDirectory, "Sub", tables.TableDirectory, "Missing"}, dangling[0].Args)
	assert.Equal(t, []string{tables.TableComponent, "C", tables.TableDirectory, "Sub"}, dangling[1].Args)
	assert.Empty(t, res.Root.Children)
}

func TestDecompile_UnknownParentKind(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db, tables.MimeMap{MimeMap: "m", Parent: tables.ParentRef{Kind: 5, ID: "S"}})

	res := decompile(t, db)
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeUnknownValue))
	assert.Nil(t, res.Root.Find("MimeMap", "m"))
}

func TestDecompile_MalformedRow(t *testing.T) {
	db := tables.NewDatabase()
	require.NoError(t, db.AddRow(&tables.Row{
		Def:    tables.DefinitionNamed(tables.TableWebAddress),
		Values: []any{"a", "S", nil, nil, nil, "yes"},
	}))

	res := decompile(t, db)
	assert.False(t, res.Succeeded())
	assert.Equal(t, 1, res.Diagnostics.Count(diagnostic.CodeMalformedRow))
}

func TestDecompile_CertificateBits(t *testing.T) {
	db := tables.NewDatabase()
	insertAll(t, db,
		tables.Certificate{Certificate: "WithKey", Attributes: common.Ptr(0x2 | 0x1), Binary: common.Ptr("B")},
		tables.Certificate{Certificate: "NoKey", Attributes: common.Ptr(0x2)},
	)

	res := decompile(t, db)

	withKey := find(t, res.Root, "Certificate", "WithKey")
	assert.Equal(t, "yes", withKey.AttrOr("Request", ""))
	assert.Equal(t, "B", withKey.AttrOr("BinaryKey", ""))

	bits := res.Diagnostics.WithCode(diagnostic.CodeUnknownBits)
	require.Len(t, bits, 1)
	assert.Equal(t, "NoKey", bits[0].Args[1])
}
