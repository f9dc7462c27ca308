package decompiler

import (
	"strconv"

	"iismap/internal/diagnostic"
	"iismap/internal/tables"
	"iismap/internal/vocab"
)

// reconstructors maps each table onto the function that rebuilds one of
// its rows. A nil binding means the row was reported and skipped.
var reconstructors = map[string]func(*pass, *tables.Row) *binding{
	tables.TableDirectory:               (*pass).directory,
	tables.TableComponent:               (*pass).component,
	tables.TableBinary:                  (*pass).binary,
	tables.TableUser:                    (*pass).user,
	tables.TableWebLog:                  (*pass).webLog,
	tables.TableWebDirProperties:        (*pass).webDirProperties,
	tables.TableAppPool:                 (*pass).appPool,
	tables.TableWebApplication:          (*pass).webApplication,
	tables.TableWebApplicationExtension: (*pass).webApplicationExtension,
	tables.TableWebSite:                 (*pass).webSite,
	tables.TableWebAddress:              (*pass).webAddress,
	tables.TableWebVirtualDir:           (*pass).webVirtualDir,
	tables.TableWebDir:                  (*pass).webDir,
	tables.TableFilter:                  (*pass).filter,
	tables.TableMimeMap:                 (*pass).mimeMap,
	tables.TableHttpHeader:              (*pass).httpHeader,
	tables.TableWebError:                (*pass).webError,
	tables.TableWebServiceExtension:     (*pass).webServiceExtension,
	tables.TableCertificate:             (*pass).certificate,
	tables.TableWebSiteCertificates:     (*pass).webSiteCertificate,
	tables.TableProperty:                (*pass).property,
}

// anonymousAccess is the Authorization bit written as an explicit "no"
// whenever the column is set and the bit is clear.
const anonymousAccess = 0x1

func decode[T tables.Record](p *pass, row *tables.Row) (T, bool) {
	rec, err := tables.Decode[T](row)
	if err != nil {
		p.diags.Add(diagnostic.MalformedRow(row.Table(), row.Key(), err))
		return rec, false
	}

	return rec, true
}

func (p *pass) directory(row *tables.Row) *binding {
	rec, ok := decode[tables.Directory](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "Directory")
	b.set("Id", rec.Directory)
	b.str("Name", rec.DefaultDir)

	// A directory that is its own parent is a root.
	if rec.DirectoryParent != nil && *rec.DirectoryParent == rec.Directory {
		return b.under(tables.TableDirectory, nil)
	}

	return b.under(tables.TableDirectory, rec.DirectoryParent)
}

func (p *pass) component(row *tables.Row) *binding {
	rec, ok := decode[tables.Component](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "Component")
	b.set("Id", rec.Component)

	return b.under(tables.TableDirectory, rec.Directory)
}

func (p *pass) binary(row *tables.Row) *binding {
	rec, ok := decode[tables.Binary](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "Binary")
	b.set("Id", rec.Name)
	b.str("SourceFile", rec.Data)

	return b.under("", nil)
}

func (p *pass) user(row *tables.Row) *binding {
	rec, ok := decode[tables.User](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "User")
	b.set("Id", rec.User)
	b.str("Name", rec.Name)
	b.str("Domain", rec.Domain)
	b.str("Password", rec.Password)

	return b.underComponent(rec.Component)
}

func (p *pass) webLog(row *tables.Row) *binding {
	rec, ok := decode[tables.WebLog](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebLog")
	b.set("Id", rec.Log)
	enum(b, "Type", "Format", vocab.LogFormat, rec.Format)

	return b.under("", nil)
}

func (p *pass) webDirProperties(row *tables.Row) *binding {
	rec, ok := decode[tables.WebDirProperties](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebDirProperties")
	b.set("Id", rec.DirProperties)
	b.flags("Access", vocab.AccessFlags, rec.Access, 0)
	b.flags("Authorization", vocab.AuthorizationFlags, rec.Authorization, 0)

	if rec.Authorization != nil && *rec.Authorization&anonymousAccess == 0 {
		b.set("AnonymousAccess", "no")
	}

	b.flags("AccessSSLFlags", vocab.AccessSSLFlags, rec.AccessSSLFlags, 0)
	b.str("AnonymousUser", rec.AnonymousUser)
	b.yesNo("IIsControlledPassword", "IIsControlledPassword", rec.IIsControlledPassword)
	b.yesNo("LogVisits", "LogVisits", rec.LogVisits)
	b.yesNo("Index", "Index", rec.Index)
	b.str("DefaultDocuments", rec.DefaultDoc)
	b.yesNo("AspDetailedError", "AspDetailedError", rec.AspDetailedError)
	b.str("HttpExpires", rec.HttpExpires)
	b.integer("CacheControlMaxAge", rec.CacheControlMaxAge)
	b.str("CacheControlCustom", rec.CacheControlCustom)
	b.yesNo("ClearCustomError", "NoCustomError", rec.NoCustomError)
	b.str("AuthenticationProviders", rec.AuthenticationProviders)

	return b.under("", nil)
}

func (p *pass) appPool(row *tables.Row) *binding {
	rec, ok := decode[tables.AppPool](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebAppPool")
	b.set("Id", rec.AppPool)
	b.str("Name", rec.Name)
	enum(b, "Identity", "Attributes", vocab.Identity, rec.Attributes)
	b.str("User", rec.User)
	b.integer("RecycleMinutes", rec.RecycleMinutes)
	b.integer("RecycleRequests", rec.RecycleRequests)
	b.integer("IdleTimeout", rec.IdleTimeout)
	b.integer("QueueLimit", rec.QueueLimit)
	b.integer("MaxWorkerProcesses", rec.MaxProc)
	b.integer("VirtualMemory", rec.VirtualMemory)
	b.integer("PrivateMemory", rec.PrivateMemory)

	if rec.CPUMon != nil {
		mon, err := vocab.ParseCPUMon(*rec.CPUMon)
		if err != nil {
			b.unknownValue("CPUMon", *rec.CPUMon)
		} else {
			b.integer("CpuMon", &mon.Percent)
			b.integer("RefreshCpu", mon.Refresh)
			enum(b, "CpuAction", "CPUMon", vocab.CPUAction, mon.Action)
		}
	}

	b.str("ManagedRuntimeVersion", rec.ManagedRuntimeVersion)
	b.str("ManagedPipelineMode", rec.ManagedPipelineMode)

	if rec.RecycleTimes != nil {
		for _, t := range vocab.SplitRecycleTimes(*rec.RecycleTimes) {
			rt := p.element(row, "RecycleTime")
			rt.set("Value", t)
			b.el.AppendChild(rt.el)
		}
	}

	return b.underComponent(rec.Component)
}

func (p *pass) webApplication(row *tables.Row) *binding {
	rec, ok := decode[tables.WebApplication](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebApplication")
	b.set("Id", rec.Application)
	b.str("Name", rec.Name)
	enum(b, "Isolation", "Isolation", vocab.Isolation, rec.Isolation)
	b.yesNo("AllowSessions", "AllowSessions", rec.AllowSessions)
	b.integer("SessionTimeout", rec.SessionTimeout)
	b.yesNo("Buffer", "Buffer", rec.Buffer)
	b.yesNo("ParentPaths", "ParentPaths", rec.ParentPaths)
	b.str("DefaultScript", rec.DefaultScript)
	b.integer("ScriptTimeout", rec.ScriptTimeout)
	b.yesNo("ServerDebugging", "ServerDebugging", rec.ServerDebugging)
	b.yesNo("ClientDebugging", "ClientDebugging", rec.ClientDebugging)
	b.str("WebAppPool", rec.AppPool)

	return b.under("", nil)
}

func (p *pass) webApplicationExtension(row *tables.Row) *binding {
	rec, ok := decode[tables.WebApplicationExtension](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebApplicationExtension")
	if rec.Extension != "" {
		b.set("Extension", rec.Extension)
	}

	b.str("Verbs", rec.Verbs)
	b.str("Executable", rec.Executable)
	b.flags("Attributes", vocab.ExtensionFlags, rec.Attributes, 0)

	return b.under(tables.TableWebApplication, &rec.Application)
}

func (p *pass) webSite(row *tables.Row) *binding {
	rec, ok := decode[tables.WebSite](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebSite")
	b.set("Id", rec.Web)
	b.str("Description", rec.Description)
	b.integer("ConnectionTimeout", rec.ConnectionTimeout)
	b.str("Directory", rec.Directory)
	b.str("SiteId", rec.WebsiteID)
	b.integer("Sequence", rec.Sequence)
	b.flags("State", vocab.SiteStateFlags, rec.State, 0)
	b.flags("Attributes", nil, rec.Attributes, 0)
	b.str("DirProperties", rec.DirProperties)
	b.str("WebApplication", rec.Application)
	b.str("WebLog", rec.Log)

	return b.underComponent(rec.Component)
}

func (p *pass) webAddress(row *tables.Row) *binding {
	rec, ok := decode[tables.WebAddress](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebAddress")
	b.set("Id", rec.Address)
	b.str("IP", rec.IP)
	b.str("Port", rec.Port)
	b.str("Header", rec.Header)
	b.yesNo("Secure", "Secure", rec.Secure)

	if site := p.db.Lookup(tables.TableWebSite, rec.Web); site != nil {
		b.prepend = site.StringValue("KeyAddress_") == rec.Address
	}

	return b.under(tables.TableWebSite, &rec.Web)
}

func (p *pass) webVirtualDir(row *tables.Row) *binding {
	rec, ok := decode[tables.WebVirtualDir](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebVirtualDir")
	b.set("Id", rec.VirtualDir)
	b.str("Alias", rec.Alias)
	b.str("Directory", rec.Directory)
	b.str("DirProperties", rec.DirProperties)
	b.str("WebApplication", rec.Application)

	return b.siteOrComponent(rec.Web, rec.Component)
}

func (p *pass) webDir(row *tables.Row) *binding {
	rec, ok := decode[tables.WebDir](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebDir")
	b.set("Id", rec.WebDir)
	b.str("Path", rec.Path)
	b.str("DirProperties", rec.DirProperties)
	b.str("WebApplication", rec.Application)

	return b.siteOrComponent(rec.Web, rec.Component)
}

func (p *pass) filter(row *tables.Row) *binding {
	rec, ok := decode[tables.Filter](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebFilter")
	b.set("Id", rec.Filter)
	b.str("Name", rec.Name)
	b.str("Path", rec.Path)
	b.str("Description", rec.Description)
	b.integer("Flags", rec.Flags)

	if rec.LoadOrder != nil {
		if s, ok := vocab.FormatLoadOrder(*rec.LoadOrder); ok {
			b.set("LoadOrder", s)
		} else {
			b.unknownValue("LoadOrder", strconv.Itoa(*rec.LoadOrder))
		}
	}

	if rec.Web == nil {
		return b.underComponent(rec.Component)
	}

	return b.siteOrComponent(rec.Web, rec.Component)
}

func (p *pass) mimeMap(row *tables.Row) *binding {
	rec, ok := decode[tables.MimeMap](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "MimeMap")
	b.set("Id", rec.MimeMap)
	b.str("Type", rec.MimeType)
	b.str("Extension", rec.Extension)

	return b.parentRef(rec.Parent)
}

func (p *pass) httpHeader(row *tables.Row) *binding {
	rec, ok := decode[tables.HttpHeader](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "HttpHeader")
	b.set("Id", rec.HttpHeader)
	b.str("Name", rec.Name)
	b.str("Value", rec.Value)
	b.integer("Sequence", rec.Sequence)

	return b.parentRef(rec.Parent)
}

func (p *pass) webError(row *tables.Row) *binding {
	rec, ok := decode[tables.WebError](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebError")
	b.integer("ErrorCode", &rec.ErrorCode)
	b.integer("SubCode", &rec.SubCode)
	b.str("File", rec.File)
	b.str("URL", rec.URL)

	return b.parentRef(rec.Parent)
}

func (p *pass) webServiceExtension(row *tables.Row) *binding {
	rec, ok := decode[tables.WebServiceExtension](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebServiceExtension")
	b.set("Id", rec.WebServiceExtension)
	b.str("File", rec.File)
	b.str("Description", rec.Description)
	b.str("Group", rec.Group)
	b.flags("Attributes", vocab.ServiceExtensionFlags, rec.Attributes, 0)

	return b.underComponent(rec.Component)
}

func (p *pass) certificate(row *tables.Row) *binding {
	rec, ok := decode[tables.Certificate](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "Certificate")
	b.set("Id", rec.Certificate)
	b.str("Name", rec.Name)
	enum(b, "StoreLocation", "StoreLocation", vocab.StoreLocation, rec.StoreLocation)
	enum(b, "StoreName", "StoreName", vocab.StoreName, rec.StoreName)

	handled := 0
	if rec.Binary != nil {
		handled = vocab.CertificateBinaryKey
	}

	b.flags("Attributes", vocab.CertificateFlags, rec.Attributes, handled)
	b.str("BinaryKey", rec.Binary)
	b.str("CertificatePath", rec.CertificatePath)
	b.str("PFXPassword", rec.PFXPassword)

	return b.underComponent(rec.Component)
}

func (p *pass) webSiteCertificate(row *tables.Row) *binding {
	rec, ok := decode[tables.WebSiteCertificate](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "CertificateRef")
	b.set("Id", rec.Certificate)

	return b.under(tables.TableWebSite, &rec.Web)
}

func (p *pass) property(row *tables.Row) *binding {
	rec, ok := decode[tables.Property](p, row)
	if !ok {
		return nil
	}

	b := p.element(row, "WebProperty")
	b.set("Id", rec.Property)
	b.flags("Attributes", nil, rec.Attributes, 0)
	b.str("Value", rec.Value)

	return b.underComponent(rec.Component)
}
