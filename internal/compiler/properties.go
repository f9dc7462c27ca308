package compiler

import (
	"iismap/internal/tables"
	"iismap/internal/vocab"
	"iismap/internal/xmltree"
)

func (p *pass) webDirProperties(el *xmltree.Element, sc scope) string {
	v := p.validate(el)
	id := p.identify(v, tables.TableWebDirProperties, prefixDirProperties, sc.owner)

	rec := tables.WebDirProperties{
		DirProperties:           id,
		Access:                  vocab.AccessFlags.Pack(v.YesNo),
		Authorization:           vocab.AuthorizationFlags.Pack(v.YesNo),
		AnonymousUser:           v.String("AnonymousUser"),
		IIsControlledPassword:   v.YesNoInt("IIsControlledPassword"),
		LogVisits:               v.YesNoInt("LogVisits"),
		Index:                   v.YesNoInt("Index"),
		DefaultDoc:              v.String("DefaultDocuments"),
		AspDetailedError:        v.YesNoInt("AspDetailedError"),
		HttpExpires:             v.String("HttpExpires"),
		CacheControlMaxAge:      v.Int("CacheControlMaxAge"),
		CacheControlCustom:      v.String("CacheControlCustom"),
		NoCustomError:           v.YesNoInt("ClearCustomError"),
		AccessSSLFlags:          vocab.AccessSSLFlags.Pack(v.YesNo),
		AuthenticationProviders: v.String("AuthenticationProviders"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) webApplication(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	basis := sc.owner
	if basis == "" {
		basis = v.StringOr("Name", "")
	}

	id := p.identify(v, tables.TableWebApplication, prefixApplication, basis)

	var isolation *int

	if name := v.String("Isolation"); name != nil {
		if n, ok := vocab.Isolation.Value(*name); ok {
			isolation = &n
		}
	}

	inner := sc
	inner.app = id

	p.children(el, inner)

	rec := tables.WebApplication{
		Application:     id,
		Name:            v.String("Name"),
		Isolation:       isolation,
		AllowSessions:   v.YesNoInt("AllowSessions"),
		SessionTimeout:  v.Int("SessionTimeout"),
		Buffer:          v.YesNoInt("Buffer"),
		ParentPaths:     v.YesNoInt("ParentPaths"),
		DefaultScript:   v.String("DefaultScript"),
		ScriptTimeout:   v.Int("ScriptTimeout"),
		ServerDebugging: v.YesNoInt("ServerDebugging"),
		ClientDebugging: v.YesNoInt("ClientDebugging"),
		AppPool:         v.String("WebAppPool"),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return id
}

func (p *pass) webApplicationExtension(el *xmltree.Element, sc scope) string {
	v := p.validate(el)

	rec := tables.WebApplicationExtension{
		Application: sc.app,
		Extension:   v.StringOr("Extension", ""),
		Verbs:       v.String("Verbs"),
		Executable:  v.String("Executable"),
		Attributes:  vocab.ExtensionFlags.Pack(v.YesNo),
	}

	if !p.insert(rec, el) {
		return ""
	}

	return sc.app + tables.KeySeparator + rec.Extension
}
