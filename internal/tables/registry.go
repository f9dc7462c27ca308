package tables

import (
	"fmt"
	"reflect"
)

// registry holds every table in declaration order. Output follows this order.
var registry = mustRegister(
	Directory{},
	Component{},
	Binary{},
	User{},
	WebLog{},
	WebDirProperties{},
	AppPool{},
	WebApplication{},
	WebApplicationExtension{},
	WebSite{},
	WebAddress{},
	WebVirtualDir{},
	WebDir{},
	Filter{},
	MimeMap{},
	HttpHeader{},
	WebError{},
	WebServiceExtension{},
	Certificate{},
	WebSiteCertificate{},
	Property{},
)

type tableRegistry struct {
	ordered []*Definition
	byName  map[string]*Definition
	byType  map[reflect.Type]*Definition
}

func mustRegister(records ...Record) *tableRegistry {
	reg := &tableRegistry{
		byName: map[string]*Definition{},
		byType: map[reflect.Type]*Definition{},
	}

	for _, rec := range records {
		def, err := define(rec)
		if err != nil {
			panic(fmt.Sprintf("tables: %v", err))
		}

		reg.ordered = append(reg.ordered, def)
		reg.byName[def.Name] = def
		reg.byType[def.record] = def
	}

	return reg
}

// Definitions returns every table definition in declaration order.
func Definitions() []*Definition {
	return registry.ordered
}

// DefinitionNamed returns the definition of the named table, or nil.
func DefinitionNamed(name string) *Definition {
	return registry.byName[name]
}

func definitionOf(rec Record) *Definition {
	rt := reflect.TypeOf(rec)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	return registry.byType[rt]
}
