// Package tables is the relational side of the mapping: table definitions,
// rows, the in-memory database and one typed record per table.
//
// Business logic works with typed records (WebSite, MimeMap, ...). The
// positional layout of a row exists only at the Encode/Decode boundary,
// where it is derived from struct tags of the form
//
//	`msi:"Column[,key][,ref=Table]"`
//
// A pointer field is a nullable column and nil is the unset marker. A
// ParentRef field spans the two columns named in its tag, for example
// `msi:"ParentType+ParentValue"`.
package tables
