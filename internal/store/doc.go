// Package store persists a table set to disk and reads it back.
//
// Two formats are supported. The YAML form is a readable document with
// one entry per non-empty table:
//
//	version: "1"
//	tables:
//	  - name: IIsWebSite
//	    columns: [Web, Component_, Description, ...]
//	    rows:
//	      - [S1, C1, Main, ...]
//
// The SQLite form holds one SQL table per definition, with the key columns
// as primary key. Both formats keep row order within a table.
package store
