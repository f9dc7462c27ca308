// Package schema declares the XML vocabulary and validates elements against it.
//
// The grammar lives in iis.yaml, embedded at build time, so adding an
// attribute is a data change rather than a code change.
//
// # Schema Overview
//
//	version: "1"
//	root: Fragment
//	elements:
//	  WebError:
//	    table: IIsWebError
//	    attributes:
//	      - {name: ErrorCode, type: integer, required: true, min: 400, max: 599}
//	      - {name: File, type: string}
//	      - {name: URL, type: string}
//	    exclusive:
//	      - [File, URL]
//	    children: []
//
// # Validation
//
// Validate never fails outright. Every violation (missing required
// attribute, illegal value, conflicting pair, undeclared attribute, stray
// inner text) is recorded as a diagnostic and the offending attribute is
// treated as unset, so one pass reports every problem in a document.
package schema
