// Package diagnostic provides the structured diagnostics channel shared by
// the compiler and decompiler.
//
// Diagnostics never abort a pass. Each carries a severity, a source
// location, a stable code and the element/attribute it concerns, so a
// single run can report every problem in a document. The consumer decides
// what is fatal; by default a pass succeeds only when no error was recorded.
//
// Key capabilities:
//   - Schema violations (missing, illegal and conflicting attributes)
//   - Referential-integrity failures discovered after all rows exist
//   - Reconstruction warnings (unknown bits, unknown values, dangling parents)
//   - Suppression and warnings-as-errors policy
package diagnostic
