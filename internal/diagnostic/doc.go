// Package diagnostic provides structured errors, warnings and suggestions
// reported while validating account schemas.
//
// Key capabilities:
//   - Coded diagnostics (e.g. SCH002 for an empty field list)
//   - Per-schema and per-field attribution
//   - "did you mean" suggestions for unresolved references
//   - Conversion of error diagnostics into a single Go error
package diagnostic
