// Package diag defines the diagnostic model shared by the tokenizers and the driver.
//
// # Purpose
//
// Conversion never fails on malformed input: unbalanced groups, unknown
// commands and broken exponent suffixes all degrade to a best-effort tree.
// Package diag records those degradations so callers can tell a clean
// conversion from a guessed one.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Primary – the source.Span the finding is about.
//   - Notes – optional secondary spans with extra context.
//   - Fixes – optional text edits that would remove the degradation.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. Diagnostics are values: New / NewError build
// one, WithNote / WithFix return extended copies. A Bag is a Reporter that
// keeps what it is given, up to a limit, and sorts it for output.
//
// Package diag does no formatting; rendering lives in internal/diagfmt.
package diag
