// Package diag defines the diagnostic model shared by the lexer, parser and
// semantic analyzer.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//     Ranges: 1xxx lexer, 2xxx parser, 3xxx semantic, 4xxx io/internal, 5xxx project.
//   - Message – the user-facing text, kept byte-for-byte stable because
//     editor tooling and golden tests match on it.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – optional secondary spans.
//
// Phases emit through a Reporter so they stay decoupled from storage. BagReporter
// collects into a Bag, which keeps detection order; Sort and Dedup are available
// for human-oriented output. Rendering lives in internal/diagfmt.
package diag
