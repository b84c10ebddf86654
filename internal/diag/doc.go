// Package diag defines the diagnostic model shared by the analysis passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error. Analysis output is always Error.
//   - Code – compact numeric identifier with a stable string form (LEX001,
//     PAR001, SEM001 ... SEM007), see codes.go.
//   - Message – short human text.
//   - Primary – the single-line source.Span the finding points at.
//   - Source – constant tag identifying the producer to the editor.
//
// # Edits
//
// Fix describes an editor action (quick fix or refactor) as a WorkspaceEdit,
// a map from opaque document identifier to ordered TextEdits. Rename results
// use the same WorkspaceEdit type. Edits are data only; internal/fix applies
// them to text.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. BagReporter collects into a Bag, which
// keeps insertion order, enforces an optional limit and can sort findings by
// position.
package diag
