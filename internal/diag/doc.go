// Package diag defines the diagnostic model shared by the softcode scanner,
// the CLI and the language server.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (LNT1001).
//   - Message: short human oriented text.
//   - Range: line plus a half-open byte column interval on that line.
//
// Diagnostics are recomputed from scratch on every scan. Nothing in this
// package is persisted except through the result cache, which stores the
// records verbatim.
//
// # Emitting diagnostics
//
// The scanner writes through a Reporter. ReportError and ReportWarning build a
// record and Emit sends it once. BagReporter collects into a bounded Bag;
// SliceReporter keeps everything in emission order; FilterReporter drops rule
// families switched off by configuration; DedupReporter suppresses repeats.
//
// Rendering lives in internal/diagfmt, except for FormatShortDiagnostics which
// is kept here so golden tests do not depend on the renderer.
package diag
