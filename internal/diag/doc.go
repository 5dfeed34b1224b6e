// Package diag defines the diagnostic model shared by the lexer, the
// parser, and the package driver.
//
// Diagnostic is the central record: a Severity, a stable numeric Code,
// a human message, a primary source.Span, and optional Notes pointing
// at related spans. Producers emit through a Reporter so that storage
// and formatting stay decoupled; BagReporter aggregates into a Bag,
// which sorts and deduplicates for deterministic output.
//
// Rendering lives in internal/diagfmt; this package performs no IO.
package diag
