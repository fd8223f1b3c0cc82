// Package diag defines the diagnostic model shared by both analysis passes.
//
// A Diagnostic carries a severity, a stable Code, a short message, the
// primary position (tree file + source line) and optional notes pointing at
// related declarations. Passes emit through a Reporter so that storage
// (Bag), filtering and rendering (internal/diagfmt) stay decoupled from the
// analysis itself.
//
// Every semantic check maps to exactly one Code. Codes are grouped by the
// error taxonomy of the analyzer: declaration errors, resolution errors,
// type errors and whole-program errors.
package diag
