// Package diag carries the diagnostics pipeline shared by the lexer,
// parser, linter, and evaluator. Phases never abort on the first
// problem; they report into a Bag and continue with best-effort
// recovery, so one pass finds everything findable.
package diag
