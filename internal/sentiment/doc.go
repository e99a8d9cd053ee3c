// Package sentiment implements a lexicon-based sentiment scorer with
// negation and intensifier handling.
//
// Scoring is deterministic and side-effect free: the built-in lexicons are
// immutable process-wide tables, each request merges them with its own custom
// additions into a fresh copy, and texts are scored independently. The
// package is safe for concurrent use without synchronization.
package sentiment
