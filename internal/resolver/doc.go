// Package resolver turns the registry's partial ordering hints into one total,
// deterministic load order. Explicit load_after/load_before hints become graph
// edges, every non-preload native module picks up a default edge after every
// content package it has no explicit constraint with, and the graph is
// topologically sorted with first-registration order breaking ties.
// Contradictory constraints fail with a ConflictError naming the entries
// involved; no partial order is ever emitted.
package resolver
