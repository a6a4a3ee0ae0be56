// Package resultcache provides a local cache of terminal detection
// results keyed by request id.
//
// Once an analysis reaches a terminal status its result never changes, so
// the CLI can answer repeat `result` lookups without a network call. The
// cache is stored as a human-readable JSON file (default:
// ~/.cache/verilens/results.json) written atomically; a file lock guards
// against concurrent CLI invocations clobbering each other's writes.
//
// In-progress results are never cached: ANALYZING and PROCESSING statuses
// are refused by Store.
package resultcache
