// Package detection defines the wire payloads returned by the analysis API
// and the pure normalization pass that reconciles them into canonical
// results.
//
// The upstream service reports scores in several places (a top-level final
// score, a nested results summary, and up to three per-model fields), mixes
// 0-100 and 0-1 scales, and encodes "model declined to score" as a JSON
// object where a number normally appears. Normalize resolves all of that
// into a single Result with every score in [0,1] or absent.
//
// Nothing in this package performs I/O; Normalize and NormalizePage are
// deterministic functions over their inputs.
package detection
