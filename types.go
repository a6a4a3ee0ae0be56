package verilens

import "verilens/detection"

// Aliases so callers of the client do not need a second import for the
// canonical result types.

// Result is the canonical detection outcome produced by normalization.
type Result = detection.Result

// ModelResult is one model's canonical outcome within a Result.
type ModelResult = detection.ModelResult

// ResultPage is one canonical page of historical results.
type ResultPage = detection.ResultPage
