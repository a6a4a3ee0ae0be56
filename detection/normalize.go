package detection

import "encoding/json"

// summaryScoreKey is the metadata field consulted when the top-level final
// score is missing.
const summaryScoreKey = "finalScore"

// normalizeScale maps a raw score onto [0,1]. The API emits both 0-100
// values (finalScore, normalizedPredictionNumber) and already-normalized
// sub-1 predictions, so division only happens when the value is above 1.0;
// dividing unconditionally would crush scores that arrive normalized.
func normalizeScale(value float64) float64 {
	if value > 1.0 {
		return value / 100.0
	}
	return value
}

// mapStatus rewrites the raw FAKE sentinel to the public terminal label.
// Every other status passes through unchanged.
func mapStatus(status string) string {
	if status == statusFake {
		return StatusManipulated
	}
	return status
}

// modelScoreExtractor inspects one raw score slot of a model report.
type modelScoreExtractor func(ModelReport) (float64, bool)

// modelScoreExtractors is the resolution order for per-model scores. The
// first slot that holds a number wins; a structured opt-out or all-absent
// slots leave the model unscored, which is a valid state, not an error.
var modelScoreExtractors = []modelScoreExtractor{
	func(m ModelReport) (float64, bool) { return m.PredictionNumber.Score() },
	func(m ModelReport) (float64, bool) { return deref(m.NormalizedPredictionNumber) },
	func(m ModelReport) (float64, bool) { return deref(m.FinalScore) },
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// modelScore resolves a model's score through the extractor chain.
func modelScore(m ModelReport) *float64 {
	for _, extract := range modelScoreExtractors {
		if value, ok := extract(m); ok {
			scaled := normalizeScale(value)
			return &scaled
		}
	}
	return nil
}

// overallScore resolves the report-level score: the top-level final score
// first, then the results-summary metadata, else absent.
func overallScore(report AnalysisReport) *float64 {
	if report.FinalScore != nil {
		scaled := normalizeScale(*report.FinalScore)
		return &scaled
	}
	if report.Summary != nil {
		if raw, ok := report.Summary.Metadata[summaryScoreKey]; ok {
			var value float64
			if err := json.Unmarshal(raw, &value); err == nil {
				scaled := normalizeScale(value)
				return &scaled
			}
		}
	}
	return nil
}

// Normalize converts a raw analysis report into its canonical result.
//
// Models with status NOT_APPLICABLE are removed entirely; the remaining
// models keep their upstream order. When the top-level status is empty but
// a summary status is present, the summary status stands in for it
// (observed drift in older API responses).
func Normalize(report AnalysisReport) Result {
	status := report.OverallStatus
	if status == "" && report.Summary != nil {
		status = report.Summary.Status
	}

	result := Result{
		RequestID: report.RequestID,
		Status:    mapStatus(status),
		Score:     overallScore(report),
		Models:    make([]ModelResult, 0, len(report.Models)),
	}

	for _, model := range report.Models {
		if model.Status == statusNotApplicable {
			continue
		}
		result.Models = append(result.Models, ModelResult{
			Name:   model.Name,
			Status: mapStatus(model.Status),
			Score:  modelScore(model),
		})
	}

	return result
}

// NormalizePage normalizes every report on a page. The pagination counters
// are copied through untouched.
func NormalizePage(page ReportPage) ResultPage {
	items := make([]Result, 0, len(page.Items))
	for _, report := range page.Items {
		items = append(items, Normalize(report))
	}
	return ResultPage{
		TotalItems:            page.TotalItems,
		TotalPages:            page.TotalPages,
		CurrentPage:           page.CurrentPage,
		CurrentPageItemsCount: page.CurrentPageItemsCount,
		Items:                 items,
	}
}

// InProgress reports whether the canonical status still carries the
// in-progress sentinel.
func InProgress(status string) bool {
	return status == StatusAnalyzing
}
