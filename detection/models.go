package detection

import (
	"encoding/json"
	"fmt"
)

// Status values used on the wire and in canonical results.
const (
	// StatusAnalyzing is the upstream in-progress sentinel; polling
	// continues while a report carries it.
	StatusAnalyzing = "ANALYZING"

	// StatusManipulated is the public terminal label. The wire value
	// "FAKE" is rewritten to it everywhere it appears.
	StatusManipulated = "MANIPULATED"

	// StatusProcessing marks batch placeholders returned before any
	// result has been fetched.
	StatusProcessing = "PROCESSING"

	// statusFake is the raw wire spelling that is never exposed.
	statusFake = "FAKE"

	// statusNotApplicable marks models that opted out entirely; such
	// entries are dropped from canonical output.
	statusNotApplicable = "NOT_APPLICABLE"
)

// Prediction is a per-model score slot that the API encodes either as a
// plain number or as a structured opt-out ({reason, decision}). Absent and
// null both decode to the zero Prediction.
type Prediction struct {
	value    float64
	hasNum   bool
	Reason   string
	Decision string
}

// Score returns the numeric prediction when one was reported.
func (p Prediction) Score() (float64, bool) {
	return p.value, p.hasNum
}

// Declined reports whether the model returned a structured opt-out instead
// of a number.
func (p Prediction) Declined() bool {
	return !p.hasNum && p.Decision != ""
}

// UnmarshalJSON accepts a JSON number, the opt-out object, or null.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	*p = Prediction{}
	if string(data) == "null" {
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		p.value = num
		p.hasNum = true
		return nil
	}
	var obj struct {
		Reason   string `json:"reason"`
		Decision string `json:"decision"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode prediction: %w", err)
	}
	p.Reason = obj.Reason
	p.Decision = obj.Decision
	return nil
}

// ModelReport is the raw per-model entry of an analysis report.
type ModelReport struct {
	Name                       string     `json:"name"`
	Status                     string     `json:"status"`
	PredictionNumber           Prediction `json:"predictionNumber"`
	NormalizedPredictionNumber *float64   `json:"normalizedPredictionNumber"`
	FinalScore                 *float64   `json:"finalScore"`
}

// Summary is the nested results summary an analysis report may carry. Its
// metadata is schemaless; only the finalScore key is consulted.
type Summary struct {
	Status   string                     `json:"status"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

// AnalysisReport is one analysis job exactly as the API returns it. A fresh
// report is fetched on every poll attempt; reports are never mutated.
type AnalysisReport struct {
	RequestID     string        `json:"requestId"`
	OverallStatus string        `json:"overallStatus"`
	FinalScore    *float64      `json:"finalScore"`
	Models        []ModelReport `json:"models"`
	Summary       *Summary      `json:"resultsSummary"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// ReportPage is one page of historical analysis reports.
type ReportPage struct {
	TotalItems            int              `json:"totalItems"`
	TotalPages            int              `json:"totalPages"`
	CurrentPage           int              `json:"currentPage"`
	CurrentPageItemsCount int              `json:"currentPageItemsCount"`
	Items                 []AnalysisReport `json:"mediaList"`
}

// ModelResult is the canonical per-model outcome. Score is nil when the
// model declined to evaluate the media.
type ModelResult struct {
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Score  *float64 `json:"score,omitempty"`
}

// Result is the canonical, caller-facing detection outcome. Scores are in
// [0,1] or absent, the status vocabulary is public, and models that opted
// out are gone.
type Result struct {
	RequestID string        `json:"requestId"`
	Status    string        `json:"status"`
	Score     *float64      `json:"score,omitempty"`
	Models    []ModelResult `json:"models"`
}

// ResultPage is the canonical form of one page of results. The pagination
// counters are passed through from the API unmodified.
type ResultPage struct {
	TotalItems            int      `json:"totalItems"`
	TotalPages            int      `json:"totalPages"`
	CurrentPage           int      `json:"currentPage"`
	CurrentPageItemsCount int      `json:"currentPageItemsCount"`
	Items                 []Result `json:"items"`
}
