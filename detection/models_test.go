package detection

import (
	"encoding/json"
	"testing"
)

func TestPredictionUnmarshal(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantScore    float64
		wantHasScore bool
		wantDeclined bool
		wantErr      bool
	}{
		{name: "number", input: `0.27`, wantScore: 0.27, wantHasScore: true},
		{name: "integer number", input: `97`, wantScore: 97, wantHasScore: true},
		{name: "zero", input: `0`, wantScore: 0, wantHasScore: true},
		{name: "null", input: `null`},
		{
			name:         "structured opt-out",
			input:        `{"reason":"unsupported media","decision":"NOT_EVALUATED"}`,
			wantDeclined: true,
		},
		{name: "empty object", input: `{}`},
		{name: "string rejected", input: `"0.5"`, wantErr: true},
		{name: "array rejected", input: `[1,2]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p Prediction
			err := json.Unmarshal([]byte(tc.input), &p)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %q: %v", tc.input, err)
			}

			score, ok := p.Score()
			if ok != tc.wantHasScore {
				t.Fatalf("Score() ok = %v, want %v", ok, tc.wantHasScore)
			}
			if ok && score != tc.wantScore {
				t.Fatalf("Score() = %v, want %v", score, tc.wantScore)
			}
			if p.Declined() != tc.wantDeclined {
				t.Fatalf("Declined() = %v, want %v", p.Declined(), tc.wantDeclined)
			}
		})
	}
}

func TestPredictionUnmarshalResetsPriorState(t *testing.T) {
	p := Prediction{}
	if err := json.Unmarshal([]byte(`{"reason":"x","decision":"y"}`), &p); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`0.5`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Declined() {
		t.Fatal("stale opt-out survived a numeric re-decode")
	}
	if score, ok := p.Score(); !ok || score != 0.5 {
		t.Fatalf("Score() = %v, %v; want 0.5, true", score, ok)
	}
}

func TestAnalysisReportDecoding(t *testing.T) {
	raw := `{
		"requestId": "req-1",
		"overallStatus": "FAKE",
		"finalScore": 97.8,
		"models": [
			{"name": "model-a", "status": "FAKE", "predictionNumber": 0.978},
			{"name": "model-b", "status": "NOT_APPLICABLE", "predictionNumber": {"reason": "audio only", "decision": "SKIPPED"}}
		],
		"resultsSummary": {
			"status": "FAKE",
			"metadata": {"finalScore": 97.8}
		}
	}`

	var report AnalysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if report.RequestID != "req-1" {
		t.Errorf("RequestID = %q", report.RequestID)
	}
	if report.FinalScore == nil || *report.FinalScore != 97.8 {
		t.Errorf("FinalScore = %v", report.FinalScore)
	}
	if len(report.Models) != 2 {
		t.Fatalf("len(Models) = %d", len(report.Models))
	}
	if score, ok := report.Models[0].PredictionNumber.Score(); !ok || score != 0.978 {
		t.Errorf("model-a prediction = %v, %v", score, ok)
	}
	if !report.Models[1].PredictionNumber.Declined() {
		t.Error("model-b opt-out not decoded")
	}
	if report.Summary == nil || report.Summary.Status != "FAKE" {
		t.Errorf("Summary = %+v", report.Summary)
	}
}
