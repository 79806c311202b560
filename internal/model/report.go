package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Report is the final immutable artifact of one verification run.
// It is the sole unit handed to delivery collaborators.
type Report struct {
	CompanyName      string             `json:"company_name"`
	DeckFilename     string             `json:"deck_filename"`
	AnalyzedAt       time.Time          `json:"analyzed_at"`
	OverallScore     float64            `json:"overall_score"` // 0.0-1.0
	ExecutiveSummary string             `json:"executive_summary"`
	RiskAssessment   string             `json:"risk_assessment"`
	Claims           []Claim            `json:"claims"`    // Extraction order
	Verdicts         map[string]Verdict `json:"verdicts"`  // claim_id -> Verdict, one entry per claim
	Questions        []Question         `json:"questions"` // Highest priority first
}

// MarshalIndent serializes the report as a self-describing JSON document.
func (r *Report) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// UnmarshalReport restores a report from its serialized form. Round-trips
// losslessly with MarshalIndent.
func UnmarshalReport(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// VerdictFor returns the verdict for a claim id, if present.
func (r *Report) VerdictFor(claimID string) (Verdict, bool) {
	v, ok := r.Verdicts[claimID]
	return v, ok
}

// CountByStatus tallies verdicts per status.
func (r *Report) CountByStatus() map[VerdictStatus]int {
	counts := make(map[VerdictStatus]int)
	for _, v := range r.Verdicts {
		counts[v.Status]++
	}
	return counts
}
