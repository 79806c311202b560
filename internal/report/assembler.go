// Package report assembles the immutable run artifact and renders it to
// JSON and Markdown.
package report

import (
	"fmt"
	"time"

	"github.com/sago-ai/sago/internal/model"
)

// AssemblyError indicates an internal invariant violation: the claim and
// verdict sets do not form a bijection. Never expected in correct operation.
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return "report assembly failed: " + e.Reason
}

// Input carries everything the assembler composes into the final report
type Input struct {
	CompanyName      string
	DeckFilename     string
	OverallScore     float64
	ExecutiveSummary string
	RiskAssessment   string
	Claims           []model.Claim
	Verdicts         map[string]model.Verdict
	Questions        []model.Question
}

// Assemble validates the claim/verdict bijection and builds the report.
// Pure composition: no network or model calls.
func Assemble(in Input) (*model.Report, error) {
	if len(in.Verdicts) != len(in.Claims) {
		return nil, &AssemblyError{Reason: fmt.Sprintf("%d claims but %d verdicts", len(in.Claims), len(in.Verdicts))}
	}
	for _, claim := range in.Claims {
		verdict, ok := in.Verdicts[claim.ID]
		if !ok {
			return nil, &AssemblyError{Reason: "no verdict for claim " + claim.ID}
		}
		if verdict.ClaimID != claim.ID {
			return nil, &AssemblyError{Reason: fmt.Sprintf("verdict keyed %s references claim %s", claim.ID, verdict.ClaimID)}
		}
	}

	return &model.Report{
		CompanyName:      in.CompanyName,
		DeckFilename:     in.DeckFilename,
		AnalyzedAt:       time.Now().UTC(),
		OverallScore:     in.OverallScore,
		ExecutiveSummary: in.ExecutiveSummary,
		RiskAssessment:   in.RiskAssessment,
		Claims:           in.Claims,
		Verdicts:         in.Verdicts,
		Questions:        in.Questions,
	}, nil
}
