// Package score folds per-claim verdicts into one deck credibility score and
// the templated executive summary.
package score

import (
	"fmt"
	"strings"

	"github.com/sago-ai/sago/internal/model"
)

// statusFactor discounts confidence by verdict status before averaging
var statusFactor = map[model.VerdictStatus]float64{
	model.StatusVerified:          1.0,
	model.StatusPartiallyVerified: 0.6,
	model.StatusContradicted:      0.0,
	model.StatusUnverifiable:      0.0,
}

// Aggregator computes the overall score and summary text. Pure function of
// its inputs; no side effects.
type Aggregator struct {
	config model.ScoringConfig
}

// NewAggregator creates an aggregator with the given scoring policy
func NewAggregator(config model.ScoringConfig) *Aggregator {
	return &Aggregator{config: config}
}

// Score computes the overall credibility score: a weighted mean of per-claim
// confidence (weighted by category importance), penalized per contradicted
// claim, floored at 0.0. Unverifiable verdicts are excluded from the mean so
// a search outage does not read as deck dishonesty.
func (a *Aggregator) Score(claims []model.Claim, verdicts map[string]model.Verdict) float64 {
	weightSum := 0.0
	weighted := 0.0
	contradicted := 0

	for _, claim := range claims {
		verdict, ok := verdicts[claim.ID]
		if !ok {
			continue
		}
		if verdict.Status == model.StatusContradicted {
			contradicted++
		}
		if verdict.Status == model.StatusUnverifiable {
			continue
		}

		weight := a.config.Weight(claim.Category)
		weightSum += weight
		weighted += weight * verdict.Confidence * statusFactor[verdict.Status]
	}

	score := 0.0
	if weightSum > 0 {
		score = weighted / weightSum
	}

	score -= float64(contradicted) * a.config.ContradictionPenalty
	return clamp01(score)
}

// ExecutiveSummary produces the templated synthesis referencing the
// highest-impact contradicted and unverifiable claims.
func (a *Aggregator) ExecutiveSummary(companyName string, claims []model.Claim, verdicts map[string]model.Verdict, score float64) string {
	counts := countStatuses(claims, verdicts)

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis of %s's pitch deck covered %d claims with an overall verification score of %.0f%%. ",
		companyName, len(claims), score*100)
	fmt.Fprintf(&b, "%d verified, %d partially verified, %d contradicted, %d unverifiable.",
		counts[model.StatusVerified], counts[model.StatusPartiallyVerified],
		counts[model.StatusContradicted], counts[model.StatusUnverifiable])

	if worst := a.highestImpact(claims, verdicts, model.StatusContradicted); worst != nil {
		fmt.Fprintf(&b, " Most significant contradiction: %q - %s", worst.Text, verdicts[worst.ID].Summary)
	}
	if worst := a.highestImpact(claims, verdicts, model.StatusUnverifiable); worst != nil {
		fmt.Fprintf(&b, " Notably unverifiable: %q.", worst.Text)
	}

	return b.String()
}

// RiskAssessment digests red flags across all verdicts into a short bulleted
// assessment.
func (a *Aggregator) RiskAssessment(claims []model.Claim, verdicts map[string]model.Verdict) string {
	var flags []string
	for _, claim := range claims {
		if verdict, ok := verdicts[claim.ID]; ok {
			flags = append(flags, verdict.RedFlags...)
		}
	}

	if len(flags) == 0 {
		return "No significant red flags identified during automated verification. Standard due diligence still recommended."
	}

	if len(flags) > 7 {
		flags = flags[:7]
	}

	var b strings.Builder
	b.WriteString("Potential concerns identified:")
	for _, flag := range flags {
		b.WriteString("\n- ")
		b.WriteString(flag)
	}
	return b.String()
}

// highestImpact returns the highest-weighted claim with the given status.
func (a *Aggregator) highestImpact(claims []model.Claim, verdicts map[string]model.Verdict, status model.VerdictStatus) *model.Claim {
	var best *model.Claim
	bestWeight := -1.0

	for i, claim := range claims {
		verdict, ok := verdicts[claim.ID]
		if !ok || verdict.Status != status {
			continue
		}
		if w := a.config.Weight(claim.Category); w > bestWeight {
			bestWeight = w
			best = &claims[i]
		}
	}

	return best
}

func countStatuses(claims []model.Claim, verdicts map[string]model.Verdict) map[model.VerdictStatus]int {
	counts := make(map[model.VerdictStatus]int)
	for _, claim := range claims {
		if verdict, ok := verdicts[claim.ID]; ok {
			counts[verdict.Status]++
		}
	}
	return counts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
