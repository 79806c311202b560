package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sago-ai/sago/internal/llm"
	"github.com/sago-ai/sago/internal/model"
)

// Reconciliation is the judge's structured answer for one claim: the only
// place semantic judgment occurs in the engine.
type Reconciliation struct {
	Status     model.VerdictStatus
	Confidence float64
	Summary    string
	CitedURLs  []string
	RedFlags   []string
}

// Judge reconciles a claim against retrieved evidence. Abstracted so tests
// can substitute a deterministic implementation for the model-backed one.
type Judge interface {
	Reconcile(ctx context.Context, claim model.Claim, evidence []model.Evidence) (*Reconciliation, error)
}

// LLMJudge implements Judge on top of a language model provider
type LLMJudge struct {
	provider     llm.Provider
	tolerancePct float64
}

// NewLLMJudge creates a judge using the given provider. tolerancePct is the
// numeric margin within which a figure still counts as corroborated.
func NewLLMJudge(provider llm.Provider, tolerancePct float64) *LLMJudge {
	if tolerancePct <= 0 {
		tolerancePct = 20
	}
	return &LLMJudge{provider: provider, tolerancePct: tolerancePct}
}

type rawReconciliation struct {
	Status     string   `json:"status"`
	Summary    string   `json:"summary"`
	Confidence float64  `json:"confidence"`
	CitedURLs  []string `json:"cited_urls"`
	RedFlags   []string `json:"red_flags"`
}

// Reconcile passes the claim and evidence snippets to the model with a
// structured prompt and parses the verdict fields from its reply.
func (j *LLMJudge) Reconcile(ctx context.Context, claim model.Claim, evidence []model.Evidence) (*Reconciliation, error) {
	resp, err := j.provider.Generate(ctx, llm.Request{
		System:      "You are a rigorous due-diligence analyst. You only conclude what the provided evidence supports.",
		Prompt:      j.buildPrompt(claim, evidence),
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var raw rawReconciliation
	if err := llm.DecodeJSON(resp.Text, &raw); err != nil {
		return nil, err
	}

	return &Reconciliation{
		Status:     model.ParseStatus(raw.Status),
		Confidence: clamp01(raw.Confidence),
		Summary:    strings.TrimSpace(raw.Summary),
		CitedURLs:  raw.CitedURLs,
		RedFlags:   raw.RedFlags,
	}, nil
}

func (j *LLMJudge) buildPrompt(claim model.Claim, evidence []model.Evidence) string {
	var evidenceText strings.Builder
	for i, ev := range evidence {
		fmt.Fprintf(&evidenceText, "[%d] Source: %s\nURL: %s\nContent: %s\n\n", i+1, ev.SourceTitle, ev.URL, ev.Snippet)
	}

	return fmt.Sprintf(`Analyze the following pitch deck claim against the evidence found.

CLAIM: %s
CLAIM CATEGORY: %s

EVIDENCE FOUND:
%s
Classification policy:
- "verified": at least one evidence item directly corroborates the claim's central figure or fact. Numeric figures within +/-%.0f%% still count unless evidence states an exact contrary figure.
- "contradicted": evidence states a materially different figure or fact.
- "partially_verified": evidence corroborates part of the claim but not its full scale or scope.
- "unverifiable": no evidence bears on the claim.

Respond with a JSON object:
{
  "status": "verified" | "contradicted" | "partially_verified" | "unverifiable",
  "summary": "2-3 sentence rationale",
  "confidence": 0.0 to 1.0,
  "cited_urls": ["only URLs from the evidence above that informed the verdict"],
  "red_flags": ["short phrases naming concerns, empty if none"]
}

Be rigorous - only mark "verified" with strong corroborating evidence. Return ONLY the JSON object.`,
		claim.Text, claim.Category, evidenceText.String(), j.tolerancePct)
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
