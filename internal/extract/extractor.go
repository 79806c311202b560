// Package extract turns raw deck text into a deduplicated, ordered list of
// typed claims via the language model service.
package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/sago-ai/sago/internal/llm"
	"github.com/sago-ai/sago/internal/model"
)

// ExtractionError is fatal: without claims the run produces no value.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("claim extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Jaccard similarity above this counts as a duplicate outright; the band
// below it down to semanticFloor is referred to the model.
const (
	duplicateThreshold = 0.8
	semanticFloor      = 0.5
	maxPromptChars     = 10000
	maxClaimsPerDeck   = 12
)

// ClaimExtractor extracts verifiable claims from page-ordered deck text
type ClaimExtractor struct {
	provider llm.Provider
	log      *logrus.Entry
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider, log *logrus.Logger) *ClaimExtractor {
	return &ClaimExtractor{
		provider: provider,
		log:      log.WithField("component", "extract"),
	}
}

type rawClaim struct {
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Page       int     `json:"page"`
	Context    string  `json:"context"`
	Confidence float64 `json:"confidence"`
}

// Extract produces a deduplicated ordered sequence of claims from the deck
// text. Empty input (image-only deck) yields an empty sequence, not an
// error. Extraction is stateless and idempotent for identical input.
func (e *ClaimExtractor) Extract(ctx context.Context, pages []string) ([]model.Claim, error) {
	text := buildPageText(pages)
	if text == "" {
		return []model.Claim{}, nil
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		Prompt:      buildExtractionPrompt(text),
		Temperature: 0.2,
	})
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	var raw []rawClaim
	if err := llm.DecodeJSON(resp.Text, &raw); err != nil {
		return nil, &ExtractionError{Err: err}
	}

	claims := make([]model.Claim, 0, len(raw))
	for _, rc := range raw {
		if strings.TrimSpace(rc.Text) == "" {
			continue
		}
		page := rc.Page
		if page <= 0 {
			page = 1
		}
		claims = append(claims, model.Claim{
			ID:         fmt.Sprintf("claim_%04d", len(claims)+1),
			Text:       strings.TrimSpace(rc.Text),
			Category:   model.ParseCategory(rc.Category),
			SourcePage: page,
			Context:    rc.Context,
			Confidence: clamp01(rc.Confidence),
		})
	}

	deduped := e.dedupe(ctx, claims)
	e.log.WithFields(logrus.Fields{"raw": len(claims), "unique": len(deduped)}).Debug("claims extracted")

	return deduped, nil
}

// dedupe collapses restatements of the same fact. Exact normalized match and
// high word overlap are decided locally; ambiguous pairs fall back to the
// model. A model failure during the fallback keeps both claims.
func (e *ClaimExtractor) dedupe(ctx context.Context, claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var kept []model.Claim

	for _, claim := range claims {
		normalized := normalize(claim.Text)
		if seen[normalized] {
			continue
		}

		duplicate := false
		for _, prior := range kept {
			sim := jaccard(normalized, normalize(prior.Text))
			if sim >= duplicateThreshold {
				duplicate = true
				break
			}
			if sim >= semanticFloor && e.sameFact(ctx, claim.Text, prior.Text) {
				duplicate = true
				break
			}
		}

		if !duplicate {
			seen[normalized] = true
			kept = append(kept, claim)
		}
	}

	if kept == nil {
		kept = []model.Claim{}
	}
	return kept
}

// sameFact asks the model whether two statements assert the same fact.
func (e *ClaimExtractor) sameFact(ctx context.Context, a, b string) bool {
	resp, err := e.provider.Generate(ctx, llm.Request{
		Prompt: fmt.Sprintf(
			"Do these two statements assert the same underlying fact? Answer with exactly one word, yes or no.\n\nA: %s\nB: %s", a, b),
		MaxTokens:   5,
		Temperature: 0,
	})
	if err != nil {
		e.log.WithError(err).Debug("semantic dedupe unavailable, keeping both claims")
		return false
	}

	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(resp.Text)), "yes")
}

// Prioritize orders claims by category importance, then extractor
// confidence. A positive cap limits how many are returned.
func (e *ClaimExtractor) Prioritize(claims []model.Claim, limit int) []model.Claim {
	ordered := make([]model.Claim, len(claims))
	copy(ordered, claims)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Category.VerificationPriority(), ordered[j].Category.VerificationPriority()
		if pi != pj {
			return pi < pj
		}
		return ordered[i].Confidence > ordered[j].Confidence
	})

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

func buildPageText(pages []string) string {
	var parts []string
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== PAGE %d ===\n%s", i+1, page))
	}
	return strings.Join(parts, "\n\n")
}

func buildExtractionPrompt(text string) string {
	text = truncate(text, maxPromptChars)

	return fmt.Sprintf(`Extract verifiable factual claims from this pitch deck. Focus on numbers, stats, team backgrounds, customers, partnerships, and funding.

PITCH DECK:
%s

Return a JSON array of claims. Keep each text SHORT (under 100 chars) and verbatim where possible. Include the page number from the === PAGE N === markers. Example:
[{"text":"700M snaps viewed daily","category":"growth_metrics","page":3,"confidence":0.9}]

Categories: market_size, revenue, growth_metrics, team_background, customer_claims, partnerships, funding_history, other

Return ONLY the JSON array, no other text. Max %d claims.`, text, maxClaimsPerDeck)
}

// truncate cuts text at a byte limit without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func jaccard(a, b string) float64 {
	wordsA := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		wordsA[w] = true
	}
	wordsB := make(map[string]bool)
	for _, w := range strings.Fields(b) {
		wordsB[w] = true
	}

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection

	return float64(intersection) / float64(union)
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
