// Package question synthesizes ranked, personalized founder questions from
// verification results and the investor profile.
package question

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sago-ai/sago/internal/model"
)

// Synthesizer generates founder questions. Pure function of verdicts and the
// investor profile; the profile is passed in explicitly so the same run can
// be replayed against multiple profiles.
type Synthesizer struct {
	config model.QuestionConfig
}

// NewSynthesizer creates a question synthesizer
func NewSynthesizer(config model.QuestionConfig) *Synthesizer {
	return &Synthesizer{config: config}
}

// Synthesize emits one question per contradicted or partially verified claim,
// plus exploratory questions for unverifiable claims inside the investor's
// focus areas. Output is sorted by priority (high first) with ties broken by
// original claim order.
func (s *Synthesizer) Synthesize(claims []model.Claim, verdicts map[string]model.Verdict, profile model.InvestorProfile) []model.Question {
	questions := []model.Question{}

	for _, claim := range claims {
		verdict, ok := verdicts[claim.ID]
		if !ok {
			continue
		}

		var q *model.Question
		switch verdict.Status {
		case model.StatusContradicted:
			q = s.contradictedQuestion(claim, verdict, profile)
		case model.StatusPartiallyVerified:
			q = s.partialQuestion(claim, verdict, profile)
		case model.StatusUnverifiable:
			if s.inFocus(claim, profile) {
				q = s.exploratoryQuestion(claim, profile)
			}
		}

		if q != nil {
			questions = append(questions, *q)
		}
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Priority.Rank() < questions[j].Priority.Rank()
	})

	if s.config.MaxQuestions > 0 && len(questions) > s.config.MaxQuestions {
		questions = questions[:s.config.MaxQuestions]
	}
	return questions
}

func (s *Synthesizer) contradictedQuestion(claim model.Claim, verdict model.Verdict, profile model.InvestorProfile) *model.Question {
	priority := model.PriorityMedium
	if claim.Category.Material() || s.inFocus(claim, profile) {
		priority = model.PriorityHigh
	}

	text := fmt.Sprintf("Your deck states %q, but third-party sources suggest otherwise. Can you walk through the methodology and sources behind that figure?", claim.Text)
	if claim.Category == model.CategoryMarketSize {
		text = fmt.Sprintf("Your deck states %q, but third-party estimates differ materially. How did you size the TAM, and what methodology and sources support that number?", claim.Text)
	}

	note, generic := s.personalize(claim, profile)
	return &model.Question{
		Text:                text,
		Priority:            priority,
		Rationale:           "Contradicted by external evidence: " + verdict.Summary,
		PersonalizationNote: note,
		RelatedClaimID:      claim.ID,
		Generic:             generic,
	}
}

func (s *Synthesizer) partialQuestion(claim model.Claim, verdict model.Verdict, profile model.InvestorProfile) *model.Question {
	note, generic := s.personalize(claim, profile)
	return &model.Question{
		Text:                fmt.Sprintf("External sources confirm parts of %q but not its full scope. What substantiates the rest?", claim.Text),
		Priority:            model.PriorityMedium,
		Rationale:           "Only partially corroborated: " + verdict.Summary,
		PersonalizationNote: note,
		RelatedClaimID:      claim.ID,
		Generic:             generic,
	}
}

func (s *Synthesizer) exploratoryQuestion(claim model.Claim, profile model.InvestorProfile) *model.Question {
	note, generic := s.personalize(claim, profile)
	return &model.Question{
		Text:                fmt.Sprintf("We could not independently verify %q. What data or references can you share to support it?", claim.Text),
		Priority:            model.PriorityLow,
		Rationale:           "No external evidence found; worth probing given its relevance to the investor's focus.",
		PersonalizationNote: note,
		RelatedClaimID:      claim.ID,
		Generic:             generic,
	}
}

// personalize returns a note referencing a concrete profile attribute, or a
// generic marker when no link exists.
func (s *Synthesizer) personalize(claim model.Claim, profile model.InvestorProfile) (string, bool) {
	if area := s.focusMatch(claim, profile); area != "" {
		return fmt.Sprintf("Directly relevant to %s's focus on %s.", profile.Name, area), false
	}

	for _, company := range profile.Portfolio {
		if company != "" && strings.Contains(strings.ToLower(claim.Text), strings.ToLower(company)) {
			return fmt.Sprintf("Mentions %s, part of %s's portfolio.", company, profile.Name), false
		}
	}

	if profile.InvestmentStage != "" &&
		(claim.Category == model.CategoryRevenue || claim.Category == model.CategoryFundingHistory) {
		return fmt.Sprintf("Financial diligence typical for a %s investor.", profile.InvestmentStage), false
	}

	return "", true
}

// focusMatch returns the first focus area mentioned by the claim text or
// matching its category label.
func (s *Synthesizer) focusMatch(claim model.Claim, profile model.InvestorProfile) string {
	text := strings.ToLower(claim.Text)
	category := strings.ToLower(claim.Category.Title())

	for _, area := range profile.FocusAreas {
		lower := strings.ToLower(strings.TrimSpace(area))
		if lower == "" {
			continue
		}
		if strings.Contains(text, lower) || strings.Contains(category, lower) || strings.Contains(lower, category) {
			return area
		}
	}
	return ""
}

func (s *Synthesizer) inFocus(claim model.Claim, profile model.InvestorProfile) bool {
	return s.focusMatch(claim, profile) != ""
}
