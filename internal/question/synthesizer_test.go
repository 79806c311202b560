package question

import (
	"strings"
	"testing"

	"github.com/sago-ai/sago/internal/model"
)

func testProfile() model.InvestorProfile {
	return model.InvestorProfile{
		Name:            "Jordan",
		FocusAreas:      []string{"FinTech", "Market Size"},
		InvestmentStage: "Series A",
		Portfolio:       []string{"Stripe"},
	}
}

func synth() *Synthesizer {
	return NewSynthesizer(model.QuestionConfig{MaxQuestions: 10})
}

func TestSynthesize_ContradictedIsHighForMaterialClaim(t *testing.T) {
	claims := []model.Claim{
		{ID: "c1", Text: "$50B TAM by 2027", Category: model.CategoryMarketSize},
	}
	verdicts := map[string]model.Verdict{
		"c1": {ClaimID: "c1", Status: model.StatusContradicted, Summary: "Research says $20B."},
	}

	questions := synth().Synthesize(claims, verdicts, testProfile())

	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Priority != model.PriorityHigh {
		t.Errorf("contradicted market size claim should be high priority, got %s", q.Priority)
	}
	if !strings.Contains(q.Text, "TAM") || !strings.Contains(q.Text, "methodology") {
		t.Errorf("market size question should probe TAM methodology, got %q", q.Text)
	}
	if q.RelatedClaimID != "c1" {
		t.Errorf("expected question linked to c1, got %s", q.RelatedClaimID)
	}
}

func TestSynthesize_PartialIsMedium(t *testing.T) {
	claims := []model.Claim{
		{ID: "c1", Text: "200% YoY growth", Category: model.CategoryGrowthMetrics},
	}
	verdicts := map[string]model.Verdict{
		"c1": {ClaimID: "c1", Status: model.StatusPartiallyVerified, Summary: "Growth confirmed, rate not."},
	}

	questions := synth().Synthesize(claims, verdicts, testProfile())

	if len(questions) != 1 || questions[0].Priority != model.PriorityMedium {
		t.Fatalf("expected one medium question, got %v", questions)
	}
}

func TestSynthesize_UnverifiableOnlyInFocus(t *testing.T) {
	claims := []model.Claim{
		{ID: "c1", Text: "our fintech platform serves 40 banks", Category: model.CategoryCustomerClaims},
		{ID: "c2", Text: "patented retrieval algorithm", Category: model.CategoryOther},
	}
	verdicts := map[string]model.Verdict{
		"c1": model.Unverifiable("c1", "no sources"),
		"c2": model.Unverifiable("c2", "no sources"),
	}

	questions := synth().Synthesize(claims, verdicts, testProfile())

	// c1 mentions fintech (a focus area); c2 has no link to the profile
	if len(questions) != 1 {
		t.Fatalf("expected exactly 1 exploratory question, got %d", len(questions))
	}
	if questions[0].RelatedClaimID != "c1" {
		t.Errorf("expected the in-focus claim, got %s", questions[0].RelatedClaimID)
	}
	if questions[0].Priority != model.PriorityLow {
		t.Errorf("exploratory questions should be low priority, got %s", questions[0].Priority)
	}
}

func TestSynthesize_VerifiedYieldsNoQuestion(t *testing.T) {
	claims := []model.Claim{{ID: "c1", Text: "$5M ARR", Category: model.CategoryRevenue}}
	verdicts := map[string]model.Verdict{
		"c1": {ClaimID: "c1", Status: model.StatusVerified, Confidence: 0.9},
	}

	if questions := synth().Synthesize(claims, verdicts, testProfile()); len(questions) != 0 {
		t.Errorf("verified claims should produce no questions, got %v", questions)
	}
}

func TestSynthesize_OrderingAndStability(t *testing.T) {
	claims := []model.Claim{
		{ID: "c1", Text: "partnership with a major retailer", Category: model.CategoryPartnerships},
		{ID: "c2", Text: "$50B TAM", Category: model.CategoryMarketSize},
		{ID: "c3", Text: "team of ex-FAANG engineers", Category: model.CategoryTeamBackground},
		{ID: "c4", Text: "$12M revenue", Category: model.CategoryRevenue},
	}
	verdicts := map[string]model.Verdict{
		"c1": {ClaimID: "c1", Status: model.StatusPartiallyVerified, Summary: "partially"},
		"c2": {ClaimID: "c2", Status: model.StatusContradicted, Summary: "contradicted"},
		"c3": {ClaimID: "c3", Status: model.StatusPartiallyVerified, Summary: "partially"},
		"c4": {ClaimID: "c4", Status: model.StatusContradicted, Summary: "contradicted"},
	}

	questions := synth().Synthesize(claims, verdicts, testProfile())

	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(questions))
	}

	// High first; within a priority band, original claim order holds
	want := []string{"c2", "c4", "c1", "c3"}
	for i, id := range want {
		if questions[i].RelatedClaimID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, questions[i].RelatedClaimID)
		}
	}
}

func TestSynthesize_MaxQuestionsCap(t *testing.T) {
	s := NewSynthesizer(model.QuestionConfig{MaxQuestions: 2})

	claims := []model.Claim{
		{ID: "c1", Text: "a", Category: model.CategoryRevenue},
		{ID: "c2", Text: "b", Category: model.CategoryRevenue},
		{ID: "c3", Text: "c", Category: model.CategoryRevenue},
	}
	verdicts := map[string]model.Verdict{
		"c1": {ClaimID: "c1", Status: model.StatusContradicted, Summary: "x"},
		"c2": {ClaimID: "c2", Status: model.StatusContradicted, Summary: "x"},
		"c3": {ClaimID: "c3", Status: model.StatusContradicted, Summary: "x"},
	}

	if questions := s.Synthesize(claims, verdicts, testProfile()); len(questions) != 2 {
		t.Errorf("expected cap at 2 questions, got %d", len(questions))
	}
}

func TestPersonalization(t *testing.T) {
	claims := []model.Claim{
		{ID: "c1", Text: "we process payments like Stripe", Category: model.CategoryOther},
		{ID: "c2", Text: "$3M in funding to date", Category: model.CategoryFundingHistory},
		{ID: "c3", Text: "offices in four countries", Category: model.CategoryOther},
	}
	verdicts := map[string]model.Verdict{
		"c1": {ClaimID: "c1", Status: model.StatusContradicted, Summary: "x"},
		"c2": {ClaimID: "c2", Status: model.StatusContradicted, Summary: "x"},
		"c3": {ClaimID: "c3", Status: model.StatusContradicted, Summary: "x"},
	}

	questions := synth().Synthesize(claims, verdicts, testProfile())
	byClaim := make(map[string]model.Question)
	for _, q := range questions {
		byClaim[q.RelatedClaimID] = q
	}

	// Portfolio mention
	if q := byClaim["c1"]; q.Generic || !strings.Contains(q.PersonalizationNote, "Stripe") {
		t.Errorf("expected portfolio-based note, got %+v", q)
	}

	// Stage-based note for funding claims
	if q := byClaim["c2"]; q.Generic || !strings.Contains(q.PersonalizationNote, "Series A") {
		t.Errorf("expected stage-based note, got %+v", q)
	}

	// No profile link at all
	if q := byClaim["c3"]; !q.Generic || q.PersonalizationNote != "" {
		t.Errorf("expected generic marker, got %+v", q)
	}
}
