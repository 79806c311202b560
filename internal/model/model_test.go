package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want ClaimCategory
	}{
		{"market_size", CategoryMarketSize},
		{"revenue", CategoryRevenue},
		{"funding_history", CategoryFundingHistory},
		{"other", CategoryOther},
		{"vibes", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want VerdictStatus
	}{
		{"verified", StatusVerified},
		{"contradicted", StatusContradicted},
		{"partially_verified", StatusPartiallyVerified},
		{"unverifiable", StatusUnverifiable},
		{"unable_to_verify", StatusUnverifiable},
		{"", StatusUnverifiable},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnverifiableInvariant(t *testing.T) {
	v := Unverifiable("claim_0001", "no sources", "search down")

	if v.Status != StatusUnverifiable {
		t.Errorf("expected unverifiable status, got %s", v.Status)
	}
	if v.Confidence != 0 {
		t.Errorf("expected zero confidence, got %f", v.Confidence)
	}
	if v.CitedEvidence == nil || len(v.CitedEvidence) != 0 {
		t.Errorf("expected empty non-nil cited evidence, got %v", v.CitedEvidence)
	}
	if len(v.RedFlags) != 1 || v.RedFlags[0] != "search down" {
		t.Errorf("expected red flag preserved, got %v", v.RedFlags)
	}
}

func TestVerificationPriority(t *testing.T) {
	if CategoryRevenue.VerificationPriority() >= CategoryOther.VerificationPriority() {
		t.Error("revenue must rank before other")
	}
	if CategoryGrowthMetrics.VerificationPriority() >= CategoryMarketSize.VerificationPriority() {
		t.Error("growth metrics must rank before market size")
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() >= PriorityMedium.Rank() || PriorityMedium.Rank() >= PriorityLow.Rank() {
		t.Error("rank must order high < medium < low")
	}
	if QuestionPriority("bogus").Rank() != PriorityLow.Rank() {
		t.Error("unknown priority should sort last")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestConfigValidate_Rejects(t *testing.T) {
	mutations := []func(*Config){
		func(c *Config) { c.LLM.Provider = "" },
		func(c *Config) { c.Verification.Workers = 0 },
		func(c *Config) { c.Verification.MaxQueriesPerClaim = 5 },
		func(c *Config) { c.Search.MaxResults = 0 },
		func(c *Config) { c.Scoring.ContradictionPenalty = 1.5 },
		func(c *Config) { c.Scoring.CategoryWeights[CategoryRevenue] = -1 },
	}

	for i, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("mutation %d: expected validation error", i)
		}
	}
}

func TestScoringConfigWeight(t *testing.T) {
	cfg := ScoringConfig{CategoryWeights: map[ClaimCategory]float64{CategoryRevenue: 1.5}}

	if got := cfg.Weight(CategoryRevenue); got != 1.5 {
		t.Errorf("expected configured weight 1.5, got %f", got)
	}
	if got := cfg.Weight(CategoryPartnerships); got != 1.0 {
		t.Errorf("expected default weight 1.0, got %f", got)
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `name: Jordan
focus_areas:
  - FinTech
  - Climate
investment_stage: Seed
portfolio:
  - Stripe
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if profile.Name != "Jordan" || profile.InvestmentStage != "Seed" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if len(profile.FocusAreas) != 2 || profile.FocusAreas[1] != "Climate" {
		t.Errorf("unexpected focus areas: %v", profile.FocusAreas)
	}
}

func TestLoadProfile_Missing(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing profile file")
	}
}

func TestCountByStatus(t *testing.T) {
	r := &Report{Verdicts: map[string]Verdict{
		"c1": {Status: StatusVerified},
		"c2": {Status: StatusVerified},
		"c3": {Status: StatusContradicted},
	}}

	counts := r.CountByStatus()
	if counts[StatusVerified] != 2 || counts[StatusContradicted] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
