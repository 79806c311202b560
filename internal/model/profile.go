package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InvestorProfile describes the consuming investor. Loaded once per run and
// read-only thereafter; question personalization draws on its attributes.
type InvestorProfile struct {
	Name            string   `json:"name" yaml:"name"`
	FocusAreas      []string `json:"focus_areas" yaml:"focus_areas"`
	InvestmentStage string   `json:"investment_stage" yaml:"investment_stage"`
	Portfolio       []string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
}

// DefaultProfile returns the fallback profile used when none is configured.
func DefaultProfile() InvestorProfile {
	return InvestorProfile{
		Name:            "Investor",
		FocusAreas:      []string{"B2B SaaS", "FinTech", "AI/ML"},
		InvestmentStage: "Series A",
	}
}

// LoadProfile reads an investor profile from a YAML file.
func LoadProfile(path string) (InvestorProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InvestorProfile{}, fmt.Errorf("read profile: %w", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return InvestorProfile{}, fmt.Errorf("parse profile: %w", err)
	}

	if profile.Name == "" {
		profile.Name = "Investor"
	}

	return profile, nil
}
