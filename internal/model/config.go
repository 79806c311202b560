package model

import (
	"fmt"
	"time"
)

// Config is the explicit, validated configuration passed into the pipeline.
// Components receive the sections they need; nothing reads ambient globals.
type Config struct {
	LLM          LLMConfig          `yaml:"llm"`
	Search       SearchConfig       `yaml:"search"`
	Verification VerificationConfig `yaml:"verification"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Authority    AuthorityConfig    `yaml:"authority"`
	Questions    QuestionConfig     `yaml:"questions"`
	Delivery     DeliveryConfig     `yaml:"delivery"`
	Investor     InvestorProfile    `yaml:"investor"`
}

// LLMConfig holds Language Model Service settings
type LLMConfig struct {
	Provider  string        `yaml:"provider"` // "gemini", "openai"
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key,omitempty"`
	BaseURL   string        `yaml:"base_url,omitempty"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// SearchConfig holds Evidence Client settings
type SearchConfig struct {
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxResults        int           `yaml:"max_results"`         // Top-K per query
	RequestsPerSecond float64       `yaml:"requests_per_second"` // Per-host rate gate
	Burst             int           `yaml:"burst"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

// VerificationConfig holds Verification Engine settings
type VerificationConfig struct {
	Workers             int           `yaml:"workers"`               // Bounded fan-out for claim verification
	MaxClaims           int           `yaml:"max_claims"`            // 0 = verify everything extracted
	MaxQueriesPerClaim  int           `yaml:"max_queries_per_claim"` // 1-3
	RetryBackoff        time.Duration `yaml:"retry_backoff"`
	NumericTolerancePct float64       `yaml:"numeric_tolerance_pct"` // "verified" tolerance for numeric claims
	CheckEvidenceURLs   bool          `yaml:"check_evidence_urls"`   // Probe cited URLs for accessibility
}

// ScoringConfig holds Scoring Aggregator policy
type ScoringConfig struct {
	CategoryWeights      map[ClaimCategory]float64 `yaml:"category_weights"`
	ContradictionPenalty float64                   `yaml:"contradiction_penalty"` // Subtracted per contradicted claim
}

// Weight returns the configured weight for a category, defaulting to 1.0.
func (c ScoringConfig) Weight(category ClaimCategory) float64 {
	if w, ok := c.CategoryWeights[category]; ok {
		return w
	}
	return 1.0
}

// AuthorityConfig is the curated allow-list of higher-weight domains
type AuthorityConfig struct {
	PrimaryDomains   []string `yaml:"primary_domains"`
	SecondaryDomains []string `yaml:"secondary_domains"`
}

// QuestionConfig holds Question Synthesizer settings
type QuestionConfig struct {
	MaxQuestions int `yaml:"max_questions"`
}

// DeliveryConfig holds settings for the delivery collaborators
type DeliveryConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password,omitempty"`
	Recipient    string `yaml:"recipient"`
	SlackWebhook string `yaml:"slack_webhook,omitempty"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "gemini",
			Model:     "gemini-2.5-flash",
			Timeout:   30 * time.Second,
			MaxTokens: 3000,
		},
		Search: SearchConfig{
			BaseURL:           "https://html.duckduckgo.com/html/",
			UserAgent:         "Sago/0.2 (+https://github.com/sago-ai/sago)",
			Timeout:           15 * time.Second,
			MaxResults:        5,
			RequestsPerSecond: 0.5,
			Burst:             2,
			CacheTTL:          15 * time.Minute,
		},
		Verification: VerificationConfig{
			Workers:             5,
			MaxClaims:           15,
			MaxQueriesPerClaim:  3,
			RetryBackoff:        2 * time.Second,
			NumericTolerancePct: 20,
			CheckEvidenceURLs:   false,
		},
		Scoring: ScoringConfig{
			CategoryWeights: map[ClaimCategory]float64{
				CategoryRevenue:        1.5,
				CategoryMarketSize:     1.5,
				CategoryGrowthMetrics:  1.2,
				CategoryCustomerClaims: 1.0,
				CategoryFundingHistory: 1.0,
				CategoryPartnerships:   0.8,
				CategoryTeamBackground: 0.7,
				CategoryOther:          0.5,
			},
			ContradictionPenalty: 0.1,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"sec.gov", "crunchbase.com", "pitchbook.com", "statista.com",
				"gartner.com", "idc.com",
			},
			SecondaryDomains: []string{
				"techcrunch.com", "bloomberg.com", "reuters.com", "forbes.com",
				"wsj.com", "ft.com", "businessinsider.com", "cnbc.com",
				"linkedin.com",
			},
		},
		Questions: QuestionConfig{
			MaxQuestions: 10,
		},
		Delivery: DeliveryConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
		},
		Investor: DefaultProfile(),
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm provider is required")
	}
	if c.Verification.Workers <= 0 {
		return fmt.Errorf("verification workers must be positive, got %d", c.Verification.Workers)
	}
	if c.Verification.MaxQueriesPerClaim < 1 || c.Verification.MaxQueriesPerClaim > 3 {
		return fmt.Errorf("max queries per claim must be 1-3, got %d", c.Verification.MaxQueriesPerClaim)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search max results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Scoring.ContradictionPenalty < 0 || c.Scoring.ContradictionPenalty > 1 {
		return fmt.Errorf("contradiction penalty must be within [0,1], got %g", c.Scoring.ContradictionPenalty)
	}
	for category, w := range c.Scoring.CategoryWeights {
		if w < 0 {
			return fmt.Errorf("category weight for %s must be non-negative, got %g", category, w)
		}
	}
	return nil
}
