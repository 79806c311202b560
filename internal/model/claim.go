package model

// Claim represents a single factual assertion extracted from a pitch deck
type Claim struct {
	ID         string        `json:"id"`                   // Stable identifier (e.g., "claim_0001")
	Text       string        `json:"text"`                 // Verbatim extracted statement
	Category   ClaimCategory `json:"category"`             // Claim taxonomy bucket
	SourcePage int           `json:"source_page"`          // Page/slide index in the deck (1-based)
	Context    string        `json:"context,omitempty"`    // Surrounding text for context
	Confidence float64       `json:"confidence,omitempty"` // How confident the extractor is this is verifiable (0-1)
}

// ClaimCategory categorizes the nature of the claim
type ClaimCategory string

const (
	CategoryMarketSize     ClaimCategory = "market_size"
	CategoryRevenue        ClaimCategory = "revenue"
	CategoryGrowthMetrics  ClaimCategory = "growth_metrics"
	CategoryTeamBackground ClaimCategory = "team_background"
	CategoryCustomerClaims ClaimCategory = "customer_claims"
	CategoryPartnerships   ClaimCategory = "partnerships"
	CategoryFundingHistory ClaimCategory = "funding_history"
	CategoryOther          ClaimCategory = "other"
)

// ParseCategory maps a category string from LLM output to a ClaimCategory.
// Unknown values fall back to CategoryOther.
func ParseCategory(s string) ClaimCategory {
	switch ClaimCategory(s) {
	case CategoryMarketSize, CategoryRevenue, CategoryGrowthMetrics,
		CategoryTeamBackground, CategoryCustomerClaims, CategoryPartnerships,
		CategoryFundingHistory:
		return ClaimCategory(s)
	default:
		return CategoryOther
	}
}

// VerificationPriority returns the rank used to order claims before
// verification. Lower is more important.
func (c ClaimCategory) VerificationPriority() int {
	switch c {
	case CategoryRevenue:
		return 1
	case CategoryGrowthMetrics:
		return 2
	case CategoryMarketSize:
		return 3
	case CategoryCustomerClaims:
		return 4
	case CategoryTeamBackground:
		return 5
	case CategoryPartnerships:
		return 6
	case CategoryFundingHistory:
		return 7
	default:
		return 10
	}
}

// Material reports whether the category is treated as high-materiality when
// assigning question priority.
func (c ClaimCategory) Material() bool {
	return c == CategoryMarketSize || c == CategoryRevenue
}

// Title returns a human-readable category label for reports.
func (c ClaimCategory) Title() string {
	switch c {
	case CategoryMarketSize:
		return "Market Size"
	case CategoryRevenue:
		return "Revenue"
	case CategoryGrowthMetrics:
		return "Growth Metrics"
	case CategoryTeamBackground:
		return "Team Background"
	case CategoryCustomerClaims:
		return "Customer Claims"
	case CategoryPartnerships:
		return "Partnerships"
	case CategoryFundingHistory:
		return "Funding History"
	default:
		return "Other"
	}
}
