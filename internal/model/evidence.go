package model

import "time"

// Evidence represents a third-party snippet retrieved during verification
type Evidence struct {
	SourceTitle string        `json:"source_title"`        // Result title from the search provider
	Snippet     string        `json:"snippet"`             // Text excerpt used for reconciliation
	URL         string        `json:"url"`                 // Full URL
	Host        string        `json:"host,omitempty"`      // Domain name (www. stripped)
	Authority   AuthorityTier `json:"authority,omitempty"` // Source authority classification
	RetrievedAt time.Time     `json:"retrieved_at"`        // When the snippet was fetched
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Regulators, filings, data providers
	TierSecondary AuthorityTier = 2 // Recognized business press
	TierTertiary  AuthorityTier = 3 // Generic web pages
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Weight returns the confidence multiplier contribution for the tier.
func (t AuthorityTier) Weight() float64 {
	switch t {
	case TierPrimary:
		return 1.0
	case TierSecondary:
		return 0.8
	case TierTertiary:
		return 0.4
	default:
		return 0.5
	}
}
