package model

// VerdictStatus is the outcome of verifying one claim
type VerdictStatus string

const (
	StatusVerified          VerdictStatus = "verified"
	StatusContradicted      VerdictStatus = "contradicted"
	StatusPartiallyVerified VerdictStatus = "partially_verified"
	StatusUnverifiable      VerdictStatus = "unverifiable"
)

// ParseStatus maps a status string from LLM output to a VerdictStatus.
// Unknown values fall back to StatusUnverifiable.
func ParseStatus(s string) VerdictStatus {
	switch VerdictStatus(s) {
	case StatusVerified, StatusContradicted, StatusPartiallyVerified:
		return VerdictStatus(s)
	default:
		return StatusUnverifiable
	}
}

// Verdict is the verification outcome and rationale for one Claim.
// Invariant: Status == StatusUnverifiable implies CitedEvidence is empty
// and Confidence is 0.
type Verdict struct {
	ClaimID       string        `json:"claim_id"`
	Status        VerdictStatus `json:"status"`
	Confidence    float64       `json:"confidence"`     // 0.0-1.0, evidence quantity x authority
	Summary       string        `json:"summary"`        // Rationale text
	CitedEvidence []Evidence    `json:"cited_evidence"` // Ordered, may be empty
	RedFlags      []string      `json:"red_flags,omitempty"`
}

// Unverifiable builds a verdict honoring the empty-evidence/zero-confidence
// invariant for claims where no judgment was possible.
func Unverifiable(claimID, summary string, redFlags ...string) Verdict {
	return Verdict{
		ClaimID:       claimID,
		Status:        StatusUnverifiable,
		Confidence:    0.0,
		Summary:       summary,
		CitedEvidence: []Evidence{},
		RedFlags:      redFlags,
	}
}
