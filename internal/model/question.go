package model

// QuestionPriority ranks founder questions for the investor
type QuestionPriority string

const (
	PriorityHigh   QuestionPriority = "high"
	PriorityMedium QuestionPriority = "medium"
	PriorityLow    QuestionPriority = "low"
)

// Rank returns the sort rank for a priority (lower sorts first).
func (p QuestionPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Question is a founder question synthesized from verification results
type Question struct {
	Text                string           `json:"text"`
	Priority            QuestionPriority `json:"priority"`
	Rationale           string           `json:"rationale"`
	PersonalizationNote string           `json:"personalization_note,omitempty"`
	RelatedClaimID      string           `json:"related_claim_id,omitempty"`
	Generic             bool             `json:"generic"` // No personalizable link to the investor profile
}
