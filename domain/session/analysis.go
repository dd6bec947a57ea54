package session

import "time"

// Analysis is the structured output of the AI career analysis.
// Fields the provider leaves out stay at their zero values.
type Analysis struct {
	ProfileSummary           string    `json:"profileSummary"`
	SuggestedCareers         []string  `json:"suggestedCareers"`
	IdentifiedGaps           []string  `json:"identifiedGaps"`
	ActionPlan               string    `json:"actionPlan"`
	CurrentSituationAnalysis string    `json:"currentSituationAnalysis"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
