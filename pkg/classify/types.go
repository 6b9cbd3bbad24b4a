package classify

// Signal is the result of one classification pass over a message.
// Produced once per message per signal type, never mutated.
type Signal struct {
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Matched    []string `json:"matched_keywords"`
}

// SentimentSignal extends Signal with the safety escalation flag.
// Escalate is true whenever the tone is classified as aggressive.
type SentimentSignal struct {
	Signal
	Escalate bool `json:"escalate"`
}

// Intent labels
const (
	IntentAcademic   = "academic"
	IntentInternship = "internship"
	IntentMeeting    = "meeting"
	IntentSupport    = "support"
	IntentComplaint  = "complaint"
	IntentSpam       = "spam"
	IntentGeneral    = "general"
)

// Urgency labels
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// Tone/sentiment labels
const (
	TonePositive   = "positive"
	ToneNeutral    = "neutral"
	ToneNegative   = "negative"
	ToneAggressive = "aggressive"
)
