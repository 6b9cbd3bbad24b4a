package classify

import (
	"fmt"
	"strings"

	"email-responder-be/pkg/email"
)

// IntentClassifier assigns a coarse purpose category to a message using
// keyword rules. Sender domain is a strong hint for academic mail.
type IntentClassifier struct {
	spamKeywords      []string
	academicKeywords  []string
	jobKeywords       []string
	meetingKeywords   []string
	supportKeywords   []string
	complaintKeywords []string
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		spamKeywords: []string{
			"unsubscribe", "discount", "limited offer", "click here",
			"winner", "prize", "free", "congratulations", "act now",
		},
		academicKeywords: []string{
			"professor", "assignment", "exam", "grade", "course",
			"class", "homework", "lecture", "syllabus", "office hours",
		},
		jobKeywords: []string{
			"interview", "position", "application", "resume", "cv",
			"hiring", "job", "opportunity", "candidate", "recruiter",
		},
		meetingKeywords: []string{
			"meeting", "schedule", "calendar", "appointment", "sync",
			"call", "zoom", "available", "availability",
		},
		supportKeywords: []string{
			"help", "support", "issue", "problem", "error", "broken",
			"not working", "question", "assistance",
		},
		complaintKeywords: []string{
			"complaint", "disappointed", "unacceptable", "refund",
			"dissatisfied", "poor service",
		},
	}
}

// Classify returns the intent signal for a message. Spam detection runs
// first, then the specific categories, falling through to general.
func (c *IntentClassifier) Classify(msg email.Message) Signal {
	text := strings.ToLower(msg.CombinedText())
	sender := strings.ToLower(msg.Sender)

	if matched := matchKeywords(text, c.spamKeywords); len(matched) > 0 {
		return Signal{
			Label:      IntentSpam,
			Confidence: 0.95,
			Reasoning:  fmt.Sprintf("Contains spam keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	academicMatched := matchKeywords(text, c.academicKeywords)
	if strings.HasSuffix(sender, ".edu") || len(academicMatched) > 0 {
		confidence := 0.75
		reason := fmt.Sprintf("Contains academic keywords: %s", strings.Join(academicMatched, ", "))
		if strings.HasSuffix(sender, ".edu") {
			confidence = 0.85
			reason = "Sender is from an academic domain"
		}
		return Signal{
			Label:      IntentAcademic,
			Confidence: confidence,
			Reasoning:  reason,
			Matched:    academicMatched,
		}
	}

	if matched := matchKeywords(text, c.jobKeywords); len(matched) > 0 || strings.Contains(sender, "hr") {
		return Signal{
			Label:      IntentInternship,
			Confidence: 0.80,
			Reasoning:  fmt.Sprintf("Contains job keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	if matched := matchKeywords(text, c.complaintKeywords); len(matched) > 0 {
		return Signal{
			Label:      IntentComplaint,
			Confidence: 0.75,
			Reasoning:  fmt.Sprintf("Contains complaint keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	if matched := matchKeywords(text, c.meetingKeywords); len(matched) > 0 {
		return Signal{
			Label:      IntentMeeting,
			Confidence: 0.75,
			Reasoning:  fmt.Sprintf("Contains meeting keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	if matched := matchKeywords(text, c.supportKeywords); len(matched) > 0 {
		return Signal{
			Label:      IntentSupport,
			Confidence: 0.70,
			Reasoning:  fmt.Sprintf("Contains support keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	return Signal{
		Label:      IntentGeneral,
		Confidence: 0.60,
		Reasoning:  "No category keywords matched",
		Matched:    []string{},
	}
}

func matchKeywords(text string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
