package classify

import (
	"fmt"
	"regexp"
	"strings"

	"email-responder-be/pkg/email"
)

// UrgencyDetector assigns a time-sensitivity level using keyword tiers and
// deadline mentions. Critical keywords win over everything else.
type UrgencyDetector struct {
	criticalKeywords []string
	highKeywords     []string
	mediumKeywords   []string
	deadlinePatterns []*regexp.Regexp
}

func NewUrgencyDetector() *UrgencyDetector {
	return &UrgencyDetector{
		criticalKeywords: []string{
			"urgent", "asap", "immediately", "emergency", "critical",
			"right now", "today", "within hours",
		},
		highKeywords: []string{
			"quickly", "tomorrow", "by tomorrow", "this week",
			"deadline", "due", "time-sensitive",
		},
		mediumKeywords: []string{
			"next week", "upcoming", "soon", "when you can",
			"at your convenience",
		},
		deadlinePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)deadline\s+(?:is\s+)?(?:on\s+)?(\w+\s+\d+)`),
			regexp.MustCompile(`(?i)due\s+(?:on\s+)?(\w+\s+\d+)`),
			regexp.MustCompile(`(?i)by\s+(\w+\s+\d+)`),
			regexp.MustCompile(`(?i)before\s+(\w+\s+\d+)`),
			regexp.MustCompile(`(?i)(?:today|tomorrow|tonight)`),
		},
	}
}

func (d *UrgencyDetector) Detect(msg email.Message) Signal {
	text := strings.ToLower(msg.CombinedText())

	if matched := matchKeywords(text, d.criticalKeywords); len(matched) > 0 {
		return Signal{
			Label:      UrgencyCritical,
			Confidence: 0.95,
			Reasoning:  fmt.Sprintf("Contains critical keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	if deadline, days, ok := d.extractDeadline(text); ok {
		switch {
		case days <= 1:
			return Signal{
				Label:      UrgencyCritical,
				Confidence: 0.90,
				Reasoning:  fmt.Sprintf("Deadline within %d day(s): %s", days, deadline),
				Matched:    []string{deadline},
			}
		case days <= 3:
			return Signal{
				Label:      UrgencyHigh,
				Confidence: 0.85,
				Reasoning:  fmt.Sprintf("Deadline in %d days: %s", days, deadline),
				Matched:    []string{deadline},
			}
		default:
			return Signal{
				Label:      UrgencyMedium,
				Confidence: 0.75,
				Reasoning:  fmt.Sprintf("Deadline in %d days: %s", days, deadline),
				Matched:    []string{deadline},
			}
		}
	}

	if matched := matchKeywords(text, d.highKeywords); len(matched) > 0 {
		return Signal{
			Label:      UrgencyHigh,
			Confidence: 0.80,
			Reasoning:  fmt.Sprintf("Contains high-urgency keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	if matched := matchKeywords(text, d.mediumKeywords); len(matched) > 0 {
		return Signal{
			Label:      UrgencyMedium,
			Confidence: 0.70,
			Reasoning:  fmt.Sprintf("Contains medium-urgency keywords: %s", strings.Join(matched, ", ")),
			Matched:    matched,
		}
	}

	return Signal{
		Label:      UrgencyLow,
		Confidence: 0.65,
		Reasoning:  "No urgency indicators found",
		Matched:    []string{},
	}
}

// extractDeadline finds the first deadline mention and estimates days until it.
// Relative mentions resolve exactly; dated mentions assume a week out, which
// keeps the tiering conservative without a full date parser.
func (d *UrgencyDetector) extractDeadline(text string) (string, int, bool) {
	for _, pattern := range d.deadlinePatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		lowered := strings.ToLower(match)
		switch {
		case strings.Contains(lowered, "today"), strings.Contains(lowered, "tonight"):
			return match, 0, true
		case strings.Contains(lowered, "tomorrow"):
			return match, 1, true
		}
		return match, 7, true
	}
	return "", 0, false
}
