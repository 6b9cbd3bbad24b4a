package classify

import (
	"fmt"
	"strings"
	"unicode"

	"email-responder-be/pkg/email"
)

// SentimentAnalyzer classifies affect. Aggressive detection is a safety
// feature and runs before everything else: aggressive keywords, shouting
// (caps ratio) and excessive exclamation marks all force escalation.
type SentimentAnalyzer struct {
	positiveKeywords   []string
	negativeKeywords   []string
	aggressiveKeywords []string
}

func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{
		positiveKeywords: []string{
			"thank", "thanks", "appreciate", "grateful", "great",
			"excellent", "wonderful", "happy", "pleased", "love",
			"perfect", "amazing", "fantastic", "good",
		},
		negativeKeywords: []string{
			"unfortunately", "problem", "issue", "concern", "disappointed",
			"frustrated", "unhappy", "dissatisfied", "bad", "poor",
			"wrong", "mistake", "error", "fail",
		},
		aggressiveKeywords: []string{
			"demand", "immediately", "unacceptable", "terrible", "worst",
			"hate", "angry", "furious", "ridiculous", "incompetent",
			"pathetic", "disgrace", "lawsuit", "lawyer", "sue",
		},
	}
}

func (a *SentimentAnalyzer) Analyze(msg email.Message) SentimentSignal {
	text := strings.ToLower(msg.CombinedText())

	if matched := matchKeywords(text, a.aggressiveKeywords); len(matched) > 0 {
		return SentimentSignal{
			Signal: Signal{
				Label:      ToneAggressive,
				Confidence: 0.90,
				Reasoning:  fmt.Sprintf("Contains aggressive language: %s", strings.Join(matched, ", ")),
				Matched:    matched,
			},
			Escalate: true,
		}
	}

	if capsRatio(msg.Body) > 0.3 {
		return SentimentSignal{
			Signal: Signal{
				Label:      ToneAggressive,
				Confidence: 0.85,
				Reasoning:  "Excessive capitalization detected (shouting)",
				Matched:    []string{},
			},
			Escalate: true,
		}
	}

	if n := strings.Count(text, "!"); n > 3 {
		return SentimentSignal{
			Signal: Signal{
				Label:      ToneAggressive,
				Confidence: 0.75,
				Reasoning:  fmt.Sprintf("Excessive exclamation marks (%d)", n),
				Matched:    []string{},
			},
			Escalate: true,
		}
	}

	positive := matchKeywords(text, a.positiveKeywords)
	negative := matchKeywords(text, a.negativeKeywords)

	switch {
	case len(positive) > len(negative) && len(positive) > 0:
		return SentimentSignal{
			Signal: Signal{
				Label:      TonePositive,
				Confidence: capConfidence(0.70 + float64(len(positive))*0.05),
				Reasoning:  fmt.Sprintf("Contains %d positive keywords", len(positive)),
				Matched:    positive,
			},
		}
	case len(negative) > len(positive) && len(negative) > 0:
		return SentimentSignal{
			Signal: Signal{
				Label:      ToneNegative,
				Confidence: capConfidence(0.70 + float64(len(negative))*0.05),
				Reasoning:  fmt.Sprintf("Contains %d negative keywords", len(negative)),
				Matched:    negative,
			},
		}
	}

	return SentimentSignal{
		Signal: Signal{
			Label:      ToneNeutral,
			Confidence: 0.70,
			Reasoning:  "No strong sentiment indicators",
			Matched:    []string{},
		},
	}
}

func capsRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(text))
}

func capConfidence(c float64) float64 {
	if c > 0.95 {
		return 0.95
	}
	return c
}
