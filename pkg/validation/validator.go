package validation

import (
	"fmt"
	"regexp"
	"strings"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/decision"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	RecommendApprove  = "approve"
	RecommendEscalate = "escalate"
)

// Issue is one finding against a draft. Issues with high or critical
// severity fail validation; everything else surfaces as a warning.
type Issue struct {
	Kind           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

// Result is the full validation report for a single draft.
type Result struct {
	Passed         bool    `json:"passed"`
	Confidence     float64 `json:"confidence"`
	Issues         []Issue `json:"issues"`
	Warnings       []Issue `json:"warnings"`
	WordCount      int     `json:"word_count"`
	HasGreeting    bool    `json:"has_greeting"`
	HasSignature   bool    `json:"has_signature"`
	Recommendation string  `json:"recommendation"`
}

// Input bundles the draft with the classification that produced it.
type Input struct {
	Draft                    string
	Intent                   string
	Sentiment                string
	GenerationConfidence     float64
	ClassificationConfidence float64
}

var (
	greetingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(dear|hello|hi|hey|greetings)`),
		regexp.MustCompile(`^\w+,`),
	}
	signaturePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(best regards|sincerely|thanks|cheers|regards|best)`),
		regexp.MustCompile(`(?m)^\w+\s*$`),
	}

	doubleSpaces   = regexp.MustCompile(` {2,}`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

const terminalRunes = ".!?"

// Validator checks generated drafts for confidence, length, safety, and
// structural quality before they reach the approval queue.
type Validator struct {
	confidenceThresholds map[string]float64
	defaultThreshold     float64
	inappropriateWords   []string
	minWordCount         int
	maxWordCount         int
}

// NewValidator builds a validator over a per-intent confidence table.
// A nil table reuses the decision engine's thresholds so drafting and
// validation gate on the same floors.
func NewValidator(thresholds map[string]float64) *Validator {
	if thresholds == nil {
		thresholds = decision.DefaultThresholds()
	}
	return &Validator{
		confidenceThresholds: thresholds,
		defaultThreshold:     decision.DefaultThreshold,
		inappropriateWords:   []string{"damn", "hell", "crap", "stupid", "idiot"},
		minWordCount:         10,
		maxWordCount:         500,
	}
}

func (v *Validator) Validate(in Input) Result {
	var issues, warnings []Issue

	minConfidence := in.GenerationConfidence
	if in.ClassificationConfidence < minConfidence {
		minConfidence = in.ClassificationConfidence
	}
	threshold, ok := v.confidenceThresholds[in.Intent]
	if !ok {
		threshold = v.defaultThreshold
	}
	if minConfidence < threshold {
		issues = append(issues, Issue{
			Kind:           "low_confidence",
			Severity:       SeverityHigh,
			Message:        fmt.Sprintf("Confidence %.2f below threshold %.2f", minConfidence, threshold),
			Recommendation: "Escalate to human review",
		})
	}

	wordCount := len(strings.Fields(in.Draft))
	if wordCount < v.minWordCount {
		issues = append(issues, Issue{
			Kind:           "too_short",
			Severity:       SeverityMedium,
			Message:        fmt.Sprintf("Draft too short (%d words, minimum %d)", wordCount, v.minWordCount),
			Recommendation: "Regenerate with more detail",
		})
	} else if wordCount > v.maxWordCount {
		warnings = append(warnings, Issue{
			Kind:           "too_long",
			Severity:       SeverityLow,
			Message:        fmt.Sprintf("Draft may be too long (%d words, maximum %d)", wordCount, v.maxWordCount),
			Recommendation: "Consider shortening",
		})
	}

	if found := v.findInappropriate(in.Draft); len(found) > 0 {
		issues = append(issues, Issue{
			Kind:           "inappropriate_content",
			Severity:       SeverityCritical,
			Message:        "Contains inappropriate words: " + strings.Join(found, ", "),
			Recommendation: "Regenerate or escalate",
		})
	}

	hasGreeting := HasGreeting(in.Draft)
	if !hasGreeting {
		warnings = append(warnings, Issue{
			Kind:           "missing_greeting",
			Severity:       SeverityLow,
			Message:        "Draft may be missing a greeting",
			Recommendation: "Add greeting (Hello, Dear, etc.)",
		})
	}

	hasSignature := HasSignature(in.Draft)
	if !hasSignature {
		warnings = append(warnings, Issue{
			Kind:           "missing_signature",
			Severity:       SeverityLow,
			Message:        "Draft may be missing a signature",
			Recommendation: "Add signature (Best regards, etc.)",
		})
	}

	if in.Sentiment == classify.ToneAggressive {
		issues = append(issues, Issue{
			Kind:           "aggressive_sender",
			Severity:       SeverityCritical,
			Message:        "Original email has aggressive tone",
			Recommendation: "Escalate to human - requires careful handling",
		})
	}

	warnings = append(warnings, styleWarnings(in.Draft)...)

	passed := true
	for _, issue := range issues {
		if issue.Severity == SeverityCritical || issue.Severity == SeverityHigh {
			passed = false
			break
		}
	}

	recommendation := RecommendApprove
	if !passed {
		recommendation = RecommendEscalate
	}

	return Result{
		Passed:         passed,
		Confidence:     minConfidence,
		Issues:         issues,
		Warnings:       warnings,
		WordCount:      wordCount,
		HasGreeting:    hasGreeting,
		HasSignature:   hasSignature,
		Recommendation: recommendation,
	}
}

func (v *Validator) findInappropriate(draft string) []string {
	lower := strings.ToLower(draft)
	var found []string
	for _, word := range v.inappropriateWords {
		if strings.Contains(lower, word) {
			found = append(found, word)
		}
	}
	return found
}

// styleWarnings covers the mechanical checks a grammar service would
// subsume. Kept local so AutoFix can resolve every warning it emits.
func styleWarnings(draft string) []Issue {
	var warnings []Issue
	if strings.Contains(draft, "  ") {
		warnings = append(warnings, Issue{
			Kind:           "double_space",
			Severity:       SeverityLow,
			Message:        "Contains double spaces",
			Recommendation: "Remove extra spaces",
		})
	}
	if draft != "" && !strings.ContainsRune(terminalRunes, rune(draft[len(draft)-1])) {
		warnings = append(warnings, Issue{
			Kind:           "missing_punctuation",
			Severity:       SeverityLow,
			Message:        "Missing punctuation at end",
			Recommendation: "Add period",
		})
	}
	return warnings
}

// HasGreeting reports whether the first line opens like a salutation.
func HasGreeting(text string) bool {
	firstLine := strings.ToLower(strings.TrimSpace(strings.SplitN(text, "\n", 2)[0]))
	for _, pattern := range greetingPatterns {
		if pattern.MatchString(firstLine) {
			return true
		}
	}
	return false
}

// HasSignature reports whether the last non-empty lines read like a
// sign-off.
func HasSignature(text string) bool {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return false
	}
	start := len(lines) - 3
	if start < 0 {
		start = 0
	}
	tail := strings.ToLower(strings.Join(lines[start:], "\n"))
	for _, pattern := range signaturePatterns {
		if pattern.MatchString(tail) {
			return true
		}
	}
	return false
}

// AutoFix resolves the mechanical issues Validate reports as warnings:
// collapses repeated spaces and blank lines, terminates the draft with
// punctuation, and trims surrounding whitespace.
func AutoFix(draft string) string {
	draft = doubleSpaces.ReplaceAllString(draft, " ")
	draft = excessNewlines.ReplaceAllString(draft, "\n\n")
	draft = strings.TrimSpace(draft)
	if draft != "" && !strings.ContainsRune(terminalRunes, rune(draft[len(draft)-1])) {
		draft += "."
	}
	return draft
}
