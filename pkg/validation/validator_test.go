package validation

import (
	"strings"
	"testing"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/decision"
)

const cleanDraft = `Hello Professor Smith,

Thank you for your email regarding the assignment deadline. I have received your message and will respond with the requested information shortly.

Best regards,
Sam`

func cleanInput() Input {
	return Input{
		Draft:                    cleanDraft,
		Intent:                   classify.IntentAcademic,
		Sentiment:                classify.ToneNeutral,
		GenerationConfidence:     0.85,
		ClassificationConfidence: 0.82,
	}
}

func TestValidateCleanDraftApproves(t *testing.T) {
	res := NewValidator(nil).Validate(cleanInput())

	if !res.Passed {
		t.Fatalf("expected pass, issues: %+v", res.Issues)
	}
	if res.Recommendation != RecommendApprove {
		t.Errorf("recommendation = %q, want %q", res.Recommendation, RecommendApprove)
	}
	if res.Confidence != 0.82 {
		t.Errorf("confidence = %v, want min of the two inputs (0.82)", res.Confidence)
	}
	if !res.HasGreeting || !res.HasSignature {
		t.Errorf("greeting=%v signature=%v, want both true", res.HasGreeting, res.HasSignature)
	}
}

func TestValidateLowConfidenceEscalates(t *testing.T) {
	in := cleanInput()
	in.ClassificationConfidence = 0.50

	res := NewValidator(nil).Validate(in)
	if res.Passed {
		t.Fatal("expected failure below the academic threshold")
	}
	if res.Recommendation != RecommendEscalate {
		t.Errorf("recommendation = %q, want %q", res.Recommendation, RecommendEscalate)
	}
	if res.Issues[0].Kind != "low_confidence" || res.Issues[0].Severity != SeverityHigh {
		t.Errorf("unexpected issue: %+v", res.Issues[0])
	}
}

func TestValidateUnknownIntentUsesDefaultThreshold(t *testing.T) {
	in := cleanInput()
	in.Intent = "unclassified"
	in.GenerationConfidence = 0.86
	in.ClassificationConfidence = 0.86

	if res := NewValidator(nil).Validate(in); !res.Passed {
		t.Errorf("0.86 should clear the 0.85 catch-all threshold, issues: %+v", res.Issues)
	}

	in.GenerationConfidence = 0.80
	in.ClassificationConfidence = 0.80
	if res := NewValidator(nil).Validate(in); res.Passed {
		t.Error("0.80 should fall below the 0.85 catch-all threshold")
	}
}

// The validator gates on the same per-intent floors as the decision
// engine, so a draft that cleared triage cannot fail on confidence alone.
func TestValidateSharesDecisionThresholds(t *testing.T) {
	for intent, threshold := range decision.DefaultThresholds() {
		in := cleanInput()
		in.Intent = intent
		in.GenerationConfidence = threshold
		in.ClassificationConfidence = threshold

		if res := NewValidator(nil).Validate(in); !res.Passed {
			t.Errorf("intent %s at its own floor %.2f should pass, issues: %+v", intent, threshold, res.Issues)
		}
	}
}

func TestValidateShortDraftIsMediumIssue(t *testing.T) {
	in := cleanInput()
	in.Draft = "Hello,\n\nThanks.\n\nSam"

	res := NewValidator(nil).Validate(in)
	var found bool
	for _, issue := range res.Issues {
		if issue.Kind == "too_short" && issue.Severity == SeverityMedium {
			found = true
		}
	}
	if !found {
		t.Errorf("expected too_short issue, got %+v", res.Issues)
	}
	// Medium severity alone does not fail validation.
	if !res.Passed {
		t.Error("medium issues should not flip the recommendation")
	}
}

func TestValidateLongDraftIsWarningOnly(t *testing.T) {
	in := cleanInput()
	in.Draft = "Hello,\n\n" + strings.Repeat("word ", 520) + "\n\nBest regards,\nSam"

	res := NewValidator(nil).Validate(in)
	if !res.Passed {
		t.Fatalf("length overflow should only warn, issues: %+v", res.Issues)
	}
	var found bool
	for _, w := range res.Warnings {
		if w.Kind == "too_long" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected too_long warning, got %+v", res.Warnings)
	}
}

func TestValidateInappropriateContentIsCritical(t *testing.T) {
	in := cleanInput()
	in.Draft = strings.Replace(cleanDraft, "Thank you", "This damn assignment, thank you", 1)

	res := NewValidator(nil).Validate(in)
	if res.Passed {
		t.Fatal("inappropriate content must fail validation")
	}
	var issue *Issue
	for i := range res.Issues {
		if res.Issues[i].Kind == "inappropriate_content" {
			issue = &res.Issues[i]
		}
	}
	if issue == nil || issue.Severity != SeverityCritical {
		t.Fatalf("expected critical inappropriate_content issue, got %+v", res.Issues)
	}
	if !strings.Contains(issue.Message, "damn") {
		t.Errorf("message should name the word: %q", issue.Message)
	}
}

func TestValidateAggressiveSenderIsCritical(t *testing.T) {
	in := cleanInput()
	in.Sentiment = classify.ToneAggressive

	res := NewValidator(nil).Validate(in)
	if res.Passed {
		t.Fatal("aggressive sender must fail validation")
	}
	var found bool
	for _, issue := range res.Issues {
		if issue.Kind == "aggressive_sender" && issue.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Errorf("expected critical aggressive_sender issue, got %+v", res.Issues)
	}
}

func TestValidateStyleWarnings(t *testing.T) {
	in := cleanInput()
	in.Draft = "Hello  Professor,\n\nThank you for your email about the exam, I will check and respond with everything you need\n\nBest regards,\nSam"

	res := NewValidator(nil).Validate(in)
	kinds := make(map[string]bool)
	for _, w := range res.Warnings {
		kinds[w.Kind] = true
	}
	if !kinds["double_space"] {
		t.Error("expected double_space warning")
	}
	if !kinds["missing_punctuation"] {
		t.Error("expected missing_punctuation warning")
	}
}

func TestHasGreeting(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Dear Professor,\n\nbody", true},
		{"hello there", true},
		{"Sam,\n\nbody", true},
		{"The meeting is at 3pm.", false},
	}
	for _, tt := range tests {
		if got := HasGreeting(tt.text); got != tt.want {
			t.Errorf("HasGreeting(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestHasSignature(t *testing.T) {
	if HasSignature("single line only") {
		t.Error("one-line text cannot carry a signature")
	}
	if !HasSignature("Hello,\n\nbody text here\n\nCheers,\nSam") {
		t.Error("sign-off in the last lines should be detected")
	}
}

func TestAutoFix(t *testing.T) {
	fixed := AutoFix("Hello  there,\n\n\n\nThanks for  writing\n")

	if strings.Contains(fixed, "  ") {
		t.Errorf("double spaces survived: %q", fixed)
	}
	if strings.Contains(fixed, "\n\n\n") {
		t.Errorf("excessive newlines survived: %q", fixed)
	}
	if !strings.HasSuffix(fixed, ".") {
		t.Errorf("missing terminal punctuation: %q", fixed)
	}
	if fixed != "Hello there,\n\nThanks for writing." {
		t.Errorf("unexpected result: %q", fixed)
	}
}

func TestAutoFixResolvesItsOwnWarnings(t *testing.T) {
	in := cleanInput()
	in.Draft = "Hello  Professor,\n\nThank you for your email about the exam, I will check and respond with everything you need\n\nBest regards,\nSam"

	in.Draft = AutoFix(in.Draft)
	res := NewValidator(nil).Validate(in)
	for _, w := range res.Warnings {
		if w.Kind == "double_space" || w.Kind == "missing_punctuation" {
			t.Errorf("AutoFix left a fixable warning: %+v", w)
		}
	}
}
