package decision

import (
	"testing"

	"email-responder-be/pkg/classify"
)

func signal(label string, confidence float64) classify.Signal {
	return classify.Signal{Label: label, Confidence: confidence}
}

func TestDecide(t *testing.T) {
	engine := NewEngine(nil, 0)

	tests := []struct {
		name       string
		intent     classify.Signal
		urgency    classify.Signal
		tone       classify.Signal
		wantAction Action
	}{
		{
			name:       "aggressive tone overrides high confidence",
			intent:     signal(classify.IntentAcademic, 0.99),
			urgency:    signal(classify.UrgencyHigh, 0.99),
			tone:       signal(classify.ToneAggressive, 0.99),
			wantAction: ActionEscalate,
		},
		{
			name:       "aggressive tone overrides low confidence",
			intent:     signal(classify.IntentGeneral, 0.10),
			urgency:    signal(classify.UrgencyLow, 0.10),
			tone:       signal(classify.ToneAggressive, 0.10),
			wantAction: ActionEscalate,
		},
		{
			name:       "low confidence escalates",
			intent:     signal(classify.IntentAcademic, 0.85),
			urgency:    signal(classify.UrgencyMedium, 0.60),
			tone:       signal(classify.ToneNeutral, 0.90),
			wantAction: ActionEscalate,
		},
		{
			name:       "unknown intent uses conservative default threshold",
			intent:     signal("newsletter", 0.84),
			urgency:    signal(classify.UrgencyLow, 0.84),
			tone:       signal(classify.ToneNeutral, 0.84),
			wantAction: ActionEscalate,
		},
		{
			name:       "spam with any confidence is ignored",
			intent:     signal(classify.IntentSpam, 0.95),
			urgency:    signal(classify.UrgencyLow, 0.65),
			tone:       signal(classify.ToneNeutral, 0.70),
			wantAction: ActionIgnore,
		},
		{
			name:       "confident academic drafts a reply",
			intent:     signal(classify.IntentAcademic, 0.85),
			urgency:    signal(classify.UrgencyMedium, 0.85),
			tone:       signal(classify.ToneNeutral, 0.85),
			wantAction: ActionDraftReply,
		},
		{
			name:       "meeting just at threshold drafts",
			intent:     signal(classify.IntentMeeting, 0.70),
			urgency:    signal(classify.UrgencyMedium, 0.70),
			tone:       signal(classify.ToneNeutral, 0.70),
			wantAction: ActionDraftReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(tt.intent, tt.urgency, tt.tone)
			if got.Action != tt.wantAction {
				t.Errorf("Decide() = %s (%s), want %s", got.Action, got.Reason, tt.wantAction)
			}
		})
	}
}

func TestDecideReasons(t *testing.T) {
	engine := NewEngine(nil, 0)

	got := engine.Decide(
		signal(classify.IntentAcademic, 0.90),
		signal(classify.UrgencyHigh, 0.90),
		signal(classify.ToneAggressive, 0.90),
	)
	if got.Reason != "Aggressive tone detected" {
		t.Errorf("aggressive reason = %q", got.Reason)
	}

	got = engine.Decide(
		signal(classify.IntentAcademic, 0.50),
		signal(classify.UrgencyHigh, 0.90),
		signal(classify.ToneNeutral, 0.90),
	)
	if got.Reason != "Low confidence (0.50)" {
		t.Errorf("low confidence reason = %q", got.Reason)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	engine := NewEngine(nil, 0)
	intent := signal(classify.IntentMeeting, 0.75)
	urgency := signal(classify.UrgencyMedium, 0.75)
	tone := signal(classify.ToneNeutral, 0.75)

	first := engine.Decide(intent, urgency, tone)
	for i := 0; i < 10; i++ {
		if got := engine.Decide(intent, urgency, tone); got != first {
			t.Fatalf("Decide() not deterministic: %v vs %v", got, first)
		}
	}
}
