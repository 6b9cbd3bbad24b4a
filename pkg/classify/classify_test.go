package classify

import (
	"strings"
	"testing"

	"email-responder-be/pkg/email"
)

func TestIntentClassifier(t *testing.T) {
	c := NewIntentClassifier()

	tests := []struct {
		name      string
		msg       email.Message
		wantLabel string
	}{
		{
			name: "spam wins over everything",
			msg: email.Message{
				Sender:  "marketing@shop.com",
				Subject: "50% Discount - Limited Offer!",
				Body:    "Click here to claim your discount. Unsubscribe anytime.",
			},
			wantLabel: IntentSpam,
		},
		{
			name: "edu sender is academic with boosted confidence",
			msg: email.Message{
				Sender:  "smith@university.edu",
				Subject: "Question",
				Body:    "See attached.",
			},
			wantLabel: IntentAcademic,
		},
		{
			name: "interview invitation is internship",
			msg: email.Message{
				Sender:  "recruiting@company.com",
				Subject: "Interview Invitation",
				Body:    "We would like to invite you for an interview.",
			},
			wantLabel: IntentInternship,
		},
		{
			name: "scheduling request is meeting",
			msg: email.Message{
				Sender:  "colleague@work.com",
				Subject: "Quick sync",
				Body:    "Are you available for a sync tomorrow?",
			},
			wantLabel: IntentMeeting,
		},
		{
			name: "no keywords falls through to general",
			msg: email.Message{
				Sender:  "friend@mail.com",
				Subject: "Photos",
				Body:    "Here are the photos from last weekend.",
			},
			wantLabel: IntentGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.msg)
			if got.Label != tt.wantLabel {
				t.Errorf("Classify() = %s (%s), want %s", got.Label, got.Reasoning, tt.wantLabel)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("confidence out of range: %f", got.Confidence)
			}
		})
	}

	edu := c.Classify(email.Message{Sender: "prof@school.edu", Subject: "hi", Body: "hello"})
	if edu.Confidence != 0.85 {
		t.Errorf("edu sender confidence = %f, want 0.85", edu.Confidence)
	}
}

func TestUrgencyDetector(t *testing.T) {
	d := NewUrgencyDetector()

	tests := []struct {
		name      string
		msg       email.Message
		wantLabel string
	}{
		{
			name:      "urgent keyword is critical",
			msg:       email.Message{Subject: "URGENT: Server Down", Body: "Need immediate attention, this is an emergency."},
			wantLabel: UrgencyCritical,
		},
		{
			name:      "deadline tomorrow is critical",
			msg:       email.Message{Subject: "Reminder", Body: "The report is needed by tomorrow."},
			wantLabel: UrgencyCritical,
		},
		{
			name:      "this week is high",
			msg:       email.Message{Subject: "Review", Body: "Could you review the draft this week?"},
			wantLabel: UrgencyHigh,
		},
		{
			name:      "at your convenience is medium",
			msg:       email.Message{Subject: "Question", Body: "Reply at your convenience."},
			wantLabel: UrgencyMedium,
		},
		{
			name:      "no indicators is low",
			msg:       email.Message{Subject: "Newsletter", Body: "Here is our monthly newsletter with updates."},
			wantLabel: UrgencyLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.msg)
			if got.Label != tt.wantLabel {
				t.Errorf("Detect() = %s (%s), want %s", got.Label, got.Reasoning, tt.wantLabel)
			}
		})
	}
}

func TestSentimentAnalyzer(t *testing.T) {
	a := NewSentimentAnalyzer()

	aggressive := a.Analyze(email.Message{
		Subject: "Complaint",
		Body:    "This is unacceptable, I will contact my lawyer.",
	})
	if aggressive.Label != ToneAggressive || !aggressive.Escalate {
		t.Errorf("aggressive keywords: label=%s escalate=%v", aggressive.Label, aggressive.Escalate)
	}

	// "immediately" reads as a demand, not mere urgency.
	demanding := a.Analyze(email.Message{
		Subject: "Grade dispute",
		Body:    "Fix my grade immediately.",
	})
	if demanding.Label != ToneAggressive || !demanding.Escalate {
		t.Errorf("demanding: label=%s escalate=%v", demanding.Label, demanding.Escalate)
	}

	shouting := a.Analyze(email.Message{
		Subject: "hey",
		Body:    "WHERE IS MY ORDER RIGHT NOW",
	})
	if shouting.Label != ToneAggressive || !shouting.Escalate {
		t.Errorf("shouting: label=%s escalate=%v", shouting.Label, shouting.Escalate)
	}

	exclaim := a.Analyze(email.Message{
		Subject: "hey",
		Body:    "answer me!!!! now!!",
	})
	if !exclaim.Escalate {
		t.Errorf("exclamation marks should escalate, got %s", exclaim.Label)
	}

	positive := a.Analyze(email.Message{
		Subject: "Thanks",
		Body:    "Thank you so much, this was excellent work, really appreciate it.",
	})
	if positive.Label != TonePositive || positive.Escalate {
		t.Errorf("positive: label=%s escalate=%v", positive.Label, positive.Escalate)
	}

	neutral := a.Analyze(email.Message{
		Subject: "Agenda",
		Body:    "The agenda for next month is attached.",
	})
	if neutral.Label != ToneNeutral {
		t.Errorf("neutral: label=%s", neutral.Label)
	}
	if neutral.Escalate {
		t.Error("neutral must not escalate")
	}
}

func TestSentimentConfidenceCap(t *testing.T) {
	a := NewSentimentAnalyzer()
	body := strings.Repeat("thank you, this is great, excellent, wonderful, amazing, fantastic. ", 3)
	got := a.Analyze(email.Message{Subject: "wow", Body: body})
	if got.Confidence > 0.95 {
		t.Errorf("confidence not capped: %f", got.Confidence)
	}
}
