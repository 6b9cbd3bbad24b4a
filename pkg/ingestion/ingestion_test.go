package ingestion

import (
	"strings"
	"testing"

	"email-responder-be/pkg/email"
)

const rawMessage = `From: Professor Smith <prof.smith@university.edu>
To: student@example.com
Subject: Assignment Deadline Extension
Date: Fri, 10 Jan 2026 10:30:00 +0100

Hi Student,

The deadline for the final project has been extended to next Friday.

Best regards,
Professor Smith
`

func TestParse(t *testing.T) {
	msg, err := NewParser().Parse(rawMessage, "msg-1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if msg.Id != "msg-1" {
		t.Errorf("id = %q", msg.Id)
	}
	if msg.Sender != "prof.smith@university.edu" {
		t.Errorf("sender = %q, want bare address", msg.Sender)
	}
	if msg.Subject != "Assignment Deadline Extension" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Body, "Hi Student,") {
		t.Errorf("body = %q", msg.Body)
	}
}

func TestParseAssignsIdWhenMissing(t *testing.T) {
	msg, err := NewParser().Parse(rawMessage, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.Id == "" {
		t.Error("expected a generated id")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := NewParser().Parse("not an email at all", ""); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPreprocessStripsSignature(t *testing.T) {
	msg := email.Message{
		Id:      "msg-1",
		Sender:  "prof@uni.edu",
		Subject: "Re: Exam",
		Body: `Hi,

When is the exam?

Best regards,
Professor Smith

--
Department of Computer Science`,
	}

	cleaned := NewPreprocessor().Preprocess(msg)

	if strings.Contains(cleaned.CleanedBody, "Department of Computer Science") {
		t.Errorf("signature survived:\n%s", cleaned.CleanedBody)
	}
	if strings.Contains(cleaned.CleanedBody, "Best regards") {
		t.Errorf("sign-off survived:\n%s", cleaned.CleanedBody)
	}
	if !strings.Contains(cleaned.CleanedBody, "When is the exam?") {
		t.Errorf("content lost:\n%s", cleaned.CleanedBody)
	}
}

func TestPreprocessStripsQuotedReply(t *testing.T) {
	msg := email.Message{
		Subject: "Meeting",
		Body: `Sounds good, see you then.

On Mon, Jan 5, 2026 John wrote:
> Can we meet Tuesday?
> I am free after 2pm.`,
	}

	cleaned := NewPreprocessor().Preprocess(msg)

	if strings.Contains(cleaned.CleanedBody, "Can we meet") {
		t.Errorf("quoted reply survived:\n%s", cleaned.CleanedBody)
	}
	if !strings.Contains(cleaned.CleanedBody, "Sounds good") {
		t.Errorf("own text lost:\n%s", cleaned.CleanedBody)
	}
}

func TestPreprocessCleansSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Re: Exam schedule", "Exam schedule"},
		{"Fwd: Re: Exam   schedule", "Exam schedule"},
		{"FW: hello", "hello"},
		{"Plain subject", "Plain subject"},
	}
	pre := NewPreprocessor()
	for _, tt := range tests {
		cleaned := pre.Preprocess(email.Message{Subject: tt.subject})
		if cleaned.CleanedSubject != tt.want {
			t.Errorf("subject %q cleaned to %q, want %q", tt.subject, cleaned.CleanedSubject, tt.want)
		}
	}
}

func TestPreprocessCombinedText(t *testing.T) {
	cleaned := NewPreprocessor().Preprocess(email.Message{
		Subject: "Re: Exam",
		Body:    "When   is it?",
	})

	if cleaned.CombinedText != "Exam When is it?" {
		t.Errorf("combined = %q", cleaned.CombinedText)
	}
	if cleaned.WordCount != 4 {
		t.Errorf("word count = %d, want 4", cleaned.WordCount)
	}
}

func TestPreprocessRemovesDisclaimer(t *testing.T) {
	cleaned := NewPreprocessor().Preprocess(email.Message{
		Subject: "Notice",
		Body: `Please see the attached report.

CONFIDENTIALITY NOTICE: This message is intended only for the addressee.`,
	})

	if strings.Contains(cleaned.CleanedBody, "CONFIDENTIALITY") {
		t.Errorf("disclaimer survived:\n%s", cleaned.CleanedBody)
	}
}
