package llmgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/llm"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.reply, p.err
}

var (
	testIntent    = classify.Signal{Label: classify.IntentAcademic, Confidence: 0.75}
	testUrgency   = classify.Signal{Label: classify.UrgencyHigh, Confidence: 0.80}
	testSentiment = classify.SentimentSignal{Signal: classify.Signal{Label: classify.ToneNeutral, Confidence: 0.70}}
)

func testMessage() email.Message {
	return email.Message{
		Id:      "msg-1",
		Sender:  "prof.jones@uni.edu",
		Subject: "Exam schedule",
		Body:    "When is the final exam?",
	}
}

func TestGenerateWithProvider(t *testing.T) {
	strat := NewStrategy(&stubProvider{reply: "  Dear Prof Jones,\n\nThe exam is on Friday.\n\nBest,\nSam  "}, "Sam")

	res, err := strat.Generate(context.Background(), testMessage(), testIntent, testUrgency, testSentiment)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Method != generation.MethodLLM {
		t.Errorf("method = %q, want %q", res.Method, generation.MethodLLM)
	}
	if res.Confidence != 0.80 {
		t.Errorf("confidence = %v, want 0.80", res.Confidence)
	}
	if strings.HasPrefix(res.Draft, " ") || strings.HasSuffix(res.Draft, " ") {
		t.Errorf("draft not trimmed: %q", res.Draft)
	}
}

func TestGeneratePolishesReply(t *testing.T) {
	strat := NewStrategy(&stubProvider{reply: "Here is the reply:\nDear Prof Jones,\n\nThe exam is on Friday."}, "Sam")

	res, err := strat.Generate(context.Background(), testMessage(), testIntent, testUrgency, testSentiment)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(res.Draft, "Here is the reply") {
		t.Errorf("preamble not stripped:\n%s", res.Draft)
	}
	if !strings.HasSuffix(res.Draft, "Sam") {
		t.Errorf("missing signature:\n%s", res.Draft)
	}
}

func TestGenerateWithoutProviderFallsBack(t *testing.T) {
	strat := NewStrategy(nil, "Sam")

	res, err := strat.Generate(context.Background(), testMessage(), testIntent, testUrgency, testSentiment)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Method != generation.MethodLLMFallback {
		t.Errorf("method = %q, want %q", res.Method, generation.MethodLLMFallback)
	}
	if res.Confidence != 0.65 {
		t.Errorf("confidence = %v, want 0.65", res.Confidence)
	}
	if !strings.Contains(res.Draft, "Prof Jones") {
		t.Errorf("fallback draft should greet the sender:\n%s", res.Draft)
	}
	if !strings.Contains(res.Draft, "time-sensitive") {
		t.Errorf("high urgency should be acknowledged:\n%s", res.Draft)
	}
	if !strings.HasSuffix(res.Draft, "Sam") {
		t.Errorf("missing signature:\n%s", res.Draft)
	}
}

func TestGenerateProviderErrorFallsBack(t *testing.T) {
	strat := NewStrategy(&stubProvider{err: errors.New("connection refused")}, "Sam")

	res, err := strat.Generate(context.Background(), testMessage(), testIntent, testUrgency, testSentiment)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Method != generation.MethodLLMFallback {
		t.Errorf("method = %q, want %q", res.Method, generation.MethodLLMFallback)
	}
	if !strings.Contains(res.Reason, "connection refused") {
		t.Errorf("reason should carry the backend error, got %q", res.Reason)
	}
}

func TestGenerateEmptyReplyFallsBack(t *testing.T) {
	strat := NewStrategy(&stubProvider{reply: "   "}, "Sam")

	res, err := strat.Generate(context.Background(), testMessage(), testIntent, testUrgency, testSentiment)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Method != generation.MethodLLMFallback {
		t.Errorf("method = %q, want %q", res.Method, generation.MethodLLMFallback)
	}
}
