package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
)

type stubStrategy struct {
	name    string
	applies bool
	result  *Result
	err     error
	panics  bool
	calls   int
}

func (s *stubStrategy) Name() string                 { return s.name }
func (s *stubStrategy) Applies(intentLabel string) bool { return s.applies }
func (s *stubStrategy) Generate(ctx context.Context, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) (*Result, error) {
	s.calls++
	if s.panics {
		panic("strategy blew up")
	}
	return s.result, s.err
}

func testMessage() email.Message {
	return email.Message{
		Id:      "msg-1",
		Sender:  "alice@example.com",
		Subject: "Question about the course",
		Body:    "Could you share the syllabus?",
	}
}

func neutralSentiment() classify.SentimentSignal {
	return classify.SentimentSignal{Signal: classify.Signal{Label: classify.ToneNeutral, Confidence: 0.70}}
}

func TestOrchestratorEscalationShortCircuits(t *testing.T) {
	strat := &stubStrategy{name: "template", applies: true, result: &Result{Draft: "hi", Method: MethodTemplate, Confidence: 0.85}}
	orch := NewOrchestrator([]StrategyEntry{{Strategy: strat}}, "Sam", nil)

	sentiment := classify.SentimentSignal{
		Signal:   classify.Signal{Label: classify.ToneAggressive, Confidence: 0.90},
		Escalate: true,
	}
	res := orch.Generate(context.Background(), testMessage(), classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, sentiment)

	if !res.Escalate {
		t.Fatal("expected escalated result")
	}
	if res.Method != MethodEscalated {
		t.Errorf("method = %q, want %q", res.Method, MethodEscalated)
	}
	if res.Draft != "" {
		t.Errorf("escalated result must carry no draft, got %q", res.Draft)
	}
	if strat.calls != 0 {
		t.Errorf("strategy was invoked %d times, want 0", strat.calls)
	}
}

func TestOrchestratorPicksFirstAcceptedResult(t *testing.T) {
	skipped := &stubStrategy{name: "rag", applies: false}
	lowConf := &stubStrategy{name: "llm", applies: true, result: &Result{Draft: "weak", Method: MethodLLM, Confidence: 0.40}}
	winner := &stubStrategy{name: "template", applies: true, result: &Result{Draft: "strong", Method: MethodTemplate, Confidence: 0.85}}

	orch := NewOrchestrator([]StrategyEntry{
		{Strategy: skipped, AcceptThreshold: DefaultRAGAcceptThreshold},
		{Strategy: lowConf, AcceptThreshold: DefaultLLMAcceptThreshold},
		{Strategy: winner},
	}, "Sam", nil)

	res := orch.Generate(context.Background(), testMessage(), classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutralSentiment())

	if res.Draft != "strong" || res.Method != MethodTemplate {
		t.Errorf("got %+v, want winner result", res)
	}
	if skipped.calls != 0 {
		t.Error("non-applicable strategy should not be invoked")
	}
	if lowConf.calls != 1 {
		t.Error("low-confidence strategy should have been attempted once")
	}
}

func TestOrchestratorSurvivesStrategyErrors(t *testing.T) {
	failing := &stubStrategy{name: "rag", applies: true, err: errors.New("retrieval unavailable")}
	panicking := &stubStrategy{name: "llm", applies: true, panics: true}
	winner := &stubStrategy{name: "template", applies: true, result: &Result{Draft: "ok", Method: MethodTemplate, Confidence: 0.85}}

	orch := NewOrchestrator([]StrategyEntry{
		{Strategy: failing, AcceptThreshold: DefaultRAGAcceptThreshold},
		{Strategy: panicking, AcceptThreshold: DefaultLLMAcceptThreshold},
		{Strategy: winner},
	}, "Sam", nil)

	res := orch.Generate(context.Background(), testMessage(), classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutralSentiment())

	if res.Draft != "ok" {
		t.Errorf("draft = %q, want %q", res.Draft, "ok")
	}
}

func TestOrchestratorFallbackIsTotal(t *testing.T) {
	orch := NewOrchestrator(nil, "Sam", nil)

	res := orch.Generate(context.Background(), testMessage(), classify.Signal{Label: classify.IntentGeneral}, classify.Signal{Label: classify.UrgencyLow}, neutralSentiment())

	if res.Method != MethodFallback {
		t.Errorf("method = %q, want %q", res.Method, MethodFallback)
	}
	if res.Confidence != 0.60 {
		t.Errorf("confidence = %v, want 0.60", res.Confidence)
	}
	if !strings.Contains(res.Draft, "Sam") {
		t.Errorf("fallback draft should be signed by the user, got %q", res.Draft)
	}
	if !strings.HasPrefix(res.Draft, "Hello,") {
		t.Errorf("unexpected fallback draft: %q", res.Draft)
	}
}

func TestOrchestratorNilResultMeansPass(t *testing.T) {
	passing := &stubStrategy{name: "rag", applies: true, result: nil}
	winner := &stubStrategy{name: "template", applies: true, result: &Result{Draft: "ok", Method: MethodTemplate, Confidence: 0.85}}

	orch := NewOrchestrator([]StrategyEntry{
		{Strategy: passing, AcceptThreshold: DefaultRAGAcceptThreshold},
		{Strategy: winner},
	}, "Sam", nil)

	res := orch.Generate(context.Background(), testMessage(), classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutralSentiment())

	if res.Draft != "ok" {
		t.Errorf("draft = %q, want %q", res.Draft, "ok")
	}
}
