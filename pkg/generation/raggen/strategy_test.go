package raggen

import (
	"context"
	"errors"
	"testing"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/generation/llmgen"
	"email-responder-be/pkg/llm"
	"email-responder-be/pkg/retrieval"
)

type stubRetriever struct {
	snippets  []retrieval.Snippet
	err       error
	lastLimit int
}

func (r *stubRetriever) Search(ctx context.Context, query, intent string, limit int) ([]retrieval.Snippet, error) {
	r.lastLimit = limit
	return r.snippets, r.err
}

func (r *stubRetriever) CoveredIntents() []string {
	return []string{classify.IntentAcademic, classify.IntentInternship, classify.IntentSupport}
}

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

func testMessage() email.Message {
	return email.Message{Id: "msg-1", Sender: "a@uni.edu", Subject: "Office hours", Body: "When are your office hours?"}
}

var neutral = classify.SentimentSignal{Signal: classify.Signal{Label: classify.ToneNeutral, Confidence: 0.70}}

func TestAppliesOnlyToCoveredIntents(t *testing.T) {
	strat := NewStrategy(&stubRetriever{}, llmgen.NewStrategy(nil, "Sam"), 0)

	if !strat.Applies(classify.IntentAcademic) {
		t.Error("academic should be covered")
	}
	if strat.Applies(classify.IntentMeeting) {
		t.Error("meeting should not be covered")
	}
	if strat.Applies(classify.IntentSpam) {
		t.Error("spam should not be covered")
	}
}

func TestGenerateGroundedDraft(t *testing.T) {
	retriever := &stubRetriever{snippets: []retrieval.Snippet{
		{Content: "Office hours are Tuesdays 2-4pm.", Score: 0.92, Intent: classify.IntentAcademic},
		{Content: "Room 301, Science Building.", Score: 0.81, Intent: classify.IntentAcademic},
	}}
	completer := llmgen.NewStrategy(&stubProvider{reply: "Hello,\n\nMy office hours are Tuesdays 2-4pm in Room 301.\n\nBest,\nSam"}, "Sam")
	strat := NewStrategy(retriever, completer, 0)

	res, err := strat.Generate(context.Background(), testMessage(),
		classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutral)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Method != generation.MethodRAGLLM {
		t.Errorf("method = %q, want %q", res.Method, generation.MethodRAGLLM)
	}
	want := 0.70 + 0.25*0.92
	if res.Confidence != want {
		t.Errorf("confidence = %v, want %v", res.Confidence, want)
	}
	if res.Confidence <= generation.DefaultRAGAcceptThreshold {
		t.Error("well-grounded draft should clear the acceptance threshold")
	}
}

func TestSnippetLimitReachesRetriever(t *testing.T) {
	retriever := &stubRetriever{}
	strat := NewStrategy(retriever, llmgen.NewStrategy(&stubProvider{reply: "x"}, "Sam"), 7)

	if _, err := strat.Generate(context.Background(), testMessage(),
		classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutral); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if retriever.lastLimit != 7 {
		t.Errorf("retriever limit = %d, want the configured 7", retriever.lastLimit)
	}

	// Non-positive limits fall back to the default.
	strat = NewStrategy(retriever, llmgen.NewStrategy(&stubProvider{reply: "x"}, "Sam"), 0)
	if _, err := strat.Generate(context.Background(), testMessage(),
		classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutral); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if retriever.lastLimit != defaultSnippetLimit {
		t.Errorf("retriever limit = %d, want the default %d", retriever.lastLimit, defaultSnippetLimit)
	}
}

func TestGenerateEmptyRetrievalPasses(t *testing.T) {
	strat := NewStrategy(&stubRetriever{}, llmgen.NewStrategy(&stubProvider{reply: "x"}, "Sam"), 0)

	res, err := strat.Generate(context.Background(), testMessage(),
		classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutral)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res != nil {
		t.Errorf("empty retrieval should yield no result, got %+v", res)
	}
}

func TestGenerateRetrievalErrorPropagates(t *testing.T) {
	strat := NewStrategy(&stubRetriever{err: errors.New("db down")}, llmgen.NewStrategy(&stubProvider{reply: "x"}, "Sam"), 0)

	if _, err := strat.Generate(context.Background(), testMessage(),
		classify.Signal{Label: classify.IntentAcademic}, classify.Signal{Label: classify.UrgencyLow}, neutral); err == nil {
		t.Fatal("expected retrieval error")
	}
}

func TestConfidenceIsCapped(t *testing.T) {
	if got := confidence(1.5); got != maxConfidence {
		t.Errorf("confidence(1.5) = %v, want %v", got, maxConfidence)
	}
}
