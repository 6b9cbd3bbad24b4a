package raggen

import (
	"context"
	"fmt"
	"strings"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/generation/llmgen"
	"email-responder-be/pkg/retrieval"
)

const (
	defaultSnippetLimit = 3

	baseConfidence = 0.70
	scoreWeight    = 0.25
	maxConfidence  = 0.95
)

// Strategy grounds LLM replies in knowledge snippets. It only answers
// intents the knowledge base covers and passes when retrieval comes back
// empty, letting the plain LLM strategy take over.
type Strategy struct {
	retriever    retrieval.Retriever
	completer    *llmgen.Strategy
	snippetLimit int

	covered map[string]struct{}
}

// NewStrategy builds a retrieval-grounded strategy. A non-positive
// snippetLimit falls back to the default of 3.
func NewStrategy(retriever retrieval.Retriever, completer *llmgen.Strategy, snippetLimit int) *Strategy {
	if snippetLimit <= 0 {
		snippetLimit = defaultSnippetLimit
	}
	covered := make(map[string]struct{})
	for _, intent := range retriever.CoveredIntents() {
		covered[intent] = struct{}{}
	}
	return &Strategy{
		retriever:    retriever,
		completer:    completer,
		snippetLimit: snippetLimit,
		covered:      covered,
	}
}

func (s *Strategy) Name() string { return "rag" }

func (s *Strategy) Applies(intentLabel string) bool {
	_, ok := s.covered[intentLabel]
	return ok
}

func (s *Strategy) Generate(ctx context.Context, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) (*generation.Result, error) {
	snippets, err := s.retriever.Search(ctx, msg.CombinedText(), intent.Label, s.snippetLimit)
	if err != nil {
		return nil, fmt.Errorf("snippet search failed: %w", err)
	}
	if len(snippets) == 0 {
		return nil, nil
	}

	draft, err := s.completer.Complete(ctx, msg, intent, urgency, contextBlock(snippets))
	if err != nil {
		return nil, err
	}

	return &generation.Result{
		Draft:      draft,
		Method:     generation.MethodRAGLLM,
		Confidence: confidence(snippets[0].Score),
		Reason:     fmt.Sprintf("grounded on %d snippet(s)", len(snippets)),
	}, nil
}

func contextBlock(snippets []retrieval.Snippet) string {
	lines := make([]string, len(snippets))
	for i, snippet := range snippets {
		lines[i] = fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(snippet.Content))
	}
	return strings.Join(lines, "\n")
}

// confidence scales with the top snippet score so weakly grounded drafts
// fall below the acceptance threshold and defer to later strategies.
func confidence(topScore float64) float64 {
	c := baseConfidence + scoreWeight*topScore
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}
