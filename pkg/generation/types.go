package generation

import (
	"context"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
)

// Method identifies which strategy produced a result.
type Method string

const (
	MethodTemplate         Method = "template"
	MethodLLM              Method = "llm"
	MethodRAGLLM           Method = "rag_llm"
	MethodLLMFallback      Method = "llm_fallback"
	MethodTemplateFallback Method = "template_fallback"
	MethodFallback         Method = "fallback"
	MethodEscalated        Method = "escalated"
)

// Result is the outcome of one generation attempt or of the whole
// orchestration. Draft is empty iff Method is MethodEscalated.
type Result struct {
	Draft      string  `json:"draft"`
	Method     Method  `json:"method"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
	Escalate   bool    `json:"escalate,omitempty"`
}

// Strategy is one generation approach. Returning (nil, nil) means "no usable
// result, try the next strategy". Errors are recovered by the orchestrator
// and treated the same way.
type Strategy interface {
	Name() string
	Applies(intentLabel string) bool
	Generate(ctx context.Context, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) (*Result, error)
}
