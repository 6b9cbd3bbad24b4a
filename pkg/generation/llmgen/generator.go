package llmgen

import (
	"context"
	"fmt"
	"strings"

	"email-responder-be/internal/constant"
	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/generation/template"
	"email-responder-be/pkg/llm"
)

const (
	llmConfidence      = 0.80
	fallbackConfidence = 0.65

	replyTemperature = 0.4
)

// Strategy drafts replies through an LLM backend. A nil provider is a
// valid configuration: the strategy degrades to a rule-based draft with
// lowered confidence instead of failing.
type Strategy struct {
	provider llm.LLMProvider
	userName string
}

func NewStrategy(provider llm.LLMProvider, userName string) *Strategy {
	return &Strategy{provider: provider, userName: userName}
}

func (s *Strategy) Name() string { return "llm" }

func (s *Strategy) Applies(intentLabel string) bool { return true }

func (s *Strategy) Generate(ctx context.Context, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) (*generation.Result, error) {
	if s.provider == nil {
		return &generation.Result{
			Draft:      s.ruleBasedDraft(msg, intent.Label, urgency.Label),
			Method:     generation.MethodLLMFallback,
			Confidence: fallbackConfidence,
			Reason:     "no llm backend configured",
		}, nil
	}

	draft, err := s.Complete(ctx, msg, intent, urgency, "")
	if err != nil {
		return &generation.Result{
			Draft:      s.ruleBasedDraft(msg, intent.Label, urgency.Label),
			Method:     generation.MethodLLMFallback,
			Confidence: fallbackConfidence,
			Reason:     err.Error(),
		}, nil
	}

	return &generation.Result{
		Draft:      draft,
		Method:     generation.MethodLLM,
		Confidence: llmConfidence,
	}, nil
}

// Complete runs the reply prompt against the backend. contextBlock, when
// non-empty, is prepended as grounding material for retrieval-augmented
// callers.
func (s *Strategy) Complete(ctx context.Context, msg email.Message, intent, urgency classify.Signal, contextBlock string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("no llm backend configured")
	}

	userPrompt := fmt.Sprintf(constant.ReplyUserPromptTemplate,
		msg.Sender, msg.Subject, intent.Label, urgency.Label, msg.Body)
	if contextBlock != "" {
		userPrompt = fmt.Sprintf(constant.ReplyContextSection, s.userName, contextBlock) + userPrompt
	}

	history := []llm.Message{
		{Role: constant.LLMRoleSystem, Content: fmt.Sprintf(constant.ReplySystemPrompt, s.userName, s.userName)},
		{Role: constant.LLMRoleUser, Content: userPrompt},
	}

	raw, err := s.provider.Chat(ctx, history, llm.WithTemperature(replyTemperature))
	if err != nil {
		return "", fmt.Errorf("llm chat failed: %w", err)
	}

	draft := s.polish(raw)
	if draft == "" {
		return "", fmt.Errorf("llm returned an empty reply")
	}
	return draft, nil
}

// polish cleans a raw model completion: trims whitespace, drops a
// leading "Here is the reply:" style preamble some models prepend, and
// appends a sign-off when the model forgot one.
func (s *Strategy) polish(raw string) string {
	draft := strings.TrimSpace(raw)
	if draft == "" {
		return ""
	}

	if idx := strings.Index(draft, "\n"); idx > 0 {
		first := strings.ToLower(strings.TrimSpace(draft[:idx]))
		if strings.HasSuffix(first, ":") && (strings.Contains(first, "reply") || strings.Contains(first, "draft")) {
			draft = strings.TrimSpace(draft[idx+1:])
		}
	}
	if draft == "" {
		return ""
	}

	if !strings.Contains(draft, s.userName) {
		draft += "\n\nBest regards,\n" + s.userName
	}
	return draft
}

// ruleBasedDraft approximates an LLM reply from the classified signals
// alone. Used whenever the backend is missing or unreachable.
func (s *Strategy) ruleBasedDraft(msg email.Message, intentLabel, urgencyLabel string) string {
	greeting := fmt.Sprintf("Hello %s,", template.SenderName(msg.Sender))

	var body string
	switch intentLabel {
	case classify.IntentAcademic:
		body = "Thank you for your email about " + subjectOr(msg, "the course") + ". I have received your message and will get back to you with the requested information."
	case classify.IntentInternship:
		body = "Thank you for reaching out about this opportunity. I am very interested and will follow up with the requested details shortly."
	case classify.IntentMeeting:
		body = "Thank you for your message. I will check my availability and confirm a time with you soon."
	case classify.IntentSupport:
		body = "Thank you for reporting this. I will look into the issue and get back to you with a solution."
	default:
		body = "Thank you for your email regarding " + subjectOr(msg, "your message") + ". I will respond shortly."
	}

	if urgencyLabel == classify.UrgencyCritical || urgencyLabel == classify.UrgencyHigh {
		body += " I understand this is time-sensitive and will prioritize it."
	}

	return greeting + "\n\n" + body + "\n\nBest regards,\n" + s.userName
}

func subjectOr(msg email.Message, fallback string) string {
	if strings.TrimSpace(msg.Subject) == "" {
		return fallback
	}
	return msg.Subject
}
