package template

import (
	"context"
	"regexp"
	"strings"
	texttemplate "text/template"

	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/generation"
)

const (
	templateConfidence     = 0.85
	renderFailConfidence   = 0.70
	internalFailConfidence = 0.65
)

// templateContext is the data passed to every reply template.
type templateContext struct {
	SenderName  string
	Subject     string
	Urgency     string
	UserName    string
	HasDeadline bool
	Deadline    string
}

var replyTemplates = map[string]string{
	classify.IntentAcademic: `Dear {{.SenderName}},

Thank you for your email regarding {{.Subject}}.

{{if or (eq .Urgency "critical") (eq .Urgency "high")}}I have received your message and will respond with the requested information as soon as possible.{{else}}I have received your message and will get back to you shortly with the requested information.{{end}}
{{if .HasDeadline}}
I understand the deadline is {{.Deadline}}, and I will ensure to respond in time.
{{end}}
Best regards,
{{.UserName}}`,

	classify.IntentInternship: `Hello {{.SenderName}},

Thank you for reaching out regarding {{.Subject}}.

I appreciate the opportunity and am very interested. I will respond with the requested information shortly.

Kind regards,
{{.UserName}}`,

	classify.IntentMeeting: `Hello {{.SenderName}},

Thank you for your message about {{.Subject}}.

{{if or (eq .Urgency "critical") (eq .Urgency "high")}}I am available at the proposed time and look forward to our meeting.{{else}}I would be happy to meet. Please let me know what times work best for you, and I will confirm my availability.{{end}}

Best,
{{.UserName}}`,

	classify.IntentSupport: `Hello,

Thank you for reaching out regarding {{.Subject}}.

I have received your request and will look into this matter. I will get back to you {{if eq .Urgency "critical"}}as soon as possible{{else if eq .Urgency "high"}}within 24 hours{{else}}within 2-3 business days{{end}} with a solution.

Best regards,
{{.UserName}}`,

	classify.IntentGeneral: `Hello {{.SenderName}},

Thank you for your email regarding {{.Subject}}.

I have received your message and will respond shortly.

Best regards,
{{.UserName}}`,
}

var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)deadline\s+(?:is\s+)?(?:on\s+)?(\w+\s+\d+)`),
	regexp.MustCompile(`(?i)due\s+(?:on\s+)?(\w+\s+\d+)`),
	regexp.MustCompile(`(?i)by\s+(\w+\s+\d+)`),
}

// Engine renders deterministic per-intent replies. It always produces a
// result: unknown intents use the general template, and render failures
// degrade to a fixed draft with lowered confidence.
type Engine struct {
	templates map[string]*texttemplate.Template
	userName  string
}

func NewEngine(userName string) (*Engine, error) {
	templates := make(map[string]*texttemplate.Template, len(replyTemplates))
	for intent, body := range replyTemplates {
		tmpl, err := texttemplate.New(intent).Parse(body)
		if err != nil {
			return nil, err
		}
		templates[intent] = tmpl
	}
	return &Engine{templates: templates, userName: userName}, nil
}

// Render produces the templated reply for an intent and urgency level.
func (e *Engine) Render(msg email.Message, intentLabel, urgencyLabel string) *generation.Result {
	tmpl, ok := e.templates[intentLabel]
	if !ok {
		tmpl = e.templates[classify.IntentGeneral]
	}

	subject := msg.Subject
	if subject == "" {
		subject = "your message"
	}

	deadline := extractDeadline(msg.Body)
	data := templateContext{
		SenderName:  SenderName(msg.Sender),
		Subject:     subject,
		Urgency:     urgencyLabel,
		UserName:    e.userName,
		HasDeadline: deadline != "",
		Deadline:    deadline,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return &generation.Result{
			Draft:      generation.FallbackDraft(e.userName),
			Method:     generation.MethodTemplateFallback,
			Confidence: renderFailConfidence,
			Reason:     err.Error(),
		}
	}

	draft := collapseBlankLines(strings.TrimSpace(sb.String()))
	return &generation.Result{
		Draft:      draft,
		Method:     generation.MethodTemplate,
		Confidence: templateConfidence,
	}
}

// Strategy adapts the engine to the orchestrator. Applies to every intent
// and is the authoritative fallback in the chain.
type Strategy struct {
	engine   *Engine
	userName string
}

func NewStrategy(userName string) *Strategy {
	engine, err := NewEngine(userName)
	if err != nil {
		// Templates are compile-time constants; a parse failure is a
		// programming error surfaced on first use instead.
		engine = nil
	}
	return &Strategy{engine: engine, userName: userName}
}

func (s *Strategy) Name() string { return "template" }

func (s *Strategy) Applies(intentLabel string) bool { return true }

func (s *Strategy) Generate(ctx context.Context, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) (*generation.Result, error) {
	if s.engine == nil {
		return &generation.Result{
			Draft:      generation.FallbackDraft(s.userName),
			Method:     generation.MethodTemplateFallback,
			Confidence: internalFailConfidence,
			Reason:     "template engine unavailable",
		}, nil
	}
	return s.engine.Render(msg, intent.Label, urgency.Label), nil
}

// SenderName derives a display name from the address local part:
// "john.doe@example.com" becomes "John Doe".
func SenderName(address string) string {
	if address == "" {
		return "there"
	}
	local := address
	if at := strings.Index(address, "@"); at >= 0 {
		local = address[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ").Replace(local)

	words := strings.Fields(local)
	if len(words) == 0 {
		return "there"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func extractDeadline(body string) string {
	for _, pattern := range deadlinePatterns {
		if m := pattern.FindStringSubmatch(body); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

var blankLines = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(text string) string {
	return blankLines.ReplaceAllString(text, "\n\n")
}
