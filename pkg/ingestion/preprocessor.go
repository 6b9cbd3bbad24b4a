package ingestion

import (
	"regexp"
	"strings"

	"email-responder-be/pkg/email"
)

// Cleaned carries the original message plus the normalized text the
// classifiers consume.
type Cleaned struct {
	Email          email.Message
	CleanedSubject string
	CleanedBody    string
	CombinedText   string
	WordCount      int
}

var (
	signaturePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)--\s*\n.*`),
		regexp.MustCompile(`(?is)Sent from my [\w\s]+`),
		regexp.MustCompile(`(?is)(Best regards|Sincerely|Thanks|Cheers|Regards),?\s*\n.*`),
		regexp.MustCompile(`_{3,}`),
	}

	disclaimerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)This email and any attachments.*confidential`),
		regexp.MustCompile(`(?is)CONFIDENTIALITY NOTICE:.*`),
		regexp.MustCompile(`(?i)Please consider the environment before printing`),
	}

	quoteLine       = regexp.MustCompile(`^>+\s*`)
	wroteLine       = regexp.MustCompile(`(?i)^On .* wrote:$`)
	forwardedHeader = regexp.MustCompile(`^(From|Sent|To|Subject):`)

	subjectPrefix = regexp.MustCompile(`(?i)^(Re|Fwd|Fw):\s*`)
	multiSpace    = regexp.MustCompile(` {2,}`)
	multiNewline  = regexp.MustCompile(`\n{3,}`)
	anyWhitespace = regexp.MustCompile(`\s+`)
)

// Preprocessor strips signatures, quoted replies, and disclaimers so
// the classifiers see only what the sender actually wrote.
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

func (p *Preprocessor) Preprocess(msg email.Message) Cleaned {
	body := multiNewline.ReplaceAllString(strings.TrimSpace(msg.Body), "\n\n")
	body = removeSignature(body)
	body = removeQuotedReplies(body)
	body = removeDisclaimers(body)
	body = normalizeWhitespace(body)

	subject := cleanSubject(msg.Subject)
	combined := strings.TrimSpace(subject + " " + body)

	return Cleaned{
		Email:          msg,
		CleanedSubject: subject,
		CleanedBody:    body,
		CombinedText:   combined,
		WordCount:      len(strings.Fields(combined)),
	}
}

// removeSignature cuts the text at the earliest signature marker.
func removeSignature(text string) string {
	cut := -1
	for _, pattern := range signaturePatterns {
		if loc := pattern.FindStringIndex(text); loc != nil && (cut == -1 || loc[0] < cut) {
			cut = loc[0]
		}
	}
	if cut == -1 {
		return text
	}
	return strings.TrimSpace(text[:cut])
}

// removeQuotedReplies drops quoted lines and forwarded headers. The
// quote flag resets on a blank line so interleaved replies survive.
func removeQuotedReplies(text string) string {
	var kept []string
	inQuote := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case quoteLine.MatchString(line), wroteLine.MatchString(line), forwardedHeader.MatchString(line):
			inQuote = true
			continue
		}
		if !inQuote {
			kept = append(kept, line)
		}
		if strings.TrimSpace(line) == "" {
			inQuote = false
		}
	}
	return strings.Join(kept, "\n")
}

func removeDisclaimers(text string) string {
	for _, pattern := range disclaimerPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func normalizeWhitespace(text string) string {
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func cleanSubject(subject string) string {
	for subjectPrefix.MatchString(subject) {
		subject = subjectPrefix.ReplaceAllString(subject, "")
	}
	return strings.TrimSpace(anyWhitespace.ReplaceAllString(subject, " "))
}
