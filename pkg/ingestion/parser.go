package ingestion

import (
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"email-responder-be/pkg/email"
)

// Parser turns raw RFC 5322 messages into the structured form the
// pipeline consumes. Only the plain-text body is kept; attachments and
// alternative parts are out of scope for triage.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads one raw message. When id is empty a fresh UUID is
// assigned so the message can be tracked through the draft queue.
func (p *Parser) Parse(raw string, id string) (email.Message, error) {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return email.Message{}, fmt.Errorf("failed to parse message: %w", err)
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return email.Message{}, fmt.Errorf("failed to read message body: %w", err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	return email.Message{
		Id:      id,
		Sender:  parseAddress(msg.Header.Get("From")),
		Subject: msg.Header.Get("Subject"),
		Body:    strings.TrimSpace(string(body)),
	}, nil
}

// parseAddress extracts the bare address from "Name <addr>" headers,
// falling back to the raw header when it does not parse.
func parseAddress(header string) string {
	if header == "" {
		return ""
	}
	addr, err := mail.ParseAddress(header)
	if err != nil {
		return strings.TrimSpace(header)
	}
	return addr.Address
}
