package email

// Message is a single inbound email after parsing. Identity is the externally
// assigned Id, unique within a processing batch. Immutable once classified.
type Message struct {
	Id      string `json:"id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CombinedText returns the text used as classifier and retrieval input.
func (m Message) CombinedText() string {
	if m.Subject == "" {
		return m.Body
	}
	return m.Subject + " " + m.Body
}
