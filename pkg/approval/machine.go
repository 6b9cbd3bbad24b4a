package approval

import (
	"fmt"
	"strings"

	"email-responder-be/pkg/draftstore"
)

// DraftStore is the slice of the draft store the machine needs.
type DraftStore interface {
	Get(id string) (draftstore.Record, bool, error)
	UpdateText(id, newText string) (bool, error)
	Remove(id string) (bool, error)
}

type OutcomeKind string

const (
	OutcomeNone      OutcomeKind = ""
	OutcomeFocused   OutcomeKind = "focused"
	OutcomeSent      OutcomeKind = "sent"
	OutcomeDiscarded OutcomeKind = "discarded"
	OutcomeModified  OutcomeKind = "modified"
)

// Reply is what the machine answers back to the operator, plus the
// disposition (if any) for downstream event publishing.
type Reply struct {
	Text    string
	Outcome OutcomeKind
	DraftId string
}

const helpText = "Commands: focus a draft by id, then reply 'send', 'modify', or 'ignore'."

var (
	sendWords    = map[string]bool{"send": true, "approve": true, "yes": true}
	modifyWords  = map[string]bool{"modify": true, "edit": true, "change": true}
	discardWords = map[string]bool{"ignore": true, "skip": true, "no": true}
)

// Machine drives per-operator approval conversations. It is re-entered
// once per operator message; all durable state lives in the session
// repository and the draft store.
type Machine struct {
	sessions SessionRepository
	drafts   DraftStore
}

func NewMachine(sessions SessionRepository, drafts DraftStore) *Machine {
	return &Machine{sessions: sessions, drafts: drafts}
}

// Focus puts a draft in view for the operator. Selecting a draft that
// does not exist leaves the session untouched.
func (m *Machine) Focus(sessionId, draftId string) (Reply, error) {
	session := m.session(sessionId)

	record, ok, err := m.drafts.Get(draftId)
	if err != nil {
		session.Reset()
		m.sessions.Save(session)
		return Reply{}, fmt.Errorf("draft lookup failed: %w", err)
	}
	if !ok {
		return Reply{Text: fmt.Sprintf("No draft found for id %s.", draftId)}, nil
	}

	session.State = StateFocused
	session.FocusedDraftId = draftId
	m.sessions.Save(session)

	text := fmt.Sprintf("Draft for %s (%s):\n\n%s\n\nReply with 'send', 'modify', or 'ignore'.",
		record.Email.Sender, record.Email.Subject, record.Text)
	return Reply{Text: text, Outcome: OutcomeFocused, DraftId: draftId}, nil
}

// AwaitingText reports whether the operator's next message will be
// consumed verbatim as replacement draft text. Callers that layer extra
// commands on top of the machine must check this before interpreting
// input themselves.
func (m *Machine) AwaitingText(sessionId string) bool {
	session, ok := m.sessions.Get(sessionId)
	return ok && session.State == StateAwaitingModification
}

// Handle interprets one operator message against the current session
// state.
func (m *Machine) Handle(sessionId, input string) (Reply, error) {
	session := m.session(sessionId)

	if session.State == StateAwaitingModification {
		return m.applyModification(session, input)
	}

	word := strings.ToLower(strings.TrimSpace(input))

	if session.State != StateFocused {
		return Reply{Text: helpText}, nil
	}

	switch {
	case sendWords[word]:
		return m.dispose(session, OutcomeSent, "Draft approved and sent.")
	case discardWords[word]:
		return m.dispose(session, OutcomeDiscarded, "Draft discarded.")
	case modifyWords[word]:
		session.State = StateAwaitingModification
		m.sessions.Save(session)
		return Reply{Text: "Send the new draft text."}, nil
	default:
		return Reply{Text: helpText}, nil
	}
}

// dispose removes the focused draft and resets the session. The draft
// may have vanished concurrently; that is reported, not raised.
func (m *Machine) dispose(session *Session, outcome OutcomeKind, success string) (Reply, error) {
	draftId := session.FocusedDraftId
	session.Reset()
	m.sessions.Save(session)

	removed, err := m.drafts.Remove(draftId)
	if err != nil {
		return Reply{}, fmt.Errorf("draft removal failed: %w", err)
	}
	if !removed {
		return Reply{Text: fmt.Sprintf("Draft %s no longer exists.", draftId)}, nil
	}
	return Reply{Text: success, Outcome: outcome, DraftId: draftId}, nil
}

func (m *Machine) applyModification(session *Session, newText string) (Reply, error) {
	draftId := session.FocusedDraftId

	updated, err := m.drafts.UpdateText(draftId, newText)
	if err != nil {
		session.Reset()
		m.sessions.Save(session)
		return Reply{}, fmt.Errorf("draft update failed: %w", err)
	}
	if !updated {
		session.Reset()
		m.sessions.Save(session)
		return Reply{Text: fmt.Sprintf("Draft %s no longer exists.", draftId)}, nil
	}

	session.State = StateFocused
	m.sessions.Save(session)
	return Reply{
		Text:    "Draft updated.\n\nReply with 'send', 'modify', or 'ignore'.",
		Outcome: OutcomeModified,
		DraftId: draftId,
	}, nil
}

func (m *Machine) session(id string) *Session {
	if session, ok := m.sessions.Get(id); ok {
		return session
	}
	session := NewSession(id)
	m.sessions.Save(session)
	return session
}
