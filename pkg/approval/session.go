package approval

type State string

const (
	StateIdle                 State = "IDLE"
	StateFocused              State = "FOCUSED"
	StateAwaitingModification State = "AWAITING_MODIFICATION_TEXT"
)

// Session is one operator's conversational state. It holds only the id
// of the focused draft, never the draft itself; the draft is re-resolved
// through the store on every use.
type Session struct {
	Id             string
	State          State
	FocusedDraftId string
}

func NewSession(id string) *Session {
	return &Session{Id: id, State: StateIdle}
}

// Reset returns the session to idle after a terminal disposition or a
// session-ending error.
func (s *Session) Reset() {
	s.State = StateIdle
	s.FocusedDraftId = ""
}

// SessionRepository stores operator sessions. A missing session is not
// an error; the machine creates one lazily.
type SessionRepository interface {
	Get(id string) (*Session, bool)
	Save(session *Session)
	Delete(id string)
}
