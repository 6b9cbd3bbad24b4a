package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"email-responder-be/pkg/approval"
)

// SessionRepository keeps approval sessions in process memory with a
// TTL, so an abandoned operator conversation expires back to idle.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *approval.Session) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*approval.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*approval.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
