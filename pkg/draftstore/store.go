package draftstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"email-responder-be/pkg/email"
)

// Record is one pending draft awaiting operator disposition.
type Record struct {
	MessageId string        `json:"message_id"`
	Text      string        `json:"text"`
	Email     email.Message `json:"email"`
}

// Store persists pending drafts as a single JSON snapshot on disk. Every
// mutation reloads the full snapshot, applies the change, and writes the
// full snapshot back, so the on-disk file is always complete and
// consistent. The store mutex serializes the reload-mutate-persist cycle.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Put inserts or overwrites the record for its message id.
func (s *Store) Put(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.load()
	if err != nil {
		return err
	}
	drafts[record.MessageId] = record
	return s.persist(drafts)
}

// Get returns the record for id, or false when no draft is pending.
func (s *Store) Get(id string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.load()
	if err != nil {
		return Record{}, false, err
	}
	record, ok := drafts[id]
	return record, ok, nil
}

// UpdateText replaces the draft body for id. Returns false without error
// when the draft no longer exists.
func (s *Store) UpdateText(id, newText string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.load()
	if err != nil {
		return false, err
	}
	record, ok := drafts[id]
	if !ok {
		return false, nil
	}
	record.Text = newText
	drafts[id] = record
	return true, s.persist(drafts)
}

// Remove deletes the draft for id, reporting whether it was present.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.load()
	if err != nil {
		return false, err
	}
	if _, ok := drafts[id]; !ok {
		return false, nil
	}
	delete(drafts, id)
	return true, s.persist(drafts)
}

// ListIds returns the ids of all pending drafts in no particular order.
func (s *Store) ListIds() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(drafts))
	for id := range drafts {
		ids = append(ids, id)
	}
	return ids, nil
}

// load reads the current snapshot. A missing file is an empty store.
func (s *Store) load() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Record), nil
		}
		return nil, fmt.Errorf("failed to read draft snapshot: %w", err)
	}

	drafts := make(map[string]Record)
	if len(data) == 0 {
		return drafts, nil
	}
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("corrupt draft snapshot at %s: %w", s.path, err)
	}
	return drafts, nil
}

func (s *Store) persist(drafts map[string]Record) error {
	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft snapshot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft snapshot: %w", err)
	}
	return nil
}
