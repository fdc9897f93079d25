package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hupe1980/numbridge/core"
)

// ErrNotFound is returned for handles that do not name a live session.
var ErrNotFound = errors.New("session not found")

// InMemoryStore is a volatile SessionStore storing sessions in a process
// local map keyed by uuid handles. It is safe for concurrent access; each
// session still serves one evaluation at a time.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
	newID    func() string
}

var _ core.SessionStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in‑memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session), newID: uuid.NewString}
}

// Create bootstraps a new session outside the lock and stores it under a
// fresh handle.
func (s *InMemoryStore) Create(newContext core.ContextFactory, optFns ...func(o *core.SessionOptions)) (*core.Session, error) {
	if newContext == nil {
		return nil, errors.New("session: nil context factory")
	}
	sess := core.NewSession(s.newID(), newContext, optFns...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; exists {
		return nil, fmt.Errorf("session: handle %s already in use", sess.ID)
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the live session for id.
func (s *InMemoryStore) Get(id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete discards the session for id.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
