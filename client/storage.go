package client

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Storage persists small string values under string keys. Implementations
// must be safe for concurrent use.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStorage is an in-memory Storage, suitable for tests and short-lived
// processes.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Fixed storage keys for the persisted session.
const (
	sessionTokenKey = "moneynote.session.token"
	sessionUserKey  = "moneynote.session.user"
)

// Session is an established login: the bearer token and the user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionStore persists the session token and user together on top of a
// Storage. Token and user are written and cleared as a unit.
type SessionStore struct {
	mu      sync.Mutex
	storage Storage
}

// NewSessionStore creates a SessionStore over the given storage.
func NewSessionStore(storage Storage) *SessionStore {
	return &SessionStore{storage: storage}
}

// Load returns the persisted session, or nil when no session is stored or the
// stored user can no longer be decoded.
func (s *SessionStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.storage.Get(sessionTokenKey)
	if !ok || token == "" {
		return nil, nil
	}

	raw, ok := s.storage.Get(sessionUserKey)
	if !ok {
		return nil, nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decoding stored user: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// Set persists the token and user together.
func (s *SessionStore) Set(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.storage.Set(sessionTokenKey, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := s.storage.Set(sessionUserKey, string(raw)); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-empty store is a
// no-op.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(sessionTokenKey); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	if err := s.storage.Delete(sessionUserKey); err != nil {
		return fmt.Errorf("clearing user: %w", err)
	}
	return nil
}
