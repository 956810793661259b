package otp

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is a process-local CodeStore. All codes are lost on restart.
type MemoryStore struct {
	// Now is the clock used for expiry. Defaults to time.Now.
	Now func() time.Time

	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemoryStore returns a store whose codes live for ttl, or DefaultTTL when
// ttl is not positive.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		Now:     time.Now,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (s *MemoryStore) Store(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = entry{code: code, expiresAt: s.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Validate(_ context.Context, userID, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return false, nil
	}
	if s.Now().After(e.expiresAt) {
		delete(s.entries, userID)
		return false, nil
	}
	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		return false, nil
	}
	delete(s.entries, userID)
	return true, nil
}

func (s *MemoryStore) Remove(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Withdraw(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[userID]; ok && e.code == code {
		delete(s.entries, userID)
	}
	return nil
}

func (s *MemoryStore) DeleteExpired(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	n := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored codes, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
func (s *MemoryStore) Close() error               { return nil }
