package session

import (
	"context"
	"sync"
	"time"
)

// CleanupInterval is how often the background expiry sweep runs.
const CleanupInterval = time.Minute

type memoryEntry struct {
	values    Values
	expiresAt time.Time
}

// MemoryStore implements Store with in-process storage. It is the
// fallback when no Redis address is configured; sessions do not survive
// a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[string]memoryEntry),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireSessions() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *MemoryStore) Load(_ context.Context, token string) (Values, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}

	// Hand out a copy so callers never mutate the stored map.
	values := make(Values, len(entry.values))
	for k, v := range entry.values {
		values[k] = v
	}
	return values, nil
}

func (s *MemoryStore) Save(_ context.Context, token string, values Values, ttl time.Duration) error {
	copied := make(Values, len(values))
	for k, v := range values {
		copied[k] = v
	}

	s.mu.Lock()
	s.sessions[token] = memoryEntry{values: copied, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Close stops the background cleanup and waits for it to finish.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
