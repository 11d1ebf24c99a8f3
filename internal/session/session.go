package session

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Flash levels match the message tags the templates style on.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

const flashKey = "_flashes"

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is one visitor's state for the duration of a request. It is
// not safe for concurrent use; every request gets its own instance.
type Session struct {
	token  string
	values Values
	isNew  bool
	dirty  bool
}

// New returns a fresh detached session with a random token. The manager
// creates these for first-time visitors; tests can build them directly.
func New() *Session {
	return &Session{token: uuid.NewString(), values: make(Values), isNew: true}
}

func (s *Session) Token() string { return s.token }

// Get decodes the entry under key into dst and reports whether the key
// was present and decodable.
func (s *Session) Get(key string, dst any) bool {
	raw, ok := s.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Set encodes v under key. The change is persisted when the request
// finishes.
func (s *Session) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session value %q: %w", key, err)
	}
	s.values[key] = raw
	s.dirty = true
	return nil
}

// Delete removes the entry under key.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Clear drops every entry, flashes included. Logout pairs it with
// Manager.Renew to leave the visitor with an empty fresh session.
func (s *Session) Clear() {
	if len(s.values) == 0 {
		return
	}
	s.values = make(Values)
	s.dirty = true
}

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(level, message string) {
	var flashes []Flash
	s.Get(flashKey, &flashes)
	flashes = append(flashes, Flash{Level: level, Message: message})
	raw, _ := json.Marshal(flashes)
	s.values[flashKey] = raw
	s.dirty = true
}

// Flashes returns the queued messages and clears them.
func (s *Session) Flashes() []Flash {
	var flashes []Flash
	if !s.Get(flashKey, &flashes) {
		return nil
	}
	s.Delete(flashKey)
	return flashes
}
