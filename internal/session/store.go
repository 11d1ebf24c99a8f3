package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Values is the raw contents of one session. Entries stay encoded so
// the store never needs to know what handlers keep in them.
type Values map[string]json.RawMessage

// Store is the persistence behind the session manager. Consumers define
// this interface, not a concrete backend.
type Store interface {
	Load(ctx context.Context, token string) (Values, error)
	Save(ctx context.Context, token string, values Values, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

var ErrNotFound = errors.New("session not found")
