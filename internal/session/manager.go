package session

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey struct{}

// Manager loads a session per request, hands it to handlers through the
// request context and persists changes once the handler returns.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
}

func NewManager(store Store, cookieName string, ttl time.Duration) *Manager {
	return &Manager{store: store, cookieName: cookieName, ttl: ttl}
}

// Handler is middleware that attaches the session to the request
// context and saves it afterwards when it changed. The cookie is
// rewritten on every response so the expiry slides with activity.
func (m *Manager) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		m.writeCookie(w, sess.token)

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))

		if sess.dirty {
			if err := m.store.Save(r.Context(), sess.token, sess.values, m.ttl); err != nil {
				log.Printf("session save failed: %v", err)
			}
		}
	})
}

func (m *Manager) load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return New()
	}

	values, loadErr := m.store.Load(r.Context(), cookie.Value)
	if loadErr != nil {
		if !errors.Is(loadErr, ErrNotFound) {
			log.Printf("session load failed: %v", loadErr)
		}
		return New()
	}

	return &Session{token: cookie.Value, values: values}
}

// Renew rotates the session token while keeping its contents. Call it
// on privilege changes such as login so the old token stops working.
func (m *Manager) Renew(w http.ResponseWriter, r *http.Request, s *Session) {
	old := s.token
	wasNew := s.isNew

	s.token = uuid.NewString()
	s.isNew = true
	s.dirty = true
	m.writeCookie(w, s.token)

	if !wasNew {
		if err := m.store.Delete(r.Context(), old); err != nil {
			log.Printf("session delete failed: %v", err)
		}
	}
}

func (m *Manager) writeCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewContext returns ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the request session, nil when the manager
// middleware is not mounted.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}
