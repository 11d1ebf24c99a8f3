package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser_LoadsSessionUser(t *testing.T) {
	users := &mockAccountStore{user: &domain.User{ID: 7, Username: "rahul"}}
	sess := session.New()
	require.NoError(t, sess.Set(userSessionKey, int64(7)))

	var seen *domain.User
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	})

	req := newTestRequest(t, http.MethodGet, "/", nil, sess, nil, nil)
	CurrentUser(users)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "rahul", seen.Username)
}

func TestCurrentUser_AnonymousSession(t *testing.T) {
	users := &mockAccountStore{user: &domain.User{ID: 7}}

	var seen *domain.User
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	})

	req := newTestRequest(t, http.MethodGet, "/", nil, session.New(), nil, nil)
	CurrentUser(users)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, seen)
}

func TestRequireAuth_RedirectsAnonymousToLogin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := newTestRequest(t, http.MethodGet, "/checkout", nil, session.New(), nil, nil)
	rec := httptest.NewRecorder()

	RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fcheckout", rec.Header().Get("Location"))
}

func TestRequireAuth_PassesSignedInUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := newTestRequest(t, http.MethodGet, "/checkout", nil, session.New(), &domain.User{ID: 7}, nil)
	rec := httptest.NewRecorder()

	RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/checkout", "/checkout"},
		{"/products?page=2", "/products?page=2"},
		{"", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, safeNext(tt.next, "/"))
	}
}
