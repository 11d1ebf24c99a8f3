package http

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

type userContextKey struct{}

// Session key that marks a visitor as signed in.
const userSessionKey = "user_id"

// UserSource resolves the session's user id to a full account.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CurrentUser loads the signed-in user named by the session, if any,
// and attaches it to the request context. A stale id (deleted account)
// falls back to an anonymous request rather than failing it.
func CurrentUser(users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			var userID int64
			if !sess.Get(userSessionKey, &userID) || userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				log.Printf("load session user %d failed: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the signed-in user, nil for anonymous
// visitors.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey{}).(*domain.User)
	return user
}

// RequireAuth sends anonymous visitors to the login page, remembering
// where they were headed.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// safeNext accepts only same-site relative redirect targets; anything
// else falls back to the default.
func safeNext(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}
