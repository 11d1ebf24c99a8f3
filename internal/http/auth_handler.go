package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/Aniket760/E-Coomarse/internal/user"
)

// AccountStore is the account persistence the auth pages call.
type AccountStore interface {
	Create(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)
	UpdateIdentity(ctx context.Context, id int64, firstName, lastName, email string) error
	GetOrCreateProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
}

type AuthHandler struct {
	users    AccountStore
	sessions *session.Manager
	render   *Renderer
}

func NewAuthHandler(users AccountStore, sessions *session.Manager, render *Renderer) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, render: render}
}

type registerPage struct {
	Username string
	Errors   []string
}

type loginPage struct {
	Login string
	Next  string
}

// RegisterForm shows the signup page; signed-in visitors go home.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, http.StatusOK, "register", Page{Title: "Register", Data: registerPage{}})
}

// Register creates the account and signs the new user straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	if problems := user.ValidateRegistration(username, password, confirm); len(problems) > 0 {
		h.render.HTML(w, r, http.StatusOK, "register", Page{
			Title: "Register",
			Data:  registerPage{Username: username, Errors: problems},
		})
		return
	}

	account, err := h.users.Create(r.Context(), username, password)
	if errors.Is(err, user.ErrUsernameTaken) {
		h.render.HTML(w, r, http.StatusOK, "register", Page{
			Title: "Register",
			Data: registerPage{
				Username: username,
				Errors:   []string{"This username already exists. Try another."},
			},
		})
		return
	}
	if err != nil {
		log.Printf("register failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.signIn(w, r, account)
	sess := session.FromContext(r.Context())
	sess.AddFlash(session.LevelSuccess, "Account created successfully.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm shows the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render.HTML(w, r, http.StatusOK, "login", Page{
		Title: "Login",
		Data:  loginPage{Next: safeNext(r.URL.Query().Get("next"), "/")},
	})
}

// Login authenticates against username or email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	login := strings.TrimSpace(r.FormValue("login"))
	next := safeNext(r.FormValue("next"), "/")

	account, err := h.users.Authenticate(r.Context(), login, r.FormValue("password"))
	if errors.Is(err, user.ErrInvalidCredentials) {
		sess := session.FromContext(r.Context())
		sess.AddFlash(session.LevelError, "Invalid username or password.")
		h.render.HTML(w, r, http.StatusOK, "login", Page{
			Title: "Login",
			Data:  loginPage{Login: login, Next: next},
		})
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.signIn(w, r, account)
	sess := session.FromContext(r.Context())
	sess.AddFlash(session.LevelSuccess, "Logged in successfully.")
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout forgets the user and rotates the session token so the old
// cookie is dead.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	sess.Delete(userSessionKey)
	h.sessions.Renew(w, r, sess)
	sess.AddFlash(session.LevelInfo, "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// signIn records the user in the session and rotates the token, as any
// privilege change should.
func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, account *domain.User) {
	sess := session.FromContext(r.Context())
	if err := sess.Set(userSessionKey, account.ID); err != nil {
		log.Printf("store session user failed: %v", err)
	}
	h.sessions.Renew(w, r, sess)
}

type profilePage struct {
	FullName string
	Email    string
	Profile  *domain.Profile
}

// ProfileForm shows the account and shipping details.
func (h *AuthHandler) ProfileForm(w http.ResponseWriter, r *http.Request) {
	account := UserFromContext(r.Context())

	profile, err := h.users.GetOrCreateProfile(r.Context(), account.ID)
	if err != nil {
		log.Printf("load profile failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, r, http.StatusOK, "profile", Page{
		Title: "Your Profile",
		Data: profilePage{
			FullName: account.FullName(),
			Email:    account.Email,
			Profile:  profile,
		},
	})
}

// SaveProfile updates identity and shipping details in one go. The
// full name splits on the first space, anything after it is the last
// name.
func (h *AuthHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	account := UserFromContext(r.Context())

	firstName, lastName := splitFullName(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if err := h.users.UpdateIdentity(r.Context(), account.ID, firstName, lastName, email); err != nil {
		log.Printf("update identity failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	profile := &domain.Profile{
		UserID:     account.ID,
		Phone:      strings.TrimSpace(r.FormValue("phone")),
		Address:    strings.TrimSpace(r.FormValue("address")),
		City:       strings.TrimSpace(r.FormValue("city")),
		State:      strings.TrimSpace(r.FormValue("state")),
		PostalCode: strings.TrimSpace(r.FormValue("postal_code")),
	}
	if err := h.users.SaveProfile(r.Context(), profile); err != nil {
		log.Printf("save profile failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sess := session.FromContext(r.Context())
	sess.AddFlash(session.LevelSuccess, "Profile and address saved.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func splitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
