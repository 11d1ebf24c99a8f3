package http

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// CartCounter supplies the item count shown in the navigation bar.
type CartCounter interface {
	Count(sess *session.Session) int
}

// Renderer executes the embedded views. Every page gets the signed-in
// user, the cart badge count and any queued flash messages on top of
// its own data.
type Renderer struct {
	tmpl  *template.Template
	carts CartCounter
}

func NewRenderer(carts CartCounter) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, carts: carts}, nil
}

// Page is the envelope handed to every template.
type Page struct {
	Title     string
	User      *domain.User
	CartCount int
	Flashes   []session.Flash
	Data      any
}

// HTML renders the named view. Reading the flashes clears them, so a
// rendered page consumes whatever messages the previous request queued.
func (rn *Renderer) HTML(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	p.User = UserFromContext(r.Context())
	if sess := session.FromContext(r.Context()); sess != nil {
		p.Flashes = sess.Flashes()
		if rn.carts != nil {
			p.CartCount = rn.carts.Count(sess)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.tmpl.ExecuteTemplate(w, name, p); err != nil {
		log.Printf("failed to render %s: %v", name, err)
	}
}
