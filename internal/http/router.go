package http

import (
	"net/http"
	"time"

	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps carries everything the storefront routes need.
type RouterDeps struct {
	Sessions       *session.Manager
	Users          UserSource
	Store          *StoreHandler
	Cart           *CartHandler
	Checkout       *CheckoutHandler
	Auth           *AuthHandler
	RequestTimeout time.Duration
}

// NewRouter mounts the full storefront surface.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(deps.Sessions.Handler)
	r.Use(CurrentUser(deps.Users))

	r.Get("/health", Health)

	r.Get("/", deps.Store.Home)
	r.Get("/products", deps.Store.Products)
	r.Get("/about", deps.Store.About)
	r.Get("/contact", deps.Store.Contact)

	r.Get("/cart", deps.Cart.View)
	r.Post("/cart/add/{productID}", deps.Cart.Add)
	r.Post("/cart/remove/{productID}", deps.Cart.Remove)

	r.Get("/register", deps.Auth.RegisterForm)
	r.Post("/register", deps.Auth.Register)
	r.Get("/login", deps.Auth.LoginForm)
	r.Post("/login", deps.Auth.Login)
	r.Post("/logout", deps.Auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/checkout", deps.Checkout.Form)
		r.Post("/checkout", deps.Checkout.Submit)
		r.Post("/payment/verify", deps.Checkout.Verify)
		r.Get("/profile", deps.Auth.ProfileForm)
		r.Post("/profile", deps.Auth.SaveProfile)
	})

	return r
}
