package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/catalog"
	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/go-chi/chi/v5"
)

// CartService is the slice of cart behaviour the handlers call.
type CartService interface {
	Add(ctx context.Context, sess *session.Session, productID int64, quantity int) (*domain.Product, error)
	Remove(sess *session.Session, productID int64) bool
	Price(ctx context.Context, sess *session.Session) (*cart.PricedCart, error)
}

type CartHandler struct {
	carts  CartService
	render *Renderer
}

func NewCartHandler(carts CartService, render *Renderer) *CartHandler {
	return &CartHandler{carts: carts, render: render}
}

// Add puts a product into the session cart and bounces the shopper back
// to where they came from.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		http.NotFound(w, r)
		return
	}

	quantity := 1
	if v := r.FormValue("quantity"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			quantity = n
		}
	}

	sess := session.FromContext(r.Context())
	product, err := h.carts.Add(r.Context(), sess, productID, quantity)
	if errors.Is(err, catalog.ErrProductNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("add to cart failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sess.AddFlash(session.LevelSuccess, fmt.Sprintf("Added %s to cart.", product.Name))
	http.Redirect(w, r, safeNext(r.FormValue("next"), "/products"), http.StatusSeeOther)
}

// Remove drops a product line. Removing something that is not in the
// cart is fine and just skips the message.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		http.NotFound(w, r)
		return
	}

	sess := session.FromContext(r.Context())
	if h.carts.Remove(sess, productID) {
		sess.AddFlash(session.LevelInfo, "Item removed from cart.")
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// View shows the priced cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	priced, err := h.carts.Price(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		log.Printf("price cart failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, r, http.StatusOK, "cart", Page{
		Title: "Your Cart",
		Data:  priced,
	})
}
