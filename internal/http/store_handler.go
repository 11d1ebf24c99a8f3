package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// Featured products shown on the home page.
const featuredHomeLimit = 6

// CatalogService supplies the browse listings.
type CatalogService interface {
	ListActive(ctx context.Context) ([]*domain.Product, error)
	ListFeatured(ctx context.Context) ([]*domain.Product, error)
}

type StoreHandler struct {
	catalog CatalogService
	render  *Renderer
}

func NewStoreHandler(catalog CatalogService, render *Renderer) *StoreHandler {
	return &StoreHandler{catalog: catalog, render: render}
}

type productListPage struct {
	Products []*domain.Product
}

// Home shows up to six featured products.
func (h *StoreHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.catalog.ListFeatured(r.Context())
	if err != nil {
		log.Printf("list featured products failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(featured) > featuredHomeLimit {
		featured = featured[:featuredHomeLimit]
	}

	h.render.HTML(w, r, http.StatusOK, "home", Page{
		Title: "Home",
		Data:  productListPage{Products: featured},
	})
}

// Products lists every purchasable product.
func (h *StoreHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListActive(r.Context())
	if err != nil {
		log.Printf("list products failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render.HTML(w, r, http.StatusOK, "products", Page{
		Title: "Products",
		Data:  productListPage{Products: products},
	})
}

func (h *StoreHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusOK, "about", Page{Title: "About Us"})
}

func (h *StoreHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusOK, "contact", Page{Title: "Contact Us"})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
