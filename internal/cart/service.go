package cart

import (
	"context"
	"fmt"
	"log"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/shopspring/decimal"
)

// Carts live in the session under this key as a product-id -> quantity
// map.
const sessionKey = "cart"

// ProductFinder is the slice of the catalog the cart needs. Consumers
// define this interface, not the catalog service.
type ProductFinder interface {
	GetActive(ctx context.Context, id int64) (*domain.Product, error)
	FindActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
}

// PricedCart is a cart joined against live catalog state.
type PricedCart struct {
	Items []domain.CartItem
	Total decimal.Decimal
}

func (p *PricedCart) IsEmpty() bool { return len(p.Items) == 0 }

type Service struct {
	catalog ProductFinder
}

func NewService(catalog ProductFinder) *Service {
	return &Service{catalog: catalog}
}

// Get reads the raw cart out of the session; a missing or garbled entry
// comes back as an empty cart.
func (s *Service) Get(sess *session.Session) domain.Cart {
	cart := domain.Cart{}
	sess.Get(sessionKey, &cart)
	return cart
}

// Add puts quantity of a product into the cart after checking it is
// still purchasable, and returns the product for the confirmation
// message.
func (s *Service) Add(ctx context.Context, sess *session.Session, productID int64, quantity int) (*domain.Product, error) {
	product, err := s.catalog.GetActive(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart := s.Get(sess)
	cart.Add(productID, quantity)
	if err := sess.Set(sessionKey, cart); err != nil {
		return nil, err
	}

	return product, nil
}

// Remove drops a product line and reports whether anything was removed.
// It works for products that have since gone inactive.
func (s *Service) Remove(sess *session.Session, productID int64) bool {
	cart := s.Get(sess)
	if !cart.Remove(productID) {
		return false
	}

	if err := sess.Set(sessionKey, cart); err != nil {
		log.Printf("save cart failed: %v", err)
	}
	return true
}

// Clear empties the cart, typically after a completed order.
func (s *Service) Clear(sess *session.Session) {
	sess.Delete(sessionKey)
}

// Count sums the raw session quantities. Lines whose products are no
// longer active still count until they are priced away at checkout.
func (s *Service) Count(sess *session.Session) int {
	return s.Get(sess).Count()
}

// Price resolves the session cart against the live catalog.
func (s *Service) Price(ctx context.Context, sess *session.Session) (*PricedCart, error) {
	return s.PriceCart(ctx, s.Get(sess))
}

// PriceCart builds priced lines in catalog order. Lines whose product
// vanished or went inactive are skipped silently and stay in the cart.
func (s *Service) PriceCart(ctx context.Context, cart domain.Cart) (*PricedCart, error) {
	priced := &PricedCart{Total: decimal.Zero}
	if len(cart) == 0 {
		return priced, nil
	}

	products, err := s.catalog.FindActiveByIDs(ctx, cart.IDs())
	if err != nil {
		return nil, fmt.Errorf("price cart: %w", err)
	}

	for _, product := range products {
		quantity := cart.Quantity(product.ID)
		if quantity < 1 {
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		priced.Items = append(priced.Items, domain.CartItem{
			Product:   *product,
			Quantity:  quantity,
			LineTotal: lineTotal,
		})
		priced.Total = priced.Total.Add(lineTotal)
	}

	return priced, nil
}
