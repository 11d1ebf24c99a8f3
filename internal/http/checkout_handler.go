package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/checkout"
	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

// CheckoutService drives both payment paths.
type CheckoutService interface {
	GatewayConfigured() bool
	Submit(ctx context.Context, sess *session.Session, req checkout.SubmitRequest) (*checkout.Submission, error)
	VerifyPayment(ctx context.Context, sess *session.Session, req checkout.VerifyRequest) (*checkout.Confirmation, error)
}

// ProfileSource supplies the saved shipping address for prefill.
type ProfileSource interface {
	GetOrCreateProfile(ctx context.Context, userID int64) (*domain.Profile, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	carts    CartService
	profiles ProfileSource
	render   *Renderer
}

func NewCheckoutHandler(checkoutSvc CheckoutService, carts CartService, profiles ProfileSource, render *Renderer) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutSvc,
		carts:    carts,
		profiles: profiles,
		render:   render,
	}
}

// paymentChoice is one radio button on the checkout form.
type paymentChoice struct {
	Value string
	Label string
}

type checkoutPage struct {
	Cart             *cart.PricedCart
	Name             string
	Email            string
	Address          string
	Methods          []paymentChoice
	GatewayAvailable bool
}

// Form shows the checkout page prefilled from the account and its
// saved address. An empty cart never reaches the form.
func (h *CheckoutHandler) Form(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	user := UserFromContext(r.Context())

	priced, err := h.carts.Price(r.Context(), sess)
	if err != nil {
		log.Printf("price cart failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if priced.IsEmpty() {
		sess.AddFlash(session.LevelWarning, "Your cart is empty.")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	var address string
	profile, err := h.profiles.GetOrCreateProfile(r.Context(), user.ID)
	if err != nil {
		log.Printf("load profile for checkout failed: %v", err)
	} else {
		address = profile.SavedAddress()
	}

	h.render.HTML(w, r, http.StatusOK, "checkout", Page{
		Title: "Checkout",
		Data: checkoutPage{
			Cart:             priced,
			Name:             user.DisplayName(),
			Email:            user.Email,
			Address:          address,
			Methods:          paymentChoices(),
			GatewayAvailable: h.checkout.GatewayConfigured(),
		},
	})
}

// Submit places the order. COD completes immediately; the online path
// renders the gateway widget page and finishes in VerifyPayment.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	user := UserFromContext(r.Context())

	submission, err := h.checkout.Submit(r.Context(), sess, checkout.SubmitRequest{
		User:          user,
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		Address:       r.FormValue("address"),
		PaymentMethod: r.FormValue("payment_method"),
	})
	if err != nil {
		h.submitError(w, r, sess, err)
		return
	}

	if submission.Online == nil {
		h.render.HTML(w, r, http.StatusOK, "order_success", Page{
			Title: "Order Placed",
			Data: checkout.Confirmation{
				CustomerName: submission.CustomerName,
				Total:        submission.Total,
				MethodLabel:  submission.MethodLabel,
			},
		})
		return
	}

	h.render.HTML(w, r, http.StatusOK, "payment", Page{
		Title: "Complete Payment",
		Data: paymentPage{
			Order: submission.Online,
			Name:  submission.CustomerName,
			Email: submission.CustomerEmail,
			Total: submission.Total.StringFixed(2),
		},
	})
}

type paymentPage struct {
	Order *checkout.OnlineOrder
	Name  string
	Email string
	Total string
}

func (h *CheckoutHandler) submitError(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		sess.AddFlash(session.LevelWarning, "Your cart is empty.")
		http.Redirect(w, r, "/products", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrInvalidPaymentMethod):
		sess.AddFlash(session.LevelError, "Please select a valid payment method.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	case errors.Is(err, payment.ErrNotConfigured):
		sess.AddFlash(session.LevelError, "Online payment is not configured yet. Add Razorpay keys in settings/env.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrGateway):
		log.Printf("gateway order creation failed: %v", err)
		sess.AddFlash(session.LevelError, "Could not start the online payment. Please try again.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	default:
		log.Printf("checkout submit failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Verify handles the gateway callback relayed by the payment page. Only
// a matching order id with a valid signature completes the order.
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	confirmation, err := h.checkout.VerifyPayment(r.Context(), sess, checkout.VerifyRequest{
		User:      UserFromContext(r.Context()),
		OrderID:   r.FormValue("razorpay_order_id"),
		PaymentID: r.FormValue("razorpay_payment_id"),
		Signature: r.FormValue("razorpay_signature"),
	})
	if err != nil {
		h.verifyError(w, r, sess, err)
		return
	}

	h.render.HTML(w, r, http.StatusOK, "order_success", Page{
		Title: "Order Placed",
		Data:  *confirmation,
	})
}

func (h *CheckoutHandler) verifyError(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		sess.AddFlash(session.LevelError, "Online payment is not configured yet. Add Razorpay keys in settings/env.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrNoPendingPayment):
		sess.AddFlash(session.LevelError, "No pending online payment found.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	case errors.Is(err, checkout.ErrOrderMismatch):
		sess.AddFlash(session.LevelError, "Order mismatch detected. Please try checkout again.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
	case errors.Is(err, payment.ErrSignatureInvalid):
		// The pending record survives so the shopper can retry the
		// same gateway order.
		h.render.HTML(w, r, http.StatusOK, "payment_failed", Page{
			Title: "Payment Failed",
		})
	default:
		log.Printf("payment verification failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func paymentChoices() []paymentChoice {
	choices := make([]paymentChoice, 0, len(checkout.MethodOrder))
	for _, method := range checkout.MethodOrder {
		choices = append(choices, paymentChoice{Value: method, Label: checkout.PaymentMethods[method]})
	}
	return choices
}
