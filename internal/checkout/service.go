package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/notify"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/shopspring/decimal"
)

// Payment method keys and the labels shown to shoppers.
const (
	MethodCOD    = "cod"
	MethodOnline = "online"
)

var PaymentMethods = map[string]string{
	MethodCOD:    "Cash on Delivery",
	MethodOnline: "Online Payment (UPI / Debit Card / Credit Card)",
}

// MethodOrder fixes the display order of the payment choices.
var MethodOrder = []string{MethodCOD, MethodOnline}

// The pending online payment lives in the session under this key
// between the submit request and the verification callback.
const pendingKey = "pending_online_payment"

// Pricer resolves and clears the session cart.
type Pricer interface {
	Price(ctx context.Context, sess *session.Session) (*cart.PricedCart, error)
	Clear(sess *session.Session)
}

// AddressSaver persists a freshly submitted shipping address.
type AddressSaver interface {
	SaveAddress(ctx context.Context, userID int64, address string) error
}

// Notifier dispatches the merchant order notification.
type Notifier interface {
	OrderPlaced(ctx context.Context, n notify.OrderNotification)
}

// Service drives both checkout paths: immediate cash-on-delivery
// orders and the two-request online payment flow.
type Service struct {
	pricer   Pricer
	profiles AddressSaver
	gateway  payment.Gateway // nil when no keys are configured
	notifier Notifier
	currency string
}

func NewService(pricer Pricer, profiles AddressSaver, gateway payment.Gateway, notifier Notifier, currency string) *Service {
	return &Service{
		pricer:   pricer,
		profiles: profiles,
		gateway:  gateway,
		notifier: notifier,
		currency: currency,
	}
}

// GatewayConfigured reports whether the online payment path can run.
func (s *Service) GatewayConfigured() bool {
	return s.gateway != nil
}

// SubmitRequest is one checkout form submission.
type SubmitRequest struct {
	User          *domain.User
	Name          string
	Email         string
	Address       string
	PaymentMethod string
}

// Submission is the outcome of a submitted checkout. Online is set only
// on the online path, where the order still awaits verification.
type Submission struct {
	Method        string
	MethodLabel   string
	CustomerName  string
	CustomerEmail string
	Total         decimal.Decimal
	Online        *OnlineOrder
}

// OnlineOrder carries what the payment page needs to start the gateway
// widget.
type OnlineOrder struct {
	KeyID       string
	OrderID     string
	AmountMinor int64
	Currency    string
}

// Submit prices the cart and runs the chosen payment path. COD orders
// complete immediately; online orders create a gateway order and park a
// PendingPayment in the session for the verification callback.
func (s *Service) Submit(ctx context.Context, sess *session.Session, req SubmitRequest) (*Submission, error) {
	priced, err := s.pricer.Price(ctx, sess)
	if err != nil {
		return nil, err
	}
	if priced.IsEmpty() {
		return nil, ErrEmptyCart
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.User.DisplayName()
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = req.User.Email
	}

	// The typed address is worth keeping even when the order then
	// fails; losing it is acceptable, failing checkout over it is not.
	if address := strings.TrimSpace(req.Address); address != "" {
		if err := s.profiles.SaveAddress(ctx, req.User.ID, address); err != nil {
			log.Printf("save checkout address failed: %v", err)
		}
	}

	label, ok := PaymentMethods[req.PaymentMethod]
	if !ok {
		return nil, ErrInvalidPaymentMethod
	}

	if req.PaymentMethod == MethodCOD {
		s.notifier.OrderPlaced(ctx, notify.OrderNotification{
			CustomerName:  name,
			CustomerEmail: email,
			Username:      req.User.Username,
			Total:         priced.Total,
			PaymentMethod: label,
		})
		s.pricer.Clear(sess)

		return &Submission{
			Method:        MethodCOD,
			MethodLabel:   label,
			CustomerName:  name,
			CustomerEmail: email,
			Total:         priced.Total,
		}, nil
	}

	if s.gateway == nil {
		return nil, payment.ErrNotConfigured
	}

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   priced.Total,
		Currency: s.currency,
		Receipt:  receipt(req.User.Username, priced.Total),
		Notes: map[string]string{
			"customer_name": name,
			"email":         email,
			"username":      req.User.Username,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	// Overwrites any prior unconsumed pending payment.
	pending := domain.PendingPayment{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerAddress: strings.TrimSpace(req.Address),
		Amount:          priced.Total,
		OrderID:         order.ID,
		Username:        req.User.Username,
	}
	if err := sess.Set(pendingKey, pending); err != nil {
		return nil, err
	}

	return &Submission{
		Method:        MethodOnline,
		MethodLabel:   label,
		CustomerName:  name,
		CustomerEmail: email,
		Total:         priced.Total,
		Online: &OnlineOrder{
			KeyID:       s.gateway.KeyID(),
			OrderID:     order.ID,
			AmountMinor: order.AmountMinor,
			Currency:    order.Currency,
		},
	}, nil
}

// PendingPayment returns the session's unconsumed pending payment.
func (s *Service) PendingPayment(sess *session.Session) (*domain.PendingPayment, bool) {
	var p domain.PendingPayment
	if !sess.Get(pendingKey, &p) || p.OrderID == "" {
		return nil, false
	}
	return &p, true
}

// VerifyRequest is the gateway callback relayed by the payment page.
type VerifyRequest struct {
	User      *domain.User
	OrderID   string
	PaymentID string
	Signature string
}

// Confirmation is a completed order, ready for the success page.
type Confirmation struct {
	CustomerName string
	Total        decimal.Decimal
	MethodLabel  string
	PaymentID    string
}

// VerifyPayment finishes the online path. The order-id match and the
// signature check both guard against stale or forged callbacks; only a
// fully verified payment clears the cart and the pending record. A bad
// signature keeps the pending record so the shopper can retry the same
// order.
func (s *Service) VerifyPayment(ctx context.Context, sess *session.Session, req VerifyRequest) (*Confirmation, error) {
	if s.gateway == nil {
		return nil, payment.ErrNotConfigured
	}

	pending, ok := s.PendingPayment(sess)
	if !ok {
		return nil, ErrNoPendingPayment
	}

	if req.OrderID != pending.OrderID {
		return nil, ErrOrderMismatch
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		return nil, err
	}

	name := pending.CustomerName
	if name == "" {
		name = req.User.Username
	}
	username := pending.Username
	if username == "" {
		username = req.User.Username
	}

	s.notifier.OrderPlaced(ctx, notify.OrderNotification{
		CustomerName:  name,
		CustomerEmail: pending.CustomerEmail,
		Username:      username,
		Total:         pending.Amount,
		PaymentMethod: PaymentMethods[MethodOnline],
		PaymentID:     req.PaymentID,
	})

	s.pricer.Clear(sess)
	sess.Delete(pendingKey)

	return &Confirmation{
		CustomerName: name,
		Total:        pending.Amount,
		MethodLabel:  PaymentMethods[MethodOnline],
		PaymentID:    req.PaymentID,
	}, nil
}

// receipt builds the gateway receipt id, truncated to the gateway's 40
// byte limit.
func receipt(username string, total decimal.Decimal) string {
	r := fmt.Sprintf("order_%s_%d", username, payment.MinorUnits(total))
	if len(r) > 40 {
		r = r[:40]
	}
	return r
}
