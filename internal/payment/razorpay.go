package payment

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured means no gateway keys are present; the online
	// payment path is unavailable rather than broken.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	ErrSignatureInvalid = errors.New("payment signature verification failed")
)

// Gateway is the capability checkout holds when online payment is
// available. Consumers define this interface, not the Razorpay client.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
}

// OrderRequest describes the gateway order for one checkout.
type OrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the remote order the gateway created.
type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
}

// Client wraps the Razorpay SDK.
type Client struct {
	api    *razorpay.Client
	keyID  string
	secret string
}

// FromConfig returns a Client when both keys are set and
// ErrNotConfigured otherwise, so callers end up with either a working
// gateway or none at all.
func FromConfig(keyID, keySecret string) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, ErrNotConfigured
	}

	return &Client{
		api:    razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}, nil
}

// KeyID is the public key the payment page hands to the browser widget.
func (c *Client) KeyID() string { return c.keyID }

func (c *Client) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}

	amountMinor := MinorUnits(req.Amount)
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("create gateway order: response missing order id")
	}

	return &Order{ID: id, AmountMinor: amountMinor, Currency: req.Currency}, nil
}

// VerifySignature checks the HMAC the gateway sent back after the
// shopper paid.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}

	if !utils.VerifyPaymentSignature(params, signature, c.secret) {
		return ErrSignatureInvalid
	}
	return nil
}

// MinorUnits converts a two-decimal amount into the gateway's smallest
// currency unit (rupees to paise).
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

var _ Gateway = (*Client)(nil)
