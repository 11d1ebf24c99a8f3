package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderNotification is the merchant-facing summary of a completed
// order.
type OrderNotification struct {
	CustomerName  string
	CustomerEmail string
	Username      string
	Total         decimal.Decimal
	PaymentMethod string
	PaymentID     string
}

func (n OrderNotification) Subject() string {
	return fmt.Sprintf("New Order Placed: %s", n.CustomerName)
}

func (n OrderNotification) Body() string {
	username := n.Username
	if username == "" {
		username = "Guest"
	}
	email := n.CustomerEmail
	if email == "" {
		email = "N/A"
	}

	lines := []string{
		"A new order has been placed on E-commarse.",
		fmt.Sprintf("Customer Name: %s", n.CustomerName),
		fmt.Sprintf("Username: %s", username),
		fmt.Sprintf("Customer Email: %s", email),
		fmt.Sprintf("Total Amount: Rs %s", n.Total.StringFixed(2)),
		fmt.Sprintf("Payment Method: %s", n.PaymentMethod),
	}
	if n.PaymentID != "" {
		lines = append(lines, fmt.Sprintf("Payment ID: %s", n.PaymentID))
	}

	return strings.Join(lines, "\n")
}

// Sender is one delivery channel for order notifications.
type Sender interface {
	NotifyOrderPlaced(ctx context.Context, n OrderNotification) error
}

// Notifier fans an order notification out to every configured channel.
// Delivery is strictly best-effort: failures are logged and swallowed
// so order confirmation never depends on a channel being up.
type Notifier struct {
	senders []Sender
}

func NewNotifier(senders ...Sender) *Notifier {
	return &Notifier{senders: senders}
}

func (f *Notifier) OrderPlaced(ctx context.Context, n OrderNotification) {
	for _, s := range f.senders {
		if err := s.NotifyOrderPlaced(ctx, n); err != nil {
			log.Printf("order notification failed: %v", err)
		}
	}
}
