package domain

import "github.com/shopspring/decimal"

// PendingPayment snapshots an online checkout between the request that
// creates the gateway order and the follow-up verification callback.
// It round-trips through the session store as JSON.
type PendingPayment struct {
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	Amount          decimal.Decimal `json:"amount"`
	OrderID         string          `json:"razorpay_order_id"`
	Username        string          `json:"username"`
}
