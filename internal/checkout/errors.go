package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrGateway              = errors.New("payment gateway error")
	ErrNoPendingPayment     = errors.New("no pending online payment found")
	ErrOrderMismatch        = errors.New("order mismatch")
)
