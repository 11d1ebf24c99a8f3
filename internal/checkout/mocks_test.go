package checkout

import (
	"context"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/notify"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

type mockPricer struct {
	priced  *cart.PricedCart
	err     error
	cleared int
}

func (m *mockPricer) Price(context.Context, *session.Session) (*cart.PricedCart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.priced, nil
}

func (m *mockPricer) Clear(*session.Session) {
	m.cleared++
}

type mockProfiles struct {
	addresses map[int64]string
	err       error
}

func newMockProfiles() *mockProfiles {
	return &mockProfiles{addresses: make(map[int64]string)}
}

func (m *mockProfiles) SaveAddress(_ context.Context, userID int64, address string) error {
	if m.err != nil {
		return m.err
	}
	m.addresses[userID] = address
	return nil
}

type mockGateway struct {
	order     *payment.Order
	createErr error
	verifyErr error
	created   []payment.OrderRequest
	verified  []string
	keyID     string
}

func (m *mockGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	m.created = append(m.created, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.order, nil
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) error {
	m.verified = append(m.verified, orderID+"|"+paymentID+"|"+signature)
	return m.verifyErr
}

func (m *mockGateway) KeyID() string {
	return m.keyID
}

type mockNotifier struct {
	notifications []notify.OrderNotification
}

func (m *mockNotifier) OrderPlaced(_ context.Context, n notify.OrderNotification) {
	m.notifications = append(m.notifications, n)
}
