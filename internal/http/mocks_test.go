package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/checkout"
	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type mockCartService struct {
	product   *domain.Product
	addErr    error
	added     []int64
	quantity  int
	removed   bool
	priced    *cart.PricedCart
	priceErr  error
	cartCount int
}

func (m *mockCartService) Add(_ context.Context, _ *session.Session, productID int64, quantity int) (*domain.Product, error) {
	if m.addErr != nil {
		return nil, m.addErr
	}
	m.added = append(m.added, productID)
	m.quantity = quantity
	return m.product, nil
}

func (m *mockCartService) Remove(_ *session.Session, _ int64) bool {
	return m.removed
}

func (m *mockCartService) Price(context.Context, *session.Session) (*cart.PricedCart, error) {
	if m.priceErr != nil {
		return nil, m.priceErr
	}
	return m.priced, nil
}

func (m *mockCartService) Count(*session.Session) int {
	return m.cartCount
}

type mockCheckoutService struct {
	configured   bool
	submission   *checkout.Submission
	submitErr    error
	submitted    []checkout.SubmitRequest
	confirmation *checkout.Confirmation
	verifyErr    error
	verified     []checkout.VerifyRequest
}

func (m *mockCheckoutService) GatewayConfigured() bool { return m.configured }

func (m *mockCheckoutService) Submit(_ context.Context, _ *session.Session, req checkout.SubmitRequest) (*checkout.Submission, error) {
	m.submitted = append(m.submitted, req)
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submission, nil
}

func (m *mockCheckoutService) VerifyPayment(_ context.Context, _ *session.Session, req checkout.VerifyRequest) (*checkout.Confirmation, error) {
	m.verified = append(m.verified, req)
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.confirmation, nil
}

type mockAccountStore struct {
	user        *domain.User
	createErr   error
	authErr     error
	profile     *domain.Profile
	profileErr  error
	saved       []*domain.Profile
	identityErr error
}

func (m *mockAccountStore) Create(_ context.Context, username, _ string) (*domain.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &domain.User{ID: m.user.ID, Username: username}, nil
}

func (m *mockAccountStore) Authenticate(context.Context, string, string) (*domain.User, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.user, nil
}

func (m *mockAccountStore) GetByID(context.Context, int64) (*domain.User, error) {
	if m.user == nil {
		return nil, context.Canceled
	}
	return m.user, nil
}

func (m *mockAccountStore) UpdateIdentity(context.Context, int64, string, string, string) error {
	return m.identityErr
}

func (m *mockAccountStore) GetOrCreateProfile(context.Context, int64) (*domain.Profile, error) {
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

func (m *mockAccountStore) SaveProfile(_ context.Context, profile *domain.Profile) error {
	m.saved = append(m.saved, profile)
	return nil
}

func (m *mockAccountStore) SaveAddress(context.Context, int64, string) error { return nil }

func newTestRenderer(t *testing.T, carts CartCounter) *Renderer {
	t.Helper()
	render, err := NewRenderer(carts)
	require.NoError(t, err)
	return render
}

// newTestRequest builds a request carrying a session, an optional
// signed-in user and an optional chi URL parameter.
func newTestRequest(t *testing.T, method, target string, form url.Values, sess *session.Session, account *domain.User, params map[string]string) *http.Request {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	ctx := session.NewContext(req.Context(), sess)
	if account != nil {
		ctx = context.WithValue(ctx, userContextKey{}, account)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	return req.WithContext(ctx)
}

func flashMessages(sess *session.Session) []string {
	var out []string
	for _, f := range sess.Flashes() {
		out = append(out, f.Message)
	}
	return out
}
