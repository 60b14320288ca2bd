package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-backend/internal/domain"
	productrepo "shop-backend/internal/repository/product"
	accountsvc "shop-backend/internal/service/account"
	ordersvc "shop-backend/internal/service/order"
	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestRouter builds a router with stub services, overridden per test via
// the deps argument.
func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.AccountSvc == nil {
		deps.AccountSvc = &stubAccountSvc{}
	}
	if deps.CategorySvc == nil {
		deps.CategorySvc = &stubCategorySvc{}
	}
	if deps.ProductSvc == nil {
		deps.ProductSvc = &stubProductSvc{}
	}
	if deps.CartSvc == nil {
		deps.CartSvc = &stubCartSvc{}
	}
	if deps.LikeSvc == nil {
		deps.LikeSvc = &stubLikeSvc{}
	}
	if deps.OrderSvc == nil {
		deps.OrderSvc = &stubOrderSvc{}
	}
	router, err := buildRouter(logDiscard(), nil, deps, nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

type stubAccountSvc struct {
	user        *domain.User
	token       string
	registerErr error
	loginErr    error
	lookupErr   error
	logoutErr   error
	revoked     string
}

func (s *stubAccountSvc) Register(_ context.Context, _ accountsvc.RegisterInput) (*domain.User, string, error) {
	return s.user, s.token, s.registerErr
}

func (s *stubAccountSvc) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, s.token, s.loginErr
}

func (s *stubAccountSvc) Logout(_ context.Context, token string) error {
	s.revoked = token
	return s.logoutErr
}

func (s *stubAccountSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if s.user == nil {
		return nil, accountsvc.ErrInvalidToken
	}
	return s.user, nil
}

type stubCategorySvc struct {
	categories []domain.Category
	category   *domain.Category
	err        error
}

func (s *stubCategorySvc) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubCategorySvc) GetBySlug(_ context.Context, _ string) (*domain.Category, error) {
	return s.category, s.err
}

type stubProductSvc struct {
	products   []domain.Product
	product    *domain.Product
	err        error
	lastFilter productrepo.Filter
	lastViewer *string
}

func (s *stubProductSvc) List(_ context.Context, filter productrepo.Filter) ([]domain.Product, error) {
	s.lastFilter = filter
	return s.products, s.err
}

func (s *stubProductSvc) Featured(_ context.Context, viewerID *string) ([]domain.Product, error) {
	s.lastViewer = viewerID
	return s.products, s.err
}

func (s *stubProductSvc) GetBySlug(_ context.Context, _ string, viewerID *string) (*domain.Product, error) {
	s.lastViewer = viewerID
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

type stubCartSvc struct {
	cart      *domain.Cart
	err       error
	addedProd string
	addedQty  int
	updated   string
	updatedQ  int
	removed   string
	cleared   bool
}

func (s *stubCartSvc) Get(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) AddItem(_ context.Context, _, productID string, quantity int) (*domain.Cart, error) {
	s.addedProd = productID
	s.addedQty = quantity
	return s.cart, s.err
}

func (s *stubCartSvc) UpdateItem(_ context.Context, _, itemID string, quantity int) (*domain.Cart, error) {
	s.updated = itemID
	s.updatedQ = quantity
	return s.cart, s.err
}

func (s *stubCartSvc) RemoveItem(_ context.Context, _, itemID string) (*domain.Cart, error) {
	s.removed = itemID
	return s.cart, s.err
}

func (s *stubCartSvc) Clear(_ context.Context, _ string) (*domain.Cart, error) {
	s.cleared = true
	return s.cart, s.err
}

type stubLikeSvc struct {
	likes []domain.Like
	liked bool
	err   error
}

func (s *stubLikeSvc) List(_ context.Context, _ string) ([]domain.Like, error) {
	return s.likes, s.err
}

func (s *stubLikeSvc) Toggle(_ context.Context, _, _ string) (bool, error) {
	return s.liked, s.err
}

type stubOrderSvc struct {
	order     *domain.Order
	orders    []domain.Order
	err       error
	cancelErr error
	lastInput ordersvc.CheckoutInput
}

func (s *stubOrderSvc) Checkout(_ context.Context, _ string, in ordersvc.CheckoutInput) (*domain.Order, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderSvc) Cancel(_ context.Context, _, _ string) (*domain.Order, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	return s.order, nil
}

func (s *stubOrderSvc) List(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderSvc) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, Deps{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, Deps{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "given-id")
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "given-id" {
		t.Fatalf("expected the client id to be kept, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, Deps{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
