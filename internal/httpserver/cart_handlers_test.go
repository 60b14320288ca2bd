package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop-backend/internal/domain"
)

func TestCartEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter(t, Deps{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart/add_item"},
		{http.MethodPatch, "/cart/update_item"},
		{http.MethodDelete, "/cart/remove_item"},
		{http.MethodDelete, "/cart/clear"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestAddCartItemHandler_DefaultsQuantity(t *testing.T) {
	accounts := &stubAccountSvc{user: &domain.User{ID: "u1"}}
	carts := &stubCartSvc{cart: &domain.Cart{ID: "c1"}}
	router := newTestRouter(t, Deps{AccountSvc: accounts, CartSvc: carts})

	req := authed(httptest.NewRequest(http.MethodPost, "/cart/add_item", strings.NewReader(`{"product_id":"p1"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.addedProd != "p1" || carts.addedQty != 1 {
		t.Fatalf("unexpected add call: %q x%d", carts.addedProd, carts.addedQty)
	}
}

func TestAddCartItemHandler_RequiresProductID(t *testing.T) {
	accounts := &stubAccountSvc{user: &domain.User{ID: "u1"}}
	router := newTestRouter(t, Deps{AccountSvc: accounts, CartSvc: &stubCartSvc{cart: &domain.Cart{ID: "c1"}}})

	req := authed(httptest.NewRequest(http.MethodPost, "/cart/add_item", strings.NewReader(`{"quantity":2}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItemHandler_InsufficientStock(t *testing.T) {
	accounts := &stubAccountSvc{user: &domain.User{ID: "u1"}}
	carts := &stubCartSvc{err: &domain.InsufficientStockError{ProductName: "Book"}}
	router := newTestRouter(t, Deps{AccountSvc: accounts, CartSvc: carts})

	req := authed(httptest.NewRequest(http.MethodPost, "/cart/add_item", strings.NewReader(`{"product_id":"p1","quantity":99}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "insufficient stock for Book") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdateCartItemHandler_ZeroQuantityAllowed(t *testing.T) {
	accounts := &stubAccountSvc{user: &domain.User{ID: "u1"}}
	carts := &stubCartSvc{cart: &domain.Cart{ID: "c1"}}
	router := newTestRouter(t, Deps{AccountSvc: accounts, CartSvc: carts})

	req := authed(httptest.NewRequest(http.MethodPatch, "/cart/update_item", strings.NewReader(`{"item_id":"i1","quantity":0}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if carts.updated != "i1" || carts.updatedQ != 0 {
		t.Fatalf("unexpected update call: %q x%d", carts.updated, carts.updatedQ)
	}
}

func TestUpdateCartItemHandler_RequiresQuantity(t *testing.T) {
	accounts := &stubAccountSvc{user: &domain.User{ID: "u1"}}
	router := newTestRouter(t, Deps{AccountSvc: accounts, CartSvc: &stubCartSvc{cart: &domain.Cart{ID: "c1"}}})

	req := authed(httptest.NewRequest(http.MethodPatch, "/cart/update_item", strings.NewReader(`{"item_id":"i1"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestClearCartHandler(t *testing.T) {
	accounts := &stubAccountSvc{user: &domain.User{ID: "u1"}}
	carts := &stubCartSvc{cart: &domain.Cart{ID: "c1"}}
	router := newTestRouter(t, Deps{AccountSvc: accounts, CartSvc: carts})

	req := authed(httptest.NewRequest(http.MethodDelete, "/cart/clear", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !carts.cleared {
		t.Fatalf("expected clear to be called")
	}
}
