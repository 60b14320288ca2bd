package cart

import (
	"context"
	"errors"
	"testing"

	"shop-backend/internal/domain"
)

type stubRepo struct {
	cart *domain.Cart

	addErr    error
	updateErr error

	getCalls    int
	addedProd   string
	addedQty    int
	updatedItem string
	updatedQty  int
	removedItem string
	cleared     bool
}

func (s *stubRepo) GetOrCreateByUser(_ context.Context, _ string) (*domain.Cart, error) {
	s.getCalls++
	return s.cart, nil
}

func (s *stubRepo) AddItem(_ context.Context, _, productID string, quantity int) error {
	s.addedProd = productID
	s.addedQty = quantity
	return s.addErr
}

func (s *stubRepo) UpdateItemQuantity(_ context.Context, _, itemID string, quantity int) error {
	s.updatedItem = itemID
	s.updatedQty = quantity
	return s.updateErr
}

func (s *stubRepo) RemoveItem(_ context.Context, _, itemID string) error {
	s.removedItem = itemID
	return nil
}

func (s *stubRepo) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

func TestAddItemValidation(t *testing.T) {
	svc := New(&stubRepo{cart: &domain.Cart{ID: "c1"}})

	if _, err := svc.AddItem(context.Background(), "user", "  ", 1); err == nil {
		t.Fatalf("expected error for blank product id")
	}
	if _, err := svc.AddItem(context.Background(), "user", "p1", 0); err == nil {
		t.Fatalf("expected error for non-positive quantity")
	}
}

func TestAddItemRefetchesCart(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}}
	svc := New(repo)

	cart, err := svc.AddItem(context.Background(), "user", "p1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "c1" {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if repo.addedProd != "p1" || repo.addedQty != 3 {
		t.Fatalf("unexpected add call: %q x%d", repo.addedProd, repo.addedQty)
	}
	if repo.getCalls != 2 {
		t.Fatalf("expected cart to be re-read after the add, got %d reads", repo.getCalls)
	}
}

func TestAddItemPropagatesStockError(t *testing.T) {
	stockErr := &domain.InsufficientStockError{ProductName: "Mug"}
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}, addErr: stockErr}
	svc := New(repo)

	_, err := svc.AddItem(context.Background(), "user", "p1", 99)
	var got *domain.InsufficientStockError
	if !errors.As(err, &got) || got.ProductName != "Mug" {
		t.Fatalf("expected insufficient stock for Mug, got %v", err)
	}
}

func TestUpdateItemPassesQuantityThrough(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}}
	svc := New(repo)

	// Zero quantity is valid here; the repository turns it into a removal.
	if _, err := svc.UpdateItem(context.Background(), "user", "i1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updatedItem != "i1" || repo.updatedQty != 0 {
		t.Fatalf("unexpected update call: %q x%d", repo.updatedItem, repo.updatedQty)
	}
}

func TestUpdateItemRequiresItemID(t *testing.T) {
	svc := New(&stubRepo{cart: &domain.Cart{ID: "c1"}})
	if _, err := svc.UpdateItem(context.Background(), "user", "", 2); err == nil {
		t.Fatalf("expected error for blank item id")
	}
}

func TestRemoveItem(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}}
	svc := New(repo)

	if _, err := svc.RemoveItem(context.Background(), "user", "i1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removedItem != "i1" {
		t.Fatalf("expected item i1 removed, got %q", repo.removedItem)
	}
}

func TestClear(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "c1"}}
	svc := New(repo)

	if _, err := svc.Clear(context.Background(), "user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.cleared {
		t.Fatalf("expected cart to be cleared")
	}
}
