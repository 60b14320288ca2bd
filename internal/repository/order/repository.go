package order

import (
	"context"

	"shop-backend/internal/domain"
)

// CheckoutInput carries everything the checkout transaction needs besides the
// cart itself. CardLast4 is the only card detail that ever reaches storage.
type CheckoutInput struct {
	UserID        string
	OrderNumber   string
	PaymentMethod string
	FullName      string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	CardLast4     string
}

type Repository interface {
	// CreateFromCart converts the user's cart into an order inside a single
	// transaction: stock is re-checked under row locks, an order plus one item
	// per cart line is inserted with snapshot prices, stock is decremented and
	// the cart emptied. Any failure rolls the whole thing back.
	// A duplicate order number surfaces as domain.ErrAlreadyExists so the
	// caller can retry with a fresh one.
	CreateFromCart(ctx context.Context, in CheckoutInput) (*domain.Order, error)
	// Cancel transitions a pending or processing order to cancelled and
	// restores stock for every order item, atomically.
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
}
