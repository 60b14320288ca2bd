package cart

import (
	"context"

	"shop-backend/internal/domain"
)

type Repository interface {
	// GetOrCreateByUser returns the user's cart, creating it on first access.
	GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem merges quantity into an existing line for the same product, or
	// inserts a new line. Stock and the active flag are checked against the
	// current product row under a write lock.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// UpdateItemQuantity sets the line quantity; quantity <= 0 deletes the line.
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}
