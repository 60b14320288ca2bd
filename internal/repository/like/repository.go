package like

import (
	"context"

	"shop-backend/internal/domain"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Like, error)
	// Toggle creates the like if absent and reports true, or removes an
	// existing like and reports false.
	Toggle(ctx context.Context, userID, productID string) (liked bool, err error)
}
