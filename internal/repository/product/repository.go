package product

import (
	"context"

	"shop-backend/internal/domain"
)

// Filter narrows product listings. ViewerID, when set, resolves the isLiked
// flag for that user.
type Filter struct {
	CategorySlug string
	FeaturedOnly bool
	Search       string
	Limit        int
	ViewerID     *string
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string, viewerID *string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
