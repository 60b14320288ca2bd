package product

import (
	"context"

	"shop-backend/internal/domain"
	productrepo "shop-backend/internal/repository/product"
)

const featuredLimit = 10

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter productrepo.Filter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Featured(ctx context.Context, viewerID *string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.Filter{
		FeaturedOnly: true,
		Limit:        featuredLimit,
		ViewerID:     viewerID,
	})
}

func (s *Service) GetBySlug(ctx context.Context, slug string, viewerID *string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug, viewerID)
}
