package like

import (
	"context"
	"errors"
	"strings"

	"shop-backend/internal/domain"
)

type Service struct {
	repo     likeRepo
	products productRepo
}

type likeRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Like, error)
	Toggle(ctx context.Context, userID, productID string) (bool, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo likeRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Like, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Toggle likes the product, or unlikes it when already liked.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if strings.TrimSpace(productID) == "" {
		return false, errors.New("product_id is required")
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if !p.IsActive {
		return false, domain.ErrNotFound
	}
	return s.repo.Toggle(ctx, userID, productID)
}
