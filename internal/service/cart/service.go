package cart

import (
	"context"
	"errors"
	"strings"

	"shop-backend/internal/domain"
)

type Service struct {
	repo cartRepo
}

type cartRepo interface {
	GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

func New(repo cartRepo) *Service {
	return &Service{repo: repo}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetOrCreateByUser(ctx, userID)
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("product_id is required")
	}
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}
	cart, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUser(ctx, userID)
}

// UpdateItem sets a line's quantity; zero or negative removes the line.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errors.New("item_id is required")
	}
	cart, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUser(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errors.New("item_id is required")
	}
	cart, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUser(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUser(ctx, userID)
}
