package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"shop-backend/internal/domain"
	"shop-backend/internal/metrics"
	orderrepo "shop-backend/internal/repository/order"
)

const (
	orderNumberLength  = 10
	orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// How many fresh order numbers to try when an insert hits the unique
	// constraint before giving up.
	orderNumberRetries = 5
)

// ValidationErrors maps a field (or field group) name to a message. It is the
// error type behind 400 responses with per-field detail.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Service orchestrates checkout and cancellation.
type Service struct {
	repo    orderRepo
	metrics *metrics.Checkout
	logger  *log.Logger
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, in orderrepo.CheckoutInput) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

func New(repo orderrepo.Repository, checkout *metrics.Checkout, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, metrics: checkout, logger: logger}
}

// CheckoutInput mirrors the create_order request body. Card fields are used
// only to derive the last four digits and are never stored or logged.
type CheckoutInput struct {
	PaymentMethod string `json:"payment_method"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	CardNumber    string `json:"card_number"`
	CardExpiry    string `json:"card_expiry"`
	CardCVV       string `json:"card_cvv"`
}

// Checkout converts the user's cart into an order. The repository runs the
// stock check, order insert, stock decrement and cart clear as one
// transaction; this layer validates input, generates the order number and
// retries on the rare order number collision.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (*domain.Order, error) {
	if err := validateCheckout(in); err != nil {
		s.countFailure("invalid_input")
		return nil, err
	}

	cardLast4 := ""
	if in.PaymentMethod == domain.PaymentMethodCard {
		// Keep only the last 4 digits; the raw card details go no further.
		cardLast4 = in.CardNumber[len(in.CardNumber)-4:]
	}

	var lastErr error
	for i := 0; i < orderNumberRetries; i++ {
		number, err := generateOrderNumber()
		if err != nil {
			return nil, err
		}
		order, err := s.repo.CreateFromCart(ctx, orderrepo.CheckoutInput{
			UserID:        userID,
			OrderNumber:   number,
			PaymentMethod: in.PaymentMethod,
			FullName:      strings.TrimSpace(in.FullName),
			Phone:         strings.TrimSpace(in.Phone),
			Address:       strings.TrimSpace(in.Address),
			City:          strings.TrimSpace(in.City),
			PostalCode:    strings.TrimSpace(in.PostalCode),
			CardLast4:     cardLast4,
		})
		if err == nil {
			if s.metrics != nil {
				s.metrics.OrdersCreated.Inc()
			}
			return order, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Printf("order service: order number collision, retrying (%d/%d)", i+1, orderNumberRetries)
			lastErr = err
			continue
		}
		s.countFailure(failureReason(err))
		return nil, err
	}
	s.countFailure("number_exhausted")
	return nil, fmt.Errorf("could not allocate a unique order number: %w", lastErr)
}

// Cancel transitions the order to cancelled and restores stock.
func (s *Service) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.repo.Cancel(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OrdersCancelled.Inc()
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, userID, orderID)
}

func validateCheckout(in CheckoutInput) error {
	errs := ValidationErrors{}

	switch in.PaymentMethod {
	case domain.PaymentMethodDelivery, domain.PaymentMethodCard:
	default:
		errs["payment_method"] = "must be one of: delivery, card"
	}

	requireString(errs, "full_name", in.FullName, 200)
	requireString(errs, "phone", in.Phone, 20)
	requireString(errs, "address", in.Address, 0)
	requireString(errs, "city", in.City, 100)
	requireString(errs, "postal_code", in.PostalCode, 20)

	if in.PaymentMethod == domain.PaymentMethodCard {
		// Missing card sub-fields report as one grouped error, not three.
		if in.CardNumber == "" || in.CardExpiry == "" || in.CardCVV == "" {
			errs["card_details"] = "card number, expiry, and CVV are required for card payment"
		} else if len(in.CardNumber) < 4 {
			errs["card_details"] = "card number is too short"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func requireString(errs ValidationErrors, field, value string, maxLen int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		errs[field] = "this field is required"
		return
	}
	if maxLen > 0 && len(trimmed) > maxLen {
		errs[field] = fmt.Sprintf("must be at most %d characters", maxLen)
	}
}

func generateOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return string(buf), nil
}

func (s *Service) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.Failures.WithLabelValues(reason).Inc()
	}
}

func failureReason(err error) string {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	default:
		return "error"
	}
}
