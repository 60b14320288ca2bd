package domain

import "time"

// Order statuses. An order is cancellable while pending or processing.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentMethodDelivery = "delivery"
	PaymentMethodCard     = "card"
)

// Order is immutable after creation except for its status. Monetary fields
// are snapshots taken at checkout and are never recomputed from the catalog.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	UserID        string      `json:"userId"`
	TotalCents    int64       `json:"totalCents"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	FullName      string      `json:"fullName"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	PostalCode    string      `json:"postalCode"`
	CardLast4     string      `json:"cardLast4,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"-"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Quantity      int       `json:"quantity"`
	PriceCents    int64     `json:"priceCents"`
	SubtotalCents int64     `json:"subtotalCents"`
}
