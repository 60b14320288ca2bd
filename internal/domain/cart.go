package domain

import "time"

type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"-"`
	TotalCents int64      `json:"totalCents"`
	TotalItems int        `json:"totalItems"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Items      []CartItem `json:"items"`
}

type CartItem struct {
	ID            string    `json:"id"`
	CartID        string    `json:"-"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	ProductSlug   string    `json:"productSlug,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	PriceCents    int64     `json:"priceCents"`
	Quantity      int       `json:"quantity"`
	SubtotalCents int64     `json:"subtotalCents"`
	AddedAt       time.Time `json:"addedAt"`
}
