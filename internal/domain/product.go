package domain

import "time"

type Product struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	PriceCents   int64     `json:"priceCents"`
	Stock        int       `json:"stock"`
	IsFeatured   bool      `json:"isFeatured"`
	IsActive     bool      `json:"isActive"`
	LikesCount   int       `json:"likesCount"`
	IsLiked      bool      `json:"isLiked"`
	CreatedAt    time.Time `json:"createdAt"`
}
