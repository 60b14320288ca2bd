package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	Name        string
	Slug        string
	Description string
}

type productSeed struct {
	CategorySlug string
	Name         string
	Slug         string
	Description  string
	PriceCents   int64
	Stock        int
	Featured     bool
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Books", Slug: "books", Description: "Paperbacks and hardcovers"},
		{Name: "Accessories", Slug: "accessories", Description: "Bookmarks, lights and more"},
	}
	for _, c := range categories {
		if err := upsertCategory(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
	}

	products := []productSeed{
		{
			CategorySlug: "books",
			Name:         "The Go Programming Language",
			Slug:         "the-go-programming-language",
			Description:  "Donovan and Kernighan's classic",
			PriceCents:   3999,
			Stock:        25,
			Featured:     true,
		},
		{
			CategorySlug: "books",
			Name:         "Designing Data-Intensive Applications",
			Slug:         "designing-data-intensive-applications",
			Description:  "Kleppmann on storage and distribution",
			PriceCents:   4599,
			Stock:        12,
			Featured:     true,
		},
		{
			CategorySlug: "accessories",
			Name:         "Clip-on Reading Light",
			Slug:         "clip-on-reading-light",
			Description:  "Warm LED light with adjustable neck",
			PriceCents:   1299,
			Stock:        40,
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed) error {
	const q = `
INSERT INTO categories (name, slug, description)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description
`
	_, err := pool.Exec(ctx, q, c.Name, c.Slug, c.Description)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (category_id, name, slug, description, price_cents, stock, is_featured, is_active)
SELECT c.id, $2, $3, NULLIF($4, ''), $5, $6, $7, true
FROM categories c
WHERE c.slug = $1
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    is_featured = EXCLUDED.is_featured
`
	_, err := pool.Exec(ctx, q, p.CategorySlug, p.Name, p.Slug, p.Description, p.PriceCents, p.Stock, p.Featured)
	return err
}
