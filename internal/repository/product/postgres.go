package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"shop-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
p.id::text, p.category_id::text, c.name, p.name, p.slug, COALESCE(p.description, ''),
COALESCE(p.image_url, ''), p.price_cents, p.stock, p.is_featured, p.is_active, p.created_at,
(SELECT COUNT(*) FROM likes l WHERE l.product_id = p.id),
EXISTS (SELECT 1 FROM likes l WHERE l.product_id = p.id AND l.user_id = $1::uuid)
`

func (r *postgresRepo) List(ctx context.Context, filter Filter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.is_active = true
`
	args := []interface{}{filter.ViewerID}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		q += fmt.Sprintf("AND c.slug = $%d\n", len(args))
	}
	if filter.FeaturedOnly {
		q += "AND p.is_featured = true\n"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += fmt.Sprintf("AND p.name ILIKE $%d\n", len(args))
	}
	q += "ORDER BY p.created_at DESC\n"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf("LIMIT $%d\n", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string, viewerID *string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.is_active = true AND p.slug = $2
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, viewerID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE p.id = $2
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, (*string)(nil), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (category_id, name, slug, description, image_url, price_cents, stock, is_featured, is_active)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
ON CONFLICT (slug) DO UPDATE SET
    category_id = EXCLUDED.category_id,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    is_featured = EXCLUDED.is_featured,
    is_active = EXCLUDED.is_active
RETURNING id::text, created_at
`
	out := product
	err := r.pool.QueryRow(ctx, q,
		product.CategoryID,
		product.Name,
		product.Slug,
		product.Description,
		product.ImageURL,
		product.PriceCents,
		product.Stock,
		product.IsFeatured,
		product.IsActive,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", product.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s id=%s", out.Slug, out.ID)
	return &out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.CategoryName,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.ImageURL,
		&p.PriceCents,
		&p.Stock,
		&p.IsFeatured,
		&p.IsActive,
		&p.CreatedAt,
		&p.LikesCount,
		&p.IsLiked,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
