package like

import (
	"context"

	"shop-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Like, error) {
	const q = `
SELECT lk.id::text, lk.user_id::text, lk.created_at,
       p.id::text, p.category_id::text, c.name, p.name, p.slug, COALESCE(p.description, ''),
       COALESCE(p.image_url, ''), p.price_cents, p.stock, p.is_featured, p.is_active, p.created_at,
       (SELECT COUNT(*) FROM likes l2 WHERE l2.product_id = p.id)
FROM likes lk
JOIN products p ON p.id = lk.product_id
JOIN categories c ON c.id = p.category_id
WHERE lk.user_id = $1
ORDER BY lk.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Like
	for rows.Next() {
		var lk domain.Like
		if err := rows.Scan(
			&lk.ID,
			&lk.UserID,
			&lk.CreatedAt,
			&lk.Product.ID,
			&lk.Product.CategoryID,
			&lk.Product.CategoryName,
			&lk.Product.Name,
			&lk.Product.Slug,
			&lk.Product.Description,
			&lk.Product.ImageURL,
			&lk.Product.PriceCents,
			&lk.Product.Stock,
			&lk.Product.IsFeatured,
			&lk.Product.IsActive,
			&lk.Product.CreatedAt,
			&lk.Product.LikesCount,
		); err != nil {
			return nil, err
		}
		lk.Product.IsLiked = true
		result = append(result, lk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
DELETE FROM likes
WHERE user_id = $1 AND product_id = $2
`, userID, productID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx, `
INSERT INTO likes (user_id, product_id)
VALUES ($1, $2)
`, userID, productID); err != nil {
			return false, err
		}
		return true, tx.Commit(ctx)
	}
	return false, tx.Commit(ctx)
}
