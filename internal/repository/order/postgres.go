package order

import (
	"context"
	"errors"
	"io"
	"log"

	"shop-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

type checkoutLine struct {
	productID  string
	name       string
	imageURL   string
	priceCents int64
	stock      int
	active     bool
	quantity   int
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, in.UserID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}

	// Lock the product rows in a stable order so concurrent checkouts
	// touching the same products cannot deadlock.
	rows, err := tx.Query(ctx, `
SELECT p.id::text, p.name, COALESCE(p.image_url, ''), p.price_cents, p.stock, p.is_active, ci.quantity
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY p.id
FOR UPDATE OF p
`, cartID)
	if err != nil {
		return nil, err
	}

	var lines []checkoutLine
	for rows.Next() {
		var l checkoutLine
		if err := rows.Scan(&l.productID, &l.name, &l.imageURL, &l.priceCents, &l.stock, &l.active, &l.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var totalCents int64
	for _, l := range lines {
		if !l.active || l.stock < l.quantity {
			return nil, &domain.InsufficientStockError{ProductName: l.name}
		}
		totalCents += l.priceCents * int64(l.quantity)
	}

	order := domain.Order{
		OrderNumber:   in.OrderNumber,
		UserID:        in.UserID,
		TotalCents:    totalCents,
		PaymentMethod: in.PaymentMethod,
		Status:        domain.OrderStatusPending,
		FullName:      in.FullName,
		Phone:         in.Phone,
		Address:       in.Address,
		City:          in.City,
		PostalCode:    in.PostalCode,
		CardLast4:     in.CardLast4,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (order_number, user_id, total_cents, payment_method, status, full_name, phone, address, city, postal_code, card_last4)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
RETURNING id::text, created_at, updated_at
`,
		in.OrderNumber,
		in.UserID,
		totalCents,
		in.PaymentMethod,
		domain.OrderStatusPending,
		in.FullName,
		in.Phone,
		in.Address,
		in.City,
		in.PostalCode,
		in.CardLast4,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	for _, l := range lines {
		subtotal := l.priceCents * int64(l.quantity)
		item := domain.OrderItem{
			OrderID:       order.ID,
			ProductID:     l.productID,
			ProductName:   l.name,
			ImageURL:      l.imageURL,
			Quantity:      l.quantity,
			PriceCents:    l.priceCents,
			SubtotalCents: subtotal,
		}
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price_cents, total_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`, order.ID, l.productID, l.quantity, l.priceCents, subtotal).Scan(&item.ID); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)

		if _, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $1
WHERE id = $2
`, l.quantity, l.productID); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order_number=%s user_id=%s total_cents=%d items=%d", order.OrderNumber, order.UserID, order.TotalCents, len(order.Items))
	return &order, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `
SELECT status
FROM orders
WHERE id = $1 AND user_id = $2
FOR UPDATE
`, orderID, userID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if status != domain.OrderStatusPending && status != domain.OrderStatusProcessing {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `
UPDATE products p
SET stock = p.stock + oi.quantity
FROM order_items oi
WHERE oi.order_id = $1 AND oi.product_id = p.id
`, orderID); err != nil {
		return nil, err
	}

	// The row lock above makes this a compare-and-set: nobody else can have
	// moved the status since we read it.
	if _, err := tx.Exec(ctx, `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
`, domain.OrderStatusCancelled, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: cancelled order_id=%s user_id=%s", orderID, userID)
	return r.GetByID(ctx, userID, orderID)
}

const orderColumns = `
id::text, order_number, user_id::text, total_cents, payment_method, status,
full_name, phone, address, city, postal_code, COALESCE(card_last4, ''), created_at, updated_at
`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.fetchItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, orderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, p.name, COALESCE(p.image_url, ''),
       oi.quantity, oi.price_cents, oi.total_cents
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ImageURL,
			&item.Quantity,
			&item.PriceCents,
			&item.SubtotalCents,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.TotalCents,
		&o.PaymentMethod,
		&o.Status,
		&o.FullName,
		&o.Phone,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.CardLast4,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
