package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pollos/internal/domain"
	"pollos/internal/errors"

	"github.com/google/uuid"
)

// SQLOrderRepository stores orders through database/sql. The statements are
// portable between the mysql and sqlite drivers.
type SQLOrderRepository struct {
	db *sql.DB
}

func NewSQLOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{db: db}
}

func (r *SQLOrderRepository) Create(ctx context.Context, order domain.Order) (string, error) {
	query := `
		INSERT INTO orders (id, customer_name, phone, product, price, image, status, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query,
		id, order.CustomerName, order.Phone, order.Product, order.Price,
		order.Image, order.Status, order.Comment, order.CreatedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting order: %w", err)
	}

	return id, nil
}

func (r *SQLOrderRepository) FindByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	if phone == "" {
		return []domain.Order{}, nil
	}

	query := `
		SELECT id, customer_name, phone, product, price, image, status, comment, created_at
		FROM orders
		WHERE phone = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("querying orders by phone: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.CustomerName, &o.Phone, &o.Product, &o.Price,
			&o.Image, &o.Status, &o.Comment, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *SQLOrderRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	query := `UPDATE orders SET comment = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, comment, id)
	if err != nil {
		return fmt.Errorf("updating order comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}
