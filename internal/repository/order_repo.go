package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/database"
	"github.com/adyen/shopcheck/internal/models"
)

// ErrOrderNotFound is returned when no order has the given reference
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles database operations for storefront orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository on the package connection
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		db: database.DB,
	}
}

// NewOrderRepositoryWithDB creates a new order repository with a specific database connection
func NewOrderRepositoryWithDB(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// CreateOrder creates a new order in the database
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, reference, amount, currency, status, customer_email, customer_name, items, card_last4, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
	`

	now := time.Now()
	_, err = r.db.Exec(query,
		order.ID,
		order.Reference,
		order.Amount,
		order.Currency,
		order.Status,
		order.CustomerEmail,
		order.CustomerName,
		items,
		order.CardLast4,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	return nil
}

// GetOrderByReference retrieves an order by its reference
func (r *OrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	query := `
		SELECT id, reference, amount, currency, status, customer_email, customer_name,
		       items, COALESCE(card_last4, ''), created_at, updated_at
		FROM orders
		WHERE reference = $1
	`

	order := &models.Order{}
	var items []byte
	err := r.db.QueryRow(query, reference).Scan(
		&order.ID,
		&order.Reference,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&order.CustomerEmail,
		&order.CustomerName,
		&items,
		&order.CardLast4,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}

	return order, nil
}

// UpdateOrderStatus updates the status and card digits of an order
func (r *OrderRepository) UpdateOrderStatus(reference, status, cardLast4 string) error {
	query := `
		UPDATE orders
		SET status = $1, card_last4 = NULLIF($2, ''), updated_at = $3
		WHERE reference = $4
	`

	result, err := r.db.Exec(query, status, cardLast4, time.Now(), reference)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}

	return nil
}
