package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/adyen/shopcheck/internal/models"
)

// MemoryOrderRepository keeps storefront orders in process; serve uses it
// unless a database is configured.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewMemoryOrderRepository creates an empty in-memory order repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

// CreateOrder stores order; references are unique
func (r *MemoryOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.Reference]; ok {
		return fmt.Errorf("failed to create order: duplicate reference %s", order.Reference)
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.Reference] = *order
	return nil
}

// GetOrderByReference returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[reference]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}
	return &order, nil
}

// UpdateOrderStatus sets the status and card digits of a stored order
func (r *MemoryOrderRepository) UpdateOrderStatus(reference, status, cardLast4 string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[reference]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, reference)
	}
	order.Status = models.OrderStatus(status)
	order.CardLast4 = cardLast4
	order.UpdatedAt = time.Now()
	r.orders[reference] = order
	return nil
}
