package services

import (
	"fmt"

	"github.com/adyen/shopcheck/internal/models"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByReference(reference string) (*models.Order, error)
	UpdateOrderStatus(reference, status, cardLast4 string) error
}

// OrderService handles order business logic
type OrderService interface {
	PlaceOrder(account *models.Account, cart *models.Cart, card models.Card) (*models.Order, error)
	GetOrderByReference(reference string) (*models.Order, error)
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// PlaceOrder turns the cart into an order and pays for it with card
func (s *OrderServiceImpl) PlaceOrder(account *models.Account, cart *models.Cart, card models.Card) (*models.Order, error) {
	order, err := models.NewOrderFromCart(account, cart)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payment: %w", err)
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := order.Place(card.Number); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrderStatus(order.Reference, string(order.Status), order.CardLast4); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

// GetOrderByReference retrieves an order by its reference
func (s *OrderServiceImpl) GetOrderByReference(reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}
