package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DefaultCurrency is what the storefront prices in
const DefaultCurrency = "INR"

// OrderItem is one cart line frozen at order time
type OrderItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Total is price times quantity
func (i OrderItem) Total() int64 {
	return i.Price * int64(i.Quantity)
}

// Order is a storefront order placed from a cart
type Order struct {
	ID            string
	Reference     string
	Amount        int64
	Currency      string
	Status        OrderStatus
	CustomerEmail string
	CustomerName  string
	Items         []OrderItem
	CardLast4     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain errors
var (
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidCurrency         = errors.New("currency code must be 3 characters")
	ErrInvalidCustomer         = errors.New("customer email cannot be empty")
	ErrInvalidCard             = errors.New("card number must be 12 to 19 digits")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a pending order for the given items
func NewOrder(customerEmail, customerName string, items []OrderItem, currency string) (*Order, error) {
	if err := validateOrderInput(customerEmail, items, currency); err != nil {
		return nil, err
	}

	now := time.Now()
	id := uuid.New()

	return &Order{
		ID:            id.String(),
		Reference:     fmt.Sprintf("ORDER-%d-%s", now.Unix(), id.String()[:8]),
		Amount:        lo.SumBy(items, OrderItem.Total),
		Currency:      currency,
		Status:        OrderStatusPending,
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// NewOrderFromCart freezes the current cart contents into a pending order
func NewOrderFromCart(account *Account, cart *Cart) (*Order, error) {
	if account == nil {
		return nil, ErrInvalidCustomer
	}
	items := lo.Map(cart.Items, func(item CartItem, _ int) OrderItem {
		return OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		}
	})
	return NewOrder(account.Email, account.Name, items, DefaultCurrency)
}

// validateOrderInput validates order creation parameters
func validateOrderInput(customerEmail string, items []OrderItem, currency string) error {
	if len(items) == 0 || lo.SumBy(items, OrderItem.Total) <= 0 {
		return ErrEmptyOrder
	}
	if len(currency) != 3 {
		return ErrInvalidCurrency
	}
	if customerEmail == "" {
		return ErrInvalidCustomer
	}
	return nil
}

// Place marks the order as placed and keeps the last four digits of cardNumber
func (o *Order) Place(cardNumber string) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot place order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	if !validCardNumber(cardNumber) {
		return ErrInvalidCard
	}

	o.Status = OrderStatusPlaced
	o.CardLast4 = cardNumber[len(cardNumber)-4:]
	o.UpdatedAt = time.Now()
	return nil
}

// Fail marks the order as failed
func (o *Order) Fail() error {
	if o.Status == OrderStatusPlaced {
		return fmt.Errorf("%w: cannot fail a placed order", ErrInvalidStatusTransition)
	}
	if o.Status == OrderStatusCancelled {
		return fmt.Errorf("%w: cannot fail a cancelled order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusFailed
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusPlaced {
		return fmt.Errorf("%w: cannot cancel a placed order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsPlaced returns true if the order has been paid for
func (o *Order) IsPlaced() bool {
	return o.Status == OrderStatusPlaced
}

// FormattedAmount returns the amount the way the storefront prints prices
func (o *Order) FormattedAmount() string {
	return FormatPrice(o.Amount)
}

func validCardNumber(number string) bool {
	return len(number) >= 12 && len(number) <= 19 && allDigits(number)
}
