package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/adyen/shopcheck/internal/models"
)

// ErrProductNotFound is returned for a product id the catalog does not have
var ErrProductNotFound = errors.New("product not found")

// CartService keeps one cart per browser session
type CartService interface {
	Cart(sessionID string) *models.Cart
	Add(sessionID string, productID int) (*models.Cart, error)
	Remove(sessionID string, productID int) bool
	Clear(sessionID string)
}

// CartServiceImpl implements CartService in memory
type CartServiceImpl struct {
	catalog CatalogService

	mu    sync.Mutex
	carts map[string]*models.Cart
}

// NewCartService creates a cart service that resolves products through catalog
func NewCartService(catalog CatalogService) CartService {
	return &CartServiceImpl{
		catalog: catalog,
		carts:   make(map[string]*models.Cart),
	}
}

// Cart returns a snapshot of the session's cart; an unknown session has an empty cart
func (s *CartServiceImpl) Cart(sessionID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[sessionID]; ok {
		return cart.Clone()
	}
	return &models.Cart{}
}

// Add puts one of productID into the session's cart
func (s *CartServiceImpl) Add(sessionID string, productID int) (*models.Cart, error) {
	product, ok := s.catalog.Product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &models.Cart{}
		s.carts[sessionID] = cart
	}
	cart.Add(product)
	return cart.Clone(), nil
}

// Remove drops productID from the session's cart and reports whether it was there
func (s *CartServiceImpl) Remove(sessionID string, productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return false
	}
	return cart.Remove(productID)
}

// Clear empties the session's cart
func (s *CartServiceImpl) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}
