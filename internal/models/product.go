package models

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Product is a catalog entry
type Product struct {
	ID       int
	Name     string
	Category string
	Brand    string
	Price    int64
}

// FormattedPrice returns the price as the storefront prints it, e.g. "Rs. 500"
func (p Product) FormattedPrice() string {
	return FormatPrice(p.Price)
}

// Matches reports whether term appears in the name or category, ignoring case
func (p Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

// FormatPrice prints n rupees as "Rs. n"
func FormatPrice(n int64) string {
	return fmt.Sprintf("Rs. %d", n)
}

// CartItem is a product and how many of it are in the cart
type CartItem struct {
	Product  Product
	Quantity int
}

// Total is the line price
func (i CartItem) Total() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// FormattedTotal returns the line price as the storefront prints it
func (i CartItem) FormattedTotal() string {
	return FormatPrice(i.Total())
}

// Cart holds one session's items in the order they were first added
type Cart struct {
	Items []CartItem
}

// Add puts one more of p into the cart
func (c *Cart) Add(p Product) {
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// Remove drops the line for productID and reports whether there was one
func (c *Cart) Remove(productID int) bool {
	_, i, ok := lo.FindIndexOf(c.Items, func(item CartItem) bool {
		return item.Product.ID == productID
	})
	if !ok {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Len is the number of distinct lines
func (c *Cart) Len() int {
	return len(c.Items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums every line
func (c *Cart) Total() int64 {
	return lo.SumBy(c.Items, CartItem.Total)
}

// Clone returns a copy that does not share the item slice
func (c *Cart) Clone() *Cart {
	return &Cart{Items: append([]CartItem(nil), c.Items...)}
}
