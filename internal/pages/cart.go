package pages

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// cartState is what the cart view settled into
type cartState int

const (
	cartUnknown cartState = iota
	cartEmpty
	cartFilled
)

// CartPage is /view_cart
type CartPage struct {
	Base
	sel CartSelectors
}

// NewCartPage wraps page with the default cart selectors
func NewCartPage(page playwright.Page, opts ...Option) (*CartPage, error) {
	return NewCartPageWithSelectors(page, DefaultCartSelectors(), opts...)
}

// NewCartPageWithSelectors wraps page with a custom selector catalog
func NewCartPageWithSelectors(page playwright.Page, sel CartSelectors, opts ...Option) (*CartPage, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	base, err := newBase(page, "CartPage", opts)
	if err != nil {
		return nil, err
	}
	return &CartPage{Base: base, sel: sel}, nil
}

// Selectors returns the catalog the page was built with
func (p *CartPage) Selectors() CartSelectors {
	return p.sel
}

// IsLoaded reports whether either the cart table or the empty cart message is visible
func (p *CartPage) IsLoaded() bool {
	p.logger.Info("Checking if cart page is loaded")
	return p.state() != cartUnknown
}

// CartItemsCount returns the number of rows in the cart; 0 for an empty cart
func (p *CartPage) CartItemsCount() (int, error) {
	p.logger.Info("Getting cart items count")
	if p.state() != cartFilled {
		return 0, nil
	}
	return p.Count(p.sel.CartRows)
}

// IsProductInCart reports whether a row is named exactly name
func (p *CartPage) IsProductInCart(name string) (bool, error) {
	p.logger.Info("Checking if product is in cart", zap.String("product", name))
	i, err := p.indexOf(name)
	return i != notFound, err
}

// ProductPrice returns the unit price of the row named name.
// ok is false when the product is not in the cart or its price has no digits.
func (p *CartPage) ProductPrice(name string) (price int, ok bool, err error) {
	p.logger.Info("Getting price for product", zap.String("product", name))
	i, err := p.indexOf(name)
	if err != nil || i == notFound {
		return 0, false, err
	}
	text, err := p.textNth(p.sel.ProductPrice, i)
	if err != nil {
		return 0, false, err
	}
	price, ok = ParseAmount(text)
	return price, ok, nil
}

// ProductQuantity returns the quantity shown for the row named name
func (p *CartPage) ProductQuantity(name string) (qty int, ok bool, err error) {
	i, err := p.indexOf(name)
	if err != nil || i == notFound {
		return 0, false, err
	}
	text, err := p.textNth(p.sel.ProductQuantity, i)
	if err != nil {
		return 0, false, err
	}
	qty, ok = ParseAmount(text)
	return qty, ok, nil
}

// TotalPrice sums the parsed per-row totals; 0 for an empty cart
func (p *CartPage) TotalPrice() (int, error) {
	p.logger.Info("Getting total price of cart")
	if p.state() != cartFilled {
		return 0, nil
	}
	totals, err := p.TextsOf(p.sel.ProductTotal)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, text := range totals {
		if n, ok := ParseAmount(text); ok {
			sum += n
		}
	}
	return sum, nil
}

// RemoveProduct deletes the row named name and waits for the row count to
// drop. It reports false without error when the product is not in the cart.
func (p *CartPage) RemoveProduct(name string) (bool, error) {
	p.logger.Info("Removing product from cart", zap.String("product", name))
	i, err := p.indexOf(name)
	if err != nil || i == notFound {
		return false, err
	}
	before, err := p.Count(p.sel.CartRows)
	if err != nil {
		return false, err
	}
	if err := p.clickNth(p.sel.DeleteButtons, i); err != nil {
		return false, err
	}
	removed := p.poll(p.timeouts.Navigation, func() bool {
		n, err := p.page.Locator(p.sel.CartRows).Count()
		return err == nil && n < before
	})
	if !removed {
		p.logger.Warn("Cart row count did not drop", zap.String("product", name), zap.Int("before", before))
	}
	return removed, nil
}

// ProceedToCheckout clicks the checkout button; false when it is not shown
func (p *CartPage) ProceedToCheckout() (bool, error) {
	p.logger.Info("Proceeding to checkout")
	if !p.IsVisible(p.sel.CheckoutButton, p.timeouts.Soft) {
		return false, nil
	}
	if err := p.clickAndSettle(p.sel.CheckoutButton); err != nil {
		return false, err
	}
	return true, nil
}

// state polls until the cart shows either the empty message or a first row
func (p *CartPage) state() cartState {
	empty := p.page.Locator(p.sel.EmptyCart).First()
	row := p.page.Locator(p.sel.CartRows).First()
	result := cartUnknown
	p.poll(p.timeouts.Soft, func() bool {
		if ok, err := empty.IsVisible(); err == nil && ok {
			result = cartEmpty
			return true
		}
		if ok, err := row.IsVisible(); err == nil && ok {
			result = cartFilled
			return true
		}
		return false
	})
	return result
}

// indexOf locates the row named name; notFound for an empty cart
func (p *CartPage) indexOf(name string) (int, error) {
	if p.state() != cartFilled {
		return notFound, nil
	}
	names, err := p.TextsOf(p.sel.ProductName)
	if err != nil {
		return notFound, err
	}
	return indexByName(names, name), nil
}
