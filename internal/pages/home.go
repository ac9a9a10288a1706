package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// HomePage is the storefront landing page
type HomePage struct {
	Base
	sel HomeSelectors
}

// NewHomePage wraps page with the default home selectors
func NewHomePage(page playwright.Page, opts ...Option) (*HomePage, error) {
	return NewHomePageWithSelectors(page, DefaultHomeSelectors(), opts...)
}

// NewHomePageWithSelectors wraps page with a custom selector catalog
func NewHomePageWithSelectors(page playwright.Page, sel HomeSelectors, opts ...Option) (*HomePage, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	base, err := newBase(page, "HomePage", opts)
	if err != nil {
		return nil, err
	}
	return &HomePage{Base: base, sel: sel}, nil
}

// Selectors returns the catalog the page was built with
func (p *HomePage) Selectors() HomeSelectors {
	return p.sel
}

// IsLoaded reports whether the logo, slider and feature list are all visible
func (p *HomePage) IsLoaded() bool {
	p.logger.Info("Checking if homepage is loaded")
	return p.IsVisible(p.sel.Logo, p.timeouts.Soft) &&
		p.IsVisible(p.sel.Slider, p.timeouts.Soft) &&
		p.IsVisible(p.sel.FeaturesItems, p.timeouts.Soft)
}

// HasRecommendedItems reports whether the recommended carousel is shown
func (p *HomePage) HasRecommendedItems() bool {
	return p.IsVisible(p.sel.RecommendedItems, p.timeouts.Soft)
}

// GoToProducts follows the header link to /products
func (p *HomePage) GoToProducts() error {
	p.logger.Info("Navigating to products page")
	return p.clickAndSettle(p.sel.ProductsLink)
}

// GoToLogin follows the header link to /login
func (p *HomePage) GoToLogin() error {
	p.logger.Info("Navigating to login page")
	return p.clickAndSettle(p.sel.LoginLink)
}

// GoToCart follows the header link to /view_cart
func (p *HomePage) GoToCart() error {
	p.logger.Info("Navigating to cart page")
	return p.clickAndSettle(p.sel.CartLink)
}

// SearchProduct submits name through the search box.
// The box only exists on the products page, so callers navigate there first.
func (p *HomePage) SearchProduct(name string) error {
	p.logger.Info("Searching for product", zap.String("product", name))
	if err := p.Fill(p.sel.SearchBox, name); err != nil {
		return err
	}
	return p.clickAndSettle(p.sel.SearchButton)
}

// Subscribe submits email to the newsletter form in the footer and reports
// whether the success alert appeared.
func (p *HomePage) Subscribe(email string) (bool, error) {
	p.logger.Info("Subscribing", zap.String("email", email))
	if _, err := p.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		return false, fmt.Errorf("scroll to footer: %w", err)
	}
	if err := p.Fill(p.sel.SubscriptionEmail, email); err != nil {
		return false, err
	}
	if err := p.Click(p.sel.SubscriptionButton); err != nil {
		return false, err
	}
	return p.IsVisible(p.sel.SubscriptionAlert, p.timeouts.Soft), nil
}
