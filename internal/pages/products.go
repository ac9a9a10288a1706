package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ProductsPage is the /products listing, including search results
type ProductsPage struct {
	Base
	sel ProductsSelectors
}

// NewProductsPage wraps page with the default products selectors
func NewProductsPage(page playwright.Page, opts ...Option) (*ProductsPage, error) {
	return NewProductsPageWithSelectors(page, DefaultProductsSelectors(), opts...)
}

// NewProductsPageWithSelectors wraps page with a custom selector catalog
func NewProductsPageWithSelectors(page playwright.Page, sel ProductsSelectors, opts ...Option) (*ProductsPage, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	base, err := newBase(page, "ProductsPage", opts)
	if err != nil {
		return nil, err
	}
	return &ProductsPage{Base: base, sel: sel}, nil
}

// Selectors returns the catalog the page was built with
func (p *ProductsPage) Selectors() ProductsSelectors {
	return p.sel
}

// IsLoaded reports whether the title and product list are visible
func (p *ProductsPage) IsLoaded() bool {
	p.logger.Info("Checking if products page is loaded")
	return p.IsVisible(p.sel.Title, p.timeouts.Soft) &&
		p.IsVisible(p.sel.ProductList, p.timeouts.Soft)
}

// SidebarVisible reports whether the category and brand filters are shown
func (p *ProductsPage) SidebarVisible() bool {
	return p.IsVisible(p.sel.CategoryList, p.timeouts.Soft) &&
		p.IsVisible(p.sel.BrandsList, p.timeouts.Soft)
}

// Title returns the listing heading, e.g. "ALL PRODUCTS" or "SEARCHED PRODUCTS"
func (p *ProductsPage) Title() (string, error) {
	text, err := p.Text(p.sel.Title)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ProductNames returns every product name on the page in listing order
func (p *ProductsPage) ProductNames() ([]string, error) {
	p.logger.Info("Getting all product names")
	return p.TextsOf(p.sel.ProductNames)
}

// AddToCart adds the first product named name and dismisses the confirmation
// modal. It reports false without error when no such product is listed.
func (p *ProductsPage) AddToCart(name string) (bool, error) {
	p.logger.Info("Adding product to cart", zap.String("product", name))
	i, err := p.indexOf(name)
	if err != nil || i == notFound {
		return false, err
	}
	if err := p.clickNth(p.sel.AddToCart, i); err != nil {
		return false, err
	}
	if err := p.dismissCartModal(); err != nil {
		return false, err
	}
	return true, nil
}

// AddFirstProductToCart adds whatever product is listed first
func (p *ProductsPage) AddFirstProductToCart() error {
	p.logger.Info("Adding first product to cart")
	if err := p.page.Locator(p.sel.ProductInfo).First().Hover(); err != nil {
		return fmt.Errorf("hover first product: %w", err)
	}
	if err := p.clickNth(p.sel.AddToCart, 0); err != nil {
		return err
	}
	return p.dismissCartModal()
}

// ViewProductDetails opens the details page of the first product named name.
// It reports false without error when no such product is listed.
func (p *ProductsPage) ViewProductDetails(name string) (bool, error) {
	p.logger.Info("Viewing product details", zap.String("product", name))
	i, err := p.indexOf(name)
	if err != nil || i == notFound {
		return false, err
	}
	if err := p.clickNth(p.sel.ViewProduct, i); err != nil {
		return false, err
	}
	if err := p.WaitForLoad(); err != nil {
		return false, err
	}
	return p.IsVisible(p.sel.ProductDetails, p.timeouts.Soft), nil
}

// SearchResultsCount returns the number of product cards shown
func (p *ProductsPage) SearchResultsCount() (int, error) {
	p.logger.Info("Getting search results count")
	return p.Count(p.sel.SearchResult)
}

// SearchProduct submits term through the search box
func (p *ProductsPage) SearchProduct(term string) error {
	p.logger.Info("Searching for product", zap.String("term", term))
	if err := p.Fill(p.sel.SearchBox, term); err != nil {
		return err
	}
	return p.clickAndSettle(p.sel.SearchButton)
}

// GoToCart follows the header cart link
func (p *ProductsPage) GoToCart() error {
	p.logger.Info("Going to cart")
	return p.clickAndSettle(p.sel.ViewCartLink)
}

func (p *ProductsPage) indexOf(name string) (int, error) {
	names, err := p.ProductNames()
	if err != nil {
		return notFound, err
	}
	i := indexByName(names, name)
	if i == notFound {
		p.logger.Error("Product not found", zap.String("product", name))
	}
	return i, nil
}

func (p *ProductsPage) dismissCartModal() error {
	if err := p.WaitFor(p.sel.CartModal, StateVisible, p.timeouts.Navigation); err != nil {
		return err
	}
	if err := p.Click(p.sel.ContinueButton); err != nil {
		return err
	}
	return p.WaitFor(p.sel.CartModal, StateHidden, p.timeouts.Navigation)
}
