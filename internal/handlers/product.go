package handlers

import (
	"net/http"
	"strconv"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/services"
)

// recommendedCount is how many products the home page carousel shows
const recommendedCount = 3

// CatalogData is the sidebar plus a product grid
type CatalogData struct {
	Products    []models.Product
	Recommended []models.Product
	Categories  []string
	Brands      []string
	Search      string
}

// ProductDetailsData is the single product page
type ProductDetailsData struct {
	Product models.Product
}

// HomeHandler serves the landing page
type HomeHandler struct {
	renderer *Renderer
	catalog  services.CatalogService
	accounts services.AccountService
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(renderer *Renderer, catalog services.CatalogService, accounts services.AccountService) *HomeHandler {
	return &HomeHandler{renderer: renderer, catalog: catalog, accounts: accounts}
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products := h.catalog.Products()
	data := CatalogData{
		Products:    products,
		Recommended: products[:min(recommendedCount, len(products))],
		Categories:  h.catalog.Categories(),
		Brands:      h.catalog.Brands(),
	}
	h.renderer.Render(w, http.StatusOK, "home.html", viewFor(r, h.accounts, "", data))
}

// ProductsHandler serves the product listing and search results
type ProductsHandler struct {
	renderer *Renderer
	catalog  services.CatalogService
	accounts services.AccountService
}

// NewProductsHandler creates a new ProductsHandler
func NewProductsHandler(renderer *Renderer, catalog services.CatalogService, accounts services.AccountService) *ProductsHandler {
	return &ProductsHandler{renderer: renderer, catalog: catalog, accounts: accounts}
}

// ServeHTTP handles GET /products and GET /products?search=term
func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	search := r.URL.Query().Get("search")
	products := h.catalog.Products()
	if search != "" {
		products = h.catalog.Search(search)
	}

	data := CatalogData{
		Products:   products,
		Categories: h.catalog.Categories(),
		Brands:     h.catalog.Brands(),
		Search:     search,
	}
	h.renderer.Render(w, http.StatusOK, "products.html", viewFor(r, h.accounts, "All Products", data))
}

// ProductDetailsHandler serves /product_details/{id}
type ProductDetailsHandler struct {
	renderer *Renderer
	catalog  services.CatalogService
	accounts services.AccountService
}

// NewProductDetailsHandler creates a new ProductDetailsHandler
func NewProductDetailsHandler(renderer *Renderer, catalog services.CatalogService, accounts services.AccountService) *ProductDetailsHandler {
	return &ProductDetailsHandler{renderer: renderer, catalog: catalog, accounts: accounts}
}

// ServeHTTP handles the product details request
func (h *ProductDetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	product, ok := h.lookup(r)
	if !ok {
		renderFailure(w, r, h.renderer, h.accounts, http.StatusNotFound, "Product not found", "The product you are looking for does not exist.")
		return
	}
	h.renderer.Render(w, http.StatusOK, "product_details.html", viewFor(r, h.accounts, "Product Details", ProductDetailsData{Product: product}))
}

func (h *ProductDetailsHandler) lookup(r *http.Request) (models.Product, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return models.Product{}, false
	}
	return h.catalog.Product(id)
}

// viewFor wraps content with the signed-in account of the requesting session
func viewFor(r *http.Request, accounts services.AccountService, title string, content any) View {
	user, _ := accounts.Current(SessionID(r))
	return View{Title: title, User: user, Content: content}
}
