package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/dataset"
	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/services"
)

// StorefrontDeps are the services behind the local storefront
type StorefrontDeps struct {
	Catalog  services.CatalogService
	Carts    services.CartService
	Accounts services.AccountService
	Orders   services.OrderService
	Logger   *zap.Logger
}

// NewStorefront routes every storefront page the scenarios visit
func NewStorefront(deps StorefrontDeps) (http.Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := NewRenderer(logger.Named("render"))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/{$}", NewHomeHandler(renderer, deps.Catalog, deps.Accounts))
	mux.Handle("/products", NewProductsHandler(renderer, deps.Catalog, deps.Accounts))
	mux.Handle("/product_details/{id}", NewProductDetailsHandler(renderer, deps.Catalog, deps.Accounts))
	mux.Handle("/add_to_cart/{id}", NewAddToCartHandler(deps.Carts, logger))
	mux.Handle("/delete_cart/{id}", NewDeleteCartHandler(deps.Carts, logger))
	mux.Handle("/view_cart", NewViewCartHandler(renderer, deps.Carts, deps.Accounts))
	mux.Handle("/login", NewLoginHandler(renderer, deps.Accounts, logger))
	mux.Handle("/signup", NewSignupHandler(renderer, deps.Accounts, logger))
	mux.Handle("/account_created", NewAccountCreatedHandler(renderer, deps.Accounts))
	mux.Handle("/logout", NewLogoutHandler(deps.Accounts))
	mux.Handle("/delete_account", NewDeleteAccountHandler(renderer, deps.Accounts, logger))
	mux.Handle("/subscribe", NewSubscribeHandler(deps.Accounts))
	mux.Handle("/checkout", NewCheckoutHandler(renderer, deps.Carts, deps.Accounts))
	mux.Handle("/payment", NewPaymentHandler(renderer, deps.Carts, deps.Accounts, deps.Orders, logger))
	mux.Handle("/payment_done/{reference}", NewPaymentDoneHandler(renderer, deps.Accounts, deps.Orders))
	mux.Handle("/download_invoice/{reference}", NewInvoiceHandler(deps.Accounts, deps.Orders, logger))
	mux.Handle("/", NewNotFoundHandler(renderer, deps.Accounts))

	return WithSession(mux), nil
}

// NewDefaultStorefront serves the seeded catalog with the suite's test user
// already registered, storing orders in orderRepo.
func NewDefaultStorefront(logger *zap.Logger, orderRepo services.OrderRepository) (http.Handler, error) {
	catalog := services.NewDefaultCatalogService()
	return NewStorefront(StorefrontDeps{
		Catalog:  catalog,
		Carts:    services.NewCartService(catalog),
		Accounts: services.NewAccountService(SeedAccount()),
		Orders:   services.NewOrderService(orderRepo),
		Logger:   logger,
	})
}

// SeedAccount is the pre-registered account matching dataset.TestUser
func SeedAccount() models.Account {
	return models.Account{
		Name:         dataset.TestUser.Name,
		Email:        dataset.TestUser.Email,
		Password:     dataset.TestUser.Password,
		Title:        "Mr.",
		FirstName:    "Test",
		LastName:     "User",
		Company:      "Test Company",
		Address1:     "1 Example Road",
		Country:      "India",
		State:        "Karnataka",
		City:         "Bengaluru",
		Zipcode:      "560001",
		MobileNumber: "9999999999",
	}
}
