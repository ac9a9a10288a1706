package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/services"
)

// invoiceFilename is the attachment name the invoice is served under
const invoiceFilename = "invoice.txt"

// CheckoutData represents the data passed to the checkout template
type CheckoutData struct {
	Address []string
	Cart    *models.Cart
	Total   string
}

// PaymentData is the card form
type PaymentData struct {
	Error string
}

// PaymentDoneData is the order confirmation
type PaymentDoneData struct {
	Order *models.Order
}

// CheckoutHandler handles the checkout page
type CheckoutHandler struct {
	renderer *Renderer
	carts    services.CartService
	accounts services.AccountService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(renderer *Renderer, carts services.CartService, accounts services.AccountService) *CheckoutHandler {
	return &CheckoutHandler{renderer: renderer, carts: carts, accounts: accounts}
}

// ServeHTTP handles the checkout page request
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := SessionID(r)
	account, ok := h.accounts.Current(session)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	cart := h.carts.Cart(session)
	if cart.IsEmpty() {
		http.Redirect(w, r, "/view_cart", http.StatusSeeOther)
		return
	}

	data := CheckoutData{
		Address: account.AddressLines(),
		Cart:    cart,
		Total:   models.FormatPrice(cart.Total()),
	}
	h.renderer.Render(w, http.StatusOK, "checkout.html", viewFor(r, h.accounts, "Checkout", data))
}

// PaymentHandler serves the card form and places the order
type PaymentHandler struct {
	renderer *Renderer
	carts    services.CartService
	accounts services.AccountService
	orders   services.OrderService
	logger   *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(renderer *Renderer, carts services.CartService, accounts services.AccountService, orders services.OrderService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{renderer: renderer, carts: carts, accounts: accounts, orders: orders, logger: logger}
}

// ServeHTTP handles GET and POST /payment
func (h *PaymentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := SessionID(r)
	account, ok := h.accounts.Current(session)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.renderer.Render(w, http.StatusOK, "payment.html", viewFor(r, h.accounts, "Payment", PaymentData{}))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	card := models.Card{
		NameOnCard:  strings.TrimSpace(r.PostForm.Get("name_on_card")),
		Number:      strings.ReplaceAll(r.PostForm.Get("card_number"), " ", ""),
		CVC:         strings.TrimSpace(r.PostForm.Get("cvc")),
		ExpiryMonth: strings.TrimSpace(r.PostForm.Get("expiry_month")),
		ExpiryYear:  strings.TrimSpace(r.PostForm.Get("expiry_year")),
	}

	order, err := h.orders.PlaceOrder(account, h.carts.Cart(session), card)
	if err != nil {
		h.logger.Warn("Payment rejected", zap.String("email", account.Email), zap.Error(err))
		data := PaymentData{Error: err.Error()}
		h.renderer.Render(w, http.StatusUnprocessableEntity, "payment.html", viewFor(r, h.accounts, "Payment", data))
		return
	}

	h.carts.Clear(session)
	h.logger.Info("Order placed",
		zap.String("reference", order.Reference),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)
	http.Redirect(w, r, "/payment_done/"+order.Reference, http.StatusSeeOther)
}

// PaymentDoneHandler serves /payment_done/{reference}
type PaymentDoneHandler struct {
	renderer *Renderer
	accounts services.AccountService
	orders   services.OrderService
}

// NewPaymentDoneHandler creates a new PaymentDoneHandler
func NewPaymentDoneHandler(renderer *Renderer, accounts services.AccountService, orders services.OrderService) *PaymentDoneHandler {
	return &PaymentDoneHandler{renderer: renderer, accounts: accounts, orders: orders}
}

// ServeHTTP renders the order confirmation
func (h *PaymentDoneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	order, ok := ownedOrder(r, h.accounts, h.orders)
	if !ok {
		renderFailure(w, r, h.renderer, h.accounts, http.StatusNotFound, "Order not found", "We could not find that order.")
		return
	}
	h.renderer.Render(w, http.StatusOK, "payment_done.html", viewFor(r, h.accounts, "Order Placed", PaymentDoneData{Order: order}))
}

// InvoiceHandler serves /download_invoice/{reference} as a text attachment
type InvoiceHandler struct {
	accounts services.AccountService
	orders   services.OrderService
	logger   *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(accounts services.AccountService, orders services.OrderService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{accounts: accounts, orders: orders, logger: logger}
}

// ServeHTTP writes the invoice for the order
func (h *InvoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	order, ok := ownedOrder(r, h.accounts, h.orders)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.logger.Info("Invoice downloaded", zap.String("reference", order.Reference))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoiceFilename))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, Invoice(order))
}

// Invoice is the text body of an order's invoice
func Invoice(order *models.Order) string {
	return fmt.Sprintf("Hi %s, Your total purchase amount is %d. Thank you", order.CustomerName, order.Amount)
}

// ownedOrder loads the path's order when it belongs to the signed-in account
func ownedOrder(r *http.Request, accounts services.AccountService, orders services.OrderService) (*models.Order, bool) {
	account, ok := accounts.Current(SessionID(r))
	if !ok {
		return nil, false
	}
	order, err := orders.GetOrderByReference(r.PathValue("reference"))
	if err != nil || !strings.EqualFold(order.CustomerEmail, account.Email) {
		return nil, false
	}
	return order, true
}
