package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/services"
)

// CartData is the view cart page
type CartData struct {
	Cart *models.Cart
}

// CartResponse is what the add and delete endpoints return to the page script
type CartResponse struct {
	Items int   `json:"items"`
	Total int64 `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AddToCartHandler handles GET /add_to_cart/{id} from the product card script
type AddToCartHandler struct {
	carts  services.CartService
	logger *zap.Logger
}

// NewAddToCartHandler creates a new AddToCartHandler
func NewAddToCartHandler(carts services.CartService, logger *zap.Logger) *AddToCartHandler {
	return &AddToCartHandler{carts: carts, logger: logger}
}

// ServeHTTP adds one of the product to the session's cart
func (h *AddToCartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		sendErrorResponse(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.Add(SessionID(r), id)
	if errors.Is(err, services.ErrProductNotFound) {
		sendErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Error adding to cart", zap.Int("product_id", id), zap.Error(err))
		sendErrorResponse(w, "Failed to add product", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Product added to cart", zap.Int("product_id", id), zap.Int("items", cart.Len()))
	sendJSON(w, http.StatusOK, CartResponse{Items: cart.Len(), Total: cart.Total()})
}

// DeleteCartHandler handles GET /delete_cart/{id} from the cart page script
type DeleteCartHandler struct {
	carts  services.CartService
	logger *zap.Logger
}

// NewDeleteCartHandler creates a new DeleteCartHandler
func NewDeleteCartHandler(carts services.CartService, logger *zap.Logger) *DeleteCartHandler {
	return &DeleteCartHandler{carts: carts, logger: logger}
}

// ServeHTTP removes the product's line from the session's cart
func (h *DeleteCartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		sendErrorResponse(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	session := SessionID(r)
	if !h.carts.Remove(session, id) {
		sendErrorResponse(w, "Product is not in the cart", http.StatusNotFound)
		return
	}

	cart := h.carts.Cart(session)
	h.logger.Info("Product removed from cart", zap.Int("product_id", id), zap.Int("items", cart.Len()))
	sendJSON(w, http.StatusOK, CartResponse{Items: cart.Len(), Total: cart.Total()})
}

// ViewCartHandler serves /view_cart
type ViewCartHandler struct {
	renderer *Renderer
	carts    services.CartService
	accounts services.AccountService
}

// NewViewCartHandler creates a new ViewCartHandler
func NewViewCartHandler(renderer *Renderer, carts services.CartService, accounts services.AccountService) *ViewCartHandler {
	return &ViewCartHandler{renderer: renderer, carts: carts, accounts: accounts}
}

// ServeHTTP renders the session's cart
func (h *ViewCartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := CartData{Cart: h.carts.Cart(SessionID(r))}
	h.renderer.Render(w, http.StatusOK, "view_cart.html", viewFor(r, h.accounts, "Checkout", data))
}

// sendJSON writes v as a JSON response
func sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
