package handlers

import (
	"net/http"

	"github.com/adyen/shopcheck/internal/services"
)

// FailureData represents the data for the failure template
type FailureData struct {
	Heading string
	Message string
}

// NotFoundHandler renders the storefront's own 404 page
type NotFoundHandler struct {
	renderer *Renderer
	accounts services.AccountService
}

// NewNotFoundHandler creates a new NotFoundHandler
func NewNotFoundHandler(renderer *Renderer, accounts services.AccountService) *NotFoundHandler {
	return &NotFoundHandler{renderer: renderer, accounts: accounts}
}

// ServeHTTP renders the not found page for any unrouted path
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	renderFailure(w, r, h.renderer, h.accounts, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

// renderFailure renders the failure page with status
func renderFailure(w http.ResponseWriter, r *http.Request, renderer *Renderer, accounts services.AccountService, status int, heading, message string) {
	data := FailureData{Heading: heading, Message: message}
	renderer.Render(w, status, "failure.html", viewFor(r, accounts, heading, data))
}
