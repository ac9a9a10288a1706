package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/services"
)

// Form types posted to /signup
const (
	formTypeSignup        = "signup"
	formTypeCreateAccount = "create_account"
)

// Countries is the country list of the registration form
var Countries = []string{"India", "United States", "Canada", "Australia", "Israel", "New Zealand", "Singapore"}

// LoginData is the login and signup page
type LoginData struct {
	Email       string
	LoginError  string
	SignupError string
}

// SignupData is the account information form that follows signup
type SignupData struct {
	Name      string
	Email     string
	Error     string
	Days      []int
	Months    []string
	Years     []int
	Countries []string
}

// AccountStatusData is the account created and account deleted pages
type AccountStatusData struct {
	QA      string
	Heading string
	Message string
}

// LoginHandler serves the login page and handles login attempts
type LoginHandler struct {
	renderer *Renderer
	accounts services.AccountService
	logger   *zap.Logger
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(renderer *Renderer, accounts services.AccountService, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{renderer: renderer, accounts: accounts, logger: logger}
}

// ServeHTTP handles GET and POST /login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderer.Render(w, http.StatusOK, "login.html", viewFor(r, h.accounts, "Signup / Login", LoginData{}))
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	account, err := h.accounts.Authenticate(email, r.PostForm.Get("password"))
	if err != nil {
		h.logger.Info("Login rejected", zap.String("email", email))
		data := LoginData{Email: email, LoginError: "Your email or password is incorrect!"}
		h.renderer.Render(w, http.StatusOK, "login.html", viewFor(r, h.accounts, "Signup / Login", data))
		return
	}

	if err := h.accounts.SignIn(SessionID(r), account.Email); err != nil {
		h.logger.Error("Error signing in", zap.String("email", email), zap.Error(err))
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	h.logger.Info("Logged in", zap.String("email", account.Email))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupHandler handles both steps of registration posted to /signup
type SignupHandler struct {
	renderer *Renderer
	accounts services.AccountService
	logger   *zap.Logger
}

// NewSignupHandler creates a new SignupHandler
func NewSignupHandler(renderer *Renderer, accounts services.AccountService, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{renderer: renderer, accounts: accounts, logger: logger}
}

// ServeHTTP handles POST /signup
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	switch r.PostForm.Get("form_type") {
	case formTypeCreateAccount:
		h.createAccount(w, r)
	default:
		h.startSignup(w, r)
	}
}

func (h *SignupHandler) startSignup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostForm.Get("name"))
	email := strings.TrimSpace(r.PostForm.Get("email"))

	if h.accounts.Exists(email) {
		data := LoginData{SignupError: "Email Address already exist!"}
		h.renderer.Render(w, http.StatusOK, "login.html", viewFor(r, h.accounts, "Signup / Login", data))
		return
	}
	h.renderer.Render(w, http.StatusOK, "signup.html", viewFor(r, h.accounts, "Signup", newSignupData(name, email, "")))
}

func (h *SignupHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	form := r.PostForm
	account := models.Account{
		Name:         strings.TrimSpace(form.Get("name")),
		Email:        strings.TrimSpace(form.Get("email")),
		Password:     form.Get("password"),
		Title:        titleFor(form.Get("title")),
		FirstName:    form.Get("first_name"),
		LastName:     form.Get("last_name"),
		Company:      form.Get("company"),
		Address1:     form.Get("address1"),
		Address2:     form.Get("address2"),
		Country:      form.Get("country"),
		State:        form.Get("state"),
		City:         form.Get("city"),
		Zipcode:      form.Get("zipcode"),
		MobileNumber: form.Get("mobile_number"),
	}

	if err := h.accounts.Register(account); err != nil {
		message := err.Error()
		if errors.Is(err, services.ErrEmailTaken) {
			message = "Email Address already exist!"
		}
		h.renderer.Render(w, http.StatusOK, "signup.html", viewFor(r, h.accounts, "Signup", newSignupData(account.Name, account.Email, message)))
		return
	}

	if err := h.accounts.SignIn(SessionID(r), account.Email); err != nil {
		h.logger.Error("Error signing in new account", zap.String("email", account.Email), zap.Error(err))
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	h.logger.Info("Account created", zap.String("email", account.Email))
	http.Redirect(w, r, "/account_created", http.StatusSeeOther)
}

func newSignupData(name, email, message string) SignupData {
	days := make([]int, 31)
	for i := range days {
		days[i] = i + 1
	}
	months := make([]string, 12)
	for i := range months {
		months[i] = time.Month(i + 1).String()
	}
	years := make([]int, 0, 122)
	for y := 2021; y >= 1900; y-- {
		years = append(years, y)
	}
	return SignupData{
		Name:      name,
		Email:     email,
		Error:     message,
		Days:      days,
		Months:    months,
		Years:     years,
		Countries: Countries,
	}
}

func titleFor(value string) string {
	switch value {
	case "Mr":
		return "Mr."
	case "Mrs":
		return "Mrs."
	default:
		return ""
	}
}

// AccountCreatedHandler serves /account_created
type AccountCreatedHandler struct {
	renderer *Renderer
	accounts services.AccountService
}

// NewAccountCreatedHandler creates a new AccountCreatedHandler
func NewAccountCreatedHandler(renderer *Renderer, accounts services.AccountService) *AccountCreatedHandler {
	return &AccountCreatedHandler{renderer: renderer, accounts: accounts}
}

// ServeHTTP renders the account created confirmation
func (h *AccountCreatedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := AccountStatusData{
		QA:      "account-created",
		Heading: "Account Created!",
		Message: "Congratulations! Your new account has been successfully created!",
	}
	h.renderer.Render(w, http.StatusOK, "account_status.html", viewFor(r, h.accounts, "Account Created", data))
}

// LogoutHandler handles /logout
type LogoutHandler struct {
	accounts services.AccountService
}

// NewLogoutHandler creates a new LogoutHandler
func NewLogoutHandler(accounts services.AccountService) *LogoutHandler {
	return &LogoutHandler{accounts: accounts}
}

// ServeHTTP signs the session out and returns to the login page
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.accounts.SignOut(SessionID(r))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// DeleteAccountHandler handles /delete_account
type DeleteAccountHandler struct {
	renderer *Renderer
	accounts services.AccountService
	logger   *zap.Logger
}

// NewDeleteAccountHandler creates a new DeleteAccountHandler
func NewDeleteAccountHandler(renderer *Renderer, accounts services.AccountService, logger *zap.Logger) *DeleteAccountHandler {
	return &DeleteAccountHandler{renderer: renderer, accounts: accounts, logger: logger}
}

// ServeHTTP deletes the signed-in account
func (h *DeleteAccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	account, ok := h.accounts.Current(SessionID(r))
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := h.accounts.Delete(account.Email); err != nil {
		h.logger.Error("Error deleting account", zap.String("email", account.Email), zap.Error(err))
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Account deleted", zap.String("email", account.Email))
	data := AccountStatusData{
		QA:      "account-deleted",
		Heading: "Account Deleted!",
		Message: "Your account has been permanently deleted!",
	}
	h.renderer.Render(w, http.StatusOK, "account_status.html", viewFor(r, h.accounts, "Account Deleted", data))
}

// SubscribeHandler handles the footer newsletter form
type SubscribeHandler struct {
	accounts services.AccountService
}

// NewSubscribeHandler creates a new SubscribeHandler
func NewSubscribeHandler(accounts services.AccountService) *SubscribeHandler {
	return &SubscribeHandler{accounts: accounts}
}

// ServeHTTP handles POST /subscribe
func (h *SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		sendErrorResponse(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if err := h.accounts.Subscribe(r.PostForm.Get("email")); err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": "You have been successfully subscribed!"})
}
