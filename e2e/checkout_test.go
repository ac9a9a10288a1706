//go:build e2e

package e2e

import (
	"strings"
	"testing"

	"github.com/adyen/shopcheck/internal/dataset"
	"github.com/adyen/shopcheck/internal/pages"
	"github.com/adyen/shopcheck/internal/session"
)

// signIn logs in as the test user, registering the account first when the
// target site does not know it yet.
func signIn(t *testing.T, s *session.Session) {
	t.Helper()
	open(t, s, "/login")
	login := mustPage(pages.NewLoginPage(s.Page, pageOptions(t)...))(t)

	ok, err := login.Login(dataset.TestUser.Email, dataset.TestUser.Password)
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	if ok {
		return
	}

	t.Logf("login as %s failed, registering the account", dataset.TestUser.Email)
	user := dataset.NewUser
	user.Name = dataset.TestUser.Name
	user.Email = dataset.TestUser.Email
	user.Password = dataset.TestUser.Password

	open(t, s, "/login")
	started, err := login.Signup(user.Name, user.Email)
	check(t, started, err, "Failed to start signup for %s", user.Email)
	created, err := login.CompleteRegistration(user)
	check(t, created, err, "Failed to create account %s", user.Email)

	// Registration signs the user in; start from a clean login to prove the credentials work
	if _, err := login.Logout(); err != nil {
		t.Fatalf("Failed to log out: %v", err)
	}
	open(t, s, "/login")
	ok, err = login.Login(dataset.TestUser.Email, dataset.TestUser.Password)
	check(t, ok, err, "Failed to log in after registering %s", dataset.TestUser.Email)
}

// TestCheckout_PlaceOrder buys one product
// Feature: Checkout
//
//	Scenario: Place an order as a registered user
//	  Given I am logged in
//	  And the cart contains a product
//	  When I proceed to checkout
//	  Then my delivery address is shown
//	  When I place the order and pay by card
//	  Then the confirmation reads "ORDER PLACED!"
func TestCheckout_PlaceOrder(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	signIn(t, s)
	cart := addProducts(t, s, dataset.TestProducts[0])

	proceeded, err := cart.ProceedToCheckout()
	check(t, proceeded, err, "Failed to proceed to checkout")

	checkout := mustPage(pages.NewCheckoutPage(s.Page, pageOptions(t)...))(t)
	if !checkout.IsLoaded() {
		t.Fatal("Checkout page did not load")
	}
	address, shown, err := checkout.DeliveryAddress()
	check(t, shown, err, "Expected a delivery address")
	t.Logf("delivering to %s", strings.Join(strings.Fields(address), " "))

	placed, err := checkout.PlaceOrder()
	check(t, placed, err, "Failed to place the order")

	paid, err := checkout.CompletePayment(dataset.PaymentInfo)
	check(t, paid, err, "Failed to complete payment")

	msg, shown, err := checkout.ConfirmationMessage()
	check(t, shown, err, "Expected an order confirmation")
	if !strings.Contains(strings.ToUpper(msg), "ORDER PLACED!") {
		t.Errorf("Expected confirmation to contain 'ORDER PLACED!', got '%s'", msg)
	}
}

// TestCheckout_CartTotal checks the cart total before checkout
//
//	Scenario: Cart total matches item prices
//	  Given the cart contains every test product
//	  Then the cart total equals the sum of the item prices
func TestCheckout_CartTotal(t *testing.T) {
	t.Parallel()
	s := newSession(t)
	cart := addProducts(t, s, dataset.TestProducts...)

	sum := 0
	for _, name := range dataset.TestProducts {
		price, ok, err := cart.ProductPrice(name)
		check(t, ok, err, "Failed to read the price of %q", name)
		sum += price
	}
	if total := cartTotal(t, cart); total != sum {
		t.Errorf("Expected total %d to equal the sum of prices %d", total, sum)
	}
}
