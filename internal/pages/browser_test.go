package pages

import (
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/dataset"
	"github.com/adyen/shopcheck/internal/handlers"
	"github.com/adyen/shopcheck/internal/repository"
)

var (
	driverOnce sync.Once
	driver     *playwright.Playwright
	browser    playwright.Browser
	driverErr  error
)

// testTimeouts keep absent-element checks quick against the local storefront
var testTimeouts = Timeouts{Navigation: 10 * time.Second, Soft: 1 * time.Second}

func TestMain(m *testing.M) {
	code := m.Run()
	if browser != nil {
		browser.Close()
	}
	if driver != nil {
		driver.Stop()
	}
	os.Exit(code)
}

// storefrontPage opens a fresh browser context on a fresh local storefront and
// returns the page with the storefront's base URL. It skips without a driver.
func storefrontPage(t *testing.T) (playwright.Page, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests are skipped in short mode")
	}
	driverOnce.Do(func() {
		driver, driverErr = playwright.Run()
		if driverErr != nil {
			return
		}
		browser, driverErr = driver.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(true),
		})
	})
	if driverErr != nil {
		t.Skipf("playwright is not available: %v", driverErr)
	}

	storefront, err := handlers.NewDefaultStorefront(zap.NewNop(), repository.NewMemoryOrderRepository())
	require.NoError(t, err)
	server := httptest.NewServer(storefront)
	t.Cleanup(server.Close)

	ctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		AcceptDownloads: playwright.Bool(true),
	})
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })

	page, err := ctx.NewPage()
	require.NoError(t, err)
	return page, server.URL
}

func open(t *testing.T, page playwright.Page, url string) {
	t.Helper()
	base, err := newBase(page, "test", []Option{WithTimeouts(testTimeouts)})
	require.NoError(t, err)
	require.NoError(t, base.NavigateTo(url))
}

func TestBase_SoftChecks(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL)

	base, err := newBase(page, "test", []Option{WithTimeouts(testTimeouts)})
	require.NoError(t, err)

	// GIVEN a selector that matches nothing
	// WHEN it is counted and checked
	n, err := base.Count("#does-not-exist")

	// THEN absence is not an error
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, base.IsVisible("#does-not-exist", testTimeouts.Soft))
	assert.True(t, base.IsVisible(".logo", testTimeouts.Soft))

	texts, err := base.TextsOf(".shop-menu li a")
	require.NoError(t, err)
	assert.Contains(t, texts, "Products")
}

func TestHomePage(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL)

	home, err := NewHomePage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)

	assert.True(t, home.IsLoaded())
	assert.True(t, home.HasRecommendedItems())

	subscribed, err := home.Subscribe("someone@example.com")
	require.NoError(t, err)
	assert.True(t, subscribed)

	require.NoError(t, home.GoToProducts())
	assert.Contains(t, page.URL(), "/products")
}

func TestProductsPage_Search(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/products")

	products, err := NewProductsPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)
	require.True(t, products.IsLoaded())
	assert.True(t, products.SidebarVisible())

	title, err := products.Title()
	require.NoError(t, err)
	assert.Equal(t, "ALL PRODUCTS", title)

	// WHEN
	require.NoError(t, products.SearchProduct("jeans"))

	// THEN
	title, err = products.Title()
	require.NoError(t, err)
	assert.Equal(t, "SEARCHED PRODUCTS", title)
	count, err := products.SearchResultsCount()
	require.NoError(t, err)
	assert.Positive(t, count)

	// WHEN nothing matches
	require.NoError(t, products.SearchProduct("qzxwvkjhgfdsapoiuytr"))

	// THEN
	count, err = products.SearchResultsCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	added, err := products.AddToCart("No Such Product")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestProductsPage_ViewDetails(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/products")

	products, err := NewProductsPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)

	shown, err := products.ViewProductDetails(dataset.TestProducts[0])
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Contains(t, page.URL(), "/product_details/")
}

func TestCartPage_EmptyCart(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/view_cart")

	cart, err := NewCartPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)

	assert.True(t, cart.IsLoaded())
	count, err := cart.CartItemsCount()
	require.NoError(t, err)
	assert.Zero(t, count)
	total, err := cart.TotalPrice()
	require.NoError(t, err)
	assert.Zero(t, total)

	removed, err := cart.RemoveProduct("Blue Top")
	require.NoError(t, err)
	assert.False(t, removed)
	_, ok, err := cart.ProductPrice("Blue Top")
	require.NoError(t, err)
	assert.False(t, ok)
	proceeded, err := cart.ProceedToCheckout()
	require.NoError(t, err)
	assert.False(t, proceeded)
}

func TestCheckoutPage_PaymentWithoutForm(t *testing.T) {
	// GIVEN a page that has no card form
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/view_cart")

	checkout, err := NewCheckoutPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)

	// WHEN payment is attempted
	start := time.Now()
	paid, err := checkout.CompletePayment(dataset.PaymentInfo)

	// THEN it reports false after the soft check instead of waiting on a fill
	require.NoError(t, err)
	assert.False(t, paid)
	assert.Less(t, time.Since(start), testTimeouts.Navigation)
}

func TestCartPage_AddAndRemove(t *testing.T) {
	// GIVEN two products in the cart
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/products")

	products, err := NewProductsPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)
	for _, name := range dataset.TestProducts[:2] {
		added, err := products.AddToCart(name)
		require.NoError(t, err)
		require.True(t, added, name)
	}
	require.NoError(t, products.GoToCart())

	cart, err := NewCartPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)

	// WHEN the cart is read
	count, err := cart.CartItemsCount()
	require.NoError(t, err)
	first, ok, err := cart.ProductPrice(dataset.TestProducts[0])
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := cart.ProductPrice(dataset.TestProducts[1])
	require.NoError(t, err)
	require.True(t, ok)
	total, err := cart.TotalPrice()
	require.NoError(t, err)

	// THEN the total is the sum of the line totals
	assert.Equal(t, 2, count)
	assert.Equal(t, first+second, total)
	qty, ok, err := cart.ProductQuantity(dataset.TestProducts[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, qty)

	// WHEN one is removed
	removed, err := cart.RemoveProduct(dataset.TestProducts[0])

	// THEN
	require.NoError(t, err)
	assert.True(t, removed)
	inCart, err := cart.IsProductInCart(dataset.TestProducts[0])
	require.NoError(t, err)
	assert.False(t, inCart)
	count, err = cart.CartItemsCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoginPage(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/login")

	login, err := NewLoginPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)
	require.True(t, login.IsLoaded())

	loggedOut, err := login.Logout()
	require.NoError(t, err)
	assert.False(t, loggedOut, "nobody is logged in yet")

	ok, err := login.Login(dataset.TestUser.Email, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	msg, shown, err := login.LoginError()
	require.NoError(t, err)
	require.True(t, shown)
	assert.Equal(t, "Your email or password is incorrect!", msg)

	ok, err = login.Login(dataset.TestUser.Email, dataset.TestUser.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	loggedOut, err = login.Logout()
	require.NoError(t, err)
	assert.True(t, loggedOut)
}

func TestLoginPage_Registration(t *testing.T) {
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/login")

	login, err := NewLoginPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)

	user := dataset.NewUser
	started, err := login.Signup(user.Name, user.Email)
	require.NoError(t, err)
	require.True(t, started)

	created, err := login.CompleteRegistration(user)
	require.NoError(t, err)
	assert.True(t, created)

	deleted, err := login.DeleteAccount()
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestCheckoutPage_OrderThroughInvoice(t *testing.T) {
	// GIVEN a logged in user with a product in the cart
	page, baseURL := storefrontPage(t)
	open(t, page, baseURL+"/login")

	login, err := NewLoginPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)
	ok, err := login.Login(dataset.TestUser.Email, dataset.TestUser.Password)
	require.NoError(t, err)
	require.True(t, ok)

	open(t, page, baseURL+"/products")
	products, err := NewProductsPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)
	require.NoError(t, products.AddFirstProductToCart())
	require.NoError(t, products.GoToCart())

	cart, err := NewCartPage(page, WithTimeouts(testTimeouts))
	require.NoError(t, err)
	proceeded, err := cart.ProceedToCheckout()
	require.NoError(t, err)
	require.True(t, proceeded)

	// WHEN the order is reviewed and paid
	downloads := t.TempDir()
	checkout, err := NewCheckoutPage(page, WithTimeouts(testTimeouts), WithDownloadDir(downloads))
	require.NoError(t, err)
	require.True(t, checkout.IsLoaded())

	address, shown, err := checkout.DeliveryAddress()
	require.NoError(t, err)
	require.True(t, shown)
	assert.Contains(t, address, handlers.SeedAccount().City)

	placed, err := checkout.PlaceOrder()
	require.NoError(t, err)
	require.True(t, placed)

	paid, err := checkout.CompletePayment(dataset.PaymentInfo)
	require.NoError(t, err)
	require.True(t, paid)

	// THEN the invoice can be downloaded
	path, saved, err := checkout.DownloadInvoice()
	require.NoError(t, err)
	require.True(t, saved)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Your total purchase amount is")

	continued, err := checkout.ContinueAfterOrder()
	require.NoError(t, err)
	assert.True(t, continued)
}
