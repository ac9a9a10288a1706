package pages

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrEmptySelector is returned when a selector catalog has a blank field
var ErrEmptySelector = errors.New("empty selector")

// HomeSelectors locates the landing page elements
type HomeSelectors struct {
	ProductsLink       string
	LoginLink          string
	CartLink           string
	SearchBox          string
	SearchButton       string
	Slider             string
	Logo               string
	RecommendedItems   string
	SubscriptionEmail  string
	SubscriptionButton string
	SubscriptionAlert  string
	FeaturesItems      string
}

// LoginSelectors locates the login and signup forms
type LoginSelectors struct {
	LoginEmail            string
	LoginPassword         string
	LoginButton           string
	SignupName            string
	SignupEmail           string
	SignupButton          string
	SignupForm            string
	ErrorMessage          string
	LogoutLink            string
	DeleteAccountLink     string
	AccountCreatedMessage string
	GenderMale            string
	GenderFemale          string
	Password              string
	Days                  string
	Months                string
	Years                 string
	Newsletter            string
	Optin                 string
	FirstName             string
	LastName              string
	Company               string
	Address1              string
	Address2              string
	Country               string
	State                 string
	City                  string
	Zipcode               string
	MobileNumber          string
	CreateAccountButton   string
}

// ProductsSelectors locates the product listing and search
type ProductsSelectors struct {
	Title          string
	ProductList    string
	ProductNames   string
	AddToCart      string
	ViewProduct    string
	ProductInfo    string
	SearchResult   string
	CartModal      string
	ContinueButton string
	ViewCartLink   string
	CategoryList   string
	BrandsList     string
	SearchBox      string
	SearchButton   string
	ProductDetails string
}

// CartSelectors locates the cart table
type CartSelectors struct {
	CartTable       string
	CheckoutButton  string
	DeleteButtons   string
	CartRows        string
	EmptyCart       string
	ProductPrice    string
	ProductQuantity string
	ProductTotal    string
	ProductName     string
}

// CheckoutSelectors locates the review, payment and confirmation steps
type CheckoutSelectors struct {
	AddressDetails     string
	OrderInfo          string
	PlaceOrderButton   string
	PaymentName        string
	PaymentCardNumber  string
	PaymentCVC         string
	PaymentExpiryMonth string
	PaymentExpiryYear  string
	PaymentSubmit      string
	OrderPlaced        string
	DownloadInvoice    string
	ContinueButton     string
}

// DefaultHomeSelectors matches the automationexercise.com landing page
func DefaultHomeSelectors() HomeSelectors {
	return HomeSelectors{
		ProductsLink:       "a[href='/products']",
		LoginLink:          "a[href='/login']",
		CartLink:           "a[href='/view_cart']",
		SearchBox:          "#search_product",
		SearchButton:       "#submit_search",
		Slider:             "#slider-carousel",
		Logo:               ".logo",
		RecommendedItems:   "#recommended-item-carousel",
		SubscriptionEmail:  "#susbscribe_email",
		SubscriptionButton: "#subscribe",
		SubscriptionAlert:  ".alert-success",
		FeaturesItems:      ".features_items",
	}
}

// DefaultLoginSelectors matches the /login page and the registration form
func DefaultLoginSelectors() LoginSelectors {
	return LoginSelectors{
		LoginEmail:            "input[data-qa='login-email']",
		LoginPassword:         "input[data-qa='login-password']",
		LoginButton:           "button[data-qa='login-button']",
		SignupName:            "input[data-qa='signup-name']",
		SignupEmail:           "input[data-qa='signup-email']",
		SignupButton:          "button[data-qa='signup-button']",
		SignupForm:            "form[action='/signup']",
		ErrorMessage:          ".login-form .alert-danger",
		LogoutLink:            "a[href='/logout']",
		DeleteAccountLink:     "a[href='/delete_account']",
		AccountCreatedMessage: "h2.title",
		GenderMale:            "#id_gender1",
		GenderFemale:          "#id_gender2",
		Password:              "input[data-qa='password']",
		Days:                  "select[data-qa='days']",
		Months:                "select[data-qa='months']",
		Years:                 "select[data-qa='years']",
		Newsletter:            "#newsletter",
		Optin:                 "#optin",
		FirstName:             "input[data-qa='first_name']",
		LastName:              "input[data-qa='last_name']",
		Company:               "input[data-qa='company']",
		Address1:              "input[data-qa='address']",
		Address2:              "input[data-qa='address2']",
		Country:               "select[data-qa='country']",
		State:                 "input[data-qa='state']",
		City:                  "input[data-qa='city']",
		Zipcode:               "input[data-qa='zipcode']",
		MobileNumber:          "input[data-qa='mobile_number']",
		CreateAccountButton:   "button[data-qa='create-account']",
	}
}

// DefaultProductsSelectors matches the /products listing.
// Name, add-to-cart and view-product selectors are all scoped so that the nth
// match of each refers to the same product card.
func DefaultProductsSelectors() ProductsSelectors {
	return ProductsSelectors{
		Title:          ".features_items .title",
		ProductList:    ".features_items",
		ProductNames:   ".productinfo p",
		AddToCart:      ".productinfo .add-to-cart",
		ViewProduct:    ".choose a",
		ProductInfo:    ".productinfo",
		SearchResult:   ".features_items .product-image-wrapper",
		CartModal:      "#cartModal",
		ContinueButton: "#cartModal .btn-success",
		ViewCartLink:   ".shop-menu a[href='/view_cart']",
		CategoryList:   ".category-products",
		BrandsList:     ".brands-name",
		SearchBox:      "#search_product",
		SearchButton:   "#submit_search",
		ProductDetails: ".product-information",
	}
}

// DefaultCartSelectors matches /view_cart
func DefaultCartSelectors() CartSelectors {
	return CartSelectors{
		CartTable:       "#cart_info",
		CheckoutButton:  ".check_out",
		DeleteButtons:   ".cart_quantity_delete",
		CartRows:        "#cart_info tbody tr",
		EmptyCart:       "#empty_cart",
		ProductPrice:    ".cart_price p",
		ProductQuantity: ".cart_quantity button",
		ProductTotal:    ".cart_total_price",
		ProductName:     ".cart_description h4 a",
	}
}

// DefaultCheckoutSelectors matches /checkout, /payment and /payment_done
func DefaultCheckoutSelectors() CheckoutSelectors {
	return CheckoutSelectors{
		AddressDetails:     "#address_delivery",
		OrderInfo:          "#cart_info",
		PlaceOrderButton:   "a.check_out",
		PaymentName:        "input[name='name_on_card']",
		PaymentCardNumber:  "input[name='card_number']",
		PaymentCVC:         "input[name='cvc']",
		PaymentExpiryMonth: "input[name='expiry_month']",
		PaymentExpiryYear:  "input[name='expiry_year']",
		PaymentSubmit:      "#submit",
		OrderPlaced:        "[data-qa='order-placed']",
		DownloadInvoice:    "a.check_out",
		ContinueButton:     "a[data-qa='continue-button']",
	}
}

// Validate reports the first empty selector
func (s HomeSelectors) Validate() error { return validateSelectors("HomeSelectors", s) }

// Validate reports the first empty selector
func (s LoginSelectors) Validate() error { return validateSelectors("LoginSelectors", s) }

// Validate reports the first empty selector
func (s ProductsSelectors) Validate() error { return validateSelectors("ProductsSelectors", s) }

// Validate reports the first empty selector
func (s CartSelectors) Validate() error { return validateSelectors("CartSelectors", s) }

// Validate reports the first empty selector
func (s CheckoutSelectors) Validate() error { return validateSelectors("CheckoutSelectors", s) }

// validateSelectors walks every string field of a catalog struct
func validateSelectors(catalog string, v any) error {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rv.Field(i)
		if field.Kind() != reflect.String {
			continue
		}
		if field.String() == "" {
			return fmt.Errorf("%w: %s.%s", ErrEmptySelector, catalog, rt.Field(i).Name)
		}
	}
	return nil
}
