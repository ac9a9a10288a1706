// Package dataset holds the fixed accounts, products and payment details the
// scenarios drive the storefront with.
package dataset

// Credentials identifies an existing storefront account
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Registration is everything the account creation form asks for
type Registration struct {
	Name         string
	Email        string
	Password     string
	Gender       string
	Day          string
	Month        string
	Year         string
	FirstName    string
	LastName     string
	Company      string
	Address1     string
	Address2     string
	Country      string
	State        string
	City         string
	Zipcode      string
	MobileNumber string
}

// Payment is a card accepted by the demo payment form
type Payment struct {
	NameOnCard  string
	CardNumber  string
	CVC         string
	ExpiryMonth string
	ExpiryYear  string
}

// TestUser is expected to exist on the target site
var TestUser = Credentials{
	Name:     "Test User",
	Email:    "test@example.com",
	Password: "password123",
}

// NewUser is used for the registration flow
var NewUser = Registration{
	Name:         "New User",
	Email:        "newuser@example.com",
	Password:     "newpassword123",
	Gender:       "male",
	Day:          "10",
	Month:        "May",
	Year:         "1990",
	FirstName:    "New",
	LastName:     "User",
	Company:      "Test Company",
	Address1:     "123 Test Street",
	Address2:     "Apt 456",
	Country:      "United States",
	State:        "California",
	City:         "Test City",
	Zipcode:      "12345",
	MobileNumber: "1234567890",
}

// SearchTerms are expected to return results
var SearchTerms = []string{"dress", "t-shirt", "jeans", "top"}

// TestProducts are catalog entries with distinct names
var TestProducts = []string{"Blue Top", "Men Tshirt", "Summer White Top"}

// PaymentInfo is the card used for checkout
var PaymentInfo = Payment{
	NameOnCard:  "Test User",
	CardNumber:  "4111111111111111",
	CVC:         "123",
	ExpiryMonth: "12",
	ExpiryYear:  "2030",
}
