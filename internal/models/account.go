package models

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// Account is a registered storefront customer
type Account struct {
	Name         string
	Email        string
	Password     string
	Title        string
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

// Account errors
var (
	ErrInvalidEmail    = errors.New("email address is not valid")
	ErrInvalidName     = errors.New("name cannot be empty")
	ErrInvalidPassword = errors.New("password cannot be empty")
)

// Validate checks the fields the signup form requires
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidName
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if a.Password == "" {
		return ErrInvalidPassword
	}
	return nil
}

// AddressLines returns the delivery address in the order the checkout page prints it
func (a *Account) AddressLines() []string {
	full := strings.TrimSpace(strings.Join([]string{a.Title, a.FirstName, a.LastName}, " "))
	if full == "" {
		full = a.Name
	}
	lines := []string{full, a.Company, a.Address1, a.Address2}
	cityLine := strings.TrimSpace(strings.Join([]string{a.City, a.State, a.Zipcode}, " "))
	lines = append(lines, cityLine, a.Country, a.MobileNumber)

	return lo.Filter(lines, func(l string, _ int) bool { return strings.TrimSpace(l) != "" })
}
