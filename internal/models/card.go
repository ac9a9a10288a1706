package models

import (
	"errors"
	"strconv"
	"strings"
)

// Card is what the payment form submits
type Card struct {
	NameOnCard  string
	Number      string
	CVC         string
	ExpiryMonth string
	ExpiryYear  string
}

// Card errors
var (
	ErrMissingCardName = errors.New("name on card cannot be empty")
	ErrInvalidCVC      = errors.New("cvc must be 3 or 4 digits")
	ErrInvalidExpiry   = errors.New("expiry must be a month 1-12 and a 4 digit year")
)

// Validate checks the form fields; the number itself is checked when the order is placed
func (c Card) Validate() error {
	if strings.TrimSpace(c.NameOnCard) == "" {
		return ErrMissingCardName
	}
	if !validCardNumber(c.Number) {
		return ErrInvalidCard
	}
	if n := len(c.CVC); (n != 3 && n != 4) || !allDigits(c.CVC) {
		return ErrInvalidCVC
	}
	month, err := strconv.Atoi(c.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidExpiry
	}
	if len(c.ExpiryYear) != 4 || !allDigits(c.ExpiryYear) {
		return ErrInvalidExpiry
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
