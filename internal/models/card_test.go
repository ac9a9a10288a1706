package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_Validate(t *testing.T) {
	valid := Card{
		NameOnCard:  "Test User",
		Number:      "4111111111111111",
		CVC:         "123",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
	}

	tests := []struct {
		name    string
		mutate  func(c *Card)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Card) {}},
		{name: "missing name", mutate: func(c *Card) { c.NameOnCard = "" }, wantErr: ErrMissingCardName},
		{name: "short number", mutate: func(c *Card) { c.Number = "4111" }, wantErr: ErrInvalidCard},
		{name: "letters in cvc", mutate: func(c *Card) { c.CVC = "12a" }, wantErr: ErrInvalidCVC},
		{name: "four digit cvc", mutate: func(c *Card) { c.CVC = "1234" }},
		{name: "month 13", mutate: func(c *Card) { c.ExpiryMonth = "13" }, wantErr: ErrInvalidExpiry},
		{name: "two digit year", mutate: func(c *Card) { c.ExpiryYear = "30" }, wantErr: ErrInvalidExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := valid
			tt.mutate(&card)

			err := card.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
