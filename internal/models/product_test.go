package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Matches(t *testing.T) {
	dress := Product{ID: 4, Name: "Sleeveless Dress", Category: "Women > Dress", Price: 1000}

	tests := []struct {
		term string
		want bool
	}{
		{term: "dress", want: true},
		{term: "DRESS", want: true},
		{term: "  sleeveless ", want: true},
		{term: "women", want: true},
		{term: "jeans", want: false},
		{term: "", want: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dress.Matches(tt.term), tt.term)
	}
}

func TestCart_AddRemove(t *testing.T) {
	// GIVEN
	blueTop := Product{ID: 1, Name: "Blue Top", Price: 500}
	tshirt := Product{ID: 2, Name: "Men Tshirt", Price: 400}
	cart := &Cart{}

	// WHEN
	cart.Add(blueTop)
	cart.Add(tshirt)
	cart.Add(blueTop)

	// THEN
	assert.Equal(t, 2, cart.Len())
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(1400), cart.Total())
	assert.Equal(t, "Rs. 1000", cart.Items[0].FormattedTotal())

	assert.True(t, cart.Remove(blueTop.ID))
	assert.False(t, cart.Remove(blueTop.ID))
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, int64(400), cart.Total())

	assert.True(t, cart.Remove(tshirt.ID))
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total())
}

func TestCart_Clone(t *testing.T) {
	cart := &Cart{}
	cart.Add(Product{ID: 1, Name: "Blue Top", Price: 500})

	clone := cart.Clone()
	clone.Add(Product{ID: 2, Name: "Men Tshirt", Price: 400})

	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 2, clone.Len())
}

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{name: "valid", account: Account{Name: "Test User", Email: "test@example.com", Password: "pw"}},
		{name: "blank name", account: Account{Name: " ", Email: "test@example.com", Password: "pw"}, wantErr: ErrInvalidName},
		{name: "bad email", account: Account{Name: "Test User", Email: "example.com", Password: "pw"}, wantErr: ErrInvalidEmail},
		{name: "no password", account: Account{Name: "Test User", Email: "test@example.com"}, wantErr: ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccount_AddressLines(t *testing.T) {
	account := Account{
		Name:      "Test User",
		Title:     "Mr.",
		FirstName: "Test",
		LastName:  "User",
		Address1:  "123 Test Street",
		City:      "Test City",
		State:     "California",
		Zipcode:   "12345",
		Country:   "United States",
	}

	assert.Equal(t, []string{
		"Mr. Test User",
		"123 Test Street",
		"Test City California 12345",
		"United States",
	}, account.AddressLines())

	bare := Account{Name: "Only Name"}
	assert.Equal(t, []string{"Only Name"}, bare.AddressLines())
}
